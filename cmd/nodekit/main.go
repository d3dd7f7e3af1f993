package main

import (
	"os"

	"github.com/openfga/nodekit/cmd"
	"github.com/openfga/nodekit/cmd/demo"
	"github.com/openfga/nodekit/cmd/replay"
	"github.com/openfga/nodekit/cmd/verify"
)

func main() {
	rootCmd := cmd.NewRootCommand()

	rootCmd.AddCommand(demo.NewDemoCommand())
	rootCmd.AddCommand(replay.NewReplayCommand())
	rootCmd.AddCommand(verify.NewVerifyCommand())
	rootCmd.AddCommand(cmd.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
