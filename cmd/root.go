// Package cmd contains all the commands included in the binary file.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/openfga/nodekit/cmd/util"
	"github.com/openfga/nodekit/internal/config"
)

// NewRootCommand enables all children commands to read flags from CLI flags, environment variables prefixed with NODEKIT, or config.yaml (in that order).
func NewRootCommand() *cobra.Command {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("NODEKIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	configPaths := []string{"/etc/nodekit", "$HOME/.nodekit", "."}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	cmd := &cobra.Command{
		Use:   "nodekit",
		Short: "Exercise and verify pointer-based data structures",
		Long: `Exercise and verify pointer-based data structures.

nodekit ships a stack, a queue, a circular ring, a double-ended queue and a
level-order binary tree, each built from explicit linked nodes. The commands
in this binary demonstrate them, replay operation logs against them and check
them against reference containers.`,
		SilenceUsage: true,
	}

	defaultConfig := config.DefaultConfig()
	flags := cmd.PersistentFlags()

	flags.String("log-format", defaultConfig.Log.Format, "the log format to output logs in ('text' or 'json')")
	util.MustBindPFlag("log.format", flags.Lookup("log-format"))
	util.MustBindEnv("log.format", "NODEKIT_LOG_FORMAT")

	flags.String("log-level", defaultConfig.Log.Level, "the log level to use")
	util.MustBindPFlag("log.level", flags.Lookup("log-level"))
	util.MustBindEnv("log.level", "NODEKIT_LOG_LEVEL")

	return cmd
}
