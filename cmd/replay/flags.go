package replay

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/openfga/nodekit/cmd/util"
)

// bindReplayFlagsFunc binds the cobra cmd flags to the equivalent config value being managed
// by viper. This bridges the config between cobra flags and viper flags.
func bindReplayFlagsFunc(flags *pflag.FlagSet) func(*cobra.Command, []string) {
	return func(command *cobra.Command, args []string) {
		util.MustBindPFlag("replay.output", flags.Lookup(outputFlag))
		util.MustBindEnv("replay.output", "NODEKIT_REPLAY_OUTPUT")
	}
}
