package verify

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/openfga/nodekit/cmd/util"
)

// bindVerifyFlagsFunc binds the cobra cmd flags to the equivalent config value being managed
// by viper. This bridges the config between cobra flags and viper flags.
func bindVerifyFlagsFunc(flags *pflag.FlagSet) func(*cobra.Command, []string) {
	return func(command *cobra.Command, args []string) {
		util.MustBindPFlag("conformance.seed", flags.Lookup(seedFlag))
		util.MustBindEnv("conformance.seed", "NODEKIT_CONFORMANCE_SEED")

		util.MustBindPFlag("conformance.ops", flags.Lookup(opsFlag))
		util.MustBindEnv("conformance.ops", "NODEKIT_CONFORMANCE_OPS")

		util.MustBindPFlag("conformance.concurrency", flags.Lookup(concurrencyFlag))
		util.MustBindEnv("conformance.concurrency", "NODEKIT_CONFORMANCE_CONCURRENCY")

		util.MustBindPFlag("conformance.structures", flags.Lookup(structuresFlag))
		util.MustBindEnv("conformance.structures", "NODEKIT_CONFORMANCE_STRUCTURES")

		util.MustBindPFlag("conformance.dumpDir", flags.Lookup(dumpDirFlag))
		util.MustBindEnv("conformance.dumpDir", "NODEKIT_CONFORMANCE_DUMP_DIR")
	}
}
