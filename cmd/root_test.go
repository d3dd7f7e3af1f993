package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/openfga/nodekit/cmd/util"
	"github.com/openfga/nodekit/internal/build"
)

func TestVersionCommand(t *testing.T) {
	t.Cleanup(viper.Reset)

	var out bytes.Buffer
	root := NewRootCommand()
	root.AddCommand(NewVersionCommand())
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	require.Equal(t, "nodekit version "+build.Version+" date "+build.Date+" commit id "+build.Commit+"\n", out.String())
}

func TestRootLogFlags(t *testing.T) {
	util.PrepareTempConfigDir(t)
	t.Cleanup(viper.Reset)

	root := NewRootCommand()
	root.SetArgs([]string{"--log-format", "json", "--log-level", "debug"})
	root.Run = func(*cobra.Command, []string) {}
	require.NoError(t, root.Execute())

	cfg, err := util.ReadConfig()
	require.NoError(t, err)
	require.Equal(t, "json", cfg.Log.Format)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestRootLogLevelFromEnv(t *testing.T) {
	util.PrepareTempConfigDir(t)
	t.Cleanup(viper.Reset)
	t.Setenv("NODEKIT_LOG_LEVEL", "warn")

	NewRootCommand()

	cfg, err := util.ReadConfig()
	require.NoError(t, err)
	require.Equal(t, "warn", cfg.Log.Level)
}
