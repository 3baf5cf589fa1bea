package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configDir string
	verbose   bool
)

// Execute creates the root command tree and runs it.
func Execute(version, commit, date string) error {
	rootCmd := newRootCmd(version, commit, date)
	return rootCmd.Execute()
}

func newRootCmd(version, commit, date string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "connstr",
		Short: "Resolve and inspect Oracle connect strings",
		Long: `connstr resolves Oracle connect strings (Easy Connect, full connect
descriptors and tnsnames.ora aliases) into their fully merged connection
parameters, and can emit the equivalent go-ora driver URL.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "directory containing tnsnames.ora (default: $TNS_ADMIN)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	cobra.OnInitialize(initConfig)

	cmd.AddCommand(newResolveCmd())
	cmd.AddCommand(newAliasesCmd())
	cmd.AddCommand(newDSNCmd())
	cmd.AddCommand(newVersionCmd(version, commit, date))

	return cmd
}

func initConfig() {
	viper.SetEnvPrefix("CONNSTR")
	viper.AutomaticEnv()
	_ = viper.BindEnv("config_dir", "CONNSTR_CONFIG_DIR", "TNS_ADMIN")
}

// resolveConfigDir returns the alias directory from the --config-dir flag or
// the bound environment variables.
func resolveConfigDir() string {
	if configDir != "" {
		return configDir
	}
	return viper.GetString("config_dir")
}
