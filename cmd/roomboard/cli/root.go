package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/erazemk/roomboard/internal/config"
)

// VersionInfo is stamped at build time.
type VersionInfo struct {
	Version string
	Commit  string
}

var versionInfo VersionInfo

// NewRootCommand builds the roomboard command with its persistent flags bound
// to the global viper instance.
func NewRootCommand(info VersionInfo) *cobra.Command {
	var path string
	versionInfo = info

	cmd := &cobra.Command{
		Use:           "roomboard",
		Short:         "Roomboard personal inventory server",
		Long:          "Roomboard catalogs belongings by room and tag and serves a searchable, filterable JSON API over a local SQLite database.",
		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.Init(viper.GetViper(), path)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&path, "config", "", "config file (default is ./config.yaml)")
	flags.StringP("db", "d", config.Default().DB, "SQLite database path")
	flags.String("log-level", config.Default().Log.Level, "log level (debug, info, warn, error)")
	flags.StringP("log-file", "l", "", "also write logs to this file, with rotation")

	viper.BindPFlag("db", flags.Lookup("db"))
	viper.BindPFlag("log.level", flags.Lookup("log-level"))
	viper.BindPFlag("log.file", flags.Lookup("log-file"))

	cmd.Version = fmt.Sprintf("%s.%s", info.Version, info.Commit)

	return cmd
}

// NewVersionCommand prints the build version.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "roomboard %s (%s)\n", versionInfo.Version, versionInfo.Commit)
		},
	}
}
