package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/erazemk/roomboard/internal/config"
	"github.com/erazemk/roomboard/internal/db"
	"github.com/erazemk/roomboard/internal/server"
	"github.com/erazemk/roomboard/internal/store"
)

// NewInitCommand creates the database schema, the account and the default
// tags without starting the server.
func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the database and create the account",
		Args:  cobra.NoArgs,
		// serve and init share the admin_user key, so bind the flag of the
		// command actually running.
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return viper.BindPFlag("admin_user", cmd.Flags().Lookup("user"))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(viper.GetViper())
			if err != nil {
				return err
			}

			ctx := context.Background()
			database, err := db.Open(cfg.DB)
			if err != nil {
				return err
			}
			defer database.Close()

			if err := db.Migrate(ctx, database); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Database ready: %s\n", cfg.DB)

			password, err := server.InitAccount(ctx, database, cfg.AdminUser)
			if errors.Is(err, server.ErrAlreadyInitialized) {
				return fmt.Errorf("%s is already initialized", cfg.DB)
			}
			if err != nil {
				return err
			}

			if err := server.InstallDefaultTagsOnce(ctx, database, &store.Preferences{DB: database}); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout())
			printAccount(cmd, cfg.AdminUser, password)
			return nil
		},
	}

	cmd.Flags().StringP("user", "u", config.Default().AdminUser, "account username")

	return cmd
}
