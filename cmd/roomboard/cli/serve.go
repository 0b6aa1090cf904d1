package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/erazemk/roomboard/internal/config"
	"github.com/erazemk/roomboard/internal/db"
	"github.com/erazemk/roomboard/internal/logging"
	"github.com/erazemk/roomboard/internal/server"
)

// NewServeCommand starts the API server, initializing the database and the
// account on first run.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Roomboard server",
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

			closeLog, err := logging.Setup(cfg.Log)
			if err != nil {
				return err
			}
			defer closeLog()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			database, err := db.Open(cfg.DB)
			if err != nil {
				return err
			}
			defer database.Close()

			if err := db.Migrate(ctx, database); err != nil {
				return err
			}
			slog.Info("database ready", "path", cfg.DB)

			password, err := server.InitAccount(ctx, database, cfg.AdminUser)
			switch {
			case err == nil:
				printAccount(cmd, cfg.AdminUser, password)
			case errors.Is(err, server.ErrAlreadyInitialized):
			default:
				return fmt.Errorf("initializing account: %w", err)
			}

			srv, err := server.New(ctx, cfg, database)
			if err != nil {
				return err
			}

			ln, err := net.Listen("tcp", cfg.Addr)
			if err != nil {
				return fmt.Errorf("listening on %s: %w", cfg.Addr, err)
			}

			if err := srv.Run(ctx, ln); err != nil {
				return err
			}
			slog.Info("server stopped, closing database")
			return nil
		},
	}

	cmd.Flags().StringP("addr", "a", config.Default().Addr, "listen address")
	cmd.Flags().StringP("user", "u", config.Default().AdminUser, "account username on first run")
	viper.BindPFlag("addr", cmd.Flags().Lookup("addr"))

	return cmd
}

func printAccount(cmd *cobra.Command, username, password string) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Account created:")
	fmt.Fprintf(out, "  Username: %s\n", username)
	fmt.Fprintf(out, "  Password: %s\n", password)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Save this password, it cannot be recovered.")
	fmt.Fprintln(out, "It can be changed after logging in.")
}
