package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"retail/internal/adapter/postgres"
	"retail/internal/domain"
)

// NewAdminCommand creates the root command for the administrator binary.
func NewAdminCommand() *cobra.Command {
	return newSurfaceCommand(
		"retail-admin",
		"Interactive administrator interface over the retail transaction store",
		domain.RoleAdministrator,
	)
}

// NewClientCommand creates the root command for the client binary.
func NewClientCommand() *cobra.Command {
	return newSurfaceCommand(
		"retail-client",
		"Interactive client interface over the retail transaction store",
		domain.RoleClient,
	)
}

func newSurfaceCommand(use, short string, surface domain.Role) *cobra.Command {
	var dsn string

	cmd := &cobra.Command{
		Use:          use,
		Short:        short,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Optional .env for local development.
			_ = godotenv.Load()

			if dsn == "" {
				dsn = os.Getenv("DATABASE_URL")
			}
			if dsn == "" {
				return errors.New("DATABASE_URL is required")
			}

			db, err := postgres.Open(dsn)
			if err != nil {
				return fmt.Errorf("db open: %w", err)
			}
			defer func() { _ = db.Close() }()

			app := New(surface, db, cmd.InOrStdin(), cmd.OutOrStdout())
			return app.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&dsn, "dsn", "", "PostgreSQL connection string (defaults to DATABASE_URL)")
	return cmd
}
