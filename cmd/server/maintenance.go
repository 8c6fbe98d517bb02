package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dukerupert/vitrina/internal"
	"github.com/dukerupert/vitrina/internal/jobs"
	"github.com/dukerupert/vitrina/internal/repository"
	"github.com/dukerupert/vitrina/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

var pruneSessionsCmd = &cobra.Command{
	Use:   "prune-sessions",
	Short: "Delete expired sessions and orphaned guest cart lines",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(ctx context.Context, store *repository.PgStore) error {
			result, err := jobs.PruneSessions(ctx, store)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d sessions and %d cart lines\n",
				result.SessionsDeleted, result.CartLinesDeleted)
			return nil
		})
	},
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts",
}

var createStaffCmd = &cobra.Command{
	Use:   "create-staff <username>",
	Short: "Create a staff account; the password is read from VITRINA_STAFF_PASSWORD",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password := os.Getenv("VITRINA_STAFF_PASSWORD")
		if password == "" {
			return fmt.Errorf("VITRINA_STAFF_PASSWORD must be set")
		}

		return withStore(cmd.Context(), func(ctx context.Context, store *repository.PgStore) error {
			users := service.NewUserService(store, 0, nil)
			user, err := users.CreateStaff(ctx, args[0], password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created staff user %q (id %d)\n", user.Username, user.ID)
			return nil
		})
	},
}

func init() {
	usersCmd.AddCommand(createStaffCmd)
}

func withStore(ctx context.Context, fn func(context.Context, *repository.PgStore) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	return fn(ctx, repository.NewStore(pool))
}
