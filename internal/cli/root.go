// Package cli implements the cluetrack-admin command line tool for managing
// accounts without going through the web interface.
package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"cluetrack/internal/repositories"
	"cluetrack/internal/sqlite"
)

type App struct {
	SqliteURL string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "cluetrack-admin",
		Short:        "Administer a cluetrack instance",
		SilenceUsage: true,
	}

	defaultURL := os.Getenv("CLUETRACK_SQLITE_URL")
	if defaultURL == "" {
		defaultURL = "./cluetrack.sqlite"
	}
	cmd.PersistentFlags().StringVar(&app.SqliteURL, "sqlite-url", defaultURL, "SQLite database URL")

	cmd.AddCommand(newUsersCmd(app))

	return cmd
}

// openUsers opens the database and returns the user repository along with a
// close function.
func openUsers(ctx context.Context, app *App) (*repositories.UserRepository, func() error, error) {
	// The CLI is interactive, logs would drown the command output.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := sqlite.NewDatabase(ctx, app.SqliteURL, logger)
	if err != nil {
		return nil, nil, err
	}
	return repositories.NewUserRepository(db, logger), db.Close, nil
}
