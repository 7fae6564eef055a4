package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/donseba/go-htmx"
	"github.com/joho/godotenv"

	"cluetrack/internal/envstruct"
	"cluetrack/internal/errors"
	"cluetrack/internal/logging"
	"cluetrack/internal/pprofserver"
	"cluetrack/internal/repositories"
	"cluetrack/internal/sqlite"
)

type application struct {
	logger         *slog.Logger
	sessionManager *scs.SessionManager
	htmx           *htmx.HTMX
	users          *repositories.UserRepository
	clues          *repositories.ClueRepository
	templateDir    string
	now            func() time.Time
}

type config struct {
	// Addr is the address the server listens on, e.g. "localhost:4000".
	// Use port 0 to pick a free port, which is logged after startup.
	Addr string `env:"CLUETRACK_ADDR" envDefault:"localhost:4000"`
	// SqliteURL is the database connection string, e.g. "./cluetrack.sqlite"
	// or ":memory:" for ephemeral instances.
	SqliteURL string `env:"CLUETRACK_SQLITE_URL" envDefault:"./cluetrack.sqlite"`
	// PprofPort enables the pprof server on localhost when set, e.g. ":6060".
	PprofPort string `env:"CLUETRACK_PPROF_PORT" envDefault:""`
	// AdminPassword is the password the protected admin account is seeded
	// with on first startup.
	AdminPassword string `env:"CLUETRACK_ADMIN_PASSWORD" envDefault:"123456"`
	// TemplateDir points to the gohtml templates.
	TemplateDir string `env:"CLUETRACK_TEMPLATE_DIR" envDefault:"ui/templates"`
}

func main() {
	ctx := context.Background()
	loggerHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:       slog.LevelDebug,
		AddSource:   true,
		ReplaceAttr: nil,
	})
	logger := slog.New(logging.NewContextHandler(loggerHandler))

	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server error", errors.SlogError(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	// Missing .env is fine, the defaults cover local development.
	_ = godotenv.Load()

	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "parse config")
	}

	if cfg.PprofPort != "" {
		// Listens on localhost so that it's not open to the world.
		pprofserver.Launch(cfg.PprofPort, logger)
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open database", slog.String("url", cfg.SqliteURL))
	}

	users := repositories.NewUserRepository(db, logger)
	if err = users.EnsureAdmin(ctx, cfg.AdminPassword); err != nil {
		return errors.Wrap(err, "ensure admin account")
	}
	clues := repositories.NewClueRepository(db, logger)

	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(db.ReadWrite.DB, 24*time.Hour)
	sessionManager.Lifetime = 12 * time.Hour
	sessionManager.Cookie.Secure = true

	app := application{
		logger:         logger,
		sessionManager: sessionManager,
		htmx:           htmx.New(),
		users:          users,
		clues:          clues,
		templateDir:    cfg.TemplateDir,
		now:            time.Now,
	}

	return app.serve(ctx, cfg.Addr)
}
