package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/geodrill/internal/config"
	"github.com/abhisek/geodrill/internal/identity"
	"github.com/abhisek/geodrill/internal/logging"
	"github.com/abhisek/geodrill/internal/progress"
	"github.com/abhisek/geodrill/internal/refdata"
	"github.com/abhisek/geodrill/internal/store"
	"github.com/abhisek/geodrill/internal/store/mongostore"
)

const connectTimeout = 10 * time.Second

// env is everything a command needs, built from the resolved config.
type env struct {
	cfg     *config.Config
	log     *slog.Logger
	players *identity.Static
	repo    progress.Repo

	closers []func() error
}

// setup loads the config, opens the log file and connects the backend.
// The caller must Close the env.
func setup(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load(config.Options{Flags: cmd.Flags()})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}

	e := &env{cfg: cfg}
	log, logFile, err := logging.Open(logging.Path(cfg.Log.File, dbPath), cfg.Log.SlogLevel())
	if err != nil {
		return nil, err
	}
	e.log = log
	e.closers = append(e.closers, logFile.Close)
	slog.SetDefault(log)

	e.players, err = identity.NewStatic(cfg.User)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("user: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := e.openBackend(ctx, dbPath); err != nil {
		e.Close()
		return nil, err
	}
	log.Info("started", "command", cmd.Name(), "backend", cfg.Backend, "identity", identity.Key(e.players))
	return e, nil
}

// resolveDBPath returns the SQLite path for the sqlite backend: the
// configured one, else the default XDG path. Other backends have none.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.Backend != config.BackendSQLite {
		return "", nil
	}
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

func (e *env) openBackend(ctx context.Context, dbPath string) error {
	switch e.cfg.Backend {
	case config.BackendMemory:
		e.repo = progress.NewMemoryRepo()

	case config.BackendMongo:
		cctx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		ms, err := mongostore.Connect(cctx, e.cfg.Mongo.URI, e.cfg.Mongo.Database)
		if err != nil {
			return fmt.Errorf("connect mongo: %w", err)
		}
		e.repo = ms
		e.closers = append(e.closers, func() error {
			ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
			defer cancel()
			return ms.Close(ctx)
		})

	default:
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		e.repo = st.ProgressRepo()
		e.closers = append(e.closers, st.Close)
	}
	return nil
}

// catalog loads the reference data, overlaying the configured data dir.
func (e *env) catalog() (*refdata.Catalog, error) {
	cat, err := refdata.LoadDir(e.cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("load reference data: %w", err)
	}
	return cat, nil
}

// Close releases the backend and then the log file.
func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil && e.log != nil {
			e.log.Warn("close failed", "error", err)
		}
	}
	e.closers = nil
}

// out is where commands print.
func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
