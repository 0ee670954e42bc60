package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abhisek/codegenome/internal/ai"
	"github.com/abhisek/codegenome/internal/appstate"
	"github.com/abhisek/codegenome/internal/cache"
	"github.com/abhisek/codegenome/internal/coach"
	"github.com/abhisek/codegenome/internal/config"
	"github.com/abhisek/codegenome/internal/llm"
	"github.com/abhisek/codegenome/internal/logging"
	"github.com/abhisek/codegenome/internal/store"
)

// deps holds everything a command may need, built from configuration.
type deps struct {
	cfg    config.Config
	dbPath string
	store  *store.Store
	state  *appstate.Store
	coach  *coach.Service

	closers []io.Closer
}

// depsOptions selects how much of the stack a command builds.
type depsOptions struct {
	// logToFile sends logs next to the database so they do not draw over
	// the terminal UI.
	logToFile bool
	// withAI builds the LLM provider and the generation client.
	withAI bool
}

// loadConfig reads configuration using the --config flag.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// openStore loads configuration and opens the database without building
// the rest of the stack.
func openStore(cmd *cobra.Command) (config.Config, *store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return cfg, nil, err
	}
	dbPath, err := resolveDBPath(cmd, cfg.DBPath)
	if err != nil {
		return cfg, nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return cfg, nil, fmt.Errorf("open database: %w", err)
	}
	return cfg, s, nil
}

// openDeps builds the full stack. AI is optional: without a configured
// provider every flow uses its fallback.
func openDeps(cmd *cobra.Command, opts depsOptions) (*deps, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	d := &deps{cfg: cfg}

	d.dbPath, err = resolveDBPath(cmd, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}

	logOpts := logging.Options{Level: cfg.LogLevel, File: cfg.LogFile}
	if opts.logToFile && logOpts.File == "" {
		logOpts.File = logging.DefaultFile(d.dbPath)
	}
	logCloser, err := logging.Setup(logOpts)
	if err != nil {
		return nil, err
	}
	d.closers = append(d.closers, logCloser)

	d.store, err = store.Open(d.dbPath)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	d.closers = append(d.closers, d.store)

	stateOpts := []appstate.Option{appstate.WithKeep(cfg.SnapshotKeep)}
	var gen coach.Generator
	if opts.withAI {
		if client := d.aiClient(ctx); client != nil {
			gen = client
			stateOpts = append(stateOpts, appstate.WithAnalyzer(client))
		}
	}

	d.state, err = appstate.Open(ctx, d.store.SnapshotRepo(), d.store.EventRepo(), stateOpts...)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("open state: %w", err)
	}
	d.coach = coach.New(d.state, gen)
	return d, nil
}

// aiClient builds the generation client, or returns nil when no provider
// is configured.
func (d *deps) aiClient(ctx context.Context) *ai.Client {
	if !d.cfg.LLM.HasKey() {
		logrus.Info("no LLM provider configured, AI features use fallbacks")
		return nil
	}

	var respCache llm.Cache
	if d.cfg.Redis.Enabled() {
		rc := cache.New(ctx, cache.Options{
			Addr:     d.cfg.Redis.Addr,
			Password: d.cfg.Redis.Password,
			DB:       d.cfg.Redis.DB,
			TTL:      d.cfg.Redis.TTL,
		})
		d.closers = append(d.closers, rc)
		if rc.Available() {
			respCache = rc
		}
	}

	provider, err := llm.NewProvider(ctx, d.cfg.LLM, d.store.EventRepo(), respCache)
	if err != nil {
		logrus.WithError(err).Warn("LLM provider unavailable, AI features use fallbacks")
		return nil
	}
	return ai.New(provider, ai.Config{
		MaxTokens:        d.cfg.AI.MaxTokens,
		Temperature:      d.cfg.AI.Temperature,
		StructuredOutput: d.cfg.AI.StructuredOutput,
	})
}

// Close releases resources in reverse order of acquisition.
func (d *deps) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	d.closers = nil
	return errors.Join(errs...)
}
