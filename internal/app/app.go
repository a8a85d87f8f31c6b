package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/five82/shopfront/internal/config"
	"github.com/five82/shopfront/internal/logtail"
	"github.com/five82/shopfront/internal/pages"
	"github.com/five82/shopfront/internal/prefs"
	"github.com/five82/shopfront/internal/router"
	"github.com/five82/shopfront/internal/shopapi"
	"github.com/five82/shopfront/internal/state"
	"github.com/five82/shopfront/internal/ui"
)

// Options configure the shopfront application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/shopfront/prefs.toml
	Verbose    bool
}

type shop struct {
	cfg    config.Config
	logger *zap.Logger
	api    *shopapi.Client
	store  *state.Store
	router *router.Router
	forms  *pages.Forms
}

// assemble loads configuration and builds the api client, store and router
// around surface.
func assemble(opts Options, surface router.Surface, markdownStyle string) (*shop, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := newLogger(cfg.LogFile, opts.Verbose)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	client, err := shopapi.NewClient(cfg.APIURL, cfg.RequestTimeout)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("init api client: %w", err)
	}

	store := state.New(state.WithClearCartOnLogout(cfg.ClearCartOnLogout))
	r := router.New(surface,
		router.WithLogger(logger.Named("router")),
		router.WithRenderTimeout(cfg.RenderTimeout),
		router.WithRecorder(store),
		router.WithNotFound(pages.NotFound{}),
	)

	deps := pages.Deps{
		API:            client,
		Store:          store,
		Logger:         logger.Named("pages"),
		CatalogLimit:   cfg.CatalogLimit,
		SimulatedDelay: cfg.SimulatedDelay,
		MarkdownStyle:  markdownStyle,
	}
	if err := pages.Register(r, deps); err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("register pages: %w", err)
	}

	return &shop{
		cfg:    cfg,
		logger: logger,
		api:    client,
		store:  store,
		router: r,
		forms:  pages.NewForms(deps),
	}, nil
}

// Run boots the shopfront TUI until the context is cancelled or the user
// quits.
func Run(ctx context.Context, opts Options) error {
	surface := ui.NewProgramSurface()
	s, err := assemble(opts, surface, "dark")
	if err != nil {
		return err
	}
	defer func() { _ = s.logger.Sync() }()

	userPrefs := prefs.Load(opts.PrefsPath)
	s.logger.Info("starting shopfront",
		zap.String("api_url", s.cfg.APIURL),
		zap.String("theme", userPrefs.Theme))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.router.Start(ctx, pages.PathHome)

	refresh := catalogRefresh(s.store, s.api, s.cfg.CatalogLimit, s.router)
	polling := StartPoller(ctx, s.cfg.CatalogRefresh, s.logger.Named("refresh"), refresh)

	err = ui.Run(ui.Options{
		Context:   ctx,
		Router:    s.router,
		Store:     s.store,
		Forms:     s.forms,
		Logger:    s.logger.Named("ui"),
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
	}, surface)

	cancel()
	<-polling
	s.router.Wait()
	return err
}

// Render visits each path in order without a terminal and writes every
// committed page to w. It returns once the last page has committed.
func Render(ctx context.Context, opts Options, w io.Writer, paths []string) error {
	if len(paths) == 0 {
		paths = []string{pages.PathHome}
	}
	s, err := assemble(opts, router.NewWriterSurface(w), "notty")
	if err != nil {
		return err
	}
	defer func() { _ = s.logger.Sync() }()

	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		if i == 0 {
			s.router.Start(ctx, path)
		} else {
			s.router.Navigate(ctx, path, nil)
		}
		s.router.Wait()
	}
	return nil
}

// Logs prints the last n entries of the configured log file to w.
func Logs(opts Options, w io.Writer, n int) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	lines, err := logtail.Read(cfg.LogFile, n)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, logtail.Format(line)); err != nil {
			return err
		}
	}
	return nil
}

// newLogger writes JSON logs to path so they never mix with the terminal UI.
func newLogger(path string, verbose bool) (*zap.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}
