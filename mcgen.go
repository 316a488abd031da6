// Package mcgen serves Minecraft-style achievement images and the page that
// previews them.
//
// The App wires the generator, image cache, usage stats store, metrics and
// the Echo server together. The page itself runs the preview controller from
// the preview package, compiled to WebAssembly.
package mcgen

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/eringen/mcgen/assets"
	"github.com/eringen/mcgen/generator"
	"github.com/eringen/mcgen/metrics"
)

// App is the central mcgen application.
type App struct {
	Config    Config
	Echo      *echo.Echo
	Generator *generator.Generator
	Cache     ImageCache
	Store     *Store // nil when stats are disabled
	Metrics   *metrics.Metrics
	Logger    *log.Logger

	limiter      *RateLimiter
	loginLimiter *RateLimiter
	customRoutes []func(*App)
	staticDir    string
	initialized  bool
}

// New creates a new App with the given configuration.
func New(cfg Config, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Metrics:   metrics.New(),
		staticDir: "public",
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = cfg.Production()

	for _, opt := range opts {
		opt(a)
	}
	if a.Logger == nil {
		a.Logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	}

	return a
}

// AdminEnabled reports whether the admin dashboard is served.
func (a *App) AdminEnabled() bool {
	return a.Config.AdminPassword != "" && a.Store != nil
}

// Init builds the generator, cache and store and registers middleware and
// routes. Start calls it; tests call it directly and drive a.Echo.
func (a *App) Init() error {
	if a.initialized {
		return nil
	}
	if a.Config.AdminPassword != "" && a.Config.SessionSecret == "" {
		return fmt.Errorf("mcgen: SessionSecret is required when AdminPassword is set")
	}

	if a.Generator == nil {
		gen, err := a.newGenerator()
		if err != nil {
			return fmt.Errorf("mcgen: init generator: %w", err)
		}
		a.Generator = gen
	}

	if a.Config.DatabasePath != "-" {
		store, err := NewStore(a.Config.DatabasePath)
		if err != nil {
			return fmt.Errorf("mcgen: init store: %w", err)
		}
		a.Store = store
	}

	if a.Cache == nil {
		cache, err := a.newCache()
		if err != nil {
			if a.Store != nil {
				_ = a.Store.Close()
				a.Store = nil
			}
			return fmt.Errorf("mcgen: init cache: %w", err)
		}
		a.Cache = cache
	}

	if a.Config.RateLimit > 0 {
		a.limiter = NewRateLimiter(a.Config.RateLimit, time.Minute)
	}
	a.loginLimiter = NewRateLimiter(5, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}

	a.initialized = true
	return nil
}

func (a *App) newGenerator() (*generator.Generator, error) {
	return NewGenerator(a.Config, a.Logger)
}

// NewGenerator builds a generator from the backgrounds directory and font
// named in cfg. A missing backgrounds directory leaves only the plain
// background and is logged, not returned.
func NewGenerator(cfg Config, logger *log.Logger) (*generator.Generator, error) {
	cfg.setDefaults()
	backgrounds, err := assets.Backgrounds(cfg.BackgroundsDir)
	if err != nil {
		return nil, err
	}
	if backgrounds == nil {
		logger.Warn("backgrounds directory not found, only the plain background is available", "dir", cfg.BackgroundsDir)
	}
	font, err := assets.LoadFont(cfg.FontPath)
	if err != nil {
		return nil, err
	}
	return generator.New(generator.Options{
		Backgrounds: backgrounds,
		Font:        font,
		Logger:      logger.WithPrefix("generator"),
	})
}

// Start initializes the App and serves HTTP, plus metrics on their own
// listener, until ctx is done or either listener fails.
func (a *App) Start(ctx context.Context) error {
	if err := a.Init(); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	if a.Config.MetricsAddr != "-" {
		g.Go(func() error {
			a.Logger.Info("metrics listener starting", "addr", a.Config.MetricsAddr)
			if err := a.Metrics.Serve(ctx, a.Config.MetricsAddr); err != nil {
				return fmt.Errorf("mcgen: metrics listener: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		a.Logger.Info("stopping web api")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return a.Echo.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		a.Logger.Info("web api starting", "addr", a.Config.Addr, "backgrounds", len(a.Generator.Backgrounds()))
		if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("mcgen: web api: %w", err)
		}
		a.Logger.Warn("web api stopped")
		return nil
	})

	return g.Wait()
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Embedded page assets (app.js, style.css).
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	e.GET("/static/*", echo.WrapHandler(http.StripPrefix("/static/", http.FileServer(http.FS(embeddedFS)))))

	// main.wasm and wasm_exec.js, built next to the server.
	e.Static("/public", a.staticDir)

	e.GET("/", a.handleIndex)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)

	api := e.Group("/api/v1")
	api.GET("/achievement", a.handleAchievementGet)
	api.POST("/achievement", a.handleAchievementPost)
	api.GET("/backgrounds", a.handleBackgrounds)

	// Legacy URLs still linked from old forum posts.
	e.GET("/a.php", a.handleLegacyQuery)
	e.GET("/a/:background/:title/:text/*", a.handleLegacyPath)

	if a.AdminEnabled() {
		e.GET("/admin/", a.handleAdmin)
		e.POST("/admin/login/", a.handleAdminLogin)
		e.POST("/admin/logout/", handleAdminLogout)
	}
}

// Close releases the store, cache and limiters.
func (a *App) Close() error {
	var errs []error
	if a.Store != nil {
		errs = append(errs, a.Store.Close())
	}
	if closer, ok := a.Cache.(interface{ Close() error }); ok {
		errs = append(errs, closer.Close())
	}
	if a.limiter != nil {
		a.limiter.Stop()
	}
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	return errors.Join(errs...)
}
