package mcgen

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/eringen/mcgen/generator"
)

// Config holds all configuration for an mcgen server.
type Config struct {
	Name string `toml:"name"` // Page title (default "Minecraft Achievement Generator")
	Mode string `toml:"mode"` // "production" switches to JSON logs
	URL  string `toml:"url"`  // Canonical site URL for the sitemap; empty uses the request host

	Addr        string `toml:"addr"`         // Listen address (default ":8080")
	MetricsAddr string `toml:"metrics_addr"` // Metrics listener (default ":9100", "-" disables)

	BackgroundsDir string `toml:"backgrounds_dir"` // Directory of *.png backgrounds (default "assets/backgrounds")
	FontPath       string `toml:"font_path"`       // Font file; empty uses the built-in font

	DatabasePath string `toml:"database_path"` // SQLite stats path (default "data/mcgen.db", "-" disables)

	AdminPassword string `toml:"admin_password"` // Enables /admin/ when set
	SessionSecret string `toml:"session_secret"` // Required with AdminPassword
	CookieSecure  bool   `toml:"cookie_secure"`  // Set true for HTTPS

	CacheTTL  time.Duration `toml:"cache_ttl"`  // Image cache TTL (default 5m)
	CacheSize int           `toml:"cache_size"` // In-memory cache entries (default 512, negative disables)
	RedisURL  string        `toml:"redis_url"`  // Use Redis instead of the in-memory cache

	RateLimit int `toml:"rate_limit"` // Images per IP per minute (default 120, negative disables)
}

func (c *Config) setDefaults() {
	if c.Name == "" {
		c.Name = "Minecraft Achievement Generator"
	}
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.MetricsAddr == "" {
		c.MetricsAddr = ":9100"
	}
	if c.BackgroundsDir == "" {
		c.BackgroundsDir = "assets/backgrounds"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/mcgen.db"
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = 5 * time.Minute
	}
	if c.CacheSize == 0 {
		c.CacheSize = 512
	}
	if c.RateLimit == 0 {
		c.RateLimit = 120
	}
}

// Production reports whether the server runs in production mode.
func (c Config) Production() bool {
	return c.Mode == "production"
}

// LoadConfig reads the TOML file at path (if any) and then applies
// environment overrides. Defaults are filled in by New.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("mcgen: read config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("SITE_NAME", &c.Name)
	str("MODE", &c.Mode)
	str("SITE_URL", &c.URL)
	str("ADDR", &c.Addr)
	if v, ok := lookup("PORT"); ok && v != "" {
		c.Addr = ":" + v
	}
	str("METRICS_ADDR", &c.MetricsAddr)
	str("BACKGROUNDS_DIR", &c.BackgroundsDir)
	str("FONT_PATH", &c.FontPath)
	str("DATABASE_PATH", &c.DatabasePath)
	str("ADMIN_PASSWORD", &c.AdminPassword)
	str("SESSION_SECRET", &c.SessionSecret)
	str("REDIS_URL", &c.RedisURL)

	if v, ok := lookup("COOKIE_SECURE"); ok && v != "" {
		c.CookieSecure = strings.EqualFold(v, "true")
	}
	if v, ok := lookup("CACHE_TTL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("mcgen: CACHE_TTL: %w", err)
		}
		c.CacheTTL = d
	}
	for key, dst := range map[string]*int{"CACHE_SIZE": &c.CacheSize, "RATE_LIMIT": &c.RateLimit} {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("mcgen: %s: %w", key, err)
			}
			*dst = n
		}
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are set up.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory served under /public/ (default "public").
// It holds main.wasm and wasm_exec.js.
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithLogger replaces the default logger.
func WithLogger(l *log.Logger) Option {
	return func(a *App) {
		a.Logger = l
	}
}

// WithGenerator uses g instead of building one from the config.
func WithGenerator(g *generator.Generator) Option {
	return func(a *App) {
		a.Generator = g
	}
}

// WithCache uses c instead of building one from the config.
func WithCache(c ImageCache) Option {
	return func(a *App) {
		a.Cache = c
	}
}
