// internal/config/config.go
//
// Process configuration, read from the environment (and an optional .env
// file) into one struct. Every field has an env-default so a bare checkout
// runs without any setup.

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// DevJWTSecret is the development signing secret; production must override it.
const DevJWTSecret = "dev_secret_change_me"

// Config is the root configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Game     GameConfig
	Daily    DailyConfig
	Source   SourceConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port           int           `env:"PORT" env-default:"5175"`
	ClientOrigin   string        `env:"CLIENT_ORIGIN" env-default:"http://localhost:5173"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" env-default:"10s"`
}

// Addr is the listen address for the HTTP server.
func (s ServerConfig) Addr() string { return fmt.Sprintf(":%d", s.Port) }

type DatabaseConfig struct {
	DSN string `env:"DATABASE_DSN" env-default:"./data/wikiguess.db"`
}

type AuthConfig struct {
	JWTSecret      string `env:"JWT_SECRET" env-default:"dev_secret_change_me"`
	JWTExpiresDays int    `env:"JWT_EXPIRES_DAYS" env-default:"14"`
	CookieName     string `env:"COOKIE_NAME" env-default:"wikiguess_token"`
	Environment    string `env:"NODE_ENV" env-default:"development"`
}

// Production reports whether cookies must be Secure.
func (a AuthConfig) Production() bool { return a.Environment == "production" }

// TokenTTL is the lifetime of issued tokens.
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.JWTExpiresDays) * 24 * time.Hour
}

type GameConfig struct {
	ExcludeCommon       bool `env:"GAME_EXCLUDE_COMMON" env-default:"false"`
	MinGuessLength      int  `env:"GAME_MIN_GUESS_LENGTH" env-default:"0"`
	StripParentheticals bool `env:"GAME_STRIP_PARENTHETICALS" env-default:"true"`
}

type DailyConfig struct {
	Salt string `env:"DAILY_SALT" env-default:"local_dev_salt"`
}

type SourceConfig struct {
	ArticlesFile string        `env:"ARTICLES_FILE"`
	FetchTimeout time.Duration `env:"FETCH_TIMEOUT" env-default:"15s"`

	// Pages a caller may name in POST /round/new {url}.
	AllowedHosts []string `env:"SOURCE_ALLOWED_HOSTS" env-default:"*.wikipedia.org" env-separator:","`
	AllowPrivate bool     `env:"SOURCE_ALLOW_PRIVATE" env-default:"false"`

	WikiAPIURL       string `env:"WIKI_API_URL" env-default:"https://en.wikipedia.org/w/api.php"`
	WikiMinLanguages int    `env:"WIKI_MIN_LANGUAGES" env-default:"1"`
	WikiMaxAttempts  int    `env:"WIKI_MAX_ATTEMPTS" env-default:"300"`
}

type LogConfig struct {
	Level string `env:"LOG_LEVEL" env-default:"info"`
}

// Load reads .env (if present) and the environment, then validates.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be in 1..65535, got %d", c.Server.Port))
	}
	if c.Game.MinGuessLength < 0 {
		errs = append(errs, errors.New("GAME_MIN_GUESS_LENGTH must not be negative"))
	}
	if c.Auth.JWTExpiresDays <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRES_DAYS must be positive"))
	}
	if c.Auth.Production() && (c.Auth.JWTSecret == "" || c.Auth.JWTSecret == DevJWTSecret) {
		errs = append(errs, errors.New("JWT_SECRET must be set in production"))
	}
	if c.Source.WikiMinLanguages < 0 {
		errs = append(errs, errors.New("WIKI_MIN_LANGUAGES must not be negative"))
	}
	if c.Source.WikiMaxAttempts <= 0 {
		errs = append(errs, errors.New("WIKI_MAX_ATTEMPTS must be positive"))
	}
	if c.Database.DSN == "" {
		errs = append(errs, errors.New("DATABASE_DSN is required"))
	}
	return errors.Join(errs...)
}
