package appconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"portfolio/modules/db/postgres"
	"portfolio/modules/db/postgrest"
	"portfolio/modules/mailer"
	"portfolio/modules/telemetry"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type StoreDriver string

const (
	DriverPostgREST StoreDriver = "postgrest"
	DriverPostgres  StoreDriver = "postgres"
)

type Config struct {
	Env      string `env:"ENV"       envDefault:"dev"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	HTTP HTTPConfig `envPrefix:"HTTP_"`

	// APIPrefix mounts every route under a path such as /api/v1.
	APIPrefix   string   `env:"API_PREFIX"`
	CORSOrigins []string `env:"BACKEND_CORS_ORIGINS" envSeparator:","`

	// --- core infra ----
	Store    StoreConfig             `envPrefix:"STORE_"`
	Supabase postgrest.Config        `envPrefix:"SUPABASE_"`
	Postgres postgres.PostgresConfig `envPrefix:"POSTGRES_"`

	// --- contact mail ----
	Mail MailConfig
	SMTP mailer.Config `envPrefix:"SMTP_"`

	// --- otel ----
	// since it has special naming conventions, we do not use prefix here
	Otel telemetry.Config
}

type HTTPConfig struct {
	Host            string        `env:"HOST"             envDefault:"0.0.0.0"`
	Port            int           `env:"PORT"             envDefault:"8000"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT"     envDefault:"10s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT"    envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"20s"`
}

type StoreConfig struct {
	Driver StoreDriver `env:"DRIVER" envDefault:"postgrest"`
	// Timeout overrides the per-driver request timeout when set.
	Timeout time.Duration `env:"TIMEOUT"`
}

type MailConfig struct {
	// Enabled false logs contact messages instead of sending them.
	Enabled     bool   `env:"EMAILS_ENABLED"    envDefault:"false"`
	FromAddress string `env:"EMAILS_FROM_EMAIL"`
	FromName    string `env:"EMAILS_FROM_NAME"  envDefault:"Portfolio"`
	Recipient   string `env:"EMAIL_RECIPIENT"`
	QueueSize   int    `env:"MAIL_QUEUE_SIZE"   envDefault:"64"`
	Workers     int    `env:"MAIL_WORKERS"      envDefault:"2"`
}

// Load reads the optional dotenv files (".env" when none are given) into the
// process environment without overriding it, then parses Config.
func Load(dotenvFiles ...string) (*Config, error) {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("appconfig: load %s: %w", f, err)
		}
		slog.Debug("loaded dotenv file", slog.String("path", f))
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, err
	}

	if cfg.Store.Timeout > 0 {
		cfg.Supabase.Timeout = cfg.Store.Timeout
		cfg.Postgres.QueryTimeout = cfg.Store.Timeout
	}
	cfg.Store.Driver = StoreDriver(strings.ToLower(string(cfg.Store.Driver)))

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) IsProd() bool {
	return strings.EqualFold(c.Env, "prod") || strings.EqualFold(c.Env, "production")
}

// SlogLevel maps LOG_LEVEL onto slog levels; unknown values fall back to info.
func (c *Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func validate(c *Config) error {
	var errs []error

	switch c.Store.Driver {
	case DriverPostgREST:
		if c.Supabase.URL == "" || c.Supabase.Key == "" {
			errs = append(errs, errors.New("SUPABASE_URL and SUPABASE_KEY are required for the postgrest driver"))
		}
	case DriverPostgres:
		if c.Postgres.WriteConfig.Host == "" {
			errs = append(errs, errors.New("POSTGRES_PRIMARY_HOST is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver))
	}

	if c.Mail.Enabled {
		if c.SMTP.Host == "" {
			errs = append(errs, errors.New("SMTP_HOST is required when EMAILS_ENABLED is true"))
		}
		if c.Mail.Recipient == "" {
			errs = append(errs, errors.New("EMAIL_RECIPIENT is required when EMAILS_ENABLED is true"))
		}
		if c.Mail.FromAddress == "" {
			errs = append(errs, errors.New("EMAILS_FROM_EMAIL is required when EMAILS_ENABLED is true"))
		}
	}
	if c.Mail.Workers <= 0 {
		errs = append(errs, errors.New("MAIL_WORKERS must be positive"))
	}
	if c.Mail.QueueSize <= 0 {
		errs = append(errs, errors.New("MAIL_QUEUE_SIZE must be positive"))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("appconfig: %w", err)
	}
	return nil
}
