package mailer

import "time"

type Config struct {
	Host     string        `env:"HOST"`
	Port     int           `env:"PORT"     envDefault:"587"`
	User     string        `env:"USER"`
	Password string        `env:"PASSWORD"`
	// TLS requires STARTTLS on submission ports; port 465 always uses implicit TLS.
	TLS     bool          `env:"TLS"     envDefault:"true"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`
}
