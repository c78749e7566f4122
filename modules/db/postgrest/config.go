package postgrest

import "time"

type Config struct {
	// URL is the project URL, e.g. https://xyzcompany.supabase.co.
	URL string `env:"URL"`
	// Key is the anon or service-role key; sent both as apikey and bearer token.
	Key    string        `env:"KEY"`
	Schema string        `env:"SCHEMA" envDefault:"public"`
	// Timeout bounds every request made by the client.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}
