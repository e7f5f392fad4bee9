package config

import (
	"time"
)

// Config is the top-level configuration container for the notka client. It
// is populated by merging values from environment variables, command-line
// flags, and an optional JSON file, with defaults applied last.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type Config struct {
	// Services holds the addresses of the two backend collaborators and the
	// shared request timeout.
	Services Services `envPrefix:"SERVICES_"`

	// Storage holds settings for the durable client-side session store.
	Storage Storage `envPrefix:"STORAGE_"`

	// JSONFilePath is the optional path to a JSON configuration file. When
	// non-empty, the file is parsed and merged on top of the values already
	// loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Services holds network settings for the outbound transport layer.
type Services struct {
	// AuthAddress is the base URL of the authentication service
	// (token issuing and registration).
	// Env: SERVICES_AUTH_ADDRESS
	AuthAddress string `env:"AUTH_ADDRESS"`

	// NotesAddress is the base URL of the notes service.
	// Env: SERVICES_NOTES_ADDRESS
	NotesAddress string `env:"NOTES_ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single outbound
	// request (e.g. "15s", "1m").
	// Env: SERVICES_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage holds settings for the local SQLite database that keeps the
// session token durable across client restarts.
type Storage struct {
	// DB holds the local database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite database.
type DB struct {
	// DSN is the SQLite connection string. ":memory:" selects an ephemeral
	// store that does not survive a restart.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Defaults applied by the builder when no other source provides a value.
const (
	DefaultAuthAddress    = "http://localhost:8001"
	DefaultNotesAddress   = "http://localhost:8002"
	DefaultRequestTimeout = 15 * time.Second
	DefaultDatabaseDSN    = "notka.db"
)

func defaults() *Config {
	return &Config{
		Services: Services{
			AuthAddress:    DefaultAuthAddress,
			NotesAddress:   DefaultNotesAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Storage: Storage{
			DB: DB{DSN: DefaultDatabaseDSN},
		},
	}
}

// GetConfig builds and validates the client configuration.
//
// Precedence, highest first: environment variables, command-line flags, the
// optional JSON file, built-in defaults.
func GetConfig() (*Config, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
