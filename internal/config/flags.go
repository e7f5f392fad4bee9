package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-auth-address auth service base URL
//	-notes-address notes service base URL
//	-request-timeout request timeout (e.g., "15s", "1m")
//	-d local database DSN (":memory:" for an ephemeral session store)
//	-c/-config json file path with configs
func ParseFlags() *Config {
	var authAddress string
	var notesAddress string
	var requestTimeout time.Duration
	var databaseDSN string
	var jsonConfigPath string

	flag.StringVar(&authAddress, "auth-address", "", "Auth service base URL")
	flag.StringVar(&notesAddress, "notes-address", "", "Notes service base URL")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 15s, 1m)")
	flag.StringVar(&databaseDSN, "d", "", "Local database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &Config{
		Services: Services{
			AuthAddress:    authAddress,
			NotesAddress:   notesAddress,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		JSONFilePath: jsonConfigPath,
	}
}
