// Package devserver hosts in-memory renditions of the two backend services
// the notka client talks to: the authentication service (token issuing,
// registration) and the notes service (per-user CRUD behind bearer auth).
// It exists for local development and end-to-end exercising of the client;
// nothing survives a restart.
package devserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/avoronov/notka/internal/logger"
)

// DefaultTokenTTL bounds the lifetime of issued access tokens.
const DefaultTokenTTL = 30 * time.Minute

func writeJSON(w http.ResponseWriter, v any, status int, log *logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Err(err).Msg("write json response")
	}
}
