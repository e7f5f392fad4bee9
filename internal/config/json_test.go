package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Success(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "config.json")

	jsonBody := `{
		"services": {
			"auth_address": "http://auth.local:8001",
			"notes_address": "http://notes.local:8002",
			"request_timeout": "30s"
		},
		"storage": {
			"db": { "dsn": "/var/lib/notka/session.db" }
		}
	}`

	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "http://auth.local:8001", cfg.Services.AuthAddress)
	assert.Equal(t, "http://notes.local:8002", cfg.Services.NotesAddress)
	assert.Equal(t, 30*time.Second, cfg.Services.RequestTimeout)
	assert.Equal(t, "/var/lib/notka/session.db", cfg.Storage.DB.DSN)
}

func TestParseJSON_NumericDuration(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "config.json")

	// Plain numbers are interpreted as nanoseconds.
	jsonBody := `{"services": {"request_timeout": 1000000000}}`
	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	cfg, err := parseJSON(p)

	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.Services.RequestTimeout)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	_, err := parseJSON("/nonexistent/config.json")
	require.Error(t, err)
}

func TestParseJSON_MalformedBody(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(p, []byte("{not json"), 0o600))

	_, err := parseJSON(p)
	require.Error(t, err)
}

func TestDuration_UnmarshalJSON_InvalidString(t *testing.T) {
	var d Duration
	err := d.UnmarshalJSON([]byte(`"soon"`))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name: "valid",
			cfg: Config{Services: Services{
				AuthAddress:    "http://localhost:8001",
				NotesAddress:   "localhost:8002",
				RequestTimeout: time.Second,
			}},
		},
		{
			name: "empty auth address",
			cfg: Config{Services: Services{
				NotesAddress:   "http://localhost:8002",
				RequestTimeout: time.Second,
			}},
			wantErr: ErrInvalidAddress,
		},
		{
			name: "zero timeout",
			cfg: Config{Services: Services{
				AuthAddress:  "http://localhost:8001",
				NotesAddress: "http://localhost:8002",
			}},
			wantErr: ErrInvalidTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
