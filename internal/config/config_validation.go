package config

import (
	"fmt"
	"net/url"
	"strings"
)

// validate checks the merged configuration for values the client cannot run
// with. It is called by the builder as the last step of build().
func (c *Config) validate() error {
	if err := validateBaseURL(c.Services.AuthAddress); err != nil {
		return fmt.Errorf("%w: auth address: %v", ErrInvalidAddress, err)
	}
	if err := validateBaseURL(c.Services.NotesAddress); err != nil {
		return fmt.Errorf("%w: notes address: %v", ErrInvalidAddress, err)
	}
	if c.Services.RequestTimeout <= 0 {
		return ErrInvalidTimeout
	}

	return nil
}

func validateBaseURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("address must include host and scheme")
	}

	return nil
}
