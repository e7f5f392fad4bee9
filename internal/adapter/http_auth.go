package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/avoronov/notka/internal/logger"
	"github.com/avoronov/notka/models"
)

// MaxPasswordLength is the longest password accepted at registration.
// Longer values are rejected locally, before a request is issued; the
// limit matches the auth service's bcrypt input bound.
const MaxPasswordLength = 72

type httpAuthAdapter struct {
	client *resty.Client
	logger *logger.Logger
}

// NewHTTPAuthAdapter constructs an HTTP implementation of [AuthAdapter]
// against the auth service at baseURL. Returns an error if baseURL is empty
// or cannot be parsed.
func NewHTTPAuthAdapter(baseURL string, timeout time.Duration, log *logger.Logger) (AuthAdapter, error) {
	normalized, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid auth service address: %w", err)
	}

	cli := resty.New().
		SetBaseURL(normalized).
		SetTimeout(timeout)

	return &httpAuthAdapter{client: cli, logger: log}, nil
}

// Login implements [AuthAdapter]. The token endpoint expects form-encoded
// credentials, not JSON. A 400 or 401 answer means the credentials were
// rejected and is surfaced as [ErrInvalidCredentials].
func (a *httpAuthAdapter) Login(ctx context.Context, creds models.Credentials) (models.Token, error) {
	var token models.Token

	resp, err := a.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"username": creds.Username,
			"password": creds.Password,
		}).
		SetResult(&token).
		Post("/token")
	if err != nil {
		return models.Token{}, fmt.Errorf("login request: %w", err)
	}

	switch resp.StatusCode() {
	case http.StatusBadRequest, http.StatusUnauthorized:
		return models.Token{}, ErrInvalidCredentials
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Token{}, err
	}

	if token.AccessToken == "" {
		return models.Token{}, errors.New("login response carries no access token")
	}

	a.logger.Debug().Str("username", creds.Username).Msg("login succeeded")
	return token, nil
}

// Register implements [AuthAdapter]. It POSTs the credentials as a JSON
// body. The password length precondition is checked first: a violation
// returns [ErrPasswordTooLong] with no network call performed.
func (a *httpAuthAdapter) Register(ctx context.Context, creds models.Credentials) (models.RegisterResult, error) {
	if len(creds.Password) > MaxPasswordLength {
		return models.RegisterResult{}, ErrPasswordTooLong
	}

	var result models.RegisterResult

	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(creds).
		SetResult(&result).
		Post("/register")
	if err != nil {
		return models.RegisterResult{}, fmt.Errorf("register request: %w", err)
	}

	// The auth service signals a duplicate username with 400.
	if resp.StatusCode() == http.StatusBadRequest {
		return models.RegisterResult{}, ErrUsernameTaken
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RegisterResult{}, err
	}

	a.logger.Debug().Str("username", creds.Username).Msg("registration succeeded")
	return result, nil
}
