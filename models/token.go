package models

// Token is the bearer credential issued by the auth service token endpoint.
// The client treats AccessToken as opaque; no expiry is tracked locally and
// validity is determined only by collaborator responses.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}
