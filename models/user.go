package models

// Credentials carries the username/password pair entered by the user.
// Login submits it form-encoded, Register as a JSON body; the json tags
// cover the latter.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterResult is the confirmation payload returned by the auth service
// after a successful registration.
type RegisterResult struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}
