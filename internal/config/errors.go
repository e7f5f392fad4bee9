package config

import "errors"

var (
	ErrInvalidAddress = errors.New("invalid service address")
	ErrInvalidTimeout = errors.New("request timeout must be positive")
)
