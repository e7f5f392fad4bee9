package store

import "errors"

var ErrNoToken = errors.New("no session token stored")
