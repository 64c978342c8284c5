package server

import "errors"

// ErrNoListenAddress is returned when the control API is configured
// without a listen address.
var ErrNoListenAddress = errors.New("no control listen address configured")
