package client

import "errors"

var ErrFlightNotFound = errors.New("flight not found")
