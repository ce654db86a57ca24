package core

import "errors"

var (
	ErrMalformedHexKey  = errors.New("malformed hex key")
	ErrMalformedEdgeKey = errors.New("malformed edge key")
)
