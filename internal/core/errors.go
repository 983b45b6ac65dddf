package core

import "errors"

var (
	ErrKeyNotFound      = errors.New("key not found")
	ErrUnsupportedValue = errors.New("unsupported value")
)
