package generator

import "errors"

var (
	ErrInvalidConfig    = errors.New("invalid generation config")
	ErrIDSpaceExhausted = errors.New("document id space exhausted")
)
