package node

import "errors"

var (
	// ErrInvalidUniverse signals construction with a zero or non-power-of-two universe.
	ErrInvalidUniverse = errors.New("veb: universe must be a power of two >= 1")
	// ErrOutOfRange signals an insert whose key is >= the tree's universe.
	ErrOutOfRange = errors.New("veb: key out of range")
	// ErrInvalidConfig signals an invalid tree configuration.
	ErrInvalidConfig = errors.New("veb: invalid configuration")
)
