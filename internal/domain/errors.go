package domain

import "errors"

var (
	ErrInvalidID   = errors.New("invalid id")
	ErrInvalidSize = errors.New("invalid size")
)
