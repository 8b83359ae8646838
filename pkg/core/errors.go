package core

import "errors"

// Common errors.
var (
	ErrExists   = errors.New("file already exists in vault")
	ErrNotFound = errors.New("not found")
)
