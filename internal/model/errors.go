package model

import "errors"

// Storage-level errors. Every store implementation returns these so services
// never depend on driver error types.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)
