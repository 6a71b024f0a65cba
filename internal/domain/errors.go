// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrNotFound indicates the requested entity does not exist (or is inactive).
var ErrNotFound = errors.New("not found")

// ErrValidation indicates missing or malformed input. It is always wrapped
// with a message naming the offending field.
var ErrValidation = errors.New("validation failed")

// ErrInsufficientInventory indicates a purchase requested more tickets than
// are currently available.
var ErrInsufficientInventory = errors.New("not enough tickets available")
