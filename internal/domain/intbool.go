package domain

import (
	"bytes"
	"fmt"
	"strconv"
)

// IntBool is a boolean transported as the integer 0 or 1 on the wire.
// The legacy clients of this API send and expect is_active as an integer,
// so both forms are accepted on input and 0/1 is always produced on output.
type IntBool bool

// MarshalJSON encodes the value as 0 or 1.
func (b IntBool) MarshalJSON() ([]byte, error) {
	if b {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

// UnmarshalJSON accepts 0/1, "0"/"1", and plain JSON booleans.
func (b *IntBool) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	switch s {
	case "0", "false":
		*b = false
		return nil
	case "1", "true":
		*b = true
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		*b = n != 0
		return nil
	}
	return fmt.Errorf("is_active must be 0 or 1, got %s: %w", data, ErrValidation)
}

// Bool returns the plain boolean value.
func (b IntBool) Bool() bool { return bool(b) }
