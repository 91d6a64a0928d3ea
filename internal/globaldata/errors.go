package globaldata

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedValue is matched by errors returned when a value is not validly percent-encoded.
	ErrMalformedValue = errors.New("malformed percent-encoded value")
	// ErrInvalidUTF8 is wrapped by a DecodeError when escapes decode to bytes that are not UTF-8.
	ErrInvalidUTF8 = errors.New("decoded value is not valid UTF-8")
	// ErrUnknownVariant is returned when a variant name or value is not recognised.
	ErrUnknownVariant = errors.New("unknown global data variant")
)

// DecodeError reports the key whose value could not be percent-decoded.
type DecodeError struct {
	Key   string
	Value string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is lets callers match any DecodeError against ErrMalformedValue.
func (e *DecodeError) Is(target error) bool {
	return target == ErrMalformedValue
}
