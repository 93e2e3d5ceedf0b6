package extract

import (
	"errors"
	"fmt"
)

// ErrDecode matches every error caused by a PDF that could not be opened or
// decoded
var ErrDecode = errors.New("pdf decode failure")

// DecodeError records where decoding failed
type DecodeError struct {
	// Page is the 0-based page index, or -1 for document-level failures
	Page int
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Page < 0 {
		return fmt.Sprintf("decode pdf: %v", e.Err)
	}
	return fmt.Sprintf("decode pdf page %d: %v", e.Page, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is makes every DecodeError match ErrDecode
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}
