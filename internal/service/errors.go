package service

import (
	"errors"
	"strings"
)

var (
	// ErrNoOrderableItems means every meal reference in an order failed to
	// resolve; the request is rejected rather than stored empty.
	ErrNoOrderableItems = errors.New("no orderable items after resolving meal references")
)

// ValidationError aggregates every field problem in a request so the
// caller gets a single 400 naming all of them.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid request: " + strings.Join(e.Problems, "; ")
}

// AsValidation unwraps err into a *ValidationError when it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
