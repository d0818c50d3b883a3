package blackbird

import (
	"errors"
	"fmt"
)

var (
	// ErrCircularChain is the error a promise is rejected with when it's
	// resolved with itself, directly or through any depth of forwarding.
	ErrCircularChain = errors.New("blackbird: promise resolved with itself")

	// ErrNotSequence is the error the collection combinators (AMap,
	// AReduce, AFilter, and the Map/Reduce/Filter stages) reject with
	// when the source promise settles with something that isn't a
	// sequence.
	ErrNotSequence = errors.New("blackbird: result is not a sequence")
)

// PanicError wraps a panic value recovered inside a continuation or an
// initializer, so it can travel down the error path of the chain.
type PanicError struct {
	V any
}

func (e PanicError) Error() string {
	return fmt.Sprintf("blackbird: panic in promise chain: %v", e.V)
}

// Unwrap exposes the panic value when it's itself an error, so that
// errors.Is and errors.As keep working through a recovered panic.
func (e PanicError) Unwrap() error {
	if err, ok := e.V.(error); ok {
		return err
	}
	return nil
}
