package asciify

import (
	"errors"
	"fmt"
)

var (
	// ErrDecode matches every *DecodeError.
	ErrDecode = errors.New("asciify: cannot decode image")
	// ErrInvalidOptions matches every *InvalidOptionsError.
	ErrInvalidOptions = errors.New("asciify: invalid options")
	// ErrInternal matches every *InternalComputationError.
	ErrInternal = errors.New("asciify: internal computation error")
)

// DecodeError reports an image that could not be read: unsupported or
// corrupt data, an empty image, or input over the size ceiling.
type DecodeError struct {
	// Format is the detected format name, if any.
	Format string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("asciify: cannot decode %s image: %v", e.Format, e.Err)
	}
	return fmt.Sprintf("asciify: cannot decode image: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// InvalidOptionsError reports configuration that cannot be clamped or
// defaulted into something usable.
type InvalidOptionsError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InvalidOptionsError) Error() string {
	return fmt.Sprintf("asciify: invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidOptionsError) Is(target error) bool { return target == ErrInvalidOptions }

// InternalComputationError reports a defect inside the pipeline, such as
// an out-of-range index. It is never expected under correct operation.
type InternalComputationError struct {
	Op    string
	Cause any
	Stack []byte
}

func (e *InternalComputationError) Error() string {
	return fmt.Sprintf("asciify: internal error in %s: %v", e.Op, e.Cause)
}

func (e *InternalComputationError) Unwrap() error {
	if err, ok := e.Cause.(error); ok {
		return err
	}
	return nil
}

func (e *InternalComputationError) Is(target error) bool { return target == ErrInternal }
