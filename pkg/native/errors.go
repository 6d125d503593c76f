package native

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedPlatform is returned when the host has no dynamic loader purego can drive.
	ErrUnsupportedPlatform = errors.New("dynamic native binding is not supported on this platform")

	// ErrCgoDisabled is returned by Static when the binary was built without cgo.
	ErrCgoDisabled = errors.New("static native binding requires cgo")

	// ErrLibraryClosed is returned when a closed Library is used.
	ErrLibraryClosed = errors.New("native library already closed")
)

// BindingError reports that a native library or one of its symbols could not be reached.
type BindingError struct {
	Library string
	Symbol  string
	Err     error
}

func (e *BindingError) Error() string {
	if e.Symbol != "" {
		return fmt.Sprintf("failed to resolve symbol %s in native library %s, error: %v", e.Symbol, e.Library, e.Err)
	}
	return fmt.Sprintf("failed to open native library %s, error: %v", e.Library, e.Err)
}

func (e *BindingError) Unwrap() error {
	return e.Err
}

// SignatureError reports that the binding layer rejected a declared function signature.
type SignatureError struct {
	Symbol    string
	Signature string
	Err       error
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("signature %s rejected for symbol %s, error: %v", e.Signature, e.Symbol, e.Err)
}

func (e *SignatureError) Unwrap() error {
	return e.Err
}
