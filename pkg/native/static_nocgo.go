//go:build !cgo

package native

// Static returns abs linked into the binary at build time. There is no
// binding step, so it only fails when cgo is unavailable.
func Static() (func(int32) int32, error) {
	return nil, &BindingError{Library: "static", Err: ErrCgoDisabled}
}
