//go:build cgo

package native

/*
#include <stdlib.h>
*/
import "C"

// Static returns abs linked into the binary at build time. There is no
// binding step, so it only fails when cgo is unavailable.
func Static() (func(int32) int32, error) {
	return func(n int32) int32 {
		return int32(C.abs(C.int(n)))
	}, nil
}
