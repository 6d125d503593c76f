//go:build linux || darwin

package native

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenProcessImage(t *testing.T) {
	lib, err := Open("")
	require.NoError(t, err)

	assert.Empty(t, lib.Path())

	abs, err := lib.Abs()
	require.NoError(t, err)
	assert.Equal(t, int32(123), abs(-123))

	// the process image is never dlclosed
	assert.NoError(t, lib.Close())
}

func TestOpenMissingLibrary(t *testing.T) {
	lib, err := Open("libdoes-not-exist.so.42")
	assert.Nil(t, lib)

	var bindErr *BindingError
	require.ErrorAs(t, err, &bindErr)
	assert.Equal(t, "libdoes-not-exist.so.42", bindErr.Library)
	assert.Empty(t, bindErr.Symbol)
}

func TestAbs(t *testing.T) {
	lib, err := Open("")
	require.NoError(t, err)
	defer lib.Close()

	abs, err := lib.Abs()
	require.NoError(t, err)

	assert.Equal(t, int32(123), abs(-123))
	assert.Equal(t, int32(123), abs(123))
	assert.Equal(t, int32(0), abs(0))
}

func TestBindMissingSymbol(t *testing.T) {
	lib, err := Open("")
	require.NoError(t, err)
	defer lib.Close()

	var fn func(int32) int32
	err = lib.Bind("definitely_not_a_libc_symbol", &fn)

	var bindErr *BindingError
	require.ErrorAs(t, err, &bindErr)
	assert.Equal(t, "definitely_not_a_libc_symbol", bindErr.Symbol)
	assert.Equal(t, ProcessImage, bindErr.Library)
	assert.Nil(t, fn)
}

func TestBindRejectedSignature(t *testing.T) {
	lib, err := Open("")
	require.NoError(t, err)
	defer lib.Close()

	tests := []struct {
		name      string
		fptr      any
		signature string
	}{
		{name: "not a pointer", fptr: 42, signature: "int"},
		{name: "pointer to non func", fptr: new(int32), signature: "*int32"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := lib.Bind(AbsSymbol, tt.fptr)

			var sigErr *SignatureError
			require.ErrorAs(t, err, &sigErr)
			assert.Equal(t, AbsSymbol, sigErr.Symbol)
			assert.Equal(t, tt.signature, sigErr.Signature)
		})
	}
}

func TestClosedLibrary(t *testing.T) {
	lib, err := Open("")
	require.NoError(t, err)

	require.NoError(t, lib.Close())
	// second close is a no-op
	require.NoError(t, lib.Close())

	_, err = lib.Abs()
	assert.True(t, errors.Is(err, ErrLibraryClosed))
}
