package handler

import (
	"errors"
	"fmt"

	"github.com/3s-rg-codes/nativeabs/pkg/native"
)

// Binding modes accepted by NewBinder.
const (
	// BindingDynamic loads the C runtime with dlopen on every invocation.
	BindingDynamic = "dynamic"
	// BindingStatic calls the abs linked in by cgo.
	BindingStatic = "static"
)

// ErrUnknownBinding is returned by NewBinder for an unrecognised mode.
var ErrUnknownBinding = errors.New("unknown binding mode")

// Binder hands out abs for exactly one invocation. release must be called
// once the invocation is done with abs.
type Binder interface {
	BindAbs() (abs func(int32) int32, release func() error, err error)
}

// NewBinder returns the Binder for mode. library is only used by the dynamic binding.
func NewBinder(mode, library string) (Binder, error) {
	switch mode {
	case BindingDynamic, "":
		return &DynamicBinder{Library: library}, nil
	case BindingStatic:
		return StaticBinder{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBinding, mode)
	}
}

// DynamicBinder opens a fresh binding to Library on every call.
type DynamicBinder struct {
	Library string
}

func (b *DynamicBinder) BindAbs() (func(int32) int32, func() error, error) {
	lib, err := native.Open(b.Library)
	if err != nil {
		return nil, nil, err
	}

	abs, err := lib.Abs()
	if err != nil {
		// the bind error is what the caller needs to see
		_ = lib.Close()
		return nil, nil, err
	}

	return abs, lib.Close, nil
}

// StaticBinder uses the abs linked in at build time.
type StaticBinder struct{}

func (StaticBinder) BindAbs() (func(int32) int32, func() error, error) {
	abs, err := native.Static()
	if err != nil {
		return nil, nil, err
	}
	return abs, func() error { return nil }, nil
}
