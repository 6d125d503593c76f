package native

import (
	"fmt"
	"sync"
)

// AbsSymbol is the C runtime symbol this package declares.
const AbsSymbol = "abs"

// ProcessImage names the global symbol scope of the running process, which
// already carries the C runtime.
const ProcessImage = "process image"

// Library is a binding to one dynamically loaded native library.
// It is not meant to outlive a single invocation.
type Library struct {
	path    string
	handle  uintptr
	process bool

	mu     sync.Mutex
	closed bool
}

// Open binds to the native library at path. An empty path binds to the
// process image, so symbols resolve against the C runtime the process was
// started with.
func Open(path string) (*Library, error) {
	if path == "" {
		handle, err := processHandle()
		if err != nil {
			return nil, &BindingError{Library: ProcessImage, Err: err}
		}
		return &Library{handle: handle, process: true}, nil
	}

	handle, err := openLibrary(path)
	if err != nil {
		return nil, &BindingError{Library: path, Err: err}
	}

	return &Library{path: path, handle: handle}, nil
}

// Path returns the path the library was opened with, empty for the process image.
func (l *Library) Path() string {
	return l.path
}

func (l *Library) name() string {
	if l.process {
		return ProcessImage
	}
	return l.path
}

// Bind resolves symbol and declares its signature by filling fptr, which
// must be a pointer to a Go func variable.
func (l *Library) Bind(symbol string, fptr any) (err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return &BindingError{Library: l.name(), Symbol: symbol, Err: ErrLibraryClosed}
	}

	addr, err := lookupSymbol(l.handle, symbol)
	if err != nil {
		return &BindingError{Library: l.name(), Symbol: symbol, Err: err}
	}

	// purego panics on signatures it cannot marshal
	defer func() {
		if r := recover(); r != nil {
			err = &SignatureError{
				Symbol:    symbol,
				Signature: fmt.Sprintf("%T", fptr),
				Err:       fmt.Errorf("%v", r),
			}
		}
	}()

	registerFunc(fptr, addr)
	return nil
}

// Abs declares int abs(int) and returns it as a Go func.
func (l *Library) Abs() (func(int32) int32, error) {
	var abs func(int32) int32
	if err := l.Bind(AbsSymbol, &abs); err != nil {
		return nil, err
	}
	return abs, nil
}

// Close releases the binding. Funcs returned by Bind must not be called afterwards.
func (l *Library) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true
	if l.process {
		return nil
	}

	if err := closeLibrary(l.handle); err != nil {
		return &BindingError{Library: l.name(), Err: err}
	}
	return nil
}
