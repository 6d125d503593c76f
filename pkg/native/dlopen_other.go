//go:build !(linux || darwin || freebsd)

package native

func openLibrary(string) (uintptr, error) {
	return 0, ErrUnsupportedPlatform
}

func processHandle() (uintptr, error) {
	return 0, ErrUnsupportedPlatform
}

func lookupSymbol(uintptr, string) (uintptr, error) {
	return 0, ErrUnsupportedPlatform
}

func closeLibrary(uintptr) error {
	return nil
}

func registerFunc(any, uintptr) {
	panic(ErrUnsupportedPlatform)
}
