package document

import "fmt"

// UnsupportedFormatError is returned for files whose extension has no decoder.
type UnsupportedFormatError struct {
	Path      string
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Extension == "" {
		return fmt.Sprintf("unsupported document format: %s has no extension", e.Path)
	}
	return fmt.Sprintf("unsupported document format %q: %s", e.Extension, e.Path)
}

// DecodeError wraps a failure to read or decode a supported document.
type DecodeError struct {
	Path  string
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
