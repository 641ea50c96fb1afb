// Package profile maps imported rows onto the canonical profile.
package profile

import "fmt"

// ImportErrorKind classifies why an import produced no profile.
type ImportErrorKind string

// Import outcomes surfaced to the user rather than treated as failures of the mapper.
const (
	KindEmptyFile       ImportErrorKind = "empty_file"
	KindAllBlankRows    ImportErrorKind = "all_blank_rows"
	KindUnsupportedType ImportErrorKind = "unsupported_file_type"
	KindDecodeFailed    ImportErrorKind = "decode_failed"
)

// ImportError reports an import that yielded no usable row
type ImportError struct {
	Kind    ImportErrorKind
	Message string
	Cause   error
}

func (e *ImportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("import error (%s): %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("import error (%s): %s", e.Kind, e.Message)
}

func (e *ImportError) Unwrap() error {
	return e.Cause
}
