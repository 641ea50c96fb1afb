// Package sites assembles site definitions from generated mappings and maintains the
// site-mapping dataset they are merged into.
package sites

import "fmt"

// AssembleError represents a mapping that cannot become a site definition
type AssembleError struct {
	Message string
	Cause   error
}

func (e *AssembleError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("assemble error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("assemble error: %s", e.Message)
}

func (e *AssembleError) Unwrap() error {
	return e.Cause
}

// DatasetError represents a failure reading, validating or writing a site-mapping dataset
type DatasetError struct {
	Path    string
	Message string
	Cause   error
}

func (e *DatasetError) Error() string {
	target := e.Path
	if target == "" {
		target = "(inline)"
	}
	if e.Cause != nil {
		return fmt.Sprintf("dataset error for %s: %s: %v", target, e.Message, e.Cause)
	}
	return fmt.Sprintf("dataset error for %s: %s", target, e.Message)
}

func (e *DatasetError) Unwrap() error {
	return e.Cause
}
