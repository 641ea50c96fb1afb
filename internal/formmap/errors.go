// Package formmap infers the profile role of each fillable control in pasted form markup
// and builds the role-to-selector mapping stored in a site definition.
package formmap

import "fmt"

// ScopeNotFoundError reports a form selector that matched nothing in the markup
type ScopeNotFoundError struct {
	Selector string
}

func (e *ScopeNotFoundError) Error() string {
	return fmt.Sprintf("formSelector not found: %s", e.Selector)
}

// ParseError represents a failure reading the markup
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
