package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/hyperfill/formfill/internal/fetch"
	"github.com/hyperfill/formfill/internal/formmap"
	"github.com/hyperfill/formfill/internal/profile"
	"github.com/hyperfill/formfill/internal/sites"
)

// ErrNotFound indicates a requested record does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		notFound   *ErrNotFound
		validation *ErrValidation
		importErr  *profile.ImportError
		scopeErr   *formmap.ScopeNotFoundError
		parseErr   *formmap.ParseError
		assembly   *sites.AssembleError
		dataset    *sites.DatasetError
		fetchErr   *fetch.Error
	)

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &importErr), errors.As(err, &scopeErr), errors.As(err, &parseErr),
		errors.As(err, &assembly), errors.As(err, &dataset):
		return http.StatusUnprocessableEntity
	case errors.As(err, &fetchErr):
		if fetchErr.Invalid {
			return http.StatusBadRequest
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func extractValidationErrors(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		// Return first validation error for simplicity
		ve := validationErrors[0]
		return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
	}
	return "validation error: invalid request"
}
