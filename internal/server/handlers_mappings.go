package server

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/hyperfill/formfill/internal/formmap"
	"github.com/hyperfill/formfill/internal/types"
)

// GenerateMappingRequest supplies form markup directly or a URL to fetch it from
type GenerateMappingRequest struct {
	HTML         string `json:"html" validate:"required_without=URL"`
	URL          string `json:"url" validate:"omitempty,url"`
	FormSelector string `json:"form_selector,omitempty"`
}

// markup returns the request's HTML, fetching the URL when no HTML was given
func (s *Server) markup(ctx context.Context, html, url string) (string, error) {
	if html != "" {
		return html, nil
	}
	if s.fetcher == nil {
		return "", &ErrValidation{Field: "url", Message: "fetching is not available"}
	}
	page, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	if s.verbose {
		log.Printf("[FETCH] %s: %d bytes (cached=%t, rendered=%t)", url, len(page.HTML), page.FromCache, page.Rendered)
	}
	return page.HTML, nil
}

// generate classifies markup, returning the result even when scoping failed
func (s *Server) generate(ctx context.Context, html, url, formSelector string) (*types.GenerateResult, error) {
	markup, err := s.markup(ctx, html, url)
	if err != nil {
		return nil, err
	}
	return formmap.Generate(markup, formSelector)
}

// handleGenerateMapping returns the role-to-selector mapping for a form
func (s *Server) handleGenerateMapping(w http.ResponseWriter, r *http.Request) {
	var req GenerateMappingRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	result, err := s.generate(r.Context(), req.HTML, req.URL, req.FormSelector)
	var scopeErr *formmap.ScopeNotFoundError
	switch {
	case errors.As(err, &scopeErr):
		s.jsonResponse(w, HTTPStatus(err), result)
	case err != nil:
		s.errorResponse(w, HTTPStatus(err), err.Error())
	default:
		s.jsonResponse(w, http.StatusOK, result)
	}
}
