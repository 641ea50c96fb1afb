package server

import (
	"log"
	"net/http"

	"github.com/hyperfill/formfill/internal/sites"
	"github.com/hyperfill/formfill/internal/types"
)

// CreateSiteRequest is site metadata plus the form to classify
type CreateSiteRequest struct {
	sites.Metadata
	HTML string `json:"html" validate:"required_without=URL"`
	URL  string `json:"url" validate:"omitempty,url"`
}

// CreateSiteResponse returns the stored definition
type CreateSiteResponse struct {
	Site     *types.SiteDefinition `json:"site"`
	Replaced bool                  `json:"replaced"`
}

// handleCreateSite classifies a form, assembles a site definition and stores it
func (s *Server) handleCreateSite(w http.ResponseWriter, r *http.Request) {
	var req CreateSiteRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	result, err := s.generate(r.Context(), req.HTML, req.URL, req.FormSelector)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	def, err := sites.Assemble(req.Metadata, result)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	replaced, err := s.repo.UpsertSiteDefinition(r.Context(), def)
	if err != nil {
		log.Printf("Failed to store site definition %s: %v", def.ID, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to store site definition")
		return
	}

	status := http.StatusCreated
	if replaced {
		status = http.StatusOK
	}
	s.jsonResponse(w, status, CreateSiteResponse{Site: def, Replaced: replaced})
}

// handleListSites returns the stored dataset
func (s *Server) handleListSites(w http.ResponseWriter, r *http.Request) {
	defs, err := s.repo.ListSiteDefinitions(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list site definitions")
		return
	}
	s.jsonResponse(w, http.StatusOK, types.SiteDataset{Sites: sites.Effective(nil, defs)})
}
