package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/hyperfill/formfill/internal/profile"
	"github.com/hyperfill/formfill/internal/types"
)

// ImportProfileRequest carries either raw CSV text or already-decoded rows
type ImportProfileRequest struct {
	CSV        string      `json:"csv" validate:"required_without=Rows"`
	Rows       []types.Row `json:"rows" validate:"required_without=CSV"`
	SourceName string      `json:"source_name,omitempty" validate:"max=255"`
}

// ImportProfileResponse is returned once an imported profile has been stored
type ImportProfileResponse struct {
	ID      uuid.UUID      `json:"id"`
	Profile *types.Profile `json:"profile"`
}

// ImportWarningResponse reports an import that produced no profile
type ImportWarningResponse struct {
	Error string                 `json:"error"`
	Kind  profile.ImportErrorKind `json:"kind"`
}

// handleImportProfile maps the first meaningful row onto a profile and stores it
func (s *Server) handleImportProfile(w http.ResponseWriter, r *http.Request) {
	var req ImportProfileRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	var (
		p   *types.Profile
		err error
	)
	if req.Rows != nil {
		p, err = profile.FromRows(req.Rows)
	} else {
		p, err = profile.ImportCSV(req.CSV)
	}

	var importErr *profile.ImportError
	if errors.As(err, &importErr) {
		s.jsonResponse(w, HTTPStatus(err), ImportWarningResponse{Error: importErr.Message, Kind: importErr.Kind})
		return
	}
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	id, err := s.repo.CreateProfile(r.Context(), req.SourceName, p)
	if err != nil {
		log.Printf("[IMPORT] Failed to store profile: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to store profile")
		return
	}

	s.jsonResponse(w, http.StatusCreated, ImportProfileResponse{ID: id, Profile: p})
}

// handleGetProfile returns a stored profile
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	idStr := r.PathValue("id")
	if idStr == "" {
		s.errorResponse(w, http.StatusBadRequest, "Profile ID is required")
		return
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid profile ID")
		return
	}

	rec, err := s.repo.GetProfile(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}
	if rec == nil {
		notFound := &ErrNotFound{Resource: "profile", ID: idStr}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, rec)
}
