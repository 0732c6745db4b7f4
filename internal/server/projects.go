package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	errs "github.com/mbertsch/critpath/pkg/errors"
	"github.com/mbertsch/critpath/pkg/plan"
	"github.com/mbertsch/critpath/pkg/store"
)

// projectRequest is the body for create and update.
type projectRequest struct {
	Name string    `json:"name"`
	Plan plan.Plan `json:"plan"`
}

// decodeProject validates the request body down to a buildable plan.
func decodeProject(r *http.Request) (*projectRequest, error) {
	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid request body")
	}
	if req.Name == "" {
		req.Name = req.Plan.Name
	}
	if req.Name == "" {
		return nil, errs.New(errs.ErrCodeInvalidInput, "project name is required")
	}
	if _, err := plan.Build(&req.Plan); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidPlan, err, "invalid plan")
	}
	return &req, nil
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	req, err := decodeProject(r)
	if err != nil {
		writeError(w, err)
		return
	}

	p := store.NewProject(req.Name, req.Plan)
	if err := s.store.Put(r.Context(), p); err != nil {
		writeError(w, errs.Wrap(errs.ErrCodeStore, err, "store project"))
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, errs.Wrap(errs.ErrCodeStore, err, "list projects"))
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	req, err := decodeProject(r)
	if err != nil {
		writeError(w, err)
		return
	}

	p.Name = req.Name
	p.Plan = req.Plan
	p.UpdatedAt = time.Now().UTC()
	if err := s.store.Put(r.Context(), p); err != nil {
		writeError(w, errs.Wrap(errs.ErrCodeStore, err, "store project"))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRenderProject renders a stored project's plan.
func (s *Server) handleRenderProject(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	g, err := plan.Build(&p.Plan)
	if err != nil {
		writeError(w, errs.Wrap(errs.ErrCodeInvalidPlan, err, "stored plan rejected"))
		return
	}
	s.renderSnapshot(w, r, p.Name, g.Snapshot())
}
