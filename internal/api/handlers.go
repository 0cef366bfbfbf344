package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	oerrors "github.com/matzehuels/orrery/pkg/errors"
	"github.com/matzehuels/orrery/pkg/layout"
	"github.com/matzehuels/orrery/pkg/spec"
	"github.com/matzehuels/orrery/pkg/store"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSolve reads a problem document from the request body, solves it, and
// responds with the layout JSON. The body may be YAML or JSON. A solved
// layout is also saved to the store, and its location is exposed through the
// Location header; an unsatisfiable or budget-exhausted problem still
// responds 200, with the outcome carried inside the layout.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	problem, err := spec.Read(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, oerrors.ErrCodeInvalidSpec, err)
		return
	}

	l, err := s.engine.Solve(r.Context(), problem)
	if err != nil {
		writeError(w, http.StatusBadRequest, oerrors.ErrCodeInvalidSpec, err)
		return
	}

	if id, err := s.store.Save(r.Context(), l); err != nil {
		// The layout is still good; only retrieval by id is lost.
		s.logger.Error("store layout", "err", err)
	} else {
		w.Header().Set("Location", "/api/v1/layouts/"+id)
	}
	s.writeLayout(w, l)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	l, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, oerrors.ErrCodeLayoutNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, oerrors.ErrCodeStoreUnavailable, err)
		return
	}
	s.writeLayout(w, l)
}

// writeLayout responds with the same pretty-printed JSON the CLI and cache
// produce, so a layout fetched over HTTP is byte-identical to one written to
// disk.
func (s *Server) writeLayout(w http.ResponseWriter, l *layout.Layout) {
	data, err := layout.Marshal(*l)
	if err != nil {
		writeError(w, http.StatusInternalServerError, oerrors.ErrCodeInternal, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError responds with the error message plus a machine-readable code.
// A code already carried on the error chain wins over the fallback.
func writeError(w http.ResponseWriter, status int, fallback oerrors.Code, err error) {
	code := oerrors.GetCode(err)
	if code == "" {
		code = fallback
	}
	writeJSON(w, status, map[string]string{
		"error": oerrors.UserMessage(err),
		"code":  string(code),
	})
}
