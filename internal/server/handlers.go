package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/spren9er/cactuz-sub000/pkg/errors"
	"github.com/spren9er/cactuz-sub000/pkg/graph"
	"github.com/spren9er/cactuz-sub000/pkg/pipeline"
)

// maxRequestBody caps request bodies at 16 MiB. Input documents are flat
// node/edge lists, so anything beyond this is almost certainly abuse.
const maxRequestBody = 16 << 20

// renderRequest is the body for POST /api/render and POST /api/layouts.
type renderRequest struct {
	Document graph.Document   `json:"document"`
	Options  pipeline.Options `json:"options"`
}

// renderResponse carries artifacts inline. Binary formats (png) are
// base64-encoded by encoding/json's []byte handling.
type renderResponse struct {
	TreeHash  string             `json:"tree_hash"`
	Artifacts map[string][]byte  `json:"artifacts"`
	Stats     pipeline.Stats     `json:"stats"`
	CacheInfo pipeline.CacheInfo `json:"cache_info"`
}

type createLayoutResponse struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRenderRequest(w, r)
	if !ok {
		return
	}

	result, err := s.runner.Execute(r.Context(), req.Document, req.Options)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, renderResponse{
		TreeHash:  result.TreeHash,
		Artifacts: result.Artifacts,
		Stats:     result.Stats,
		CacheInfo: result.CacheInfo,
	})
}

func (s *Server) handleCreateLayout(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRenderRequest(w, r)
	if !ok {
		return
	}

	l, err := s.runner.ComputeLayout(r.Context(), req.Document, req.Options)
	if err != nil {
		s.writeError(w, err)
		return
	}

	sl, err := s.store.Save(r.Context(), req.Options, l)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createLayoutResponse{
		ID:        sl.ID,
		CreatedAt: sl.CreatedAt.Format(time.RFC3339),
	})
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sl, err := s.store.Load(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sl)
}

func (s *Server) handleListLayouts(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.writeError(w, errors.New(errors.ErrCodeInvalidInput,
				"invalid limit: %q", raw))
			return
		}
		limit = n
	}

	layouts, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, layouts)
}

func (s *Server) handleDeleteLayout(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) decodeRenderRequest(w http.ResponseWriter, r *http.Request) (renderRequest, bool) {
	var req renderRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return renderRequest{}, false
	}
	if len(req.Document.Nodes) == 0 {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "document has no nodes"))
		return renderRequest{}, false
	}
	return req, true
}

// writeError maps error codes to HTTP status codes and emits a JSON body.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{
		Error: errors.UserMessage(err),
		Code:  string(errors.GetCode(err)),
	})
}

func statusForError(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidStyle,
		errors.ErrCodeInvalidOptions,
		errors.ErrCodeInvalidGraph:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound,
		errors.ErrCodeLayoutNotFound,
		errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
