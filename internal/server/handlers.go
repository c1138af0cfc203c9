package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/itemdex/internal/catalog"
	"github.com/leapstack-labs/itemdex/internal/service"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleUpload accepts raw item file content. The filename travels in the
// "filename" query parameter; name and size checks happen here, before the
// service sees the content.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")

	filename := r.URL.Query().Get("filename")
	if !strings.EqualFold(filename, s.cfg.UploadFilename) {
		s.writeError(w, http.StatusBadRequest,
			"upload must be named "+s.cfg.UploadFilename+", got "+strconv.Quote(filename))
		return
	}

	body := http.MaxBytesReader(w, r.Body, s.cfg.UploadMaxBytes)
	content, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge,
				"upload exceeds "+strconv.FormatInt(s.cfg.UploadMaxBytes, 10)+" bytes")
			return
		}
		s.writeError(w, http.StatusBadRequest, "failed to read upload: "+err.Error())
		return
	}

	res, err := s.svc.Upload(r.Context(), tenantID, content)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")
	q := r.URL.Query()

	cat, err := catalog.ParseCategory(q.Get("category"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	page := 1
	if raw := q.Get("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "page must be an integer")
			return
		}
	}

	result, err := s.svc.Search(r.Context(), tenantID, q.Get("q"), cat, page)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

// controlRequest is a control activation forwarded by the interaction
// router, carrying the opaque round-tripped state exactly as rendered.
type controlRequest struct {
	TenantID  string `json:"tenant_id"`
	ControlID string `json:"control_id"`
	Indicator string `json:"indicator"`
}

func (s *Server) handleControl(w http.ResponseWriter, r *http.Request) {
	var req controlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	act, err := s.svc.Activate(r.Context(), req.TenantID, req.ControlID, req.Indicator)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if act.NoOp {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.writeJSON(w, http.StatusOK, act.Page)
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	sum, err := s.svc.Info(r.Context(), chi.URLParam(r, "tenantID"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sum)
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "itemID"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "item id must be an integer")
		return
	}

	item, err := s.svc.Lookup(r.Context(), chi.URLParam(r, "tenantID"), id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, item)
}

// adminHeader carries the platform-resolved admin flag. Resolving the
// caller's actual permissions is the interaction router's job.
const adminHeader = "X-Itemdex-Admin"

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	isAdmin := strings.EqualFold(r.Header.Get(adminHeader), "true")

	if err := s.svc.Delete(r.Context(), chi.URLParam(r, "tenantID"), isAdmin); err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	var (
		validation *service.ValidationError
		empty      *service.EmptyResultError
		notFound   *service.NotFoundError
		tooMany    *service.TooManyMatchesError
		permission *service.PermissionError
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &empty), errors.As(err, &tooMany):
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &notFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &permission):
		s.writeError(w, http.StatusForbidden, err.Error())
	default:
		// Malformed round-tripped control state and anything unexpected.
		s.writeError(w, http.StatusBadRequest, err.Error())
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
