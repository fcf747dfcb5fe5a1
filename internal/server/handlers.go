package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/courtdata/stats-tracker/internal/common"
	"github.com/courtdata/stats-tracker/internal/repository"
	"github.com/courtdata/stats-tracker/internal/service"
)

type handler struct {
	Deps
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.DB != nil {
		if err := repository.HealthCheck(ctx, h.DB, 2*time.Second, h.Logger); err != nil {
			h.respondError(w, http.StatusServiceUnavailable, "database unhealthy", err)
			return
		}
	}
	h.respondJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   "stats-tracker",
	})
}

// upload accepts a multipart batch: every file part is one document of the
// same match.
func (h *handler) upload(w http.ResponseWriter, r *http.Request) {
	if h.Cfg.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadBytes)
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid multipart body", err)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	var files []service.UploadFile
	var closers []io.Closer
	defer func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}()
	for _, headers := range r.MultipartForm.File {
		for _, fh := range headers {
			f, err := fh.Open()
			if err != nil {
				h.respondError(w, http.StatusBadRequest, "unreadable file part", err)
				return
			}
			closers = append(closers, f)
			files = append(files, service.UploadFile{Filename: fh.Filename, Content: f})
		}
	}

	result, err := h.Upload.ProcessBatch(r.Context(), files)
	if err != nil {
		h.respondError(w, statusFor(err), "batch rejected", err)
		return
	}
	h.respondJSON(w, http.StatusCreated, result)
}

func (h *handler) importJSON(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "unreadable body", err)
		return
	}
	ids, err := h.Upload.ImportJSON(r.Context(), raw)
	if err != nil {
		h.respondError(w, statusFor(err), "import rejected", err)
		return
	}
	h.respondJSON(w, http.StatusCreated, map[string]any{
		"imported":  len(ids),
		"match_ids": ids,
	})
}

func (h *handler) listMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := h.Repo.ListMatches(r.Context())
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "failed to list matches", err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{
		"matches": matches,
		"count":   len(matches),
	})
}

func (h *handler) latestMatch(w http.ResponseWriter, r *http.Request) {
	m, err := h.Repo.LatestMatch(r.Context())
	if err != nil {
		h.respondError(w, statusFor(err), "no match found", err)
		return
	}
	h.respondJSON(w, http.StatusOK, m)
}

// findMatch looks a match up by date and a team-name fragment:
// /api/matches/find?date=2023-10-14&opponent=ALPHA
func (h *handler) findMatch(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	team := r.URL.Query().Get("opponent")
	v := common.NewValidator().
		Field("date", date, common.Required, common.ISODate).
		Field("opponent", team, common.Required)
	if v.HasErrors() {
		h.respondError(w, http.StatusBadRequest, v.ErrorMessage(), v.Error())
		return
	}
	m, err := h.Repo.FindMatch(r.Context(), date, team)
	if err != nil {
		h.respondError(w, statusFor(err), "no match found", err)
		return
	}
	h.respondJSON(w, http.StatusOK, m)
}

func (h *handler) getMatch(w http.ResponseWriter, r *http.Request) {
	id, ok := h.matchID(w, r)
	if !ok {
		return
	}
	m, err := h.Repo.GetMatch(r.Context(), id)
	if err != nil {
		h.respondError(w, statusFor(err), "no match found", err)
		return
	}
	h.respondJSON(w, http.StatusOK, m)
}

func (h *handler) matchLineups(w http.ResponseWriter, r *http.Request) {
	id, ok := h.matchID(w, r)
	if !ok {
		return
	}
	m, err := h.Repo.GetMatch(r.Context(), id)
	if err != nil {
		h.respondError(w, statusFor(err), "no match found", err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{
		"match_id": m.ID,
		"lineups":  m.Lineups,
		"count":    len(m.Lineups),
	})
}

func (h *handler) exportMatch(w http.ResponseWriter, r *http.Request) {
	id, ok := h.matchID(w, r)
	if !ok {
		return
	}
	raw, name, err := h.Exporter.ExportMatchXLSX(r.Context(), id)
	if err != nil {
		h.respondError(w, statusFor(err), "export failed", err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(raw); err != nil {
		h.Logger.Error("export.write", "error", err)
	}
}

func (h *handler) deleteMatch(w http.ResponseWriter, r *http.Request) {
	id, ok := h.matchID(w, r)
	if !ok {
		return
	}
	if err := h.Repo.DeleteMatch(r.Context(), id); err != nil {
		h.respondError(w, statusFor(err), "delete failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) playerHistory(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		h.respondError(w, http.StatusBadRequest, "player name is required", nil)
		return
	}
	games, err := h.Repo.PlayerHistory(r.Context(), name)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "failed to load player history", err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{
		"player": name,
		"games":  games,
		"count":  len(games),
	})
}

func (h *handler) matchID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "match id must be numeric", err)
		return 0, false
	}
	return id, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrMissingPrimary),
		errors.Is(err, common.ErrInvalidInput),
		errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("respond.encode", "error", err)
	}
}

func (h *handler) respondError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		h.Logger.Warn("request.failed", "status", status, "message", message, "error", err)
	}
	h.respondJSON(w, status, errorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}
