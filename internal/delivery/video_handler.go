package delivery

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Vovarama1992/baluplix/internal/domain"
)

type VideoHandler struct {
	catalog *domain.Catalog
	log     *zap.SugaredLogger
}

func NewVideoHandler(catalog *domain.Catalog, log *zap.SugaredLogger) *VideoHandler {
	return &VideoHandler{catalog: catalog, log: log}
}

// POST /videos
func (h *VideoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.log, domain.ErrValidation("invalid json body"))
		return
	}

	video, err := h.catalog.Create(r.Context(), req)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	h.log.Infow("video created", "videoID", video.ID, "storageKey", video.StorageKey)
	respondJSON(w, http.StatusCreated, video)
}

// GET /videos — public, no auth
func (h *VideoHandler) ListPublished(w http.ResponseWriter, r *http.Request) {
	videos, err := h.catalog.ListPublished(r.Context())
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, videos)
}

// GET /admin/videos
func (h *VideoHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	videos, err := h.catalog.ListAll(r.Context())
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, videos)
}

// POST /video/{id}/publish
func (h *VideoHandler) SetPublished(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, h.log, domain.ErrValidation("missing id"))
		return
	}

	var req struct {
		Publish bool `json:"publish"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.log, domain.ErrValidation("invalid json body"))
		return
	}

	video, err := h.catalog.SetPublished(r.Context(), id, req.Publish)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	h.log.Infow("publish state changed", "videoID", video.ID, "published", video.Published)
	respondJSON(w, http.StatusOK, video)
}

// DELETE /admin/video/{id}
func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, h.log, domain.ErrValidation("missing id"))
		return
	}

	if err := h.catalog.Delete(r.Context(), id); err != nil {
		respondError(w, h.log, err)
		return
	}

	h.log.Infow("video deleted", "videoID", id)
	w.WriteHeader(http.StatusNoContent)
}
