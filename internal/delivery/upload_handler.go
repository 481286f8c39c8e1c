package delivery

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/Vovarama1992/baluplix/internal/domain"
)

type UploadHandler struct {
	uploader *domain.Uploader
	log      *zap.SugaredLogger
}

func NewUploadHandler(uploader *domain.Uploader, log *zap.SugaredLogger) *UploadHandler {
	return &UploadHandler{uploader: uploader, log: log}
}

// POST /upload-target
func (h *UploadHandler) IssueTarget(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Filename    string `json:"filename"`
		ContentType string `json:"contentType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.log, domain.ErrValidation("invalid json body"))
		return
	}

	target, err := h.uploader.IssueUploadTarget(r.Context(), req.Filename, req.ContentType)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	h.log.Infow("upload target issued", "storageKey", target.StorageKey)
	respondJSON(w, http.StatusOK, target)
}
