package delivery

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/Vovarama1992/baluplix/internal/domain"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// respondError maps the domain error taxonomy onto HTTP statuses.
// Upstream detail is logged here and never leaks to the caller.
func respondError(w http.ResponseWriter, log *zap.SugaredLogger, err error) {
	kind, ok := domain.KindOf(err)
	if !ok {
		log.Errorw("unexpected error", "error", err)
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "server error"})
		return
	}

	switch kind {
	case domain.KindValidation:
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": publicMessage(err)})
	case domain.KindUnauthorized:
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	case domain.KindNotFound:
		respondJSON(w, http.StatusNotFound, map[string]string{"error": publicMessage(err)})
	case domain.KindUpstream:
		log.Errorw("upstream failure", "error", err)
		respondJSON(w, http.StatusBadGateway, map[string]string{"error": "upstream unavailable"})
	default:
		log.Errorw("unhandled error kind", "error", err)
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "server error"})
	}
}

func publicMessage(err error) string {
	var e *domain.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "server error"
}
