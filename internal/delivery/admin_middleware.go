package delivery

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/Vovarama1992/baluplix/internal/domain"
)

const adminTokenHeader = "X-Admin-Token"

// bodies on admin routes are metadata, never file content
const maxAdminBody = 1 << 20

// AdminOnly guards every mutating or catalog-exposing route. The
// secret arrives in the X-Admin-Token header, or as an adminToken JSON
// body field for clients that cannot set headers.
func AdminOnly(gate *domain.Gate, log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !gate.Allow(adminToken(r)) {
				respondError(w, log, domain.ErrUnauthorized())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func adminToken(r *http.Request) string {
	if token := r.Header.Get(adminTokenHeader); token != "" {
		return token
	}
	if r.Body == nil {
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxAdminBody))
	if err != nil {
		return ""
	}
	// handlers still need the body
	r.Body = io.NopCloser(bytes.NewReader(body))

	var probe struct {
		AdminToken string `json:"adminToken"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return ""
	}
	return probe.AdminToken
}
