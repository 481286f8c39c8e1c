package delivery

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Vovarama1992/baluplix/internal/domain"
)

func RegisterRoutes(r chi.Router, gate *domain.Gate, hUpload *UploadHandler, hVideo *VideoHandler, log *zap.SugaredLogger) {

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// public catalog
	r.Get("/videos", hVideo.ListPublished)

	// everything else is admin only
	r.Group(func(r chi.Router) {
		r.Use(AdminOnly(gate, log))

		r.Post("/upload-target", hUpload.IssueTarget)
		r.Post("/videos", hVideo.Create)
		r.Get("/admin/videos", hVideo.ListAll)
		r.Post("/video/{id}/publish", hVideo.SetPublished)
		r.Delete("/admin/video/{id}", hVideo.Delete)
	})
}
