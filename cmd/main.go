package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/Vovarama1992/baluplix/internal/config"
	"github.com/Vovarama1992/baluplix/internal/delivery"
	"github.com/Vovarama1992/baluplix/internal/domain"
	"github.com/Vovarama1992/baluplix/internal/infra"
)

func main() {

	// LOGGER
	zl, err := zap.NewProduction()
	if err != nil {
		panic("cannot build logger: " + err.Error())
	}
	defer zl.Sync()
	log := zl.Sugar()

	// CONFIG
	cfg, err := config.Load()
	if err != nil {
		log.Fatalw("config load failed", "error", err)
	}

	// POSTGRES
	ctx := context.Background()

	pool, err := infra.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalw("postgres connect failed", "error", err)
	}
	defer pool.Close()

	if err := infra.EnsureSchema(ctx, pool); err != nil {
		log.Fatalw("schema setup failed", "error", err)
	}

	// OBJECT STORAGE
	store, err := infra.NewMinioStore(
		cfg.S3Endpoint,
		cfg.S3AccessKey,
		cfg.S3SecretKey,
		cfg.S3Bucket,
		cfg.S3UseSSL,
	)
	if err != nil {
		log.Fatalw("object storage setup failed", "error", err)
	}

	// SERVICES
	repo := infra.NewPostgresVideoRepo(pool)
	uploader := domain.NewUploader(store, cfg.UploadURLTTL)
	catalog := domain.NewCatalog(repo, store, log, cfg.PlaybackURLTTL, cfg.UploadVerify)
	gate := domain.NewGate(cfg.AdminToken)

	// HANDLERS
	hUpload := delivery.NewUploadHandler(uploader, log)
	hVideo := delivery.NewVideoHandler(catalog, log)

	// ROUTER
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Admin-Token"},
	}))

	delivery.RegisterRoutes(r, gate, hUpload, hVideo, log)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	go func() {
		log.Infow("server started", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server crashed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("shutdown failed", "error", err)
	}
	log.Infow("server stopped")
}
