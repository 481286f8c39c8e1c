package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Vovarama1992/baluplix/internal/models"
	"github.com/Vovarama1992/baluplix/internal/ports"
)

const defaultMimeType = "video/mp4"

// Catalog owns the video records: creation after a client-side upload,
// listings, the publish toggle and deletion across both stores. It also
// signs playback URLs for the public listing.
type Catalog struct {
	repo          ports.VideoRepository
	store         ports.ObjectStore
	log           *zap.SugaredLogger
	playbackTTL   time.Duration
	verifyUploads bool
}

func NewCatalog(repo ports.VideoRepository, store ports.ObjectStore, log *zap.SugaredLogger, playbackTTL time.Duration, verifyUploads bool) *Catalog {
	return &Catalog{
		repo:          repo,
		store:         store,
		log:           log,
		playbackTTL:   playbackTTL,
		verifyUploads: verifyUploads,
	}
}

type CreateInput struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	StorageKey      string  `json:"storageKey"`
	MimeType        string  `json:"mimeType"`
	SizeBytes       int64   `json:"sizeBytes"`
	Poster          string  `json:"poster"`
	DurationSeconds float64 `json:"durationSeconds"`
}

// Create records an upload the client reports as finished. The object
// is not verified unless verifyUploads is on: upload completion is
// asserted by the client. Records always start unpublished.
func (c *Catalog) Create(ctx context.Context, in CreateInput) (*models.Video, error) {
	if in.Title == "" {
		return nil, ErrValidation("title is required")
	}
	if in.StorageKey == "" {
		return nil, ErrValidation("storageKey is required")
	}
	if in.SizeBytes < 0 {
		return nil, ErrValidation("sizeBytes must not be negative")
	}
	if in.MimeType == "" {
		in.MimeType = defaultMimeType
	}

	if c.verifyUploads {
		ok, err := c.store.Exists(ctx, in.StorageKey)
		if err != nil {
			return nil, ErrUpstream("could not verify upload", err)
		}
		if !ok {
			return nil, ErrValidation("no uploaded object for storageKey")
		}
	}

	video := &models.Video{
		ID:              uuid.NewString(),
		Title:           in.Title,
		Description:     in.Description,
		StorageKey:      in.StorageKey,
		MimeType:        in.MimeType,
		SizeBytes:       in.SizeBytes,
		Published:       false,
		Poster:          in.Poster,
		DurationSeconds: in.DurationSeconds,
	}
	if err := c.repo.Insert(ctx, video); err != nil {
		return nil, ErrUpstream("could not save video", err)
	}
	return video, nil
}

// ListPublished returns published records newest first, each with a
// freshly signed playback URL. A record whose URL cannot be signed is
// dropped from the response and logged, so one broken object does not
// block the whole catalog.
func (c *Catalog) ListPublished(ctx context.Context) ([]models.PublishedVideo, error) {
	videos, err := c.repo.List(ctx, true)
	if err != nil {
		return nil, ErrUpstream("could not list videos", err)
	}

	result := make([]models.PublishedVideo, 0, len(videos))
	for _, v := range videos {
		url, err := c.store.PresignDownload(ctx, v.StorageKey, c.playbackTTL)
		if err != nil {
			c.log.Warnw("skipping video: could not sign playback url",
				"videoID", v.ID,
				"storageKey", v.StorageKey,
				"error", err,
			)
			continue
		}
		result = append(result, models.PublishedVideo{Video: v, URL: url})
	}
	return result, nil
}

// ListAll returns every record newest first, any publish state.
func (c *Catalog) ListAll(ctx context.Context) ([]models.Video, error) {
	videos, err := c.repo.List(ctx, false)
	if err != nil {
		return nil, ErrUpstream("could not list videos", err)
	}
	return videos, nil
}

// SetPublished flips the publish flag. Idempotent: setting the current
// value only refreshes updated_at.
func (c *Catalog) SetPublished(ctx context.Context, id string, published bool) (*models.Video, error) {
	video, err := c.repo.SetPublished(ctx, id, published)
	if err != nil {
		return nil, ErrUpstream("could not update video", err)
	}
	if video == nil {
		return nil, ErrNotFound("video not found")
	}
	return video, nil
}

// Delete removes the record and best-effort deletes the backing
// object. A storage failure is logged and swallowed: the metadata
// deletion is authoritative, a stuck object is less harmful than a
// catalog entry the admin believes deleted.
func (c *Catalog) Delete(ctx context.Context, id string) error {
	video, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return ErrUpstream("could not load video", err)
	}
	if video == nil {
		return ErrNotFound("video not found")
	}

	if err := c.store.Remove(ctx, video.StorageKey); err != nil {
		c.log.Warnw("storage delete skipped",
			"videoID", video.ID,
			"storageKey", video.StorageKey,
			"error", err,
		)
	}

	deleted, err := c.repo.Delete(ctx, id)
	if err != nil {
		return ErrUpstream("could not delete video", err)
	}
	if !deleted {
		return ErrNotFound("video not found")
	}
	return nil
}
