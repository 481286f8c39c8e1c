package domain

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/Vovarama1992/baluplix/internal/ports"
)

// KeyPrefix is the namespace every storage key lives under.
const KeyPrefix = "videos/"

// Uploader issues presigned upload targets. It stores nothing: the
// client uploads straight to object storage and reports back later.
type Uploader struct {
	store ports.ObjectStore
	ttl   time.Duration
}

type UploadTarget struct {
	UploadURL  string `json:"uploadUrl"`
	StorageKey string `json:"storageKey"`
}

func NewUploader(store ports.ObjectStore, ttl time.Duration) *Uploader {
	return &Uploader{store: store, ttl: ttl}
}

func (u *Uploader) IssueUploadTarget(ctx context.Context, filename, contentType string) (*UploadTarget, error) {
	if filename == "" {
		return nil, ErrValidation("filename is required")
	}
	if contentType == "" {
		return nil, ErrValidation("contentType is required")
	}

	key, err := newStorageKey(filename)
	if err != nil {
		return nil, ErrUpstream("could not generate storage key", err)
	}

	uploadURL, err := u.store.PresignUpload(ctx, key, contentType, u.ttl)
	if err != nil {
		return nil, ErrUpstream("could not presign upload", err)
	}

	return &UploadTarget{UploadURL: uploadURL, StorageKey: key}, nil
}

// newStorageKey builds videos/<unix-millis>-<random hex>-<filename>.
// The 8 random bytes make collisions practically impossible; no
// existence lookup is done.
func newStorageKey(filename string) (string, error) {
	suffix := make([]byte, 8)
	if _, err := rand.Read(suffix); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d-%s-%s",
		KeyPrefix,
		time.Now().UnixMilli(),
		hex.EncodeToString(suffix),
		sanitizeFilename(filename),
	), nil
}

// sanitizeFilename strips any path component and maps everything
// outside [A-Za-z0-9._-] to underscores, so the client cannot steer
// the key outside its namespace.
func sanitizeFilename(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
