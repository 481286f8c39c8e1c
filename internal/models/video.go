package models

import "time"

// Video is the single persisted entity: one uploaded file in object
// storage plus the metadata shown in the catalog.
type Video struct {
	ID              string    `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	Description     string    `json:"description" db:"description"`
	StorageKey      string    `json:"storageKey" db:"storage_key"` // set once at creation, never changed
	MimeType        string    `json:"mimeType" db:"mime_type"`
	SizeBytes       int64     `json:"sizeBytes" db:"size_bytes"`
	Published       bool      `json:"published" db:"published"`
	Poster          string    `json:"poster,omitempty" db:"poster"`
	DurationSeconds float64   `json:"durationSeconds,omitempty" db:"duration_seconds"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// PublishedVideo is a catalog entry as served to anonymous visitors:
// the record plus a freshly signed, time-limited playback URL.
type PublishedVideo struct {
	Video
	URL string `json:"url"`
}
