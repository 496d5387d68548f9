package model

import (
	"time"

	"github.com/google/uuid"
)

// VideoRecord represents one saved clip in the library.
// ID and CreatedAt are assigned once at creation and never change;
// every other field is replaced wholesale on edit.
type VideoRecord struct {
	ID               string    `json:"id"`
	Locator          string    `json:"locator"`                     // path of the trimmed media file
	Title            string    `json:"title"`                       // 1-50 characters
	Description      string    `json:"description"`                 // up to 500 characters
	DurationSeconds  float64   `json:"duration_seconds"`            // end - start of the selected range
	CreatedAt        time.Time `json:"created_at"`
	ThumbnailLocator string    `json:"thumbnail_locator,omitempty"` // path of the still-frame image
}

// Metadata length limits enforced by the orchestrator before any
// record reaches the store.
const (
	TitleMinLength       = 1
	TitleMaxLength       = 50
	DescriptionMaxLength = 500
)

// NewID returns a fresh record identifier.
func NewID() string {
	return uuid.NewString()
}

// Clone returns a copy of the record. Store snapshots hand out clones so
// callers can never mutate the collection behind the store's back.
func (v *VideoRecord) Clone() *VideoRecord {
	c := *v
	return &c
}
