package service

import (
	"context"

	"github.com/aokihara/cliptrim/internal/model"
)

// Status is the phase a workflow invocation is in.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusProcessing Status = "processing"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
)

// WorkflowState is the observable {status, error, result} tuple of the most
// recent create/edit workflow.
type WorkflowState struct {
	Status Status
	Err    error
	Result *model.VideoRecord
}

// TrimRequest carries the inputs of a create or edit workflow. Start and
// End are offsets into the source video in seconds.
type TrimRequest struct {
	Source      string
	Start       float64
	End         float64
	Title       string
	Description string
}

// ClipService orchestrates the trim-and-store workflows over the library.
// One workflow runs at a time per service instance; overlapping calls are
// serialized, not rejected.
type ClipService interface {
	// CreateClip trims a new clip out of the source video, generates its
	// thumbnail and inserts the record at the front of the library.
	CreateClip(ctx context.Context, req TrimRequest) (*model.VideoRecord, error)

	// EditClip re-trims an existing clip, preserving its ID and CreatedAt
	// and replacing every other field wholesale.
	EditClip(ctx context.Context, id string, req TrimRequest) (*model.VideoRecord, error)

	// RemoveClip deletes the record and, unless keepFiles is set, the
	// media files it points at.
	RemoveClip(ctx context.Context, id string, keepFiles bool) error

	// GetClip returns the record with the given ID.
	GetClip(ctx context.Context, id string) (*model.VideoRecord, error)

	// ListClips returns the library snapshot, newest first.
	ListClips(ctx context.Context) []*model.VideoRecord

	// State returns the state of the most recent workflow.
	State() WorkflowState
}
