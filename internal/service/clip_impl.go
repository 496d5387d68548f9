package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
	"unicode/utf8"

	apperrors "github.com/aokihara/cliptrim/internal/errors"
	"github.com/aokihara/cliptrim/internal/gateway"
	"github.com/aokihara/cliptrim/internal/model"
	"github.com/aokihara/cliptrim/internal/store"
	"github.com/rs/zerolog"
)

// clipService implements ClipService
type clipService struct {
	store          *store.Store
	gateway        gateway.Gateway
	libraryDir     string
	minClipSeconds float64
	logger         zerolog.Logger

	// wf serializes workflows; the store alone would keep the collection
	// consistent, but two concurrent edits of one record must not race.
	wf sync.Mutex

	stateMu sync.Mutex
	state   WorkflowState
}

// NewClipService creates a ClipService over the given store and gateway.
// Trimmed clips and thumbnails are written under libraryDir.
func NewClipService(s *store.Store, g gateway.Gateway, libraryDir string, minClipSeconds float64, logger zerolog.Logger) ClipService {
	return &clipService{
		store:          s,
		gateway:        g,
		libraryDir:     libraryDir,
		minClipSeconds: minClipSeconds,
		logger:         logger.With().Str("component", "workflow").Logger(),
		state:          WorkflowState{Status: StatusIdle},
	}
}

// CreateClip trims a new clip and inserts it at the front of the library
func (s *clipService) CreateClip(ctx context.Context, req TrimRequest) (*model.VideoRecord, error) {
	s.wf.Lock()
	defer s.wf.Unlock()

	if err := s.validate(req); err != nil {
		return nil, s.fail(err)
	}
	s.setProcessing()

	clip, thumbnail, err := s.produceMedia(ctx, req)
	if err != nil {
		return nil, s.fail(err)
	}

	record := &model.VideoRecord{
		ID:               model.NewID(),
		Locator:          clip,
		Title:            req.Title,
		Description:      req.Description,
		DurationSeconds:  req.End - req.Start,
		CreatedAt:        time.Now().UTC(),
		ThumbnailLocator: thumbnail,
	}
	s.store.Add(record)

	s.logger.Info().Str("id", record.ID).Str("title", record.Title).Msg("clip created")
	return record, s.succeed(record)
}

// EditClip re-trims an existing clip, preserving its ID and CreatedAt
func (s *clipService) EditClip(ctx context.Context, id string, req TrimRequest) (*model.VideoRecord, error) {
	s.wf.Lock()
	defer s.wf.Unlock()

	if err := s.validate(req); err != nil {
		return nil, s.fail(err)
	}

	// Resolve the target before touching ffmpeg
	existing, err := s.store.GetByID(id)
	if err != nil {
		return nil, s.fail(err)
	}
	s.setProcessing()

	clip, thumbnail, err := s.produceMedia(ctx, req)
	if err != nil {
		return nil, s.fail(err)
	}

	record := existing.Clone()
	record.Locator = clip
	record.Title = req.Title
	record.Description = req.Description
	record.DurationSeconds = req.End - req.Start
	record.ThumbnailLocator = thumbnail

	if !s.store.Update(record) {
		// Removed by a concurrent caller between lookup and commit
		s.removeFiles(clip, thumbnail)
		return nil, s.fail(apperrors.New(apperrors.CodeNotFound, "video not found: "+id))
	}

	// The replaced media files are orphans now
	if existing.Locator != clip {
		s.removeFiles(existing.Locator, existing.ThumbnailLocator)
	}

	s.logger.Info().Str("id", record.ID).Str("title", record.Title).Msg("clip edited")
	return record, s.succeed(record)
}

// RemoveClip deletes the record and its media files
func (s *clipService) RemoveClip(ctx context.Context, id string, keepFiles bool) error {
	s.wf.Lock()
	defer s.wf.Unlock()

	record, err := s.store.GetByID(id)
	if err != nil {
		return err
	}

	s.store.Remove(id)
	if !keepFiles {
		s.removeFiles(record.Locator, record.ThumbnailLocator)
	}

	s.logger.Info().Str("id", id).Msg("clip removed")
	return nil
}

// GetClip returns the record with the given ID
func (s *clipService) GetClip(ctx context.Context, id string) (*model.VideoRecord, error) {
	return s.store.GetByID(id)
}

// ListClips returns the library snapshot, newest first
func (s *clipService) ListClips(ctx context.Context) []*model.VideoRecord {
	return s.store.List()
}

// State returns the state of the most recent workflow
func (s *clipService) State() WorkflowState {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.state
}

// produceMedia runs the trim and thumbnail steps. Either both artifacts
// exist afterwards or neither does.
func (s *clipService) produceMedia(ctx context.Context, req TrimRequest) (clip string, thumbnail string, err error) {
	if err := os.MkdirAll(s.libraryDir, 0755); err != nil {
		return "", "", apperrors.Wrap(err, apperrors.CodeInternal, "failed to create library directory")
	}

	// Media files get their own fresh name so an edit never overwrites
	// the clip it is replacing
	base := model.NewID()
	clipPath := filepath.Join(s.libraryDir, base+".mp4")
	thumbnailPath := filepath.Join(s.libraryDir, base+".jpg")

	clip, err = s.gateway.Trim(ctx, req.Source, req.Start, req.End, clipPath)
	if err != nil {
		return "", "", err
	}

	thumbnail, err = s.gateway.Thumbnail(ctx, clip, thumbnailPath)
	if err != nil {
		// The gateway already removed its own partial artifact
		s.removeFiles(clip)
		return "", "", err
	}

	return clip, thumbnail, nil
}

// validate enforces the metadata and time-range constraints before any
// external work starts
func (s *clipService) validate(req TrimRequest) error {
	if req.Source == "" {
		return apperrors.New(apperrors.CodeInvalidArg, "source video is required")
	}
	if req.Start < 0 {
		return apperrors.New(apperrors.CodeInvalidArg, "start time must not be negative")
	}
	if req.End < req.Start+s.minClipSeconds {
		return apperrors.New(apperrors.CodeInvalidArg,
			fmt.Sprintf("clip must be at least %.1f seconds long", s.minClipSeconds))
	}

	titleLen := utf8.RuneCountInString(req.Title)
	if titleLen < model.TitleMinLength || titleLen > model.TitleMaxLength {
		return apperrors.New(apperrors.CodeInvalidArg,
			fmt.Sprintf("title must be %d-%d characters", model.TitleMinLength, model.TitleMaxLength))
	}
	if utf8.RuneCountInString(req.Description) > model.DescriptionMaxLength {
		return apperrors.New(apperrors.CodeInvalidArg,
			fmt.Sprintf("description must be at most %d characters", model.DescriptionMaxLength))
	}
	return nil
}

// removeFiles best-effort deletes media artifacts
func (s *clipService) removeFiles(paths ...string) {
	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("path", path).Msg("failed to remove media file")
		}
	}
}

func (s *clipService) setProcessing() {
	s.stateMu.Lock()
	s.state = WorkflowState{Status: StatusProcessing}
	s.stateMu.Unlock()
}

func (s *clipService) succeed(record *model.VideoRecord) error {
	s.stateMu.Lock()
	s.state = WorkflowState{Status: StatusSucceeded, Result: record}
	s.stateMu.Unlock()
	return nil
}

func (s *clipService) fail(err error) error {
	s.stateMu.Lock()
	s.state = WorkflowState{Status: StatusFailed, Err: err}
	s.stateMu.Unlock()
	return err
}
