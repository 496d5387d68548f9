package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/aokihara/cliptrim/internal/errors"
	"github.com/aokihara/cliptrim/internal/store"
	"github.com/aokihara/cliptrim/internal/substrate"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGateway writes real placeholder files so the artifact-cleanup paths
// can be observed on disk
type fakeGateway struct {
	trimCalls      int
	thumbnailCalls int
	trimErr        error
	thumbnailErr   error
}

func (f *fakeGateway) Trim(ctx context.Context, source string, start, end float64, output string) (string, error) {
	f.trimCalls++
	if f.trimErr != nil {
		return "", f.trimErr
	}
	if err := os.WriteFile(output, []byte("clip"), 0644); err != nil {
		return "", err
	}
	return output, nil
}

func (f *fakeGateway) Thumbnail(ctx context.Context, source string, output string) (string, error) {
	f.thumbnailCalls++
	if f.thumbnailErr != nil {
		return "", f.thumbnailErr
	}
	if err := os.WriteFile(output, []byte("jpeg"), 0644); err != nil {
		return "", err
	}
	return output, nil
}

func newTestService(t *testing.T) (ClipService, *fakeGateway, *store.Store) {
	t.Helper()

	dir := t.TempDir()
	s, err := store.Open(context.Background(), substrate.NewFileSubstrate(dir), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.Close(ctx)
	})

	g := &fakeGateway{}
	svc := NewClipService(s, g, dir, 1.0, zerolog.Nop())
	return svc, g, s
}

func validRequest() TrimRequest {
	return TrimRequest{
		Source:      "/videos/raw.mp4",
		Start:       0,
		End:         5,
		Title:       "Clip",
		Description: "",
	}
}

func TestCreateClip_Success(t *testing.T) {
	svc, g, s := newTestService(t)
	ctx := context.Background()

	record, err := svc.CreateClip(ctx, validRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, record.ID)
	assert.Equal(t, 5.0, record.DurationSeconds)
	assert.Equal(t, "Clip", record.Title)
	assert.NotEmpty(t, record.ThumbnailLocator)
	assert.False(t, record.CreatedAt.IsZero())

	// Exactly one new record, at the front
	records := s.List()
	require.Len(t, records, 1)
	assert.Equal(t, record.ID, records[0].ID)

	assert.Equal(t, 1, g.trimCalls)
	assert.Equal(t, 1, g.thumbnailCalls)

	state := svc.State()
	assert.Equal(t, StatusSucceeded, state.Status)
	assert.Equal(t, record.ID, state.Result.ID)
	assert.NoError(t, state.Err)
}

func TestCreateClip_ValidationFailsBeforeGateway(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *TrimRequest)
	}{
		{
			name:   "empty title",
			mutate: func(req *TrimRequest) { req.Title = "" },
		},
		{
			name:   "title too long",
			mutate: func(req *TrimRequest) { req.Title = string(make([]rune, 51)) },
		},
		{
			name: "description too long",
			mutate: func(req *TrimRequest) {
				long := make([]rune, 501)
				for i := range long {
					long[i] = 'a'
				}
				req.Description = string(long)
			},
		},
		{
			name:   "empty source",
			mutate: func(req *TrimRequest) { req.Source = "" },
		},
		{
			name:   "negative start",
			mutate: func(req *TrimRequest) { req.Start = -1 },
		},
		{
			name:   "clip shorter than minimum",
			mutate: func(req *TrimRequest) { req.Start = 4.5; req.End = 5 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, g, s := newTestService(t)

			req := validRequest()
			tt.mutate(&req)

			_, err := svc.CreateClip(context.Background(), req)
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.CodeInvalidArg))

			assert.Equal(t, 0, g.trimCalls, "gateway must never be invoked")
			assert.Equal(t, 0, s.Len(), "store must stay empty")
			assert.Equal(t, StatusFailed, svc.State().Status)
		})
	}
}

func TestCreateClip_GatewayFailureLeavesStoreUntouched(t *testing.T) {
	svc, g, s := newTestService(t)
	g.trimErr = apperrors.New(apperrors.CodeExternal, "trim failed - boom")

	_, err := svc.CreateClip(context.Background(), validRequest())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeExternal))
	assert.Equal(t, 0, s.Len())

	state := svc.State()
	assert.Equal(t, StatusFailed, state.Status)
	assert.Error(t, state.Err)
}

func TestCreateClip_ThumbnailFailureRemovesTrimmedClip(t *testing.T) {
	svc, g, s := newTestService(t)
	g.thumbnailErr = apperrors.New(apperrors.CodeExternal, "thumbnail failed")

	_, err := svc.CreateClip(context.Background(), validRequest())
	require.Error(t, err)
	assert.Equal(t, 0, s.Len())

	// The trimmed clip written before the thumbnail step must be gone
	dir := svc.(*clipService).libraryDir
	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	for _, entry := range entries {
		assert.NotEqual(t, ".mp4", filepath.Ext(entry.Name()))
	}
}

func TestEditClip_NotFoundNeverCallsGateway(t *testing.T) {
	svc, g, _ := newTestService(t)

	_, err := svc.EditClip(context.Background(), "ghost", validRequest())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
	assert.Equal(t, 0, g.trimCalls)

	state := svc.State()
	assert.Equal(t, StatusFailed, state.Status)
}

func TestEditClip_PreservesIdentityReplacesRest(t *testing.T) {
	svc, _, s := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateClip(ctx, validRequest())
	require.NoError(t, err)

	edited, err := svc.EditClip(ctx, created.ID, TrimRequest{
		Source:      "/videos/other.mp4",
		Start:       10,
		End:         18,
		Title:       "Reworked",
		Description: "Second pass",
	})
	require.NoError(t, err)

	// Identity survives the edit
	assert.Equal(t, created.ID, edited.ID)
	assert.Equal(t, created.CreatedAt, edited.CreatedAt)

	// Everything else matches the new inputs
	assert.Equal(t, "Reworked", edited.Title)
	assert.Equal(t, "Second pass", edited.Description)
	assert.Equal(t, 8.0, edited.DurationSeconds)
	assert.NotEqual(t, created.Locator, edited.Locator)
	assert.NotEqual(t, created.ThumbnailLocator, edited.ThumbnailLocator)

	// Still a single record, and the old media files are gone
	require.Equal(t, 1, s.Len())
	_, statErr := os.Stat(created.Locator)
	assert.True(t, os.IsNotExist(statErr))
}

func TestEditClip_GatewayFailureLeavesRecordUnchanged(t *testing.T) {
	svc, g, s := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateClip(ctx, validRequest())
	require.NoError(t, err)

	g.trimErr = apperrors.New(apperrors.CodeExternal, "trim failed")
	_, err = svc.EditClip(ctx, created.ID, validRequest())
	require.Error(t, err)

	current, err := s.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Locator, current.Locator)
	assert.Equal(t, created.Title, current.Title)
}

func TestRemoveClip(t *testing.T) {
	svc, _, s := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateClip(ctx, validRequest())
	require.NoError(t, err)

	require.NoError(t, svc.RemoveClip(ctx, created.ID, false))
	assert.Equal(t, 0, s.Len())

	// Media files deleted along with the record
	_, statErr := os.Stat(created.Locator)
	assert.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(created.ThumbnailLocator)
	assert.True(t, os.IsNotExist(statErr))

	// Removing a missing clip reports not found
	err = svc.RemoveClip(ctx, created.ID, false)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
}

func TestRemoveClip_KeepFiles(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateClip(ctx, validRequest())
	require.NoError(t, err)

	require.NoError(t, svc.RemoveClip(ctx, created.ID, true))

	_, statErr := os.Stat(created.Locator)
	assert.NoError(t, statErr, "media files must survive --keep-files removal")
}

func TestState_InitiallyIdle(t *testing.T) {
	svc, _, _ := newTestService(t)

	state := svc.State()
	assert.Equal(t, StatusIdle, state.Status)
	assert.Nil(t, state.Result)
	assert.NoError(t, state.Err)
}
