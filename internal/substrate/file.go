package substrate

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/aokihara/cliptrim/internal/errors"
)

// SnapshotFileName is the snapshot file kept inside the library directory.
const SnapshotFileName = "library.json"

// fileSubstrate stores the snapshot as one file, written atomically.
type fileSubstrate struct {
	path string
}

// NewFileSubstrate creates a Substrate backed by a snapshot file inside dir.
func NewFileSubstrate(dir string) Substrate {
	return &fileSubstrate{path: filepath.Join(dir, SnapshotFileName)}
}

// Load reads the snapshot file. A missing file means an empty library.
func (s *fileSubstrate) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, apperrors.CodeStorage, "failed to read snapshot file")
	}
	return data, nil
}

// Save writes the snapshot via a temp file and rename so a crash mid-write
// never leaves a torn snapshot behind.
func (s *fileSubstrate) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return apperrors.Wrap(err, apperrors.CodeStorage, "failed to create snapshot directory")
	}

	tmp, err := os.CreateTemp(dir, "."+strings.TrimSuffix(SnapshotFileName, ".json")+"-*.tmp")
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeStorage, "failed to create temp snapshot file")
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return apperrors.Wrap(err, apperrors.CodeStorage, "failed to write snapshot")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return apperrors.Wrap(err, apperrors.CodeStorage, "failed to close snapshot file")
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return apperrors.Wrap(err, apperrors.CodeStorage, "failed to replace snapshot file")
	}
	return nil
}
