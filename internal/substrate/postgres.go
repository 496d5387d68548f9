package substrate

import (
	"context"
	"errors"

	apperrors "github.com/aokihara/cliptrim/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Pool interface for abstracting pgx connection pool
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// postgresSubstrate stores the snapshot as one row per namespace.
type postgresSubstrate struct {
	pool Pool
}

// NewPostgresSubstrate creates a Substrate backed by the snapshots table.
func NewPostgresSubstrate(pool Pool) Substrate {
	return &postgresSubstrate{pool: pool}
}

// Load reads the snapshot row. No row yet means an empty library.
func (s *postgresSubstrate) Load(ctx context.Context) ([]byte, error) {
	sql := "SELECT data FROM snapshots WHERE namespace = $1"
	row := s.pool.QueryRow(ctx, sql, Namespace)

	var data []byte
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, handlePostgresError(err, "failed to load snapshot")
	}
	return data, nil
}

// Save upserts the snapshot row, last write wins.
func (s *postgresSubstrate) Save(ctx context.Context, data []byte) error {
	sql := `INSERT INTO snapshots (namespace, data, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (namespace) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`
	if _, err := s.pool.Exec(ctx, sql, Namespace, data); err != nil {
		return handlePostgresError(err, "failed to save snapshot")
	}
	return nil
}

// handlePostgresError converts PostgreSQL-specific errors to AppError codes
func handlePostgresError(err error, operation string) *apperrors.AppError {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return apperrors.Wrap(err, apperrors.CodeStorage, operation)
	}

	switch pgErr.Code {
	case "42P01": // UNDEFINED_TABLE
		return apperrors.Wrap(err, apperrors.CodeStorage,
			"snapshots table not found: run the migrations first")

	case "53100": // DISK_FULL
		return apperrors.Wrap(err, apperrors.CodeStorage, "database storage exhausted")

	case "08000", "08003", "08006": // CONNECTION_EXCEPTION variants
		return apperrors.Wrap(err, apperrors.CodeStorage, "database connection error")

	case "53300": // TOO_MANY_CONNECTIONS
		return apperrors.Wrap(err, apperrors.CodeStorage, "database connection limit reached")

	default:
		message := "database error (PostgreSQL code: " + pgErr.Code + ")"
		return apperrors.Wrap(err, apperrors.CodeStorage, message)
	}
}
