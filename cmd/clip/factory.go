package clip

import (
	"context"
	"fmt"
	"time"

	"github.com/aokihara/cliptrim/internal/config"
	"github.com/aokihara/cliptrim/internal/gateway"
	"github.com/aokihara/cliptrim/internal/service"
	"github.com/aokihara/cliptrim/internal/store"
	"github.com/aokihara/cliptrim/internal/substrate"
	"github.com/rs/zerolog/log"
)

// ServiceFactory creates clip service instances
type ServiceFactory struct{}

// NewServiceFactory creates a new service factory
func NewServiceFactory() *ServiceFactory {
	return &ServiceFactory{}
}

// CreateService wires the configured substrate, the store and the ffmpeg
// gateway into a ClipService. The returned cleanup flushes pending snapshot
// writes and must run before process exit.
func (f *ServiceFactory) CreateService(ctx context.Context) (service.ClipService, func(), error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	var sub substrate.Substrate
	var closePool func()

	switch cfg.Storage {
	case config.StoragePostgres:
		pool, err := config.NewDatabasePool(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		sub = substrate.NewPostgresSubstrate(pool)
		closePool = pool.Close
	default:
		sub = substrate.NewFileSubstrate(cfg.LibraryDir)
	}

	st, err := store.Open(ctx, sub, log.Logger)
	if err != nil {
		if closePool != nil {
			closePool()
		}
		return nil, nil, fmt.Errorf("failed to open library: %w", err)
	}

	g, err := gateway.New(log.Logger, cfg.FFmpegPath)
	if err != nil {
		if closePool != nil {
			closePool()
		}
		return nil, nil, err
	}

	svc := service.NewClipService(st, g, cfg.LibraryDir, cfg.MinClipSeconds, log.Logger)

	cleanup := func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			log.Warn().Err(err).Msg("library snapshot may not be fully persisted")
		}
		if closePool != nil {
			closePool()
		}
	}

	return svc, cleanup, nil
}

// resolveService returns the injected service when present (for testing),
// otherwise builds a real one via the factory.
func resolveService(ctx context.Context, svc service.ClipService) (service.ClipService, func(), error) {
	if svc != nil {
		return svc, func() {}, nil
	}
	return NewServiceFactory().CreateService(ctx)
}
