package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	apperrors "github.com/aokihara/cliptrim/internal/errors"
	"github.com/aokihara/cliptrim/internal/model"
	"github.com/aokihara/cliptrim/internal/substrate"
	"github.com/rs/zerolog"
)

// persistTimeout bounds a single snapshot write to the substrate.
const persistTimeout = 10 * time.Second

// Subscriber receives a snapshot of the collection after every mutation.
type Subscriber func(records []*model.VideoRecord)

// Store is the authoritative ordered collection of VideoRecords, newest
// first. Mutations are synchronous and atomic over the in-memory slice;
// the durable mirror is written by a background writer with last-write-wins
// semantics. The in-memory collection stays the source of truth even when
// the substrate fails; persist failures are observable via PersistErr.
type Store struct {
	mu      sync.Mutex
	records []*model.VideoRecord
	subs    map[int]Subscriber
	nextSub int

	substrate substrate.Substrate
	logger    zerolog.Logger

	persistMu  sync.Mutex
	persistErr error

	dirty     chan struct{}
	closing   chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// Open loads the persisted snapshot into memory and starts the background
// writer. A substrate with no snapshot yields an empty library.
func Open(ctx context.Context, sub substrate.Substrate, logger zerolog.Logger) (*Store, error) {
	data, err := sub.Load(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeStorage, "failed to load library snapshot")
	}

	var records []*model.VideoRecord
	if len(data) > 0 {
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeStorage, "failed to decode library snapshot")
		}
	}

	s := &Store{
		records:   records,
		subs:      make(map[int]Subscriber),
		substrate: sub,
		logger:    logger.With().Str("component", "store").Logger(),
		dirty:     make(chan struct{}, 1),
		closing:   make(chan struct{}),
		done:      make(chan struct{}),
	}
	go s.writeLoop()
	return s, nil
}

// Add prepends the record to the collection. The caller guarantees ID
// uniqueness; no validation happens here.
func (s *Store) Add(record *model.VideoRecord) {
	s.mu.Lock()
	s.records = append([]*model.VideoRecord{record.Clone()}, s.records...)
	s.mu.Unlock()

	s.markDirty()
	s.notify()
}

// Update replaces the record with a matching ID in place, keeping its
// position. Returns false when no record matches; the collection is then
// left untouched.
func (s *Store) Update(record *model.VideoRecord) bool {
	s.mu.Lock()
	replaced := false
	for i, existing := range s.records {
		if existing.ID == record.ID {
			s.records[i] = record.Clone()
			replaced = true
			break
		}
	}
	s.mu.Unlock()

	if !replaced {
		return false
	}
	s.markDirty()
	s.notify()
	return true
}

// Remove deletes the record with the matching ID. Returns false when no
// record matches.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	removed := false
	for i, existing := range s.records {
		if existing.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()

	if !removed {
		return false
	}
	s.markDirty()
	s.notify()
	return true
}

// GetByID returns a copy of the matching record.
func (s *Store) GetByID(id string) (*model.VideoRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.records {
		if existing.ID == id {
			return existing.Clone(), nil
		}
	}
	return nil, apperrors.New(apperrors.CodeNotFound, "video not found: "+id)
}

// List returns a snapshot copy of the collection, newest first.
func (s *Store) List() []*model.VideoRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Len returns the number of records in the collection.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Subscribe registers fn to be called with a snapshot after every mutation.
// The returned function unsubscribes.
func (s *Store) Subscribe(fn Subscriber) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// PersistErr returns the error of the most recent snapshot write, or nil
// when the last write succeeded.
func (s *Store) PersistErr() error {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()
	return s.persistErr
}

// Close flushes pending snapshot writes and stops the background writer.
// Returns the final persist error, if any.
func (s *Store) Close(ctx context.Context) error {
	s.closeOnce.Do(func() {
		close(s.closing)
	})

	select {
	case <-s.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return s.PersistErr()
}

// snapshotLocked copies the collection. Callers must hold mu.
func (s *Store) snapshotLocked() []*model.VideoRecord {
	snapshot := make([]*model.VideoRecord, len(s.records))
	for i, record := range s.records {
		snapshot[i] = record.Clone()
	}
	return snapshot
}

// markDirty wakes the background writer without blocking the mutation.
func (s *Store) markDirty() {
	select {
	case s.dirty <- struct{}{}:
	default:
	}
}

// notify fans the current snapshot out to subscribers. Runs outside the
// collection lock so a subscriber may call back into the store.
func (s *Store) notify() {
	s.mu.Lock()
	snapshot := s.snapshotLocked()
	subs := make([]Subscriber, 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

// writeLoop serializes snapshot writes. One pending write at most; later
// mutations coalesce into the next write (last write wins).
func (s *Store) writeLoop() {
	defer close(s.done)
	for {
		select {
		case <-s.dirty:
			s.persist()
		case <-s.closing:
			// Final flush for any mutation that raced with Close
			select {
			case <-s.dirty:
				s.persist()
			default:
			}
			return
		}
	}
}

// persist encodes the collection and mirrors it to the substrate. Failure
// never touches the in-memory collection.
func (s *Store) persist() {
	s.mu.Lock()
	data, err := json.Marshal(s.records)
	s.mu.Unlock()
	if err != nil {
		s.setPersistErr(apperrors.Wrap(err, apperrors.CodeStorage, "failed to encode library snapshot"))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := s.substrate.Save(ctx, data); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist library snapshot")
		s.setPersistErr(err)
		return
	}
	s.setPersistErr(nil)
}

func (s *Store) setPersistErr(err error) {
	s.persistMu.Lock()
	s.persistErr = err
	s.persistMu.Unlock()
}
