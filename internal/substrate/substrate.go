package substrate

import "context"

// Namespace is the fixed key the whole library snapshot is stored under.
const Namespace = "cliptrim/library"

// Substrate persists a single opaque snapshot blob under Namespace.
// Load returns nil data and no error when nothing has been saved yet.
// Save overwrites with last-write-wins semantics; no versioning is done.
type Substrate interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}
