package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// BakeKey identifies one bake result: the scene document content, the
// target language, and the rendered options. Any change to one of the
// three produces a different key, so stale cache hits are impossible.
type BakeKey struct {
	SceneHash   string
	Language    string
	OptionsHash string
}

// BakeEntry is one cached bake result.
type BakeEntry struct {
	Key       BakeKey
	SceneName string
	ClassName string
	Output    string
	CreatedAt time.Time
}

// BakeStore caches bake outputs across runs.
type BakeStore interface {
	// Get retrieves a cached bake, nil when absent.
	Get(ctx context.Context, key BakeKey) (*BakeEntry, error)

	// Put upserts a bake result.
	Put(ctx context.Context, entry *BakeEntry) error

	// Prune deletes entries created before the cutoff and reports how
	// many were removed.
	Prune(ctx context.Context, olderThan time.Time) (int64, error)

	Close() error
}

// HashBytes returns the hex SHA-256 of content, the hash used for both
// scene documents and option fingerprints.
func HashBytes(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
