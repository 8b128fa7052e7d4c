package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "bakes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testKey(sceneContent string) BakeKey {
	return BakeKey{
		SceneHash:   HashBytes([]byte(sceneContent)),
		Language:    "csharp",
		OptionsHash: HashBytes([]byte("TestScene|100|100|1s|true")),
	}
}

func TestBakeCacheRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	key := testKey("scene-a")

	entry, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, entry)

	put := &BakeEntry{
		Key:       key,
		SceneName: "Spinner",
		ClassName: "TestScene",
		Output:    "class TestScene { }",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, s.Put(ctx, put))

	got, err := s.Get(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, put.SceneName, got.SceneName)
	assert.Equal(t, put.ClassName, got.ClassName)
	assert.Equal(t, put.Output, got.Output)
	assert.Equal(t, put.CreatedAt, got.CreatedAt)
}

func TestBakeCacheUpsert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	key := testKey("scene-a")

	first := &BakeEntry{Key: key, Output: "v1", CreatedAt: time.Now().UTC()}
	require.NoError(t, s.Put(ctx, first))
	second := &BakeEntry{Key: key, Output: "v2", CreatedAt: time.Now().UTC()}
	require.NoError(t, s.Put(ctx, second))

	got, err := s.Get(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "v2", got.Output)
}

func TestBakeCacheKeySeparation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	keyA := testKey("scene-a")
	keyB := keyA
	keyB.Language = "cpp"
	require.NoError(t, s.Put(ctx, &BakeEntry{Key: keyA, Output: "cs", CreatedAt: time.Now().UTC()}))

	got, err := s.Get(ctx, keyB)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPrune(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	old := &BakeEntry{Key: testKey("old"), Output: "old", CreatedAt: now.Add(-48 * time.Hour)}
	fresh := &BakeEntry{Key: testKey("fresh"), Output: "fresh", CreatedAt: now}
	require.NoError(t, s.Put(ctx, old))
	require.NoError(t, s.Put(ctx, fresh))

	removed, err := s.Prune(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	got, err := s.Get(ctx, old.Key)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = s.Get(ctx, fresh.Key)
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestHashBytes(t *testing.T) {
	a := HashBytes([]byte("scene"))
	b := HashBytes([]byte("scene"))
	c := HashBytes([]byte("scene2"))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}
