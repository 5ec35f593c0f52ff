package cache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binstash/binstash/compress"
	"github.com/binstash/binstash/strategy"
)

func identityParser(name string) (string, bool) { return name, true }

func TestMemoryCachePutGetDelete(t *testing.T) {
	c, err := New[string](strategy.NewMemory(0, 0))
	require.NoError(t, err)

	require.NoError(t, c.Put("k", []byte("value")))
	got, err := c.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), got)

	require.NoError(t, c.Delete("k"))
	_, err = c.Get("k")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestNewRequiresStrategy(t *testing.T) {
	_, err := New[string](nil)
	assert.ErrorIs(t, err, ErrNoStrategy)
}

func TestRoundTripAllStrategiesAndCodecs(t *testing.T) {
	payload := []byte("the quick brown fox jumps over the lazy dog")

	zs, err := compress.NewZstd(compress.LevelDefault)
	require.NoError(t, err)
	codecs := map[string]compress.Compressor{
		"identity": compress.Noop{},
		"zstd":     zs,
		"gzip":     compress.NewGzip(compress.LevelDefault),
		"brotli":   compress.NewBrotli(compress.LevelDefault),
	}

	for cname, codec := range codecs {
		t.Run(cname, func(t *testing.T) {
			strategies := map[string]strategy.Strategy{
				"memory": strategy.NewMemory(0, 0),
				"disk":   strategy.NewDisk(t.TempDir(), 0, 0),
				"hybrid": strategy.NewHybrid(t.TempDir(), strategy.NewLimits(8, 0), strategy.NewLimits(0, 0)),
			}
			for sname, strat := range strategies {
				t.Run(sname, func(t *testing.T) {
					c, err := New[string](strat, WithCompressor[string](codec))
					require.NoError(t, err)

					require.NoError(t, c.Put("key", payload))
					got, err := c.Get("key")
					require.NoError(t, err)
					assert.Equal(t, payload, got)

					taken, err := c.Take("key")
					require.NoError(t, err)
					assert.Equal(t, payload, taken)
					assert.False(t, c.Exists("key"))
				})
			}
		})
	}
}

func TestTakeRemoves(t *testing.T) {
	c, err := New[string](strategy.NewMemory(0, 0))
	require.NoError(t, err)

	require.NoError(t, c.Put("k", []byte("v")))
	taken, err := c.Take("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), taken)

	assert.False(t, c.Exists("k"))
	_, err = c.Get("k")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	_, err = c.Take("k")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	assert.ErrorIs(t, c.Delete("k"), ErrKeyNotFound)
}

func TestDiskCacheByteLimit(t *testing.T) {
	c, err := New[string](strategy.NewDisk(t.TempDir(), 6, 0))
	require.NoError(t, err)

	require.NoError(t, c.Put("foo", []byte("foo")))
	require.NoError(t, c.Put("bar", []byte("bar")))

	err = c.Put("baz", []byte("baz"))
	require.Error(t, err)
	var lerr *strategy.LimitExceededError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, strategy.LimitBytes, lerr.Kind)

	// Earlier writes stay readable after the rejection.
	got, err := c.Get("foo")
	require.NoError(t, err)
	assert.Equal(t, []byte("foo"), got)
	assert.False(t, c.Exists("baz"))
}

func TestEntryLimitCrossingWrite(t *testing.T) {
	c, err := New[string](strategy.NewMemory(0, 2))
	require.NoError(t, err)

	require.NoError(t, c.Put("a", []byte("1")))
	require.NoError(t, c.Put("b", []byte("2")))

	err = c.Put("c", []byte("3"))
	var lerr *strategy.LimitExceededError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, strategy.LimitEntries, lerr.Kind)
}

func TestHybridCacheSpillover(t *testing.T) {
	dir := t.TempDir()
	h := strategy.NewHybrid(dir, strategy.NewLimits(6, 0), strategy.NewLimits(0, 0))
	c, err := New[string](h)
	require.NoError(t, err)

	require.NoError(t, c.Put("foo", []byte("foo")))
	require.NoError(t, c.Put("bar", []byte("bar")))
	require.NoError(t, c.Put("baz", []byte("baz")))

	assert.FileExists(t, filepath.Join(dir, "baz"))
	assert.Equal(t, 6, h.MemoryLimits().ByteCount())
	assert.Equal(t, 3, h.DiskLimits().ByteCount())

	// Reads are tier-transparent.
	for _, key := range []string{"foo", "bar", "baz"} {
		got, err := c.Get(key)
		require.NoError(t, err)
		assert.Equal(t, []byte(key), got)
	}
}

func TestCrashRecovery(t *testing.T) {
	dir := t.TempDir()

	first, err := New[string](strategy.NewDisk(dir, 0, 0))
	require.NoError(t, err)
	require.NoError(t, first.Put("foo", []byte("foo")))
	require.NoError(t, first.Put("bar", []byte("bar")))

	// New process: fresh strategy and cache over the same directory.
	fresh := strategy.NewDisk(dir, 0, 0)
	second, err := New[string](fresh)
	require.NoError(t, err)
	count, err := second.Recover(identityParser)
	require.NoError(t, err)

	assert.Equal(t, 2, count)
	assert.Equal(t, 6, fresh.Limits().ByteCount())
	assert.Equal(t, 2, fresh.Limits().EntryCount())

	got, err := second.Get("foo")
	require.NoError(t, err)
	assert.Equal(t, []byte("foo"), got)
}

func TestRecoveryExcludesUnparsable(t *testing.T) {
	dir := t.TempDir()

	first, err := New[string](strategy.NewDisk(dir, 0, 0))
	require.NoError(t, err)
	require.NoError(t, first.Put("keep", []byte("keep")))
	require.NoError(t, first.Put("drop", []byte("drop")))

	second, err := New[string](strategy.NewDisk(dir, 0, 0))
	require.NoError(t, err)
	count, err := second.Recover(func(name string) (string, bool) {
		return name, name == "keep"
	})
	require.NoError(t, err)

	assert.Equal(t, 1, count)
	assert.True(t, second.Exists("keep"))
	assert.False(t, second.Exists("drop"))
	assert.FileExists(t, filepath.Join(dir, "lost+found", "drop"))
}

func TestRecoverUnsupported(t *testing.T) {
	c, err := New[string](strategy.NewMemory(0, 0))
	require.NoError(t, err)
	_, err = c.Recover(identityParser)
	assert.ErrorIs(t, err, ErrRecoveryUnsupported)
}

func TestHybridCacheFlush(t *testing.T) {
	dir := t.TempDir()
	h := strategy.NewHybrid(dir, strategy.NewLimits(0, 0), strategy.NewLimits(0, 0))
	c, err := New[string](h)
	require.NoError(t, err)

	require.NoError(t, c.Put("foo", []byte("foo")))
	require.NoError(t, c.Put("bar", []byte("bar")))
	assert.Equal(t, 6, h.MemoryLimits().ByteCount())

	flushed, err := c.Flush()
	require.NoError(t, err)
	assert.Equal(t, 2, flushed)

	assert.Equal(t, 0, h.MemoryLimits().ByteCount())
	assert.Equal(t, 0, h.MemoryLimits().EntryCount())
	assert.Equal(t, 6, h.DiskLimits().ByteCount())
	assert.Equal(t, 2, h.DiskLimits().EntryCount())
	assert.FileExists(t, filepath.Join(dir, "foo"))
	assert.FileExists(t, filepath.Join(dir, "bar"))

	// Everything already on disk: nothing left to migrate.
	flushed, err = c.Flush()
	require.NoError(t, err)
	assert.Equal(t, 0, flushed)

	got, err := c.Get("foo")
	require.NoError(t, err)
	assert.Equal(t, []byte("foo"), got)
}

func TestFlushKeepsPriorMigrationsOnFailure(t *testing.T) {
	dir := t.TempDir()
	h := strategy.NewHybrid(dir, strategy.NewLimits(0, 0), strategy.NewLimits(0, 1))
	c, err := New[string](h)
	require.NoError(t, err)

	require.NoError(t, c.Put("foo", []byte("foo")))
	require.NoError(t, c.Put("bar", []byte("bar")))
	assert.Equal(t, 2, h.MemoryLimits().EntryCount())

	// The disk tier only has room for one entry: the first migration
	// succeeds, the second aborts the call.
	flushed, err := c.Flush()
	require.Error(t, err)
	assert.ErrorIs(t, err, strategy.ErrLimitExceeded)
	var lerr *strategy.LimitExceededError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, strategy.LimitEntriesDisk, lerr.Kind)
	assert.Equal(t, 1, flushed)

	// The migrated entry stays migrated, the other stays in memory.
	assert.Equal(t, 1, h.DiskLimits().EntryCount())
	assert.Equal(t, 1, h.MemoryLimits().EntryCount())
	assert.Equal(t, 3, h.DiskLimits().ByteCount())
	assert.Equal(t, 3, h.MemoryLimits().ByteCount())

	// Both keys remain readable regardless of which tier holds them.
	for _, key := range []string{"foo", "bar"} {
		got, err := c.Get(key)
		require.NoError(t, err)
		assert.Equal(t, []byte(key), got)
	}
}

func TestFlushUnsupported(t *testing.T) {
	c, err := New[string](strategy.NewDisk(t.TempDir(), 0, 0))
	require.NoError(t, err)
	_, err = c.Flush()
	assert.ErrorIs(t, err, ErrFlushUnsupported)
}

func TestOverwriteReleasesPreviousEntry(t *testing.T) {
	dir := t.TempDir()
	d := strategy.NewDisk(dir, 0, 0)
	c, err := New[string](d)
	require.NoError(t, err)

	require.NoError(t, c.Put("k", []byte("short")))
	require.NoError(t, c.Put("k", []byte("a longer payload")))

	assert.Equal(t, 1, d.Limits().EntryCount())
	assert.Equal(t, 16, d.Limits().ByteCount())

	got, err := c.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("a longer payload"), got)
}

func TestCapacity(t *testing.T) {
	c, err := New[string](strategy.NewDisk(t.TempDir(), 10, 0))
	require.NoError(t, err)
	require.NoError(t, c.Put("k", []byte("1234")))

	cap, ok := c.Capacity()
	require.True(t, ok)
	assert.Equal(t, 10, cap.Total)
	assert.Equal(t, 4, cap.Used)

	mem, err := New[string](strategy.NewMemory(10, 0))
	require.NoError(t, err)
	_, ok = mem.Capacity()
	assert.False(t, ok)
}

func TestIntKeys(t *testing.T) {
	dir := t.TempDir()
	c, err := New[int](strategy.NewDisk(dir, 0, 0))
	require.NoError(t, err)

	require.NoError(t, c.Put(42, []byte("answer")))
	assert.FileExists(t, filepath.Join(dir, "42"))

	got, err := c.Get(42)
	require.NoError(t, err)
	assert.Equal(t, []byte("answer"), got)
}

func TestEmptyPayload(t *testing.T) {
	c, err := New[string](strategy.NewDisk(t.TempDir(), 0, 0))
	require.NoError(t, err)

	require.NoError(t, c.Put("empty", nil))
	got, err := c.Get("empty")
	require.NoError(t, err)
	assert.Empty(t, got)
}
