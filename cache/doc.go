// Package cache provides a keyed binary-object cache whose persistence
// tier is swappable behind a uniform contract, with optional transparent
// compression and crash recovery.
//
// # Cache
//
// A [Cache] maps keys to payloads stored by a single
// [github.com/binstash/binstash/strategy.Strategy] chosen at
// construction:
//
//	c, err := cache.New[string](strategy.NewMemory(0, 0))
//	if err != nil { ... }
//	err = c.Put("key", []byte("value"))
//	data, err := c.Get("key")
//
// Three strategies ship with the module:
//
//   - Memory — payloads held in process memory. Fastest, no persistence.
//   - Disk — one file per entry under a cache directory, fsynced on
//     write. Survives restarts; see Recovery below.
//   - Hybrid — memory until the memory tier's budget is exhausted, then
//     spillover to disk. Supports flushing memory-resident entries to
//     disk on demand.
//
// Strategies reject writes that would cross a configured byte or entry
// budget with a *strategy.LimitExceededError rather than evicting; match
// it with errors.Is(err, strategy.ErrLimitExceeded).
//
// # Compression
//
// An optional codec from [github.com/binstash/binstash/compress] is
// applied transparently before payloads reach the strategy:
//
//	zs, _ := compress.NewZstd(compress.LevelDefault)
//	c, err := cache.New[string](strategy.NewDisk(dir, 0, 0), cache.WithCompressor[string](zs))
//
// The default is the identity codec. A cache directory written with one
// codec must be recovered by a cache using the same codec.
//
// # Keys
//
// Cache is generic over its key type. Keys are converted to stable
// strings for the strategy: strings are used as-is, [fmt.Stringer] keys
// use String(), anything else goes through fmt formatting. Disk-backed
// strategies use the string form as a file name verbatim, so keys that
// are not filesystem-safe need [WithKeyFunc] — [HashedKeys] derives
// fixed-width hex names from arbitrary keys.
//
// # Recovery and flushing
//
// [Cache.Recover] rebuilds the key map from a disk-backed strategy's
// directory after a crash or restart. It is best effort: files whose
// names the caller-supplied parser rejects are quarantined into a
// lost+found subdirectory and excluded from the result. [Cache.Flush]
// migrates memory-resident entries of a hybrid cache to disk. Both
// return an unsupported error when the bound strategy lacks the
// capability.
//
// # Concurrency
//
// A Cache is single-owner: no internal locking is performed, and callers
// sharing one across goroutines must serialize access themselves.
package cache
