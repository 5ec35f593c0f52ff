package cache

import (
	"go.uber.org/zap"

	"github.com/binstash/binstash/compress"
	"github.com/binstash/binstash/strategy"
)

// config holds the resolved configuration for a Cache.
type config[K comparable] struct {
	compressor compress.Compressor
	keyFn      KeyFunc[K]
	log        *zap.Logger
}

// Option configures a Cache.
type Option[K comparable] func(*config[K])

// WithCompressor sets the codec applied to payloads before they reach
// the strategy. Defaults to the identity codec.
func WithCompressor[K comparable](c compress.Compressor) Option[K] {
	return func(cfg *config[K]) {
		if c != nil {
			cfg.compressor = c
		}
	}
}

// WithKeyFunc sets the key-to-string conversion. Defaults to DefaultKey.
func WithKeyFunc[K comparable](fn KeyFunc[K]) Option[K] {
	return func(cfg *config[K]) {
		if fn != nil {
			cfg.keyFn = fn
		}
	}
}

// WithLogger sets the logger used for recovery and flush diagnostics.
// Defaults to a no-op logger.
func WithLogger[K comparable](log *zap.Logger) Option[K] {
	return func(cfg *config[K]) {
		if log != nil {
			cfg.log = log
		}
	}
}

// Cache is a keyed binary-object store over one storage strategy. It is
// not safe for concurrent use.
type Cache[K comparable] struct {
	entries    map[K]strategy.Entry
	strat      strategy.Strategy
	compressor compress.Compressor
	keyFn      KeyFunc[K]
	log        *zap.Logger
}

// New builds a Cache over the given strategy, running the strategy's
// one-time setup. The strategy is required; everything else is optional.
func New[K comparable](strat strategy.Strategy, opts ...Option[K]) (*Cache[K], error) {
	if strat == nil {
		return nil, ErrNoStrategy
	}
	cfg := config[K]{
		compressor: compress.Noop{},
		keyFn:      DefaultKey[K],
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := strat.Setup(); err != nil {
		return nil, err
	}
	return &Cache[K]{
		entries:    make(map[K]strategy.Entry),
		strat:      strat,
		compressor: cfg.compressor,
		keyFn:      cfg.keyFn,
		log:        cfg.log,
	}, nil
}

// Put stores a payload under key, compressing it first. Overwriting an
// existing key releases the previous entry's storage before the new
// write; if the new write then fails, the key is gone. The release must
// happen first because disk-backed strategies reuse the key's file path,
// so deleting the old entry afterwards would remove the new file.
func (c *Cache[K]) Put(key K, value []byte) error {
	compressed, err := c.compressor.Compress(value)
	if err != nil {
		return err
	}
	if old, ok := c.entries[key]; ok {
		if err := c.strat.Delete(old); err != nil {
			return err
		}
		delete(c.entries, key)
	}
	entry, err := c.strat.Put(c.keyFn(key), compressed)
	if err != nil {
		return err
	}
	c.entries[key] = entry
	return nil
}

// Get returns the payload stored under key. The returned slice may alias
// storage owned by a memory-backed strategy; callers must not mutate it.
func (c *Cache[K]) Get(key K) ([]byte, error) {
	entry, ok := c.entries[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	data, err := c.strat.Get(entry)
	if err != nil {
		return nil, err
	}
	return c.compressor.Decompress(data)
}

// Take removes the entry under key and returns its payload, owned by the
// caller.
func (c *Cache[K]) Take(key K) ([]byte, error) {
	entry, ok := c.entries[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	delete(c.entries, key)
	data, err := c.strat.Take(entry)
	if err != nil {
		return nil, err
	}
	return c.compressor.Decompress(data)
}

// Delete removes the entry under key and releases its storage.
func (c *Cache[K]) Delete(key K) error {
	entry, ok := c.entries[key]
	if !ok {
		return ErrKeyNotFound
	}
	delete(c.entries, key)
	return c.strat.Delete(entry)
}

// Exists reports whether key is present. No strategy call is made.
func (c *Cache[K]) Exists(key K) bool {
	_, ok := c.entries[key]
	return ok
}

// Len is the number of entries currently mapped.
func (c *Cache[K]) Len() int {
	return len(c.entries)
}

// Recover rebuilds the key map from the strategy's persisted state. The
// parser maps a persisted file name back to a key; files it rejects are
// quarantined by the strategy and excluded. Returns the number of
// entries recovered. Fails with ErrRecoveryUnsupported when the strategy
// cannot recover.
func (c *Cache[K]) Recover(parse func(name string) (K, bool)) (int, error) {
	rec, ok := c.strat.(strategy.Recoverable)
	if !ok {
		return 0, ErrRecoveryUnsupported
	}
	byName := make(map[string]K)
	items, err := rec.Recover(func(name string) bool {
		key, ok := parse(name)
		if ok {
			byName[name] = key
		}
		return ok
	})
	if err != nil {
		return 0, err
	}
	for _, item := range items {
		c.entries[byName[item.Name]] = item.Entry
	}
	c.log.Info("recovered cache entries", zap.Int("count", len(items)))
	return len(items), nil
}

// Flush asks the strategy to migrate every migratable entry to durable
// storage, substituting replacement entries as it goes. Returns the
// number of entries actually migrated. The first failing entry aborts
// the call; entries migrated before the failure stay migrated.
// Fails with ErrFlushUnsupported when the strategy cannot flush.
func (c *Cache[K]) Flush() (int, error) {
	fl, ok := c.strat.(strategy.Flushable)
	if !ok {
		return 0, ErrFlushUnsupported
	}
	keys := make([]K, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	flushed := 0
	for _, key := range keys {
		old := c.entries[key]
		replacement, err := fl.Flush(c.keyFn(key), old)
		if err != nil {
			return flushed, err
		}
		if replacement == nil {
			continue
		}
		c.entries[key] = replacement
		if err := c.strat.Delete(old); err != nil {
			return flushed, err
		}
		flushed++
	}
	if flushed > 0 {
		c.log.Info("flushed cache entries to disk", zap.Int("count", flushed))
	}
	return flushed, nil
}

// Capacity reports the strategy's byte budget usage when the strategy
// tracks one.
func (c *Cache[K]) Capacity() (strategy.Capacity, bool) {
	if rep, ok := c.strat.(strategy.CapacityReporter); ok {
		return rep.Capacity()
	}
	return strategy.Capacity{}, false
}
