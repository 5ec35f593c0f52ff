package cache

import "errors"

var (
	// ErrKeyNotFound reports a get, take, or delete against an absent key.
	ErrKeyNotFound = errors.New("key not found in cache")

	// ErrNoStrategy reports construction without a storage strategy.
	ErrNoStrategy = errors.New("cache requires a storage strategy")

	// ErrRecoveryUnsupported reports Recover on a strategy without the
	// recovery capability.
	ErrRecoveryUnsupported = errors.New("strategy does not support recovery")

	// ErrFlushUnsupported reports Flush on a strategy without the flush
	// capability.
	ErrFlushUnsupported = errors.New("strategy does not support flushing")
)
