package cache

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// PutValue stores an arbitrary Go value under key, serialized with
// msgpack. Values must be msgpack-serializable: exported struct fields,
// maps, slices, primitives. Pair with GetValue or TakeValue using the
// same type.
func PutValue[T any, K comparable](c *Cache[K], key K, value T) error {
	data, err := msgpack.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: failed to marshal value: %w", err)
	}
	return c.Put(key, data)
}

// GetValue retrieves a typed value previously stored with PutValue.
func GetValue[T any, K comparable](c *Cache[K], key K) (T, error) {
	var out T
	data, err := c.Get(key)
	if err != nil {
		return out, err
	}
	if err := msgpack.Unmarshal(data, &out); err != nil {
		var zero T
		return zero, fmt.Errorf("cache: failed to unmarshal value: %w", err)
	}
	return out, nil
}

// TakeValue retrieves a typed value and removes it from the cache.
func TakeValue[T any, K comparable](c *Cache[K], key K) (T, error) {
	var out T
	data, err := c.Take(key)
	if err != nil {
		return out, err
	}
	if err := msgpack.Unmarshal(data, &out); err != nil {
		var zero T
		return zero, fmt.Errorf("cache: failed to unmarshal value: %w", err)
	}
	return out, nil
}
