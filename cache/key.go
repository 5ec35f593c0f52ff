package cache

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// KeyFunc converts a key to the stable string form handed to the
// strategy. The same logical key must always yield the same string;
// disk-backed strategies use it as a file name.
type KeyFunc[K comparable] func(K) string

// DefaultKey is the KeyFunc used when none is configured. Strings are
// used as-is, fmt.Stringer keys use String(), anything else goes through
// fmt formatting.
func DefaultKey[K comparable](key K) string {
	switch k := any(key).(type) {
	case string:
		return k
	case fmt.Stringer:
		return k.String()
	default:
		return fmt.Sprintf("%v", key)
	}
}

// HashedKeys returns a KeyFunc that derives a fixed-width hex name from
// the key's default string form via xxhash. Use it when keys are not
// filesystem-safe and the strategy persists entries as files.
func HashedKeys[K comparable]() KeyFunc[K] {
	return func(key K) string {
		return strconv.FormatUint(xxhash.Sum64String(DefaultKey(key)), 16)
	}
}
