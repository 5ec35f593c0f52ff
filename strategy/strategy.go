// Package strategy implements the storage backends a cache can be built
// on: in-memory, on-disk, and a memory-with-disk-spillover hybrid.
//
// A [Strategy] stores and retrieves raw payloads through opaque per-entry
// handles. Optional capabilities ([Recoverable], [Flushable],
// [CapacityReporter]) are separate interfaces a backend may additionally
// satisfy.
package strategy

// Entry is an opaque, strategy-specific record of where and how a payload
// is stored. Entries are created by Put (or Recover/Flush) and consumed
// by Take and Delete. An Entry must only ever be handed back to the
// strategy that produced it.
type Entry interface {
	// Len is the stored payload size in bytes.
	Len() int
}

// Strategy is the contract every storage backend implements.
//
// Implementations are not safe for concurrent use; callers sharing one
// across goroutines must serialize access themselves.
type Strategy interface {
	// Setup performs one-time initialization, such as creating the cache
	// directory. It is idempotent and safe to call repeatedly.
	Setup() error

	// Put stores a payload and returns its handle. It fails with a
	// *LimitExceededError when a configured budget would be crossed;
	// budgets are never mutated by a rejected or failed write.
	Put(key string, data []byte) (Entry, error)

	// Get returns the stored payload. Memory-backed entries return the
	// internal buffer without copying; callers must not mutate it.
	Get(entry Entry) ([]byte, error)

	// Take removes the entry and returns its payload, owned by the caller.
	Take(entry Entry) ([]byte, error)

	// Delete removes the entry, releasing whatever resource it references.
	Delete(entry Entry) error
}

// Recovered pairs a persisted file's name with its reconstructed entry.
type Recovered struct {
	Name  string
	Entry Entry
}

// Recoverable is satisfied by strategies that can rebuild their entries
// from a previous process's persisted state.
type Recoverable interface {
	// Recover scans persisted storage and reconstructs an entry per file
	// whose name the accept callback approves. Rejected files are moved,
	// best effort, into a lost+found subdirectory and excluded from the
	// result. Recovery never aborts over a single bad file.
	Recover(accept func(name string) bool) ([]Recovered, error)
}

// Flushable is satisfied by strategies that can migrate entries from a
// volatile tier to a durable one.
type Flushable interface {
	// Flush migrates a memory-resident entry to disk. It returns the
	// replacement entry, or (nil, nil) when there is nothing to do. The
	// caller owns substituting the replacement for the old entry and
	// deleting the old one afterwards.
	Flush(key string, entry Entry) (Entry, error)
}

// CapacityReporter is satisfied by strategies with a configured byte
// budget that can report how much of it is in use.
type CapacityReporter interface {
	Capacity() (Capacity, bool)
}
