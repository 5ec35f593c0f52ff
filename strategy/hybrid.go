package strategy

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Hybrid keeps entries in memory while its memory-tier budget lasts and
// spills further writes to disk. Each tier carries its own independent
// Limits. Entries are *MemoryEntry or *DiskEntry depending on the tier
// that absorbed the write.
//
// Hybrid supports recovery (everything durable enough to survive as a
// file is disk tier by definition) and flushing, which migrates
// memory-resident entries to disk.
type Hybrid struct {
	dir  string
	mem  Limits
	disk Limits
	log  *zap.Logger
}

var (
	_ Strategy         = (*Hybrid)(nil)
	_ Recoverable      = (*Hybrid)(nil)
	_ Flushable        = (*Hybrid)(nil)
	_ CapacityReporter = (*Hybrid)(nil)
)

// HybridOption configures a Hybrid strategy.
type HybridOption func(*Hybrid)

// WithHybridLogger sets the logger used for recovery and flush diagnostics.
func WithHybridLogger(log *zap.Logger) HybridOption {
	return func(h *Hybrid) {
		if log != nil {
			h.log = log
		}
	}
}

// NewHybrid returns a hybrid strategy rooted at dir (DefaultDir when
// empty) with independent memory- and disk-tier budgets.
func NewHybrid(dir string, memLimits, diskLimits Limits, opts ...HybridOption) *Hybrid {
	if dir == "" {
		dir = DefaultDir
	}
	h := &Hybrid{
		dir:  dir,
		mem:  memLimits,
		disk: diskLimits,
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Setup creates the cache directory if absent.
func (h *Hybrid) Setup() error {
	return os.MkdirAll(h.dir, 0o755)
}

// Put stores in memory when the memory tier has room, otherwise spills
// to disk. When neither tier fits, the reported limit kind names the
// disk tier's failing dimension.
func (h *Hybrid) Put(key string, data []byte) (Entry, error) {
	_, memOK := h.mem.Evaluate(len(data))
	diskDim, diskOK := h.disk.Evaluate(len(data))

	switch {
	case memOK:
		owned := make([]byte, len(data))
		copy(owned, data)
		h.mem.add(len(owned))
		return &MemoryEntry{data: owned}, nil
	case diskOK:
		path := filepath.Join(h.dir, key)
		if err := writeFileSync(path, data); err != nil {
			return nil, err
		}
		h.disk.add(len(data))
		h.log.Debug("spilled entry to disk", zap.String("key", key), zap.Int("bytes", len(data)))
		return &DiskEntry{path: path, size: len(data)}, nil
	default:
		return nil, diskLimitError(diskDim)
	}
}

func (h *Hybrid) Get(entry Entry) ([]byte, error) {
	switch e := entry.(type) {
	case *MemoryEntry:
		return e.data, nil
	case *DiskEntry:
		return os.ReadFile(e.path)
	default:
		return nil, ErrForeignEntry
	}
}

func (h *Hybrid) Take(entry Entry) ([]byte, error) {
	switch e := entry.(type) {
	case *MemoryEntry:
		h.mem.remove(e.Len())
		return e.data, nil
	case *DiskEntry:
		data, err := os.ReadFile(e.path)
		if err != nil {
			return nil, err
		}
		if err := os.Remove(e.path); err != nil {
			return nil, err
		}
		h.disk.remove(e.size)
		return data, nil
	default:
		return nil, ErrForeignEntry
	}
}

func (h *Hybrid) Delete(entry Entry) error {
	switch e := entry.(type) {
	case *MemoryEntry:
		h.mem.remove(e.Len())
		return nil
	case *DiskEntry:
		if err := os.Remove(e.path); err != nil {
			return err
		}
		h.disk.remove(e.size)
		return nil
	default:
		return ErrForeignEntry
	}
}

// Recover rebuilds entries from the files already present in the cache
// directory. Every recovered entry is disk tier; only disk counters are
// charged.
func (h *Hybrid) Recover(accept func(name string) bool) ([]Recovered, error) {
	var out []Recovered
	err := recoverScan(h.dir, h.log, accept, func(name, path string, size int) {
		h.disk.add(size)
		out = append(out, Recovered{Name: name, Entry: &DiskEntry{path: path, size: size}})
	})
	if err != nil {
		return nil, err
	}
	h.log.Debug("hybrid recovery complete",
		zap.Int("entries", len(out)),
		zap.Int("bytes", h.disk.ByteCount()))
	return out, nil
}

// Flush writes a memory-resident entry to disk and returns the
// replacement disk entry. Disk-resident entries return (nil, nil). The
// caller must substitute the replacement and then delete the old entry,
// which releases the memory-tier budget.
func (h *Hybrid) Flush(key string, entry Entry) (Entry, error) {
	switch e := entry.(type) {
	case *DiskEntry:
		return nil, nil
	case *MemoryEntry:
		if dim, fits := h.disk.Evaluate(e.Len()); !fits {
			return nil, diskLimitError(dim)
		}
		path := filepath.Join(h.dir, key)
		if err := writeFileSync(path, e.data); err != nil {
			return nil, err
		}
		h.disk.add(e.Len())
		return &DiskEntry{path: path, size: e.Len()}, nil
	default:
		return nil, ErrForeignEntry
	}
}

// Capacity reports combined byte budget usage across both tiers. It is
// only available when both tiers have a byte limit configured.
func (h *Hybrid) Capacity() (Capacity, bool) {
	if h.mem.ByteLimit() == 0 || h.disk.ByteLimit() == 0 {
		return Capacity{}, false
	}
	return Capacity{
		Total: h.mem.ByteLimit() + h.disk.ByteLimit(),
		Used:  h.mem.ByteCount() + h.disk.ByteCount(),
	}, true
}

// MemoryLimits exposes the memory tier's budget counters.
func (h *Hybrid) MemoryLimits() Limits { return h.mem }

// DiskLimits exposes the disk tier's budget counters.
func (h *Hybrid) DiskLimits() Limits { return h.disk }

// Dir is the directory disk-tier entries are persisted under.
func (h *Hybrid) Dir() string { return h.dir }
