package strategy

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// DiskEntry is a payload persisted as a single file under the strategy's
// cache directory.
type DiskEntry struct {
	path string
	size int
}

func (e *DiskEntry) Len() int { return e.size }

// Path is the file backing this entry.
func (e *DiskEntry) Path() string { return e.path }

// Disk stores each entry as one file directly under a cache directory,
// named by the entry's key. Keys are used as file names verbatim; making
// them filesystem-safe is the caller's responsibility.
//
// Disk supports crash recovery: a fresh strategy pointed at an existing
// cache directory can rebuild its entries (and budget counters) from the
// files found there.
type Disk struct {
	dir    string
	limits Limits
	log    *zap.Logger
}

var (
	_ Strategy         = (*Disk)(nil)
	_ Recoverable      = (*Disk)(nil)
	_ CapacityReporter = (*Disk)(nil)
)

// DiskOption configures a Disk strategy.
type DiskOption func(*Disk)

// WithDiskLogger sets the logger used for recovery diagnostics.
func WithDiskLogger(log *zap.Logger) DiskOption {
	return func(d *Disk) {
		if log != nil {
			d.log = log
		}
	}
}

// NewDisk returns a disk strategy rooted at dir (DefaultDir when empty)
// with the given budgets. Zero disables the corresponding budget.
func NewDisk(dir string, byteLimit, entryLimit int, opts ...DiskOption) *Disk {
	if dir == "" {
		dir = DefaultDir
	}
	d := &Disk{
		dir:    dir,
		limits: NewLimits(byteLimit, entryLimit),
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Setup creates the cache directory if absent.
func (d *Disk) Setup() error {
	return os.MkdirAll(d.dir, 0o755)
}

func (d *Disk) Put(key string, data []byte) (Entry, error) {
	if dim, ok := d.limits.Evaluate(len(data)); !ok {
		return nil, limitError(dim)
	}
	path := filepath.Join(d.dir, key)
	if err := writeFileSync(path, data); err != nil {
		return nil, err
	}
	d.limits.add(len(data))
	return &DiskEntry{path: path, size: len(data)}, nil
}

func (d *Disk) Get(entry Entry) ([]byte, error) {
	e, ok := entry.(*DiskEntry)
	if !ok {
		return nil, ErrForeignEntry
	}
	return os.ReadFile(e.path)
}

func (d *Disk) Take(entry Entry) ([]byte, error) {
	e, ok := entry.(*DiskEntry)
	if !ok {
		return nil, ErrForeignEntry
	}
	data, err := os.ReadFile(e.path)
	if err != nil {
		return nil, err
	}
	if err := d.Delete(e); err != nil {
		return nil, err
	}
	return data, nil
}

func (d *Disk) Delete(entry Entry) error {
	e, ok := entry.(*DiskEntry)
	if !ok {
		return ErrForeignEntry
	}
	if err := os.Remove(e.path); err != nil {
		return err
	}
	d.limits.remove(e.size)
	return nil
}

// Recover rebuilds entries from the files already present in the cache
// directory, charging the budget for each recovered item.
func (d *Disk) Recover(accept func(name string) bool) ([]Recovered, error) {
	var out []Recovered
	err := recoverScan(d.dir, d.log, accept, func(name, path string, size int) {
		d.limits.add(size)
		out = append(out, Recovered{Name: name, Entry: &DiskEntry{path: path, size: size}})
	})
	if err != nil {
		return nil, err
	}
	d.log.Debug("disk recovery complete",
		zap.Int("entries", len(out)),
		zap.Int("bytes", d.limits.ByteCount()))
	return out, nil
}

// Capacity reports byte budget usage. It is only available when a byte
// limit is configured.
func (d *Disk) Capacity() (Capacity, bool) {
	if d.limits.ByteLimit() == 0 {
		return Capacity{}, false
	}
	return Capacity{Total: d.limits.ByteLimit(), Used: d.limits.ByteCount()}, true
}

// Limits exposes the current budget counters.
func (d *Disk) Limits() Limits { return d.limits }

// Dir is the directory entries are persisted under.
func (d *Disk) Dir() string { return d.dir }
