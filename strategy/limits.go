package strategy

// Dimension is a budget axis a Limits can reject a write on.
type Dimension int

const (
	Bytes Dimension = iota
	Entries
)

// Limits tracks a byte and entry budget alongside the running counts of
// what is currently stored. A zero limit on either axis means unlimited.
//
// Counts are incremented only after the underlying storage operation
// succeeds and decremented only after the corresponding removal succeeds,
// so a failed write never leaves the budget charged for data that was
// not stored.
type Limits struct {
	byteLimit  int
	entryLimit int
	byteCount  int
	entryCount int
}

// NewLimits returns a Limits with the given budgets. Zero disables the
// corresponding budget.
func NewLimits(byteLimit, entryLimit int) Limits {
	return Limits{byteLimit: byteLimit, entryLimit: entryLimit}
}

// Evaluate reports whether one more write of size bytes fits. Both
// configured budgets are checked independently; crossing either one
// rejects the write, bytes first.
func (l Limits) Evaluate(size int) (Dimension, bool) {
	if l.byteLimit > 0 && l.byteCount+size > l.byteLimit {
		return Bytes, false
	}
	if l.entryLimit > 0 && l.entryCount+1 > l.entryLimit {
		return Entries, false
	}
	return 0, true
}

func (l *Limits) add(size int) {
	l.byteCount += size
	l.entryCount++
}

func (l *Limits) remove(size int) {
	l.byteCount -= size
	l.entryCount--
}

// ByteLimit is the configured byte budget, zero when unlimited.
func (l Limits) ByteLimit() int { return l.byteLimit }

// EntryLimit is the configured entry budget, zero when unlimited.
func (l Limits) EntryLimit() int { return l.entryLimit }

// ByteCount is the number of bytes currently stored.
func (l Limits) ByteCount() int { return l.byteCount }

// EntryCount is the number of entries currently stored.
func (l Limits) EntryCount() int { return l.entryCount }
