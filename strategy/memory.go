package strategy

// MemoryEntry is a payload held in an owned in-memory buffer.
type MemoryEntry struct {
	data []byte
}

func (e *MemoryEntry) Len() int { return len(e.data) }

// Memory stores entries in process memory. It can be configured to limit
// the number of bytes and/or entries stored. No persistence, no recovery.
type Memory struct {
	limits Limits
}

var _ Strategy = (*Memory)(nil)

// NewMemory returns a memory strategy with the given budgets. Zero
// disables the corresponding budget.
func NewMemory(byteLimit, entryLimit int) *Memory {
	return &Memory{limits: NewLimits(byteLimit, entryLimit)}
}

func (m *Memory) Setup() error { return nil }

func (m *Memory) Put(_ string, data []byte) (Entry, error) {
	if dim, ok := m.limits.Evaluate(len(data)); !ok {
		return nil, limitError(dim)
	}
	owned := make([]byte, len(data))
	copy(owned, data)
	m.limits.add(len(owned))
	return &MemoryEntry{data: owned}, nil
}

func (m *Memory) Get(entry Entry) ([]byte, error) {
	e, ok := entry.(*MemoryEntry)
	if !ok {
		return nil, ErrForeignEntry
	}
	return e.data, nil
}

func (m *Memory) Take(entry Entry) ([]byte, error) {
	e, ok := entry.(*MemoryEntry)
	if !ok {
		return nil, ErrForeignEntry
	}
	m.limits.remove(e.Len())
	return e.data, nil
}

func (m *Memory) Delete(entry Entry) error {
	_, err := m.Take(entry)
	return err
}

// Limits exposes the current budget counters.
func (m *Memory) Limits() Limits { return m.limits }
