package strategy

import (
	"errors"
	"fmt"
)

// LimitKind names the budget dimension (and, for the hybrid strategy,
// the tier) a rejected write would have crossed.
type LimitKind string

const (
	LimitBytes       LimitKind = "stored bytes"
	LimitEntries     LimitKind = "stored entries"
	LimitBytesDisk   LimitKind = "stored bytes on disk"
	LimitEntriesDisk LimitKind = "stored entries on disk"
)

// ErrLimitExceeded matches any *LimitExceededError via errors.Is.
var ErrLimitExceeded = errors.New("cache limit exceeded")

// ErrForeignEntry reports an entry handed to a strategy that did not
// produce it.
var ErrForeignEntry = errors.New("entry was not produced by this strategy")

// LimitExceededError reports a write rejected because it would cross a
// configured budget.
type LimitExceededError struct {
	Kind LimitKind
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("cache limit exceeded: %s", e.Kind)
}

func (e *LimitExceededError) Is(target error) bool {
	return target == ErrLimitExceeded
}

func limitError(dim Dimension) *LimitExceededError {
	if dim == Entries {
		return &LimitExceededError{Kind: LimitEntries}
	}
	return &LimitExceededError{Kind: LimitBytes}
}

func diskLimitError(dim Dimension) *LimitExceededError {
	if dim == Entries {
		return &LimitExceededError{Kind: LimitEntriesDisk}
	}
	return &LimitExceededError{Kind: LimitBytesDisk}
}
