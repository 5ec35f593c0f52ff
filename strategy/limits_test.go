package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimitsUnlimited(t *testing.T) {
	l := NewLimits(0, 0)
	_, ok := l.Evaluate(1 << 40)
	assert.True(t, ok)
}

func TestLimitsEvaluateBothDimensions(t *testing.T) {
	tests := []struct {
		name       string
		byteLimit  int
		entryLimit int
		preload    []int
		size       int
		wantOK     bool
		wantDim    Dimension
	}{
		{name: "fits both", byteLimit: 10, entryLimit: 2, preload: []int{3}, size: 3, wantOK: true},
		{name: "crosses bytes", byteLimit: 6, preload: []int{3, 3}, size: 1, wantOK: false, wantDim: Bytes},
		{name: "exactly at byte limit", byteLimit: 6, preload: []int{3}, size: 3, wantOK: true},
		{name: "crosses entries", entryLimit: 2, preload: []int{1, 1}, size: 1, wantOK: false, wantDim: Entries},
		{name: "bytes checked before entries", byteLimit: 4, entryLimit: 2, preload: []int{2, 2}, size: 1, wantOK: false, wantDim: Bytes},
		{name: "entry limit trips even when bytes fit", byteLimit: 100, entryLimit: 1, preload: []int{1}, size: 1, wantOK: false, wantDim: Entries},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLimits(tt.byteLimit, tt.entryLimit)
			for _, size := range tt.preload {
				l.add(size)
			}
			dim, ok := l.Evaluate(tt.size)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Equal(t, tt.wantDim, dim)
			}
		})
	}
}

func TestLimitsCounters(t *testing.T) {
	l := NewLimits(10, 10)
	l.add(4)
	l.add(2)
	assert.Equal(t, 6, l.ByteCount())
	assert.Equal(t, 2, l.EntryCount())
	l.remove(4)
	assert.Equal(t, 2, l.ByteCount())
	assert.Equal(t, 1, l.EntryCount())
	l.remove(2)
	assert.Equal(t, 0, l.ByteCount())
	assert.Equal(t, 0, l.EntryCount())
}
