package compress

import (
	"bytes"
	"io"

	"github.com/andybalholm/brotli"
)

// Brotli compresses payloads with the brotli format.
type Brotli struct {
	level int
}

var _ Compressor = (*Brotli)(nil)

// NewBrotli returns a brotli codec at the given level. Precise levels
// follow the brotli scale (0-11) and are clamped to it.
func NewBrotli(level Level) *Brotli {
	var l int
	switch level {
	case LevelFastest:
		l = brotli.BestSpeed
	case LevelBest:
		l = brotli.BestCompression
	case LevelDefault:
		l = brotli.DefaultCompression
	default:
		l = clamp(int(level), brotli.BestSpeed, brotli.BestCompression)
	}
	return &Brotli{level: l}
}

func (b *Brotli) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, b.level)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (b *Brotli) Decompress(data []byte) ([]byte, error) {
	out, err := io.ReadAll(brotli.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, err
	}
	return out, nil
}
