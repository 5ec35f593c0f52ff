package compress

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
)

// Gzip compresses payloads with the gzip format.
type Gzip struct {
	level int
}

var _ Compressor = (*Gzip)(nil)

// NewGzip returns a gzip codec at the given level. Precise levels follow
// the gzip scale (1-9) and are clamped to it.
func NewGzip(level Level) *Gzip {
	var l int
	switch level {
	case LevelFastest:
		l = gzip.BestSpeed
	case LevelBest:
		l = gzip.BestCompression
	case LevelDefault:
		l = gzip.DefaultCompression
	default:
		l = clamp(int(level), gzip.BestSpeed, gzip.BestCompression)
	}
	return &Gzip{level: l}
}

func (g *Gzip) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, g.level)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Gzip) Decompress(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return out, nil
}
