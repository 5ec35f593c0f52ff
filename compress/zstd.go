package compress

import (
	"github.com/klauspost/compress/zstd"
)

// Zstd compresses payloads with Zstandard.
type Zstd struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

var _ Compressor = (*Zstd)(nil)

// NewZstd returns a Zstandard codec at the given level. Precise levels
// follow the zstd scale (1-22) and are clamped by the encoder.
func NewZstd(level Level) (*Zstd, error) {
	var el zstd.EncoderLevel
	switch level {
	case LevelFastest:
		el = zstd.SpeedFastest
	case LevelBest:
		el = zstd.SpeedBestCompression
	case LevelDefault:
		el = zstd.SpeedDefault
	default:
		el = zstd.EncoderLevelFromZstd(int(level))
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(el))
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		return nil, err
	}
	return &Zstd{enc: enc, dec: dec}, nil
}

func (z *Zstd) Compress(data []byte) ([]byte, error) {
	return z.enc.EncodeAll(data, make([]byte, 0, len(data)/2)), nil
}

func (z *Zstd) Decompress(data []byte) ([]byte, error) {
	return z.dec.DecodeAll(data, nil)
}
