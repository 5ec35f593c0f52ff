// Package compress provides the compression codecs used by the cache to
// shrink payloads before they reach a storage strategy.
//
// All codecs implement the [Compressor] interface and guarantee that
// Decompress(Compress(x)) == x for every byte slice, including empty
// input. No container or header beyond the codec's own framing is added,
// so the exact codec (and only the codec — the level does not matter for
// decompression) used to compress a payload must be used to decompress it.
//
// [Noop] is the identity codec and the default when no compressor is
// configured on a cache.
package compress

// Compressor is a symmetric codec pair.
//
// Implementations must be safe for concurrent use: a single Compressor is
// shared by every operation of the cache it is attached to.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// Level selects how aggressively a codec trades speed for ratio.
//
// Negative values are the portable presets below. Non-negative values are
// codec-specific precise levels and are clamped to the range the concrete
// codec accepts.
type Level int

const (
	// LevelDefault is the codec's default trade-off.
	LevelDefault Level = -1
	// LevelFastest favors throughput over ratio.
	LevelFastest Level = -2
	// LevelBest favors ratio over throughput.
	LevelBest Level = -3
)

// Precise returns a codec-specific level. Negative values are treated as
// the codec's minimum; values past the codec's maximum are clamped.
func Precise(n int) Level {
	if n < 0 {
		n = 0
	}
	return Level(n)
}

// clamp maps a precise level into [low, high]. Preset levels are resolved
// by each codec before calling clamp.
func clamp(n, low, high int) int {
	if n < low {
		return low
	}
	if n > high {
		return high
	}
	return n
}
