package compress

// Noop is the identity codec. Both directions return their input
// unchanged. It is the default codec for caches built without compression.
type Noop struct{}

var _ Compressor = Noop{}

func (Noop) Compress(data []byte) ([]byte, error)   { return data, nil }
func (Noop) Decompress(data []byte) ([]byte, error) { return data, nil }
