package archive

// NoOpCodec passes payload bytes through untouched.
//
// Useful when the payload is small enough that compression overhead is not
// worth paying, and as a baseline when measuring codec cost.
type NoOpCodec struct{}

var _ Codec = (*NoOpCodec)(nil)

// NewNoOpCodec creates a codec that bypasses compression.
func NewNoOpCodec() NoOpCodec {
	return NoOpCodec{}
}

// Compress returns data as-is without copying.
//
// The returned slice shares memory with the input, so callers must not
// modify the input afterwards if they keep the returned slice.
func (c NoOpCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data as-is without copying.
func (c NoOpCodec) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
