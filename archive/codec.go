package archive

import (
	"fmt"

	"github.com/kashenfelter/rloadest/errs"
)

// Codec compresses and decompresses whole archive payloads.
//
// Payloads are columnar dataset bytes, typically a few KB for calibration
// tables and tens of KB for decade-long daily estimation tables. Implementations
// reuse internal buffers where the underlying library supports it, so a single
// Codec value is safe to share across goroutines.
//
// Memory management for both methods:
//   - The returned slice is newly allocated and owned by the caller, except
//     for the no-op codec which returns its input unchanged
//   - The input slice is never modified
type Codec interface {
	// Compress compresses data and returns the compressed result.
	Compress(data []byte) ([]byte, error)

	// Decompress reverses Compress. It returns an error when data is
	// corrupted or was produced by a different codec.
	Decompress(data []byte) ([]byte, error)
}

var builtinCodecs = map[Compression]Codec{
	CompressionNone: NewNoOpCodec(),
	CompressionZstd: NewZstdCodec(),
	CompressionS2:   NewS2Codec(),
	CompressionLZ4:  NewLZ4Codec(),
}

// codecFor returns the built-in Codec for the given compression type.
func codecFor(c Compression) (Codec, error) {
	if codec, ok := builtinCodecs[c]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: 0x%02x", errs.ErrUnknownCodec, uint8(c))
}
