package archive

// Compression identifies the codec applied to an archive payload.
type Compression uint8

const (
	CompressionNone Compression = 0x1 // CompressionNone stores the payload uncompressed.
	CompressionZstd Compression = 0x2 // CompressionZstd applies Zstandard compression.
	CompressionS2   Compression = 0x3 // CompressionS2 applies S2 compression.
	CompressionLZ4  Compression = 0x4 // CompressionLZ4 applies LZ4 block compression.
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

func (c Compression) valid() bool {
	switch c {
	case CompressionNone, CompressionZstd, CompressionS2, CompressionLZ4:
		return true
	default:
		return false
	}
}
