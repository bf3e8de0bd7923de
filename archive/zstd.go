package archive

// ZstdCodec compresses payloads with Zstandard, trading some encode speed for
// the best ratio of the built-in codecs. The default for Encode, since
// archives are written once and read rarely.
//
// Two implementations back this type: cgo builds use the libzstd bindings,
// pure-Go builds fall back to the klauspost zstd port. The wire format is
// identical, so archives written by one build decode under the other.
type ZstdCodec struct{}

var _ Codec = (*ZstdCodec)(nil)

// NewZstdCodec creates a new Zstandard codec with default settings.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}
