package archive

import (
	"encoding/binary"
	"fmt"

	"github.com/kashenfelter/rloadest/errs"
)

const (
	// Magic identifies archive bytes. The four bytes on the wire spell "RLDA".
	Magic uint32 = 0x41444C52

	// Version is the format version written by Encode. Decode rejects
	// anything else.
	Version uint8 = 1

	// HeaderSize is the fixed byte length of the archive header.
	HeaderSize = 32
)

// Header flag bits, stored at byte offsets 6-7.
const (
	flagResponse uint16 = 1 << 0 // dataset carries a response column
	flagCensored uint16 = 1 << 1 // payload ends with a censor bitmap
)

// header is the fixed-size section at the front of every archive.
// All multi-byte fields are little-endian.
type header struct {
	// StationID is the xxHash64 of the station name. byte offset 8-15
	StationID uint64
	// ConstituentID is the xxHash64 of the constituent name. byte offset 16-23
	ConstituentID uint64
	// Rows is the dataset row count, max 4294967295. byte offset 24-27
	Rows uint32
	// Checksum is the CRC-32 (IEEE) of the compressed payload. byte offset 28-31
	Checksum uint32
	// Flags packs the response and censor-bitmap presence bits. byte offset 6-7
	Flags uint16
	// Version is the format version. byte offset 4
	Version uint8
	// Codec identifies the payload compression. byte offset 5
	Codec Compression
}

// appendTo serializes the header, magic first, onto b.
func (h header) appendTo(b []byte) []byte {
	b = binary.LittleEndian.AppendUint32(b, Magic)
	b = append(b, h.Version, uint8(h.Codec))
	b = binary.LittleEndian.AppendUint16(b, h.Flags)
	b = binary.LittleEndian.AppendUint64(b, h.StationID)
	b = binary.LittleEndian.AppendUint64(b, h.ConstituentID)
	b = binary.LittleEndian.AppendUint32(b, h.Rows)
	b = binary.LittleEndian.AppendUint32(b, h.Checksum)

	return b
}

// parse reads the header from the front of data.
//
// Returns:
//   - error: errs.ErrTruncatedArchive when data is shorter than HeaderSize,
//     errs.ErrInvalidMagic on a magic mismatch, or errs.ErrUnsupportedVersion
//     on an unknown version byte
func (h *header) parse(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: %d header bytes", errs.ErrTruncatedArchive, len(data))
	}
	if magic := binary.LittleEndian.Uint32(data[0:4]); magic != Magic {
		return fmt.Errorf("%w: 0x%08x", errs.ErrInvalidMagic, magic)
	}

	h.Version = data[4]
	if h.Version != Version {
		return fmt.Errorf("%w: %d", errs.ErrUnsupportedVersion, h.Version)
	}

	h.Codec = Compression(data[5])
	h.Flags = binary.LittleEndian.Uint16(data[6:8])
	h.StationID = binary.LittleEndian.Uint64(data[8:16])
	h.ConstituentID = binary.LittleEndian.Uint64(data[16:24])
	h.Rows = binary.LittleEndian.Uint32(data[24:28])
	h.Checksum = binary.LittleEndian.Uint32(data[28:32])

	return nil
}

func (h header) hasResponse() bool {
	return h.Flags&flagResponse != 0
}

func (h header) hasCensored() bool {
	return h.Flags&flagCensored != 0
}
