// Package archive serializes datasets into a compact binary format for
// caching and interchange.
//
// Merging samples against a long daily-flow record, or staging a decade of
// estimation rows, is work worth doing once. An archive freezes the resulting
// dataset (dates, flow, response, auxiliary columns, censor flags) into bytes
// that round-trip bit for bit, so a calibration run can be replayed later
// without touching the source records.
//
// # Archive Structure
//
// An archive is a fixed header followed by length-prefixed names and one
// compressed columnar payload:
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Header (32 bytes, fixed)                                │
//	│  - Magic, version, codec, flags                         │
//	│  - Station and constituent IDs (xxHash64)               │
//	│  - Row count, payload checksum                          │
//	├─────────────────────────────────────────────────────────┤
//	│ Station name (uvarint length + bytes)                   │
//	├─────────────────────────────────────────────────────────┤
//	│ Constituent name (uvarint length + bytes)               │
//	├─────────────────────────────────────────────────────────┤
//	│ Payload length (uvarint)                                │
//	├─────────────────────────────────────────────────────────┤
//	│ Payload (variable, compressed)                          │
//	│  - Column names (uvarint count, length-prefixed)        │
//	│  - Dates (varint first, uvarint deltas)                 │
//	│  - Flow, response, auxiliary columns (float64 LE)       │
//	│  - Censor bitmap (1 bit per row, optional)              │
//	└─────────────────────────────────────────────────────────┘
//
// # Header Format
//
// All multi-byte fields are little-endian:
//
//	Bytes  | Field         | Type   | Description
//	-------|---------------|--------|----------------------------------
//	0-3    | Magic         | uint32 | "RLDA" on the wire
//	4      | Version       | uint8  | Format version, currently 1
//	5      | Codec         | uint8  | Payload compression (0x1-0x4)
//	6-7    | Flags         | uint16 | Bit 0: response, bit 1: censor bitmap
//	8-15   | StationID     | uint64 | xxHash64 of station name
//	16-23  | ConstituentID | uint64 | xxHash64 of constituent name
//	24-27  | Rows          | uint32 | Dataset row count
//	28-31  | Checksum      | uint32 | CRC-32 (IEEE) of compressed payload
//
// The identity hashes let an archive store index and look up datasets by
// (station, constituent) without parsing names out of every file.
//
// # Payload Encoding
//
// Dates are stored as a signed varint for the first row followed by unsigned
// varint day deltas; daily records cost one byte per row. Value columns are
// raw IEEE-754 bits, so NaN (the missing-value marker) survives exactly.
// The censor bitmap is written only when at least one row is censored, and
// an uncensored dataset decodes with no censor flags at all.
//
// The whole payload is compressed with a selectable codec:
//
//	codec := archive.CompressionZstd // best ratio, the default
//	codec = archive.CompressionS2   // fastest
//	codec = archive.CompressionLZ4  // fast, better ratio than S2 on floats
//	codec = archive.CompressionNone // payload stored raw
//
// Zstandard uses the libzstd bindings under cgo and the pure-Go port
// otherwise; both write the same wire format.
//
// # Usage
//
// Writing:
//
//	data, err := archive.Encode(ds,
//	    archive.WithStation("05586100"),
//	    archive.WithConstituent("Atrazine"),
//	    archive.WithCompression(archive.CompressionLZ4),
//	)
//
// Reading:
//
//	arch, err := archive.Decode(data)
//	if err != nil {
//	    return err
//	}
//	model, err := regression.Fit(arch.Data, spec)
//
// # Integrity
//
// Decode verifies the payload checksum before decompressing, so flipped bits
// surface as errs.ErrChecksumMismatch rather than as codec errors deep in a
// decompressor. Structural damage (short input, bad magic, unknown version
// or codec) maps to the errs sentinels, all of them matching errs.IsFormat.
package archive
