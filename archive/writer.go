package archive

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"math"

	"github.com/kashenfelter/rloadest/errs"
	"github.com/kashenfelter/rloadest/internal/hash"
	"github.com/kashenfelter/rloadest/internal/options"
	"github.com/kashenfelter/rloadest/internal/pool"
	"github.com/kashenfelter/rloadest/timeseries"
)

// Encode serializes a dataset into archive bytes.
//
// The dataset is laid out column by column (dates, flow, response, auxiliary
// columns, censor bitmap), compressed as a whole, and framed with a fixed
// header carrying identity hashes and an integrity checksum. Decode reverses
// the process exactly; values round-trip bit for bit, NaN rows included.
//
// Parameters:
//   - ds: Calibration or estimation dataset to serialize
//   - opts: Optional settings (WithStation, WithConstituent, WithCompression)
//
// Returns:
//   - []byte: Archive bytes owned by the caller
//   - error: errs.ErrEmptyDataset for a nil or empty dataset, or
//     errs.ErrUnknownCodec from WithCompression
//
// Example:
//
//	data, err := archive.Encode(ds,
//	    archive.WithStation("05586100"),
//	    archive.WithConstituent("Atrazine"),
//	)
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("atrazine.rla", data, 0o644)
func Encode(ds *timeseries.Dataset, opts ...Option) ([]byte, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, errs.ErrEmptyDataset
	}

	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}
	codec, err := codecFor(cfg.Compression)
	if err != nil {
		return nil, err
	}

	buf := pool.GetPayloadBuffer()
	defer pool.PutPayloadBuffer(buf)
	appendPayload(buf, ds)

	payload, err := codec.Compress(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("compress payload: %w", err)
	}

	h := header{
		Version:       Version,
		Codec:         cfg.Compression,
		StationID:     hash.ID(cfg.Station),
		ConstituentID: hash.ID(cfg.Constituent),
		Rows:          uint32(ds.Len()),
		Checksum:      crc32.ChecksumIEEE(payload),
	}
	if ds.HasResponse() {
		h.Flags |= flagResponse
	}
	if ds.CensoredCount() > 0 {
		h.Flags |= flagCensored
	}

	out := make([]byte, 0, HeaderSize+len(cfg.Station)+len(cfg.Constituent)+3*binary.MaxVarintLen64+len(payload))
	out = h.appendTo(out)
	out = appendString(out, cfg.Station)
	out = appendString(out, cfg.Constituent)
	out = binary.AppendUvarint(out, uint64(len(payload)))
	out = append(out, payload...)

	return out, nil
}

// appendPayload serializes ds in columnar form onto buf: column names first,
// then delta-encoded dates, then the value columns, then the censor bitmap
// when any row is censored.
func appendPayload(buf *pool.ByteBuffer, ds *timeseries.Dataset) {
	names := ds.ColumnNames()
	buf.B = binary.AppendUvarint(buf.B, uint64(len(names)))
	for _, name := range names {
		buf.B = appendString(buf.B, name)
	}

	// Row dates are non-decreasing, so every delta fits an unsigned varint.
	// Only the first date needs a sign.
	dates := ds.Dates()
	buf.B = binary.AppendVarint(buf.B, int64(dates[0]))
	for i := 1; i < len(dates); i++ {
		buf.B = binary.AppendUvarint(buf.B, uint64(dates[i].Sub(dates[i-1])))
	}

	buf.B = appendFloats(buf.B, ds.Flow())
	if ds.HasResponse() {
		buf.B = appendFloats(buf.B, ds.Response())
	}
	for _, name := range names {
		col, _ := ds.Column(name) // names come from the dataset, lookup cannot fail
		buf.B = appendFloats(buf.B, col)
	}

	if ds.CensoredCount() > 0 {
		buf.B = appendCensorBitmap(buf.B, ds)
	}
}

func appendString(b []byte, s string) []byte {
	b = binary.AppendUvarint(b, uint64(len(s)))

	return append(b, s...)
}

func appendFloats(b []byte, values []float64) []byte {
	for _, v := range values {
		b = binary.LittleEndian.AppendUint64(b, math.Float64bits(v))
	}

	return b
}

// appendCensorBitmap packs one bit per row, row i at byte i/8 bit i%8.
func appendCensorBitmap(b []byte, ds *timeseries.Dataset) []byte {
	n := ds.Len()
	bitmap := make([]byte, (n+7)/8)
	for i := 0; i < n; i++ {
		if ds.Censored(i) {
			bitmap[i/8] |= 1 << (i % 8)
		}
	}

	return append(b, bitmap...)
}
