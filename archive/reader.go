package archive

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"math"

	"github.com/kashenfelter/rloadest/errs"
	"github.com/kashenfelter/rloadest/internal/pool"
	"github.com/kashenfelter/rloadest/timeseries"
)

// Archive is a decoded archive: the reconstructed dataset plus the identity
// recorded alongside it.
//
// Fields:
//   - Station: Station name recorded by WithStation, "" when none was given
//   - Constituent: Constituent name recorded by WithConstituent
//   - StationID: xxHash64 of the station name, as stored in the header
//   - ConstituentID: xxHash64 of the constituent name
//   - Compression: Codec the payload was stored with
//   - Data: The dataset, equal value for value to the one passed to Encode
type Archive struct {
	Station       string
	Constituent   string
	StationID     uint64
	ConstituentID uint64
	Compression   Compression
	Data          *timeseries.Dataset
}

// String returns a short description of the archive.
func (a *Archive) String() string {
	return fmt.Sprintf("Archive{Station: %s, Constituent: %s, Rows: %d, Compression: %s}",
		a.Station, a.Constituent, a.Data.Len(), a.Compression)
}

// Decode parses archive bytes produced by Encode.
//
// The payload checksum is verified before decompression, so corruption
// surfaces as errs.ErrChecksumMismatch rather than as a codec failure.
//
// Parameters:
//   - data: Complete archive bytes
//
// Returns:
//   - *Archive: Decoded identity and dataset
//   - error: errs.ErrTruncatedArchive, errs.ErrInvalidMagic,
//     errs.ErrUnsupportedVersion, errs.ErrUnknownCodec, or
//     errs.ErrChecksumMismatch
func Decode(data []byte) (*Archive, error) {
	var h header
	if err := h.parse(data); err != nil {
		return nil, err
	}
	codec, err := codecFor(h.Codec)
	if err != nil {
		return nil, err
	}

	c := &cursor{data: data, off: HeaderSize}
	station, err := c.string()
	if err != nil {
		return nil, err
	}
	constituent, err := c.string()
	if err != nil {
		return nil, err
	}
	payloadLen, err := c.uvarint()
	if err != nil {
		return nil, err
	}
	if payloadLen > uint64(c.remaining()) {
		return nil, fmt.Errorf("%w: payload of %d bytes, %d remain", errs.ErrTruncatedArchive, payloadLen, c.remaining())
	}
	payload, err := c.bytes(int(payloadLen))
	if err != nil {
		return nil, err
	}
	if sum := crc32.ChecksumIEEE(payload); sum != h.Checksum {
		return nil, fmt.Errorf("%w: payload crc 0x%08x, header says 0x%08x", errs.ErrChecksumMismatch, sum, h.Checksum)
	}

	raw, err := codec.Decompress(payload)
	if err != nil {
		return nil, fmt.Errorf("decompress %s payload: %w", h.Codec, err)
	}

	ds, err := parsePayload(raw, h)
	if err != nil {
		return nil, err
	}

	return &Archive{
		Station:       station,
		Constituent:   constituent,
		StationID:     h.StationID,
		ConstituentID: h.ConstituentID,
		Compression:   h.Codec,
		Data:          ds,
	}, nil
}

// parsePayload reconstructs the dataset from decompressed payload bytes.
func parsePayload(raw []byte, h header) (*timeseries.Dataset, error) {
	c := &cursor{data: raw}
	rows := int(h.Rows)
	if rows == 0 {
		return nil, fmt.Errorf("%w: archive has zero rows", errs.ErrEmptyDataset)
	}
	// A row costs at least one date byte and eight flow bytes. Rejecting row
	// counts the payload cannot hold keeps a corrupt header from driving a
	// huge allocation below.
	if uint64(h.Rows) > uint64(len(raw)) {
		return nil, fmt.Errorf("%w: %d rows in %d payload bytes", errs.ErrTruncatedArchive, h.Rows, len(raw))
	}

	columnCount, err := c.uvarint()
	if err != nil {
		return nil, err
	}
	// Same bound for columns: each needs at least its length prefix.
	if columnCount > uint64(c.remaining()) {
		return nil, fmt.Errorf("%w: %d columns in %d payload bytes", errs.ErrTruncatedArchive, columnCount, c.remaining())
	}
	names := make([]string, columnCount)
	for i := range names {
		if names[i], err = c.string(); err != nil {
			return nil, err
		}
	}

	dates := make([]timeseries.Date, rows)
	first, err := c.varint()
	if err != nil {
		return nil, err
	}
	dates[0] = timeseries.Date(first)
	for i := 1; i < rows; i++ {
		delta, err := c.uvarint()
		if err != nil {
			return nil, err
		}
		dates[i] = dates[i-1].AddDays(int(delta))
	}

	flow, freeFlow, err := readColumn(c, rows)
	if err != nil {
		return nil, err
	}
	defer freeFlow()

	var response []float64
	if h.hasResponse() {
		var freeResponse func()
		response, freeResponse, err = readColumn(c, rows)
		if err != nil {
			return nil, err
		}
		defer freeResponse()
	}

	cols := make([]timeseries.Column, len(names))
	for i, name := range names {
		values, freeCol, err := readColumn(c, rows)
		if err != nil {
			return nil, err
		}
		defer freeCol()
		cols[i] = timeseries.Column{Name: name, Values: values}
	}

	var censored []bool
	if h.hasCensored() {
		bitmap, err := c.bytes((rows + 7) / 8)
		if err != nil {
			return nil, err
		}
		censored = make([]bool, rows)
		for i := range censored {
			censored[i] = bitmap[i/8]&(1<<(i%8)) != 0
		}
	}

	// NewDataset copies every slice, so the pooled columns are safe to
	// release on return.
	return timeseries.NewDataset(dates, flow, response, censored, cols...)
}

// readColumn reads rows little-endian float64 values through a pooled slice.
func readColumn(c *cursor, rows int) ([]float64, func(), error) {
	if c.remaining() < rows*8 {
		return nil, nil, fmt.Errorf("%w: column of %d values, %d bytes remain", errs.ErrTruncatedArchive, rows, c.remaining())
	}
	values, cleanup := pool.GetFloat64Slice(rows)
	if err := c.floats(values); err != nil {
		cleanup()
		return nil, nil, err
	}

	return values, cleanup, nil
}

// cursor tracks a read offset into archive bytes, failing with
// errs.ErrTruncatedArchive instead of panicking on short input.
type cursor struct {
	data []byte
	off  int
}

func (c *cursor) remaining() int {
	return len(c.data) - c.off
}

func (c *cursor) bytes(n int) ([]byte, error) {
	if n < 0 || c.remaining() < n {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", errs.ErrTruncatedArchive, n, c.off, c.remaining())
	}
	b := c.data[c.off : c.off+n]
	c.off += n

	return b, nil
}

func (c *cursor) uvarint() (uint64, error) {
	v, n := binary.Uvarint(c.data[c.off:])
	if n <= 0 {
		return 0, fmt.Errorf("%w: bad varint at offset %d", errs.ErrTruncatedArchive, c.off)
	}
	c.off += n

	return v, nil
}

func (c *cursor) varint() (int64, error) {
	v, n := binary.Varint(c.data[c.off:])
	if n <= 0 {
		return 0, fmt.Errorf("%w: bad varint at offset %d", errs.ErrTruncatedArchive, c.off)
	}
	c.off += n

	return v, nil
}

func (c *cursor) string() (string, error) {
	n, err := c.uvarint()
	if err != nil {
		return "", err
	}
	if n > uint64(c.remaining()) {
		return "", fmt.Errorf("%w: string of %d bytes at offset %d", errs.ErrTruncatedArchive, n, c.off)
	}
	b, err := c.bytes(int(n))
	if err != nil {
		return "", err
	}

	return string(b), nil
}

func (c *cursor) floats(dst []float64) error {
	b, err := c.bytes(len(dst) * 8)
	if err != nil {
		return err
	}
	for i := range dst {
		dst[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[i*8:]))
	}

	return nil
}
