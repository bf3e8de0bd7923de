package archive

import (
	"fmt"

	"github.com/kashenfelter/rloadest/errs"
	"github.com/kashenfelter/rloadest/internal/options"
)

// Config holds the archive writing knobs. Zero-value fields fall back to the
// defaults below; Encode applies functional options on top.
type Config struct {
	// Station labels the gaging station the dataset came from. Default: "".
	Station string
	// Constituent labels the modeled water-quality constituent. Default: "".
	Constituent string
	// Compression selects the payload codec. Default: CompressionZstd.
	Compression Compression
}

func defaultConfig() Config {
	return Config{
		Compression: CompressionZstd,
	}
}

// Option is a functional option for Config.
type Option = options.Option[*Config]

// WithStation records the station name in the archive. The header carries its
// xxHash64 so readers can match archives to stations without string parsing.
func WithStation(name string) Option {
	return options.NoError(func(cfg *Config) {
		cfg.Station = name
	})
}

// WithConstituent records the constituent name in the archive.
func WithConstituent(name string) Option {
	return options.NoError(func(cfg *Config) {
		cfg.Constituent = name
	})
}

// WithCompression selects the payload codec.
func WithCompression(c Compression) Option {
	return options.New(func(cfg *Config) error {
		if !c.valid() {
			return fmt.Errorf("%w: 0x%02x", errs.ErrUnknownCodec, uint8(c))
		}
		cfg.Compression = c

		return nil
	})
}
