// Package hash derives the stable numeric identities embedded in archive
// headers, so readers can verify they are looking at the station and
// constituent they expect without string comparisons.
package hash

import "github.com/cespare/xxhash/v2"

// ID returns the xxHash64 of a name.
func ID(name string) uint64 {
	return xxhash.Sum64String(name)
}

// DatasetID returns one combined identity for a (station, constituent)
// pair. The NUL separator keeps ("ab","c") and ("a","bc") distinct.
func DatasetID(station, constituent string) uint64 {
	return xxhash.Sum64String(station + "\x00" + constituent)
}
