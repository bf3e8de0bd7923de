package pool

import "sync"

var float64SlicePool = sync.Pool{
	New: func() any { return &[]float64{} },
}

// GetFloat64Slice retrieves a float64 slice of exactly the requested length
// from the pool, allocating only when the pooled slice is too small.
//
// Archive decoding stages each column through one of these before handing it
// to the dataset constructor, which copies its inputs.
//
// Parameters:
//   - size: The desired length of the slice
//
// Returns:
//   - []float64: A slice with length equal to size
//   - func(): Cleanup function that must be called (typically with defer) to
//     return the slice to the pool
//
// Example:
//
//	values, cleanup := pool.GetFloat64Slice(rows)
//	defer cleanup()
//	// Fill and consume values...
func GetFloat64Slice(size int) ([]float64, func()) {
	ptr, _ := float64SlicePool.Get().(*[]float64)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]float64, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		*ptr = slice
	}

	return slice, func() { float64SlicePool.Put(ptr) }
}
