package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindPredicates(t *testing.T) {
	t.Run("InvalidArgument", func(t *testing.T) {
		require.True(t, IsInvalidArgument(ErrInvalidLag))
		require.True(t, IsInvalidArgument(fmt.Errorf("%w: lag 0", ErrInvalidLag)))
		require.False(t, IsInvalidArgument(ErrDuplicateDate))
		require.False(t, IsInvalidArgument(ErrRankDeficient))
	})

	t.Run("Format", func(t *testing.T) {
		require.True(t, IsFormat(ErrDuplicateDate))
		require.True(t, IsFormat(fmt.Errorf("%w: 2003-10-01", ErrDuplicateDate)))
		require.False(t, IsFormat(ErrEmptyDataset))
	})

	t.Run("Fit", func(t *testing.T) {
		require.True(t, IsFit(ErrRankDeficient))
		require.True(t, IsFit(fmt.Errorf("%w: column dQ1", ErrRankDeficient)))
		require.False(t, IsFit(ErrTruncatedArchive))
	})

	t.Run("ForeignError", func(t *testing.T) {
		err := errors.New("unrelated")
		require.False(t, IsInvalidArgument(err))
		require.False(t, IsFormat(err))
		require.False(t, IsFit(err))
	})

	t.Run("Nil", func(t *testing.T) {
		require.False(t, IsInvalidArgument(nil))
		require.False(t, IsFormat(nil))
		require.False(t, IsFit(nil))
	})
}

func TestWrappedTwice(t *testing.T) {
	inner := fmt.Errorf("%w: series flow", ErrSeriesTooShort)
	outer := fmt.Errorf("hysteresis: %w", inner)

	require.True(t, errors.Is(outer, ErrSeriesTooShort))
	require.True(t, IsInvalidArgument(outer))
}
