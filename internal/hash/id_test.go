package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestID(t *testing.T) {
	t.Run("EmptyString", func(t *testing.T) {
		// Reference vector for xxHash64 with seed 0.
		require.Equal(t, uint64(0xef46db3751d8e999), ID(""))
	})

	t.Run("Deterministic", func(t *testing.T) {
		require.Equal(t, ID("05586100"), ID("05586100"))
	})

	t.Run("Distinct", func(t *testing.T) {
		require.NotEqual(t, ID("05586100"), ID("05586101"))
		require.NotEqual(t, ID("Phosphorus"), ID("phosphorus"))
	})
}

func TestDatasetID(t *testing.T) {
	t.Run("Deterministic", func(t *testing.T) {
		require.Equal(t, DatasetID("05586100", "NO3"), DatasetID("05586100", "NO3"))
	})

	t.Run("SeparatorDisambiguates", func(t *testing.T) {
		require.NotEqual(t, DatasetID("ab", "c"), DatasetID("a", "bc"))
	})

	t.Run("OrderMatters", func(t *testing.T) {
		require.NotEqual(t, DatasetID("NO3", "05586100"), DatasetID("05586100", "NO3"))
	})
}
