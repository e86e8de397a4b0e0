package curves

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeypoints(t *testing.T) {
	t.Run("valid curve string", func(t *testing.T) {
		k, err := ParseKeypoints("0/0 0.5/0.4 1/1", 255)
		require.NoError(t, err)
		require.Len(t, k, 3)
		assert.Equal(t, Point{0.5, 0.4}, k[1])
	})

	t.Run("empty string is the identity", func(t *testing.T) {
		for _, spec := range []string{"", "   ", "\t\n"} {
			k, err := ParseKeypoints(spec, 255)
			require.NoError(t, err)
			assert.Empty(t, k)
		}
	})

	t.Run("single point is rejected", func(t *testing.T) {
		_, err := ParseKeypoints("0.5/0.5", 255)
		assert.ErrorIs(t, err, ErrDegenerateCurve)
	})

	t.Run("coordinate outside the unit range", func(t *testing.T) {
		_, err := ParseKeypoints("0/0 0.5/1.5 1/1", 255)
		assert.ErrorIs(t, err, ErrInvalidRange)
		_, err = ParseKeypoints("-0.1/0 1/1", 255)
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("points collapsing on the sample grid", func(t *testing.T) {
		// 0.5 and 0.502 both land on sample 128 at 8 bits
		_, err := ParseKeypoints("0/0 0.5/0.2 0.502/0.8 1/1", 255)
		assert.ErrorIs(t, err, ErrNonMonotonic)
		// but they are distinct at 16 bits
		_, err = ParseKeypoints("0/0 0.5/0.2 0.502/0.8 1/1", 65535)
		assert.NoError(t, err)
	})

	t.Run("decreasing x", func(t *testing.T) {
		_, err := ParseKeypoints("0/0 0.6/0.5 0.4/0.8 1/1", 255)
		assert.ErrorIs(t, err, ErrNonMonotonic)
	})

	t.Run("malformed tokens", func(t *testing.T) {
		for _, spec := range []string{"0/0 nope 1/1", "0/0 0.5 1/1", "a/0 1/1", "0/b 1/1"} {
			_, err := ParseKeypoints(spec, 255)
			assert.ErrorIs(t, err, ErrMalformedInput, "spec %q", spec)
		}
	})
}

func TestKeypointsFromPairs(t *testing.T) {
	t.Run("valid pairs", func(t *testing.T) {
		k, err := KeypointsFromPairs([]float64{0, 0, 0.5, 0.4, 1, 1}, 255)
		require.NoError(t, err)
		assert.Equal(t, KeypointSet{{0, 0}, {0.5, 0.4}, {1, 1}}, k)
	})

	t.Run("odd number of coordinates", func(t *testing.T) {
		_, err := KeypointsFromPairs([]float64{0, 0, 1}, 255)
		assert.ErrorIs(t, err, ErrMalformedInput)
	})

	t.Run("empty slice is the identity", func(t *testing.T) {
		k, err := KeypointsFromPairs(nil, 255)
		require.NoError(t, err)
		assert.Empty(t, k)
	})

	t.Run("shares validation with the string form", func(t *testing.T) {
		_, err := KeypointsFromPairs([]float64{0, 0, 0.5, 1.5}, 255)
		assert.ErrorIs(t, err, ErrInvalidRange)
	})
}

func TestNewKeypointSet(t *testing.T) {
	_, err := NewKeypointSet([]Point{{0.3, 0.3}}, 255)
	assert.ErrorIs(t, err, ErrDegenerateCurve)

	k, err := NewKeypointSet([]Point{{0, 1}, {1, 0}}, 255)
	require.NoError(t, err)
	assert.Len(t, k, 2)
}
