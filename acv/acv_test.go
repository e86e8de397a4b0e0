package acv

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rawCurve [][2]uint16 // (y, x) pairs, as stored on disk

func buffer(version uint16, curves ...rawCurve) []byte {
	b := &bytes.Buffer{}
	_ = binary.Write(b, binary.BigEndian, version)
	_ = binary.Write(b, binary.BigEndian, uint16(len(curves)))
	for _, points := range curves {
		_ = binary.Write(b, binary.BigEndian, uint16(len(points)))
		for _, p := range points {
			_ = binary.Write(b, binary.BigEndian, p[0])
			_ = binary.Write(b, binary.BigEndian, p[1])
		}
	}
	return b.Bytes()
}

func TestDecode(t *testing.T) {
	t.Run("channel order is remapped", func(t *testing.T) {
		// on disk: master, red, green, blue with distinct first y
		f, err := Decode(buffer(4,
			rawCurve{{10, 0}, {255, 255}},
			rawCurve{{20, 0}, {255, 255}},
			rawCurve{{30, 0}, {255, 255}},
			rawCurve{{40, 0}, {255, 255}},
		))
		require.NoError(t, err)
		assert.Equal(t, uint16(4), f.Version)
		for ch, want := range []float64{20, 30, 40, 10} {
			points, ok := f.Channel(ch)
			require.True(t, ok, "channel %d", ch)
			require.Len(t, points, 2)
			assert.InDelta(t, want/255, points[0].Y, 1e-12, "channel %d", ch)
		}
	})

	t.Run("pair order on disk is y then x", func(t *testing.T) {
		f, err := Decode(buffer(1, rawCurve{{255, 0}, {0, 255}}))
		require.NoError(t, err)
		points, ok := f.Channel(3)
		require.True(t, ok)
		assert.Equal(t, []Point{{X: 0, Y: 1}, {X: 1, Y: 0}}, points)
	})

	t.Run("partial files expose only their curves", func(t *testing.T) {
		f, err := Decode(buffer(4, rawCurve{{0, 0}, {255, 255}}))
		require.NoError(t, err)
		_, ok := f.Channel(3)
		assert.True(t, ok, "master")
		for ch := 0; ch < 3; ch++ {
			_, ok := f.Channel(ch)
			assert.False(t, ok, "channel %d", ch)
		}
	})

	t.Run("no curves at all", func(t *testing.T) {
		f, err := Decode(buffer(4))
		require.NoError(t, err)
		for ch := 0; ch < 4; ch++ {
			_, ok := f.Channel(ch)
			assert.False(t, ok)
		}
	})

	t.Run("curves beyond the fourth are read and dropped", func(t *testing.T) {
		f, err := Decode(buffer(4,
			rawCurve{{0, 0}, {255, 255}},
			rawCurve{{0, 0}, {255, 255}},
			rawCurve{{0, 0}, {255, 255}},
			rawCurve{{0, 0}, {255, 255}},
			rawCurve{{99, 0}, {99, 255}},
		))
		require.NoError(t, err)
		for ch := 0; ch < 4; ch++ {
			points, ok := f.Channel(ch)
			require.True(t, ok)
			assert.NotEqual(t, 99.0/255, points[0].Y, "channel %d", ch)
		}
	})

	t.Run("present curve with zero points", func(t *testing.T) {
		f, err := Decode(buffer(4, rawCurve{}))
		require.NoError(t, err)
		points, ok := f.Channel(3)
		assert.True(t, ok)
		assert.Empty(t, points)
	})

	t.Run("channel index out of range", func(t *testing.T) {
		f, err := Decode(buffer(4))
		require.NoError(t, err)
		_, ok := f.Channel(-1)
		assert.False(t, ok)
		_, ok = f.Channel(4)
		assert.False(t, ok)
	})
}

func TestDecodeTruncated(t *testing.T) {
	full := buffer(4, rawCurve{{255, 0}, {0, 255}})
	for n := 0; n < len(full); n++ {
		_, err := Decode(full[:n])
		assert.ErrorIs(t, err, ErrInvalidData, "length %d", n)
	}
	// one stray byte after a complete record set is also short a word
	_, err := Decode(append(buffer(4), 0xff))
	require.NoError(t, err) // trailing garbage after all curves is ignored

	_, err = Decode([]byte{0, 4, 0, 1, 0})
	assert.ErrorIs(t, err, ErrInvalidData)
}

func TestLoad(t *testing.T) {
	t.Run("round trip through a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "curve.acv")
		require.NoError(t, os.WriteFile(path, buffer(4, rawCurve{{255, 0}, {0, 255}}), 0o600))
		f, err := Load(path)
		require.NoError(t, err)
		points, ok := f.Channel(3)
		require.True(t, ok)
		assert.Len(t, points, 2)
	})

	t.Run("open failure carries the system error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.acv"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("decode failure names the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.acv")
		require.NoError(t, os.WriteFile(path, []byte{0}, 0o600))
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrInvalidData)
		assert.Contains(t, err.Error(), "bad.acv")
	})
}
