// Package acv reads Photoshop ACV curve-definition files.
//
// The format is a sequence of big-endian 16-bit words: a version, a
// curve count, then for each curve a point count followed by that many
// (y, x) pairs with coordinates in [0, 255]. Curves are stored in
// master, red, green, blue order; the decoder exposes them through the
// conventional red=0, green=1, blue=2, master=3 channel indices.
package acv

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
)

// ErrInvalidData is wrapped by every decode failure, all of which are
// some form of truncation: the one way a stream of unsigned words can
// be malformed is by ending too early.
var ErrInvalidData = errors.New("invalid ACV data")

// Point is one decoded control point, with both coordinates already
// normalized to [0, 1].
type Point struct {
	X, Y float64
}

// File is a decoded ACV file. Only the first four curves of a file are
// kept; any further curves are read and discarded.
type File struct {
	// Version is the format version word. It is informational only
	// and not validated.
	Version uint16

	curves  [4][]Point
	present [4]bool
}

// On-disk curve order is master, R, G, B.
var diskOrder = [4]int{3, 0, 1, 2}

// Channel returns the decoded points for a channel (0=R, 1=G, 2=B,
// 3=master) and whether the file contained a curve for it. A present
// curve may still have zero points.
func (f *File) Channel(ch int) ([]Point, bool) {
	if ch < 0 || ch >= len(f.curves) {
		return nil, false
	}
	return f.curves[ch], f.present[ch]
}

type wordReader struct {
	data []byte
	off  int
}

func (r *wordReader) u16(what string) (uint16, error) {
	if len(r.data)-r.off < 2 {
		return 0, fmt.Errorf("%w: truncated while reading %s at offset %d", ErrInvalidData, what, r.off)
	}
	v := binary.BigEndian.Uint16(r.data[r.off:])
	r.off += 2
	return v, nil
}

// Decode parses an ACV byte buffer. Every read is bounds checked; a
// buffer that ends mid-record fails without returning any curves.
func Decode(data []byte) (*File, error) {
	r := wordReader{data: data}
	f := &File{}
	var err error
	if f.Version, err = r.u16("version"); err != nil {
		return nil, err
	}
	count, err := r.u16("curve count")
	if err != nil {
		return nil, err
	}
	for i := 0; i < int(count); i++ {
		np, err := r.u16("point count")
		if err != nil {
			return nil, err
		}
		points := make([]Point, np)
		for j := range points {
			y, err := r.u16("point y")
			if err != nil {
				return nil, err
			}
			x, err := r.u16("point x")
			if err != nil {
				return nil, err
			}
			points[j] = Point{X: float64(x) / 255, Y: float64(y) / 255}
		}
		if i < len(diskOrder) {
			ch := diskOrder[i]
			f.curves[ch] = points
			f.present[ch] = true
		}
	}
	return f, nil
}

// Load reads and decodes the ACV file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading curves file: %w", err)
	}
	f, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}
