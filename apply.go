package curves

import (
	"fmt"
	"image"

	"github.com/kovidgoyal/go-parallel"
	"github.com/kovidgoyal/imaging"
)

func premultiply8(v, a uint8) uint8 {
	return uint8((uint16(v) * uint16(a)) / uint16(0xff))
}

func unpremultiply8(v, a uint8) uint8 {
	// malformed pixels can carry v > a, clamp instead of wrapping
	n := (uint16(v) * 0xff) / uint16(a)
	if n > 0xff {
		n = 0xff
	}
	return uint8(n)
}

// table returns the lookup for a color plane, or nil when the plane is
// not processed and its samples pass through untouched.
func (r *Remap) table(plane int) LUT {
	if !r.Process[plane] {
		return nil
	}
	return r.Channels[plane]
}

func lookup8(lut LUT, v uint8) uint8 {
	if lut == nil {
		return v
	}
	return uint8(lut[v])
}

func lookup16(lut LUT, v uint16) uint16 {
	if lut == nil {
		return v
	}
	return lut[v]
}

func (r *Remap) needBits(n int) error {
	if r.Bits != n {
		return fmt.Errorf("%w: image has %d-bit samples but the tables were built for %d bits", ErrUnsupportedFormat, n, r.Bits)
	}
	return nil
}

// Apply remaps the pixels of img through the lookup tables and returns
// the result as a new image of the same type; img is left untouched.
// 8-bit image types need a Remap built with Bits(8), 16-bit types one
// built with Bits(16). Alpha is never remapped. The tables are only
// read, so Apply may be called concurrently from any number of
// goroutines.
func (r *Remap) Apply(img image.Image) (image.Image, error) {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	lr, lg, lb := r.table(Red), r.table(Green), r.table(Blue)
	// Single-plane images carry their curve on the first channel.
	gray := lr
	var f func(start, limit int)
	var ans image.Image

	switch src := img.(type) {
	case *image.NRGBA:
		if err := r.needBits(8); err != nil {
			return nil, err
		}
		dst := image.NewNRGBA(b)
		ans = dst
		f = func(start, limit int) {
			for y := start; y < limit; y++ {
				srow := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
				drow := dst.Pix[dst.PixOffset(b.Min.X, b.Min.Y+y):]
				_ = srow[4*(width-1)]
				_ = drow[4*(width-1)]
				for x := 0; x < width; x++ {
					s := srow[4*x : 4*x+4 : 4*x+4]
					d := drow[4*x : 4*x+4 : 4*x+4]
					d[0] = lookup8(lr, s[0])
					d[1] = lookup8(lg, s[1])
					d[2] = lookup8(lb, s[2])
					d[3] = s[3]
				}
			}
		}
	case *imaging.NRGB:
		if err := r.needBits(8); err != nil {
			return nil, err
		}
		dst := imaging.NewNRGB(b)
		ans = dst
		f = func(start, limit int) {
			for y := start; y < limit; y++ {
				srow := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
				drow := dst.Pix[dst.PixOffset(b.Min.X, b.Min.Y+y):]
				_ = srow[3*(width-1)]
				_ = drow[3*(width-1)]
				for x := 0; x < width; x++ {
					s := srow[3*x : 3*x+3 : 3*x+3]
					d := drow[3*x : 3*x+3 : 3*x+3]
					d[0] = lookup8(lr, s[0])
					d[1] = lookup8(lg, s[1])
					d[2] = lookup8(lb, s[2])
				}
			}
		}
	case *image.RGBA:
		if err := r.needBits(8); err != nil {
			return nil, err
		}
		dst := image.NewRGBA(b)
		ans = dst
		f = func(start, limit int) {
			for y := start; y < limit; y++ {
				srow := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
				drow := dst.Pix[dst.PixOffset(b.Min.X, b.Min.Y+y):]
				for x := 0; x < width; x++ {
					s := srow[4*x : 4*x+4 : 4*x+4]
					d := drow[4*x : 4*x+4 : 4*x+4]
					a := s[3]
					if a == 0 {
						copy(d, s)
						continue
					}
					// samples are premultiplied, tables expect straight values
					d[0] = premultiply8(lookup8(lr, unpremultiply8(s[0], a)), a)
					d[1] = premultiply8(lookup8(lg, unpremultiply8(s[1], a)), a)
					d[2] = premultiply8(lookup8(lb, unpremultiply8(s[2], a)), a)
					d[3] = a
				}
			}
		}
	case *image.NRGBA64:
		if err := r.needBits(16); err != nil {
			return nil, err
		}
		dst := image.NewNRGBA64(b)
		ans = dst
		f = func(start, limit int) {
			for y := start; y < limit; y++ {
				srow := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
				drow := dst.Pix[dst.PixOffset(b.Min.X, b.Min.Y+y):]
				for x := 0; x < width; x++ {
					s := srow[8*x : 8*x+8 : 8*x+8]
					d := drow[8*x : 8*x+8 : 8*x+8]
					put16(d[0:2], lookup16(lr, uint16(s[0])<<8|uint16(s[1])))
					put16(d[2:4], lookup16(lg, uint16(s[2])<<8|uint16(s[3])))
					put16(d[4:6], lookup16(lb, uint16(s[4])<<8|uint16(s[5])))
					d[6], d[7] = s[6], s[7]
				}
			}
		}
	case *image.Gray:
		if err := r.needBits(8); err != nil {
			return nil, err
		}
		dst := image.NewGray(b)
		ans = dst
		f = func(start, limit int) {
			for y := start; y < limit; y++ {
				srow := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
				drow := dst.Pix[dst.PixOffset(b.Min.X, b.Min.Y+y):]
				for x := 0; x < width; x++ {
					drow[x] = lookup8(gray, srow[x])
				}
			}
		}
	case *image.Gray16:
		if err := r.needBits(16); err != nil {
			return nil, err
		}
		dst := image.NewGray16(b)
		ans = dst
		f = func(start, limit int) {
			for y := start; y < limit; y++ {
				srow := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
				drow := dst.Pix[dst.PixOffset(b.Min.X, b.Min.Y+y):]
				for x := 0; x < width; x++ {
					put16(drow[2*x:2*x+2], lookup16(gray, uint16(srow[2*x])<<8|uint16(srow[2*x+1])))
				}
			}
		}
	default:
		return nil, fmt.Errorf("%w: cannot remap %T images", ErrUnsupportedFormat, img)
	}

	// nothing to remap row-wise in a zero-width image
	if width == 0 {
		return ans, nil
	}
	if err := parallel.Run_in_parallel_over_range(0, f, 0, height); err != nil {
		return nil, err
	}
	return ans, nil
}

func put16(d []byte, v uint16) {
	d[0] = uint8(v >> 8)
	d[1] = uint8(v)
}
