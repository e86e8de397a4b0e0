package curves

import (
	"fmt"

	"github.com/kovidgoyal/curves/acv"
)

// Channel indices. The first three are the color channels in plane
// order; Master names the curve composed on top of them.
const (
	Red    = 0
	Green  = 1
	Blue   = 2
	Master = 3
)

// Remap holds the finished lookup tables for one filter instance.
// Build writes the tables once; afterwards they are never modified and
// are safe to read from any number of goroutines.
type Remap struct {
	// Bits is the sample depth the tables were built for.
	Bits int
	// Channels holds one table per channel. The color tables already
	// have the master curve folded in; Channels[Master] keeps the raw
	// master table.
	Channels [4]LUT
	// Process marks which color planes Apply should touch.
	Process [3]bool
}

type channelInput struct {
	spec    string
	hasSpec bool
	pairs   []float64
	hasPair bool
}

type config struct {
	bits      int
	numPlanes int
	planes    []int
	preset    Preset
	specs     []string
	channels  [4]channelInput
	acvData   []byte
	acvPath   string
	err       error
}

// BuildOption configures Build.
type BuildOption func(*config)

// Bits sets the sample depth of the tables, 8 to 16. Defaults to 8.
func Bits(n int) BuildOption {
	return func(c *config) { c.bits = n }
}

// NumPlanes tells Build how many planes the target frames have (1-4;
// only the first three can carry curves). Defaults to 3.
func NumPlanes(n int) BuildOption {
	return func(c *config) { c.numPlanes = n }
}

// Planes restricts processing to the listed plane indices. By default
// every plane is processed. Tables are still built for unlisted planes;
// Apply just leaves their pixels alone.
func Planes(planes ...int) BuildOption {
	return func(c *config) { c.planes = planes }
}

// WithPreset selects built-in default curves for channels that have no
// explicit curve.
func WithPreset(p Preset) BuildOption {
	return func(c *config) { c.preset = p }
}

// Channels supplies "x/y x/y ..." curve descriptions for consecutive
// color channels starting at Red. An empty string skips its channel.
// Giving more descriptions than the frame has planes is an error.
func Channels(specs ...string) BuildOption {
	return func(c *config) { c.specs = specs }
}

// ChannelPoints supplies one channel's curve as a flat x, y, x, y, ...
// coordinate sequence.
func ChannelPoints(channel int, coords ...float64) BuildOption {
	return func(c *config) {
		if channel < 0 || channel >= len(c.channels) {
			c.fail(fmt.Errorf("%w: channel index %d out of range", ErrMalformedInput, channel))
			return
		}
		c.channels[channel].pairs = coords
		c.channels[channel].hasPair = true
	}
}

// MasterCurve supplies the curve composed on top of every color
// channel, in the same "x/y x/y ..." form.
func MasterCurve(spec string) BuildOption {
	return func(c *config) {
		c.channels[Master].spec = spec
		c.channels[Master].hasSpec = true
	}
}

// ACV supplies the contents of a Photoshop ACV file. Channels with an
// explicit curve keep it; the file only fills the rest.
func ACV(data []byte) BuildOption {
	return func(c *config) { c.acvData = data }
}

// ACVFile is like ACV but reads the file at path during Build.
func ACVFile(path string) BuildOption {
	return func(c *config) { c.acvPath = path }
}

func (c *config) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

// resolve picks the curve source for one channel. Precedence: explicit
// coordinate pairs, then an explicit curve string, then the ACV file,
// then the preset, then identity. The supplied result reports whether
// any source applied, which for the master channel decides whether
// composition runs at all.
func (c *config) resolve(ch int, file *acv.File, scale int) (k KeypointSet, supplied bool, err error) {
	in := c.channels[ch]
	switch {
	case in.hasPair:
		k, err = KeypointsFromPairs(in.pairs, scale)
		return k, true, err
	case in.hasSpec && in.spec != "":
		k, err = ParseKeypoints(in.spec, scale)
		return k, true, err
	}
	if file != nil {
		if points, ok := file.Channel(ch); ok {
			pts := make([]Point, len(points))
			for i, p := range points {
				pts[i] = Point{X: p.X, Y: p.Y}
			}
			k, err = NewKeypointSet(pts, scale)
			return k, true, err
		}
	}
	if spec := presetCurves[c.preset][ch]; spec != "" {
		k, err = ParseKeypoints(spec, scale)
		return k, true, err
	}
	return nil, false, nil
}

// Build constructs the lookup tables. It validates every input first
// and either returns a complete Remap or an error; no partially built
// tables escape. Construction runs once per filter instance, not per
// frame.
func Build(opts ...BuildOption) (*Remap, error) {
	cfg := config{bits: 8, numPlanes: 3}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}
	if cfg.bits < MinBits || cfg.bits > MaxBits {
		return nil, fmt.Errorf("%w: got %d bits", ErrUnsupportedFormat, cfg.bits)
	}
	if cfg.numPlanes < 1 || cfg.numPlanes > 4 {
		return nil, fmt.Errorf("%w: number of planes must be between 1 and 4", ErrMalformedInput)
	}
	if cfg.preset < PresetNone || cfg.preset > PresetVintage {
		return nil, fmt.Errorf("%w: preset must be between 0 and 10", ErrMalformedInput)
	}
	if len(cfg.specs) > cfg.numPlanes {
		return nil, fmt.Errorf("%w: more curves given than there are planes", ErrMalformedInput)
	}
	for i, s := range cfg.specs {
		if i >= Master {
			break
		}
		cfg.channels[i].spec = s
		cfg.channels[i].hasSpec = true
	}

	remap := &Remap{Bits: cfg.bits}
	if len(cfg.planes) == 0 {
		remap.Process = [3]bool{true, true, true}
	} else {
		for _, p := range cfg.planes {
			if p < 0 || p >= cfg.numPlanes || p >= len(remap.Process) {
				return nil, fmt.Errorf("%w: plane index %d out of range", ErrMalformedInput, p)
			}
			if remap.Process[p] {
				return nil, fmt.Errorf("%w: plane %d specified twice", ErrMalformedInput, p)
			}
			remap.Process[p] = true
		}
	}

	var file *acv.File
	var err error
	switch {
	case cfg.acvPath != "":
		if file, err = acv.Load(cfg.acvPath); err != nil {
			return nil, err
		}
	case cfg.acvData != nil:
		if file, err = acv.Decode(cfg.acvData); err != nil {
			return nil, err
		}
	}

	scale := 1<<cfg.bits - 1
	var masterSupplied bool
	for ch := range remap.Channels {
		k, supplied, err := cfg.resolve(ch, file, scale)
		if err != nil {
			return nil, err
		}
		if ch == Master {
			masterSupplied = supplied
		}
		remap.Channels[ch] = k.Interpolate(cfg.bits)
	}

	// Master composition: channel curve first, master second. Skipped
	// entirely when no master source was given.
	if masterSupplied {
		m := remap.Channels[Master]
		for ch := Red; ch <= Blue; ch++ {
			lut := remap.Channels[ch]
			for v := range lut {
				lut[v] = m[lut[v]]
			}
		}
	}
	return remap, nil
}
