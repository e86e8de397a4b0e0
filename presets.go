package curves

import (
	"fmt"
	"strconv"
)

// Preset selects a built-in set of default curves reproducing
// well-known photographic looks. A preset only fills in channels for
// which no curve was given explicitly (or found in an ACV file).
type Preset int

const (
	PresetNone Preset = iota
	PresetColorNegative
	PresetCrossProcess
	PresetDarker
	PresetIncreaseContrast
	PresetLighter
	PresetLinearContrast
	PresetMediumContrast
	PresetNegative
	PresetStrongContrast
	PresetVintage
)

// Default curve strings per preset, indexed by channel (R, G, B,
// master). An empty string leaves the channel alone.
var presetCurves = [PresetVintage + 1][4]string{
	PresetColorNegative: {
		"0.129/1 0.466/0.498 0.725/0",
		"0.109/1 0.301/0.498 0.517/0",
		"0.098/1 0.235/0.498 0.423/0",
		"",
	},
	PresetCrossProcess: {
		"0/0 0.25/0.156 0.501/0.501 0.686/0.745 1/1",
		"0/0 0.25/0.188 0.38/0.501 0.745/0.815 1/0.815",
		"0/0 0.231/0.094 0.709/0.874 1/1",
		"",
	},
	PresetDarker:           {"", "", "", "0/0 0.5/0.4 1/1"},
	PresetIncreaseContrast: {"", "", "", "0/0 0.149/0.066 0.831/0.905 0.905/0.98 1/1"},
	PresetLighter:          {"", "", "", "0/0 0.4/0.5 1/1"},
	PresetLinearContrast:   {"", "", "", "0/0 0.305/0.286 0.694/0.713 1/1"},
	PresetMediumContrast:   {"", "", "", "0/0 0.286/0.219 0.639/0.643 1/1"},
	PresetNegative:         {"", "", "", "0/1 1/0"},
	PresetStrongContrast:   {"", "", "", "0/0 0.301/0.196 0.592/0.6 0.686/0.737 1/1"},
	PresetVintage: {
		"0/0.11 0.42/0.51 1/0.95",
		"0/0 0.50/0.48 1/1",
		"0/0.22 0.49/0.44 1/0.8",
		"",
	},
}

var presetNames = map[string]Preset{
	"none":              PresetNone,
	"color_negative":    PresetColorNegative,
	"cross_process":     PresetCrossProcess,
	"darker":            PresetDarker,
	"increase_contrast": PresetIncreaseContrast,
	"lighter":           PresetLighter,
	"linear_contrast":   PresetLinearContrast,
	"medium_contrast":   PresetMediumContrast,
	"negative":          PresetNegative,
	"strong_contrast":   PresetStrongContrast,
	"vintage":           PresetVintage,
}

func (p Preset) String() string {
	for name, q := range presetNames {
		if p == q {
			return name
		}
	}
	return fmt.Sprintf("Preset(%d)", int(p))
}

// ParsePreset accepts either a preset name such as "cross_process" or
// its numeric id 0-10.
func ParsePreset(s string) (Preset, error) {
	if p, ok := presetNames[s]; ok {
		return p, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		p := Preset(n)
		if p >= PresetNone && p <= PresetVintage {
			return p, nil
		}
	}
	return PresetNone, fmt.Errorf("%w: unknown preset %q", ErrMalformedInput, s)
}
