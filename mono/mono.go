// Package mono reduces an image to pure black and white before packing.
//
// Logos drawn with anti-aliasing or scanned from paper rarely contain pure
// white backgrounds, so every pixel would otherwise be lit. Each Mode maps an
// image onto the two colors the packer distinguishes without changing its
// dimensions.
package mono

import (
	"fmt"
	"image"
	"image/color"
	"sort"
	"strings"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/makeworld-the-better-one/dither/v2"
)

// Mode selects how an image is reduced.
type Mode int

// Supported modes.
const (
	None Mode = iota
	Quantize
	FloydSteinberg
	Atkinson
	JarvisJudiceNinke
	Bayer4x4
	Bayer8x8
)

var modeNames = map[Mode]string{
	None:              "none",
	Quantize:          "quantize",
	FloydSteinberg:    "floyd",
	Atkinson:          "atkinson",
	JarvisJudiceNinke: "jjn",
	Bayer4x4:          "bayer4x4",
	Bayer8x8:          "bayer8x8",
}

var palette = color.Palette{color.Black, color.White}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode returns the Mode called s.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if strings.EqualFold(s, name) {
			return m, nil
		}
	}
	return None, fmt.Errorf("mono: unknown mode %q", s)
}

// Modes returns the names of all modes.
func Modes() []string {
	names := make([]string, 0, len(modeNames))
	for _, name := range modeNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Prepare reduces m according to mode. None returns m unchanged.
func Prepare(m image.Image, mode Mode) (image.Image, error) {
	switch mode {
	case None:
		return m, nil
	case Quantize:
		return quantizeTwo(m), nil
	}

	d := dither.NewDitherer(palette)
	switch mode {
	case FloydSteinberg:
		d.Matrix = dither.FloydSteinberg
	case Atkinson:
		d.Matrix = dither.Atkinson
	case JarvisJudiceNinke:
		d.Matrix = dither.JarvisJudiceNinke
	case Bayer4x4:
		d.Mapper = dither.Bayer(4, 4, 1.0)
	case Bayer8x8:
		d.Mapper = dither.Bayer(8, 8, 1.0)
	default:
		return nil, fmt.Errorf("mono: unknown mode %d", int(mode))
	}
	return d.DitherCopy(m), nil
}

func luma(c color.Color) uint8 {
	return color.GrayModel.Convert(c).(color.Gray).Y
}

// quantizeTwo reduces m to its two most representative colors, then paints
// the lighter one white and the darker one black. Without two distinct
// shades only pure white stays white.
func quantizeTwo(m image.Image) *image.Gray {
	q := quantize.MedianCutQuantizer{}
	p := q.Quantize(make(color.Palette, 0, 2), m)

	light := make([]bool, len(p))
	if len(p) == 2 && luma(p[0]) != luma(p[1]) {
		light[0] = luma(p[0]) > luma(p[1])
		light[1] = !light[0]
	} else {
		for i, c := range p {
			r, g, b, _ := c.RGBA()
			light[i] = r == 0xffff && g == 0xffff && b == 0xffff
		}
	}

	bounds := m.Bounds()
	out := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.Gray{Y: 0x00}
			if len(p) > 0 && light[p.Index(m.At(x, y))] {
				c.Y = 0xff
			}
			out.SetGray(x, y, c)
		}
	}
	return out
}
