package bitmap

import "image/color"

// Binarizer reports whether a color is a lit pixel.
type Binarizer func(c color.Color) bool

// NotWhite is the default Binarizer. Every color other than pure opaque
// white is on.
func NotWhite(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r>>8 != 0xff || g>>8 != 0xff || b>>8 != 0xff
}

// Threshold returns a Binarizer where any color with a luma below level is
// on.
func Threshold(level uint8) Binarizer {
	return func(c color.Color) bool {
		return color.GrayModel.Convert(c).(color.Gray).Y < level
	}
}
