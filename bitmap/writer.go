package bitmap

import (
	"image"
	"io"
)

// Validate returns a *DimensionError unless m is exactly Width by Height
// pixels.
func Validate(m image.Image) error {
	if r := m.Bounds(); r.Dx() != Width || r.Dy() != Height {
		return &DimensionError{Width: r.Dx(), Height: r.Dy()}
	}
	return nil
}

// Pack converts m into a packed image, treating every pixel for which on
// returns true as lit. A nil on uses NotWhite. The image must be exactly
// Width by Height pixels; it may have a non-zero origin.
func Pack(m image.Image, on Binarizer) (*Buffer, error) {
	if err := Validate(m); err != nil {
		return nil, err
	}
	r := m.Bounds()

	if on == nil {
		on = NotWhite
	}

	b := new(Buffer)
	for block := 0; block < blocks; block++ {
		for x := 0; x < Width; x++ {
			i := x + block*Width
			for row := 0; row < blockHeight; row++ {
				y := blockHeight - 1 - row
				if on(m.At(r.Min.X+x, r.Min.Y+block*blockHeight+y)) {
					b[i] |= 1 << uint(y)
				}
			}
		}
	}

	return b, nil
}

// Encode writes the Image m to w in packed format.
func Encode(w io.Writer, m image.Image) error {
	b, err := Pack(m, NotWhite)
	if err != nil {
		return err
	}
	_, err = w.Write(b[:])
	return err
}
