package bitmap

import (
	"errors"
	"image"
	"image/color"
	"io"
)

var (
	errNotEnough = errors.New("bitmap: not enough image data")
	errTooMuch   = errors.New("bitmap: too much image data")
)

const (
	black = 0x00
	white = 0xff
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// Reconstruct returns the preview image held in b. Lit pixels are black and
// all other pixels are white.
func Reconstruct(b *Buffer) *image.Gray {
	m := image.NewGray(image.Rect(0, 0, Width, Height))
	for block := 0; block < blocks; block++ {
		for x := 0; x < Width; x++ {
			packed := b[x+block*Width]
			for row := 0; row < blockHeight; row++ {
				y := blockHeight - 1 - row
				c := color.Gray{Y: white}
				if packed&(1<<uint(y)) != 0 {
					c.Y = black
				}
				m.SetGray(x, block*blockHeight+y, c)
			}
		}
	}
	return m
}

type decoder struct {
	r   io.Reader
	buf Buffer
}

func (d *decoder) decode(r io.Reader) error {
	d.r = r

	if err := readFull(d.r, d.buf[:]); err != nil {
		if err != io.ErrUnexpectedEOF {
			return err
		}
		return errNotEnough
	}

	var tmp [1]byte
	switch n, err := io.ReadFull(d.r, tmp[:]); {
	case n != 0:
		return errTooMuch
	case err != io.EOF:
		return err
	}

	return nil
}

// Decode reads a packed image from r and returns the reconstructed preview
// as an image.Image.
func Decode(r io.Reader) (image.Image, error) {
	var d decoder
	if err := d.decode(r); err != nil {
		return nil, err
	}
	return Reconstruct(&d.buf), nil
}

// DecodeConfig returns the color model and dimensions of a packed image
// without reconstructing it.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var d decoder
	if err := d.decode(r); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.GrayModel,
		Width:      Width,
		Height:     Height,
	}, nil
}
