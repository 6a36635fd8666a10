/*
Package bitmap implements the packed logo format used by the display
controller firmware.

The format is defined as 128 by 64 monochrome pixels exactly which is split
into eight horizontal blocks, each 8 pixels tall. Every byte holds one column
of one block, so the whole image packs into 1024 bytes with the byte for
column x of block b at offset x + b*128. Bit y of that byte is row b*8 + y of
the image; bits are visited from 7 down to 0 as the block is walked, which is
the pixel addressing the controller expects.

A set bit is a lit ("on") pixel. Reconstructed images use black for set bits
and white for clear bits.
*/
package bitmap

import (
	"errors"
	"fmt"
)

const (
	blockHeight = 8
	blocks      = 8
	// Width is the only accepted image width in pixels.
	Width = 128
	// Height is the only accepted image height in pixels.
	Height = blockHeight * blocks
	// Size is the length in bytes of a packed image.
	Size = Width * blocks
)

// ErrInvalidDimensions is matched by any *DimensionError.
var ErrInvalidDimensions = errors.New("bitmap: invalid image dimensions")

// DimensionError is returned when an image is not exactly Width by Height
// pixels.
type DimensionError struct {
	Width  int
	Height int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("bitmap: image is %dx%d, must be %dx%d", e.Width, e.Height, Width, Height)
}

// Is reports whether target is ErrInvalidDimensions.
func (e *DimensionError) Is(target error) bool {
	return target == ErrInvalidDimensions
}

// Buffer is a packed image. It implements the encoding.BinaryMarshaler and
// encoding.BinaryUnmarshaler interfaces.
type Buffer [Size]byte

// pixOffset returns the byte offset and bit for the pixel at (x, y).
func pixOffset(x, y int) (offset int, bit uint) {
	return x + y/blockHeight*Width, uint(y % blockHeight)
}

// Bit reports whether the pixel at (x, y) is on. Pixels outside the image
// are off.
func (b *Buffer) Bit(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	offset, bit := pixOffset(x, y)
	return b[offset]&(1<<bit) != 0
}

// MarshalBinary returns a copy of the packed bytes.
func (b *Buffer) MarshalBinary() ([]byte, error) {
	out := make([]byte, Size)
	copy(out, b[:])
	return out, nil
}

// UnmarshalBinary replaces the packed bytes with data, which must be exactly
// Size bytes long.
func (b *Buffer) UnmarshalBinary(data []byte) error {
	if len(data) != Size {
		return fmt.Errorf("bitmap: packed image is %d bytes, must be %d", len(data), Size)
	}
	copy(b[:], data)
	return nil
}
