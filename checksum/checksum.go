/*
Package checksum implements the 8-bit two's complement checksum used by
Intel HEX records.

The checksum is the byte that makes the sum of every byte in the record,
checksum included, equal to zero modulo 256.
*/
package checksum

import "hash"

// Size of a checksum in bytes.
const Size = 1

type digest struct {
	sum byte
}

// New creates a new hash.Hash computing the record checksum. Its Sum method
// appends the single checksum byte.
func New() hash.Hash {
	return &digest{}
}

func (d *digest) Size() int { return Size }

func (d *digest) BlockSize() int { return 1 }

func (d *digest) Reset() { d.sum = 0 }

func update(sum byte, p []byte) byte {
	for _, b := range p {
		sum += b
	}
	return sum
}

func (d *digest) Write(p []byte) (n int, err error) {
	d.sum = update(d.sum, p)
	return len(p), nil
}

func (d *digest) Sum(in []byte) []byte {
	return append(in, -d.sum)
}

// Sum returns the checksum of data. The checksum of no data is 0.
func Sum(data []byte) byte { return -update(0, data) }

// Valid reports whether data, with its trailing checksum included, sums to
// zero.
func Valid(data []byte) bool { return update(0, data) == 0 }
