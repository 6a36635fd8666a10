package checksum

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSum(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want byte
	}{
		{
			name: "empty data",
			data: []byte{},
			want: 0x00,
		},
		{
			name: "single byte",
			data: []byte{0x01},
			want: 0xFF,
		},
		{
			name: "multiple bytes",
			data: []byte{0x01, 0x02, 0x03, 0x04},
			want: 0xF6,
		},
		{
			name: "all ones",
			data: []byte{0xFF, 0xFF, 0xFF, 0xFF},
			want: 0x04,
		},
		{
			name: "record header",
			data: []byte{0x10, 0x71, 0x40, 0x00},
			want: 0x3F,
		},
		{
			name: "record header with full data",
			data: append([]byte{0x10, 0x71, 0x40, 0x00}, bytes.Repeat([]byte{0xFF}, 16)...),
			want: 0x4F,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sum(tt.data))
			assert.True(t, Valid(append(tt.data, Sum(tt.data))))
		})
	}
}

func TestSumMatchesModularDefinition(t *testing.T) {
	data := make([]byte, 300)
	for i := range data {
		data[i] = byte(i * 7)
	}

	var total int
	for _, b := range data {
		total += int(b)
	}

	assert.Equal(t, byte((256-total%256)%256), Sum(data))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(nil))
	assert.True(t, Valid([]byte{0x01, 0xFF}))
	assert.False(t, Valid([]byte{0x01, 0xFE}))
}

func TestDigest(t *testing.T) {
	h := New()
	assert.Equal(t, Size, h.Size())
	assert.Equal(t, 1, h.BlockSize())

	_, _ = h.Write([]byte{0x10, 0x71})
	_, _ = h.Write([]byte{0x40, 0x00})
	assert.Equal(t, []byte{0x3F}, h.Sum(nil))
	assert.Equal(t, []byte{0xAA, 0x3F}, h.Sum([]byte{0xAA}))

	h.Reset()
	assert.Equal(t, []byte{0x00}, h.Sum(nil))
}

func BenchmarkSum(b *testing.B) {
	data := make([]byte, 20)
	for i := range data {
		data[i] = byte(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Sum(data)
	}
}
