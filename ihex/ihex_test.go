package ihex

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/bodgit/logohex/bitmap"
	"github.com/bodgit/logohex/checksum"
	"github.com/marcinbor85/gohex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const base = 0x7140

var lineFormat = regexp.MustCompile(`^:10[0-9A-F]{4}00[0-9A-F]{32}[0-9A-F]{2}$`)

func pattern() *bitmap.Buffer {
	b := new(bitmap.Buffer)
	for i := range b {
		b[i] = byte(i*31 + i>>4)
	}
	return b
}

func TestRecordBytes(t *testing.T) {
	r := Record{
		Address: 0x7140,
		Type:    TypeData,
		Data:    make([]byte, 16),
	}

	b := r.Bytes()
	require.Len(t, b, 21)
	assert.Equal(t, []byte{0x10, 0x71, 0x40, 0x00}, b[:4])
	assert.Equal(t, byte(0x3F), b[20])
	assert.True(t, checksum.Valid(b))
}

func TestRecordString(t *testing.T) {
	tests := []struct {
		name string
		r    Record
		want string
	}{
		{
			name: "zero data",
			r:    Record{Address: 0x7140, Data: make([]byte, 16)},
			want: ":10714000" + strings.Repeat("00", 16) + "3F",
		},
		{
			name: "full data",
			r:    Record{Address: 0x7140, Data: bytes.Repeat([]byte{0xFF}, 16)},
			want: ":10714000" + strings.Repeat("FF", 16) + "4F",
		},
		{
			name: "lowercase hex is never produced",
			r:    Record{Address: 0xabcd, Data: []byte{0xde, 0xad}},
			want: ":02ABCD00DEAD" + fmt.Sprintf("%02X", checksum.Sum([]byte{0x02, 0xab, 0xcd, 0x00, 0xde, 0xad})),
		},
		{
			name: "end of file",
			r:    Record{Type: 0x01},
			want: EOF,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.String())

			text, err := tt.r.MarshalText()
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(text))
		})
	}
}

func TestEncodeAllWhite(t *testing.T) {
	lines, err := Encode(new(bitmap.Buffer), base)
	require.NoError(t, err)
	require.Len(t, lines, 64)
	assert.Equal(t, ":10714000"+strings.Repeat("00", 16)+"3F", lines[0])
}

func TestEncodeAllOn(t *testing.T) {
	b := new(bitmap.Buffer)
	for i := range b {
		b[i] = 0xFF
	}

	lines, err := Encode(b, base)
	require.NoError(t, err)
	require.Len(t, lines, 64)
	assert.Equal(t, ":10714000"+strings.Repeat("FF", 16)+"4F", lines[0])
}

func TestEncodeRecords(t *testing.T) {
	b := pattern()

	lines, err := Encode(b, base)
	require.NoError(t, err)
	require.Len(t, lines, bitmap.Size/RecordSize)

	for i, line := range lines {
		require.Regexp(t, lineFormat, line)

		raw, err := hex.DecodeString(line[1:])
		require.NoError(t, err)
		require.Len(t, raw, 21)

		assert.Equal(t, byte(RecordSize), raw[0])
		assert.Equal(t, uint16(base+16*i), uint16(raw[1])<<8|uint16(raw[2]), "record %d", i)
		assert.Equal(t, byte(TypeData), raw[3])
		assert.Equal(t, b[i*16:i*16+16], raw[4:20])

		var sum int
		for _, v := range raw {
			sum += int(v)
		}
		assert.Zero(t, sum%256, "record %d", i)
	}
}

func TestEncodeDeterministic(t *testing.T) {
	l1, err := Encode(pattern(), base)
	require.NoError(t, err)
	l2, err := Encode(pattern(), base)
	require.NoError(t, err)
	assert.Equal(t, l1, l2)
}

func TestEncodeAddressOverflow(t *testing.T) {
	tests := []struct {
		base    uint16
		wantErr bool
	}{
		{0x0000, false},
		{0x7140, false},
		{0xFC00, false},
		{0xFC01, true},
		{0xFFF0, true},
		{0xFFFF, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("0x%04X", tt.base), func(t *testing.T) {
			lines, err := Encode(new(bitmap.Buffer), tt.base)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Len(t, lines, 64)
				return
			}
			assert.Nil(t, lines)
			assert.ErrorIs(t, err, ErrAddressOverflow)

			var ae *AddressOverflowError
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, tt.base, ae.Base)
			assert.Equal(t, bitmap.Size, ae.Length)
		})
	}
}

func TestEncodeBytes(t *testing.T) {
	lines, err := EncodeBytes(nil, base)
	require.NoError(t, err)
	assert.Empty(t, lines)

	_, err = EncodeBytes(make([]byte, 17), base)
	assert.Equal(t, ErrPartialRecord, err)

	lines, err = EncodeBytes(make([]byte, 32), 0xFFE0)
	require.NoError(t, err)
	assert.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], ":10FFF000"))
}

func TestWriter(t *testing.T) {
	b := pattern()
	want, err := Encode(b, base)
	require.NoError(t, err)

	var out bytes.Buffer
	w := NewWriter(&out, base)

	// Deliberately awkward chunk sizes
	p := b[:]
	for _, n := range []int{1, 7, 40, 100, 3} {
		written, err := w.Write(p[:n])
		require.NoError(t, err)
		assert.Equal(t, n, written)
		p = p[n:]
	}
	written, err := w.Write(p)
	require.NoError(t, err)
	assert.Equal(t, len(p), written)
	require.NoError(t, w.Flush())

	assert.Equal(t, bitmap.Size, w.Len())
	assert.Equal(t, strings.Join(want, "\n")+"\n", out.String())
}

func TestWriterPartial(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out, base)

	_, err := w.Write(make([]byte, 20))
	require.NoError(t, err)
	assert.Equal(t, 16, w.Len())
	assert.Equal(t, ErrPartialRecord, w.Flush())
}

func TestWriterOverflow(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out, 0xFFF0)

	n, err := w.Write(make([]byte, 32))
	assert.Equal(t, 16, n)
	assert.ErrorIs(t, err, ErrAddressOverflow)
	assert.Equal(t, 1, strings.Count(out.String(), "\n"))
}

func TestVerify(t *testing.T) {
	b := pattern()
	lines, err := Encode(b, base)
	require.NoError(t, err)

	require.NoError(t, Verify(lines, base, b[:]))

	// Independent decoder agrees with the packed buffer
	mem := gohex.NewMemory()
	require.NoError(t, mem.ParseIntelHex(strings.NewReader(strings.Join(append(lines, EOF), "\n"))))
	assert.Equal(t, b[:], mem.ToBinary(base, bitmap.Size, 0x00))
}

func TestVerifyMismatch(t *testing.T) {
	b := pattern()
	lines, err := Encode(b, base)
	require.NoError(t, err)

	other := *b
	other[17] ^= 0x01

	err = Verify(lines, base, other[:])
	var ve *VerifyError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, uint16(base+17), ve.Address)
	assert.Equal(t, other[17], ve.Want)
	assert.Equal(t, b[17], ve.Got)
}

func TestVerifyMissingRecord(t *testing.T) {
	b := new(bitmap.Buffer)
	lines, err := Encode(b, base)
	require.NoError(t, err)

	assert.Error(t, Verify(lines[:63], base, b[:]))
}

func TestVerifyCorruptChecksum(t *testing.T) {
	lines, err := Encode(new(bitmap.Buffer), base)
	require.NoError(t, err)

	lines[3] = lines[3][:len(lines[3])-2] + "00"
	assert.Error(t, Verify(lines, base, make([]byte, bitmap.Size)))
}

func BenchmarkEncode(b *testing.B) {
	buf := pattern()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Encode(buf, base); err != nil {
			b.Fatal(err)
		}
	}
}
