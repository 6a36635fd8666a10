/*
Package ihex implements an Intel HEX data record encoder for the packed logo
patch.

Every record carries exactly 16 data bytes and is written as

	:LLAAAATT<data>CC

where LL is the byte count, AAAA the big-endian load address, TT the record
type (always data) and CC the two's complement checksum of every preceding
byte. All hex digits are uppercase. Addresses start at a caller supplied base
and increase by 16 per record; the data must fit below 0x10000 as no extended
address records are produced.

Only encoding is supported. Verify uses an independent Intel HEX decoder to
cross-check encoded output.
*/
package ihex

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/bodgit/logohex/checksum"
)

const (
	// RecordSize is the number of data bytes in each record.
	RecordSize = 16

	// TypeData is the record type of a data record.
	TypeData = 0x00

	// EOF is the end of file record. It is not emitted by Encode, the
	// firmware template carries its own.
	EOF = ":00000001FF"

	// Start marks the beginning of every record.
	Start = ':'

	headerSize  = 4
	addressSize = 1 << 16
)

var (
	// ErrAddressOverflow is matched by any *AddressOverflowError.
	ErrAddressOverflow = errors.New("ihex: address overflow")

	// ErrPartialRecord is returned when the data does not divide into
	// whole records.
	ErrPartialRecord = fmt.Errorf("ihex: data is not a multiple of %d bytes", RecordSize)
)

// AddressOverflowError indicates that Length bytes loaded at Base do not fit
// in the 16-bit address space.
type AddressOverflowError struct {
	Base   uint16
	Length int
}

func (e *AddressOverflowError) Error() string {
	return fmt.Sprintf("ihex: %d bytes at base 0x%04X overflow the 16-bit address space", e.Length, e.Base)
}

// Is reports whether target is ErrAddressOverflow.
func (e *AddressOverflowError) Is(target error) bool {
	return target == ErrAddressOverflow
}

// Record is a single Intel HEX record. Data must be no longer than 255
// bytes.
type Record struct {
	Address uint16
	Type    byte
	Data    []byte
}

// Bytes returns the binary form of the record: byte count, address, type,
// data and finally the checksum.
func (r *Record) Bytes() []byte {
	b := make([]byte, 0, headerSize+len(r.Data)+checksum.Size)
	b = append(b, byte(len(r.Data)), byte(r.Address>>8), byte(r.Address), r.Type)
	b = append(b, r.Data...)
	return append(b, checksum.Sum(b))
}

// String returns the record as a line of text without a line ending.
func (r *Record) String() string {
	return string(Start) + strings.ToUpper(hex.EncodeToString(r.Bytes()))
}

// MarshalText implements the encoding.TextMarshaler interface.
func (r *Record) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}
