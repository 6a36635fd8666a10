package ihex

import "github.com/bodgit/logohex/bitmap"

func checkRange(base uint16, length int) error {
	if int(base)+length > addressSize {
		return &AddressOverflowError{Base: base, Length: length}
	}
	return nil
}

// Records splits p into data records loaded from base. The length of p must
// be a multiple of RecordSize. The records share memory with p.
func Records(p []byte, base uint16) ([]Record, error) {
	if len(p)%RecordSize != 0 {
		return nil, ErrPartialRecord
	}
	if err := checkRange(base, len(p)); err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(p)/RecordSize)
	for i := 0; i < len(p); i += RecordSize {
		records = append(records, Record{
			Address: base + uint16(i),
			Type:    TypeData,
			Data:    p[i : i+RecordSize],
		})
	}
	return records, nil
}

// EncodeBytes returns one line of text per record for p loaded at base.
func EncodeBytes(p []byte, base uint16) ([]string, error) {
	records, err := Records(p, base)
	if err != nil {
		return nil, err
	}

	lines := make([]string, len(records))
	for i := range records {
		lines[i] = records[i].String()
	}
	return lines, nil
}

// Encode returns the 64 lines of text encoding the packed image b loaded at
// base.
func Encode(b *bitmap.Buffer, base uint16) ([]string, error) {
	return EncodeBytes(b[:], base)
}
