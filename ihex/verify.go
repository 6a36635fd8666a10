package ihex

import (
	"fmt"
	"strings"

	"github.com/marcinbor85/gohex"
)

// VerifyError describes the first byte where the decoded records disagree
// with the expected data.
type VerifyError struct {
	Address uint16
	Want    byte
	Got     byte
}

func (e *VerifyError) Error() string {
	return fmt.Sprintf("ihex: verify failed at 0x%04X: want 0x%02X, got 0x%02X", e.Address, e.Want, e.Got)
}

// Verify decodes lines with an independent Intel HEX parser and checks the
// memory loaded at base matches want.
func Verify(lines []string, base uint16, want []byte) error {
	if err := checkRange(base, len(want)); err != nil {
		return err
	}

	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	sb.WriteString(EOF)
	sb.WriteByte('\n')

	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(strings.NewReader(sb.String())); err != nil {
		return fmt.Errorf("ihex: verify: %w", err)
	}

	// Gaps read back as padding, the segment total below catches them
	got := mem.ToBinary(uint32(base), uint32(len(want)), 0x00)
	for i := range want {
		if got[i] != want[i] {
			return &VerifyError{Address: base + uint16(i), Want: want[i], Got: got[i]}
		}
	}

	var total int
	for _, segment := range mem.GetDataSegments() {
		total += len(segment.Data)
	}
	if total != len(want) {
		return fmt.Errorf("ihex: verify: decoded %d bytes, want %d", total, len(want))
	}

	return nil
}
