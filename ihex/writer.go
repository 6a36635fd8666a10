package ihex

import "io"

// Writer writes data records to an underlying io.Writer, one line per
// record. Data is buffered until a whole record is available.
type Writer struct {
	w       io.Writer
	base    uint16
	n       int
	pending []byte
}

// NewWriter returns a Writer whose first record is loaded at base.
func NewWriter(w io.Writer, base uint16) *Writer {
	return &Writer{
		w:       w,
		base:    base,
		pending: make([]byte, 0, RecordSize),
	}
}

// Write implements io.Writer. Every complete record is written out
// immediately; an address overflow is reported before its record is
// written.
func (w *Writer) Write(p []byte) (int, error) {
	written := 0
	for len(p) > 0 {
		n := copy(w.pending[len(w.pending):RecordSize], p)
		w.pending = w.pending[:len(w.pending)+n]
		p = p[n:]

		if len(w.pending) == RecordSize {
			if err := w.flushRecord(); err != nil {
				return written, err
			}
		}
		written += n
	}
	return written, nil
}

func (w *Writer) flushRecord() error {
	if err := checkRange(w.base, w.n+RecordSize); err != nil {
		return err
	}

	r := Record{
		Address: w.base + uint16(w.n),
		Type:    TypeData,
		Data:    w.pending,
	}
	if _, err := io.WriteString(w.w, r.String()+"\n"); err != nil {
		return err
	}

	w.n += RecordSize
	w.pending = w.pending[:0]
	return nil
}

// Flush reports ErrPartialRecord if data is left over that does not fill a
// record.
func (w *Writer) Flush() error {
	if len(w.pending) > 0 {
		return ErrPartialRecord
	}
	return nil
}

// Len returns the number of data bytes written out as records so far.
func (w *Writer) Len() int {
	return w.n
}
