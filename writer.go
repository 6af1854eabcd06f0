package bed

import "io"

var newline = []byte{'\n'}

// Writer is a BED file writer.
type Writer struct {
	w   io.Writer
	err error
	buf []byte
}

// NewWriter constructs a new BED writer that writes records to the
// underlying writer w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write writes the record rec as one BED line, terminated by a newline.
// Records appear in the output in the order they are written; Write never
// reorders or filters.  An error is returned if the write failed, and
// once a write has failed all subsequent writes return the same error.
func (w *Writer) Write(rec Record) error {
	if w.err != nil {
		return w.err
	}
	w.buf = rec.AppendText(w.buf[:0])
	w.buf = append(w.buf, newline...)
	_, w.err = w.w.Write(w.buf)
	return w.err
}

// WriteRecord writes the canonical form of rec, without a trailing
// newline, to w.  Batch output wants Writer instead, which terminates
// each record's line.
func WriteRecord(w io.Writer, rec Record) error {
	_, err := w.Write(rec.AppendText(nil))
	return err
}

// WriteAll writes each record in recs as one BED line, in slice order.
func WriteAll[R Record](w io.Writer, recs []R) error {
	bw := NewWriter(w)
	for i := range recs {
		if err := bw.Write(recs[i]); err != nil {
			return err
		}
	}
	return nil
}
