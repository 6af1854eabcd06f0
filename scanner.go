package bed

import (
	"bufio"
	"bytes"
	"io"

	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
)

// ScanOpts defines behavior of this package's BED-reading types.
type ScanOpts struct {
	// SkipHeader makes the scanner pass over blank lines and the UCSC
	// browser/track/# header lines some BED files start with, instead of
	// rejecting them for their field count.
	SkipHeader bool
}

var errEOF = errors.New("eof")

// Scanner provides a convenient interface for reading BED records.  Each
// Scan call consumes exactly one input line and binds its fields into the
// caller's record; looping for multiple records is the caller's job.
// Scanners are not threadsafe.
type Scanner struct {
	b      *bufio.Scanner
	opts   ScanOpts
	err    error
	line   int
	fields [][]byte
}

// NewScanner constructs a new Scanner that reads BED lines from the
// provided reader.
func NewScanner(r io.Reader, opts ScanOpts) *Scanner {
	return &Scanner{b: bufio.NewScanner(r), opts: opts}
}

// Scan the next record into rec.  Scan returns a boolean indicating
// whether the scan succeeded.  Once Scan returns false, it never returns
// true again.  Upon completion, the user should check the Err method to
// determine whether scanning stopped because of a malformed line or
// because the end of the stream was reached; in either case rec is left
// unmodified.
func (s *Scanner) Scan(rec Unmarshaler) bool {
	if s.err != nil {
		return false
	}
	for {
		if !s.b.Scan() {
			if s.err = s.b.Err(); s.err == nil {
				s.err = errEOF
			}
			return false
		}
		s.line++
		curLine := s.b.Bytes()
		if s.opts.SkipHeader && isHeaderLine(curLine) {
			continue
		}
		s.fields = splitFields(s.fields[:0], curLine)
		if len(s.fields) != rec.NumFields() {
			s.err = errors.Wrapf(ErrFieldCount, "line %d: %d field(s), want %d",
				s.line, len(s.fields), rec.NumFields())
			return false
		}
		if err := rec.SetFields(s.fields); err != nil {
			s.err = errors.Wrapf(err, "line %d", s.line)
			return false
		}
		return true
	}
}

// Err returns the scanning error, if any.  End of stream is not an error.
func (s *Scanner) Err() error {
	if s.err == errEOF {
		return nil
	}
	return s.err
}

// ReadAll reads records from r until the end of the stream, in input
// order.  The type parameter selects the layout:
//
//	entries, err := bed.ReadAll[bed.Entry](r, bed.ScanOpts{})
func ReadAll[R any, PR interface {
	*R
	Unmarshaler
}](r io.Reader, opts ScanOpts) ([]R, error) {
	scan := NewScanner(r, opts)
	var recs []R
	for {
		var rec R
		if !scan.Scan(PR(&rec)) {
			break
		}
		recs = append(recs, rec)
	}
	if err := scan.Err(); err != nil {
		return nil, err
	}
	log.Debug.Printf("bed: %d record(s) read", len(recs))
	return recs, nil
}

// splitFields splits line on tab characters, appending one token per
// column to dst.  Unlike bytes.Split it reuses dst's backing array, so a
// scanner allocates no per-field storage across lines.
func splitFields(dst [][]byte, line []byte) [][]byte {
	for {
		i := bytes.IndexByte(line, '\t')
		if i < 0 {
			return append(dst, line)
		}
		dst = append(dst, line[:i])
		line = line[i+1:]
	}
}

func isHeaderLine(line []byte) bool {
	if len(line) == 0 || line[0] == '#' {
		return true
	}
	return bytes.HasPrefix(line, []byte("browser")) || bytes.HasPrefix(line, []byte("track"))
}
