// Package bed implements reading and writing of BED-format genomic
// interval records.  See https://genome.ucsc.edu/FAQ/FAQformat.html#format1.
// Briefly, a BED file has one record per line, with tab-separated columns;
// the first three name a chromosome and a 0-based half-open coordinate
// range, and up to nine more carry feature annotations.  For example:
//
// chr1	2488104	2488172
// chr1	2489165	2489273
//
// A record's column layout is fixed at compile time: Entry covers the
// three-column form, Entry12 the full twelve-column (BED12) form, and any
// other layout can be used with Scanner and Writer by implementing Record
// and Unmarshaler.  This package deliberately stops at single records and
// streams of them.  Interval arithmetic (overlap, merge, intersection) and
// chromosome-aware sorting belong to the callers.
package bed

import (
	"strconv"
	"strings"

	gunsafe "github.com/grailbio/base/unsafe"
	"github.com/pkg/errors"
)

var (
	// ErrFieldCount is returned when the number of tab-separated tokens in
	// a line does not match the record's column count.
	ErrFieldCount = errors.New("field count mismatch")
	// ErrMalformedInt is returned when a token bound to an integer column
	// is not a valid decimal int32.  Out-of-range values ("2147483648")
	// fail the same way; they are never silently wrapped or truncated.
	ErrMalformedInt = errors.New("malformed integer field")
	// ErrEmptyChar is returned when an empty token is bound to a
	// single-character column such as strand.
	ErrEmptyChar = errors.New("empty character field")
)

// A Record is one BED line decoded into typed columns.  Implementations
// fix their column count and types at compile time; out-of-layout column
// access does not exist because columns are ordinary struct fields.
type Record interface {
	// NumFields returns the number of tab-separated columns in the
	// record's layout.
	NumFields() int
	// AppendText appends the record's canonical tab-separated form to dst
	// and returns the extended slice.  The encoding carries exactly
	// NumFields()-1 tabs and no trailing newline, and round-trips through
	// SetFields unchanged.
	AppendText(dst []byte) []byte
}

// An Unmarshaler is a Record whose columns can be overwritten with the
// parsed tokens of an input line.  Scanner.Scan requires one.
type Unmarshaler interface {
	Record
	// SetFields replaces every column value with the parsed value of the
	// corresponding token, in layout order.  Callers must supply exactly
	// NumFields() tokens.  On error the record is left unchanged.
	SetFields(fields [][]byte) error
}

// Marshal returns the canonical tab-separated encoding of rec, without a
// trailing newline.  It cannot fail: every representable record has an
// encoding.
func Marshal(rec Record) string {
	return gunsafe.BytesToString(rec.AppendText(nil))
}

// Unmarshal parses one BED line (without its trailing newline) into rec.
// The tokens are bound to columns in layout order; parse failures are
// reported via ErrFieldCount, ErrMalformedInt and ErrEmptyChar.
func Unmarshal(line []byte, rec Unmarshaler) error {
	fields := splitFields(nil, line)
	if len(fields) != rec.NumFields() {
		return errors.Wrapf(ErrFieldCount, "%d field(s), want %d", len(fields), rec.NumFields())
	}
	return rec.SetFields(fields)
}

// Entry is the canonical three-column BED record: a chromosome name and a
// 0-based half-open [Start, End) interval.  The zero value is a valid
// (empty) record.
type Entry struct {
	Chrom string
	Start int32
	End   int32
}

// NumFields implements Record.
func (Entry) NumFields() int { return 3 }

// AppendText implements Record.
func (e Entry) AppendText(dst []byte) []byte {
	dst = append(dst, e.Chrom...)
	dst = appendInt32(append(dst, '\t'), e.Start)
	dst = appendInt32(append(dst, '\t'), e.End)
	return dst
}

// SetFields implements Unmarshaler.
func (e *Entry) SetFields(fields [][]byte) error {
	var (
		tmp Entry
		err error
	)
	tmp.Chrom = string(fields[0])
	if tmp.Start, err = parseInt32(fields[1], 1); err != nil {
		return err
	}
	if tmp.End, err = parseInt32(fields[2], 2); err != nil {
		return err
	}
	*e = tmp
	return nil
}

// Compare returns -1, 0, or 1 by lexicographic comparison of
// (Chrom, Start, End), with Chrom as the primary key.
func (e Entry) Compare(o Entry) int {
	if c := strings.Compare(e.Chrom, o.Chrom); c != 0 {
		return c
	}
	if c := compareInt32(e.Start, o.Start); c != 0 {
		return c
	}
	return compareInt32(e.End, o.End)
}

// Less reports whether e orders before o.  It is suitable for
// sort.Slice and friends.
func (e Entry) Less(o Entry) bool { return e.Compare(o) < 0 }

// Entry12 is the full twelve-column BED record (BED12).  Score is kept as
// text rather than a number: the column is nominally an integer in
// 0-1000, but "." and floating-point scores are common in the wild and
// the value is pass-through here either way.
type Entry12 struct {
	Chrom       string
	Start       int32
	End         int32
	Name        string
	Score       string
	Strand      byte // '+', '-' or '.'
	ThickStart  int32
	ThickEnd    int32
	ItemRGB     string
	BlockCount  int32
	BlockSizes  string
	BlockStarts string
}

// NumFields implements Record.
func (Entry12) NumFields() int { return 12 }

// AppendText implements Record.
func (e Entry12) AppendText(dst []byte) []byte {
	dst = append(dst, e.Chrom...)
	dst = appendInt32(append(dst, '\t'), e.Start)
	dst = appendInt32(append(dst, '\t'), e.End)
	dst = append(append(dst, '\t'), e.Name...)
	dst = append(append(dst, '\t'), e.Score...)
	dst = append(dst, '\t', e.Strand)
	dst = appendInt32(append(dst, '\t'), e.ThickStart)
	dst = appendInt32(append(dst, '\t'), e.ThickEnd)
	dst = append(append(dst, '\t'), e.ItemRGB...)
	dst = appendInt32(append(dst, '\t'), e.BlockCount)
	dst = append(append(dst, '\t'), e.BlockSizes...)
	dst = append(append(dst, '\t'), e.BlockStarts...)
	return dst
}

// SetFields implements Unmarshaler.
func (e *Entry12) SetFields(fields [][]byte) error {
	var (
		tmp Entry12
		err error
	)
	tmp.Chrom = string(fields[0])
	if tmp.Start, err = parseInt32(fields[1], 1); err != nil {
		return err
	}
	if tmp.End, err = parseInt32(fields[2], 2); err != nil {
		return err
	}
	tmp.Name = string(fields[3])
	tmp.Score = string(fields[4])
	if tmp.Strand, err = parseChar(fields[5], 5); err != nil {
		return err
	}
	if tmp.ThickStart, err = parseInt32(fields[6], 6); err != nil {
		return err
	}
	if tmp.ThickEnd, err = parseInt32(fields[7], 7); err != nil {
		return err
	}
	tmp.ItemRGB = string(fields[8])
	if tmp.BlockCount, err = parseInt32(fields[9], 9); err != nil {
		return err
	}
	tmp.BlockSizes = string(fields[10])
	tmp.BlockStarts = string(fields[11])
	*e = tmp
	return nil
}

// Compare returns -1, 0, or 1 by lexicographic comparison of all twelve
// columns in layout order, with Chrom as the primary key.
func (e Entry12) Compare(o Entry12) int {
	if c := strings.Compare(e.Chrom, o.Chrom); c != 0 {
		return c
	}
	if c := compareInt32(e.Start, o.Start); c != 0 {
		return c
	}
	if c := compareInt32(e.End, o.End); c != 0 {
		return c
	}
	if c := strings.Compare(e.Name, o.Name); c != 0 {
		return c
	}
	if c := strings.Compare(e.Score, o.Score); c != 0 {
		return c
	}
	if e.Strand != o.Strand {
		if e.Strand < o.Strand {
			return -1
		}
		return 1
	}
	if c := compareInt32(e.ThickStart, o.ThickStart); c != 0 {
		return c
	}
	if c := compareInt32(e.ThickEnd, o.ThickEnd); c != 0 {
		return c
	}
	if c := strings.Compare(e.ItemRGB, o.ItemRGB); c != 0 {
		return c
	}
	if c := compareInt32(e.BlockCount, o.BlockCount); c != 0 {
		return c
	}
	if c := strings.Compare(e.BlockSizes, o.BlockSizes); c != 0 {
		return c
	}
	return strings.Compare(e.BlockStarts, o.BlockStarts)
}

// Less reports whether e orders before o.
func (e Entry12) Less(o Entry12) bool { return e.Compare(o) < 0 }

func appendInt32(dst []byte, v int32) []byte {
	return strconv.AppendInt(dst, int64(v), 10)
}

// parseInt32 converts one token to an int32.  ParseInt with bitSize 32
// rejects both trailing garbage ("12a") and out-of-range values, which is
// exactly the strictness BED coordinates need.  col is 0-based.
func parseInt32(tok []byte, col int) (int32, error) {
	v, err := strconv.ParseInt(gunsafe.BytesToString(tok), 10, 32)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedInt, "column %d: %q", col+1, tok)
	}
	return int32(v), nil
}

func parseChar(tok []byte, col int) (byte, error) {
	if len(tok) == 0 {
		return 0, errors.Wrapf(ErrEmptyChar, "column %d", col+1)
	}
	return tok[0], nil
}

func compareInt32(a, b int32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
