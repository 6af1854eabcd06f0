package bed

import (
	"errors"
	"os"
	"strings"
	"testing"
)

const bed3 = `chr1	2488104	2488172
chr1	2489165	2489273
chr1	2489782	2489907
chr2	2490320	2490438
`

func scanErr(s string) error {
	scan := NewScanner(strings.NewReader(s), ScanOpts{})
	var e Entry
	for scan.Scan(&e) {
	}
	return scan.Err()
}

func TestScanner(t *testing.T) {
	scan := NewScanner(strings.NewReader(bed3), ScanOpts{})
	var e Entry
	if !scan.Scan(&e) {
		t.Fatal(scan.Err())
	}
	if got, want := e, (Entry{"chr1", 2488104, 2488172}); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	var n int
	for scan.Scan(&e) {
		n++
	}
	if got, want := n, 3; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if err := scan.Err(); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	// The last successful scan's record survives the end of the stream.
	if got, want := e, (Entry{"chr2", 2490320, 2490438}); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestScannerEOF(t *testing.T) {
	scan := NewScanner(strings.NewReader(""), ScanOpts{})
	e := Entry{Chrom: "sentinel", Start: 7, End: 8}
	if scan.Scan(&e) {
		t.Error("Scan succeeded on empty input")
	}
	if err := scan.Err(); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	if got, want := e, (Entry{Chrom: "sentinel", Start: 7, End: 8}); got != want {
		t.Errorf("record modified at end of stream: got %v, want %v", got, want)
	}
	// false stays false.
	if scan.Scan(&e) {
		t.Error("Scan succeeded after end of stream")
	}
}

func TestScannerBadInput(t *testing.T) {
	if got := scanErr("chr1\t100"); !errors.Is(got, ErrFieldCount) {
		t.Errorf("got %v, want %v", got, ErrFieldCount)
	}
	if got := scanErr("chr1\t100\t200\t300"); !errors.Is(got, ErrFieldCount) {
		t.Errorf("got %v, want %v", got, ErrFieldCount)
	}
	err := scanErr("chr1\t100\t200\nchr1\t12a\t300\n")
	if !errors.Is(err, ErrMalformedInt) {
		t.Errorf("got %v, want %v", err, ErrMalformedInt)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error %q does not name the offending line", err)
	}
}

func TestScannerStopsAtBadLine(t *testing.T) {
	// Records before the malformed line parse intact; the error poisons
	// only the remainder of the stream.
	scan := NewScanner(strings.NewReader("chr1\t100\t200\nbogus\nchr1\t300\t400\n"), ScanOpts{})
	var e Entry
	if !scan.Scan(&e) {
		t.Fatal(scan.Err())
	}
	if got, want := e, (Entry{"chr1", 100, 200}); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if scan.Scan(&e) {
		t.Error("Scan succeeded on malformed line")
	}
	if !errors.Is(scan.Err(), ErrFieldCount) {
		t.Errorf("got %v, want %v", scan.Err(), ErrFieldCount)
	}
	if got, want := e, (Entry{"chr1", 100, 200}); got != want {
		t.Errorf("record modified by failed scan: got %v, want %v", got, want)
	}
	if scan.Scan(&e) {
		t.Error("Scan succeeded after error")
	}
}

func TestScannerSkipHeader(t *testing.T) {
	const in = `browser position chr7:127471196-127495720
track name="test" description="demo"
# comment

chr7	127471196	127472363
`
	scan := NewScanner(strings.NewReader(in), ScanOpts{SkipHeader: true})
	var e Entry
	if !scan.Scan(&e) {
		t.Fatal(scan.Err())
	}
	if got, want := e, (Entry{"chr7", 127471196, 127472363}); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if scan.Scan(&e) {
		t.Error("Scan succeeded past last record")
	}
	if err := scan.Err(); err != nil {
		t.Errorf("unexpected error %v", err)
	}

	// Header lines are field-count errors under the default opts.
	scan = NewScanner(strings.NewReader(in), ScanOpts{})
	if scan.Scan(&e) {
		t.Error("Scan succeeded on header line")
	}
	if !errors.Is(scan.Err(), ErrFieldCount) {
		t.Errorf("got %v, want %v", scan.Err(), ErrFieldCount)
	}
}

func TestReadAll(t *testing.T) {
	entries, err := ReadAll[Entry](strings.NewReader(bed3), ScanOpts{})
	if err != nil {
		t.Fatal(err)
	}
	want := []Entry{
		{"chr1", 2488104, 2488172},
		{"chr1", 2489165, 2489273},
		{"chr1", 2489782, 2489907},
		{"chr2", 2490320, 2490438},
	}
	if got := entries; len(got) != len(want) {
		t.Fatalf("got %d records, want %d", len(got), len(want))
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("record %d: got %v, want %v", i, entries[i], want[i])
		}
	}

	if _, err := ReadAll[Entry](strings.NewReader("chr1\t12a\t0\n"), ScanOpts{}); !errors.Is(err, ErrMalformedInt) {
		t.Errorf("got %v, want %v", err, ErrMalformedInt)
	}
}

func TestReadAllBED12File(t *testing.T) {
	f, err := os.Open("testdata/test12.bed")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	recs, err := ReadAll[Entry12](f, ScanOpts{SkipHeader: true})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := len(recs), 3; got != want {
		t.Fatalf("got %v records, want %v", got, want)
	}
	if got, want := recs[0], (Entry12{
		Chrom:       "chr7",
		Start:       127471196,
		End:         127472363,
		Name:        "Pos1",
		Score:       "0",
		Strand:      '+',
		ThickStart:  127471196,
		ThickEnd:    127472363,
		ItemRGB:     "255,0,0",
		BlockCount:  2,
		BlockSizes:  "567,488",
		BlockStarts: "0,3512",
	}); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := recs[2].Strand, byte('.'); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}
