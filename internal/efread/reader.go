package efread

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/dimchansky/utfbom"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/gyeh/tanshu3/internal/model"
)

// Encoding names the character set of an EF file.
type Encoding string

const (
	EncodingAuto     Encoding = "auto"
	EncodingUTF8     Encoding = "utf-8"
	EncodingShiftJIS Encoding = "shift_jis"
)

const (
	sniffSize   = 64 * 1024
	maxLineSize = 1024 * 1024
)

// ParseEncoding accepts the canonical names plus the usual aliases.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return EncodingAuto, nil
	case "utf-8", "utf8":
		return EncodingUTF8, nil
	case "shift_jis", "shift-jis", "sjis", "cp932", "windows-31j":
		return EncodingShiftJIS, nil
	}
	return "", fmt.Errorf("unknown encoding %q (want auto, utf-8 or shift_jis)", s)
}

// Detect picks UTF-8 when the sample is valid UTF-8, Shift_JIS otherwise.
// A multi-byte sequence cut off at the end of the sample is tolerated.
func Detect(sample []byte) Encoding {
	for i := 0; i < utf8.UTFMax; i++ {
		if utf8.Valid(sample) {
			return EncodingUTF8
		}
		if len(sample) == 0 {
			break
		}
		sample = sample[:len(sample)-1]
	}
	return EncodingShiftJIS
}

// Stats counts what a Reader has consumed so far.
type Stats struct {
	Encoding    Encoding
	RowsRead    int64 // data lines, header excluded
	RowsSkipped int64 // blank or malformed lines
	Facts       int64 // lines returned by Next, markers included
	Markers     int64
}

// Reader streams billing facts out of one EF file.
type Reader struct {
	scanner    *bufio.Scanner
	closer     io.Closer
	headerDone bool
	stats      Stats
}

// Open opens an EF file on disk and returns a streaming Reader.
func Open(path string, enc Encoding) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open EF file: %w", err)
	}
	r, err := NewReader(f, enc)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// NewReader wraps r, stripping a UTF-8 BOM and decoding Shift_JIS when
// requested or detected.
func NewReader(r io.Reader, enc Encoding) (*Reader, error) {
	src, enc, err := Decode(r, enc)
	if err != nil {
		return nil, err
	}
	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	return &Reader{scanner: sc, stats: Stats{Encoding: enc}}, nil
}

// Decode strips a UTF-8 BOM and returns r as UTF-8 text. EncodingAuto
// sniffs the first 64 KiB; the returned Encoding is the one applied.
func Decode(r io.Reader, enc Encoding) (io.Reader, Encoding, error) {
	br := bufio.NewReaderSize(utfbom.SkipOnly(r), sniffSize)
	if enc == "" || enc == EncodingAuto {
		sample, err := br.Peek(sniffSize)
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
			return nil, enc, fmt.Errorf("sniff EF encoding: %w", err)
		}
		enc = Detect(sample)
	}

	switch enc {
	case EncodingUTF8:
		return br, enc, nil
	case EncodingShiftJIS:
		return transform.NewReader(br, japanese.ShiftJIS.NewDecoder()), enc, nil
	default:
		return nil, enc, fmt.Errorf("unsupported encoding %q", enc)
	}
}

// Next returns the next billing fact. ok is false at end of input or on a
// read error; check Err afterwards.
func (r *Reader) Next() (model.Fact, bool) {
	for r.scanner.Scan() {
		line := r.scanner.Text()
		if !r.headerDone {
			r.headerDone = true
			continue
		}
		r.stats.RowsRead++
		if strings.TrimSpace(line) == "" {
			r.stats.RowsSkipped++
			continue
		}
		f, ok := ExtractLine(line)
		if !ok {
			r.stats.RowsSkipped++
			continue
		}
		r.stats.Facts++
		if f.Marker {
			r.stats.Markers++
		}
		return f, true
	}
	return model.Fact{}, false
}

// Err returns the first non-EOF error hit by the underlying scanner.
func (r *Reader) Err() error {
	if err := r.scanner.Err(); err != nil {
		return fmt.Errorf("read EF lines: %w", err)
	}
	return nil
}

// Stats returns the counters accumulated so far.
func (r *Reader) Stats() Stats {
	return r.stats
}

// OwnCloser hands c to the Reader; Close will close it.
func (r *Reader) OwnCloser(c io.Closer) {
	r.closer = c
}

// Close releases the underlying file, if the Reader owns one.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// ReadAll drains r into a slice of facts.
func ReadAll(r *Reader) ([]model.Fact, error) {
	var facts []model.Fact
	for {
		f, ok := r.Next()
		if !ok {
			break
		}
		facts = append(facts, f)
	}
	if err := r.Err(); err != nil {
		return facts, err
	}
	return facts, nil
}

