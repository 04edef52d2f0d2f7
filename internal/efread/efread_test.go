package efread

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/gyeh/tanshu3/internal/model"
)

const header = "施設コード\tデータ識別番号\t退院年月日\t入院年月日\tデータ区分\t順序番号\t行為明細番号\t病院点数マスタコード\tレセプト電算コード\t解釈番号\t診療明細名称"

// efLine builds a 25-column EF line with the fields the extractor reads.
func efLine(id, discharge, admission, detail, code, name, date string) string {
	cols := make([]string, 25)
	cols[0] = "123456789"
	cols[1] = id
	cols[2] = discharge
	cols[3] = admission
	cols[4] = "50"
	cols[5] = "0001"
	cols[6] = detail
	cols[8] = code
	cols[10] = name
	cols[24] = date
	return strings.Join(cols, "\t")
}

func TestExtractLine_Procedure(t *testing.T) {
	f, ok := ExtractLine(efLine("0001", "20240103", "20240101", "001", "150285010", "内視鏡的大腸ポリープ・粘膜切除術", "20240102"))
	if !ok {
		t.Fatal("expected a fact")
	}
	if f.ID != "0001" || f.Admission != "20240101" || f.Discharge != "20240103" || f.Marker {
		t.Errorf("unexpected fact: %+v", f)
	}
	if f.Procedure == nil {
		t.Fatal("expected a procedure")
	}
	p := f.Procedure
	if p.Code != "150285010" || p.Date != "20240102" || p.SequenceNumber != "001" {
		t.Errorf("unexpected procedure: %+v", p)
	}
}

func TestExtractLine_Marker(t *testing.T) {
	f, ok := ExtractLine(efLine("0002", "00000000", "20240105", "000", "150285010", "x", "20240105"))
	if !ok {
		t.Fatal("marker rows still yield a fact")
	}
	if !f.Marker || f.Procedure != nil {
		t.Errorf("marker fact must carry no procedure: %+v", f)
	}
	if f.Admission != "20240105" || f.Discharge != model.SentinelDate {
		t.Errorf("marker dates not captured: %+v", f)
	}
}

func TestExtractLine_Rejects(t *testing.T) {
	tests := map[string]string{
		"too few columns": "a\tb\tc",
		"empty id":        "h\t \t20240101\t20240101\tx",
		"blank":           "",
	}
	for name, line := range tests {
		if _, ok := ExtractLine(line); ok {
			t.Errorf("%s: expected line to be skipped", name)
		}
	}
}

func TestExtractLine_DateOnly(t *testing.T) {
	f, ok := ExtractLine("h\t0003\t20240110\t20240108")
	if !ok {
		t.Fatal("four columns are enough")
	}
	if f.Procedure != nil {
		t.Errorf("narrow row must not carry a procedure: %+v", f.Procedure)
	}
	if f.Discharge != "20240110" {
		t.Errorf("discharge = %q", f.Discharge)
	}
}

func TestExtractLine_NarrowProcedureRow(t *testing.T) {
	// Code present but the name and service date columns are missing.
	f, ok := ExtractLine("h\t0004\t20240110\t20240108\t50\t1\t001\tx\t150274010")
	if !ok || f.Procedure == nil {
		t.Fatalf("expected procedure, got %+v ok=%v", f, ok)
	}
	if f.Procedure.Name != "" || f.Procedure.Date != "" {
		t.Errorf("missing columns should be empty: %+v", f.Procedure)
	}
}

func TestExtractLine_PipePrefix(t *testing.T) {
	line := "EFn_2024.txt|" + efLine("0005", "20240103", "20240101", "001", "150274010", "水晶体再建術", "20240101")
	f, ok := ExtractLine(line)
	if !ok {
		t.Fatal("expected a fact")
	}
	if f.ID != "0005" || f.Procedure == nil || f.Procedure.Code != "150274010" {
		t.Errorf("pipe prefix not stripped correctly: %+v", f)
	}
}

func TestExtractLine_BlankDischargeIsSentinel(t *testing.T) {
	f, ok := ExtractLine("h\t0006\t\t20240108")
	if !ok {
		t.Fatal("expected a fact")
	}
	if f.Discharge != model.SentinelDate {
		t.Errorf("discharge = %q", f.Discharge)
	}
}

func TestReader_SkipsHeaderAndCounts(t *testing.T) {
	text := strings.Join([]string{
		header,
		efLine("0001", "00000000", "20240101", "000", "", "", ""),
		efLine("0001", "20240103", "20240101", "001", "150285010", "内視鏡的大腸ポリープ", "20240102"),
		"",
		"broken",
	}, "\r\n")

	r, err := NewReader(strings.NewReader(text), EncodingAuto)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	facts, err := ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(facts) != 2 {
		t.Fatalf("expected 2 facts, got %d", len(facts))
	}
	st := r.Stats()
	if st.RowsRead != 4 || st.RowsSkipped != 2 || st.Facts != 2 || st.Markers != 1 {
		t.Errorf("unexpected stats: %+v", st)
	}
	if st.Encoding != EncodingUTF8 {
		t.Errorf("encoding = %s", st.Encoding)
	}
}

func TestReader_ShiftJIS(t *testing.T) {
	text := header + "\n" + efLine("0007", "20240103", "20240101", "001", "150274010", "水晶体再建術", "20240101") + "\n"
	encoded, _, err := transform.String(japanese.ShiftJIS.NewEncoder(), text)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	r, err := NewReader(strings.NewReader(encoded), EncodingAuto)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	facts, err := ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if r.Stats().Encoding != EncodingShiftJIS {
		t.Errorf("expected shift_jis detection, got %s", r.Stats().Encoding)
	}
	if len(facts) != 1 || facts[0].Procedure == nil || facts[0].Procedure.Name != "水晶体再建術" {
		t.Fatalf("unexpected facts: %+v", facts)
	}
}

func TestReader_StripsBOM(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0xEF, 0xBB, 0xBF})
	buf.WriteString(header + "\n")
	buf.WriteString(efLine("0008", "20240103", "20240101", "001", "150274010", "水晶体再建術", "20240101"))

	path := filepath.Join(t.TempDir(), "ef.txt")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	r, err := Open(path, EncodingUTF8)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()
	facts, err := ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(facts) != 1 || facts[0].ID != "0008" {
		t.Fatalf("unexpected facts: %+v", facts)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "none.txt"), EncodingAuto); err == nil {
		t.Fatal("expected error")
	}
}

func TestParseEncoding(t *testing.T) {
	for in, want := range map[string]Encoding{
		"":          EncodingAuto,
		"UTF8":      EncodingUTF8,
		"cp932":     EncodingShiftJIS,
		"Shift_JIS": EncodingShiftJIS,
	} {
		got, err := ParseEncoding(in)
		if err != nil || got != want {
			t.Errorf("ParseEncoding(%q) = %s, %v", in, got, err)
		}
	}
	if _, err := ParseEncoding("latin1"); err == nil {
		t.Error("expected error for latin1")
	}
}

func TestDetect_TruncatedRune(t *testing.T) {
	sample := []byte("水晶体")
	if got := Detect(sample[:len(sample)-1]); got != EncodingUTF8 {
		t.Errorf("truncated UTF-8 sample detected as %s", got)
	}
}

func TestReadAll(t *testing.T) {
	r, err := NewReader(strings.NewReader(header+"\n"+efLine("0009", "20240103", "20240101", "001", "150274010", "", "20240101")), EncodingUTF8)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	facts, err := ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(facts) != 1 {
		t.Fatalf("expected 1 fact, got %d", len(facts))
	}
}

func TestDecode_ShiftJISAuto(t *testing.T) {
	text := header + "\n" + efLine("0001", "20240102", "20240101", "001", "150274010", "水晶体再建術", "20240101") + "\n"
	sjis, _, err := transform.String(japanese.ShiftJIS.NewEncoder(), text)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	src, enc, err := Decode(strings.NewReader(sjis), EncodingAuto)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if enc != EncodingShiftJIS {
		t.Errorf("encoding = %q, want shift_jis", enc)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(src); err != nil {
		t.Fatalf("read decoded: %v", err)
	}
	if buf.String() != text {
		t.Errorf("decoded text differs:\n got %q\nwant %q", buf.String(), text)
	}
}

func TestDecode_UnknownEncoding(t *testing.T) {
	if _, _, err := Decode(strings.NewReader("x"), Encoding("latin1")); err == nil {
		t.Fatal("expected error for unsupported encoding")
	}
}
