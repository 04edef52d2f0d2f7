package normalize

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gyeh/tanshu3/internal/model"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"20240101", true},
		{"20240229", true},
		{"20230229", false},
		{"00000000", false},
		{"2024011", false},
		{"2024-01-01", false},
		{"2024013a", false},
		{"", false},
	}
	for _, tt := range tests {
		_, ok := ParseDate(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseDate(%q) ok=%v, want %v", tt.in, ok, tt.ok)
		}
	}
}

func TestStayDays(t *testing.T) {
	tests := []struct {
		adm, dis string
		want     int
		ok       bool
	}{
		{"20240101", "20240101", 1, true},
		{"20240101", "20240103", 3, true},
		{"20240101", "20240105", 5, true},
		{"20240101", "20240108", 8, true},
		{"20240228", "20240301", 3, true},
		{"20231231", "20240102", 3, true},
		{"20240110", "20240110", 1, true},
		{"20240110", "20240101", -8, true},
		{"20240101", "00000000", 0, false},
		{"bogus", "20240101", 0, false},
	}
	for _, tt := range tests {
		got, ok := StayDays(tt.adm, tt.dis)
		if ok != tt.ok || got != tt.want {
			t.Errorf("StayDays(%s, %s) = %d, %v; want %d, %v", tt.adm, tt.dis, got, ok, tt.want, tt.ok)
		}
	}
}

func TestStayDaysEveryOffset(t *testing.T) {
	start, _ := ParseDate("20240125")
	for d := 0; d < 60; d++ {
		dis := start.AddDate(0, 0, d).Format(dateLayout)
		got, ok := StayDays("20240125", dis)
		if !ok || got != d+1 {
			t.Fatalf("offset %d: got %d, %v", d, got, ok)
		}
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   string
		f    model.DateFormat
		want string
	}{
		{"20240105", model.DateCompact, "20240105"},
		{"20240105", model.DateSlashed, "2024/01/05"},
		{"20241231", model.DateSlashed, "2024/12/31"},
		{model.SentinelDate, model.DateSlashed, model.SentinelDate},
		{"garbage", model.DateSlashed, "garbage"},
	}
	for _, tt := range tests {
		if got := FormatDate(tt.in, tt.f); got != tt.want {
			t.Errorf("FormatDate(%q, %s) = %q, want %q", tt.in, tt.f, got, tt.want)
		}
	}
}

func TestNormalizeCode(t *testing.T) {
	if got := NormalizeCode(" １５０２８５０１０ "); got != "150285010" {
		t.Errorf("got %q", got)
	}
	if got := NormalizeCode("   "); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}

func TestNormalizeName(t *testing.T) {
	got := NormalizeName("  内視鏡的大腸ポリープ　 切除術（長径２ｃｍ未満）")
	if strings.Contains(got, "　") || strings.HasPrefix(got, " ") {
		t.Errorf("whitespace not collapsed: %q", got)
	}
	if !strings.Contains(got, "2cm") {
		t.Errorf("full-width ASCII not folded: %q", got)
	}
}

func TestFileHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ef.txt")
	if err := os.WriteFile(path, []byte("abc"), 0644); err != nil {
		t.Fatal(err)
	}
	sum, size, err := FileHash(path)
	if err != nil {
		t.Fatalf("FileHash: %v", err)
	}
	if size != 3 {
		t.Errorf("size = %d", size)
	}
	if sum != "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad" {
		t.Errorf("sha = %s", sum)
	}
	if _, _, err := FileHash(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing file")
	}
}
