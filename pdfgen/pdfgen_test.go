package pdfgen

import (
	"bytes"
	"testing"
)

func TestGofpdfSizeStr(t *testing.T) {
	cases := map[PaperSize]string{
		Letter:          "Letter",
		Legal:           "Legal",
		A4:              "A4",
		PaperSize(""):   "Letter",
		PaperSize("xx"): "Letter",
	}
	for in, want := range cases {
		if got := gofpdfSizeStr(in); got != want {
			t.Errorf("gofpdfSizeStr(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFontStyle(t *testing.T) {
	cases := []struct {
		bold, italic bool
		want         string
	}{
		{false, false, ""},
		{true, false, "B"},
		{false, true, "I"},
		{true, true, "BI"},
	}
	for _, c := range cases {
		if got := fontStyle(c.bold, c.italic); got != c.want {
			t.Errorf("fontStyle(%v, %v) = %q, want %q", c.bold, c.italic, got, c.want)
		}
	}
}

func TestCoreFontNameAlwaysTimes(t *testing.T) {
	for _, face := range []string{"Times-Roman", "Times-Bold", "Helvetica", ""} {
		if got := coreFontName(face); got != "Times" {
			t.Errorf("coreFontName(%q) = %q, want Times", face, got)
		}
	}
}

func TestToRoman(t *testing.T) {
	cases := map[int]string{
		1:    "I",
		4:    "IV",
		9:    "IX",
		14:   "XIV",
		1994: "MCMXCIV",
		0:    "",
	}
	for in, want := range cases {
		if got := toRoman(in); got != want {
			t.Errorf("toRoman(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestToAlpha(t *testing.T) {
	cases := map[int]string{
		1:  "a",
		26: "z",
		27: "aa",
		52: "az",
		0:  "",
	}
	for in, want := range cases {
		if got := toAlpha(in); got != want {
			t.Errorf("toAlpha(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatPageNumber(t *testing.T) {
	if got := formatPageNumber(NumberNumeric, 3); got != "3" {
		t.Errorf("numeric: got %q", got)
	}
	if got := formatPageNumber(NumberRoman, 3); got != "III" {
		t.Errorf("roman: got %q", got)
	}
	if got := formatPageNumber(NumberAlpha, 3); got != "c" {
		t.Errorf("alpha: got %q", got)
	}
}

func TestGeneratorStartAndFinalizeIsIdempotent(t *testing.T) {
	g := NewGenerator(Metadata{Title: "Test Document"}, Letter)
	if err := g.Start(72, 72, 72, 72, 12, "Times-Roman"); err != nil {
		t.Fatalf("Start: %v", err)
	}

	g.WriteText("Hello, world.", 400, 14, WriteOptions{})

	var buf1, buf2 bytes.Buffer
	if err := g.Finalize(&buf1); err != nil {
		t.Fatalf("first Finalize: %v", err)
	}
	if err := g.Finalize(&buf2); err != nil {
		t.Fatalf("second Finalize should be a no-op, got error: %v", err)
	}
	if buf2.Len() != 0 {
		t.Fatalf("second Finalize wrote %d bytes, want 0 (idempotent)", buf2.Len())
	}
	if buf1.Len() == 0 {
		t.Fatal("first Finalize produced no output")
	}
}

func TestFinalizeWithoutStartIsNoOp(t *testing.T) {
	g := NewGenerator(Metadata{}, Letter)
	var buf bytes.Buffer
	if err := g.Finalize(&buf); err != nil {
		t.Fatalf("Finalize without Start should be a no-op, got error: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %d bytes", buf.Len())
	}
}
