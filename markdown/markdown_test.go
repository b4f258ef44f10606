package markdown

import "testing"

func TestIsHeadingRejectsSevenOrMoreHashes(t *testing.T) {
	if !IsHeading("# Title") {
		t.Error("expected single-hash heading to be recognized")
	}
	if IsHeading("####### Too many") {
		t.Error("expected seven-hash line to be rejected")
	}
	if IsHeading("not a heading") {
		t.Error("expected plain text to be rejected")
	}
}

func TestParseHeadingLevel(t *testing.T) {
	info, ok := ParseHeading("### Section Three")
	if !ok {
		t.Fatal("expected heading to parse")
	}
	if info.Level != 3 {
		t.Errorf("got level %d, want 3", info.Level)
	}
	if info.Text != "Section Three" {
		t.Errorf("got text %q, want %q", info.Text, "Section Three")
	}
}

func TestHeadingFontSizeAndBold(t *testing.T) {
	cases := []struct {
		level    int
		size     float64
		wantBold bool
	}{
		{1, 16, true},
		{2, 14, true},
		{3, 12, true},
		{4, 12, false},
		{6, 12, false},
	}
	for _, c := range cases {
		if got := HeadingFontSize(c.level); got != c.size {
			t.Errorf("HeadingFontSize(%d) = %v, want %v", c.level, got, c.size)
		}
		if got := HeadingBold(c.level); got != c.wantBold {
			t.Errorf("HeadingBold(%d) = %v, want %v", c.level, got, c.wantBold)
		}
	}
}

func TestIsHorizontalRule(t *testing.T) {
	cases := map[string]bool{
		"---":     true,
		"***":     true,
		"___":     true,
		"- - -":   true,
		"--":      false,
		"-*-":     false,
		"regular": false,
	}
	for line, want := range cases {
		if got := IsHorizontalRule(line); got != want {
			t.Errorf("IsHorizontalRule(%q) = %v, want %v", line, got, want)
		}
	}
}

func TestParseListItemUnordered(t *testing.T) {
	item, ok := ParseListItem("- first item")
	if !ok {
		t.Fatal("expected unordered list item to parse")
	}
	if item.Kind != ListUnordered {
		t.Errorf("got kind %v, want unordered", item.Kind)
	}
	if item.PlainText != "first item" {
		t.Errorf("got plain text %q", item.PlainText)
	}
}

func TestParseListItemOrdered(t *testing.T) {
	item, ok := ParseListItem("2. second item")
	if !ok {
		t.Fatal("expected ordered list item to parse")
	}
	if item.Kind != ListOrdered {
		t.Errorf("got kind %v, want ordered", item.Kind)
	}
	if item.Marker != "2." {
		t.Errorf("got marker %q, want %q", item.Marker, "2.")
	}
}

func TestParseListItemIndentLevel(t *testing.T) {
	item, ok := ParseListItem("    - nested item")
	if !ok {
		t.Fatal("expected indented list item to parse")
	}
	if item.IndentLevel != 2 {
		t.Errorf("got indent level %d, want 2", item.IndentLevel)
	}
}

func TestParseBlockQuote(t *testing.T) {
	text, ok := ParseBlockQuote("> quoted text")
	if !ok {
		t.Fatal("expected block quote to parse")
	}
	if text != "quoted text" {
		t.Errorf("got %q, want %q", text, "quoted text")
	}

	if _, ok := ParseBlockQuote("not quoted"); ok {
		t.Error("expected non-quote line to fail")
	}
}

func TestParseInlineFormattingBoldItalic(t *testing.T) {
	segs := ParseInlineFormatting("Plain **bold** and *italic* and ***both***.")
	want := []InlineSegment{
		{Text: "Plain "},
		{Text: "bold", Bold: true},
		{Text: " and "},
		{Text: "italic", Italic: true},
		{Text: " and "},
		{Text: "both", Bold: true, Italic: true},
		{Text: "."},
	}
	if len(segs) != len(want) {
		t.Fatalf("got %d segments, want %d: %+v", len(segs), len(want), segs)
	}
	for i := range want {
		if segs[i] != want[i] {
			t.Errorf("segment %d = %+v, want %+v", i, segs[i], want[i])
		}
	}
}

func TestParseInlineFormattingUnclosedDelimiterFallsBackToPlain(t *testing.T) {
	segs := ParseInlineFormatting("this has an unclosed *asterisk")
	if len(segs) != 1 || segs[0].Text != "this has an unclosed *asterisk" {
		t.Fatalf("expected single plain segment, got %+v", segs)
	}
}

func TestParseInlineFormattingEmptyInput(t *testing.T) {
	segs := ParseInlineFormatting("")
	if len(segs) != 1 || segs[0].Text != "" {
		t.Fatalf("expected one empty segment, got %+v", segs)
	}
}

func TestStripInlineFormatting(t *testing.T) {
	got := StripInlineFormatting("Plain **bold** and *italic*")
	want := "Plain bold and italic"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExtractLinkText(t *testing.T) {
	got := ExtractLinkText("See [the agreement](https://example.com/doc) for details")
	want := "See the agreement for details"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTitleCase(t *testing.T) {
	got := TitleCase("office action response")
	want := "Office Action Response"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
