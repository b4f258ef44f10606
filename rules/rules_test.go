package rules

import "testing"

func TestDefaultRulesForUnknownType(t *testing.T) {
	fr := rulesFor(Config{}, DocumentType("not-a-real-type"))
	want := DefaultRules()
	if fr != want {
		t.Fatalf("got %+v, want %+v", fr, want)
	}
}

func TestBuiltinTableCoversEveryKnownType(t *testing.T) {
	table := builtinTable()
	for _, dt := range knownDocumentTypes() {
		if _, ok := table[dt]; !ok {
			t.Errorf("builtinTable missing entry for %s", dt)
		}
	}
}

func TestOfficeActionResponseFirstPageMargins(t *testing.T) {
	fr := rulesFor(Config{}, OfficeActionResponse)
	if fr.FirstPageMargins == nil {
		t.Fatal("expected FirstPageMargins to be set for office-action-response")
	}
	if fr.FirstPageMargins.Top != 108 {
		t.Fatalf("got top margin %v, want 108", fr.FirstPageMargins.Top)
	}

	m1 := MarginsForPage(fr, 1)
	if m1.Top != 108 {
		t.Fatalf("page 1 top margin = %v, want 108", m1.Top)
	}
	m2 := MarginsForPage(fr, 2)
	if m2.Top != 72 {
		t.Fatalf("page 2 top margin = %v, want 72", m2.Top)
	}
}

func TestMergeOverridesOnlyTouchesSetFields(t *testing.T) {
	base := rulesFor(Config{}, TrademarkApplication)
	size := 18.0
	cfg := Config{Overrides: map[DocumentType]PartialFormattingRules{
		TrademarkApplication: {FontSize: &size},
	}}

	merged := rulesFor(cfg, TrademarkApplication)
	if merged.FontSize != 18 {
		t.Fatalf("FontSize override not applied: got %v", merged.FontSize)
	}
	if merged.LineSpacing != base.LineSpacing {
		t.Fatalf("unrelated field changed: got %v, want %v", merged.LineSpacing, base.LineSpacing)
	}
}

func TestComputeLineHeight(t *testing.T) {
	cases := []struct {
		size    float64
		spacing LineSpacing
		want    float64
	}{
		{12, SpacingSingle, 14.4},
		{12, SpacingOneHalf, 20.4},
		{12, SpacingDouble, 26.4},
	}
	for _, c := range cases {
		got := ComputeLineHeight(c.size, c.spacing)
		if got != c.want {
			t.Errorf("ComputeLineHeight(%v, %v) = %v, want %v", c.size, c.spacing, got, c.want)
		}
	}
}

func TestApplyLineSpacingForcesSingleInSignatureContext(t *testing.T) {
	fr := DefaultRules()
	fr.LineSpacing = SpacingDouble

	normal := ApplyLineSpacing(fr, false)
	sig := ApplyLineSpacing(fr, true)

	if normal == sig {
		t.Fatal("expected signature-context line height to differ from normal")
	}
	if sig != ComputeLineHeight(fr.FontSize, SpacingSingle) {
		t.Fatalf("signature line height = %v, want single-spacing value", sig)
	}
}

func TestResolverMemoizesAcrossCalls(t *testing.T) {
	r := NewResolver(Config{})
	a := r.RulesFor(NDAIPSpecific)
	b := r.RulesFor(NDAIPSpecific)
	if a != b {
		t.Fatalf("expected memoized result to be identical: %+v vs %+v", a, b)
	}
}

func TestUsablePageAreaSubtractsMargins(t *testing.T) {
	fr := DefaultRules()
	area := UsablePageArea(fr, 1)
	if area.Width != PageGeometry.Width-fr.Margins.Left-fr.Margins.Right {
		t.Fatalf("unexpected usable width: %v", area.Width)
	}
}

func TestHeaderContentOnlyForOfficeActionResponse(t *testing.T) {
	meta := HeaderMetadata{ApplicationNumber: "12/345,678", ResponseDate: "2024-01-01"}
	if got := HeaderContent(TrademarkApplication, meta); got != "" {
		t.Fatalf("expected empty header for non-OAR type, got %q", got)
	}
	got := HeaderContent(OfficeActionResponse, meta)
	if got == "" {
		t.Fatal("expected non-empty header for office-action-response")
	}
}
