package signature

import (
	"strings"
	"testing"
)

func TestValidMarkerID(t *testing.T) {
	cases := map[string]bool{
		"assignor":          true,
		"assignor-1":        true,
		"a":                 true,
		"Assignor":          false,
		"1assignor":         false,
		"assignor_name":     false,
		"":                  false,
	}
	for id, want := range cases {
		if got := ValidMarkerID(id); got != want {
			t.Errorf("ValidMarkerID(%q) = %v, want %v", id, got, want)
		}
	}
}

func TestParseDocumentDropsInvalidMarkerIDsButKeepsText(t *testing.T) {
	text := "Intro line\n[SIGNATURE_BLOCK:Not_Valid]\nASSIGNOR:\nName: Jane Doe\n"
	doc := ParseDocument(text)
	if doc.HasSignatures {
		t.Fatalf("expected no recognized signature blocks, got %+v", doc.SignatureBlocks)
	}
	joined := strings.Join(doc.ContentLines, "\n")
	if !strings.Contains(joined, "[SIGNATURE_BLOCK:Not_Valid]") {
		t.Fatal("expected invalid-id marker text to be preserved as literal content")
	}
}

func TestStripMarkersPreservesPreexistingBlankLines(t *testing.T) {
	text := "Paragraph one.\n\nParagraph two.\n"
	doc := ParseDocument(text)
	if len(doc.ContentLines) != 3 {
		t.Fatalf("expected 3 lines preserved, got %d: %+v", len(doc.ContentLines), doc.ContentLines)
	}
	if doc.ContentLines[1] != "" {
		t.Fatalf("expected middle line to remain blank, got %q", doc.ContentLines[1])
	}
}

func TestStripMarkersDropsMarkerOnlyLine(t *testing.T) {
	text := "Paragraph one.\n[SIGNATURE_BLOCK:assignor]\nASSIGNOR:\nName: Jane Doe\n"
	doc := ParseDocument(text)
	for _, line := range doc.ContentLines {
		if strings.Contains(line, "SIGNATURE_BLOCK") {
			t.Fatalf("marker text leaked into content lines: %q", line)
		}
	}
}

func TestExtractBlockSingleParty(t *testing.T) {
	text := "[SIGNATURE_BLOCK:assignor]\nASSIGNOR:\nName: Jane Doe\nTitle: CEO\nCompany: Acme Corp\n\nNext paragraph.\n"
	doc := ParseDocument(text)
	if len(doc.SignatureBlocks) != 1 {
		t.Fatalf("expected 1 signature block, got %d", len(doc.SignatureBlocks))
	}
	block := doc.SignatureBlocks[0]
	if block.Layout != LayoutSingle {
		t.Fatalf("expected single layout, got %v", block.Layout)
	}
	if len(block.Parties) != 1 {
		t.Fatalf("expected 1 party, got %d: %+v", len(block.Parties), block.Parties)
	}
	p := block.Parties[0]
	if p.Role != "ASSIGNOR" || p.Name != "Jane Doe" || p.Title != "CEO" || p.Company != "Acme Corp" {
		t.Fatalf("unexpected party data: %+v", p)
	}
}

func TestExtractBlockStopsAtSectionHeader(t *testing.T) {
	text := "[SIGNATURE_BLOCK:assignor]\nASSIGNOR:\nName: Jane Doe\nMiscellaneous Provisions:\nSome unrelated text.\n"
	doc := ParseDocument(text)
	block := doc.SignatureBlocks[0]
	if block.EndLine > 3 {
		t.Fatalf("expected block to stop before Miscellaneous Provisions, got EndLine=%d", block.EndLine)
	}
}

func TestExtractBlockSideBySide(t *testing.T) {
	text := "[SIGNATURE_BLOCK:parties]\nASSIGNOR\t\tASSIGNEE\n"
	doc := ParseDocument(text)
	block := doc.SignatureBlocks[0]
	if block.Layout != LayoutSideBySide {
		t.Fatalf("expected side-by-side layout, got %v", block.Layout)
	}
	if len(block.Parties) != 2 {
		t.Fatalf("expected 2 parties, got %d: %+v", len(block.Parties), block.Parties)
	}
	if block.Parties[0].Role != "ASSIGNOR" || block.Parties[1].Role != "ASSIGNEE" {
		t.Fatalf("unexpected roles: %+v", block.Parties)
	}
}

func TestExtractBlockSideBySideSplitsFieldColumns(t *testing.T) {
	text := "[SIGNATURE_BLOCK:parties]\nASSIGNOR\t\tASSIGNEE\nName: John\t\tName: Jane\nTitle: Seller\t\tTitle: Buyer\n"
	doc := ParseDocument(text)
	block := doc.SignatureBlocks[0]
	if block.Layout != LayoutSideBySide {
		t.Fatalf("expected side-by-side layout, got %v", block.Layout)
	}
	if len(block.Parties) != 2 {
		t.Fatalf("expected 2 parties, got %d: %+v", len(block.Parties), block.Parties)
	}

	left, right := block.Parties[0], block.Parties[1]
	if left.Role != "ASSIGNOR" || left.Name != "John" || left.Title != "Seller" {
		t.Fatalf("unexpected left party: %+v", left)
	}
	if right.Role != "ASSIGNEE" || right.Name != "Jane" || right.Title != "Buyer" {
		t.Fatalf("unexpected right party: %+v", right)
	}
}

func TestNotaryBlockHeightMatchesFixedBudget(t *testing.T) {
	text := "[NOTARY_BLOCK:notary]\nState of: California\nCounty of: Los Angeles\nNotary Public: John Smith\n"
	doc := ParseDocument(text)
	block := doc.SignatureBlocks[0]
	if !block.NotaryRequired {
		t.Fatal("expected NotaryRequired to be true")
	}

	// One party with only a name field: 30 (line) + 20 (name) + 20
	// (padding) = 70, plus the fixed 170pt notary addition = 240.
	got := EstimateHeight(block)
	if got != 240 {
		t.Fatalf("EstimateHeight = %v, want 240", got)
	}
}

func TestGroupRelatedBlocksSharesKeyAcrossSuffixes(t *testing.T) {
	blocks := []BlockData{
		{Marker: Marker{ID: "assignor-signature"}},
		{Marker: Marker{ID: "assignor-notary"}},
		{Marker: Marker{ID: "assignee-signature"}},
	}
	groups := GroupRelatedBlocks(blocks)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d: %+v", len(groups), groups)
	}
	if len(groups[0].Blocks) != 2 {
		t.Fatalf("expected first group to have 2 blocks, got %d", len(groups[0].Blocks))
	}
}

func TestPlacementStrategyPreventsBreakAlways(t *testing.T) {
	block := BlockData{Parties: []Party{{Role: "ASSIGNOR", Name: "Jane Doe"}}}
	p := PlacementStrategy(block)
	if !p.PreventBreak {
		t.Fatal("expected PreventBreak to always be true")
	}
}

func TestPlacementStrategyPrefersNewPageForNotary(t *testing.T) {
	block := BlockData{NotaryRequired: true, Parties: []Party{{Role: "ASSIGNOR"}}}
	p := PlacementStrategy(block)
	if !p.PreferNewPage {
		t.Fatal("expected PreferNewPage for a notary block")
	}
}
