// Package signature extracts structured multi-party signature-block
// metadata from sentinel markers embedded in document source text.
package signature

import (
	"regexp"
	"strings"
)

// MarkerKind distinguishes the three sentinel marker forms.
type MarkerKind string

const (
	KindSignature MarkerKind = "signature"
	KindInitial   MarkerKind = "initial"
	KindNotary    MarkerKind = "notary"
)

// Marker is a single recognized (or attempted) sentinel occurrence.
type Marker struct {
	Kind       MarkerKind
	ID         string
	FullMarker string
	StartIndex int
	EndIndex int
}

// LineType distinguishes whether a party line belongs to a signature or
// initials block.
type LineType string

const (
	LineSignature LineType = "signature"
	LineInitial   LineType = "initial"
)

// Party holds the role/name/title/company/date (and, for notary blocks,
// acknowledgment) fields extracted for one signer.
type Party struct {
	Role    string
	Name    string
	Title   string
	Company string
	Date    string

	LineType LineType

	NotaryCounty      string
	NotaryState       string
	CommissionExpires string
	CommissionNumber  string
}

// Layout is single-column or side-by-side.
type Layout string

const (
	LayoutSingle      Layout = "single"
	LayoutSideBySide  Layout = "side-by-side"
)

// BlockData is the fully parsed structure for one marker.
type BlockData struct {
	Marker          Marker
	Layout          Layout
	Parties         []Party
	NotaryRequired  bool

	// StartLine/EndLine (0-based, end exclusive) is the run of source
	// lines this block consumed, so callers building a page-layout
	// block stream can skip the raw party/field text where a rendered
	// signature block takes its place instead.
	StartLine, EndLine int
}

// ParsedDocument is the result of parsing an entire document's source
// text for signature markers.
type ParsedDocument struct {
	ContentLines    []string
	SignatureBlocks []BlockData
	HasSignatures   bool
}

var (
	markerRe = regexp.MustCompile(`\[(SIGNATURE_BLOCK|INITIALS_BLOCK|NOTARY_BLOCK):([a-zA-Z0-9_-]+)\]`)
	idRe     = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)
	roleLineRe = regexp.MustCompile(`^[A-Z][A-Z \-]{1,}:$`)
)

func kindForTag(tag string) MarkerKind {
	switch tag {
	case "SIGNATURE_BLOCK":
		return KindSignature
	case "INITIALS_BLOCK":
		return KindInitial
	case "NOTARY_BLOCK":
		return KindNotary
	default:
		return ""
	}
}

// findMarkers scans text for every sentinel occurrence, dropping any
// whose id fails ^[a-z][a-z0-9-]*$ validation.
func findMarkers(text string) []Marker {
	var markers []Marker
	for _, m := range markerRe.FindAllStringSubmatchIndex(text, -1) {
		full := text[m[0]:m[1]]
		tag := text[m[2]:m[3]]
		id := text[m[4]:m[5]]

		if !idRe.MatchString(id) {
			continue
		}

		markers = append(markers, Marker{
			Kind:       kindForTag(tag),
			ID:         id,
			FullMarker: full,
			StartIndex: m[0],
			EndIndex:   m[1],
		})
	}
	return markers
}

// ParseDocument implements §4.3: find markers, remove marker text from
// the content lines, and extract structured party data for each
// retained marker.
func ParseDocument(text string) ParsedDocument {
	markers := findMarkers(text)

	content := stripMarkers(text, markers)

	var blocks []BlockData
	lines := strings.Split(text, "\n")
	for _, m := range markers {
		block := extractBlock(lines, lineIndexOf(text, m.StartIndex), m)
		blocks = append(blocks, block)
	}

	return ParsedDocument{
		ContentLines:    content,
		SignatureBlocks: blocks,
		HasSignatures:   len(blocks) > 0,
	}
}

// stripMarkers removes marker substrings from the text and drops any
// line that, once markers are cut out, is empty AND contained at least
// one marker (a line consisting solely of one or more markers). A line
// that was already blank before marker removal is preserved. Every
// remaining line has trailing whitespace trimmed, per the
// marker-preservation property (§8.1).
func stripMarkers(text string, markers []Marker) []string {
	if len(markers) == 0 {
		return splitPreserveLines(text)
	}

	hadMarker := make([]bool, strings.Count(text, "\n")+1)
	for _, m := range markers {
		hadMarker[lineIndexOf(text, m.StartIndex)] = true
	}

	var b strings.Builder
	last := 0
	for _, m := range markers {
		b.WriteString(text[last:m.StartIndex])
		last = m.EndIndex
	}
	b.WriteString(text[last:])

	lines := strings.Split(b.String(), "\n")
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		trimmed := strings.TrimRight(line, " \t")
		if trimmed == "" && i < len(hadMarker) && hadMarker[i] {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

func splitPreserveLines(text string) []string {
	lines := strings.Split(text, "\n")
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = strings.TrimRight(l, " \t")
	}
	return out
}

func lineIndexOf(text string, byteOffset int) int {
	return strings.Count(text[:byteOffset], "\n")
}

// fieldSynonyms maps a lower-cased field key to the Party field it
// populates.
var fieldSynonyms = map[string]string{
	"by":            "name",
	"printed name":  "name",
	"name":          "name",
	"title":         "title",
	"company":       "company",
	"firm":          "company",
	"date":          "date",
}

var fieldLineRe = regexp.MustCompile(`^\s*([A-Za-z][A-Za-z ]*?)\s*:\s*(.*)$`)

// extractBlock walks forward from the marker's line until a terminator
// (blank line following at least one party line, or a section header)
// and builds the BlockData.
func extractBlock(lines []string, startLine int, marker Marker) BlockData {
	var parties []Party
	var current *Party
	sawPartyLine := false
	layout := LayoutSingle
	leftIdx, rightIdx := -1, -1

	lineType := LineSignature
	if marker.Kind == KindInitial {
		lineType = LineInitial
	}

	endLine := startLine + 1

	for i := startLine; i < len(lines); i++ {
		line := lines[i]
		stripped := stripMarkerText(line, marker)

		if strings.TrimSpace(stripped) == "" {
			if sawPartyLine {
				break
			}
			endLine = i + 1
			continue
		}

		if isSectionHeader(stripped) && sawPartyLine {
			break
		}

		endLine = i + 1

		if isSideBySideLine(stripped) {
			layout = LayoutSideBySide
			left, right := splitSideBySide(stripped)
			leftRole := roleFromSegment(left)
			rightRole := roleFromSegment(right)
			if leftRole != "" {
				parties = append(parties, Party{Role: leftRole, LineType: lineType})
				leftIdx = len(parties) - 1
				current = &parties[leftIdx]
				sawPartyLine = true
			}
			if rightRole != "" {
				parties = append(parties, Party{Role: rightRole, LineType: lineType})
				rightIdx = len(parties) - 1
				current = &parties[rightIdx]
				sawPartyLine = true
			}
			continue
		}

		if layout == LayoutSideBySide && leftIdx >= 0 && rightIdx >= 0 {
			if left, right, ok := splitFieldColumns(stripped); ok {
				lm := fieldLineRe.FindStringSubmatch(left)
				rm := fieldLineRe.FindStringSubmatch(right)
				if lm != nil && rm != nil {
					applyFieldValue(&parties[leftIdx], marker, strings.ToLower(strings.TrimSpace(lm[1])), strings.TrimSpace(lm[2]))
					applyFieldValue(&parties[rightIdx], marker, strings.ToLower(strings.TrimSpace(rm[1])), strings.TrimSpace(rm[2]))
					sawPartyLine = true
					continue
				}
			}
		}

		if roleLineRe.MatchString(strings.TrimSpace(stripped)) {
			role := strings.TrimSuffix(strings.TrimSpace(stripped), ":")
			parties = append(parties, Party{Role: role, LineType: lineType})
			current = &parties[len(parties)-1]
			sawPartyLine = true
			continue
		}

		if m := fieldLineRe.FindStringSubmatch(stripped); m != nil {
			key := strings.ToLower(strings.TrimSpace(m[1]))
			value := strings.TrimSpace(m[2])

			if current == nil {
				parties = append(parties, Party{LineType: lineType})
				current = &parties[len(parties)-1]
			}
			if applyFieldValue(current, marker, key, value) {
				sawPartyLine = true
				continue
			}
		}

		// Unrecognized prose line between party/field lines: left
		// alone, it's part of contentLines already; here it simply
		// doesn't advance any party state.
	}

	data := BlockData{
		Marker:         marker,
		Layout:         layout,
		Parties:        parties,
		NotaryRequired: marker.Kind == KindNotary,
		StartLine:      startLine,
		EndLine:        endLine,
	}

	return data
}

func stripMarkerText(line string, marker Marker) string {
	return strings.ReplaceAll(line, marker.FullMarker, "")
}

func setField(p *Party, field, value string) {
	switch field {
	case "name":
		p.Name = value
	case "title":
		p.Title = value
	case "company":
		p.Company = value
	case "date":
		p.Date = value
	}
}

// applyFieldValue stores key/value onto p, checking the notary-specific
// keys first (when marker is a notary block) and falling back to the
// general fieldSynonyms table. Reports whether key was recognized.
func applyFieldValue(p *Party, marker Marker, key, value string) bool {
	if marker.Kind == KindNotary {
		switch {
		case strings.HasPrefix(key, "state of"):
			p.NotaryState = value
			return true
		case strings.HasPrefix(key, "county of"):
			p.NotaryCounty = value
			return true
		case key == "notary public":
			p.Name = value
			return true
		case strings.HasPrefix(key, "my commission expires"):
			p.CommissionExpires = value
			return true
		case strings.HasPrefix(key, "commission #") || key == "commission number":
			p.CommissionNumber = value
			return true
		}
	}

	if field, ok := fieldSynonyms[key]; ok {
		setField(p, field, value)
		return true
	}
	return false
}

// isSectionHeader reports whether line ends with ':' and is not itself
// a recognized signature-field label (role line or field line).
func isSectionHeader(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.HasSuffix(trimmed, ":") {
		return false
	}
	if roleLineRe.MatchString(trimmed) {
		return false
	}
	key := strings.ToLower(strings.TrimSuffix(trimmed, ":"))
	if _, ok := fieldSynonyms[key]; ok {
		return false
	}
	return true
}

// isSideBySideLine reports whether line contains a tab, or two-or-more
// consecutive spaces, separating two recognizable role tokens.
func isSideBySideLine(line string) bool {
	var sep *regexp.Regexp
	if strings.Contains(line, "\t") {
		sep = regexp.MustCompile(`\t+`)
	} else {
		sep = regexp.MustCompile(` {2,}`)
	}

	parts := sep.Split(line, 2)
	if len(parts) != 2 {
		return false
	}

	return roleFromSegment(parts[0]) != "" && roleFromSegment(parts[1]) != ""
}

func splitSideBySide(line string) (left, right string) {
	var sep *regexp.Regexp
	if strings.Contains(line, "\t") {
		sep = regexp.MustCompile(`\t+`)
	} else {
		sep = regexp.MustCompile(` {2,}`)
	}
	parts := sep.Split(line, 2)
	if len(parts) != 2 {
		return line, ""
	}
	return parts[0], parts[1]
}

// splitFieldColumns splits a side-by-side field line (e.g. "Name: John
// \t\tName: Jane") into its left and right column text, using the same
// tab-or-2+-spaces separator as splitSideBySide/isSideBySideLine.
func splitFieldColumns(line string) (left, right string, ok bool) {
	var sep *regexp.Regexp
	if strings.Contains(line, "\t") {
		sep = regexp.MustCompile(`\t+`)
	} else {
		sep = regexp.MustCompile(` {2,}`)
	}
	parts := sep.Split(line, 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
}

var bareRoleRe = regexp.MustCompile(`^[A-Z][A-Z \-]{1,}:?$`)

func roleFromSegment(segment string) string {
	trimmed := strings.TrimSpace(segment)
	if !bareRoleRe.MatchString(trimmed) {
		return ""
	}
	return strings.TrimSuffix(trimmed, ":")
}

// LayoutAnalysis is the geometry helper result used during pagination
// and rendering.
type LayoutAnalysis struct {
	Columns     int
	ColumnWidth float64
	Spacing     float64
	Alignment   string
}

const usableSignatureWidth = 468 // 612 - 72 - 72

// AnalyzeLayout returns the column geometry for a block, per §4.3.
func AnalyzeLayout(block BlockData) LayoutAnalysis {
	if block.Layout == LayoutSideBySide {
		spacing := 50.0
		return LayoutAnalysis{
			Columns:     2,
			ColumnWidth: (usableSignatureWidth - spacing) / 2,
			Spacing:     spacing,
			Alignment:   "left",
		}
	}
	return LayoutAnalysis{
		Columns:     1,
		ColumnWidth: usableSignatureWidth,
		Spacing:     0,
		Alignment:   "left",
	}
}

const (
	heightSignatureLine = 30
	heightFieldLine     = 20
	heightPadding       = 20
	heightNotaryText       = 80
	heightNotarySignature  = 30
	heightNotaryCommission = 40
	heightNotarySeal       = 20
)

// partyRowHeight sums the present-field heights for one party: the
// signature/initial line plus 20pt per present field, plus 20pt
// padding.
func partyRowHeight(p Party) float64 {
	h := float64(heightSignatureLine + heightPadding)
	if p.Name != "" {
		h += heightFieldLine
	}
	if p.Title != "" {
		h += heightFieldLine
	}
	if p.Company != "" {
		h += heightFieldLine
	}
	if p.Date != "" {
		h += heightFieldLine
	}
	return h
}

// EstimateHeight implements the §4.3 height model: per-party field rows
// (halved and maxed for side-by-side columns), plus a fixed +170pt
// addition for notary blocks.
func EstimateHeight(block BlockData) float64 {
	var total float64
	if len(block.Parties) == 0 {
		total = heightPadding
	} else if block.Layout == LayoutSideBySide {
		// Side-by-side halves the per-party rows: use the taller column.
		var left, right float64
		for i, p := range block.Parties {
			if i%2 == 0 {
				left += partyRowHeight(p)
			} else {
				right += partyRowHeight(p)
			}
		}
		total = left
		if right > total {
			total = right
		}
	} else {
		for _, p := range block.Parties {
			total += partyRowHeight(p)
		}
	}

	if block.NotaryRequired {
		total += heightNotaryText + heightNotarySignature + heightNotaryCommission + heightNotarySeal
	}

	return total
}

// Group is a set of related blocks that belong together (e.g. a party's
// signature plus their notary acknowledgment).
type Group struct {
	Blocks []BlockData
}

// groupKey strips a trailing "-signature"/"-notary"/"-initial" suffix so
// that e.g. "assignor-signature" and "assignor-notary" share a key.
func groupKey(id string) string {
	for _, suffix := range []string{"-signature", "-notary", "-initial", "-initials"} {
		if strings.HasSuffix(id, suffix) {
			return strings.TrimSuffix(id, suffix)
		}
	}
	return id
}

// GroupRelatedBlocks groups blocks sharing an id prefix before
// "-signature"/"-notary", preserving first-seen order.
func GroupRelatedBlocks(blocks []BlockData) []Group {
	order := []string{}
	byKey := map[string][]BlockData{}

	for _, b := range blocks {
		key := groupKey(b.Marker.ID)
		if _, seen := byKey[key]; !seen {
			order = append(order, key)
		}
		byKey[key] = append(byKey[key], b)
	}

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		groups = append(groups, Group{Blocks: byKey[key]})
	}
	return groups
}

// Placement is the pagination hint strategy for one block.
type Placement struct {
	PreventBreak      bool
	PreferNewPage     bool
	MinSpaceRequired  float64
}

const placementBuffer = 50
const preferNewPageHeightThreshold = 200

// PlacementStrategy implements §4.3's placement policy.
func PlacementStrategy(block BlockData) Placement {
	height := EstimateHeight(block)

	return Placement{
		PreventBreak:     true,
		PreferNewPage:    block.NotaryRequired || height > preferNewPageHeightThreshold,
		MinSpaceRequired: height + placementBuffer,
	}
}

// ValidMarkerID reports whether id would have been accepted by
// ParseDocument, for callers/tests exercising §8.2 directly.
func ValidMarkerID(id string) bool {
	return idRe.MatchString(id)
}
