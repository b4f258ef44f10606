// Package rules resolves per-document-type typographic rules: margins,
// line spacing, font sizing, indentation and page-number placement.
package rules

import (
	"fmt"
	"sort"
	"strings"
	"time"

	cache "github.com/patrickmn/go-cache"
)

// DocumentType identifies a legal document class. It is a closed set;
// unrecognized values resolve to DefaultRules.
type DocumentType string

const (
	ProvisionalPatentApplication DocumentType = "provisional-patent-application"
	TrademarkApplication        DocumentType = "trademark-application"
	OfficeActionResponse        DocumentType = "office-action-response"
	NDAIPSpecific                DocumentType = "nda-ip-specific"
	PatentAssignmentAgreement   DocumentType = "patent-assignment-agreement"
	PatentLicenseAgreement      DocumentType = "patent-license-agreement"
	TechnologyTransferAgreement DocumentType = "technology-transfer-agreement"
	CeaseAndDesistLetter        DocumentType = "cease-and-desist-letter"
)

// LineSpacing is one of the three recognized spacing modes.
type LineSpacing string

const (
	SpacingSingle   LineSpacing = "single"
	SpacingOneHalf  LineSpacing = "one-half"
	SpacingDouble   LineSpacing = "double"
)

// PageNumberPosition is where the page number is stamped.
type PageNumberPosition string

const (
	BottomCenter PageNumberPosition = "bottom-center"
	BottomRight  PageNumberPosition = "bottom-right"
	BottomLeft   PageNumberPosition = "bottom-left"
)

// ElementKind is used by ElementSpacing to select a paragraph-spacing
// multiplier.
type ElementKind string

const (
	ElementParagraph ElementKind = "paragraph"
	ElementSection   ElementKind = "section"
	ElementTitle     ElementKind = "title"
	ElementList      ElementKind = "list"
)

// Margins are expressed in points.
type Margins struct {
	Top, Bottom, Left, Right float64
}

// Dimensions are expressed in points.
type Dimensions struct {
	Width, Height float64
}

// PageGeometry is the Letter page size this module always targets for
// the margin/layout math (§3). The PDF Generator maps this onto the
// caller-selected paper size for actual rendering.
var PageGeometry = Dimensions{Width: 612, Height: 792}

// FormattingRules is the fully-resolved, immutable rule set for one
// document type.
type FormattingRules struct {
	LineSpacing          LineSpacing
	FontSize             float64
	FontFace             string
	Margins              Margins
	PageNumberPosition   PageNumberPosition
	TitleCase            bool
	SectionNumbering     bool
	ParagraphIndent      float64
	ParagraphSpacing     float64
	BlockQuoteIndent     float64
	SignatureLineSpacing LineSpacing

	// FirstPageMargins, if non-nil, overrides Margins on page 1 only.
	// Only office-action-response sets this (1.5in / 108pt top margin).
	FirstPageMargins *Margins
}

// PartialFormattingRules allows a caller to override a subset of fields
// for one document type; nil fields fall back to the built-in default
// for that type.
type PartialFormattingRules struct {
	LineSpacing          *LineSpacing
	FontSize             *float64
	FontFace             *string
	Margins              *Margins
	PageNumberPosition   *PageNumberPosition
	TitleCase            *bool
	SectionNumbering     *bool
	ParagraphIndent      *float64
	ParagraphSpacing     *float64
	BlockQuoteIndent     *float64
	SignatureLineSpacing *LineSpacing
}

// Config maps document types to their override set. Constructed by the
// caller at startup; never a process-wide global (see Design Notes).
type Config struct {
	Overrides map[DocumentType]PartialFormattingRules
}

const defaultParagraphSpacing = 12

func defaultMargins() Margins {
	return Margins{Top: 72, Bottom: 72, Left: 72, Right: 72}
}

// DefaultRules is what unknown document types resolve to: double
// spacing, 12pt Times-Roman, 72pt margins on all sides, bottom-center
// page numbers.
func DefaultRules() FormattingRules {
	return FormattingRules{
		LineSpacing:          SpacingDouble,
		FontSize:             12,
		FontFace:             "Times-Roman",
		Margins:              defaultMargins(),
		PageNumberPosition:   BottomCenter,
		TitleCase:            false,
		SectionNumbering:     false,
		ParagraphIndent:      0,
		ParagraphSpacing:     defaultParagraphSpacing,
		BlockQuoteIndent:     36,
		SignatureLineSpacing: SpacingSingle,
	}
}

func builtinTable() map[DocumentType]FormattingRules {
	base := func() FormattingRules { return DefaultRules() }

	oar := base()
	oar.PageNumberPosition = BottomRight
	oar.ParagraphIndent = 0
	oar.SectionNumbering = true
	oar.TitleCase = true
	oar.FirstPageMargins = &Margins{Top: 108, Bottom: 72, Left: 72, Right: 72}

	ppa := base()
	ppa.ParagraphIndent = 36
	ppa.SectionNumbering = true
	ppa.TitleCase = true

	trademark := base()
	trademark.LineSpacing = SpacingSingle
	trademark.TitleCase = false
	trademark.SectionNumbering = false
	trademark.ParagraphIndent = 0

	paa := base()
	paa.LineSpacing = SpacingOneHalf
	paa.ParagraphIndent = 36
	paa.SectionNumbering = true
	paa.TitleCase = true

	nda := base()
	nda.LineSpacing = SpacingSingle
	nda.PageNumberPosition = BottomRight
	nda.ParagraphIndent = 36
	nda.SectionNumbering = true
	nda.TitleCase = true

	pla := base()
	pla.LineSpacing = SpacingSingle
	pla.PageNumberPosition = BottomRight
	pla.ParagraphIndent = 36
	pla.SectionNumbering = true
	pla.TitleCase = true

	tta := base()
	tta.LineSpacing = SpacingSingle
	tta.PageNumberPosition = BottomRight
	tta.ParagraphIndent = 36
	tta.SectionNumbering = true
	tta.TitleCase = true

	cease := base()
	cease.LineSpacing = SpacingSingle
	cease.ParagraphIndent = 0
	cease.SectionNumbering = false
	cease.TitleCase = false

	return map[DocumentType]FormattingRules{
		ProvisionalPatentApplication: ppa,
		OfficeActionResponse:         oar,
		TrademarkApplication:         trademark,
		PatentAssignmentAgreement:    paa,
		NDAIPSpecific:                nda,
		PatentLicenseAgreement:       pla,
		TechnologyTransferAgreement:  tta,
		CeaseAndDesistLetter:         cease,
	}
}

// rulesFor is the pure, uncached lookup backing Resolver.RulesFor.
func rulesFor(cfg Config, docType DocumentType) FormattingRules {
	resolved, ok := builtinTable()[docType]
	if !ok {
		resolved = DefaultRules()
	}

	if override, ok := cfg.Overrides[docType]; ok {
		resolved = mergeOverrides(resolved, override)
	}

	return resolved
}

// mergeOverrides performs the shallow merge described in §4.1's
// "Configuration override" paragraph: every non-nil field in override
// replaces the corresponding field in base; everything else is
// preserved.
func mergeOverrides(base FormattingRules, override PartialFormattingRules) FormattingRules {
	if override.LineSpacing != nil {
		base.LineSpacing = *override.LineSpacing
	}
	if override.FontSize != nil {
		base.FontSize = *override.FontSize
	}
	if override.FontFace != nil {
		base.FontFace = *override.FontFace
	}
	if override.Margins != nil {
		base.Margins = *override.Margins
	}
	if override.PageNumberPosition != nil {
		base.PageNumberPosition = *override.PageNumberPosition
	}
	if override.TitleCase != nil {
		base.TitleCase = *override.TitleCase
	}
	if override.SectionNumbering != nil {
		base.SectionNumbering = *override.SectionNumbering
	}
	if override.ParagraphIndent != nil {
		base.ParagraphIndent = *override.ParagraphIndent
	}
	if override.ParagraphSpacing != nil {
		base.ParagraphSpacing = *override.ParagraphSpacing
	}
	if override.BlockQuoteIndent != nil {
		base.BlockQuoteIndent = *override.BlockQuoteIndent
	}
	if override.SignatureLineSpacing != nil {
		base.SignatureLineSpacing = *override.SignatureLineSpacing
	}
	return base
}

// LineSpacingPoints maps a spacing mode to the additional points added
// on top of the base line height.
func LineSpacingPoints(spacing LineSpacing) float64 {
	switch spacing {
	case SpacingSingle:
		return 0
	case SpacingOneHalf:
		return 6
	case SpacingDouble:
		return 12
	default:
		return 0
	}
}

// ComputeLineHeight implements §4.1: fontSize*1.2 + lineSpacingPoints(spacing).
func ComputeLineHeight(fontSize float64, spacing LineSpacing) float64 {
	// fontSize*6/5 rather than fontSize*1.2: 1.2 has no exact float64
	// form, and 12*1.2 rounds to 14.399999999999999 instead of 14.4.
	return fontSize*6/5 + LineSpacingPoints(spacing)
}

// ApplyLineSpacing returns the line height to use for a block of text,
// forcing single spacing in signature contexts regardless of the
// document's normal rule.
func ApplyLineSpacing(fr FormattingRules, isSignatureContext bool) float64 {
	spacing := fr.LineSpacing
	if isSignatureContext {
		spacing = SpacingSingle
	}
	return ComputeLineHeight(fr.FontSize, spacing)
}

// ElementSpacing applies the element-kind multiplier to the rule's base
// paragraph spacing.
func ElementSpacing(fr FormattingRules, element ElementKind) float64 {
	switch element {
	case ElementSection:
		return fr.ParagraphSpacing * 1.5
	case ElementTitle:
		return fr.ParagraphSpacing * 2
	case ElementList:
		return fr.ParagraphSpacing * 0.5
	case ElementParagraph:
		fallthrough
	default:
		return fr.ParagraphSpacing
	}
}

// MarginsForPage returns the margins active for pageNumber (1-based).
// Only office-action-response page 1 differs from the document's
// standard margins.
func MarginsForPage(fr FormattingRules, pageNumber int) Margins {
	if pageNumber == 1 && fr.FirstPageMargins != nil {
		return *fr.FirstPageMargins
	}
	return fr.Margins
}

// UsablePageArea derives the writable area for pageNumber from the
// Letter page geometry and the active margins.
func UsablePageArea(fr FormattingRules, pageNumber int) Dimensions {
	m := MarginsForPage(fr, pageNumber)
	return Dimensions{
		Width:  PageGeometry.Width - m.Left - m.Right,
		Height: PageGeometry.Height - m.Top - m.Bottom,
	}
}

// HeaderMetadata carries the fields an office-action-response header may
// render.
type HeaderMetadata struct {
	ApplicationNumber string
	ResponseDate      string
}

// NeedsHeaderSpace reports whether pageNumber reserves header space for
// docType. Only office-action-response page 1 currently does.
func NeedsHeaderSpace(fr FormattingRules, docType DocumentType, pageNumber int) bool {
	return docType == OfficeActionResponse && pageNumber == 1 && fr.FirstPageMargins != nil
}

// HeaderContent builds the header text for page 1 of an
// office-action-response, or "" if neither field is supplied (per
// Open Question 4: rendering it is left to the caller).
func HeaderContent(docType DocumentType, metadata HeaderMetadata) string {
	if docType != OfficeActionResponse {
		return ""
	}

	var parts []string
	if metadata.ApplicationNumber != "" {
		parts = append(parts, fmt.Sprintf("Application No. %s", metadata.ApplicationNumber))
	}
	if metadata.ResponseDate != "" {
		parts = append(parts, fmt.Sprintf("Response Date: %s", metadata.ResponseDate))
	}

	return strings.Join(parts, "\n")
}

// Resolver memoizes RulesFor results against a Config, following the
// teacher's rpcsrv/storage.go pattern of a short-TTL go-cache instance
// rather than an unbounded map: entries expire after resolverEntryTTL and
// are then resolved again.
type Resolver struct {
	cfg   Config
	cache *cache.Cache
}

const (
	resolverEntryTTL        = 10 * time.Minute
	resolverCleanupInterval = 15 * time.Minute
)

// NewResolver builds a Resolver bound to cfg. cfg is treated as
// immutable for the Resolver's lifetime (§5: "configuration store may be
// updated between exports but not during").
func NewResolver(cfg Config) *Resolver {
	return &Resolver{
		cfg:   cfg,
		cache: cache.New(resolverEntryTTL, resolverCleanupInterval),
	}
}

// RulesFor resolves docType to its FormattingRules, merging any
// configured override and memoizing the result.
func (r *Resolver) RulesFor(docType DocumentType) FormattingRules {
	key := string(docType)

	if cached, ok := r.cache.Get(key); ok {
		return cached.(FormattingRules)
	}

	resolved := rulesFor(r.cfg, docType)
	r.cache.Set(key, resolved, cache.DefaultExpiration)
	return resolved
}

// knownDocumentTypes is used only by tests to iterate the full table in
// a stable order.
func knownDocumentTypes() []DocumentType {
	table := builtinTable()
	out := make([]DocumentType, 0, len(table))
	for k := range table {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
