// Package pdfgen is the low-level PDF writer: page setup, font/size/
// position control, text writing, line drawing and page-number
// stamping, built over a single owning gofpdf.Fpdf value, the way the
// teacher's ddc.Builder owns one gofpdf.Fpdf.
package pdfgen

import (
	"fmt"
	"strings"

	"github.com/vsenko/gofpdf"
)

// PaperSize selects the page dimensions gofpdf uses.
type PaperSize string

const (
	Letter PaperSize = "letter"
	Legal  PaperSize = "legal"
	A4     PaperSize = "a4"
)

func gofpdfSizeStr(p PaperSize) string {
	switch p {
	case Legal:
		return "Legal"
	case A4:
		return "A4"
	case Letter:
		fallthrough
	default:
		return "Letter"
	}
}

// Metadata populates the PDF's document info dictionary.
type Metadata struct {
	Title    string
	Author   string
	Subject  string
	Keywords string
}

// Position is an (x, y) point in PDF points.
type Position struct {
	X, Y float64
}

// NumberFormat selects how page numbers are rendered.
type NumberFormat string

const (
	NumberNumeric NumberFormat = "numeric"
	NumberRoman   NumberFormat = "roman"
	NumberAlpha   NumberFormat = "alpha"
)

// PageNumberOptions configures the footer/header page-number stamp.
type PageNumberOptions struct {
	Enabled         bool
	Format          NumberFormat
	StartingNumber  int
	Prefix, Suffix  string
	Position        string // "LM"/"CM"/"RM"-style gofpdf alignment for bottom row
	FontFace        string
	FontSize        float64
}

// WriteOptions tweaks a single WriteText call.
type WriteOptions struct {
	Bold   bool
	Italic bool
	Align  string // gofpdf CellFormat alignment, default "LT"
}

// Generator is the single owning value for one PDF document's cursor
// state (x, y, currentPage) and underlying gofpdf.Fpdf.
type Generator struct {
	pdf   *gofpdf.Fpdf
	meta  Metadata
	paper PaperSize

	fontFace string
	fontSize float64

	marginLeft, marginRight, marginTop, marginBottom float64

	started   bool
	finalized bool
}

// NewGenerator constructs a Generator. Start must be called before any
// writes.
func NewGenerator(meta Metadata, paper PaperSize) *Generator {
	return &Generator{meta: meta, paper: paper, fontFace: "Times-Roman", fontSize: 12}
}

func coreFontName(face string) string {
	if strings.HasPrefix(face, "Times") {
		return "Times"
	}
	return "Times"
}

func fontStyle(bold, italic bool) string {
	style := ""
	if bold {
		style += "B"
	}
	if italic {
		style += "I"
	}
	return style
}

// Start opens the document, sets Letter/Legal/A4 page size, applies
// margins and default font, and writes the metadata dictionary.
func (g *Generator) Start(marginTop, marginBottom, marginLeft, marginRight, fontSize float64, fontFace string) error {
	g.pdf = gofpdf.New("P", "pt", gofpdfSizeStr(g.paper), "")
	g.pdf.SetTitle(g.meta.Title, true)
	g.pdf.SetAuthor(g.meta.Author, true)
	g.pdf.SetSubject(g.meta.Subject, true)
	g.pdf.SetKeywords(g.meta.Keywords, true)

	g.marginTop, g.marginBottom, g.marginLeft, g.marginRight = marginTop, marginBottom, marginLeft, marginRight
	g.fontFace, g.fontSize = fontFace, fontSize

	g.pdf.SetMargins(marginLeft, marginTop, marginRight)
	g.pdf.SetAutoPageBreak(false, marginBottom)
	g.pdf.SetFont(coreFontName(fontFace), "", fontSize)

	g.pdf.AddPage()

	g.started = true

	return g.pdf.Error()
}

// Finalize writes the accumulated document to w. It is idempotent and
// safe to call when Start was never called.
func (g *Generator) Finalize(w interface{ Write([]byte) (int, error) }) error {
	if !g.started || g.finalized {
		return nil
	}
	g.finalized = true
	return g.pdf.Output(w)
}

// NewPage starts a fresh page, advancing gofpdf's internal page
// counter.
func (g *Generator) NewPage() {
	g.pdf.AddPage()
}

// SetPageMargins overrides the margins for the page currently being
// written (§4.1's office-action-response first-page exception) and
// repositions the cursor at the new top margin.
func (g *Generator) SetPageMargins(top, bottom, left, right float64) {
	g.pdf.SetMargins(left, top, right)
	g.pdf.SetAutoPageBreak(false, bottom)
	g.pdf.SetXY(left, top)
}

// MoveTo repositions the writing cursor.
func (g *Generator) MoveTo(p Position) {
	g.pdf.SetXY(p.X, p.Y)
}

// GetCurrentX returns the cursor's current X position.
func (g *Generator) GetCurrentX() float64 { return g.pdf.GetX() }

// GetCurrentY returns the cursor's current Y position.
func (g *Generator) GetCurrentY() float64 { return g.pdf.GetY() }

// SetFont changes the active font face/style/size for subsequent
// writes.
func (g *Generator) SetFont(bold, italic bool, size float64) {
	g.pdf.SetFont(coreFontName(g.fontFace), fontStyle(bold, italic), size)
}

// WriteText writes a single line of text at the current cursor
// position, using the given width/height cell and options.
func (g *Generator) WriteText(text string, width, height float64, opts WriteOptions) {
	g.SetFont(opts.Bold, opts.Italic, g.fontSize)
	align := opts.Align
	if align == "" {
		align = "LT"
	}
	g.pdf.CellFormat(width, height, text, "", 1, align, false, 0, "")
}

// WriteParagraph wraps text over width using a MultiCell at the
// document's current font/size.
func (g *Generator) WriteParagraph(text string, width, lineHeight float64) {
	g.pdf.MultiCell(width, lineHeight, text, "", "LT", false)
}

// WriteHeading renders text at the heading font size/weight for level,
// per markdown.HeadingFontSize/HeadingBold.
func (g *Generator) WriteHeading(text string, level int, width, height float64, bold bool, size float64) {
	g.SetFont(bold, false, size)
	g.pdf.CellFormat(width, height, text, "", 1, "LT", false, 0, "")
	g.SetFont(false, false, g.fontSize)
}

// WriteTitle renders text uppercased, centered, at 14pt bold.
func (g *Generator) WriteTitle(text string, width, height float64) {
	g.SetFont(true, false, 14)
	g.pdf.CellFormat(width, height, strings.ToUpper(text), "", 1, "CT", false, 0, "")
	g.SetFont(false, false, g.fontSize)
}

// TextRun is one inline-formatted run within a line, the pdfgen-level
// mirror of markdown.InlineSegment (kept as a separate type so pdfgen
// has no dependency on the markdown package).
type TextRun struct {
	Text   string
	Bold   bool
	Italic bool
}

// WriteInlineRuns renders a sequence of runs left to right on the
// current line, switching font style per run via successive
// zero-height-advance CellFormat calls, then drops to the next line.
func (g *Generator) WriteInlineRuns(runs []TextRun, lineHeight float64) {
	startX := g.pdf.GetX()
	for _, r := range runs {
		g.SetFont(r.Bold, r.Italic, g.fontSize)
		w := g.pdf.GetStringWidth(r.Text)
		g.pdf.CellFormat(w, lineHeight, r.Text, "", 0, "LT", false, 0, "")
	}
	g.SetFont(false, false, g.fontSize)
	g.pdf.SetXY(startX, g.pdf.GetY()+lineHeight)
}

// AddSpace advances the cursor down by n line heights.
func (g *Generator) AddSpace(lines float64, lineHeight float64) {
	g.pdf.SetY(g.pdf.GetY() + lines*lineHeight)
}

// DrawLine draws a straight stroke between two points, used for
// signature lines and section rules.
func (g *Generator) DrawLine(x1, y1, x2, y2 float64) {
	g.pdf.Line(x1, y1, x2, y2)
}

// MeasureWrappedLineCount reports how many lines text would wrap to at
// width, using gofpdf's own splitter so the pagination pass sizes
// blocks against the active font's real metrics rather than a guess.
func (g *Generator) MeasureWrappedLineCount(text string, width float64) int {
	if text == "" {
		return 1
	}
	lines := g.pdf.SplitLines([]byte(text), width)
	if len(lines) == 0 {
		return 1
	}
	return len(lines)
}

// PageCount returns the number of pages written so far.
func (g *Generator) PageCount() int { return g.pdf.PageCount() }

// Error surfaces the first error gofpdf recorded internally, if any.
func (g *Generator) Error() error { return g.pdf.Error() }

// SetPage switches the active page for subsequent writes (used while
// stamping page numbers across all pages after the body is complete).
func (g *Generator) SetPage(pageNumber int) { g.pdf.SetPage(pageNumber) }

func formatPageNumber(format NumberFormat, n int) string {
	switch format {
	case NumberRoman:
		return toRoman(n)
	case NumberAlpha:
		return toAlpha(n)
	case NumberNumeric:
		fallthrough
	default:
		return fmt.Sprintf("%d", n)
	}
}

func toRoman(n int) string {
	if n <= 0 {
		return ""
	}
	vals := []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	syms := []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}
	var b strings.Builder
	for i, v := range vals {
		for n >= v {
			n -= v
			b.WriteString(syms[i])
		}
	}
	return b.String()
}

func toAlpha(n int) string {
	if n <= 0 {
		return ""
	}
	var b strings.Builder
	for n > 0 {
		n--
		b.WriteByte(byte('a' + n%26))
		n /= 26
	}
	runes := []byte(b.String())
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// StampPageNumbers iterates every page the document currently has and
// draws the configured page-number text at the rule-determined
// position, unless opts.Enabled is false.
func (g *Generator) StampPageNumbers(opts PageNumberOptions, positionFor func(pageNumber int) Position, totalPages int) {
	if !opts.Enabled {
		return
	}

	size := opts.FontSize
	if size == 0 {
		size = 10
	}

	for page := 1; page <= totalPages; page++ {
		g.pdf.SetPage(page)
		g.SetFont(false, false, size)

		text := opts.Prefix + formatPageNumber(opts.Format, opts.StartingNumber+page-1) + opts.Suffix
		pos := positionFor(page)
		g.pdf.SetXY(pos.X, pos.Y)
		g.pdf.CellFormat(100, size+2, text, "", 0, opts.Position, false, 0, "")
	}
}
