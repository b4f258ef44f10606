// Package pdfexport is the export orchestrator: it ties markdown
// classification, signature-block extraction, pagination and PDF
// generation together into a single Export/ExportToBuffer call, the
// way ddc.Builder.Write ties gofpdf and pdfcpu together behind one
// entrypoint.
package pdfexport

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"legaldocpdf/layout"
	"legaldocpdf/markdown"
	"legaldocpdf/pdfgen"
	"legaldocpdf/rules"
	"legaldocpdf/sink"
)

// Export renders text into a PDF document per opts and writes it to
// dest.
func Export(text string, opts Options, dest sink.Sink) (PDFExportResult, error) {
	reporter := opts.reporter()
	began := time.Now()
	reporter.Start("pdf-export")

	result, err := runExport(text, opts, dest, reporter)
	if err != nil {
		reporter.Fail(err)
		opts.Metrics.observeFailure()
		return result, err
	}

	reporter.Complete()
	opts.Metrics.observeSuccess(time.Since(began).Seconds(), result.PageCount)
	return result, nil
}

// ExportToBuffer renders text into a PDF document per opts and returns
// the bytes directly, for callers with no Sink of their own.
func ExportToBuffer(text string, opts Options) (PDFExportResult, error) {
	buf := sink.NewBufferSink()
	return Export(text, opts, buf)
}

func runExport(text string, opts Options, dest sink.Sink, reporter Reporter) (PDFExportResult, error) {
	var result PDFExportResult

	if strings.TrimSpace(text) == "" {
		return result, newErr(KindInvalidInput, "validate-input", fmt.Errorf("document text is empty"))
	}
	reporter.Report("validating input")

	fr := rules.NewResolver(opts.Config).RulesFor(opts.DocumentType)
	reporter.Report("resolving formatting rules", string(opts.DocumentType))

	blocks, parsed, err := buildBlocks(text, fr)
	if err != nil {
		return result, newErr(KindParseError, "build-blocks", err)
	}
	reporter.Report("parsing signature markers", fmt.Sprintf("%d block(s)", len(parsed.SignatureBlocks)))
	reporter.Report("building content blocks", fmt.Sprintf("%d block(s)", len(blocks)))

	gen := pdfgen.NewGenerator(pdfgen.Metadata{
		Title:   opts.Title,
		Author:  opts.Author,
		Subject: opts.Subject,
	}, paperOrDefault(opts.Paper))

	margins := rules.MarginsForPage(fr, 1)
	if err := gen.Start(margins.Top, margins.Bottom, margins.Left, margins.Right, fr.FontSize, fr.FontFace); err != nil {
		return result, newErr(KindGenerationFailure, "start-document", err)
	}

	measureBlocks(gen, blocks, fr)
	reporter.Report("measuring content")

	layoutResult := layout.Paginate(blocks, opts.DocumentType, fr)
	reporter.Report("paginating", fmt.Sprintf("%d page(s)", layoutResult.TotalPages))
	if layoutResult.HasOverflow {
		reporter.Report("layout overflow detected", "one or more unbreakable block groups exceed a full page")
	}

	if err := renderPages(gen, layoutResult, fr, opts, reporter); err != nil {
		return result, newErr(KindGenerationFailure, "render-pages", err)
	}

	gen.StampPageNumbers(opts.PageNumbers, func(p int) pdfgen.Position {
		return pageNumberPosition(fr, p)
	}, layoutResult.TotalPages)
	reporter.Report("stamping page numbers")

	var buf bytes.Buffer
	if err := gen.Finalize(&buf); err != nil {
		return result, newErr(KindOutputError, "finalize", err)
	}
	if err := gen.Error(); err != nil {
		return result, newErr(KindGenerationFailure, "gofpdf", err)
	}
	reporter.Report("finalizing pdf bytes", fmt.Sprintf("%d byte(s)", buf.Len()))

	finalBytes := buf.Bytes()
	if opts.Watermark != "" {
		stamped, err := applyWatermark(finalBytes, opts.Watermark)
		if err != nil {
			return result, newErr(KindOutputError, "watermark", err)
		}
		finalBytes = stamped
	}

	if err := validatePDF(finalBytes); err != nil {
		return result, newErr(KindOutputError, "validate-output", err)
	}
	reporter.Report("validating output")

	if err := dest.Write(finalBytes); err != nil {
		return result, newErr(KindOutputError, "write-sink", err)
	}
	if _, err := dest.End(); err != nil {
		return result, newErr(KindOutputError, "end-sink", err)
	}

	result = PDFExportResult{
		PageCount:   layoutResult.TotalPages,
		HasOverflow: layoutResult.HasOverflow,
		Bytes:       finalBytes,
	}
	return result, nil
}

func paperOrDefault(p pdfgen.PaperSize) pdfgen.PaperSize {
	if p == "" {
		return pdfgen.Letter
	}
	return p
}

// renderPages walks every paginated page, applying that page's margins
// and (for office-action-response page 1) header, then draws its
// blocks in order, reporting progress once per page per §4.7 step 8.
func renderPages(gen *pdfgen.Generator, result layout.Result, fr rules.FormattingRules, opts Options, reporter Reporter) error {
	total := len(result.Pages)
	for idx, page := range result.Pages {
		if idx > 0 {
			gen.NewPage()
		}

		margins := rules.MarginsForPage(fr, page.PageNumber)
		gen.SetPageMargins(margins.Top, margins.Bottom, margins.Left, margins.Right)

		area := rules.UsablePageArea(fr, page.PageNumber)

		if rules.NeedsHeaderSpace(fr, opts.DocumentType, page.PageNumber) {
			if header := rules.HeaderContent(opts.DocumentType, opts.HeaderMetadata); header != "" {
				gen.WriteParagraph(header, area.Width, 14)
			}
		}

		for _, b := range page.Blocks {
			renderBlock(gen, b, fr, margins.Left, area.Width)
		}

		if err := gen.Error(); err != nil {
			return err
		}

		reporter.Report(fmt.Sprintf("Rendering page %d of %d", idx+1, total))
	}
	return nil
}

const pageNumberWidth = 80

func pageNumberPosition(fr rules.FormattingRules, page int) pdfgen.Position {
	margins := rules.MarginsForPage(fr, page)
	y := rules.PageGeometry.Height - margins.Bottom + 20

	switch fr.PageNumberPosition {
	case rules.BottomRight:
		return pdfgen.Position{X: rules.PageGeometry.Width - margins.Right - pageNumberWidth, Y: y}
	case rules.BottomLeft:
		return pdfgen.Position{X: margins.Left, Y: y}
	case rules.BottomCenter:
		fallthrough
	default:
		return pdfgen.Position{X: (rules.PageGeometry.Width - pageNumberWidth) / 2, Y: y}
	}
}

// measureBlocks re-derives each text-bearing block's EstimatedHeight
// from the active font's real wrapped-line count via the generator
// that will go on to render the document, rather than assuming every
// block is exactly one line tall.
func measureBlocks(gen *pdfgen.Generator, blocks []layout.Block, fr rules.FormattingRules) {
	area := rules.UsablePageArea(fr, 1)

	for i := range blocks {
		b := &blocks[i]
		switch b.Type {
		case layout.BlockText:
			lineHeight := rules.ComputeLineHeight(fr.FontSize, fr.LineSpacing)
			n := gen.MeasureWrappedLineCount(b.Content, area.Width)
			b.EstimatedHeight = lineHeight * float64(n)

		case layout.BlockHeading:
			size := markdown.HeadingFontSize(b.HeadingLevel)
			lineHeight := rules.ComputeLineHeight(size, rules.SpacingSingle)
			n := gen.MeasureWrappedLineCount(b.Content, area.Width)
			b.EstimatedHeight = lineHeight*float64(n) + rules.ElementSpacing(fr, rules.ElementSection)

		case layout.BlockListItem:
			lineHeight := rules.ComputeLineHeight(fr.FontSize, fr.LineSpacing)
			n := gen.MeasureWrappedLineCount(b.Content, area.Width-listIndent)
			b.EstimatedHeight = lineHeight*float64(n) + rules.ElementSpacing(fr, rules.ElementList)

		case layout.BlockQuote:
			lineHeight := rules.ComputeLineHeight(fr.FontSize, fr.LineSpacing)
			n := gen.MeasureWrappedLineCount(b.Content, area.Width-blockQuoteIndent)
			b.EstimatedHeight = lineHeight * float64(n)
		}
	}
}
