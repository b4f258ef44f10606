package pdfexport

import (
	"fmt"

	"legaldocpdf/layout"
	"legaldocpdf/markdown"
	"legaldocpdf/pdfgen"
	"legaldocpdf/rules"
	"legaldocpdf/signature"
)

func toRuns(segs []markdown.InlineSegment) []pdfgen.TextRun {
	runs := make([]pdfgen.TextRun, len(segs))
	for i, s := range segs {
		runs[i] = pdfgen.TextRun{Text: s.Text, Bold: s.Bold, Italic: s.Italic}
	}
	return runs
}

// renderBlock draws one layout.Block at the generator's current cursor
// and advances the cursor by exactly b.EstimatedHeight, so the
// rendered page matches what Paginate assumed it would consume.
func renderBlock(gen *pdfgen.Generator, b layout.Block, fr rules.FormattingRules, startX, usableWidth float64) {
	switch b.Type {
	case layout.BlockHeading:
		gen.WriteHeading(b.Content, b.HeadingLevel, usableWidth, b.EstimatedHeight, markdown.HeadingBold(b.HeadingLevel), markdown.HeadingFontSize(b.HeadingLevel))

	case layout.BlockHorizontalRule:
		y := gen.GetCurrentY() + b.EstimatedHeight/2
		gen.DrawLine(startX, y, startX+usableWidth, y)
		gen.MoveTo(pdfgen.Position{X: startX, Y: gen.GetCurrentY() + b.EstimatedHeight})

	case layout.BlockListItem:
		gen.MoveTo(pdfgen.Position{X: startX + listIndent, Y: gen.GetCurrentY()})
		gen.WriteInlineRuns(toRuns(b.Segments), b.EstimatedHeight)
		gen.MoveTo(pdfgen.Position{X: startX, Y: gen.GetCurrentY()})

	case layout.BlockQuote:
		gen.MoveTo(pdfgen.Position{X: startX + blockQuoteIndent, Y: gen.GetCurrentY()})
		gen.WriteInlineRuns(toRuns(b.Segments), b.EstimatedHeight)
		gen.MoveTo(pdfgen.Position{X: startX, Y: gen.GetCurrentY()})

	case layout.BlockSignature:
		renderSignatureBlock(gen, b.Signature, fr, startX, usableWidth)

	case layout.BlockText:
		fallthrough
	default:
		gen.WriteInlineRuns(toRuns(b.Segments), b.EstimatedHeight)
	}
}

const listIndent = 18

func renderSignatureBlock(gen *pdfgen.Generator, b *signature.BlockData, fr rules.FormattingRules, startX, usableWidth float64) {
	if b == nil {
		return
	}

	analysis := signature.AnalyzeLayout(*b)
	startY := gen.GetCurrentY()

	if analysis.Columns == 2 {
		left, right := splitAlternating(b.Parties)

		gen.MoveTo(pdfgen.Position{X: startX, Y: startY})
		for _, p := range left {
			renderParty(gen, p, startX, analysis.ColumnWidth)
		}
		leftEnd := gen.GetCurrentY()

		rightX := startX + analysis.ColumnWidth + analysis.Spacing
		gen.MoveTo(pdfgen.Position{X: rightX, Y: startY})
		for _, p := range right {
			renderParty(gen, p, rightX, analysis.ColumnWidth)
		}
		rightEnd := gen.GetCurrentY()

		finalY := leftEnd
		if rightEnd > finalY {
			finalY = rightEnd
		}
		gen.MoveTo(pdfgen.Position{X: startX, Y: finalY})
	} else {
		for _, p := range b.Parties {
			renderParty(gen, p, startX, usableWidth)
		}
	}

	if len(b.Parties) == 0 {
		// EstimateHeight budgets 20pt of padding for a block with no parties.
		gen.MoveTo(pdfgen.Position{X: startX, Y: startY + 20})
	}

	if b.NotaryRequired {
		renderNotaryAcknowledgment(gen, startX, usableWidth)
	}
}

func splitAlternating(parties []signature.Party) (left, right []signature.Party) {
	for i, p := range parties {
		if i%2 == 0 {
			left = append(left, p)
		} else {
			right = append(right, p)
		}
	}
	return left, right
}

// renderParty draws one party's signature band: role caption, a
// signature/initials line, then one line per present field, then
// trailing padding. Matches signature.partyRowHeight's budget: 30pt
// for the line band, 20pt per present field, 20pt padding.
func renderParty(gen *pdfgen.Generator, p signature.Party, x, width float64) {
	y := gen.GetCurrentY()

	if p.Role != "" {
		gen.MoveTo(pdfgen.Position{X: x, Y: y})
		gen.WriteText(p.Role, width, 10, pdfgen.WriteOptions{Bold: true, Align: "LT"})
	}

	lineY := y + 18
	gen.DrawLine(x, lineY, x+width, lineY)

	caption := "Signature"
	if p.LineType == signature.LineInitial {
		caption = "Initials"
	}
	gen.MoveTo(pdfgen.Position{X: x, Y: lineY + 2})
	gen.WriteText(caption, width, 8, pdfgen.WriteOptions{})

	y += 30

	writeField := func(label, value string) {
		if value == "" {
			return
		}
		gen.MoveTo(pdfgen.Position{X: x, Y: y})
		gen.WriteText(fmt.Sprintf("%s: %s", label, value), width, 20, pdfgen.WriteOptions{})
		y += 20
	}
	writeField("Name", p.Name)
	writeField("Title", p.Title)
	writeField("Company", p.Company)
	writeField("Date", p.Date)

	y += 20
	gen.MoveTo(pdfgen.Position{X: x, Y: y})
}

const (
	notaryStateLine      = "STATE OF _____________"
	notaryCountyLine     = "COUNTY OF ___________"
	notaryAcknowledgment = "Subscribed and sworn to before me this ____ day of _________, 20__"
	notaryCommissionLine = "My Commission Expires: __________"
)

// renderNotaryAcknowledgment draws the fixed notary text, a notary
// signature line, and a commission line, consuming exactly the fixed
// 170pt EstimateHeight adds for NotaryRequired blocks: 80 (state/county/
// acknowledgment text) + 30 (signature line) + 40 (caption + commission
// line) + 20 (seal placeholder).
func renderNotaryAcknowledgment(gen *pdfgen.Generator, x, width float64) {
	y := gen.GetCurrentY()

	gen.MoveTo(pdfgen.Position{X: x, Y: y})
	gen.WriteText(notaryStateLine, width, 20, pdfgen.WriteOptions{})
	y += 20
	gen.MoveTo(pdfgen.Position{X: x, Y: y})
	gen.WriteText(notaryCountyLine, width, 20, pdfgen.WriteOptions{})
	y += 20
	gen.MoveTo(pdfgen.Position{X: x, Y: y})
	gen.WriteParagraph(notaryAcknowledgment, width, 40)
	y += 40

	lineY := y + 18
	gen.DrawLine(x, lineY, x+width, lineY)
	y += 30

	gen.MoveTo(pdfgen.Position{X: x, Y: y})
	gen.WriteText("Notary Public", width, 20, pdfgen.WriteOptions{})
	y += 20
	gen.MoveTo(pdfgen.Position{X: x, Y: y})
	gen.WriteText(notaryCommissionLine, width, 20, pdfgen.WriteOptions{})
	y += 20

	gen.MoveTo(pdfgen.Position{X: x, Y: y + 10})
	gen.WriteText("[Notary Seal]", width, 10, pdfgen.WriteOptions{Italic: true})
	y += 20

	gen.MoveTo(pdfgen.Position{X: x, Y: y})
}
