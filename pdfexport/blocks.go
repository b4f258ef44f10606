package pdfexport

import (
	"strings"

	"legaldocpdf/layout"
	"legaldocpdf/markdown"
	"legaldocpdf/rules"
	"legaldocpdf/signature"
)

const (
	horizontalRuleHeight = 12
	blockQuoteIndent     = 36
)

// keepWithNextByID marks every signature block that isn't the last
// member of its group (§4.3: a party's signature and their notary
// acknowledgment belong on the same page whenever possible).
func keepWithNextByID(blocks []signature.BlockData) map[string]bool {
	groups := signature.GroupRelatedBlocks(blocks)
	keep := map[string]bool{}
	for _, g := range groups {
		for i, b := range g.Blocks {
			if i < len(g.Blocks)-1 {
				keep[b.Marker.ID] = true
			}
		}
	}
	return keep
}

// buildBlocks converts source text into an ordered []layout.Block,
// splicing rendered signature blocks in at the line positions their
// markers occupied and skipping the raw party/field lines a signature
// block already covers, so neither is rendered twice.
func buildBlocks(text string, fr rules.FormattingRules) ([]layout.Block, signature.ParsedDocument, error) {
	parsed := signature.ParseDocument(text)

	byStart := map[int]signature.BlockData{}
	for _, b := range parsed.SignatureBlocks {
		byStart[b.StartLine] = b
	}
	keepWithNext := keepWithNextByID(parsed.SignatureBlocks)

	lines := strings.Split(text, "\n")

	var blocks []layout.Block
	for i := 0; i < len(lines); {
		if sb, ok := byStart[i]; ok {
			blocks = append(blocks, layout.NewSignatureBlock(sb, keepWithNext[sb.Marker.ID]))
			if sb.EndLine > i {
				i = sb.EndLine
			} else {
				i++
			}
			continue
		}

		line := lines[i]
		if strings.TrimSpace(line) == "" {
			i++
			continue
		}

		blocks = append(blocks, classifyLine(line, fr))
		i++
	}

	return blocks, parsed, nil
}

func classifyLine(line string, fr rules.FormattingRules) layout.Block {
	switch {
	case markdown.IsHeading(line):
		info, _ := markdown.ParseHeading(line)
		text := info.Text
		if fr.TitleCase {
			text = markdown.TitleCase(text)
		}
		size := markdown.HeadingFontSize(info.Level)
		height := rules.ComputeLineHeight(size, rules.SpacingSingle) + rules.ElementSpacing(fr, rules.ElementSection)
		return layout.Block{
			Type:            layout.BlockHeading,
			Content:         text,
			EstimatedHeight: height,
			Breakable:       false,
			KeepWithNext:    true,
			HeadingLevel:    info.Level,
			Segments:        markdown.ParseInlineFormatting(text),
		}

	case markdown.IsHorizontalRule(line):
		return layout.Block{
			Type:            layout.BlockHorizontalRule,
			Content:         "",
			EstimatedHeight: horizontalRuleHeight,
			Breakable:       true,
		}

	case markdown.IsUnorderedListItem(line), markdown.IsOrderedListItem(line):
		item, _ := markdown.ParseListItem(line)
		height := rules.ComputeLineHeight(fr.FontSize, fr.LineSpacing) + rules.ElementSpacing(fr, rules.ElementList)
		return layout.Block{
			Type:            layout.BlockListItem,
			Content:         item.Marker + " " + item.PlainText,
			EstimatedHeight: height,
			Breakable:       true,
			Segments:        item.Segments,
		}

	case markdown.IsBlockQuote(line):
		quoted, _ := markdown.ParseBlockQuote(line)
		height := rules.ComputeLineHeight(fr.FontSize, fr.LineSpacing)
		return layout.Block{
			Type:            layout.BlockQuote,
			Content:         markdown.StripInlineFormatting(quoted),
			EstimatedHeight: height,
			Breakable:       true,
			Segments:        markdown.ParseInlineFormatting(quoted),
		}

	default:
		text := line
		height := rules.ComputeLineHeight(fr.FontSize, fr.LineSpacing)
		return layout.Block{
			Type:            layout.BlockText,
			Content:         markdown.StripInlineFormatting(text),
			EstimatedHeight: height,
			Breakable:       true,
			Segments:        markdown.ParseInlineFormatting(text),
		}
	}
}
