// Package layout paginates a sequence of typed blocks into pages under
// keep-together, orphan/widow and unbreakable-block constraints.
package layout

import (
	"fmt"

	"legaldocpdf/markdown"
	"legaldocpdf/rules"
	"legaldocpdf/signature"
)

// BlockType is one of the recognized layout block kinds.
type BlockType string

const (
	BlockText            BlockType = "text"
	BlockHeading         BlockType = "heading"
	BlockListItem        BlockType = "list-item"
	BlockQuote           BlockType = "blockquote"
	BlockTable           BlockType = "table"
	BlockHorizontalRule  BlockType = "horizontal-rule"
	BlockSignature       BlockType = "signature"
)

// Block is one paginatable unit of content.
type Block struct {
	Type            BlockType
	Content         string
	EstimatedHeight float64
	Breakable       bool
	KeepWithNext    bool
	HeadingLevel    int

	// Segments, if non-nil, carries the inline bold/italic runs for a
	// BlockText or BlockListItem block; Content remains the flattened
	// plain-text form used for height estimation.
	Segments []markdown.InlineSegment

	// Signature, if non-nil, carries the structured data for a
	// BlockSignature block so the renderer does not need to re-parse
	// Content.
	Signature *signature.BlockData
}

// NewSignatureBlock builds the (always unbreakable) layout block for a
// parsed signature block, per the §3 invariant that signature blocks
// are breakable=false.
func NewSignatureBlock(data signature.BlockData, keepWithNext bool) Block {
	height := signature.EstimateHeight(data)
	return Block{
		Type:            BlockSignature,
		Content:         fmt.Sprintf("signature-block:%s", data.Marker.ID),
		EstimatedHeight: height,
		Breakable:       false,
		KeepWithNext:    keepWithNext,
		Signature:       &data,
	}
}

// Page is one paginated output page.
type Page struct {
	Blocks          []Block
	RemainingHeight float64
	PageNumber      int
}

// Result is the full pagination outcome.
type Result struct {
	Pages       []Page
	TotalPages  int
	HasOverflow bool
}

// group is a run of blocks that must be placed together because every
// block but the last has KeepWithNext set.
type group struct {
	blocks []Block
	height float64
	forced bool // true if any block in the group is unbreakable
}

func collectGroup(blocks []Block, start int) (group, int) {
	g := group{}
	i := start
	for {
		b := blocks[i]
		g.blocks = append(g.blocks, b)
		g.height += b.EstimatedHeight
		if !b.Breakable {
			g.forced = true
		}
		i++
		if !b.KeepWithNext || i >= len(blocks) {
			break
		}
	}
	return g, i
}

// Paginate implements §4.4's algorithm.
func Paginate(blocks []Block, docType rules.DocumentType, fr rules.FormattingRules) Result {
	var pages []Page
	hasOverflow := false

	pageNumber := 1
	area := rules.UsablePageArea(fr, pageNumber)
	current := Page{RemainingHeight: area.Height, PageNumber: pageNumber}

	flush := func() {
		pages = append(pages, current)
	}

	newPage := func() {
		flush()
		pageNumber++
		area := rules.UsablePageArea(fr, pageNumber)
		current = Page{RemainingHeight: area.Height, PageNumber: pageNumber}
	}

	i := 0
	for i < len(blocks) {
		g, next := collectGroup(blocks, i)
		i = next

		if g.height <= current.RemainingHeight {
			current.Blocks = append(current.Blocks, g.blocks...)
			current.RemainingHeight -= g.height
			continue
		}

		if g.forced {
			if len(current.Blocks) > 0 {
				newPage()
			}
			fullPageHeight := rules.UsablePageArea(fr, current.PageNumber).Height
			if g.height > fullPageHeight {
				hasOverflow = true
			}
			current.Blocks = append(current.Blocks, g.blocks...)
			current.RemainingHeight -= g.height
			continue
		}

		// Breakable group that doesn't fit: close the current page and
		// start a new one for the group. A breakable group taller than a
		// single page is still placed whole on that page and does not
		// set hasOverflow.
		if len(current.Blocks) > 0 {
			newPage()
		}
		current.Blocks = append(current.Blocks, g.blocks...)
		current.RemainingHeight -= g.height
	}

	flush()

	applyOrphanWidowRule(&pages, fr)

	total := len(pages)
	for idx := range pages {
		pages[idx].PageNumber = idx + 1
	}

	return Result{Pages: pages, TotalPages: total, HasOverflow: hasOverflow}
}

// applyOrphanWidowRule implements §4.4 step 3: no non-terminal page may
// contain only a single block. Where possible, pull the next page's
// first block forward (unless that would break its own KeepWithNext
// chain, or it wouldn't fit the single-block page's remaining height);
// otherwise defer the current page's only block to the next page. A defer
// empties the current page, so the next page's blocks move into the
// current page's slot once empty pages are dropped; the defer is made only
// when the combined blocks fit the current page's usable height. When
// neither move is legal, the page is left as a single-block page: it is
// forced by capacity, per §8.3(b).
func applyOrphanWidowRule(pages *[]Page, fr rules.FormattingRules) {
	p := *pages
	for idx := 0; idx < len(p)-1; idx++ {
		if len(p[idx].Blocks) != 1 {
			continue
		}

		next := &p[idx+1]
		if len(next.Blocks) == 0 {
			continue
		}

		head := next.Blocks[0]
		if !head.KeepWithNext && head.EstimatedHeight <= p[idx].RemainingHeight {
			p[idx].Blocks = append(p[idx].Blocks, head)
			p[idx].RemainingHeight -= head.EstimatedHeight
			next.Blocks = next.Blocks[1:]
			next.RemainingHeight += head.EstimatedHeight
			continue
		}

		only := p[idx].Blocks[0]
		slotHeight := rules.UsablePageArea(fr, p[idx].PageNumber).Height
		nextUsed := rules.UsablePageArea(fr, next.PageNumber).Height - next.RemainingHeight
		if only.EstimatedHeight+nextUsed <= slotHeight {
			p[idx].Blocks = nil
			next.Blocks = append([]Block{only}, next.Blocks...)
			next.RemainingHeight = slotHeight - nextUsed - only.EstimatedHeight
		}
	}

	out := p[:0]
	for _, page := range p {
		if len(page.Blocks) == 0 {
			continue
		}
		out = append(out, page)
	}
	*pages = out
}

const defaultSideBySideLineHeight = 15

// PrepareSideBySideLayout produces one Block per row, joining left and
// right with a tab and setting KeepWithNext on every row but the last.
func PrepareSideBySideLayout(left, right []string) []Block {
	n := len(left)
	if len(right) > n {
		n = len(right)
	}

	blocks := make([]Block, 0, n)
	for idx := 0; idx < n; idx++ {
		var l, r string
		if idx < len(left) {
			l = left[idx]
		}
		if idx < len(right) {
			r = right[idx]
		}

		blocks = append(blocks, Block{
			Type:            BlockText,
			Content:         l + "\t" + r,
			EstimatedHeight: defaultSideBySideLineHeight,
			Breakable:       true,
			KeepWithNext:    idx < n-1,
		})
	}
	return blocks
}

// CalculateSideBySideHeight returns the taller column's total height.
func CalculateSideBySideHeight(left, right []string, lineHeight float64) float64 {
	n := len(left)
	if len(right) > n {
		n = len(right)
	}
	return float64(n) * lineHeight
}

// SplitContentForColumns partitions lines into two halves, with the
// left column receiving ceil(n/2).
func SplitContentForColumns(lines []string) (left, right []string) {
	half := (len(lines) + 1) / 2
	return lines[:half], lines[half:]
}
