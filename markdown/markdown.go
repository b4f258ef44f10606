// Package markdown classifies source lines into block kinds (heading,
// list item, block quote, horizontal rule) and splits inline text into
// bold/italic-tagged segments. It never fails: malformed input degrades
// to plain text, per the module's ParseError policy.
package markdown

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// InlineSegment is a run of text carrying bold/italic flags.
type InlineSegment struct {
	Text   string
	Bold   bool
	Italic bool
}

// HeadingInfo describes a recognized heading line.
type HeadingInfo struct {
	Level        int
	Text         string
	OriginalLine string
}

// ListKind distinguishes ordered from unordered list items.
type ListKind string

const (
	ListOrdered   ListKind = "ordered"
	ListUnordered ListKind = "unordered"
)

// ListItem is a recognized list line, carrying both the formatted
// inline segments and a pre-stripped plain-text form. Open Question 1
// ("does list item text retain inline formatting segments or only its
// stripped form") is resolved here by keeping both: layout measurement
// consumes PlainText, rendering consumes Segments.
type ListItem struct {
	Kind        ListKind
	IndentLevel int
	Marker      string
	Text        string
	Segments    []InlineSegment
	PlainText   string
}

var (
	headingRe   = regexp.MustCompile(`^\s*(#{1,6}) (\S.*)$`)
	unorderedRe = regexp.MustCompile(`^(\s*)([-*+])\s+(\S.*)$`)
	orderedRe   = regexp.MustCompile(`^(\s*)(\d+)\.\s+(\S.*)$`)
	blockquoteRe = regexp.MustCompile(`^\s*>`)
	linkRe      = regexp.MustCompile(`\[([^\]]*)\]\(([^)]*)\)`)
)

// IsHeading reports whether line matches "#{1,6} non-empty-text".
// "#######" (7+ hashes) is deliberately not a heading.
func IsHeading(line string) bool {
	if regexp.MustCompile(`^\s*#{7,} `).MatchString(line) {
		return false
	}
	return headingRe.MatchString(line)
}

// IsHorizontalRule reports whether, once whitespace is stripped, line is
// three-or-more identical characters drawn from {-, _, *}.
func IsHorizontalRule(line string) bool {
	stripped := strings.ReplaceAll(strings.TrimSpace(line), " ", "")
	if len(stripped) < 3 {
		return false
	}
	first := stripped[0]
	if first != '-' && first != '_' && first != '*' {
		return false
	}
	for i := 0; i < len(stripped); i++ {
		if stripped[i] != first {
			return false
		}
	}
	return true
}

// IsUnorderedListItem reports whether line is a "-"/"*"/"+" list item.
func IsUnorderedListItem(line string) bool {
	return unorderedRe.MatchString(line)
}

// IsOrderedListItem reports whether line is an "N." list item.
func IsOrderedListItem(line string) bool {
	return orderedRe.MatchString(line)
}

// IsBlockQuote reports whether line begins (after whitespace) with '>'.
func IsBlockQuote(line string) bool {
	return blockquoteRe.MatchString(line)
}

// ParseHeading extracts a HeadingInfo from line, or reports ok=false.
func ParseHeading(line string) (HeadingInfo, bool) {
	if !IsHeading(line) {
		return HeadingInfo{}, false
	}
	m := headingRe.FindStringSubmatch(line)
	if m == nil {
		return HeadingInfo{}, false
	}
	return HeadingInfo{
		Level:        len(m[1]),
		Text:         strings.TrimSpace(m[2]),
		OriginalLine: line,
	}, true
}

// HeadingFontSize returns the render font size in points for a heading
// level (1:16, 2:14, 3-6:12).
func HeadingFontSize(level int) float64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 14
	default:
		return 12
	}
}

// HeadingBold reports whether a heading level renders bold (levels 1-3).
func HeadingBold(level int) bool {
	return level >= 1 && level <= 3
}

// indentLevel counts leading spaces in prefix, treating every 2 spaces
// as one indent level.
func indentLevel(prefix string) int {
	spaces := 0
	for _, r := range prefix {
		if r == ' ' {
			spaces++
		} else if r == '\t' {
			spaces += 2
		}
	}
	return spaces / 2
}

// ParseListItem extracts a ListItem from line, or reports ok=false.
func ParseListItem(line string) (ListItem, bool) {
	if m := unorderedRe.FindStringSubmatch(line); m != nil {
		text := m[3]
		return ListItem{
			Kind:        ListUnordered,
			IndentLevel: indentLevel(m[1]),
			Marker:      m[2],
			Text:        text,
			Segments:    ParseInlineFormatting(text),
			PlainText:   StripInlineFormatting(text),
		}, true
	}
	if m := orderedRe.FindStringSubmatch(line); m != nil {
		text := m[3]
		return ListItem{
			Kind:        ListOrdered,
			IndentLevel: indentLevel(m[1]),
			Marker:      m[2] + ".",
			Text:        text,
			Segments:    ParseInlineFormatting(text),
			PlainText:   StripInlineFormatting(text),
		}, true
	}
	return ListItem{}, false
}

// ParseBlockQuote strips the leading '>' and one optional following
// space, returning ok=false if line is not a block quote.
func ParseBlockQuote(line string) (string, bool) {
	if !IsBlockQuote(line) {
		return "", false
	}
	trimmed := strings.TrimLeft(line, " \t")
	trimmed = strings.TrimPrefix(trimmed, ">")
	trimmed = strings.TrimPrefix(trimmed, " ")
	return trimmed, true
}

// ExtractLinkText replaces every "[label](url)" occurrence in text with
// just label; the url is discarded.
func ExtractLinkText(text string) string {
	return linkRe.ReplaceAllString(text, "$1")
}

type delimiter struct {
	token  string
	bold   bool
	italic bool
}

// Greediest-first: bold+italic, then bold, then italic.
var delimiters = []delimiter{
	{"***", true, true},
	{"___", true, true},
	{"**", true, false},
	{"__", true, false},
	{"*", false, true},
	{"_", false, true},
}

// ParseInlineFormatting splits text into a sequence of InlineSegment,
// recognizing **/__bold__, */_italic_, and ***/___bold-italic___. An
// unclosed delimiter causes the entire input to be returned as one
// plain segment. Empty input yields one empty segment.
func ParseInlineFormatting(text string) []InlineSegment {
	if text == "" {
		return []InlineSegment{{Text: ""}}
	}

	text = ExtractLinkText(text)

	segments, ok := tryParseInline(text)
	if !ok {
		return []InlineSegment{{Text: text}}
	}
	return segments
}

// tryParseInline performs a single left-to-right scan. Whenever an
// opening delimiter is found, it looks for the matching closing
// delimiter anywhere later in the string (a simple non-nested matcher,
// per spec: "Bold with *italic* inside" yields one bold segment whose
// text literally contains the inner asterisks).
func tryParseInline(text string) ([]InlineSegment, bool) {
	var segments []InlineSegment
	plain := strings.Builder{}

	flushPlain := func() {
		if plain.Len() > 0 {
			segments = append(segments, InlineSegment{Text: plain.String()})
			plain.Reset()
		}
	}

	i := 0
	for i < len(text) {
		matched := false
		for _, d := range delimiters {
			tok := d.token
			if !strings.HasPrefix(text[i:], tok) {
				continue
			}
			closeIdx := strings.Index(text[i+len(tok):], tok)
			if closeIdx < 0 {
				continue
			}
			inner := text[i+len(tok) : i+len(tok)+closeIdx]
			if inner == "" {
				continue
			}
			flushPlain()
			segments = append(segments, InlineSegment{Text: inner, Bold: d.bold, Italic: d.italic})
			i = i + len(tok) + closeIdx + len(tok)
			matched = true
			break
		}
		if matched {
			continue
		}

		// An opening-looking delimiter with no matching close anywhere
		// means the whole input is unparseable as formatted text.
		for _, d := range delimiters {
			if strings.HasPrefix(text[i:], d.token) {
				return nil, false
			}
		}

		plain.WriteByte(text[i])
		i++
	}

	flushPlain()

	if len(segments) == 0 {
		return []InlineSegment{{Text: text}}, true
	}

	return segments, true
}

// StripInlineFormatting removes all recognized bold/italic delimiters
// from text, leaving the literal content.
func StripInlineFormatting(text string) string {
	segments := ParseInlineFormatting(text)
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s.Text)
	}
	return b.String()
}

var titleCaser = cases.Title(language.Und)

// TitleCase applies Unicode-correct title casing, used by the renderer
// when FormattingRules.TitleCase is set, instead of a hand-rolled ASCII
// titlecaser.
func TitleCase(s string) string {
	return titleCaser.String(s)
}
