package extraction

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/agenthands/scorecard/internal/config"
)

// Model responses restate the answer list in wildly different shapes: a
// labeled bracketed line, a labeled plain line, a bolded numbered list, or the
// bare list itself. The extractor runs an ordered cascade of stages; the first
// stage that decides wins. A stage may decide "explicitly empty" (the response
// said there are no items), which is distinct from "pattern not found".

const longTextThreshold = 500

// Patterns searched when the response is a long analysis. Long texts often
// restate candidate lists mid-reasoning, so only a trailing conclusion label
// is authoritative.
var finalConclusionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\*\*最终EIF功能点列表\*\*[：:]\s*\[([^\]]+)\]`),
	regexp.MustCompile(`\*\*最终EIF功能点列表\*\*[：:]\s*([^\n]+)`),
	regexp.MustCompile(`最终EIF功能点列表[：:]\s*\[([^\]]+)\]`),
	regexp.MustCompile(`最终EIF功能点列表[：:]\s*([^\n]+)`),
	regexp.MustCompile(`(?s)最终.*?功能点.*?列表[：:]\s*\[([^\]]+)\]`),
	regexp.MustCompile(`(?i)\*\*final\s+(?:eif\s+)?list\*\*[：:]\s*\[([^\]]+)\]`),
	regexp.MustCompile(`(?i)final\s+(?:eif\s+)?list[：:]\s*\[([^\]]+)\]`),
	regexp.MustCompile(`(?i)final\s+(?:eif\s+)?list[：:]\s*([^\n]+)`),
	regexp.MustCompile(`\*?\*?EIF功能点列表\*?\*?[：:]\s*\[([^\]]+)\]`),
	regexp.MustCompile(`EIF功能点列表[：:]\s*([^\n]+)`),
	regexp.MustCompile(`(?i)eif\s+list[：:]\s*\[([^\]]+)\]`),
	regexp.MustCompile(`(?i)eif\s+list[：:]\s*([^\n]+)`),
}

// Labeled answer formats in priority order: bolded before plain, bracketed
// before unbracketed, specific labels before generic ones.
var labeledPatterns = []*regexp.Regexp{
	regexp.MustCompile(`最终EIF功能点列表[：:]\s*\[([^\]]+)\]`),
	regexp.MustCompile(`最终EIF功能点列表[：:]\s*([^\n（]+)`),
	regexp.MustCompile(`改进后的EIF功能点列表[：:]\s*\[([^\]]+)\]`),
	regexp.MustCompile(`改进后的EIF功能点列表[：:]\s*([^\n（]+)`),
	regexp.MustCompile(`该视角识别的EIF功能点[：:]\s*\[([^\]]+)\]`),
	regexp.MustCompile(`该视角识别的EIF功能点[：:]\s*([^\n（]+)`),
	regexp.MustCompile(`\*?\*?EIF功能点列表\*?\*?[：:]\s*\[([^\]]+)\]`),
	regexp.MustCompile(`EIF功能点列表[：:]\s*\[([^\]]+)\]`),
	regexp.MustCompile(`EIF功能点列表[：:]\s*([^\n（]+)`),
	regexp.MustCompile(`(?i)(?:final\s+)?eif\s+list[：:]\s*\[([^\]]+)\]`),
	regexp.MustCompile(`(?i)(?:final\s+)?eif\s+list[：:]\s*([^\n（]+)`),
	regexp.MustCompile(`功能点如下[：:]\s*([^\n]+)`),
	regexp.MustCompile(`功能点[：:]\s*([^\n（]+)`),
}

var (
	listDelims        = regexp.MustCompile(`[,，、;；]`)
	tailBracketedList = regexp.MustCompile(`\[([A-Z][A-Z_,\s]+)\]`)

	// "EIF功能点列表：" immediately followed by a bolded numbered list.
	numberedAfterLabel = regexp.MustCompile(`(?s)EIF功能点列表[：:]\s*\*?\*?\s*\n((?:\d+\.\s*\*\*[^*]+\*\*[^\n]*\n?)+)`)
	boldListItem       = regexp.MustCompile(`\d+\.\s*\*\*([A-Z][A-Za-z_\s]+)\*\*`)
	boldDashedItem     = regexp.MustCompile(`\d+\.\s*\*\*([A-Z][A-Za-z_\s]+)\*\*\s*[-–—]`)
	labeledSection     = regexp.MustCompile(`(?s)EIF功能点列表[：:](.*?)(?:\n\n|\z)`)
	plainNumberedItem  = regexp.MustCompile(`(?m)\d+\.\s*([A-Z][A-Z_\s]+?)(?:\s*[-–—]|\s*$)`)

	descriptiveLeadIns = []*regexp.Regexp{
		regexp.MustCompile(`根据[^\n]*?如下[：:]?\s*`),
		regexp.MustCompile(`识别出[^\n]*?如下[：:]?\s*`),
	}

	ordinalPrefix = regexp.MustCompile(`^\d+[.)、]\s*`)
	bulletPrefix  = regexp.MustCompile(`^[-•·]\s*`)
	squareBracket = regexp.MustCompile(`[\[\]]`)
)

type Extractor struct {
	// MaxNameLength caps candidate names in runes; anything at or past the
	// cap is discarded as mis-captured prose. A heuristic guard against
	// pattern over-matching, tunable from config.
	MaxNameLength int
}

func NewExtractor(maxNameLength int) *Extractor {
	if maxNameLength <= 0 {
		maxNameLength = config.DefaultMaxNameLength
	}
	return &Extractor{MaxNameLength: maxNameLength}
}

type stage struct {
	name  string
	apply func(text string) ([]string, bool)
}

func (e *Extractor) stages() []stage {
	return []stage{
		{"final-conclusion", e.extractFinalConclusion},
		{"numbered-after-label", e.extractNumberedAfterLabel},
		{"labeled-list", e.extractLabeledList},
		{"delimited-text", e.extractDelimitedText},
		{"single-name", e.extractSingleName},
		{"bold-numbered-list", e.extractBoldNumberedList},
		{"numbered-section", e.extractNumberedSection},
	}
}

// Extract recovers the ordered candidate name list from a raw model response.
// It is total: unparseable input yields an empty slice, never an error.
func (e *Extractor) Extract(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return []string{}
	}

	for _, s := range e.stages() {
		if items, ok := s.apply(text); ok {
			return items
		}
	}
	return []string{}
}

func (e *Extractor) extractFinalConclusion(text string) ([]string, bool) {
	if utf8.RuneCountInString(text) <= longTextThreshold {
		return nil, false
	}

	for _, re := range finalConclusionPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		content := strings.TrimSpace(m[1])
		if isNoneSentinel(content) {
			return []string{}, true
		}
		if items := e.splitAndClean(content); len(items) > 0 {
			return items, true
		}
	}

	// No conclusion label: the last bracketed uppercase list in the tail is
	// the best remaining bet.
	tail := lastRunes(text, longTextThreshold)
	if ms := tailBracketedList.FindAllStringSubmatch(tail, -1); len(ms) > 0 {
		content := ms[len(ms)-1][1]
		if items := e.splitAndClean(content); len(items) > 0 {
			return items, true
		}
	}

	return nil, false
}

func (e *Extractor) extractNumberedAfterLabel(text string) ([]string, bool) {
	m := numberedAfterLabel.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	items := e.cleanMatches(boldListItem.FindAllStringSubmatch(m[1], -1))
	if len(items) == 0 {
		return nil, false
	}
	return items, true
}

func (e *Extractor) extractLabeledList(text string) ([]string, bool) {
	for _, re := range labeledPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		content := strings.TrimSpace(m[1])
		if isNoneSentinel(content) {
			return []string{}, true
		}
		// Some responses leave only formatting glyphs after the label.
		if content == "" || content == "*" || content == "**" {
			continue
		}
		if items := e.splitAndClean(content); len(items) > 0 {
			return items, true
		}
	}
	return nil, false
}

func (e *Extractor) extractDelimitedText(text string) ([]string, bool) {
	cleaned := stripLeadIns(text)
	if isNoneSentinel(cleaned) {
		return []string{}, true
	}
	if !strings.ContainsAny(cleaned, ",，、;；") {
		return nil, false
	}
	items := e.splitAndClean(cleaned)
	if len(items) == 0 {
		return nil, false
	}
	return items, true
}

func (e *Extractor) extractSingleName(text string) ([]string, bool) {
	cleaned := stripLeadIns(text)
	n := utf8.RuneCountInString(cleaned)
	if n == 0 || n >= e.MaxNameLength {
		return nil, false
	}
	name := CleanName(cleaned)
	if name == "" {
		return nil, false
	}
	return []string{name}, true
}

func (e *Extractor) extractBoldNumberedList(text string) ([]string, bool) {
	items := e.cleanMatches(boldDashedItem.FindAllStringSubmatch(text, -1))
	if len(items) == 0 {
		return nil, false
	}
	return items, true
}

func (e *Extractor) extractNumberedSection(text string) ([]string, bool) {
	m := labeledSection.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	items := e.cleanMatches(plainNumberedItem.FindAllStringSubmatch(m[1], -1))
	if len(items) == 0 {
		return nil, false
	}
	return items, true
}

func (e *Extractor) splitAndClean(content string) []string {
	parts := listDelims.Split(content, -1)
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		name := CleanName(p)
		if name == "" {
			continue
		}
		if utf8.RuneCountInString(name) >= e.MaxNameLength {
			continue
		}
		items = append(items, name)
	}
	return items
}

func (e *Extractor) cleanMatches(matches [][]string) []string {
	items := make([]string, 0, len(matches))
	for _, m := range matches {
		name := CleanName(m[1])
		n := utf8.RuneCountInString(name)
		if n <= 2 || n >= e.MaxNameLength {
			continue
		}
		items = append(items, name)
	}
	return items
}

// CleanName strips leading ordinal markers, bullet glyphs and enclosing
// brackets from a raw list item, then collapses whitespace.
func CleanName(name string) string {
	name = strings.TrimSpace(name)
	name = ordinalPrefix.ReplaceAllString(name, "")
	name = bulletPrefix.ReplaceAllString(name, "")
	name = squareBracket.ReplaceAllString(name, "")
	return strings.Join(strings.Fields(name), " ")
}

// isNoneSentinel reports whether the extracted content is an explicit
// "no items" answer rather than a name list.
func isNoneSentinel(s string) bool {
	s = strings.TrimSpace(s)
	switch s {
	case "无", "无。":
		return true
	}
	return strings.EqualFold(s, "none") || strings.EqualFold(s, "no such items")
}

func stripLeadIns(text string) string {
	for _, re := range descriptiveLeadIns {
		text = re.ReplaceAllString(text, "")
	}
	return strings.TrimSpace(text)
}

func lastRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[len(runes)-n:])
}
