// Package prompt assembles the generation prompt for a streaming edit:
// instruction plus the captured selection, with rich-text markup stripped
// and the selection bounded to a token budget.
package prompt

import (
	"regexp"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkoukk/tiktoken-go"
)

const defaultTokenBudget = 2000

// Options controls prompt assembly.
type Options struct {
	// TokenBudget bounds the embedded selection; <= 0 means no bound.
	TokenBudget int
	// StripMarkup removes HTML tags from the selection before embedding.
	StripMarkup bool
}

// DefaultOptions matches the dashboard defaults.
func DefaultOptions() Options {
	return Options{TokenBudget: defaultTokenBudget, StripMarkup: true}
}

// Build combines the instruction and selection into the prompt sent to the
// generation channel.
func Build(instruction, selection string, opts Options) string {
	text := selection
	if opts.StripMarkup {
		text = StripHTML(text)
	}
	if opts.TokenBudget > 0 {
		text = TruncateToTokens(text, opts.TokenBudget)
	}

	var b strings.Builder
	b.WriteString(strings.TrimSpace(instruction))
	b.WriteString("\n\nText:\n")
	b.WriteString(text)
	return b.String()
}

var whitespaceRun = regexp.MustCompile(`[ \t]+`)

// StripHTML extracts the readable text from a rich-text fragment. Plain
// text passes through untouched.
func StripHTML(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	text := doc.Text()
	text = whitespaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

var (
	encodingOnce sync.Once
	encoding     *tiktoken.Tiktoken
)

func getEncoding() *tiktoken.Tiktoken {
	encodingOnce.Do(func() {
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err == nil {
			encoding = enc
		}
	})
	return encoding
}

// TruncateToTokens bounds text to budget tokens using the cl100k_base
// encoding, falling back to a rune heuristic when the encoding is
// unavailable.
func TruncateToTokens(text string, budget int) string {
	if budget <= 0 {
		return text
	}
	if enc := getEncoding(); enc != nil {
		tokens := enc.Encode(text, nil, nil)
		if len(tokens) <= budget {
			return text
		}
		return enc.Decode(tokens[:budget])
	}
	return truncateRunes(text, budget)
}

// truncateRunes approximates a token budget at four runes per token.
func truncateRunes(text string, budget int) string {
	limit := budget * 4
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
