// Package parser turns raw LLM output into an ordered command chain.
//
// The chain separator is the two-character token "&&". Splitting tracks
// quote state so a separator inside a quoted argument never breaks the
// chain, which a naive strings.Split cannot guarantee.
package parser

import (
	"strings"

	"github.com/doeshing/vox-go/internal/domain"
	"github.com/doeshing/vox-go/internal/ports"
)

// ChainParser is the quote-aware splitter and tokenizer.
type ChainParser struct{}

// New builds a ChainParser.
func New() *ChainParser {
	return &ChainParser{}
}

// Parse implements ports.ChainParser.
//
// The raw text is first normalized (markdown fences stripped, refusal
// replies detected), then split on "&&" outside quotes, then each segment
// is tokenized. Empty segments from leading, trailing, or doubled
// separators are dropped; if nothing remains the chain is empty.
func (p *ChainParser) Parse(raw string) ([]domain.CommandInvocation, error) {
	cleaned, err := Normalize(raw)
	if err != nil {
		return nil, err
	}

	segments, err := splitChain(cleaned)
	if err != nil {
		return nil, err
	}

	invocations := make([]domain.CommandInvocation, 0, len(segments))
	for _, segment := range segments {
		tokens, err := tokenize(segment)
		if err != nil {
			return nil, err
		}
		if len(tokens) == 0 {
			continue
		}
		invocations = append(invocations, domain.CommandInvocation{
			Raw:  segment,
			Name: tokens[0],
			Args: tokens[1:],
		})
	}

	if len(invocations) == 0 {
		return nil, domain.ErrEmptyCommandChain
	}
	return invocations, nil
}

// splitChain cuts text on "&&" separators that sit outside quotes.
// Returned segments are trimmed; empty ones are dropped.
func splitChain(text string) ([]string, error) {
	var (
		segments []string
		current  strings.Builder
		quote    byte // active quote char, 0 when outside quotes
	)

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case quote != 0:
			current.WriteByte(c)
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
			current.WriteByte(c)
		case c == '&' && i+1 < len(text) && text[i+1] == '&':
			segments = append(segments, current.String())
			current.Reset()
			i++ // skip the second '&'
		default:
			current.WriteByte(c)
		}
	}

	if quote != 0 {
		return nil, domain.ErrUnterminatedQuote
	}

	segments = append(segments, current.String())

	out := make([]string, 0, len(segments))
	for _, s := range segments {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out, nil
}

// tokenize splits one segment into whitespace-delimited tokens, resolving
// single and double quotes. The first token is the command name.
func tokenize(segment string) ([]string, error) {
	var (
		tokens  []string
		current strings.Builder
		quote   byte
		inToken bool
	)

	flush := func() {
		if inToken {
			tokens = append(tokens, current.String())
			current.Reset()
			inToken = false
		}
	}

	for i := 0; i < len(segment); i++ {
		c := segment[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			} else {
				current.WriteByte(c)
			}
		case c == '\'' || c == '"':
			quote = c
			inToken = true
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			flush()
		default:
			current.WriteByte(c)
			inToken = true
		}
	}

	if quote != 0 {
		return nil, domain.ErrUnterminatedQuote
	}
	flush()
	return tokens, nil
}

var _ ports.ChainParser = (*ChainParser)(nil)
