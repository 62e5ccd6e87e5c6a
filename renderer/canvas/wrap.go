package canvasrenderer

import (
	"math"
	"strings"
	"unicode"
)

// wrapText splits content into lines no wider than limit (mm). Explicit
// newlines always break. With wrap off only explicit newlines are honoured.
// Words wider than limit are split between runes.
func wrapText(content string, limit float64, wrap bool, measure func(string) float64) []string {
	content = strings.ReplaceAll(content, "\r", "")
	if !wrap {
		return strings.Split(content, "\n")
	}
	if limit <= 0 {
		limit = math.MaxFloat64
	}

	var lines []string
	var b strings.Builder
	width := 0.0
	emit := func() {
		lines = append(lines, strings.TrimRightFunc(b.String(), unicode.IsSpace))
		b.Reset()
		width = 0
	}
	add := func(s string) {
		w := measure(s)
		if width > 0 && width+w > limit {
			emit()
			// leading whitespace of a wrapped line is dropped
			if strings.TrimSpace(s) == "" {
				return
			}
		}
		b.WriteString(s)
		width += w
	}

	for _, token := range tokenize(content) {
		if token == "\n" {
			emit()
			continue
		}
		if measure(token) <= limit {
			add(token)
			continue
		}
		for _, chunk := range splitByWidth(token, limit, measure) {
			add(chunk)
		}
	}
	emit()
	return lines
}

// tokenize groups runs of spaces and non-spaces; "\n" is its own token.
func tokenize(s string) []string {
	var tokens []string
	var b strings.Builder
	lastSpace := false
	flush := func() {
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
			b.Reset()
		}
	}
	for _, r := range s {
		if r == '\n' {
			flush()
			tokens = append(tokens, "\n")
			continue
		}
		space := unicode.IsSpace(r)
		if b.Len() > 0 && space != lastSpace {
			flush()
		}
		lastSpace = space
		b.WriteRune(r)
	}
	flush()
	return tokens
}

func splitByWidth(token string, limit float64, measure func(string) float64) []string {
	var parts []string
	var current []rune
	for _, r := range token {
		current = append(current, r)
		if len(current) > 1 && measure(string(current)) > limit {
			parts = append(parts, string(current[:len(current)-1]))
			current = []rune{r}
		}
	}
	if len(current) > 0 {
		parts = append(parts, string(current))
	}
	return parts
}
