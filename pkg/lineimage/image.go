// Package lineimage implements the canonical line-based representation of
// a file used by the hunk matcher and repairer: an ordered sequence of
// lines plus their normalized forms for each matching tier.
package lineimage

import (
	"regexp"
	"strings"
)

// Line is one line of a File Image along with its derived forms.
type Line struct {
	Raw          string
	Trimmed      string
	TrimmedLower string
	Fuzzy        string
}

// Image is a file split into lines, with newline flavor preserved for
// reassembly on output.
type Image struct {
	Lines           []Line
	Newline         string // "\n" or "\r\n"
	EndsWithNewline bool
}

var (
	headingMarker  = regexp.MustCompile(`^#+\s+`)
	whitespaceRuns = regexp.MustCompile(`[ \t]+`)
	trailingPunct  = ".,;:!?)]}'\"`"
)

// New builds a File Image from raw file content.
func New(content string) *Image {
	newline := "\n"
	if strings.Contains(content, "\r\n") {
		newline = "\r\n"
		content = strings.ReplaceAll(content, "\r\n", "\n")
	}
	content = strings.ReplaceAll(content, "\r", "\n")

	endsWithNewline := false
	if content != "" {
		endsWithNewline = strings.HasSuffix(content, "\n")
	}
	body := content
	if endsWithNewline {
		body = content[:len(content)-1]
	}

	var raws []string
	if content == "" {
		raws = nil
	} else {
		raws = strings.Split(body, "\n")
	}

	lines := make([]Line, len(raws))
	for i, r := range raws {
		lines[i] = newLine(r)
	}

	return &Image{Lines: lines, Newline: newline, EndsWithNewline: endsWithNewline}
}

func newLine(raw string) Line {
	trimmed := Trimmed(raw)
	lower := strings.ToLower(trimmed)
	return Line{
		Raw:          raw,
		Trimmed:      trimmed,
		TrimmedLower: lower,
		Fuzzy:        Fuzzy(lower),
	}
}

// Trimmed strips leading/trailing whitespace, collapses internal runs of
// spaces/tabs to a single space, and strips a leading markdown heading
// marker ("#", "##", ... followed by whitespace).
func Trimmed(s string) string {
	s = strings.TrimSpace(s)
	s = headingMarker.ReplaceAllString(s, "")
	s = whitespaceRuns.ReplaceAllString(s, " ")
	return s
}

// TrimmedLower is Trimmed lowercased.
func TrimmedLower(s string) string {
	return strings.ToLower(Trimmed(s))
}

// Fuzzy takes an already trimmed-lower string (or any string; it is
// idempotent to apply Trimmed/ToLower first) and removes inline backticks
// and trailing ASCII punctuation.
func Fuzzy(trimmedLower string) string {
	s := strings.ReplaceAll(trimmedLower, "`", "")
	s = strings.TrimRight(s, trailingPunct)
	return s
}

// Join reassembles the Image's lines into file text, restoring the
// detected newline flavor and trailing-newline state.
func (img *Image) Join() string {
	raws := make([]string, len(img.Lines))
	for i, l := range img.Lines {
		raws[i] = l.Raw
	}
	out := strings.Join(raws, "\n")
	if img.EndsWithNewline {
		out += "\n"
	}
	if img.Newline != "\n" {
		out = strings.ReplaceAll(out, "\n", img.Newline)
	}
	return out
}

// Len returns the number of lines in the image.
func (img *Image) Len() int { return len(img.Lines) }
