package hunk

import (
	"regexp"
	"strings"

	"github.com/developingjames/patchbundle/pkg/errs"
)

var fencePattern = regexp.MustCompile("(?s)^```[a-zA-Z0-9_+-]*\n(.*)\n```$")

// StripFence removes one leading and one trailing newline, then strips an
// outermost triple-backtick fence (with optional language tag) if both the
// opening and closing fences are present.
func StripFence(body string) string {
	body = trimOneNewline(body)
	if m := fencePattern.FindStringSubmatch(body); m != nil {
		return m[1]
	}
	return body
}

func trimOneNewline(s string) string {
	s = strings.TrimPrefix(s, "\n")
	s = strings.TrimSuffix(s, "\n")
	return s
}

// Parse splits a simplified unified-diff patch body into an ordered
// sequence of hunks.
func Parse(body string) ([]Hunk, error) {
	body = StripFence(body)
	if strings.TrimSpace(body) == "" {
		return nil, nil
	}

	lines := strings.Split(body, "\n")

	var hunks []Hunk
	var current *Hunk
	sawHeader := false

	for _, raw := range lines {
		if strings.HasPrefix(raw, "@@") {
			sawHeader = true
			if current != nil {
				hunks = append(hunks, *current)
			}
			current = &Hunk{}
			continue
		}
		if current == nil {
			// Text before the first @@ header is tolerated only if blank;
			// anything else means the body never opens a hunk properly.
			if strings.TrimSpace(raw) == "" {
				continue
			}
			return nil, errs.New(errs.KindMalformedHunk, "content before first @@ header")
		}

		if raw == "" {
			current.Lines = append(current.Lines, Line{Tag: Context, Payload: ""})
			continue
		}

		switch raw[0] {
		case ' ':
			current.Lines = append(current.Lines, Line{Tag: Context, Payload: raw[1:]})
		case '-':
			current.Lines = append(current.Lines, Line{Tag: Remove, Payload: raw[1:]})
		case '+':
			current.Lines = append(current.Lines, Line{Tag: Add, Payload: raw[1:]})
		default:
			return nil, errs.New(errs.KindMalformedHunk, "illegal line prefix: "+raw)
		}
	}

	if !sawHeader {
		return nil, errs.New(errs.KindMalformedHunk, "no @@ header found")
	}
	if current != nil {
		hunks = append(hunks, *current)
	}

	return hunks, nil
}
