// Package repair turns a located-but-imprecise hunk match into a hunk
// whose lines are byte-exact against the target File Image: it drops
// content that overhangs EOF and rewrites context/remove payloads to the
// file's actual text wherever the matcher only found a normalized or
// suffix-level equivalence. It never changes a line's tag: a blank context
// line is not turned into an added line, so it has to line up with a blank
// file line for the matcher to accept the hunk at all.
package repair

import (
	"github.com/developingjames/patchbundle/pkg/hunk"
	"github.com/developingjames/patchbundle/pkg/lineimage"
	"github.com/developingjames/patchbundle/pkg/matcher"
)

// Repaired is a hunk's lines rewritten to align exactly with img starting
// at Position. It carries no line counts; callers derive them from Lines.
type Repaired struct {
	Position int
	Lines    []hunk.Line
}

// Repair rewrites h's Context and Remove payloads to match img exactly at
// the position c identifies, trimming any trailing lines that ran past
// EOF in the fuzzy tier. Add lines are never rewritten; they are new
// content and have no counterpart in img.
func Repair(img *lineimage.Image, h hunk.Hunk, c matcher.Candidate) Repaired {
	_, hunkIndex := h.Anchor()

	classByHunkIndex := make(map[int]matcher.Rank, len(hunkIndex))
	for k, hi := range hunkIndex {
		if k < len(c.Classifications) {
			classByHunkIndex[hi] = c.Classifications[k]
		}
	}

	out := make([]hunk.Line, 0, len(h.Lines))
	fidx := c.Index

	for i, l := range h.Lines {
		if l.Tag == hunk.Add {
			out = append(out, l)
			continue
		}

		rank, wasAnchor := classByHunkIndex[i]
		if wasAnchor && rank == matcher.RankOverhang {
			// This context/remove line ran past EOF in the fuzzy tier:
			// it never existed in the file, so it is dropped rather than
			// rewritten.
			fidx++
			continue
		}

		payload := l.Payload
		if wasAnchor && fidx < img.Len() {
			// Any non-overhang rank (raw, normalized, suffix, blank) means
			// this line corresponds to a real file line; align the
			// payload to it exactly so later hunks reuse byte-exact text.
			payload = img.Lines[fidx].Raw
		}
		out = append(out, hunk.Line{Tag: l.Tag, Payload: payload})
		fidx++
	}

	return Repaired{Position: c.Index, Lines: out}
}
