package patchengine

import (
	"fmt"

	"github.com/developingjames/patchbundle/pkg/errs"
	"github.com/developingjames/patchbundle/pkg/hunk"
	"github.com/developingjames/patchbundle/pkg/lineimage"
	"github.com/developingjames/patchbundle/pkg/matcher"
	"github.com/developingjames/patchbundle/pkg/repair"
)

// HunkReport is the per-hunk diagnostic trail recorded while applying a
// patch body: which tier located it, where, and the canonical unified
// diff text it was completed into.
type HunkReport struct {
	Index         int
	Tier          int
	Position      int
	CanonicalDiff string
}

// Result is the outcome of applying a whole patch body to one file.
type Result struct {
	Content string
	Reports []HunkReport
}

// ApplyPatch parses body into hunks, then locates, repairs, completes, and
// applies each one in turn against original, threading a single cursor
// and cumulative line-delta through the file the way a human reviewer
// reads a diff top to bottom: each hunk's search origin is anchored just
// past where the previous hunk left off.
func ApplyPatch(original string, body string) (Result, error) {
	hunks, err := hunk.Parse(body)
	if err != nil {
		return Result{}, err
	}

	img := lineimage.New(original)
	applier := NewApplicator()

	cursor := 0
	delta := 0
	reports := make([]HunkReport, 0, len(hunks))

	for i, h := range hunks {
		c, err := matcher.Match(img, h, cursor)
		if err != nil {
			kind := errs.Kind(errs.KindOf(err))
			if kind == "" {
				kind = errs.KindNoMatch
			}
			return Result{}, errs.Wrap(kind, fmt.Sprintf("hunk %d", i+1), err)
		}

		r := repair.Repair(img, h, c)
		oldStart := r.Position + 1 - delta
		newStart := r.Position + 1

		report := HunkReport{
			Index:         i + 1,
			Tier:          c.Tier,
			Position:      r.Position,
			CanonicalDiff: Complete(r, oldStart, newStart),
		}

		newImg, err := applier.Apply(img, r)
		if err != nil {
			return Result{}, fmt.Errorf("hunk %d: %w", i+1, err)
		}
		img = newImg

		consumed := consumedCount(r.Lines)
		produced := addedCount(r.Lines)
		delta += produced - consumed
		cursor = r.Position + produced

		reports = append(reports, report)
	}

	return Result{Content: img.Join(), Reports: reports}, nil
}
