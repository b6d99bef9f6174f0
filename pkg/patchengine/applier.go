package patchengine

import (
	"strings"

	"github.com/developingjames/patchbundle/pkg/errs"
	"github.com/developingjames/patchbundle/pkg/hunk"
	"github.com/developingjames/patchbundle/pkg/lineimage"
	"github.com/developingjames/patchbundle/pkg/repair"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Applicator applies a repaired hunk to a File Image using
// diffmatchpatch's Patch machinery. Patches are built directly from
// character offsets computed against the image rather than through
// diffmatchpatch's PatchFromText, which expects its own percent-encoded
// text format and would otherwise force an awkward escape/unescape round
// trip for payload text that was never meant to pass through it.
type Applicator struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// NewApplicator constructs an Applicator ready for repeated use.
func NewApplicator() *Applicator {
	return &Applicator{dmp: diffmatchpatch.New()}
}

// Apply splices r into img and returns the resulting image. img is left
// unmodified; the returned image is newly built from the patched text.
func (a *Applicator) Apply(img *lineimage.Image, r repair.Repaired) (*lineimage.Image, error) {
	text, offsets := flatten(img)

	consumed := consumedCount(r.Lines)
	if r.Position < 0 || r.Position+consumed > img.Len() {
		return nil, errs.New(errs.KindApplyFailed, "repaired hunk position falls outside the image")
	}

	start := offsets[r.Position]
	length1 := offsets[r.Position+consumed] - start

	diffs := make([]diffmatchpatch.Diff, 0, len(r.Lines))
	length2 := 0
	pos := r.Position
	for _, l := range r.Lines {
		switch l.Tag {
		case hunk.Context:
			seg := text[offsets[pos]:offsets[pos+1]]
			diffs = append(diffs, diffmatchpatch.Diff{Type: diffmatchpatch.DiffEqual, Text: seg})
			length2 += len(seg)
			pos++
		case hunk.Remove:
			seg := text[offsets[pos]:offsets[pos+1]]
			diffs = append(diffs, diffmatchpatch.Diff{Type: diffmatchpatch.DiffDelete, Text: seg})
			pos++
		case hunk.Add:
			seg := l.Payload + "\n"
			diffs = append(diffs, diffmatchpatch.Diff{Type: diffmatchpatch.DiffInsert, Text: seg})
			length2 += len(seg)
		}
	}

	patch := diffmatchpatch.Patch{
		Diffs:   diffs,
		Start1:  start,
		Start2:  start,
		Length1: length1,
		Length2: length2,
	}

	patched, results := a.dmp.PatchApply([]diffmatchpatch.Patch{patch}, text)
	for _, ok := range results {
		if !ok {
			return nil, errs.New(errs.KindApplyFailed, "hunk was rejected at the point of application")
		}
	}

	if img.Newline != "\n" {
		patched = strings.ReplaceAll(patched, "\n", img.Newline)
	}
	return lineimage.New(patched), nil
}

// flatten joins img's lines into a single LF-delimited string (newline
// flavor is restored by the caller afterward) and returns, for each line
// index i in [0,img.Len()], the byte offset where that line begins —
// offsets[img.Len()] is the length of the whole string.
func flatten(img *lineimage.Image) (string, []int) {
	offsets := make([]int, img.Len()+1)
	var b strings.Builder
	pos := 0
	last := img.Len() - 1
	for i, l := range img.Lines {
		offsets[i] = pos
		b.WriteString(l.Raw)
		pos += len(l.Raw)
		if i < last || img.EndsWithNewline {
			b.WriteByte('\n')
			pos++
		}
	}
	offsets[img.Len()] = pos
	return b.String(), offsets
}

func consumedCount(lines []hunk.Line) int {
	n := 0
	for _, l := range lines {
		if l.Tag != hunk.Add {
			n++
		}
	}
	return n
}

func addedCount(lines []hunk.Line) int {
	n := 0
	for _, l := range lines {
		if l.Tag != hunk.Remove {
			n++
		}
	}
	return n
}
