package patchengine

import (
	"fmt"
	"strings"

	"github.com/developingjames/patchbundle/pkg/hunk"
	"github.com/developingjames/patchbundle/pkg/repair"
)

// Complete renders a repaired hunk as a canonical unified-diff hunk: a
// numbered "@@ -oldStart,oldCount +newStart,newCount @@" header followed by
// one prefixed line per entry. oldStart/newStart are 1-based line numbers
// supplied by the caller, since a Repaired hunk only knows its position in
// the image being edited, not its line number in the original input when
// earlier hunks in the same file have already shifted it.
func Complete(r repair.Repaired, oldStart, newStart int) string {
	oldCount, newCount := 0, 0
	for _, l := range r.Lines {
		switch l.Tag {
		case hunk.Context:
			oldCount++
			newCount++
		case hunk.Remove:
			oldCount++
		case hunk.Add:
			newCount++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n", oldStart, oldCount, newStart, newCount)
	for _, l := range r.Lines {
		b.WriteString(l.Tag.Prefix())
		b.WriteString(l.Payload)
		b.WriteByte('\n')
	}
	return b.String()
}
