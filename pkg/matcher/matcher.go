// Package matcher implements the tiered fuzzy matcher: given a hunk's
// anchor (its Context+Remove lines) and a search origin, it locates the
// anchor's intended position in a File Image using three successively
// looser equality predicates, scored by exactness then proximity.
package matcher

import (
	"github.com/developingjames/patchbundle/pkg/errs"
	"github.com/developingjames/patchbundle/pkg/hunk"
	"github.com/developingjames/patchbundle/pkg/lineimage"
)

// Rank classifies how an anchor line matched at a candidate position,
// from strictest (0) to loosest (4).
type Rank int

const (
	RankRaw Rank = iota
	RankNormalized
	RankSuffix
	RankBlank
	RankOverhang
)

const (
	suffixMinLength = 10
	proximityWindow = 100
)

// Candidate is a located anchor position together with its per-line
// match-quality classification.
type Candidate struct {
	Index           int
	Tier            int
	Classifications []Rank
}

// Match locates the hunk's anchor in img, searching tier 1 (strict) first,
// then tier 2 (resilient), then tier 3 (fuzzy). Distance from origin breaks
// ties between equally good candidates in every tier; in tiers 2 and 3 it
// also limits the search to positions within proximityWindow of origin.
func Match(img *lineimage.Image, h hunk.Hunk, origin int) (Candidate, error) {
	anchor, _ := h.Anchor()

	if len(anchor) == 0 {
		pos := origin
		if pos < 0 {
			pos = 0
		}
		if pos > img.Len() {
			pos = img.Len()
		}
		return Candidate{Index: pos, Tier: 1}, nil
	}

	for tier := 1; tier <= 3; tier++ {
		candidates := collect(img, anchor, origin, tier)
		if len(candidates) == 0 {
			continue
		}
		sortCandidates(candidates, origin)
		best := candidates[0]
		if len(candidates) > 1 && tie(candidates[0], candidates[1], origin) {
			return Candidate{}, errs.New(errs.KindNoMatch, "ambiguous tie treated as no match")
		}
		return best, nil
	}

	return Candidate{}, errs.New(errs.KindNoMatch, "no candidate position found in any tier")
}

func collect(img *lineimage.Image, anchor []hunk.Line, origin, tier int) []Candidate {
	var out []Candidate
	for i := 0; i <= img.Len(); i++ {
		if tier >= 2 && abs(i-origin) > proximityWindow {
			continue
		}
		classes, ok := evaluate(img, anchor, i, tier)
		if !ok || allOverhang(classes) {
			continue
		}
		out = append(out, Candidate{Index: i, Tier: tier, Classifications: classes})
	}
	return out
}

func evaluate(img *lineimage.Image, anchor []hunk.Line, start, tier int) ([]Rank, bool) {
	classes := make([]Rank, len(anchor))
	for j, a := range anchor {
		fidx := start + j
		if fidx >= img.Len() {
			// Matching past end of file is only tolerated as the fuzzy
			// tier's last resort (a hunk whose trailing context/add lines
			// run off an EOF that lacks a final blank line), never as a
			// cheap win for the strict or resilient tiers.
			if tier < 3 || a.Tag == hunk.Remove {
				return nil, false
			}
			classes[j] = RankOverhang
			continue
		}
		fl := img.Lines[fidx]

		switch tier {
		case 1:
			if a.Payload != fl.Raw {
				return nil, false
			}
			classes[j] = RankRaw

		case 2:
			aTrim := lineimage.Trimmed(a.Payload)
			switch {
			case aTrim == "" && fl.Trimmed == "":
				classes[j] = RankBlank
			case aTrim == fl.Trimmed:
				classes[j] = RankNormalized
			case len(aTrim) >= suffixMinLength && hasSuffix(fl.Trimmed, aTrim):
				classes[j] = RankSuffix
			default:
				return nil, false
			}

		case 3:
			aFuzzy := lineimage.Fuzzy(lineimage.TrimmedLower(a.Payload))
			switch {
			case aFuzzy == "" && fl.Fuzzy == "":
				classes[j] = RankBlank
			case aFuzzy == fl.Fuzzy:
				classes[j] = RankNormalized
			case len(aFuzzy) >= suffixMinLength && hasSuffix(fl.Fuzzy, aFuzzy):
				classes[j] = RankSuffix
			default:
				return nil, false
			}
		}
	}
	return classes, true
}

// allOverhang reports whether every classified line fell past EOF, meaning
// the anchor never actually overlapped real file content at this position.
func allOverhang(classes []Rank) bool {
	for _, r := range classes {
		if r != RankOverhang {
			return false
		}
	}
	return true
}

func hasSuffix(s, suffix string) bool {
	if len(suffix) > len(s) {
		return false
	}
	return s[len(s)-len(suffix):] == suffix
}

func counts(classes []Rank) [5]int {
	var c [5]int
	for _, r := range classes {
		c[r]++
	}
	return c
}

func better(a, b Candidate, origin int) bool {
	ca, cb := counts(a.Classifications), counts(b.Classifications)
	for r := 0; r < 5; r++ {
		if ca[r] != cb[r] {
			return ca[r] > cb[r]
		}
	}
	pa, pb := abs(a.Index-origin), abs(b.Index-origin)
	if pa != pb {
		return pa < pb
	}
	return a.Index < b.Index
}

func tie(a, b Candidate, origin int) bool {
	ca, cb := counts(a.Classifications), counts(b.Classifications)
	if ca != cb {
		return false
	}
	return abs(a.Index-origin) == abs(b.Index-origin)
}

func sortCandidates(c []Candidate, origin int) {
	// Simple insertion sort: candidate lists are small (bounded by file
	// length and, for tiers 2/3, by the proximity window).
	for i := 1; i < len(c); i++ {
		for j := i; j > 0 && better(c[j], c[j-1], origin); j-- {
			c[j], c[j-1] = c[j-1], c[j]
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
