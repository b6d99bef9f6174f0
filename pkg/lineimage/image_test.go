package lineimage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSplitsLinesAndTracksTrailingNewline(t *testing.T) {
	img := New("one\ntwo\nthree\n")
	assert.Equal(t, 3, img.Len())
	assert.True(t, img.EndsWithNewline)
	assert.Equal(t, "\n", img.Newline)
}

func TestNewWithoutTrailingNewline(t *testing.T) {
	img := New("one\ntwo")
	assert.Equal(t, 2, img.Len())
	assert.False(t, img.EndsWithNewline)
}

func TestNewDetectsCRLF(t *testing.T) {
	img := New("one\r\ntwo\r\n")
	assert.Equal(t, "\r\n", img.Newline)
	assert.Equal(t, "one", img.Lines[0].Raw)
	assert.Equal(t, "two", img.Lines[1].Raw)
}

func TestNewEmptyContentHasNoLines(t *testing.T) {
	img := New("")
	assert.Equal(t, 0, img.Len())
	assert.False(t, img.EndsWithNewline)
}

func TestJoinRoundTrips(t *testing.T) {
	for _, content := range []string{"a\nb\nc\n", "a\nb", "\r\n"} {
		img := New(content)
		assert.Equal(t, content, img.Join())
	}
}

func TestJoinRestoresCRLF(t *testing.T) {
	img := New("alpha\r\nbeta\r\n")
	assert.Equal(t, "alpha\r\nbeta\r\n", img.Join())
}

func TestTrimmedCollapsesWhitespaceAndHeadingMarker(t *testing.T) {
	assert.Equal(t, "Title", Trimmed("##   Title  "))
	assert.Equal(t, "a b c", Trimmed("a    b\tc"))
}

func TestFuzzyStripsBackticksAndTrailingPunctuation(t *testing.T) {
	assert.Equal(t, "done", Fuzzy(TrimmedLower("`Done`.")))
	assert.Equal(t, "already clean", Fuzzy(TrimmedLower("Already Clean")))
}
