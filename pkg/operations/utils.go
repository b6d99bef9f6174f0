package operations

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/developingjames/patchbundle/pkg/envelope"
	"github.com/developingjames/patchbundle/pkg/errs"
)

// ResolveAndCheck joins rel onto baseDir and rejects any result that, once
// normalized, escapes baseDir — generalizing the teacher's plain
// filepath.Join with the explicit ".."-escape rejection the directive
// executor requires.
func ResolveAndCheck(baseDir, rel string) (string, error) {
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", errs.Wrap(errs.KindIOError, "resolving base directory", err)
	}
	resolved := filepath.Join(absBase, rel)

	relToBase, err := filepath.Rel(absBase, resolved)
	if err != nil || relToBase == ".." || strings.HasPrefix(relToBase, ".."+string(filepath.Separator)) {
		return "", errs.New(errs.KindPathEscape, fmt.Sprintf("path %q escapes base directory", rel))
	}
	return resolved, nil
}

// describe renders the path this directive reports in the status list.
func describe(d envelope.Directive) string {
	if d.FilePath != "" {
		return d.FilePath
	}
	if d.FromPath != "" || d.ToPath != "" {
		return d.FromPath + " -> " + d.ToPath
	}
	return ""
}
