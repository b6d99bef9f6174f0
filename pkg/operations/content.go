package operations

import (
	"github.com/developingjames/patchbundle/pkg/envelope"
	"github.com/developingjames/patchbundle/pkg/errs"
	"github.com/developingjames/patchbundle/pkg/patchengine"
)

// PatchHandler handles FILE_PATCH directives: it reads the existing file,
// runs it through the patch engine's locate/repair/complete/apply
// pipeline, and writes back the result.
type PatchHandler struct{}

// NewPatchHandler creates a new patch handler.
func NewPatchHandler() OperationHandler {
	return &PatchHandler{}
}

func (h *PatchHandler) CanHandle(kind envelope.Kind) bool {
	return kind == envelope.KindPatch
}

func (h *PatchHandler) Apply(fs FileSystem, baseDir string, d envelope.Directive) (HandlerResult, error) {
	path, err := ResolveAndCheck(baseDir, d.FilePath)
	if err != nil {
		return HandlerResult{}, err
	}

	existing, err := fs.ReadFile(path)
	if err != nil {
		return HandlerResult{}, errs.Wrap(errs.KindIOError, "reading file to patch", err)
	}

	result, err := patchengine.ApplyPatch(string(existing), d.Body)
	if err != nil {
		return HandlerResult{}, err
	}

	if err := fs.WriteFile(path, []byte(result.Content), 0644); err != nil {
		return HandlerResult{}, errs.Wrap(errs.KindIOError, "writing patched file", err)
	}

	tiers := make([]int, len(result.Reports))
	for i, r := range result.Reports {
		tiers[i] = r.Tier
	}
	return HandlerResult{HunksApplied: len(result.Reports), HunkTiers: tiers}, nil
}
