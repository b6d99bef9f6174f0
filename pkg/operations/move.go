package operations

import (
	"path/filepath"

	"github.com/developingjames/patchbundle/pkg/envelope"
	"github.com/developingjames/patchbundle/pkg/errs"
)

// MoveHandler handles FILE_RENAME and FILE_MOVE directives — both are a
// same-filesystem rename with destination parent directories created;
// the envelope only distinguishes them by tag, not by behavior.
type MoveHandler struct{}

// NewMoveHandler creates a new move handler.
func NewMoveHandler() OperationHandler {
	return &MoveHandler{}
}

func (h *MoveHandler) CanHandle(kind envelope.Kind) bool {
	return kind == envelope.KindRename || kind == envelope.KindMove
}

func (h *MoveHandler) Apply(fs FileSystem, baseDir string, d envelope.Directive) (HandlerResult, error) {
	from, err := ResolveAndCheck(baseDir, d.FromPath)
	if err != nil {
		return HandlerResult{}, err
	}
	to, err := ResolveAndCheck(baseDir, d.ToPath)
	if err != nil {
		return HandlerResult{}, err
	}

	if err := fs.MkdirAll(filepath.Dir(to), 0755); err != nil {
		return HandlerResult{}, errs.Wrap(errs.KindIOError, "creating destination directory", err)
	}
	if err := fs.Rename(from, to); err != nil {
		return HandlerResult{}, errs.Wrap(errs.KindIOError, "renaming file", err)
	}
	return HandlerResult{}, nil
}
