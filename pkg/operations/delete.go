package operations

import (
	"github.com/developingjames/patchbundle/pkg/envelope"
	"github.com/developingjames/patchbundle/pkg/errs"
)

// DeleteHandler handles FILE_DELETE directives.
type DeleteHandler struct{}

// NewDeleteHandler creates a new delete handler.
func NewDeleteHandler() OperationHandler {
	return &DeleteHandler{}
}

func (h *DeleteHandler) CanHandle(kind envelope.Kind) bool {
	return kind == envelope.KindDelete
}

// Apply removes d.FilePath: a plain file is removed directly, a
// directory is removed recursively.
func (h *DeleteHandler) Apply(fs FileSystem, baseDir string, d envelope.Directive) (HandlerResult, error) {
	path, err := ResolveAndCheck(baseDir, d.FilePath)
	if err != nil {
		return HandlerResult{}, err
	}

	info, err := fs.Stat(path)
	if err != nil {
		return HandlerResult{}, errs.Wrap(errs.KindIOError, "locating path to delete", err)
	}

	if info.IsDir() {
		if err := fs.RemoveAll(path); err != nil {
			return HandlerResult{}, errs.Wrap(errs.KindIOError, "removing directory", err)
		}
		return HandlerResult{}, nil
	}

	if err := fs.Remove(path); err != nil {
		return HandlerResult{}, errs.Wrap(errs.KindIOError, "removing file", err)
	}
	return HandlerResult{}, nil
}
