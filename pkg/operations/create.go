package operations

import (
	"path/filepath"

	"github.com/developingjames/patchbundle/pkg/envelope"
	"github.com/developingjames/patchbundle/pkg/errs"
)

// CreateHandler handles FILE_NEW directives.
type CreateHandler struct{}

// NewCreateHandler creates a new create handler.
func NewCreateHandler() OperationHandler {
	return &CreateHandler{}
}

func (h *CreateHandler) CanHandle(kind envelope.Kind) bool {
	return kind == envelope.KindNew
}

// Apply writes d.Content to d.FilePath, creating parent directories and
// overwriting any existing file.
func (h *CreateHandler) Apply(fs FileSystem, baseDir string, d envelope.Directive) (HandlerResult, error) {
	path, err := ResolveAndCheck(baseDir, d.FilePath)
	if err != nil {
		return HandlerResult{}, err
	}

	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return HandlerResult{}, errs.Wrap(errs.KindIOError, "creating parent directory", err)
	}
	if err := fs.WriteFile(path, []byte(d.Content), 0644); err != nil {
		return HandlerResult{}, errs.Wrap(errs.KindIOError, "writing file", err)
	}
	return HandlerResult{}, nil
}
