package operations

import (
	"io"
	"path/filepath"

	"github.com/developingjames/patchbundle/pkg/envelope"
	"github.com/developingjames/patchbundle/pkg/errs"
)

// CopyHandler handles FILE_COPY directives: it streams the source file's
// bytes to a new destination path, subject to the same base-directory
// escape check as every other path in a directive.
type CopyHandler struct{}

// NewCopyHandler creates a new copy handler.
func NewCopyHandler() OperationHandler {
	return &CopyHandler{}
}

func (h *CopyHandler) CanHandle(kind envelope.Kind) bool {
	return kind == envelope.KindCopy
}

func (h *CopyHandler) Apply(fs FileSystem, baseDir string, d envelope.Directive) (HandlerResult, error) {
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
	if err := h.copyFile(fs, from, to); err != nil {
		return HandlerResult{}, errs.Wrap(errs.KindIOError, "copying file", err)
	}
	return HandlerResult{}, nil
}

func (h *CopyHandler) copyFile(fs FileSystem, src, dst string) error {
	sourceFile, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := fs.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	_, err = io.Copy(destFile, sourceFile)
	return err
}
