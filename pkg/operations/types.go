package operations

import (
	"io"
	"os"

	"github.com/developingjames/patchbundle/internal/runctx"
	"github.com/developingjames/patchbundle/pkg/envelope"
)

// FileSystem abstracts file system operations so the executor can run
// against a real or in-memory tree.
type FileSystem interface {
	ReadFile(filename string) ([]byte, error)
	WriteFile(filename string, data []byte, perm os.FileMode) error
	Remove(name string) error
	RemoveAll(path string) error
	Rename(oldpath, newpath string) error
	MkdirAll(path string, perm os.FileMode) error
	Stat(name string) (os.FileInfo, error)
	Open(name string) (io.ReadCloser, error)
	Create(name string) (io.WriteCloser, error)
}

// HandlerResult carries extra per-directive diagnostics a handler may
// want surfaced in the status report. Only the Patch handler populates
// HunkTiers today; every other handler returns the zero value.
type HandlerResult struct {
	HunksApplied int
	HunkTiers    []int
}

// OperationHandler executes one directive kind against a FileSystem.
type OperationHandler interface {
	CanHandle(kind envelope.Kind) bool
	Apply(fs FileSystem, baseDir string, d envelope.Directive) (HandlerResult, error)
}

// Outcome is one directive's entry in the status report.
type Outcome struct {
	Kind         envelope.Kind
	FilePath     string
	Success      bool
	Error        string
	RunID        string
	HunksApplied int
	HunkTiers    []int
}

// Executor applies a decoded directive list to a base directory, in
// order, collecting one Outcome per directive.
type Executor struct {
	fs       FileSystem
	handlers []OperationHandler
}

// NewExecutor wires the default handler set against fs.
func NewExecutor(fs FileSystem) *Executor {
	return &Executor{
		fs: fs,
		handlers: []OperationHandler{
			NewCreateHandler(),
			NewDeleteHandler(),
			NewMoveHandler(),
			NewCopyHandler(),
			NewPatchHandler(),
		},
	}
}

// Execute runs every directive in order against baseDir, tagging each
// Outcome with rc's correlation id. Applied directives and pre-existing
// Fail directives are logged at debug level; handler failures and kinds
// with no handler are logged at error level.
func (e *Executor) Execute(directives []envelope.Directive, baseDir string, rc runctx.Context) []Outcome {
	outcomes := make([]Outcome, 0, len(directives))

	for i, d := range directives {
		if d.Kind == envelope.KindFail {
			rc.Log.Debug().Int("directive", i+1).Str("reason", d.Reason).Msg("pre-existing failure, no I/O attempted")
			outcomes = append(outcomes, Outcome{
				Kind:     envelope.KindFail,
				FilePath: d.FilePath,
				Success:  false,
				Error:    d.Reason,
				RunID:    rc.ID,
			})
			continue
		}

		handler := e.find(d.Kind)
		outcome := Outcome{Kind: d.Kind, FilePath: describe(d), RunID: rc.ID}

		if handler == nil {
			outcome.Error = "no handler registered for directive kind " + string(d.Kind)
			rc.Log.Error().Int("directive", i+1).Str("kind", string(d.Kind)).Msg(outcome.Error)
			outcomes = append(outcomes, outcome)
			continue
		}

		result, err := handler.Apply(e.fs, baseDir, d)
		if err != nil {
			outcome.Error = err.Error()
			rc.Log.Error().Err(err).Int("directive", i+1).Str("kind", string(d.Kind)).Msg("directive failed")
		} else {
			outcome.Success = true
			outcome.HunksApplied = result.HunksApplied
			outcome.HunkTiers = result.HunkTiers
			rc.Log.Debug().Int("directive", i+1).Str("kind", string(d.Kind)).Msg("directive applied")
		}
		outcomes = append(outcomes, outcome)
	}

	return outcomes
}

func (e *Executor) find(kind envelope.Kind) OperationHandler {
	for _, h := range e.handlers {
		if h.CanHandle(kind) {
			return h
		}
	}
	return nil
}
