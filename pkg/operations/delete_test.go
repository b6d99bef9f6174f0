package operations

import (
	"testing"

	"github.com/developingjames/patchbundle/internal/testutil"
	"github.com/developingjames/patchbundle/pkg/envelope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteHandlerRemovesFile(t *testing.T) {
	handler := NewDeleteHandler()
	fs := testutil.NewMockFileSystem()
	fs.AddFile("/base/doomed.txt", []byte("bye"))

	d := envelope.Directive{Kind: envelope.KindDelete, FilePath: "doomed.txt"}

	_, err := handler.Apply(fs, "/base", d)
	require.NoError(t, err)
	assert.False(t, fs.FileExists("/base/doomed.txt"))
}

func TestDeleteHandlerRemovesDirectoryRecursively(t *testing.T) {
	handler := NewDeleteHandler()
	fs := testutil.NewMockFileSystem()
	fs.AddFile("/base/tree/a.txt", []byte("a"))
	fs.AddFile("/base/tree/nested/b.txt", []byte("b"))

	d := envelope.Directive{Kind: envelope.KindDelete, FilePath: "tree"}

	_, err := handler.Apply(fs, "/base", d)
	require.NoError(t, err)
	assert.False(t, fs.FileExists("/base/tree/a.txt"))
	assert.False(t, fs.FileExists("/base/tree/nested/b.txt"))
}

func TestDeleteHandlerFailsWhenPathMissing(t *testing.T) {
	handler := NewDeleteHandler()
	fs := testutil.NewMockFileSystem()
	fs.AddDir("/base")

	d := envelope.Directive{Kind: envelope.KindDelete, FilePath: "ghost.txt"}

	_, err := handler.Apply(fs, "/base", d)
	assert.Error(t, err)
}

func TestDeleteHandlerRejectsPathEscape(t *testing.T) {
	handler := NewDeleteHandler()
	fs := testutil.NewMockFileSystem()
	fs.AddDir("/base")

	d := envelope.Directive{Kind: envelope.KindDelete, FilePath: "../outside.txt"}

	_, err := handler.Apply(fs, "/base", d)
	assert.Error(t, err)
}

func TestDeleteHandlerCanHandle(t *testing.T) {
	handler := NewDeleteHandler()
	assert.True(t, handler.CanHandle(envelope.KindDelete))
	assert.False(t, handler.CanHandle(envelope.KindNew))
}
