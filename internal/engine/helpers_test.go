package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danieljhkim/photobatch/internal/clock"
	"github.com/danieljhkim/photobatch/internal/config"
	"github.com/danieljhkim/photobatch/internal/fsops"
	"github.com/danieljhkim/photobatch/internal/hash"
	"github.com/stretchr/testify/require"
)

var errInjected = errors.New("injected failure")

var fixtureTime = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

// faultFS wraps the real filesystem and fails selected operations.
type faultFS struct {
	*fsops.RealFS

	copyCalls  int
	failCopyAt int // 1-based; 0 never fails
	removeErrs map[string]error
}

func newFaultFS() *faultFS {
	return &faultFS{
		RealFS:     fsops.NewRealFS(),
		removeErrs: make(map[string]error),
	}
}

func (f *faultFS) CopyFile(src, dst string) (int64, error) {
	f.copyCalls++
	if f.failCopyAt > 0 && f.copyCalls == f.failCopyAt {
		return 0, errInjected
	}
	return f.RealFS.CopyFile(src, dst)
}

func (f *faultFS) Remove(path string) error {
	if err, ok := f.removeErrs[path]; ok {
		return err
	}
	return f.RealFS.Remove(path)
}

type fixture struct {
	t      *testing.T
	srcDir string
	root   string
	fs     *faultFS
	engine *Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tmp := t.TempDir()
	f := &fixture{
		t:      t,
		srcDir: filepath.Join(tmp, "camera"),
		root:   filepath.Join(tmp, "exports"),
		fs:     newFaultFS(),
	}
	require.NoError(t, os.MkdirAll(f.srcDir, 0o755))

	f.engine = New(
		f.fs,
		hash.NewSHA256Hasher(),
		clock.NewSteppingClock(fixtureTime, time.Second),
		config.Paths{ExportRoot: f.root},
		nil,
	)
	return f
}

// writeSource creates a source file with the given content and returns its path.
func (f *fixture) writeSource(name, content string) string {
	f.t.Helper()
	path := filepath.Join(f.srcDir, name)
	require.NoError(f.t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// tripSources creates the three-image batch used by most tests plus one
// file that is not an image.
func (f *fixture) tripSources() []string {
	f.t.Helper()
	return []string{
		f.writeSource("c.jpg", "ccc"),
		f.writeSource("a.jpg", "a"),
		f.writeSource("notes.txt", "not an image"),
		f.writeSource("b.PNG", "bb"),
	}
}

func (f *fixture) selectTrip() {
	f.t.Helper()
	_, err := f.engine.Select(f.tripSources())
	require.NoError(f.t, err)
}

func (f *fixture) dest(name string) string {
	return filepath.Join(f.root, name)
}

func requireFileContent(t *testing.T, path, want string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, want, string(data))
}

func requireNotExist(t *testing.T, path string) {
	t.Helper()
	_, err := os.Lstat(path)
	require.True(t, os.IsNotExist(err), "expected %s to not exist, got err=%v", path, err)
}
