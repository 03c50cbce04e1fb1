package usecase

import (
	"errors"
	iofs "io/fs"
	"maps"
	"strings"
	"sync"

	"github.com/3-lines-studio/pagesmith/internal/core"
)

type recordingSink struct {
	calls [][]core.BlockInstance
}

func (s *recordingSink) ReplaceInstances(instances []core.BlockInstance) {
	s.calls = append(s.calls, instances)
}

type failingCompiler struct{}

func (failingCompiler) CompileFull(core.RenderTree, core.Theme, core.Settings) (core.GeneratedOutput, error) {
	return core.GeneratedOutput{}, errors.New("compiler offline")
}

func (failingCompiler) CompileForPreview(core.RenderTree, core.Theme, core.Settings) (string, error) {
	return "", errors.New("compiler offline")
}

// memFS is an in-memory FileSystem.
type memFS struct {
	mu       sync.Mutex
	files    map[string][]byte
	dirs     map[string]bool
	failPath string
}

func newMemFS() *memFS {
	return &memFS{files: map[string][]byte{}, dirs: map[string]bool{}}
}

func (m *memFS) ReadFile(path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[path]
	if !ok {
		return nil, iofs.ErrNotExist
	}
	return data, nil
}

func (m *memFS) ReadDir(path string) ([]iofs.DirEntry, error) {
	return nil, nil
}

func (m *memFS) FileExists(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[path]
	return ok || m.dirs[path]
}

func (m *memFS) WriteFile(path string, data []byte, perm iofs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failPath != "" && strings.HasSuffix(path, m.failPath) {
		return errors.New("disk full")
	}
	m.files[path] = append([]byte(nil), data...)
	return nil
}

func (m *memFS) MkdirAll(path string, perm iofs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[path] = true
	return nil
}

func (m *memFS) Remove(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, path)
	return nil
}

func (m *memFS) snapshot() map[string][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.files)
}

type nopCLI struct {
	files []string
}

func (c *nopCLI) PrintHeader(msg string)                   {}
func (c *nopCLI) PrintStep(emoji, msg string, args ...any) {}
func (c *nopCLI) PrintSuccess(msg string, args ...any)     {}
func (c *nopCLI) PrintWarning(msg string, args ...any)     {}
func (c *nopCLI) PrintError(msg string, args ...any)       {}
func (c *nopCLI) PrintFile(path string)                    { c.files = append(c.files, path) }
func (c *nopCLI) PrintDone(msg string)                     {}
