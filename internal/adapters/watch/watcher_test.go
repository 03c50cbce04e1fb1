package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3-lines-studio/pagesmith/internal/blocks"
	"github.com/3-lines-studio/pagesmith/internal/dsl"
	"github.com/3-lines-studio/pagesmith/internal/logger"
	"github.com/3-lines-studio/pagesmith/internal/output"
	"github.com/3-lines-studio/pagesmith/internal/usecase"
	"github.com/3-lines-studio/pagesmith/internal/workspace"
)

type importLog struct {
	mu    sync.Mutex
	calls [][]dsl.Error
}

func (l *importLog) record(errs []dsl.Error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, errs)
}

func (l *importLog) last() ([]dsl.Error, int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.calls) == 0 {
		return nil, 0
	}
	return l.calls[len(l.calls)-1], len(l.calls)
}

func startWatcher(t *testing.T, path string, doc *workspace.Document) *importLog {
	t.Helper()
	// reloads can finish after the test body returns, so no zaptest here
	log := logger.NewNoOpLogger()
	calls := &importLog{}

	w, err := New(Config{
		Path:     path,
		Site:     usecase.NewSiteService(blocks.NewCatalog(), output.NewCompiler(), log, nil),
		Document: doc,
		Logger:   log,
		Debounce: 10 * time.Millisecond,
		OnImport: calls.record,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		_ = w.Close()
	})
	return calls
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.psl")
	require.NoError(t, os.WriteFile(path, []byte("hero"), 0o644))

	doc := workspace.NewDocument(nil)
	calls := startWatcher(t, path, doc)

	require.NoError(t, os.WriteFile(path, []byte("navbar\nfooter"), 0o644))

	require.Eventually(t, func() bool {
		return len(doc.Snapshot()) == 2
	}, 5*time.Second, 10*time.Millisecond)

	errs, n := calls.last()
	assert.GreaterOrEqual(t, n, 1)
	assert.Nil(t, errs)
	assert.Equal(t, "navbar", doc.Snapshot()[0].TypeID)
}

func TestWatcherKeepsDocumentOnSyntaxError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.psl")
	require.NoError(t, os.WriteFile(path, []byte("hero"), 0o644))

	doc := workspace.NewDocument(nil)
	calls := startWatcher(t, path, doc)

	require.NoError(t, os.WriteFile(path, []byte("navbar { title:"), 0o644))

	require.Eventually(t, func() bool {
		errs, _ := calls.last()
		return len(errs) > 0
	}, 5*time.Second, 10*time.Millisecond)

	errs, _ := calls.last()
	assert.Equal(t, 1, errs[0].Line)
	assert.Equal(t, 16, errs[0].Col)
	assert.Empty(t, doc.Snapshot())
	assert.Equal(t, uint64(0), doc.Version())
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.psl")
	require.NoError(t, os.WriteFile(path, []byte("hero"), 0o644))

	doc := workspace.NewDocument(nil)
	calls := startWatcher(t, path, doc)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644))
	time.Sleep(100 * time.Millisecond)

	_, n := calls.last()
	assert.Equal(t, 0, n)
	assert.Equal(t, uint64(0), doc.Version())
}

func TestReloadMissingFile(t *testing.T) {
	dir := t.TempDir()
	doc := workspace.NewDocument(nil)

	w, err := New(Config{
		Path:     filepath.Join(dir, "missing.psl"),
		Site:     usecase.NewSiteService(blocks.NewCatalog(), output.NewCompiler(), nil, nil),
		Document: doc,
	})
	require.NoError(t, err)
	defer w.Close()

	assert.Nil(t, w.Reload())
	assert.Equal(t, uint64(0), doc.Version())
}

func TestNewFailsForMissingDirectory(t *testing.T) {
	_, err := New(Config{Path: filepath.Join(t.TempDir(), "nope", "page.psl")})
	require.Error(t, err)
}
