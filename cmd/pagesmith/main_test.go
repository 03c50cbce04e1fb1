package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/3-lines-studio/pagesmith/internal/core"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer

	a := newApp(&stdout, &stderr)
	a.newLogger = func(string, string) (*zap.Logger, error) {
		return zap.NewNop(), nil
	}

	root := newRootCmd(a)
	root.SetArgs(append(args, "--no-color"))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeSource(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "page.psl"), []byte(src), 0o644))
	return dir
}

const fullPage = `navbar { title: "Acme", links: "Home|About" }
hero { headline: "Hello" }
footer { owner: "Acme", year: 2024 }
`

func TestBuildWritesSite(t *testing.T) {
	dir := writeSource(t, fullPage)

	stdout, _, err := run(t, "build", "-C", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "3 blocks resolved")
	assert.Contains(t, stdout, "Build complete")

	for _, name := range []string{"index.html", "styles.css", "script.js"} {
		_, err := os.Stat(filepath.Join(dir, "dist", name))
		assert.NoError(t, err, name)
	}
}

func TestBuildFlagsOverrideConfig(t *testing.T) {
	dir := writeSource(t, fullPage)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pagesmith.yaml"), []byte("out: public\nsettings:\n  title: From File\n"), 0o644))

	_, _, err := run(t, "build", "-C", dir, "--title", "From Flag")
	require.NoError(t, err)

	html, err := os.ReadFile(filepath.Join(dir, "public", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "<title>From Flag</title>")
}

func TestBuildReportsSyntaxErrors(t *testing.T) {
	dir := writeSource(t, "navbar { title:")

	stdout, _, err := run(t, "build", "-C", dir)
	require.ErrorIs(t, err, errReported)
	assert.Contains(t, stdout, `page.psl:1:16: expected value for key "title", found end of input`)
	assert.Contains(t, stdout, "Build failed")

	_, statErr := os.Stat(filepath.Join(dir, "dist"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestBuildReportsWarningsAndDiagnostics(t *testing.T) {
	dir := writeSource(t, "hero { align: diagonal }\nmystery")

	stdout, _, err := run(t, "build", "-C", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, core.WarnMissingNavbar)
	assert.Contains(t, stdout, "Block diagnostics (2):")
	assert.Regexp(t, `mystery\s+#1\s+lookup\s+`, stdout)
	assert.Regexp(t, `hero\s+#0\s+html\s+`, stdout)
	assert.Contains(t, stdout, "Build complete")
}

func TestBuildMissingSource(t *testing.T) {
	stdout, _, err := run(t, "build", "-C", t.TempDir())
	require.ErrorIs(t, err, errReported)
	assert.Contains(t, stdout, "failed to read source")
}

func TestBuildInvalidConfig(t *testing.T) {
	dir := writeSource(t, fullPage)

	_, _, err := run(t, "build", "-C", dir, "--theme", "neon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "theme.mode")
}

func TestCheck(t *testing.T) {
	t.Run("clean page", func(t *testing.T) {
		stdout, _, err := run(t, "check", "-C", writeSource(t, fullPage))
		require.NoError(t, err)
		assert.Contains(t, stdout, "3 blocks, no issues")
	})

	t.Run("warnings", func(t *testing.T) {
		stdout, _, err := run(t, "check", "-C", writeSource(t, "hero"))
		require.NoError(t, err)
		assert.Contains(t, stdout, core.WarnMissingFooter)
		assert.Contains(t, stdout, core.WarnMissingNavbar)
	})

	t.Run("strict", func(t *testing.T) {
		_, _, err := run(t, "check", "-C", writeSource(t, "hero"), "--strict")
		require.ErrorIs(t, err, errReported)
	})

	t.Run("syntax error", func(t *testing.T) {
		_, stderr, err := run(t, "check", "-C", writeSource(t, "hero {"))
		require.ErrorIs(t, err, errReported)
		assert.Contains(t, stderr, "page.psl:1:7:")
	})
}

func TestFmt(t *testing.T) {
	const messy = "hero{headline:Hi}  footer"
	const canonical = "hero {\n  headline: \"Hi\"\n}\n\nfooter\n"

	t.Run("prints canonical form", func(t *testing.T) {
		stdout, _, err := run(t, "fmt", "-C", writeSource(t, messy))
		require.NoError(t, err)
		assert.Equal(t, canonical, stdout)
	})

	t.Run("check fails on unformatted source", func(t *testing.T) {
		_, stderr, err := run(t, "fmt", "-C", writeSource(t, messy), "--check")
		require.ErrorIs(t, err, errReported)
		assert.Contains(t, stderr, "is not formatted")
	})

	t.Run("check passes on canonical source", func(t *testing.T) {
		_, _, err := run(t, "fmt", "-C", writeSource(t, canonical), "--check")
		require.NoError(t, err)
	})

	t.Run("write rewrites the file", func(t *testing.T) {
		dir := writeSource(t, messy)
		_, _, err := run(t, "fmt", "-C", dir, "-w")
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(dir, "page.psl"))
		require.NoError(t, err)
		assert.Equal(t, canonical, string(data))
	})
}

func TestFmtKeepsComments(t *testing.T) {
	const src = "# landing page\n\nhero{headline:Hi # greeting\n}  footer // end\n"
	const want = "# landing page\n\nhero {\n  headline: \"Hi\" # greeting\n}\n\nfooter // end\n"

	dir := writeSource(t, src)
	_, _, err := run(t, "fmt", "-C", dir, "-w")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "page.psl"))
	require.NoError(t, err)
	assert.Equal(t, want, string(data))

	_, _, err = run(t, "fmt", "-C", dir, "--check")
	require.NoError(t, err)
}

func TestInitScaffoldIsFormatted(t *testing.T) {
	for _, template := range []string{"starter", "blank"} {
		t.Run(template, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "acme-site")
			_, _, err := run(t, "init", "--template", template, dir)
			require.NoError(t, err)

			before, err := os.ReadFile(filepath.Join(dir, "page.psl"))
			require.NoError(t, err)

			stdout, stderr, err := run(t, "fmt", "-C", dir, "--check")
			require.NoError(t, err, stderr)
			assert.Contains(t, stdout, "is formatted")

			_, _, err = run(t, "fmt", "-C", dir, "-w")
			require.NoError(t, err)
			after, err := os.ReadFile(filepath.Join(dir, "page.psl"))
			require.NoError(t, err)
			assert.Equal(t, string(before), string(after))
		})
	}
}

func TestBlocksListsBuiltins(t *testing.T) {
	stdout, _, err := run(t, "blocks")
	require.NoError(t, err)

	assert.Contains(t, stdout, "TYPE")
	for _, id := range []string{"navbar", "hero", "features", "text", "cta", "footer"} {
		assert.Contains(t, stdout, id)
	}
	assert.Regexp(t, `navbar\s+\S.*\s+css,js`, stdout)
}

func TestInitThenBuild(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "acme-site")

	stdout, _, err := run(t, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Next steps")

	_, _, err = run(t, "build", "-C", dir)
	require.NoError(t, err)

	html, err := os.ReadFile(filepath.Join(dir, "dist", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "<title>Acme Site</title>")
}

func TestInitRejectsUnknownTemplate(t *testing.T) {
	_, stderr, err := run(t, "init", "--template", "nope", filepath.Join(t.TempDir(), "x"))
	require.ErrorIs(t, err, errReported)
	assert.Contains(t, stderr, "invalid template")
}
