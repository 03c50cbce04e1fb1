package pagesmith_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3-lines-studio/pagesmith"
	"github.com/3-lines-studio/pagesmith/internal/logger"
	"github.com/3-lines-studio/pagesmith/internal/metrics"
	"github.com/3-lines-studio/pagesmith/internal/registry"
)

type sliceSink struct {
	calls     int
	instances []pagesmith.BlockInstance
}

func (s *sliceSink) ReplaceInstances(instances []pagesmith.BlockInstance) {
	s.calls++
	s.instances = instances
}

func TestStudioDefaults(t *testing.T) {
	studio := pagesmith.New(pagesmith.WithLogger(logger.NewTestLogger(t)))

	out := studio.Generate([]pagesmith.BlockInstance{
		{ID: "n", TypeID: "navbar", Config: pagesmith.Config{"title": "Acme"}},
		{ID: "f", TypeID: "footer"},
	}, pagesmith.Theme{}, pagesmith.Settings{Title: "Acme"})

	require.NoError(t, out.Error)
	assert.Empty(t, out.Warnings)
	assert.Contains(t, out.Output.HTML, "<title>Acme</title>")
	assert.Contains(t, out.Output.CSS, "--ps-color-primary")
}

func TestStudioCustomRegistry(t *testing.T) {
	catalog := registry.NewCatalog(".page{margin:0}")
	catalog.Register(&registry.Block{
		ID:         "banner",
		RenderHTML: func(cfg pagesmith.Config) (string, error) { return "<div>" + cfg.GetString("text", "") + "</div>", nil },
	})

	studio := pagesmith.New(pagesmith.WithRegistry(catalog))
	out := studio.Preview([]pagesmith.BlockInstance{{TypeID: "banner", Config: pagesmith.Config{"text": "hi"}}},
		pagesmith.Theme{}, pagesmith.Settings{})

	require.NoError(t, out.Error)
	assert.Contains(t, out.HTML, "<div>hi</div>")
	assert.Contains(t, out.HTML, ".page{margin:0}")
}

func TestStudioMissingCollaborator(t *testing.T) {
	studio := pagesmith.New(pagesmith.WithOutputCompiler(nil))

	out := studio.Generate(nil, pagesmith.Theme{}, pagesmith.Settings{})
	require.Error(t, out.Error)
	assert.True(t, errors.Is(out.Error, pagesmith.ErrMissingCollaborator))
	assert.NotEmpty(t, out.Warnings)
}

func TestStudioDSLRoundTrip(t *testing.T) {
	studio := pagesmith.New()
	sink := &sliceSink{}

	errs := studio.ImportDSL("navbar { title: \"Acme\" }\nhero\nfooter", sink)
	require.Empty(t, errs)
	require.Equal(t, 1, sink.calls)

	text, err := studio.ExportDSL(sink.instances)
	require.NoError(t, err)
	assert.Equal(t, "navbar {\n  title: \"Acme\"\n}\n\nhero\n\nfooter\n", text)
	assert.Empty(t, studio.Validate(sink.instances))
}

func TestStudioImportRejectsMalformedSource(t *testing.T) {
	studio := pagesmith.New()
	sink := &sliceSink{}

	errs := studio.ImportDSL("navbar { title:", sink)
	require.Len(t, errs, 1)
	assert.Equal(t, pagesmith.ParseError{Line: 1, Col: 16, Msg: `expected value for key "title", found end of input`}, errs[0])
	assert.Zero(t, sink.calls)
}

func TestStudioMetrics(t *testing.T) {
	m := metrics.New()
	studio := pagesmith.New(pagesmith.WithMetrics(m))

	studio.Generate(nil, pagesmith.Theme{}, pagesmith.Settings{})
	studio.Preview(nil, pagesmith.Theme{}, pagesmith.Settings{})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.PassesTotal.WithLabelValues(metrics.PassGenerate, "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PassesTotal.WithLabelValues(metrics.PassPreview, "ok")))
}

func TestStudioExportSite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dist")
	studio := pagesmith.New()

	out := studio.ExportSite(dir, []pagesmith.BlockInstance{
		{TypeID: "navbar", Config: pagesmith.Config{"links": "Home|About"}},
		{TypeID: "footer"},
	}, pagesmith.Theme{}, pagesmith.Settings{})
	require.NoError(t, out.Error)
	assert.Len(t, out.Files, 3)

	for _, name := range []string{"index.html", "styles.css", "script.js"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.NotEmpty(t, data, name)
	}
}
