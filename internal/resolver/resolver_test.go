package resolver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3-lines-studio/pagesmith/internal/core"
	"github.com/3-lines-studio/pagesmith/internal/registry"
)

const base = "* { box-sizing: border-box; }"

func static(text string) registry.RenderFunc {
	return func(core.Config) (string, error) { return text, nil }
}

func testRegistry() *registry.Catalog {
	c := registry.NewCatalog(base)
	for _, id := range []string{"navbar", "hero", "text", "footer"} {
		c.Register(&registry.Block{
			ID: id,
			RenderHTML: func(cfg core.Config) (string, error) {
				return "<section class=\"" + id + "\">" + cfg.GetString("body", "") + "</section>", nil
			},
			RenderCSS: static("." + id + " {}"),
			RenderJS:  static("/* " + id + " */"),
		})
	}
	return c
}

func inst(id, typeID string, cfg core.Config) core.BlockInstance {
	return core.BlockInstance{ID: id, TypeID: typeID, Config: cfg}
}

func TestResolvePreservesOrder(t *testing.T) {
	tree := Resolve([]core.BlockInstance{
		inst("1", "navbar", nil),
		inst("2", "text", core.Config{"body": "a"}),
		inst("3", "hero", nil),
		inst("4", "text", core.Config{"body": "b"}),
		inst("5", "footer", nil),
	}, testRegistry())

	assert.Equal(t, []string{
		`<section class="navbar"></section>`,
		`<section class="text">a</section>`,
		`<section class="hero"></section>`,
		`<section class="text">b</section>`,
		`<section class="footer"></section>`,
	}, tree.HTML)
	assert.Empty(t, tree.Diagnostics)
	assert.Equal(t, core.Meta{
		Count:     5,
		HasNavbar: true,
		HasFooter: true,
		TypeIDs:   []string{"navbar", "text", "hero", "text", "footer"},
	}, tree.Meta)
}

func TestResolveDedupsByType(t *testing.T) {
	tree := Resolve([]core.BlockInstance{
		inst("1", "hero", nil),
		inst("2", "text", nil),
		inst("3", "hero", nil),
		inst("4", "text", nil),
		inst("5", "hero", nil),
	}, testRegistry())

	assert.Equal(t, []string{base, ".hero {}", ".text {}"}, tree.CSSTexts())
	assert.Equal(t, []string{"/* hero */", "/* text */"}, tree.JSTexts())
	assert.Len(t, tree.HTML, 5)
}

func TestResolveCSSComesFromFirstOccurrence(t *testing.T) {
	c := registry.NewCatalog(base)
	c.Register(&registry.Block{
		ID: "text",
		RenderCSS: func(cfg core.Config) (string, error) {
			return ".text { color: " + cfg.GetString("color", "black") + "; }", nil
		},
	})

	tree := Resolve([]core.BlockInstance{
		inst("1", "text", core.Config{"color": "red"}),
		inst("2", "text", core.Config{"color": "blue"}),
	}, c)
	assert.Equal(t, []string{base, ".text { color: red; }"}, tree.CSSTexts())
}

func TestResolveBaseStylesheetFirst(t *testing.T) {
	for _, instances := range [][]core.BlockInstance{
		nil,
		{},
		{inst("1", "footer", nil), inst("2", "navbar", nil)},
		{inst("1", "ghost", nil)},
	} {
		tree := Resolve(instances, testRegistry())
		require.NotEmpty(t, tree.CSS)
		assert.Equal(t, core.Fragment{Key: core.BaseStyleKey, Text: base}, tree.CSS[0])
	}
}

func TestResolveEmptyBaseStylesheetStillFirst(t *testing.T) {
	tree := Resolve(nil, registry.NewCatalog(""))
	require.Len(t, tree.CSS, 1)
	assert.Equal(t, core.BaseStyleKey, tree.CSS[0].Key)
	assert.Empty(t, tree.HTML)
	assert.Empty(t, tree.JS)
	assert.Equal(t, 0, tree.Meta.Count)
}

func TestResolveIsIdempotent(t *testing.T) {
	reg := testRegistry()
	instances := []core.BlockInstance{
		inst("1", "navbar", nil),
		inst("2", "ghost", nil),
		inst("3", "text", core.Config{"body": "x"}),
	}

	first := Resolve(instances, reg)
	assert.Equal(t, first, Resolve(instances, reg))
}

func TestResolveUnknownType(t *testing.T) {
	tree := Resolve([]core.BlockInstance{
		inst("1", "hero", nil),
		inst("2", "ghost", core.Config{"body": "boo"}),
		inst("", "text", nil),
	}, testRegistry())

	assert.Equal(t, []string{`<section class="hero"></section>`, `<section class="text"></section>`}, tree.HTML)
	assert.Equal(t, []string{base, ".hero {}", ".text {}"}, tree.CSSTexts())
	assert.Equal(t, []string{"hero", "text"}, tree.Meta.TypeIDs)
	assert.Equal(t, 3, tree.Meta.Count)

	require.Len(t, tree.Diagnostics, 1)
	d := tree.Diagnostics[0]
	assert.Equal(t, "2", d.InstanceID)
	assert.Equal(t, 1, d.Index)
	assert.Equal(t, "ghost", d.TypeID)
	assert.Equal(t, core.StageLookup, d.Stage)
	assert.Equal(t, core.DiagnosticUnknownType, d.Kind)
}

func TestResolveFailingDefinitions(t *testing.T) {
	c := registry.NewCatalog(base)
	c.Register(&registry.Block{
		ID:         "broken-html",
		RenderHTML: func(core.Config) (string, error) { return "<p>partial", errors.New("template exploded") },
		RenderCSS:  static(".broken-html {}"),
	})
	c.Register(&registry.Block{
		ID:         "panicky",
		RenderHTML: static("<p>ok</p>"),
		RenderCSS:  func(core.Config) (string, error) { panic("nil map") },
		RenderJS:   static("console.log('panicky')"),
	})

	instances := []core.BlockInstance{
		inst("a", "broken-html", nil),
		inst("", "panicky", nil),
		inst("c", "panicky", nil),
	}

	var tree core.RenderTree
	require.NotPanics(t, func() { tree = Resolve(instances, c) })

	assert.Equal(t, []string{"<p>ok</p>", "<p>ok</p>"}, tree.HTML)
	// the failed first attempt still claims the type
	assert.Equal(t, []string{base, ".broken-html {}"}, tree.CSSTexts())
	assert.Equal(t, []string{"console.log('panicky')"}, tree.JSTexts())

	require.Len(t, tree.Diagnostics, 2)
	assert.Equal(t, core.Diagnostic{
		InstanceID: "a",
		Index:      0,
		TypeID:     "broken-html",
		Stage:      core.StageHTML,
		Kind:       core.DiagnosticTemplateFailure,
		Message:    "template exploded",
	}, tree.Diagnostics[0])
	assert.Equal(t, "#1", tree.Diagnostics[1].InstanceID)
	assert.Equal(t, core.StageCSS, tree.Diagnostics[1].Stage)
	assert.Equal(t, "panic: nil map", tree.Diagnostics[1].Message)
}

func TestResolveDropsBlankHTML(t *testing.T) {
	c := registry.NewCatalog(base)
	c.Register(&registry.Block{ID: "spacer", RenderHTML: static("  \n ")})

	tree := Resolve([]core.BlockInstance{inst("1", "spacer", nil)}, c)
	assert.Empty(t, tree.HTML)
	assert.Equal(t, []string{"spacer"}, tree.Meta.TypeIDs)
}

func TestResolveDoesNotMutateInput(t *testing.T) {
	c := registry.NewCatalog(base)
	c.Register(&registry.Block{
		ID: "greedy",
		RenderHTML: func(cfg core.Config) (string, error) {
			cfg["touched"] = true
			return "<p></p>", nil
		},
	})

	cfg := core.Config{"a": "b"}
	Resolve([]core.BlockInstance{inst("1", "greedy", cfg)}, c)
	assert.Equal(t, core.Config{"a": "b"}, cfg)
}
