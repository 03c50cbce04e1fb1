package output

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/3-lines-studio/pagesmith/internal/core"
)

const (
	StylesFile = "styles.css"
	ScriptFile = "script.js"
)

//go:embed document.html
var documentTemplateSource string

var documentTemplate = template.Must(template.New("document").Parse(documentTemplateSource))

// Compiler turns a render tree into site artifacts. It keeps no state
// between calls.
type Compiler struct{}

func NewCompiler() *Compiler {
	return &Compiler{}
}

type documentData struct {
	Lang        string
	Title       string
	Description string
	Meta        []core.MetaTag
	StylesHref  string
	InlineCSS   template.CSS
	Body        template.HTML
	ScriptSrc   string
	InlineJS    template.JS
}

// CompileFull emits index.html, styles.css and script.js contents. A tree
// without HTML fragments yields an empty document; CSS always carries the
// theme variables and base stylesheet.
func (c *Compiler) CompileFull(tree core.RenderTree, theme core.Theme, settings core.Settings) (core.GeneratedOutput, error) {
	css := Stylesheet(tree, theme)
	js := Script(tree)

	if len(tree.HTML) == 0 {
		return core.GeneratedOutput{CSS: css, JS: js}, nil
	}

	data := baseData(tree, settings)
	data.StylesHref = StylesFile
	if js != "" {
		data.ScriptSrc = ScriptFile
	}

	html, err := execute(data)
	if err != nil {
		return core.GeneratedOutput{}, err
	}

	return core.GeneratedOutput{HTML: html, CSS: css, JS: js}, nil
}

// CompileForPreview emits one self-contained document with styles and
// scripts inlined.
func (c *Compiler) CompileForPreview(tree core.RenderTree, theme core.Theme, settings core.Settings) (string, error) {
	data := baseData(tree, settings)
	data.InlineCSS = template.CSS(escapeClosingTags(Stylesheet(tree, theme)))
	if js := Script(tree); js != "" {
		data.InlineJS = template.JS(escapeClosingTags(js))
	}
	return execute(data)
}

// Stylesheet joins the theme variables with the tree's CSS fragments.
func Stylesheet(tree core.RenderTree, theme core.Theme) string {
	parts := append([]string{core.ThemeStylesheet(theme)}, tree.CSSTexts()...)
	return strings.Join(parts, "\n\n") + "\n"
}

// Script joins the tree's JS fragments, each in its own scope.
func Script(tree core.RenderTree) string {
	texts := tree.JSTexts()
	if len(texts) == 0 {
		return ""
	}
	wrapped := make([]string, len(texts))
	for i, text := range texts {
		wrapped[i] = "(function () {\n" + text + "\n})();"
	}
	return strings.Join(wrapped, "\n\n") + "\n"
}

func baseData(tree core.RenderTree, settings core.Settings) documentData {
	s := settings.WithDefaults()
	return documentData{
		Lang:        s.Lang,
		Title:       s.Title,
		Description: s.Description,
		Meta:        s.MetaTags(),
		Body:        template.HTML(strings.Join(tree.HTML, "\n")),
	}
}

func execute(data documentData) (string, error) {
	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render document: %w", err)
	}
	return buf.String(), nil
}

func escapeClosingTags(s string) string {
	return strings.ReplaceAll(s, "</", "<\\/")
}
