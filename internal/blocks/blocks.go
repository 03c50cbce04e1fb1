package blocks

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/3-lines-studio/pagesmith/internal/core"
	"github.com/3-lines-studio/pagesmith/internal/registry"
)

type Link struct {
	Label string
	Href  string
}

// NewCatalog returns a catalog holding every built-in block.
func NewCatalog() *registry.Catalog {
	c := registry.NewCatalog(BaseStylesheet())
	for _, b := range Builtins() {
		c.Register(b)
	}
	return c
}

func Builtins() []*registry.Block {
	return []*registry.Block{
		newBlock(core.NavbarType, "Navigation bar", navbarView),
		newBlock("hero", "Hero", heroView),
		newBlock("features", "Feature grid", featuresView),
		newBlock("text", "Text", textView),
		newBlock("cta", "Call to action", ctaView),
		newBlock(core.FooterType, "Footer", footerView),
	}
}

func newBlock(id, label string, view func(core.Config) (any, error)) *registry.Block {
	css := asset("styles/" + id + ".css")
	js := asset("scripts/" + id + ".js")

	return &registry.Block{
		ID:    id,
		Label: label,
		RenderHTML: func(cfg core.Config) (string, error) {
			data, err := view(cfg)
			if err != nil {
				return "", err
			}
			var buf bytes.Buffer
			if err := blockTemplates.ExecuteTemplate(&buf, id+".html", data); err != nil {
				return "", fmt.Errorf("render %s: %w", id, err)
			}
			return buf.String(), nil
		},
		RenderCSS: func(core.Config) (string, error) { return css, nil },
		RenderJS:  func(core.Config) (string, error) { return js, nil },
	}
}

func navbarView(cfg core.Config) (any, error) {
	return struct {
		Title  string
		Sticky bool
		Links  []Link
	}{
		Title:  cfg.GetString("title", "My Site"),
		Sticky: cfg.GetBool("sticky", false),
		Links:  parseLinks(cfg.GetString("links", "")),
	}, nil
}

func heroView(cfg core.Config) (any, error) {
	align := cfg.GetString("align", "center")
	if align != "center" && align != "left" {
		return nil, fmt.Errorf("align must be \"center\" or \"left\", got %q", align)
	}
	return struct {
		Headline    string
		Subheadline string
		CTALabel    string
		CTAHref     string
		Align       string
	}{
		Headline:    cfg.GetString("headline", "Build something people want"),
		Subheadline: cfg.GetString("subheadline", ""),
		CTALabel:    cfg.GetString("cta_label", ""),
		CTAHref:     cfg.GetString("cta_href", "#"),
		Align:       align,
	}, nil
}

func featuresView(cfg core.Config) (any, error) {
	columns := cfg.GetInt("columns", 3)
	if columns < 1 || columns > 4 {
		return nil, fmt.Errorf("columns must be between 1 and 4, got %d", columns)
	}
	return struct {
		Title   string
		Items   []string
		Columns int64
	}{
		Title:   cfg.GetString("title", "Features"),
		Items:   splitList(cfg.GetString("items", "Fast|Simple|Reliable")),
		Columns: columns,
	}, nil
}

func textView(cfg core.Config) (any, error) {
	var paragraphs []string
	for _, p := range strings.Split(cfg.GetString("body", ""), "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return struct {
		Title      string
		Paragraphs []string
	}{
		Title:      cfg.GetString("title", ""),
		Paragraphs: paragraphs,
	}, nil
}

func ctaView(cfg core.Config) (any, error) {
	return struct {
		Headline string
		Label    string
		Href     string
	}{
		Headline: cfg.GetString("headline", "Ready to get started?"),
		Label:    cfg.GetString("label", "Get started"),
		Href:     cfg.GetString("href", "#"),
	}, nil
}

func footerView(cfg core.Config) (any, error) {
	text := cfg.GetString("text", "")
	if text == "" {
		owner := cfg.GetString("owner", "My Site")
		if year := cfg.GetInt("year", 0); year > 0 {
			text = fmt.Sprintf("© %d %s", year, owner)
		} else {
			text = "© " + owner
		}
	}
	return struct {
		Text  string
		Links []Link
	}{
		Text:  text,
		Links: parseLinks(cfg.GetString("links", "")),
	}, nil
}

// splitList splits a "a|b|c" config value, dropping blank items.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, "|") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// parseLinks reads "Label=/href|Other" lists. Items without an href link to
// an anchor derived from the label.
func parseLinks(s string) []Link {
	var links []Link
	for _, item := range splitList(s) {
		label, href, ok := strings.Cut(item, "=")
		label = strings.TrimSpace(label)
		href = strings.TrimSpace(href)
		if !ok || href == "" {
			href = "#" + slug(label)
		}
		links = append(links, Link{Label: label, Href: href})
	}
	return links
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
