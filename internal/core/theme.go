package core

import (
	"fmt"
	"slices"
	"strings"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

type Theme struct {
	Mode       string `mapstructure:"mode" json:"mode"`
	Primary    string `mapstructure:"primary" json:"primary,omitempty"`
	Accent     string `mapstructure:"accent" json:"accent,omitempty"`
	Background string `mapstructure:"background" json:"background,omitempty"`
	Surface    string `mapstructure:"surface" json:"surface,omitempty"`
	Text       string `mapstructure:"text" json:"text,omitempty"`
	Radius     string `mapstructure:"radius" json:"radius,omitempty"`
	Font       string `mapstructure:"font" json:"font,omitempty"`
}

type Settings struct {
	Title       string            `mapstructure:"title" json:"title,omitempty"`
	Description string            `mapstructure:"description" json:"description,omitempty"`
	Lang        string            `mapstructure:"lang" json:"lang,omitempty"`
	Meta        map[string]string `mapstructure:"meta" json:"meta,omitempty"`
}

func DefaultTheme() Theme {
	return Theme{
		Mode:       ThemeLight,
		Primary:    "#4f46e5",
		Accent:     "#f59e0b",
		Background: "#ffffff",
		Surface:    "#f8fafc",
		Text:       "#0f172a",
		Radius:     "8px",
		Font:       "system-ui, -apple-system, sans-serif",
	}
}

var darkPalette = Theme{
	Background: "#0b1120",
	Surface:    "#111827",
	Text:       "#e5e7eb",
}

// WithDefaults fills empty fields. Dark mode swaps in the dark surface palette.
func (t Theme) WithDefaults() Theme {
	def := DefaultTheme()
	if t.Mode == ThemeDark {
		def.Mode = ThemeDark
		def.Background = darkPalette.Background
		def.Surface = darkPalette.Surface
		def.Text = darkPalette.Text
	}
	out := t
	fill := func(dst *string, v string) {
		if strings.TrimSpace(*dst) == "" {
			*dst = v
		}
	}
	fill(&out.Mode, def.Mode)
	fill(&out.Primary, def.Primary)
	fill(&out.Accent, def.Accent)
	fill(&out.Background, def.Background)
	fill(&out.Surface, def.Surface)
	fill(&out.Text, def.Text)
	fill(&out.Radius, def.Radius)
	fill(&out.Font, def.Font)
	return out
}

func (s Settings) WithDefaults() Settings {
	out := s
	if out.Title == "" {
		out.Title = "My Site"
	}
	if out.Lang == "" {
		out.Lang = "en"
	}
	return out
}

type MetaTag struct {
	Name    string
	Content string
}

func (s Settings) MetaTags() []MetaTag {
	names := make([]string, 0, len(s.Meta))
	for name := range s.Meta {
		names = append(names, name)
	}
	slices.Sort(names)
	tags := make([]MetaTag, 0, len(names))
	for _, name := range names {
		tags = append(tags, MetaTag{Name: name, Content: s.Meta[name]})
	}
	return tags
}

// ThemeStylesheet renders the theme as CSS custom properties on :root.
func ThemeStylesheet(theme Theme) string {
	t := theme.WithDefaults()
	vars := []struct{ name, value string }{
		{"--ps-color-primary", t.Primary},
		{"--ps-color-accent", t.Accent},
		{"--ps-color-bg", t.Background},
		{"--ps-color-surface", t.Surface},
		{"--ps-color-text", t.Text},
		{"--ps-radius", t.Radius},
		{"--ps-font", t.Font},
	}

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, v := range vars {
		fmt.Fprintf(&b, "  %s: %s;\n", v.name, cssValue(v.value))
	}
	fmt.Fprintf(&b, "  color-scheme: %s;\n", cssValue(t.Mode))
	b.WriteString("}")
	return b.String()
}

// cssValue drops characters that would close the declaration or the rule.
func cssValue(v string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ';', '{', '}', '<', '>', '\n', '\r':
			return -1
		}
		return r
	}, strings.TrimSpace(v))
}
