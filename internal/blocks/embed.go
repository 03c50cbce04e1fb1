package blocks

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed styles/*.css scripts/*.js
var assetFS embed.FS

var blockTemplates = template.Must(template.New("blocks").ParseFS(templateFS, "templates/*.html"))

func asset(path string) string {
	data, err := assetFS.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}

// BaseStylesheet is the site-wide stylesheet shared by every block.
func BaseStylesheet() string {
	return asset("styles/base.css")
}
