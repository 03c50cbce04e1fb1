package templates

import (
	"embed"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

//go:embed all:starter
var starterFS embed.FS

//go:embed all:blank
var blankFS embed.FS

var ValidTemplates = []string{"starter", "blank"}

var ErrInvalidTemplate = errors.New("invalid template name")

func GetTemplate(name string) (fs.FS, error) {
	switch name {
	case "starter":
		return fs.Sub(starterFS, "starter")
	case "blank":
		return fs.Sub(blankFS, "blank")
	default:
		return nil, ErrInvalidTemplate
	}
}

type TemplateData struct {
	Title string
}

func ProcessFilename(filename string, data TemplateData) (string, bool) {
	if before, ok := strings.CutSuffix(filename, ".tmpl"); ok {
		return before, true
	}
	return filename, false
}

// ProcessContent fills placeholders in .tmpl files. Values are escaped for
// the double-quoted strings they land in.
func ProcessContent(content []byte, isTemplate bool, data TemplateData) []byte {
	if !isTemplate {
		return content
	}

	result := string(content)
	result = strings.ReplaceAll(result, "{{.Title}}", quoteSafe(data.Title))

	return []byte(result)
}

// DeriveSiteTitle turns a project directory into a display title.
func DeriveSiteTitle(projectDir string) string {
	base := filepath.Base(projectDir)
	if base == "." || base == "/" || base == "" {
		return "My Site"
	}

	words := strings.FieldsFunc(base, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	if len(words) == 0 {
		return "My Site"
	}
	return strings.Join(words, " ")
}

func quoteSafe(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", " ").Replace(s)
}
