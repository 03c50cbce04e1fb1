package output

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/3-lines-studio/pagesmith/internal/core"
)

const IndexFile = "index.html"

var contentTypes = map[string]string{
	".html": "text/html; charset=utf-8",
	".css":  "text/css; charset=utf-8",
	".js":   "text/javascript; charset=utf-8",
}

func ContentType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Artifact returns the content of one of the three generated files.
func Artifact(out core.GeneratedOutput, name string) (string, bool) {
	switch name {
	case IndexFile:
		return out.HTML, true
	case StylesFile:
		return out.CSS, true
	case ScriptFile:
		return out.JS, true
	}
	return "", false
}

// Fingerprint is a short content hash suitable for an ETag.
func Fingerprint(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}
