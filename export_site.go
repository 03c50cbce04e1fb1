package pagesmith

import (
	"github.com/3-lines-studio/pagesmith/internal/adapters/fs"
	"github.com/3-lines-studio/pagesmith/internal/usecase"
)

type ExportOutput = usecase.ExportOutput

// ExportSite writes index.html, styles.css and script.js into dir. Empty
// artifacts are skipped, except styles.css which is always written.
func (s *Studio) ExportSite(dir string, instances []BlockInstance, theme Theme, settings Settings) ExportOutput {
	svc := usecase.NewExportService(s.site, fs.NewOSFileSystem())
	return svc.ExportSite(usecase.ExportInput{
		GenerateInput: GenerateInput{Instances: instances, Theme: theme, Settings: settings},
		Dir:           dir,
	})
}
