package usecase

import (
	"fmt"
	"path/filepath"

	"github.com/3-lines-studio/pagesmith/internal/core"
	"github.com/3-lines-studio/pagesmith/internal/output"
)

// IndexFile is the exported document name.
const IndexFile = output.IndexFile

type ExportInput struct {
	GenerateInput
	Dir string
}

type ExportOutput struct {
	Files       []string
	Warnings    []string
	Diagnostics []core.Diagnostic
	Error       error
}

type ExportService struct {
	site *SiteService
	fs   FileSystem
}

func NewExportService(site *SiteService, fs FileSystem) *ExportService {
	return &ExportService{
		site: site,
		fs:   fs,
	}
}

// ExportSite generates the site and writes its artifacts into input.Dir.
// Empty artifacts are not written, and stale copies from an earlier export
// are removed.
func (s *ExportService) ExportSite(input ExportInput) ExportOutput {
	if input.Dir == "" {
		return ExportOutput{Error: fmt.Errorf("missing export directory")}
	}

	gen := s.site.Generate(input.GenerateInput)
	if gen.Error != nil {
		return ExportOutput{
			Warnings:    gen.Warnings,
			Diagnostics: gen.Diagnostics,
			Error:       gen.Error,
		}
	}

	if err := s.fs.MkdirAll(input.Dir, 0o755); err != nil {
		return ExportOutput{
			Warnings:    gen.Warnings,
			Diagnostics: gen.Diagnostics,
			Error:       fmt.Errorf("failed to create export dir: %w", err),
		}
	}

	artifacts := []struct {
		name     string
		content  string
		optional bool
	}{
		{IndexFile, gen.Output.HTML, true},
		{output.StylesFile, gen.Output.CSS, false},
		{output.ScriptFile, gen.Output.JS, true},
	}

	var files []string
	for _, a := range artifacts {
		path := filepath.Join(input.Dir, a.name)

		if a.optional && a.content == "" {
			if s.fs.FileExists(path) {
				if err := s.fs.Remove(path); err != nil {
					return ExportOutput{Files: files, Warnings: gen.Warnings, Diagnostics: gen.Diagnostics,
						Error: fmt.Errorf("failed to remove stale %s: %w", a.name, err)}
				}
			}
			continue
		}

		if err := s.fs.WriteFile(path, []byte(a.content), 0o644); err != nil {
			return ExportOutput{Files: files, Warnings: gen.Warnings, Diagnostics: gen.Diagnostics,
				Error: fmt.Errorf("failed to write %s: %w", a.name, err)}
		}
		files = append(files, path)
	}

	return ExportOutput{
		Files:       files,
		Warnings:    gen.Warnings,
		Diagnostics: gen.Diagnostics,
	}
}
