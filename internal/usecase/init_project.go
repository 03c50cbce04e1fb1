package usecase

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"path/filepath"

	"github.com/3-lines-studio/pagesmith/internal/templates"
)

type InitInput struct {
	ProjectDir string
	Template   string
	Title      string
}

type InitOutput struct {
	Success bool
	Files   []string
	Error   error
}

type InitService struct {
	fs  FileSystem
	cli CLIOutput
}

func NewInitService(fs FileSystem, cli CLIOutput) *InitService {
	return &InitService{
		fs:  fs,
		cli: cli,
	}
}

func (s *InitService) InitProject(input InitInput) InitOutput {
	s.cli.PrintHeader("pagesmith init")

	if s.fs.FileExists(input.ProjectDir) {
		entries, err := s.fs.ReadDir(input.ProjectDir)
		if err != nil {
			return InitOutput{
				Success: false,
				Error:   fmt.Errorf("failed to read directory: %w", err),
			}
		}

		if len(entries) > 0 {
			return InitOutput{
				Success: false,
				Error:   fmt.Errorf("directory '%s' already exists and is not empty", input.ProjectDir),
			}
		}
	}

	templateFS, err := templates.GetTemplate(input.Template)
	if err != nil {
		if errors.Is(err, templates.ErrInvalidTemplate) {
			return InitOutput{Success: false, Error: fmt.Errorf("invalid template '%s'", input.Template)}
		}
		return InitOutput{Success: false, Error: err}
	}

	if err := s.fs.MkdirAll(input.ProjectDir, 0o755); err != nil {
		return InitOutput{Success: false, Error: fmt.Errorf("failed to create project directory: %w", err)}
	}

	title := input.Title
	if title == "" {
		title = templates.DeriveSiteTitle(input.ProjectDir)
	}
	data := templates.TemplateData{Title: title}

	var files []string
	err = iofs.WalkDir(templateFS, ".", func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			targetDir := filepath.Join(input.ProjectDir, path)
			if err := s.fs.MkdirAll(targetDir, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", targetDir, err)
			}
			return nil
		}

		content, err := iofs.ReadFile(templateFS, path)
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", path, err)
		}

		targetPath, isTemplate := templates.ProcessFilename(path, data)
		targetPath = filepath.Join(input.ProjectDir, targetPath)

		if err := s.fs.WriteFile(targetPath, templates.ProcessContent(content, isTemplate, data), 0o644); err != nil {
			return fmt.Errorf("failed to write file %s: %w", targetPath, err)
		}

		if isTemplate {
			s.cli.PrintFile(targetPath + " (generated)")
		} else {
			s.cli.PrintFile(targetPath)
		}
		files = append(files, targetPath)
		return nil
	})
	if err != nil {
		return InitOutput{Success: false, Files: files, Error: err}
	}

	s.cli.PrintSuccess("Created %d files using '%s' template", len(files), input.Template)
	return InitOutput{
		Success: true,
		Files:   files,
	}
}
