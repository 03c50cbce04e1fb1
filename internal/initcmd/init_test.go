package initcmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/3-lines-studio/pagesmith/internal/adapters/cli"
)

func TestRun_Starter(t *testing.T) {
	tmpDir := t.TempDir()
	projectDir := filepath.Join(tmpDir, "mysite")

	var stdout, stderr bytes.Buffer
	err := Run(cli.NewOutputTo(&stdout, &stderr), projectDir, "starter", "")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	expectedFiles := []string{
		"page.psl",
		"pagesmith.yaml",
		".gitignore",
	}

	for _, file := range expectedFiles {
		path := filepath.Join(projectDir, file)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			t.Errorf("Expected file %s to be created, but it doesn't exist", file)
		}
	}

	configContent, err := os.ReadFile(filepath.Join(projectDir, "pagesmith.yaml"))
	if err != nil {
		t.Fatalf("Failed to read pagesmith.yaml: %v", err)
	}

	if !strings.Contains(string(configContent), `title: "Mysite"`) {
		t.Errorf("pagesmith.yaml doesn't contain the derived title. Got:\n%s", string(configContent))
	}

	if !strings.Contains(stdout.String(), "pagesmith preview") {
		t.Errorf("expected next steps in output, got:\n%s", stdout.String())
	}
}

func TestRun_DirectoryNotEmpty(t *testing.T) {
	tmpDir := t.TempDir()
	projectDir := filepath.Join(tmpDir, "mysite")

	if err := os.MkdirAll(projectDir, 0755); err != nil {
		t.Fatalf("Failed to create project dir: %v", err)
	}

	if err := os.WriteFile(filepath.Join(projectDir, "existing.txt"), []byte("test"), 0644); err != nil {
		t.Fatalf("Failed to create existing file: %v", err)
	}

	var stdout, stderr bytes.Buffer
	err := Run(cli.NewOutputTo(&stdout, &stderr), projectDir, "starter", "")
	if err == nil {
		t.Error("Run() expected error for non-empty directory, got nil")
	}
}

func TestRun_EmptyExistingDirectory(t *testing.T) {
	projectDir := t.TempDir()

	var stdout, stderr bytes.Buffer
	if err := Run(cli.NewOutputTo(&stdout, &stderr), projectDir, "blank", "Docs"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	page, err := os.ReadFile(filepath.Join(projectDir, "page.psl"))
	if err != nil {
		t.Fatalf("Failed to read page.psl: %v", err)
	}
	if !strings.Contains(string(page), `title: "Docs"`) {
		t.Errorf("page.psl should use the explicit title. Got:\n%s", string(page))
	}
}
