package initcmd

import (
	"fmt"

	"github.com/3-lines-studio/pagesmith/internal/adapters/cli"
	"github.com/3-lines-studio/pagesmith/internal/adapters/fs"
	"github.com/3-lines-studio/pagesmith/internal/usecase"
)

// Run scaffolds a new site into projectDir and prints the next steps.
func Run(out *cli.Output, projectDir, templateName, title string) error {
	svc := usecase.NewInitService(fs.NewOSFileSystem(), out)

	result := svc.InitProject(usecase.InitInput{
		ProjectDir: projectDir,
		Template:   templateName,
		Title:      title,
	})
	if result.Error != nil {
		return result.Error
	}

	w := out.Writer()
	fmt.Fprintln(w)
	out.PrintStep(cli.EmojiInfo, "Next steps:")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  cd %s\n", projectDir)
	fmt.Fprintf(w, "  pagesmith preview\n")
	fmt.Fprintf(w, "  pagesmith build\n")
	fmt.Fprintln(w)

	return nil
}
