package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/3-lines-studio/pagesmith/internal/adapters/cli"
	"github.com/3-lines-studio/pagesmith/internal/adapters/fs"
	"github.com/3-lines-studio/pagesmith/internal/usecase"
)

func newBuildCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Generate index.html, styles.css and script.js",
		Long: `Build reads the page source, resolves every block and writes the
generated site into the output directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBuild(cmd)
		},
	}
	cmd.Flags().String("source", "", "page source file (default page.psl)")
	cmd.Flags().StringP("out", "o", "", "output directory (default dist)")
	cmd.Flags().String("theme", "", "theme mode: light or dark")
	cmd.Flags().String("title", "", "document title")
	return cmd
}

func (a *app) runBuild(cmd *cobra.Command) error {
	s, err := a.setup(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	a.out.PrintHeader("Pagesmith Build")
	report := cli.NewBuildReport(a.out, a.out.Writer(), a.displayPath(s.cfg.Out))
	sourceName := a.displayPath(s.cfg.Source)

	step := report.StartStep("Parse " + sourceName)
	source, err := s.readSource()
	if err != nil {
		report.EndStep(step, false, err.Error())
		report.Render()
		return errReported
	}
	instances, errs := s.importSource(source)
	if len(errs) > 0 {
		report.EndStep(step, false, fmt.Sprintf("%d syntax error(s)", len(errs)))
		for _, e := range errs {
			report.AddSyntaxError(fmt.Sprintf("%s:%d:%d", sourceName, e.Line, e.Col), e.Msg)
		}
		report.Render()
		return errReported
	}
	report.EndStep(step, true, "")
	report.SetBlockCount(len(instances))

	step = report.StartStep("Write site")
	exporter := usecase.NewExportService(s.site, fs.NewOSFileSystem())
	result := exporter.ExportSite(usecase.ExportInput{
		GenerateInput: s.input(instances),
		Dir:           s.cfg.Out,
	})

	for _, w := range result.Warnings {
		report.AddStructureWarning(w)
	}
	for _, d := range result.Diagnostics {
		report.AddDiagnostic(d)
	}

	if result.Error != nil {
		report.EndStep(step, false, "")
		report.Fail(result.Error.Error())
		report.Render()
		return errReported
	}
	report.EndStep(step, true, "")
	report.Render()

	for _, f := range result.Files {
		a.out.PrintFile(a.displayPath(f))
	}
	return nil
}
