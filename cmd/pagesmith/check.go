package main

import (
	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report syntax errors, structure warnings and block failures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCheck(cmd)
		},
	}
	cmd.Flags().String("source", "", "page source file (default page.psl)")
	cmd.Flags().Bool("strict", false, "treat warnings as errors")
	return cmd
}

func (a *app) runCheck(cmd *cobra.Command) error {
	s, err := a.setup(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	strict, _ := cmd.Flags().GetBool("strict")
	sourceName := a.displayPath(s.cfg.Source)

	source, err := s.readSource()
	if err != nil {
		return err
	}

	instances, errs := s.importSource(source)
	if len(errs) > 0 {
		for _, line := range formatParseErrors(sourceName, errs) {
			a.out.PrintError("%s", line)
		}
		return errReported
	}

	warnings := s.site.Validate(instances)
	for _, w := range warnings {
		a.out.PrintWarning("%s: %s", sourceName, w)
	}

	// generation surfaces the per-block failures
	gen := s.site.Generate(s.input(instances))
	if gen.Error != nil {
		return gen.Error
	}
	for _, d := range gen.Diagnostics {
		a.out.PrintWarning("%s: %s: %s", sourceName, diagnosticSubject(d), d.Message)
	}

	issues := len(warnings) + len(gen.Diagnostics)
	if issues == 0 {
		a.out.PrintSuccess("%s: %d blocks, no issues", sourceName, len(instances))
		return nil
	}
	if strict {
		return errReported
	}
	return nil
}
