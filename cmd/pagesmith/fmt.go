package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/3-lines-studio/pagesmith/internal/dsl"
)

func newFmtCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt",
		Short: "Rewrite the page source in canonical form",
		Long: `Fmt prints the page source in canonical form. With --write the file is
updated in place; with --check the command fails when the file is not
already formatted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFmt(cmd)
		},
	}
	cmd.Flags().String("source", "", "page source file (default page.psl)")
	cmd.Flags().BoolP("write", "w", false, "write the result back to the source file")
	cmd.Flags().Bool("check", false, "fail if the source is not formatted")
	return cmd
}

func (a *app) runFmt(cmd *cobra.Command) error {
	s, err := a.setup(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	write, _ := cmd.Flags().GetBool("write")
	check, _ := cmd.Flags().GetBool("check")
	sourceName := a.displayPath(s.cfg.Source)

	source, err := s.readSource()
	if err != nil {
		return err
	}

	formatted, errs := dsl.Format(source)
	if len(errs) > 0 {
		s.metrics.ObserveParseErrors(len(errs))
		for _, line := range formatParseErrors(sourceName, errs) {
			a.out.PrintError("%s", line)
		}
		return errReported
	}

	switch {
	case check:
		if formatted != source {
			a.out.PrintError("%s is not formatted", sourceName)
			return errReported
		}
		a.out.PrintSuccess("%s is formatted", sourceName)
	case write:
		if formatted == source {
			return nil
		}
		info, err := os.Stat(s.cfg.Source)
		if err != nil {
			return fmt.Errorf("failed to stat source: %w", err)
		}
		if err := os.WriteFile(s.cfg.Source, []byte(formatted), info.Mode().Perm()); err != nil {
			return fmt.Errorf("failed to write source: %w", err)
		}
		a.out.PrintSuccess("Formatted %s", sourceName)
	default:
		_, _ = io.WriteString(a.out.Writer(), formatted)
	}
	return nil
}
