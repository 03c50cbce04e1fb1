package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/3-lines-studio/pagesmith/internal/initcmd"
	"github.com/3-lines-studio/pagesmith/internal/templates"
)

func newInitCmd(a *app) *cobra.Command {
	var (
		template string
		title    string
	)

	cmd := &cobra.Command{
		Use:   "init <project-dir>",
		Short: "Create a new site from a template",
		Example: `  pagesmith init mysite
  pagesmith init --template blank --title "Acme Inc" mysite`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absProjectDir, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("failed to resolve project directory: %w", err)
			}

			if err := initcmd.Run(a.out, absProjectDir, template, title); err != nil {
				a.out.PrintError("%v", err)
				return errReported
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&template, "template", "t", "starter",
		"template to use ("+strings.Join(templates.ValidTemplates, ", ")+")")
	cmd.Flags().StringVar(&title, "title", "", "site title (default derived from the directory name)")
	return cmd
}
