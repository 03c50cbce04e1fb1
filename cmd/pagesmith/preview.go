package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/3-lines-studio/pagesmith/internal/adapters/cli"
	phttp "github.com/3-lines-studio/pagesmith/internal/adapters/http"
	"github.com/3-lines-studio/pagesmith/internal/adapters/watch"
	"github.com/3-lines-studio/pagesmith/internal/config"
	"github.com/3-lines-studio/pagesmith/internal/dsl"
	"github.com/3-lines-studio/pagesmith/internal/workspace"
)

func newPreviewCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Serve a live preview that reloads when the source changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.runPreview(ctx, cmd)
		},
	}
	cmd.Flags().String("source", "", "page source file (default page.psl)")
	cmd.Flags().String("addr", "", "listen address (default "+config.DefaultAddr+")")
	cmd.Flags().String("theme", "", "theme mode: light or dark")
	cmd.Flags().String("title", "", "document title")
	return cmd
}

func (a *app) runPreview(ctx context.Context, cmd *cobra.Command) error {
	s, err := a.setup(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	sourceName := a.displayPath(s.cfg.Source)
	a.out.PrintHeader("Pagesmith Preview")

	doc := workspace.NewDocument(nil)
	printErrs := func(errs []dsl.Error) {
		for _, line := range formatParseErrors(sourceName, errs) {
			a.out.PrintError("%s", line)
		}
	}

	// the preview starts even when the file is missing or broken
	if source, err := s.readSource(); err != nil {
		a.out.PrintWarning("%v", err)
	} else if errs := doc.Import(s.site, source); len(errs) > 0 {
		printErrs(errs)
	}

	server := phttp.NewPreviewServer(phttp.PreviewConfig{
		Site:     s.site,
		Document: doc,
		Theme:    s.cfg.Theme,
		Settings: s.cfg.Settings,
		Metrics:  s.metrics,
		Logger:   s.log,
	})

	watcher, err := watch.New(watch.Config{
		Path:     s.cfg.Source,
		Site:     s.site,
		Document: doc,
		Logger:   s.log,
		OnImport: func(errs []dsl.Error) {
			if len(errs) > 0 {
				printErrs(errs)
				return
			}
			a.out.PrintSuccess("Reloaded %s", sourceName)
		},
	})
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	a.out.PrintStep(cli.EmojiWatch, "Watching %s", sourceName)
	a.out.PrintStep(cli.EmojiInfo, "Preview at %s", a.out.Green(fmt.Sprintf("http://%s", s.cfg.Server.Addr)))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return watcher.Run(gctx)
	})
	g.Go(func() error {
		return server.Run(gctx, s.cfg.Server.Addr)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("preview server: %w", err)
	}
	return nil
}
