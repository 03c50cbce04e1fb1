package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/3-lines-studio/pagesmith/internal/adapters/cli"
	"github.com/3-lines-studio/pagesmith/internal/blocks"
	"github.com/3-lines-studio/pagesmith/internal/config"
	"github.com/3-lines-studio/pagesmith/internal/core"
	"github.com/3-lines-studio/pagesmith/internal/dsl"
	"github.com/3-lines-studio/pagesmith/internal/logger"
	"github.com/3-lines-studio/pagesmith/internal/metrics"
	"github.com/3-lines-studio/pagesmith/internal/output"
	"github.com/3-lines-studio/pagesmith/internal/usecase"
)

// errReported marks failures that were already printed to the user.
var errReported = errors.New("reported")

type app struct {
	stdout io.Writer
	stderr io.Writer

	cfgFile string
	dir     string
	noColor bool

	out       *cli.Output
	newLogger func(level, format string) (*zap.Logger, error)
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout:    stdout,
		stderr:    stderr,
		newLogger: logger.New,
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "pagesmith",
		Short: "Build single-page sites from a block description",
		Long: `Pagesmith turns a list of content blocks, written in a small text
format, into a static page: index.html, styles.css and script.js.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.out = cli.NewOutputTo(a.stdout, a.stderr)
			if a.noColor {
				a.out.DisableColors()
			}
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is ./"+config.FileName+")")
	pf.StringVarP(&a.dir, "dir", "C", ".", "project directory")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("log-format", "", "log format: console, json")
	pf.BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newBuildCmd(a),
		newPreviewCmd(a),
		newFmtCmd(a),
		newCheckCmd(a),
		newBlocksCmd(a),
		newInitCmd(a),
	)
	return root
}

// session is the per-command wiring built from configuration.
type session struct {
	cfg     *config.Config
	zap     *zap.Logger
	log     logger.Logger
	metrics *metrics.Metrics
	site    *usecase.SiteService
}

func (a *app) setup(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load(config.LoadOptions{
		Dir:   a.dir,
		File:  a.cfgFile,
		Flags: cmd.Flags(),
	})
	if err != nil {
		return nil, err
	}

	zl, err := a.newLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	log := logger.NewZapAdapter(zl).With(map[string]interface{}{"command": cmd.Name()})
	if cfg.File != "" {
		log.Debug("config loaded", map[string]interface{}{"file": cfg.File})
	}

	m := metrics.New()
	return &session{
		cfg:     cfg,
		zap:     zl,
		log:     log,
		metrics: m,
		site:    usecase.NewSiteService(blocks.NewCatalog(), output.NewCompiler(), log, m),
	}, nil
}

func (s *session) close() {
	_ = s.zap.Sync()
}

func (s *session) input(instances []core.BlockInstance) usecase.GenerateInput {
	return usecase.GenerateInput{
		Instances: instances,
		Theme:     s.cfg.Theme,
		Settings:  s.cfg.Settings,
	}
}

func (s *session) readSource() (string, error) {
	data, err := os.ReadFile(s.cfg.Source)
	if err != nil {
		return "", fmt.Errorf("failed to read source: %w", err)
	}
	return string(data), nil
}

// instanceList is an InstanceSink for one-shot commands.
type instanceList struct {
	instances []core.BlockInstance
}

func (l *instanceList) ReplaceInstances(instances []core.BlockInstance) {
	l.instances = instances
}

func (s *session) importSource(source string) ([]core.BlockInstance, []dsl.Error) {
	var list instanceList
	if errs := s.site.ImportDSL(source, &list); len(errs) > 0 {
		return nil, errs
	}
	return list.instances, nil
}

func (a *app) displayPath(path string) string {
	base, err := filepath.Abs(a.dir)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func formatParseErrors(path string, errs []dsl.Error) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = fmt.Sprintf("%s:%s", path, e.Error())
	}
	return out
}

func diagnosticSubject(d core.Diagnostic) string {
	return fmt.Sprintf("%s %s", d.TypeID, d.InstanceID)
}
