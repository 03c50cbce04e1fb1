package pagesmith

import (
	"github.com/3-lines-studio/pagesmith/internal/blocks"
	"github.com/3-lines-studio/pagesmith/internal/core"
	"github.com/3-lines-studio/pagesmith/internal/dsl"
	"github.com/3-lines-studio/pagesmith/internal/logger"
	"github.com/3-lines-studio/pagesmith/internal/metrics"
	"github.com/3-lines-studio/pagesmith/internal/output"
	"github.com/3-lines-studio/pagesmith/internal/registry"
	"github.com/3-lines-studio/pagesmith/internal/usecase"
)

type (
	BlockInstance   = core.BlockInstance
	Config          = core.Config
	Theme           = core.Theme
	Settings        = core.Settings
	RenderTree      = core.RenderTree
	Diagnostic      = core.Diagnostic
	GeneratedOutput = core.GeneratedOutput
	ContractError   = core.ContractError
	ParseError      = dsl.Error

	Registry       = registry.Registry
	Definition     = registry.Definition
	Block          = registry.Block
	OutputCompiler = usecase.OutputCompiler
	InstanceSink   = usecase.InstanceSink
	Logger         = logger.Logger

	GenerateInput  = usecase.GenerateInput
	GenerateOutput = usecase.GenerateOutput
	PreviewOutput  = usecase.PreviewOutput
)

var (
	ErrUnrepresentableValue = core.ErrUnrepresentableValue
	ErrInvalidTypeID        = core.ErrInvalidTypeID
	ErrMissingCollaborator  = core.ErrMissingCollaborator
)

// Studio turns block instance lists into sites. It is safe for concurrent
// use once constructed.
type Studio struct {
	registry Registry
	compiler OutputCompiler
	log      Logger
	metrics  *metrics.Metrics
	site     *usecase.SiteService
}

type Option func(*Studio)

// WithRegistry replaces the built-in block catalog.
func WithRegistry(r Registry) Option {
	return func(s *Studio) {
		s.registry = r
	}
}

// WithOutputCompiler replaces the built-in document compiler.
func WithOutputCompiler(c OutputCompiler) Option {
	return func(s *Studio) {
		s.compiler = c
	}
}

func WithLogger(l Logger) Option {
	return func(s *Studio) {
		s.log = l
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Studio) {
		s.metrics = m
	}
}

func New(opts ...Option) *Studio {
	s := &Studio{
		registry: blocks.NewCatalog(),
		compiler: output.NewCompiler(),
		log:      logger.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.site = usecase.NewSiteService(s.registry, s.compiler, s.log, s.metrics)
	return s
}

func (s *Studio) Generate(instances []BlockInstance, theme Theme, settings Settings) GenerateOutput {
	return s.site.Generate(GenerateInput{Instances: instances, Theme: theme, Settings: settings})
}

func (s *Studio) Preview(instances []BlockInstance, theme Theme, settings Settings) PreviewOutput {
	return s.site.Preview(GenerateInput{Instances: instances, Theme: theme, Settings: settings})
}

// ImportDSL compiles source and, only when it has no errors, hands the
// instances to sink in one call.
func (s *Studio) ImportDSL(source string, sink InstanceSink) []ParseError {
	return s.site.ImportDSL(source, sink)
}

func (s *Studio) ExportDSL(instances []BlockInstance) (string, error) {
	return s.site.ExportDSL(instances)
}

func (s *Studio) Validate(instances []BlockInstance) []string {
	return s.site.Validate(instances)
}

func (s *Studio) Registry() Registry {
	return s.registry
}
