package usecase

import (
	"fmt"
	"time"

	"github.com/3-lines-studio/pagesmith/internal/core"
	"github.com/3-lines-studio/pagesmith/internal/dsl"
	"github.com/3-lines-studio/pagesmith/internal/logger"
	"github.com/3-lines-studio/pagesmith/internal/metrics"
	"github.com/3-lines-studio/pagesmith/internal/resolver"
)

type GenerateInput struct {
	Instances []core.BlockInstance
	Theme     core.Theme
	Settings  core.Settings
}

type GenerateOutput struct {
	Output      core.GeneratedOutput
	Warnings    []string
	Diagnostics []core.Diagnostic
	Error       error
}

type PreviewOutput struct {
	HTML        string
	Warnings    []string
	Diagnostics []core.Diagnostic
	Error       error
}

// SiteService drives the generation pipeline: validate, resolve, then
// compile output. It holds no mutable state and is safe for concurrent use.
type SiteService struct {
	registry Registry
	compiler OutputCompiler
	log      logger.Logger
	metrics  *metrics.Metrics
}

func NewSiteService(registry Registry, compiler OutputCompiler, log logger.Logger, m *metrics.Metrics) *SiteService {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &SiteService{
		registry: registry,
		compiler: compiler,
		log:      log,
		metrics:  m,
	}
}

// Generate emits the downloadable artifact triplet. Warnings are returned
// even when output compilation fails.
func (s *SiteService) Generate(input GenerateInput) GenerateOutput {
	start := time.Now()
	instances := core.CloneInstances(input.Instances)

	warnings := s.validate(instances)

	if err := s.checkCollaborators(); err != nil {
		s.metrics.ObservePass(metrics.PassGenerate, start, err)
		return GenerateOutput{Warnings: warnings, Error: err}
	}

	tree := s.resolve(instances)

	out, err := s.compiler.CompileFull(tree, input.Theme, input.Settings)
	s.metrics.ObservePass(metrics.PassGenerate, start, err)
	if err != nil {
		s.log.WithError(err).Error("output compilation failed", nil)
		return GenerateOutput{
			Warnings:    warnings,
			Diagnostics: tree.Diagnostics,
			Error:       fmt.Errorf("failed to compile output: %w", err),
		}
	}

	s.log.Debug("site generated", map[string]interface{}{
		"blocks":      tree.Meta.Count,
		"html_bytes":  len(out.HTML),
		"css_bytes":   len(out.CSS),
		"js_bytes":    len(out.JS),
		"warnings":    len(warnings),
		"diagnostics": len(tree.Diagnostics),
	})

	return GenerateOutput{
		Output:      out,
		Warnings:    warnings,
		Diagnostics: tree.Diagnostics,
	}
}

// Preview emits one self-contained document for live display.
func (s *SiteService) Preview(input GenerateInput) PreviewOutput {
	start := time.Now()
	instances := core.CloneInstances(input.Instances)

	warnings := s.validate(instances)

	if err := s.checkCollaborators(); err != nil {
		s.metrics.ObservePass(metrics.PassPreview, start, err)
		return PreviewOutput{Warnings: warnings, Error: err}
	}

	tree := s.resolve(instances)

	html, err := s.compiler.CompileForPreview(tree, input.Theme, input.Settings)
	s.metrics.ObservePass(metrics.PassPreview, start, err)
	if err != nil {
		s.log.WithError(err).Error("preview compilation failed", nil)
		return PreviewOutput{
			Warnings:    warnings,
			Diagnostics: tree.Diagnostics,
			Error:       fmt.Errorf("failed to compile preview: %w", err),
		}
	}

	return PreviewOutput{
		HTML:        html,
		Warnings:    warnings,
		Diagnostics: tree.Diagnostics,
	}
}

// ImportDSL compiles source and hands the result to sink in a single
// ReplaceInstances call. On any syntax error the errors are returned and
// sink is not touched. A nil sink is a programming error and panics.
func (s *SiteService) ImportDSL(source string, sink InstanceSink) []dsl.Error {
	if sink == nil {
		panic(core.NewMissingCollaboratorError("instance sink"))
	}
	start := time.Now()

	res := dsl.Compile(source)
	if !res.OK() {
		s.metrics.ObservePass(metrics.PassImport, start, res.Errors[0])
		s.metrics.ObserveParseErrors(len(res.Errors))
		s.log.Warn("dsl import rejected", map[string]interface{}{
			"errors": len(res.Errors),
			"first":  res.Errors[0].Error(),
		})
		return res.Errors
	}

	sink.ReplaceInstances(res.Instances)
	s.metrics.ObservePass(metrics.PassImport, start, nil)
	s.log.Debug("dsl imported", map[string]interface{}{"blocks": len(res.Instances)})
	return nil
}

// ExportDSL renders instances as canonical DSL text.
func (s *SiteService) ExportDSL(instances []core.BlockInstance) (string, error) {
	start := time.Now()
	out, err := dsl.Serialize(core.CloneInstances(instances))
	s.metrics.ObservePass(metrics.PassExport, start, err)
	if err != nil {
		return "", err
	}
	return out, nil
}

func (s *SiteService) Validate(instances []core.BlockInstance) []string {
	return core.Validate(core.CloneInstances(instances))
}

func (s *SiteService) validate(instances []core.BlockInstance) []string {
	warnings := core.Validate(instances)
	s.metrics.ObserveWarnings(warnings)
	return warnings
}

func (s *SiteService) checkCollaborators() error {
	if s.registry == nil {
		return core.NewMissingCollaboratorError("block registry")
	}
	if s.compiler == nil {
		return core.NewMissingCollaboratorError("output compiler")
	}
	return nil
}

func (s *SiteService) resolve(instances []core.BlockInstance) core.RenderTree {
	tree := resolver.Resolve(instances, s.registry)
	for _, d := range tree.Diagnostics {
		s.metrics.ObserveDiagnostic(string(d.Kind), string(d.Stage))
		s.log.Warn("block resolution failed", map[string]interface{}{
			"instance_id": d.InstanceID,
			"type_id":     d.TypeID,
			"stage":       string(d.Stage),
			"error":       d.Message,
		})
	}
	return tree
}
