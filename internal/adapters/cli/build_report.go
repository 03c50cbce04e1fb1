package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/3-lines-studio/pagesmith/internal/core"
)

type BuildStep struct {
	Name     string
	Started  time.Time
	Duration time.Duration
	Success  bool
	Error    string
}

type cliOutputWithColors interface {
	Green(text string) string
	Yellow(text string) string
	Red(text string) string
	Gray(text string) string
}

// SyntaxError is a positioned problem in the page source, such as
// "page.psl:3:7".
type SyntaxError struct {
	Location string
	Message  string
}

// BuildReport collects the outcome of one build: syntax errors stop the
// build, page structure warnings and block diagnostics do not.
type BuildReport struct {
	colors cliOutputWithColors
	out    io.Writer

	steps       []BuildStep
	syntax      []SyntaxError
	structure   []string
	diagnostics []core.Diagnostic
	failures    []string

	startTime  time.Time
	blockCount int
	outputDir  string
}

func NewBuildReport(colors cliOutputWithColors, out io.Writer, outputDir string) *BuildReport {
	return &BuildReport{
		colors:    colors,
		out:       out,
		startTime: time.Now(),
		outputDir: outputDir,
	}
}

func (r *BuildReport) SetBlockCount(count int) {
	r.blockCount = count
}

// StartStep returns the index of the new step for EndStep.
func (r *BuildReport) StartStep(name string) int {
	r.steps = append(r.steps, BuildStep{Name: name, Started: time.Now()})
	return len(r.steps) - 1
}

func (r *BuildReport) EndStep(step int, success bool, err string) {
	s := &r.steps[step]
	s.Duration = time.Since(s.Started)
	s.Success = success
	s.Error = err
}

func (r *BuildReport) AddSyntaxError(location, message string) {
	r.syntax = append(r.syntax, SyntaxError{Location: location, Message: message})
}

func (r *BuildReport) AddStructureWarning(message string) {
	r.structure = append(r.structure, message)
}

func (r *BuildReport) AddDiagnostic(d core.Diagnostic) {
	r.diagnostics = append(r.diagnostics, d)
}

// Fail records a fatal problem that is not tied to a source position.
func (r *BuildReport) Fail(message string) {
	r.failures = append(r.failures, message)
}

func (r *BuildReport) HasFailures() bool {
	if len(r.syntax) > 0 || len(r.failures) > 0 {
		return true
	}
	for _, s := range r.steps {
		if !s.Success {
			return true
		}
	}
	return false
}

func (r *BuildReport) hasIssues() bool {
	return r.HasFailures() || len(r.structure) > 0 || len(r.diagnostics) > 0
}

func (r *BuildReport) Render() {
	duration := time.Since(r.startTime)

	if !r.hasIssues() {
		fmt.Fprintf(r.out, "  %s%d blocks resolved\n", r.colors.Green("✓ "), r.blockCount)
		fmt.Fprintf(r.out, "  %sBuild complete in %s\n", r.colors.Green("✓ "), formatDuration(duration))
		r.renderOutputDir()
		return
	}

	fmt.Fprintf(r.out, "  %d blocks resolved\n\n", r.blockCount)
	for _, step := range r.steps {
		if step.Success {
			fmt.Fprintf(r.out, "  %s %s %s\n", r.colors.Green("✓"), step.Name, r.colors.Gray(formatDuration(step.Duration)))
			continue
		}
		fmt.Fprintf(r.out, "  %s %s\n", r.colors.Red("✗"), step.Name)
		if step.Error != "" {
			fmt.Fprintf(r.out, "    %s\n", r.colors.Gray(step.Error))
		}
	}

	r.renderFailures()
	r.renderSyntaxErrors()
	r.renderStructure()
	r.renderDiagnostics()

	fmt.Fprintln(r.out)
	if r.HasFailures() {
		fmt.Fprintf(r.out, "  %s\n", r.colors.Red("Build failed after "+formatDuration(duration)))
		return
	}
	fmt.Fprintf(r.out, "  %sBuild complete in %s\n", r.colors.Green("✓ "), formatDuration(duration))
	r.renderOutputDir()
}

func (r *BuildReport) renderOutputDir() {
	if r.outputDir != "" {
		fmt.Fprintf(r.out, "\n  %s\n", r.colors.Gray("Output: "+r.outputDir))
	}
}

func (r *BuildReport) renderFailures() {
	if len(r.failures) == 0 {
		return
	}
	fmt.Fprintf(r.out, "\n  %sErrors (%d):\n", r.colors.Red("✗ "), len(r.failures))
	for _, msg := range r.failures {
		fmt.Fprintf(r.out, "    %s\n", msg)
	}
}

func (r *BuildReport) renderSyntaxErrors() {
	if len(r.syntax) == 0 {
		return
	}
	fmt.Fprintf(r.out, "\n  %sSyntax errors (%d):\n", r.colors.Red("✗ "), len(r.syntax))
	for _, e := range r.syntax {
		fmt.Fprintf(r.out, "    %s: %s\n", e.Location, e.Message)
	}
}

func (r *BuildReport) renderStructure() {
	if len(r.structure) == 0 {
		return
	}
	fmt.Fprintf(r.out, "\n  %sPage structure (%d):\n", r.colors.Yellow("⚠ "), len(r.structure))
	for _, line := range countRepeats(r.structure) {
		fmt.Fprintf(r.out, "    • %s\n", line)
	}
}

// renderDiagnostics prints one row per diagnostic. Cells are left
// uncolored so the columns stay aligned.
func (r *BuildReport) renderDiagnostics() {
	if len(r.diagnostics) == 0 {
		return
	}
	fmt.Fprintf(r.out, "\n  %sBlock diagnostics (%d):\n", r.colors.Yellow("⚠ "), len(r.diagnostics))

	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "    BLOCK\tID\tSTAGE\tPROBLEM")
	for _, d := range r.diagnostics {
		fmt.Fprintf(w, "    %s\t%s\t%s\t%s\n", d.TypeID, d.InstanceID, d.Stage, d.Message)
	}
	_ = w.Flush()
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.1fs", float64(d)/float64(time.Second))
}

// countRepeats collapses repeats, keeping first-seen order.
func countRepeats(items []string) []string {
	counts := make(map[string]int, len(items))
	order := make([]string, 0, len(items))
	for _, item := range items {
		if counts[item] == 0 {
			order = append(order, item)
		}
		counts[item]++
	}

	result := make([]string, 0, len(order))
	for _, item := range order {
		if n := counts[item]; n > 1 {
			item = fmt.Sprintf("%s (x%d)", item, n)
		}
		result = append(result, item)
	}
	return result
}
