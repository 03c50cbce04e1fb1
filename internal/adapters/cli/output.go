package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const (
	EmojiInfo  = "ℹ"
	EmojiBuild = "⚙"
	EmojiWatch = "👀"
)

type Output struct {
	out      io.Writer
	errOut   io.Writer
	renderer *lipgloss.Renderer

	green  lipgloss.Style
	yellow lipgloss.Style
	red    lipgloss.Style
	gray   lipgloss.Style
	bold   lipgloss.Style
}

func NewOutput() *Output {
	return NewOutputTo(os.Stdout, os.Stderr)
}

// NewOutputTo writes to the given streams. Colors follow the capabilities
// of out.
func NewOutputTo(out, errOut io.Writer) *Output {
	o := &Output{
		out:      out,
		errOut:   errOut,
		renderer: lipgloss.NewRenderer(out),
	}
	o.initStyles()
	return o
}

func (o *Output) initStyles() {
	o.green = o.renderer.NewStyle().Foreground(lipgloss.Color("2"))
	o.yellow = o.renderer.NewStyle().Foreground(lipgloss.Color("3"))
	o.red = o.renderer.NewStyle().Foreground(lipgloss.Color("1"))
	o.gray = o.renderer.NewStyle().Foreground(lipgloss.Color("8"))
	o.bold = o.renderer.NewStyle().Bold(true)
}

func (o *Output) DisableColors() {
	o.renderer.SetColorProfile(termenv.Ascii)
	o.initStyles()
}

func (o *Output) Green(text string) string {
	return o.green.Render(text)
}

func (o *Output) Yellow(text string) string {
	return o.yellow.Render(text)
}

func (o *Output) Red(text string) string {
	return o.red.Render(text)
}

func (o *Output) Gray(text string) string {
	return o.gray.Render(text)
}

func (o *Output) Writer() io.Writer {
	return o.out
}

func (o *Output) ErrWriter() io.Writer {
	return o.errOut
}

func (o *Output) PrintHeader(msg string) {
	fmt.Fprintln(o.out, o.bold.Render(msg))
	fmt.Fprintln(o.out)
}

func (o *Output) PrintStep(emoji, msg string, args ...any) {
	fmt.Fprintf(o.out, "  "+emoji+" "+msg+"\n", args...)
}

func (o *Output) PrintSuccess(msg string, args ...any) {
	formatted := fmt.Sprintf(msg, args...)
	fmt.Fprintf(o.out, "  %s%s\n", o.Green("✓ "), formatted)
}

func (o *Output) PrintWarning(msg string, args ...any) {
	formatted := fmt.Sprintf(msg, args...)
	fmt.Fprintf(o.out, "  %s%s\n", o.Yellow("⚠ "), formatted)
}

func (o *Output) PrintError(msg string, args ...any) {
	formatted := fmt.Sprintf(msg, args...)
	fmt.Fprintf(o.errOut, "  %s%s\n", o.Red("✗ "), formatted)
}

func (o *Output) PrintFile(path string) {
	fmt.Fprintf(o.out, "    %s\n", path)
}

func (o *Output) PrintDone(msg string) {
	fmt.Fprintln(o.out, msg)
}
