package core

import "fmt"

// BaseStyleKey keys the registry base stylesheet inside RenderTree.CSS.
const BaseStyleKey = "@base"

type Fragment struct {
	Key  string
	Text string
}

type Meta struct {
	Count     int
	HasNavbar bool
	HasFooter bool
	TypeIDs   []string
}

// RenderTree is the result of one resolution pass. HTML follows instance
// order; CSS and JS hold at most one fragment per block type.
type RenderTree struct {
	HTML        []string
	CSS         []Fragment
	JS          []Fragment
	Meta        Meta
	Diagnostics []Diagnostic
}

func (t RenderTree) CSSTexts() []string {
	return fragmentTexts(t.CSS)
}

func (t RenderTree) JSTexts() []string {
	return fragmentTexts(t.JS)
}

func fragmentTexts(frags []Fragment) []string {
	out := make([]string, 0, len(frags))
	for _, f := range frags {
		if f.Text != "" {
			out = append(out, f.Text)
		}
	}
	return out
}

type GeneratedOutput struct {
	HTML string
	CSS  string
	JS   string
}

type Stage string

const (
	StageLookup Stage = "lookup"
	StageHTML   Stage = "html"
	StageCSS    Stage = "css"
	StageJS     Stage = "js"
)

type DiagnosticKind string

const (
	DiagnosticUnknownType     DiagnosticKind = "unknown_type"
	DiagnosticTemplateFailure DiagnosticKind = "template_failure"
)

// Diagnostic records a non-fatal resolution problem for one instance.
type Diagnostic struct {
	InstanceID string         `json:"instanceId"`
	Index      int            `json:"index"`
	TypeID     string         `json:"type"`
	Stage      Stage          `json:"stage"`
	Kind       DiagnosticKind `json:"kind"`
	Message    string         `json:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s (%s) %s: %s", d.InstanceID, d.TypeID, d.Stage, d.Message)
}

// InstanceKey is the identity used for diagnostics: the caller-assigned ID,
// or the position when the instance has none.
func InstanceKey(inst BlockInstance, index int) string {
	if inst.ID != "" {
		return inst.ID
	}
	return fmt.Sprintf("#%d", index)
}
