package resolver

import (
	"fmt"
	"strings"

	"github.com/3-lines-studio/pagesmith/internal/core"
	"github.com/3-lines-studio/pagesmith/internal/registry"
)

// Resolve looks up every instance in reg and collects its HTML in instance
// order. CSS and JS are collected once per block type, at the type's first
// occurrence. Unknown types and failing definitions are reported as
// diagnostics and contribute nothing.
func Resolve(instances []core.BlockInstance, reg registry.Registry) core.RenderTree {
	instances = core.CloneInstances(instances)

	css := core.NewOrderedSet()
	js := core.NewOrderedSet()
	css.Add(core.BaseStyleKey, strings.TrimSpace(reg.BaseStylesheet()))

	tree := core.RenderTree{
		HTML: []string{},
		Meta: core.Meta{Count: len(instances), TypeIDs: []string{}},
	}

	for i, inst := range instances {
		switch inst.TypeID {
		case core.NavbarType:
			tree.Meta.HasNavbar = true
		case core.FooterType:
			tree.Meta.HasFooter = true
		}

		def, ok := reg.Lookup(inst.TypeID)
		if !ok || def == nil {
			tree.Diagnostics = append(tree.Diagnostics, diagnostic(inst, i, core.StageLookup, core.DiagnosticUnknownType,
				fmt.Sprintf("unknown block type %q", inst.TypeID)))
			continue
		}
		tree.Meta.TypeIDs = append(tree.Meta.TypeIDs, inst.TypeID)

		if html, err := render(def.HTML, inst.Config); err != nil {
			tree.Diagnostics = append(tree.Diagnostics, failure(inst, i, core.StageHTML, err))
		} else if html = strings.TrimSpace(html); html != "" {
			tree.HTML = append(tree.HTML, html)
		}

		// The first occurrence claims the type even when it fails.
		if !css.Has(inst.TypeID) {
			text, err := render(def.CSS, inst.Config)
			if err != nil {
				tree.Diagnostics = append(tree.Diagnostics, failure(inst, i, core.StageCSS, err))
			}
			css.Add(inst.TypeID, strings.TrimSpace(text))
		}
		if !js.Has(inst.TypeID) {
			text, err := render(def.JS, inst.Config)
			if err != nil {
				tree.Diagnostics = append(tree.Diagnostics, failure(inst, i, core.StageJS, err))
			}
			js.Add(inst.TypeID, strings.TrimSpace(text))
		}
	}

	tree.CSS = nonEmpty(css.Fragments(), core.BaseStyleKey)
	tree.JS = nonEmpty(js.Fragments(), "")
	return tree
}

// render calls fn and turns a panic into an error.
func render(fn func(core.Config) (string, error), cfg core.Config) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = "", fmt.Errorf("panic: %v", r)
		}
	}()
	out, err = fn(cfg)
	if err != nil {
		return "", err
	}
	return out, nil
}

// nonEmpty drops fragments without text, except the one under keep.
func nonEmpty(frags []core.Fragment, keep string) []core.Fragment {
	out := make([]core.Fragment, 0, len(frags))
	for _, f := range frags {
		if f.Text != "" || (keep != "" && f.Key == keep) {
			out = append(out, f)
		}
	}
	return out
}

func diagnostic(inst core.BlockInstance, index int, stage core.Stage, kind core.DiagnosticKind, msg string) core.Diagnostic {
	return core.Diagnostic{
		InstanceID: core.InstanceKey(inst, index),
		Index:      index,
		TypeID:     inst.TypeID,
		Stage:      stage,
		Kind:       kind,
		Message:    msg,
	}
}

func failure(inst core.BlockInstance, index int, stage core.Stage, err error) core.Diagnostic {
	return diagnostic(inst, index, stage, core.DiagnosticTemplateFailure, err.Error())
}
