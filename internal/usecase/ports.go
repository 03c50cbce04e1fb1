package usecase

import (
	"github.com/3-lines-studio/pagesmith/internal/adapters/fs"
	"github.com/3-lines-studio/pagesmith/internal/core"
	"github.com/3-lines-studio/pagesmith/internal/registry"
)

type Registry = registry.Registry

type OutputCompiler interface {
	CompileFull(tree core.RenderTree, theme core.Theme, settings core.Settings) (core.GeneratedOutput, error)
	CompileForPreview(tree core.RenderTree, theme core.Theme, settings core.Settings) (string, error)
}

// InstanceSink receives a successfully imported instance list.
type InstanceSink interface {
	ReplaceInstances(instances []core.BlockInstance)
}

type CLIOutput interface {
	PrintHeader(msg string)
	PrintStep(emoji, msg string, args ...any)
	PrintSuccess(msg string, args ...any)
	PrintWarning(msg string, args ...any)
	PrintError(msg string, args ...any)
	PrintFile(path string)
	PrintDone(msg string)
}

type FileSystem = fs.FileSystem
