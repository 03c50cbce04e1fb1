package registry

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/3-lines-studio/pagesmith/internal/core"
)

// Definition renders one block type. Each method receives the instance
// config and may fail; failures become diagnostics, never aborts.
type Definition interface {
	TypeID() string
	Name() string
	HTML(cfg core.Config) (string, error)
	CSS(cfg core.Config) (string, error)
	JS(cfg core.Config) (string, error)
}

// Registry is the lookup surface the resolver consumes.
type Registry interface {
	Lookup(typeID string) (Definition, bool)
	BaseStylesheet() string
}

type RenderFunc func(cfg core.Config) (string, error)

// Block is a Definition assembled from functions. Nil functions render
// nothing.
type Block struct {
	ID         string
	Label      string
	RenderHTML RenderFunc
	RenderCSS  RenderFunc
	RenderJS   RenderFunc
}

func (b *Block) TypeID() string {
	return b.ID
}

func (b *Block) Name() string {
	if b.Label == "" {
		return b.ID
	}
	return b.Label
}

func (b *Block) HTML(cfg core.Config) (string, error) {
	return call(b.RenderHTML, cfg)
}

func (b *Block) CSS(cfg core.Config) (string, error) {
	return call(b.RenderCSS, cfg)
}

func (b *Block) JS(cfg core.Config) (string, error) {
	return call(b.RenderJS, cfg)
}

func call(fn RenderFunc, cfg core.Config) (string, error) {
	if fn == nil {
		return "", nil
	}
	return fn(cfg)
}

type Catalog struct {
	mu   sync.RWMutex
	defs map[string]Definition
	base string
}

func NewCatalog(baseStylesheet string) *Catalog {
	return &Catalog{
		defs: make(map[string]Definition),
		base: baseStylesheet,
	}
}

// Register adds a definition. Registering the same type twice is a
// programming error and panics.
func (c *Catalog) Register(def Definition) {
	if def == nil {
		panic("registry: nil definition")
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	id := def.TypeID()
	if _, exists := c.defs[id]; exists {
		panic(fmt.Sprintf("registry: block type %q registered twice", id))
	}
	c.defs[id] = def
}

func (c *Catalog) Lookup(typeID string) (Definition, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	def, ok := c.defs[typeID]
	return def, ok
}

func (c *Catalog) BaseStylesheet() string {
	return c.base
}

// Definitions lists registered definitions sorted by type id.
func (c *Catalog) Definitions() []Definition {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Definition, 0, len(c.defs))
	for _, def := range c.defs {
		out = append(out, def)
	}
	slices.SortFunc(out, func(a, b Definition) int {
		return cmp.Compare(a.TypeID(), b.TypeID())
	})
	return out
}
