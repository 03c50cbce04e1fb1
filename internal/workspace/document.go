package workspace

import (
	"sync"

	"github.com/google/uuid"

	"github.com/3-lines-studio/pagesmith/internal/core"
	"github.com/3-lines-studio/pagesmith/internal/dsl"
	"github.com/3-lines-studio/pagesmith/internal/usecase"
)

// Document is the mutable block list edited by a user. Readers get deep
// copies; every replacement bumps Version.
type Document struct {
	mu        sync.RWMutex
	instances []core.BlockInstance
	version   uint64
	listeners []func(version uint64)
}

func NewDocument(instances []core.BlockInstance) *Document {
	d := &Document{}
	d.instances = withIDs(instances)
	return d
}

func (d *Document) Snapshot() []core.BlockInstance {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := core.CloneInstances(d.instances)
	if out == nil {
		out = []core.BlockInstance{}
	}
	return out
}

func (d *Document) Version() uint64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.version
}

// ReplaceInstances swaps the whole list. Instances without an ID get a
// fresh UUID.
func (d *Document) ReplaceInstances(instances []core.BlockInstance) {
	next := withIDs(instances)

	d.mu.Lock()
	d.instances = next
	d.version++
	version := d.version
	listeners := append([]func(uint64){}, d.listeners...)
	d.mu.Unlock()

	for _, fn := range listeners {
		fn(version)
	}
}

// Import compiles source through svc and replaces the list only when it
// has no syntax errors.
func (d *Document) Import(svc *usecase.SiteService, source string) []dsl.Error {
	return svc.ImportDSL(source, d)
}

// OnChange registers fn to run after every replacement, outside the lock.
func (d *Document) OnChange(fn func(version uint64)) {
	d.mu.Lock()
	d.listeners = append(d.listeners, fn)
	d.mu.Unlock()
}

func withIDs(instances []core.BlockInstance) []core.BlockInstance {
	out := core.CloneInstances(instances)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = uuid.NewString()
		}
		if out[i].Config == nil {
			out[i].Config = core.Config{}
		}
	}
	return out
}
