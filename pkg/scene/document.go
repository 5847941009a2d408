package scene

import (
	"sort"
	"sync"
)

// Container is a mount point: a measured region that holds the scene of the
// renderer drawing into it.
type Container struct {
	id            string
	width, height float64

	mu         sync.RWMutex
	scene      *Scene
	generation uint64
}

// ID returns the container identifier.
func (c *Container) ID() string { return c.id }

// Size returns the measured pixel size of the container.
func (c *Container) Size() (width, height float64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.width, c.height
}

// Resize updates the measured size. Renderers pick it up on their next
// render pass; redrawing is the caller's decision.
func (c *Container) Resize(width, height float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.width, c.height = width, height
}

// Attach replaces the container's scene wholesale and returns the new
// generation number.
func (c *Container) Attach(s *Scene) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scene = s
	c.generation++
	return c.generation
}

// Clear drops the current scene.
func (c *Container) Clear() {
	c.Attach(nil)
}

// Scene returns the currently attached scene, or nil.
func (c *Container) Scene() *Scene {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.scene
}

// Generation counts how many times a scene has been attached or cleared.
func (c *Container) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generation
}

// Document is a set of named containers.
type Document struct {
	mu         sync.RWMutex
	containers map[string]*Container
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{containers: make(map[string]*Container)}
}

// Add registers a container, replacing any existing container with the same id.
func (d *Document) Add(id string, width, height float64) *Container {
	c := &Container{id: id, width: width, height: height}
	d.mu.Lock()
	d.containers[id] = c
	d.mu.Unlock()
	return c
}

// Lookup resolves a mount id. A nil document resolves nothing.
func (d *Document) Lookup(id string) (*Container, bool) {
	if d == nil {
		return nil, false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	c, ok := d.containers[id]
	return c, ok
}

// Remove drops a container.
func (d *Document) Remove(id string) {
	d.mu.Lock()
	delete(d.containers, id)
	d.mu.Unlock()
}

// IDs lists container ids in sorted order.
func (d *Document) IDs() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	ids := make([]string, 0, len(d.containers))
	for id := range d.containers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
