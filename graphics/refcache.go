package graphics

// destroyer is anything owning GPU objects that can be released.
type destroyer interface {
	Destroy()
}

// refCache is a named, reference-counted cache of GPU resources. It is the
// single owner of the resources it holds: callers only ever acquire and
// release by name, never delete directly, so a resource cannot be freed
// while another subsystem still holds it.
//
// Not safe for concurrent use; the whole pipeline runs on the render thread.
type refCache[T destroyer] struct {
	entries map[string]*refEntry[T]
}

type refEntry[T destroyer] struct {
	resource T
	count    int
}

func newRefCache[T destroyer]() *refCache[T] {
	return &refCache[T]{entries: make(map[string]*refEntry[T])}
}

// acquire returns the cached resource under name, incrementing its refcount.
// The second result is false when the name is not registered.
func (c *refCache[T]) acquire(name string) (T, bool) {
	e, ok := c.entries[name]
	if !ok {
		var zero T
		return zero, false
	}
	e.count++
	return e.resource, true
}

// peek returns the resource without touching the refcount.
func (c *refCache[T]) peek(name string) (T, bool) {
	e, ok := c.entries[name]
	if !ok {
		var zero T
		return zero, false
	}
	return e.resource, true
}

// insert registers a new resource with refcount 1. The caller must have
// checked that the name is unused.
func (c *refCache[T]) insert(name string, resource T) {
	c.entries[name] = &refEntry[T]{resource: resource, count: 1}
}

// release decrements the refcount for name and destroys the resource when
// the count reaches zero. Releasing an unregistered name is a no-op.
func (c *refCache[T]) release(name string) {
	e, ok := c.entries[name]
	if !ok {
		return
	}
	e.count--
	if e.count <= 0 {
		e.resource.Destroy()
		delete(c.entries, name)
	}
}

// len reports the number of live entries.
func (c *refCache[T]) len() int {
	return len(c.entries)
}

// destroyAll force-releases everything. Called on shutdown only.
func (c *refCache[T]) destroyAll() {
	for name, e := range c.entries {
		e.resource.Destroy()
		delete(c.entries, name)
	}
}
