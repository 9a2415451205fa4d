package ecs

// Commands buffers structural changes requested while systems run.
// The Scheduler flushes it at every stage barrier, so systems never
// change the set of archetypes under a running iteration.
type Commands struct {
	spawns [][]any
	defers []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Spawn queues an entity spawn with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

// Defer queues fn to run after pending spawns are applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Pending reports how many operations are queued.
func (c *Commands) Pending() int {
	return len(c.spawns) + len(c.defers)
}

// Flush applies all queued operations to storage and resets the buffer.
// Operations queued by deferred callbacks are applied in the same flush.
func (c *Commands) Flush(storage *Storage) {
	for c.Pending() > 0 {
		spawns, defers := c.spawns, c.defers
		c.spawns, c.defers = nil, nil

		for _, components := range spawns {
			storage.Spawn(components...)
		}
		for _, fn := range defers {
			fn()
		}
	}
}
