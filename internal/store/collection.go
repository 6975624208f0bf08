package store

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Entity is any record with a string identity.
type Entity interface {
	EntityID() string
}

// Remote is the transport a collection mirrors. *client.Resource[T] satisfies
// it; tests substitute their own.
type Remote[T Entity] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, id string, item T) (T, error)
	Delete(ctx context.Context, id string) error
}

// Collection mirrors one remote resource collection in memory. Mutations apply
// locally first, then confirm against the backend; a failed call rolls the
// local state back to exactly what it was before the mutation.
//
// Operations do not serialize against each other: concurrent mutations on
// different ids interleave freely, and concurrent mutations on the same id are
// last-write-wins. That is acceptable for a single-user tool.
type Collection[T Entity] struct {
	name   string
	remote Remote[T]
	logger *zap.Logger

	mu      sync.Mutex
	items   []T
	lastErr error
	pending int
}

// NewCollection creates an empty collection mirror. name appears in errors and
// log fields ("tasks", "weeks", "timeEntries").
func NewCollection[T Entity](name string, remote Remote[T], logger *zap.Logger) *Collection[T] {
	return &Collection[T]{
		name:   name,
		remote: remote,
		logger: logger,
	}
}

// Items returns a snapshot copy of the local collection.
func (c *Collection[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Get returns the local record with the given id.
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.indexOf(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// Len returns the number of local records.
func (c *Collection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Err returns the last recorded operation error, for display.
func (c *Collection[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// ClearErr resets the error slot.
func (c *Collection[T]) ClearErr() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = nil
}

// Busy reports whether any operation is in flight.
func (c *Collection[T]) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending > 0
}

// Refresh fetches the full collection and replaces local state wholesale. On
// failure the last known good data is preserved.
func (c *Collection[T]) Refresh(ctx context.Context) error {
	c.begin()
	items, err := c.remote.List(ctx)
	c.mu.Lock()
	defer c.end()
	if err != nil {
		c.lastErr = err
		c.logger.Error("Refresh failed", zap.String("resource", c.name), zap.Error(err))
		return err
	}
	c.items = items
	c.lastErr = nil
	c.logger.Debug("Collection refreshed",
		zap.String("resource", c.name),
		zap.Int("count", len(items)),
	)
	return nil
}

// Create appends the record optimistically and submits it. On success the
// optimistic record is replaced with the server's normalized version; on
// failure it is removed again and the error is returned for the caller to
// react to (keep a form open, retry).
func (c *Collection[T]) Create(ctx context.Context, item T) (T, error) {
	c.mu.Lock()
	c.items = append(c.items, item)
	c.mu.Unlock()

	c.begin()
	created, err := c.remote.Create(ctx, item)

	c.mu.Lock()
	defer c.end()
	if err != nil {
		if i := c.indexOf(item.EntityID()); i >= 0 {
			c.items = append(c.items[:i], c.items[i+1:]...)
		}
		c.lastErr = err
		c.logger.Error("Create rolled back",
			zap.String("resource", c.name),
			zap.String("id", item.EntityID()),
			zap.Error(err),
		)
		var zero T
		return zero, err
	}
	if i := c.indexOf(item.EntityID()); i >= 0 {
		c.items[i] = created
	}
	c.lastErr = nil
	return created, nil
}

// Update applies apply to the record with the given id optimistically and
// submits the result. On failure the exact pre-mutation snapshot is restored,
// including fields the mutation never touched.
func (c *Collection[T]) Update(ctx context.Context, id string, apply func(T) T) (T, error) {
	c.mu.Lock()
	i := c.indexOf(id)
	if i < 0 {
		c.mu.Unlock()
		var zero T
		return zero, c.notFound(id)
	}
	snapshot := c.items[i]
	updated := apply(snapshot)
	c.items[i] = updated
	c.mu.Unlock()

	c.begin()
	confirmed, err := c.remote.Update(ctx, id, updated)

	c.mu.Lock()
	defer c.end()
	if err != nil {
		if j := c.indexOf(id); j >= 0 {
			c.items[j] = snapshot
		}
		c.lastErr = err
		c.logger.Error("Update rolled back",
			zap.String("resource", c.name),
			zap.String("id", id),
			zap.Error(err),
		)
		var zero T
		return zero, err
	}
	if j := c.indexOf(id); j >= 0 {
		c.items[j] = confirmed
	}
	c.lastErr = nil
	return confirmed, nil
}

// Delete removes the record optimistically. On failure it is re-inserted at
// its original index so the visible ordering survives the rollback.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	i := c.indexOf(id)
	if i < 0 {
		c.mu.Unlock()
		return c.notFound(id)
	}
	snapshot := c.items[i]
	c.items = append(c.items[:i], c.items[i+1:]...)
	c.mu.Unlock()

	c.begin()
	err := c.remote.Delete(ctx, id)

	c.mu.Lock()
	defer c.end()
	if err != nil {
		j := i
		if j > len(c.items) {
			j = len(c.items)
		}
		c.items = append(c.items[:j], append([]T{snapshot}, c.items[j:]...)...)
		c.lastErr = err
		c.logger.Error("Delete rolled back",
			zap.String("resource", c.name),
			zap.String("id", id),
			zap.Error(err),
		)
		return err
	}
	c.lastErr = nil
	return nil
}

func (c *Collection[T]) indexOf(id string) int {
	for i, item := range c.items {
		if item.EntityID() == id {
			return i
		}
	}
	return -1
}

func (c *Collection[T]) notFound(id string) error {
	err := &NotFoundError{Resource: c.name, ID: id}
	c.mu.Lock()
	c.lastErr = err
	c.mu.Unlock()
	return err
}

func (c *Collection[T]) begin() {
	c.mu.Lock()
	c.pending++
	c.mu.Unlock()
}

// end decrements pending and releases the mutex; callers hold c.mu.
func (c *Collection[T]) end() {
	c.pending--
	c.mu.Unlock()
}

// Touch is the timestamp source for optimistic updatedAt refreshes; stubbed in
// tests that compare records byte for byte.
var Touch = func() time.Time { return time.Now().UTC() }
