package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Resource is a typed view over one collection endpoint, e.g. /tasks. All four
// resource collections share the same conventional REST shape, so one generic
// client serves them all.
type Resource[T any] struct {
	c    *Client
	path string
}

// NewResource creates a resource client for a collection path like "/tasks".
func NewResource[T any](c *Client, path string) *Resource[T] {
	return &Resource[T]{c: c, path: path}
}

// List fetches the full collection.
func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	body, err := r.c.do(ctx, http.MethodGet, r.path, nil)
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, &DecodeError{Message: fmt.Sprintf("failed to decode %s list: %v", r.path, err), Err: err}
	}
	return items, nil
}

// Create submits a new record and returns the server's normalized version.
func (r *Resource[T]) Create(ctx context.Context, item T) (T, error) {
	var zero T
	body, err := r.c.do(ctx, http.MethodPost, r.path, item)
	if err != nil {
		return zero, err
	}
	var created T
	if err := json.Unmarshal(body, &created); err != nil {
		return zero, &DecodeError{Message: fmt.Sprintf("failed to decode %s response: %v", r.path, err), Err: err}
	}
	return created, nil
}

// Update replaces the record with the given id and returns the server's
// normalized version.
func (r *Resource[T]) Update(ctx context.Context, id string, item T) (T, error) {
	var zero T
	body, err := r.c.do(ctx, http.MethodPut, r.path+"/"+id, item)
	if err != nil {
		return zero, err
	}
	var updated T
	if err := json.Unmarshal(body, &updated); err != nil {
		return zero, &DecodeError{Message: fmt.Sprintf("failed to decode %s response: %v", r.path, err), Err: err}
	}
	return updated, nil
}

// Delete removes the record with the given id.
func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	_, err := r.c.do(ctx, http.MethodDelete, r.path+"/"+id, nil)
	return err
}
