package client

import (
	"context"
	"strconv"
)

// EntityService handles CRUD operations for one ledger entity kind.
type EntityService[T, R any] struct {
	c    *Client
	path string
}

func newEntityService[T, R any](c *Client, kind string) *EntityService[T, R] {
	return &EntityService[T, R]{c: c, path: "/api/v1/" + kind}
}

// List returns every entity of this kind in the server's natural order.
func (s *EntityService[T, R]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := s.c.get(ctx, s.path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Get returns a single entity by id.
func (s *EntityService[T, R]) Get(ctx context.Context, id int64) (*T, error) {
	var item T
	if err := s.c.get(ctx, s.itemPath(id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create creates a new entity.
func (s *EntityService[T, R]) Create(ctx context.Context, req *R) (*T, error) {
	var item T
	if err := s.c.post(ctx, s.path, req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Update replaces all fields of an entity.
func (s *EntityService[T, R]) Update(ctx context.Context, id int64, req *R) (*T, error) {
	var item T
	if err := s.c.put(ctx, s.itemPath(id), req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes an entity and everything that cascades from it.
func (s *EntityService[T, R]) Delete(ctx context.Context, id int64) error {
	return s.c.del(ctx, s.itemPath(id), nil, nil)
}

func (s *EntityService[T, R]) itemPath(id int64) string {
	return s.path + "/" + strconv.FormatInt(id, 10)
}
