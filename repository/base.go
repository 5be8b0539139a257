package repository

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/grapefruit-orm/grapefruit/value"
	"github.com/grapefruit-orm/grapefruit/wrapper"
)

// defaults holds the process-wide singleton repository for each entity
// type, keyed by reflect.Type(T). Per the Design Note "Process-wide
// singleton", a slot may be set exactly once; SetDefault rejects a second
// call for the same T rather than silently replacing it.
var (
	defaultsMu sync.Mutex
	defaults   = map[reflect.Type]any{}
)

// SetDefault registers repo as the process-wide default Repository[T].
// It may be called at most once per T; a second call returns an error
// instead of replacing the existing singleton, keeping it immutable after
// init as the design note requires.
func SetDefault[T any](repo *Repository[T]) error {
	var zero T
	rt := reflect.TypeOf(zero)

	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	if _, exists := defaults[rt]; exists {
		return fmt.Errorf("repository: default repository for %s is already set", rt)
	}
	defaults[rt] = repo
	return nil
}

// Default returns the process-wide default Repository[T], set previously
// via SetDefault.
func Default[T any]() (*Repository[T], error) {
	var zero T
	rt := reflect.TypeOf(zero)

	defaultsMu.Lock()
	v, ok := defaults[rt]
	defaultsMu.Unlock()
	if !ok {
		return nil, fmt.Errorf("repository: no default repository set for %s", rt)
	}
	return v.(*Repository[T]), nil
}

// BaseRepository is the convenience binding of a per-entity repository to
// the process-wide singleton, per §4.4's "BaseRepository<I, T>": callers
// declare a zero-sized alias (e.g. `type Users = repository.BaseRepository[int64,
// User]`) and call its methods without plumbing a *Repository[T] through
// their own code. I is the entity's primary-key host type.
type BaseRepository[I any, T any] struct{}

func (BaseRepository[I, T]) repo() (*Repository[T], error) { return Default[T]() }

func idValue[I any](id I) (value.Value, error) {
	switch v := any(id).(type) {
	case int64:
		return value.FromInt64(v), nil
	case int32:
		return value.FromInt32(v), nil
	case int:
		return value.FromInt64(int64(v)), nil
	case string:
		return value.FromString(v), nil
	case value.Value:
		return v, nil
	default:
		return value.Invalid(), fmt.Errorf("repository: unsupported primary-key host type %T", id)
	}
}

func (b BaseRepository[I, T]) Insert(ctx context.Context, ent *T) (int64, error) {
	r, err := b.repo()
	if err != nil {
		return 0, err
	}
	return r.Insert(ctx, ent)
}

func (b BaseRepository[I, T]) InsertBatch(ctx context.Context, ents []*T) (int64, error) {
	r, err := b.repo()
	if err != nil {
		return 0, err
	}
	return r.InsertBatch(ctx, ents)
}

func (b BaseRepository[I, T]) UpdateByID(ctx context.Context, ent *T) (int64, error) {
	r, err := b.repo()
	if err != nil {
		return 0, err
	}
	return r.UpdateByID(ctx, ent)
}

func (b BaseRepository[I, T]) UpdateByWrapper(ctx context.Context, values *T, w *wrapper.Wrapper) (int64, error) {
	r, err := b.repo()
	if err != nil {
		return 0, err
	}
	return r.UpdateByWrapper(ctx, values, w)
}

func (b BaseRepository[I, T]) DeleteByID(ctx context.Context, id I) (int64, error) {
	r, err := b.repo()
	if err != nil {
		return 0, err
	}
	v, err := idValue(id)
	if err != nil {
		return 0, err
	}
	return r.DeleteByID(ctx, v)
}

func (b BaseRepository[I, T]) DeleteByIDs(ctx context.Context, ids []I) (int64, error) {
	r, err := b.repo()
	if err != nil {
		return 0, err
	}
	vs := make([]value.Value, len(ids))
	for i, id := range ids {
		v, err := idValue(id)
		if err != nil {
			return 0, err
		}
		vs[i] = v
	}
	return r.DeleteByIDs(ctx, vs)
}

func (b BaseRepository[I, T]) DeleteByWrapper(ctx context.Context, w *wrapper.Wrapper) (int64, error) {
	r, err := b.repo()
	if err != nil {
		return 0, err
	}
	return r.DeleteByWrapper(ctx, w)
}

func (b BaseRepository[I, T]) SelectByID(ctx context.Context, id I) (*T, error) {
	r, err := b.repo()
	if err != nil {
		return nil, err
	}
	v, err := idValue(id)
	if err != nil {
		return nil, err
	}
	return r.SelectByID(ctx, v)
}

func (b BaseRepository[I, T]) SelectByWrapper(ctx context.Context, w *wrapper.Wrapper) ([]T, error) {
	r, err := b.repo()
	if err != nil {
		return nil, err
	}
	return r.SelectByWrapper(ctx, w)
}

func (b BaseRepository[I, T]) SelectAll(ctx context.Context) ([]T, error) {
	r, err := b.repo()
	if err != nil {
		return nil, err
	}
	return r.SelectAll(ctx)
}

func (b BaseRepository[I, T]) CountAll(ctx context.Context) (int64, error) {
	r, err := b.repo()
	if err != nil {
		return 0, err
	}
	return r.CountAll(ctx)
}

func (b BaseRepository[I, T]) CountByWrapper(ctx context.Context, w *wrapper.Wrapper) (int64, error) {
	r, err := b.repo()
	if err != nil {
		return 0, err
	}
	return r.CountByWrapper(ctx, w)
}

func (b BaseRepository[I, T]) PageByWrapper(ctx context.Context, w *wrapper.Wrapper, pageNum, pageSize int64) (Page[T], error) {
	r, err := b.repo()
	if err != nil {
		return Page[T]{}, err
	}
	return r.PageByWrapper(ctx, w, pageNum, pageSize)
}
