// Package repository implements the stateless repository facade of §4.4:
// a generic CRUD+page surface over a TableSpec, forwarding every operation
// to sqlgen for emission and driverutil for execution.
package repository

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	grapefruit "github.com/grapefruit-orm/grapefruit"
	"github.com/grapefruit-orm/grapefruit/driverutil"
	"github.com/grapefruit-orm/grapefruit/metaobject"
	"github.com/grapefruit-orm/grapefruit/schema"
	"github.com/grapefruit-orm/grapefruit/sqlgen"
	"github.com/grapefruit-orm/grapefruit/value"
	"github.com/grapefruit-orm/grapefruit/wrapper"
)

// Repository is a stateless CRUD facade for entity type T, bound to a
// single TableSpec and connection pool. It carries no mutable state of its
// own beyond its two fields, per §3.7 — safe to share across goroutines.
type Repository[T any] struct {
	pool *driverutil.Pool
	spec *schema.TableSpec
}

// New derives (or reuses the cached) TableSpec for T and binds it to pool.
func New[T any](pool *driverutil.Pool) (*Repository[T], error) {
	spec, err := schema.Register[T]()
	if err != nil {
		return nil, err
	}
	return &Repository[T]{pool: pool, spec: spec}, nil
}

func (r *Repository[T]) handler() metaobject.Handler {
	if h := r.pool.Options().MetaObjectHandler; h != nil {
		return h
	}
	return metaobject.NopHandler{}
}

func (r *Repository[T]) entityLabel() string { return r.spec.TableName }

// fillGeneratedID mints and assigns a primary-key value for entity when
// its column declares the Generator strategy; IDAuto and IDInput columns
// are left untouched (§4.1, §4.6).
func (r *Repository[T]) fillGeneratedID(entity schema.Entity) error {
	pk := r.spec.PrimaryKey
	if pk == nil || pk.IDStrategy != schema.IDGenerator {
		return nil
	}
	gen := r.pool.Options().IdentifierGenerator
	if gen == nil {
		return grapefruit.NewPlatformError(fmt.Sprintf("table %q requires an identifier generator but none is configured", r.spec.TableName), nil)
	}
	entity.SetValue(*pk, value.FromInt64(gen.Next()))
	return nil
}

// Insert inserts a single entity, filling a generator-strategy primary key
// first, and returns the number of affected rows.
func (r *Repository[T]) Insert(ctx context.Context, ent *T) (int64, error) {
	entity, err := schema.Bind(ent)
	if err != nil {
		return 0, err
	}
	if err := r.fillGeneratedID(entity); err != nil {
		return 0, err
	}
	stmt, err := sqlgen.Insert(r.pool.Dialect(), r.spec, []schema.Entity{entity}, r.handler())
	if err != nil {
		return 0, err
	}
	res, err := r.pool.Execute(ctx, stmt)
	if err != nil {
		return 0, grapefruit.NewSqlError(r.entityLabel(), "insert", err)
	}
	return res.RowsAffected()
}

// InsertBatch inserts every entity in ents as a single multi-row INSERT.
// Generator-strategy primary keys are minted concurrently across rows via
// errgroup, since the identifier generator needs no lock to serialize on
// (§4.6).
// An empty batch fails with ErrEmptyEntity.
func (r *Repository[T]) InsertBatch(ctx context.Context, ents []*T) (int64, error) {
	if len(ents) == 0 {
		return 0, grapefruit.ErrEmptyEntity
	}

	entities := make([]schema.Entity, len(ents))
	eg, _ := errgroup.WithContext(ctx)
	for i, e := range ents {
		i, e := i, e
		eg.Go(func() error {
			bound, err := schema.Bind(e)
			if err != nil {
				return err
			}
			if err := r.fillGeneratedID(bound); err != nil {
				return err
			}
			entities[i] = bound
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return 0, err
	}

	stmt, err := sqlgen.Insert(r.pool.Dialect(), r.spec, entities, r.handler())
	if err != nil {
		return 0, err
	}
	res, err := r.pool.Execute(ctx, stmt)
	if err != nil {
		return 0, grapefruit.NewSqlError(r.entityLabel(), "insert_batch", err)
	}
	return res.RowsAffected()
}

// UpdateByID updates ent's row, matched by its primary-key value, and
// optimistically guarded by its version value if the table declares one.
// Fails with PrimaryKeyNoneError if ent's primary key is unset.
func (r *Repository[T]) UpdateByID(ctx context.Context, ent *T) (int64, error) {
	entity, err := schema.Bind(ent)
	if err != nil {
		return 0, err
	}
	if r.spec.PrimaryKey != nil && entity.Value(*r.spec.PrimaryKey).IsNull() {
		return 0, grapefruit.NewPrimaryKeyNoneError(r.entityLabel())
	}
	stmt, err := sqlgen.UpdateByID(r.pool.Dialect(), r.spec, entity, r.handler())
	if err != nil {
		return 0, err
	}
	res, err := r.pool.Execute(ctx, stmt)
	if err != nil {
		return 0, grapefruit.NewSqlError(r.entityLabel(), "update_by_id", err)
	}
	return res.RowsAffected()
}

// UpdateByWrapper updates every row matching w, setting each update column
// from values.
func (r *Repository[T]) UpdateByWrapper(ctx context.Context, values *T, w *wrapper.Wrapper) (int64, error) {
	entity, err := schema.Bind(values)
	if err != nil {
		return 0, err
	}
	stmt, err := sqlgen.UpdateByWrapper(r.pool.Dialect(), r.spec, entity, r.handler(), w)
	if err != nil {
		return 0, err
	}
	res, err := r.pool.Execute(ctx, stmt)
	if err != nil {
		return 0, grapefruit.NewSqlError(r.entityLabel(), "update_by_wrapper", err)
	}
	return res.RowsAffected()
}

// DeleteByID deletes the row with the given primary-key value, rewritten
// to a logical-delete UPDATE per R1 if the table declares one.
func (r *Repository[T]) DeleteByID(ctx context.Context, id value.Value) (int64, error) {
	stmt, err := sqlgen.DeleteByID(r.pool.Dialect(), r.spec, id)
	if err != nil {
		return 0, err
	}
	res, err := r.pool.Execute(ctx, stmt)
	if err != nil {
		return 0, grapefruit.NewSqlError(r.entityLabel(), "delete_by_id", err)
	}
	return res.RowsAffected()
}

// DeleteByIDs deletes every row whose primary key is in ids.
func (r *Repository[T]) DeleteByIDs(ctx context.Context, ids []value.Value) (int64, error) {
	stmt, err := sqlgen.DeleteByIDs(r.pool.Dialect(), r.spec, ids)
	if err != nil {
		return 0, err
	}
	res, err := r.pool.Execute(ctx, stmt)
	if err != nil {
		return 0, grapefruit.NewSqlError(r.entityLabel(), "delete_by_ids", err)
	}
	return res.RowsAffected()
}

// DeleteByWrapper deletes every row matching w.
func (r *Repository[T]) DeleteByWrapper(ctx context.Context, w *wrapper.Wrapper) (int64, error) {
	stmt, err := sqlgen.DeleteByWrapper(r.pool.Dialect(), r.spec, w)
	if err != nil {
		return 0, err
	}
	res, err := r.pool.Execute(ctx, stmt)
	if err != nil {
		return 0, grapefruit.NewSqlError(r.entityLabel(), "delete_by_wrapper", err)
	}
	return res.RowsAffected()
}

// SelectByID returns the row with the given primary-key value, or nil if
// no such row exists (not deleted, per R1).
func (r *Repository[T]) SelectByID(ctx context.Context, id value.Value) (*T, error) {
	stmt, err := sqlgen.SelectByID(r.pool.Dialect(), r.spec, id)
	if err != nil {
		return nil, err
	}
	rows, err := r.pool.FetchOne(ctx, stmt)
	if err != nil {
		return nil, grapefruit.NewSqlError(r.entityLabel(), "select_by_id", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return schema.Scan[T](r.spec, rows)
}

// SelectByWrapper returns every row matching w.
func (r *Repository[T]) SelectByWrapper(ctx context.Context, w *wrapper.Wrapper) ([]T, error) {
	stmt, err := sqlgen.SelectByWrapper(r.pool.Dialect(), r.spec, w)
	if err != nil {
		return nil, err
	}
	return r.fetchAll(ctx, stmt, "select_by_wrapper")
}

// SelectAll returns every non-deleted row.
func (r *Repository[T]) SelectAll(ctx context.Context) ([]T, error) {
	stmt, err := sqlgen.SelectAll(r.pool.Dialect(), r.spec)
	if err != nil {
		return nil, err
	}
	return r.fetchAll(ctx, stmt, "select_all")
}

func (r *Repository[T]) fetchAll(ctx context.Context, stmt sqlgen.Statement, op string) ([]T, error) {
	rows, err := r.pool.FetchAll(ctx, stmt)
	if err != nil {
		return nil, grapefruit.NewSqlError(r.entityLabel(), op, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		ent, err := schema.Scan[T](r.spec, rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *ent)
	}
	return out, rows.Err()
}

// CountAll returns the number of non-deleted rows.
func (r *Repository[T]) CountAll(ctx context.Context) (int64, error) {
	stmt, err := sqlgen.CountAll(r.pool.Dialect(), r.spec)
	if err != nil {
		return 0, err
	}
	return r.fetchCount(ctx, stmt, "count_all")
}

// CountByWrapper returns the number of rows matching w.
func (r *Repository[T]) CountByWrapper(ctx context.Context, w *wrapper.Wrapper) (int64, error) {
	stmt, err := sqlgen.CountByWrapper(r.pool.Dialect(), r.spec, w)
	if err != nil {
		return 0, err
	}
	return r.fetchCount(ctx, stmt, "count_by_wrapper")
}

func (r *Repository[T]) fetchCount(ctx context.Context, stmt sqlgen.Statement, op string) (int64, error) {
	rows, err := r.pool.FetchOne(ctx, stmt)
	if err != nil {
		return 0, grapefruit.NewSqlError(r.entityLabel(), op, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return 0, rows.Err()
	}
	var n int64
	if err := rows.Scan(&n); err != nil {
		return 0, fmt.Errorf("repository: %s: %w", op, err)
	}
	return n, rows.Err()
}

// PageByWrapper returns page pageNum (1-based) of size pageSize among the
// rows matching w, per §3.6: the count query runs before the select query
// against the same criteria snapshot.
func (r *Repository[T]) PageByWrapper(ctx context.Context, w *wrapper.Wrapper, pageNum, pageSize int64) (Page[T], error) {
	stmts, err := sqlgen.PageByWrapper(r.pool.Dialect(), r.spec, w, int(pageNum), int(pageSize))
	if err != nil {
		return Page[T]{}, err
	}

	total, err := r.fetchCount(ctx, stmts.Count, "page_by_wrapper")
	if err != nil {
		return Page[T]{}, err
	}
	if total <= 0 {
		return Page[T]{Total: 0, Page: pageNum, Rows: pageSize}, nil
	}

	records, err := r.fetchAll(ctx, stmts.Select, "page_by_wrapper")
	if err != nil {
		return Page[T]{}, err
	}
	return Page[T]{Total: total, Page: pageNum, Rows: pageSize, Records: records}, nil
}
