// Package metaobject implements the meta-object handler contract of §6.3:
// a pair of callbacks the emitter consults, at emit time, to fill in
// automatic values for columns whose Fill policy requests one.
package metaobject

import "github.com/grapefruit-orm/grapefruit/value"

// MetaObject is a {column_alias → Value} map populated by a Handler and
// consulted by the emitter per §4.3's INSERT/UPDATE fill handling.
type MetaObject map[string]value.Value

// Set stores v under the column alias, overwriting any previous value.
func (m MetaObject) Set(alias string, v value.Value) { m[alias] = v }

// Get returns the value registered for alias, if any.
func (m MetaObject) Get(alias string) (value.Value, bool) {
	v, ok := m[alias]
	return v, ok
}

// Handler is the pluggable meta-object handler of §6.3.
type Handler interface {
	// InsertFill populates meta with the values that should be bound for
	// columns with Fill == Insert or InsertAndUpdate.
	InsertFill(meta MetaObject)
	// UpdateFill populates meta with the values that should be bound for
	// columns with Fill == Update or InsertAndUpdate.
	UpdateFill(meta MetaObject)
}

// NopHandler is a Handler that fills nothing; used when no handler is
// configured.
type NopHandler struct{}

func (NopHandler) InsertFill(MetaObject) {}
func (NopHandler) UpdateFill(MetaObject) {}

var _ Handler = NopHandler{}
