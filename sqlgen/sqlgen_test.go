package sqlgen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grapefruit-orm/grapefruit/dialect"
	"github.com/grapefruit-orm/grapefruit/metaobject"
	"github.com/grapefruit-orm/grapefruit/schema"
	"github.com/grapefruit-orm/grapefruit/sqlgen"
	"github.com/grapefruit-orm/grapefruit/value"
	"github.com/grapefruit-orm/grapefruit/wrapper"
)

type Account struct {
	ID      *int64 `grapefruit:"id,name=id,id_type=generator"`
	Name    string `grapefruit:"column,name=name"`
	Deleted bool   `grapefruit:"column,name=deleted,is_logic_delete"`
	Version int64  `grapefruit:"column,name=version,version"`
}

func mustSpec(t *testing.T) *schema.TableSpec {
	t.Helper()
	spec, err := schema.Register[Account]()
	require.NoError(t, err)
	return spec
}

func TestScenarioLogicalDeleteSelect(t *testing.T) {
	spec := mustSpec(t)
	my, err := dialect.For(dialect.MySQL)
	require.NoError(t, err)

	stmt, err := sqlgen.SelectByID(my, spec, value.FromInt64(7))
	require.NoError(t, err)

	assert.Contains(t, stmt.SQL, "where")
	assert.Contains(t, stmt.SQL, "`deleted` = ?")
	assert.Contains(t, stmt.SQL, "`id` = ?")
	assert.Len(t, stmt.Args, 2)
	assert.EqualValues(t, 7, stmt.Args[0].Native())
	assert.Equal(t, false, stmt.Args[1].Native())
}

func TestScenarioDeleteRewrittenToUpdate(t *testing.T) {
	spec := mustSpec(t)
	pg, err := dialect.For(dialect.Postgres)
	require.NoError(t, err)

	stmt, err := sqlgen.DeleteByID(pg, spec, value.FromInt64(7))
	require.NoError(t, err)

	assert.Contains(t, stmt.SQL, "update")
	assert.NotContains(t, stmt.SQL, "delete from")
	assert.Contains(t, stmt.SQL, "\"deleted\" = $1")
	assert.Contains(t, stmt.SQL, "\"id\" = $2")
	assert.Contains(t, stmt.SQL, "\"deleted\" = $3")
	require.Len(t, stmt.Args, 3)
	assert.Equal(t, true, stmt.Args[0].Native())
	assert.EqualValues(t, 7, stmt.Args[1].Native())
	assert.Equal(t, false, stmt.Args[2].Native())
}

func TestScenarioPagedCountWrap(t *testing.T) {
	spec := mustSpec(t)
	pg, err := dialect.For(dialect.Postgres)
	require.NoError(t, err)

	w := wrapper.New().Like(wrapper.Col("name"), "a")
	pages, err := sqlgen.PageByWrapper(pg, spec, w, 2, 10)
	require.NoError(t, err)

	assert.Contains(t, pages.Count.SQL, "select count(1) from (")
	assert.Contains(t, pages.Count.SQL, ") t")
	assert.Equal(t, pages.Select.Args[:len(pages.Count.Args)], pages.Count.Args)
	assert.Contains(t, pages.Select.SQL, "limit $3 offset $4")
	require.Len(t, pages.Select.Args, 4)
	assert.EqualValues(t, 10, pages.Select.Args[2].Native())
	assert.EqualValues(t, 10, pages.Select.Args[3].Native())
}

func TestInsertAndUpdateByIDVersionIncrement(t *testing.T) {
	spec := mustSpec(t)
	my, err := dialect.For(dialect.MySQL)
	require.NoError(t, err)

	acc := &Account{Name: "a", Version: 1}
	entity, err := schema.Bind(acc)
	require.NoError(t, err)

	handler := metaobject.NopHandler{}
	stmt, err := sqlgen.Insert(my, spec, []schema.Entity{entity}, handler)
	require.NoError(t, err)
	assert.Contains(t, stmt.SQL, "insert into `account`")

	upd, err := sqlgen.UpdateByID(my, spec, entity, handler)
	require.NoError(t, err)
	assert.Contains(t, upd.SQL, "`version` = `version` + 1")
	assert.Contains(t, upd.SQL, "where `id` = ? and `version` = ?")
}
