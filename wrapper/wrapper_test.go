package wrapper_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grapefruit-orm/grapefruit/dialect"
	"github.com/grapefruit-orm/grapefruit/value"
	"github.com/grapefruit-orm/grapefruit/wrapper"
)

var (
	colID   = wrapper.Col("id")
	colName = wrapper.Col("name")
)

func natives(vals []value.Value) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v.Native()
	}
	return out
}

func TestScenarioSimpleEqMySQL(t *testing.T) {
	my, err := dialect.For(dialect.MySQL)
	require.NoError(t, err)

	w := wrapper.New().Eq(colID, int64(7))
	sql, args := w.Build(my, 1)

	assert.Equal(t, "`id` = ?", sql)
	require.Len(t, args, 1)
	assert.EqualValues(t, 7, args[0].Native())
}

func TestScenarioPostgresInList(t *testing.T) {
	pg, err := dialect.For(dialect.Postgres)
	require.NoError(t, err)

	w := wrapper.New().InList(colID, value.FromInt64(1), value.FromInt64(2), value.FromInt64(3))
	sql, args := w.Build(pg, 1)

	assert.Contains(t, sql, "\"id\" in ( $1 , $2 , $3 )")
	require.Len(t, args, 3)
	assert.EqualValues(t, []any{int64(1), int64(2), int64(3)}, natives(args))
}

func TestScenarioBetweenOrGroup(t *testing.T) {
	pg, err := dialect.For(dialect.Postgres)
	require.NoError(t, err)

	w := wrapper.New().
		Between(colID, value.FromInt64(1), value.FromInt64(10)).
		AndFn(func(sub *wrapper.Wrapper) *wrapper.Wrapper {
			return sub.Eq(colName, "a").Or().Eq(colName, "b")
		})
	sql, args := w.Build(pg, 1)

	assert.Contains(t, sql, "\"id\" between $1 and $2")
	assert.Contains(t, sql, "( \"name\" = $3 or \"name\" = $4 )")
	assert.Equal(t, []any{int64(1), int64(10), "a", "b"}, natives(args))
}

func TestMarkCountMatchesParamVector(t *testing.T) {
	pg, err := dialect.For(dialect.Postgres)
	require.NoError(t, err)

	w := wrapper.New().
		Eq(colID, int64(1)).
		InList(colName, value.FromString("a"), value.FromString("b"))
	sql, args := w.Build(pg, 1)

	marks := strings.Count(sql, "$")
	assert.Equal(t, len(args), marks)
}

func TestEmptyWrapperBuildsTrue(t *testing.T) {
	my, _ := dialect.For(dialect.MySQL)
	sql, args := wrapper.New().Build(my, 1)
	assert.Equal(t, " 1 = 1 ", sql)
	assert.Empty(t, args)
}

func TestDeterministicRebuild(t *testing.T) {
	pg, _ := dialect.For(dialect.Postgres)
	w := wrapper.New().Eq(colID, int64(1)).Like(colName, "foo")

	sql1, args1 := w.Build(pg, 1)
	sql2, args2 := w.Build(pg, 1)

	assert.Equal(t, sql1, sql2)
	assert.Equal(t, args1, args2)
}

func TestOrNeverLeadingOrTrailing(t *testing.T) {
	pg, _ := dialect.For(dialect.Postgres)
	w := wrapper.New().Eq(colID, int64(1)).Or().Eq(colName, "x")
	sql, _ := w.Build(pg, 1)
	toks := strings.Fields(sql)
	require.NotEmpty(t, toks)
	assert.NotEqual(t, "or", toks[0])
	assert.NotEqual(t, "or", toks[len(toks)-1])
}

func TestGroupByHavingOrderBy(t *testing.T) {
	my, _ := dialect.For(dialect.MySQL)
	w := wrapper.New().
		Eq(colID, int64(1)).
		GroupBy(colName).
		Having("count(1) > 1").
		OrderByAsc(colName).
		OrderByDesc(colID)
	sql, _ := w.Build(my, 1)

	assert.Contains(t, sql, "group by `name`")
	assert.Contains(t, sql, "having count(1) > 1")
	assert.Contains(t, sql, "order by `name` ASC, `id` DESC")
}

func TestIsNullIsNotNull(t *testing.T) {
	my, _ := dialect.For(dialect.MySQL)
	w := wrapper.New().IsNull(colName).Or().IsNotNull(colID)
	sql, args := w.Build(my, 1)
	assert.Equal(t, "`name` is null or `id` is not null", sql)
	assert.Empty(t, args)
}

func TestConditionalSuppression(t *testing.T) {
	my, _ := dialect.For(dialect.MySQL)
	w := wrapper.New().EqIf(false, colName, "x").EqIf(true, colID, int64(1))
	sql, args := w.Build(my, 1)
	assert.Equal(t, "`id` = ?", sql)
	assert.Len(t, args, 1)
}
