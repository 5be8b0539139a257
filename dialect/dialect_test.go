package dialect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grapefruit-orm/grapefruit/dialect"
)

func TestMarks(t *testing.T) {
	my, err := dialect.For(dialect.MySQL)
	require.NoError(t, err)
	assert.Equal(t, "?", my.Mark(1))
	assert.Equal(t, "?", my.Mark(7))

	pg, err := dialect.For(dialect.Postgres)
	require.NoError(t, err)
	assert.Equal(t, "$1", pg.Mark(1))
	assert.Equal(t, "$7", pg.Mark(7))

	lite, err := dialect.For(dialect.SQLite)
	require.NoError(t, err)
	assert.Equal(t, "?1", lite.Mark(1))
}

func TestQuote(t *testing.T) {
	my, _ := dialect.For(dialect.MySQL)
	assert.Equal(t, "`col`", my.Quote("col"))

	pg, _ := dialect.For(dialect.Postgres)
	assert.Equal(t, `"col"`, pg.Quote("col"))

	lite, _ := dialect.For(dialect.SQLite)
	assert.Equal(t, "'col'", lite.Quote("col"))
}

func TestSupportsArrays(t *testing.T) {
	pg, _ := dialect.For(dialect.Postgres)
	assert.True(t, pg.SupportsArrays())

	my, _ := dialect.For(dialect.MySQL)
	assert.False(t, my.SupportsArrays())

	lite, _ := dialect.For(dialect.SQLite)
	assert.False(t, lite.SupportsArrays())
}

func TestForUnknown(t *testing.T) {
	_, err := dialect.For("oracle")
	assert.Error(t, err)
}
