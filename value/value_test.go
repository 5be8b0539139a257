package value_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grapefruit-orm/grapefruit/value"
)

func TestScalarRoundTrip(t *testing.T) {
	v := value.FromInt64(42)
	n, ok := v.Int64()
	require.True(t, ok)
	assert.Equal(t, int64(42), n)
	assert.False(t, v.IsNull())

	s := value.FromString("hi")
	str, ok := s.String()
	require.True(t, ok)
	assert.Equal(t, "hi", str)

	d := value.FromDecimal(decimal.NewFromFloat(3.5))
	dd, ok := d.Decimal()
	require.True(t, ok)
	assert.True(t, dd.Equal(decimal.NewFromFloat(3.5)))
}

func TestNull(t *testing.T) {
	n := value.Null(value.KindInt64)
	assert.True(t, n.IsNull())
	_, ok := n.Int64()
	assert.False(t, ok)
}

func TestArrayHomogeneous(t *testing.T) {
	arr, err := value.Array(value.KindInt64, value.FromInt64(1), value.FromInt64(2))
	require.NoError(t, err)
	assert.Equal(t, value.KindArray, arr.Kind())
	assert.Equal(t, value.KindInt64, arr.ElementKind())
	assert.Len(t, arr.Elements(), 2)
}

func TestArrayMixedKindRejected(t *testing.T) {
	_, err := value.Array(value.KindInt64, value.FromInt64(1), value.FromString("nope"))
	require.Error(t, err)
}

func TestArrayOfArraysRejected(t *testing.T) {
	_, err := value.Array(value.KindArray)
	require.Error(t, err)
}

func TestCanonicalUTC(t *testing.T) {
	loc := time.FixedZone("test", 9*3600)
	dt := time.Date(2024, 3, 1, 10, 30, 0, 0, loc)
	v := value.FromDateTime(dt)
	s, err := v.CanonicalUTC()
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01 01:30:00", s)
}

func TestCanonicalUTCRejectsNonTemporal(t *testing.T) {
	_, err := value.FromString("x").CanonicalUTC()
	assert.Error(t, err)
}
