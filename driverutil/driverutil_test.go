package driverutil_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/grapefruit-orm/grapefruit/dialect"
	"github.com/grapefruit-orm/grapefruit/driverutil"
	"github.com/grapefruit-orm/grapefruit/sqlgen"
	"github.com/grapefruit-orm/grapefruit/value"
)

func TestExecuteBindsArgsAndReturnsResult(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	my, err := dialect.For(dialect.MySQL)
	require.NoError(t, err)
	pool := driverutil.NewWithDB(db, my, driverutil.PoolOptions{})

	mock.ExpectExec("update `account` set `name` = \\?").
		WithArgs("new name", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	stmt := sqlgen.Statement{
		SQL:  "update `account` set `name` = ? where `id` = ?",
		Args: []value.Value{value.FromString("new name"), value.FromInt64(7)},
	}
	res, err := pool.Execute(context.Background(), stmt)
	require.NoError(t, err)
	n, err := res.RowsAffected()
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchAllReturnsRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	my, err := dialect.For(dialect.MySQL)
	require.NoError(t, err)
	pool := driverutil.NewWithDB(db, my, driverutil.PoolOptions{AcquireTimeout: time.Second})

	rows := sqlmock.NewRows([]string{"id", "name"}).AddRow(int64(1), "a").AddRow(int64(2), "b")
	mock.ExpectQuery("select `id`, `name` from `account`").WillReturnRows(rows)

	stmt := sqlgen.Statement{SQL: "select `id`, `name` from `account` where  1 = 1 "}
	got, err := pool.FetchAll(context.Background(), stmt)
	require.NoError(t, err)
	defer got.Close()

	count := 0
	for got.Next() {
		count++
	}
	require.Equal(t, 2, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteRejectsArrayOnMySQL(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	my, err := dialect.For(dialect.MySQL)
	require.NoError(t, err)
	pool := driverutil.NewWithDB(db, my, driverutil.PoolOptions{})

	arr := value.MustArray(value.KindInt64, value.FromInt64(1), value.FromInt64(2))
	stmt := sqlgen.Statement{SQL: "select 1", Args: []value.Value{arr}}
	_, err = pool.Execute(context.Background(), stmt)
	require.Error(t, err)
}
