package repository_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/grapefruit-orm/grapefruit/dialect"
	"github.com/grapefruit-orm/grapefruit/driverutil"
	"github.com/grapefruit-orm/grapefruit/idgen"
	"github.com/grapefruit-orm/grapefruit/repository"
	"github.com/grapefruit-orm/grapefruit/value"
	"github.com/grapefruit-orm/grapefruit/wrapper"
)

type widget struct {
	ID   *int64 `grapefruit:"id,name=id,id_type=generator"`
	Name string `grapefruit:"column,name=name"`
}

func newTestRepo(t *testing.T) (*repository.Repository[widget], sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	my, err := dialect.For(dialect.MySQL)
	require.NoError(t, err)

	gen, err := idgen.New(1, 1, nil)
	require.NoError(t, err)

	pool := driverutil.NewWithDB(db, my, driverutil.PoolOptions{IdentifierGenerator: gen})
	repo, err := repository.New[widget](pool)
	require.NoError(t, err)
	return repo, mock
}

func TestInsertMintsGeneratorID(t *testing.T) {
	repo, mock := newTestRepo(t)
	mock.ExpectExec("insert into `widget`").WillReturnResult(sqlmock.NewResult(0, 1))

	w := &widget{Name: "a"}
	n, err := repo.Insert(context.Background(), w)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
	require.NotNil(t, w.ID)
	require.Greater(t, *w.ID, int64(0))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertBatchEmptyFails(t *testing.T) {
	repo, _ := newTestRepo(t)
	_, err := repo.InsertBatch(context.Background(), nil)
	require.Error(t, err)
}

func TestSelectByIDReturnsNilWhenMissing(t *testing.T) {
	repo, mock := newTestRepo(t)
	mock.ExpectQuery("select `id`, `name` from `widget`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	got, err := repo.SelectByID(context.Background(), value.FromInt64(7))
	require.NoError(t, err)
	require.Nil(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPageByWrapperRunsCountThenSelect(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery("select count\\(1\\) from \\( select `id`, `name` from `widget`").
		WillReturnRows(sqlmock.NewRows([]string{"count(1)"}).AddRow(int64(2)))
	mock.ExpectQuery("select `id`, `name` from `widget`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(int64(1), "a").
			AddRow(int64(2), "b"))

	page, err := repo.PageByWrapper(context.Background(), wrapper.New(), 1, 10)
	require.NoError(t, err)
	require.EqualValues(t, 2, page.Total)
	require.Len(t, page.Records, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}
