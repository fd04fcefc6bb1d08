package profile

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drfoodie/nutritrack/internal/common"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE profile (
  id  INTEGER PRIMARY KEY CHECK (id = 1),
  doc TEXT NOT NULL
);
`)
	require.NoError(t, err)

	return db
}

func TestSaveAndGet(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, []byte(`{"name":"Alex"}`)))

	doc, err := r.Get(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Alex"}`, string(doc))

	// save again replaces, never accumulates rows
	require.NoError(t, r.Save(ctx, []byte(`{"name":"Sam"}`)))

	doc, err = r.Get(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Sam"}`, string(doc))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM profile`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestGet_EmptyStore(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	_, err := r.Get(context.Background())
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestClear(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, []byte(`{}`)))
	require.NoError(t, r.Clear(ctx))

	_, err := r.Get(ctx)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	// clearing an empty store is a no-op
	require.NoError(t, r.Clear(ctx))
}

func TestSave_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO profile").WillReturnError(sql.ErrConnDone)

	r := NewSQLiteRepository(db)
	err = r.Save(context.Background(), []byte(`{}`))
	assert.ErrorIs(t, err, sql.ErrConnDone)
}
