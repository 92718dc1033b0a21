package source_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/teenjuna/seqbuf/internal/testing/require"
	"github.com/teenjuna/seqbuf/source"
)

type user struct {
	ID   int
	Name string
}

func scanUser(rows *sql.Rows) (user, error) {
	var u user
	err := rows.Scan(&u.ID, &u.Name)
	return u, err
}

func openDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.Nil(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Fatalf("close db: %v", err)
		}
	})

	_, err = db.Exec(`
		create table user (id integer primary key, name text not null);
		insert into user (id, name) values (1, 'ann'), (2, 'bob'), (3, 'cid');
	`)
	require.Nil(t, err)

	return db
}

func TestRows(t *testing.T) {
	db := openDB(t)

	s := source.Rows(db, scanUser, "select id, name from user where id >= ? order by id", 2)

	items, err := collect(t, s.All(t.Context()))
	require.Nil(t, err)
	require.Equal(t, items, []user{{2, "bob"}, {3, "cid"}})
	require.Nil(t, s.Close())
}

func TestRowsLazy(t *testing.T) {
	db := openDB(t)

	s := source.Rows(db, scanUser, "select id, name from user order by id")

	_, err := db.Exec("insert into user (id, name) values (4, 'dan')")
	require.Nil(t, err)

	items, err := collect(t, s.All(t.Context()))
	require.Nil(t, err)
	require.Equal(t, len(items), 4)
}

func TestRowsBreakReleasesConnection(t *testing.T) {
	db := openDB(t)

	s := source.Rows(db, scanUser, "select id, name from user order by id")
	for item, err := range s.All(t.Context()) {
		require.Nil(t, err)
		require.Equal(t, item.ID, 1)
		break
	}

	// With a single connection this would block forever if the rows were left open.
	var count int
	require.Nil(t, db.QueryRowContext(t.Context(), "select count(*) from user").Scan(&count))
	require.Equal(t, count, 3)
}

func TestRowsQueryError(t *testing.T) {
	db := openDB(t)

	_, err := collect(t, source.Rows(db, scanUser, "select nothing from nowhere").All(t.Context()))
	require.NotNil(t, err)
}
