package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteCreatesNestedPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "srs.db")

	db, err := OpenSQLite(context.Background(), path, zerolog.Nop())
	require.NoError(t, err)
	defer db.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err)

	for _, table := range []string{"admins", "teachers"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err)
		assert.Equal(t, table, name)
	}
}

func TestOpenSQLiteIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "srs.db")

	db, err := OpenSQLite(context.Background(), path, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = OpenSQLite(context.Background(), path, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, db.Close())
}
