package migrations

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMigrateIsRepeatable(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "directives.db"))
	require.NoError(t, err)
	defer db.Close()

	log := zap.NewNop().Sugar()
	require.NoError(t, Migrate(db, log))
	require.NoError(t, Migrate(db, log))

	_, err = db.Exec(`insert into last_directives (app, directive) values ('com.apple.safari', 'left')`)
	require.NoError(t, err)

	_, err = db.Exec(`insert into last_directives (app, directive) values ('com.apple.mail', 'diagonal')`)
	assert.Error(t, err)
}
