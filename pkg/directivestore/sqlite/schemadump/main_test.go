package main

import (
	"bytes"
	"database/sql"
	"strings"
	"testing"

	"codeberg.org/miketth/wise/pkg/directivestore/sqlite"
	"codeberg.org/miketth/wise/pkg/directivestore/sqlite/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDumpSchema(t *testing.T) {
	db, err := sql.Open("sqlite3", "file:schemadumptest?cache=shared&mode=memory")
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)

	require.NoError(t, migrations.Migrate(db, zap.NewNop().Sugar()))

	var out bytes.Buffer
	require.NoError(t, dumpSchema(sqlite.New(db), &out))

	schema := strings.ToLower(out.String())
	assert.Contains(t, schema, "create table last_directives")
	assert.Contains(t, schema, "schema_migrations")
}
