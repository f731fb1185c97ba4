package migrate

import (
	"testing"
	"testing/fstest"

	"github.com/dangerclosesec/apmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	v, err := ParseVersion("0002_credential_audit_logs.sql")
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	_, err = ParseVersion("init.sql")
	assert.Error(t, err)

	_, err = ParseVersion("abc_init.sql")
	assert.Error(t, err)

	_, err = ParseVersion("0000_zero.sql")
	assert.Error(t, err)
}

func TestLoadOrdersAndFilters(t *testing.T) {
	fsys := fstest.MapFS{
		"m/0010_later.sql": {Data: []byte("SELECT 10;")},
		"m/0002_second.sql": {Data: []byte("SELECT 2;")},
		"m/0001_first.sql":  {Data: []byte("SELECT 1;")},
		"m/README.md":       {Data: []byte("docs")},
	}

	m := NewMigrator(nil, fsys, "m")
	migrations, err := m.Load()
	require.NoError(t, err)
	require.Len(t, migrations, 3)

	assert.Equal(t, []int{1, 2, 10}, []int{migrations[0].Version, migrations[1].Version, migrations[2].Version})
	assert.Equal(t, "SELECT 2;", migrations[1].SQL)

	pending := Pending(migrations, 2)
	require.Len(t, pending, 1)
	assert.Equal(t, "0010_later.sql", pending[0].Name)
}

func TestLoadRejectsDuplicateVersions(t *testing.T) {
	fsys := fstest.MapFS{
		"m/0001_a.sql": {Data: []byte("SELECT 1;")},
		"m/0001_b.sql": {Data: []byte("SELECT 1;")},
	}

	_, err := NewMigrator(nil, fsys, "m").Load()
	assert.ErrorContains(t, err, "duplicate migration version 1")
}

func TestEmbeddedMigrations(t *testing.T) {
	migrations, err := NewMigrator(nil, apmap.MigrationsFS, "migrations").Load()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)
	assert.Equal(t, 1, migrations[0].Version)
	assert.Contains(t, migrations[0].SQL, "idx_access_point_passwords_current")
}
