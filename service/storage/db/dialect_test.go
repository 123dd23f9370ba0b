package db

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMySQLDialect_DSN(t *testing.T) {
	dsn, err := mysqlDialect{}.dsn(&Config{User: "hbnb_dev", Password: "pwd", Host: "localhost", Database: "hbnb_dev_db"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(dsn, "hbnb_dev:pwd@tcp(localhost:3306)/hbnb_dev_db"), dsn)
	assert.Contains(t, dsn, "parseTime=true")

	dsn, err = mysqlDialect{}.dsn(&Config{User: "u", Host: "10.0.0.1:3307", Database: "db"})
	require.NoError(t, err)
	assert.Contains(t, dsn, "tcp(10.0.0.1:3307)")
}

func TestDialect_Upsert(t *testing.T) {
	columns := []string{"id", "name"}
	assert.Equal(t,
		"INSERT INTO states (id, name) VALUES (?, ?) ON DUPLICATE KEY UPDATE name = VALUES(name)",
		mysqlDialect{}.upsert("states", columns))
	assert.Equal(t,
		"INSERT INTO states (id, name) VALUES (?, ?) ON CONFLICT(id) DO UPDATE SET name = excluded.name",
		sqliteDialect{}.upsert("states", columns))
}

func TestCreateStatements(t *testing.T) {
	statements, err := createStatements(sqliteDialect{})
	require.NoError(t, err)
	require.Len(t, statements, 7)
	assert.Contains(t, statements[0], "CREATE TABLE IF NOT EXISTS states")
	assert.Contains(t, statements[1], "FOREIGN KEY (state_id) REFERENCES states(id) ON DELETE CASCADE DEFERRABLE INITIALLY DEFERRED")
	assert.Contains(t, statements[6], "CREATE TABLE IF NOT EXISTS place_amenity")

	statements, err = createStatements(mysqlDialect{})
	require.NoError(t, err)
	assert.Contains(t, statements[0], "id VARCHAR(60) NOT NULL PRIMARY KEY")
	assert.Contains(t, statements[0], "ENGINE=InnoDB")
	assert.NotContains(t, strings.Join(statements, "\n"), "DEFERRABLE")
}

func TestTables_DropOrder(t *testing.T) {
	assert.Equal(t, []string{"place_amenity", "reviews", "places", "amenities", "users", "cities", "states"}, tables())
}

func TestDialectFor(t *testing.T) {
	_, err := dialectFor("oracle")
	assert.Error(t, err)
	d, err := dialectFor(SQLite)
	require.NoError(t, err)
	assert.Equal(t, SQLite, d.driverName())
}
