package objstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/objstore/service/storage/db"
	"github.com/viant/objstore/service/storage/file"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, StorageFile, cfg.Type)
	assert.Equal(t, file.DefaultURL, cfg.File.URL)
	assert.Equal(t, db.MySQL, cfg.DB.Driver)
}

func TestLoadConfig_YAMLAndEnv(t *testing.T) {
	t.Setenv("OBJSTORE_TEST_DB", "hbnb_yaml_db")
	t.Setenv("HBNB_MYSQL_USER", "env_user")
	location := filepath.Join(t.TempDir(), "objstore.yaml")
	document := `type: db
db:
  driver: mysql
  user: yaml_user
  host: localhost
  database: ${env.OBJSTORE_TEST_DB}
`
	require.NoError(t, os.WriteFile(location, []byte(document), 0o644))

	cfg, err := LoadConfig(context.Background(), location)
	require.NoError(t, err)
	assert.Equal(t, StorageDB, cfg.Type)
	assert.Equal(t, db.MySQL, cfg.DB.Driver)
	assert.Equal(t, "hbnb_yaml_db", cfg.DB.Database)
	assert.Equal(t, "env_user", cfg.DB.User)
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	assert.Error(t, (*Config)(nil).Validate())
	assert.NoError(t, DefaultConfig().Validate())
	assert.Error(t, (&Config{Type: "memory"}).Validate())
	assert.Error(t, (&Config{Type: StorageDB, DB: db.Config{Driver: db.SQLite}}).Validate())
}
