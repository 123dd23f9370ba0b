package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("HBNB_MYSQL_USER", "hbnb_dev")
	t.Setenv("HBNB_MYSQL_PWD", "hbnb_dev_pwd")
	t.Setenv("HBNB_MYSQL_HOST", "db.local")
	t.Setenv("HBNB_MYSQL_DB", "hbnb_dev_db")
	t.Setenv("HBNB_ENV", "test")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, MySQL, cfg.Driver)
	assert.Equal(t, "hbnb_dev", cfg.User)
	assert.Equal(t, "hbnb_dev_pwd", cfg.Password)
	assert.Equal(t, "db.local", cfg.Host)
	assert.Equal(t, "hbnb_dev_db", cfg.Database)
	assert.True(t, cfg.IsTest())
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{name: "mysql", config: &Config{Driver: MySQL, Database: "hbnb"}},
		{name: "mysql without database", config: &Config{Driver: MySQL}, wantErr: true},
		{name: "sqlite", config: &Config{Driver: SQLite, SQLitePath: "hbnb.db"}},
		{name: "sqlite without path", config: &Config{Driver: SQLite}, wantErr: true},
		{name: "unknown driver", config: &Config{Driver: "postgres"}, wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
