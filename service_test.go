package objstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/objstore/model"
	"github.com/viant/objstore/service/storage/db"
	"github.com/viant/objstore/service/storage/file"
)

func TestNew_FileStorage(t *testing.T) {
	ctx := context.Background()
	location := filepath.Join(t.TempDir(), "file.json")
	config := DefaultConfig()
	config.File.URL = location

	srv, err := New(ctx, WithConfig(config))
	require.NoError(t, err)
	_, ok := srv.Storage().(*file.Service)
	assert.True(t, ok)

	state := model.NewState("California")
	require.NoError(t, srv.Storage().New(ctx, state))
	require.NoError(t, srv.Storage().Save(ctx))
	require.NoError(t, srv.Shutdown(ctx))

	reopened, err := New(ctx, WithConfig(config))
	require.NoError(t, err)
	actual, err := reopened.Storage().Get(ctx, model.KindState, state.ID)
	require.NoError(t, err)
	require.NotNil(t, actual)
	assert.Equal(t, "California", actual.(*model.State).Name)
}

func TestNew_DBStorage(t *testing.T) {
	ctx := context.Background()
	config := DefaultConfig()
	config.Type = StorageDB
	config.DB = db.Config{Driver: db.SQLite, SQLitePath: filepath.Join(t.TempDir(), "hbnb.db")}

	srv, err := New(ctx, WithConfig(config))
	require.NoError(t, err)
	defer srv.Shutdown(ctx)
	relational, ok := srv.Storage().(*db.Service)
	require.True(t, ok)
	assert.NotNil(t, relational.Session())

	user := model.NewUser("alice@example.com", "pwd")
	require.NoError(t, srv.Storage().New(ctx, user))
	require.NoError(t, srv.Storage().Save(ctx))
	count, err := srv.Storage().Count(ctx, model.KindUser)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNew_FromEnv(t *testing.T) {
	location := filepath.Join(t.TempDir(), "env.json")
	t.Setenv("HBNB_TYPE_STORAGE", StorageFile)
	t.Setenv("HBNB_FILE_PATH", location)

	srv, err := New(context.Background())
	require.NoError(t, err)
	assert.Equal(t, location, srv.Config().File.URL)
	assert.Equal(t, StorageFile, srv.Config().Type)
}

func TestNew_Errors(t *testing.T) {
	ctx := context.Background()
	testCases := []struct {
		name   string
		config *Config
	}{
		{name: "unknown type", config: &Config{Type: "memory"}},
		{name: "db without database", config: &Config{Type: StorageDB, DB: db.Config{Driver: db.MySQL}}},
		{name: "db unreachable", config: &Config{Type: StorageDB, DB: db.Config{Driver: db.SQLite, SQLitePath: filepath.Join(t.TempDir(), "no", "such", "hbnb.db")}}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv, err := New(ctx, WithConfig(tc.config))
			assert.Error(t, err)
			assert.Nil(t, srv)
		})
	}
}

func TestNew_WithEngine(t *testing.T) {
	ctx := context.Background()
	engine := file.New(file.WithURL(filepath.Join(t.TempDir(), "injected.json")))
	srv, err := New(ctx, WithConfig(DefaultConfig()), WithEngine(engine))
	require.NoError(t, err)
	assert.Same(t, engine, srv.Storage())
}
