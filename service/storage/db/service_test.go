package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/objstore/model"
	"github.com/viant/objstore/service/storage"
	"github.com/viant/objstore/service/storage/storagetest"
	"github.com/viant/objstore/tracing"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func sqliteConfig(path string) *Config {
	return &Config{Driver: SQLite, SQLitePath: path}
}

func newEngine(t *testing.T, config *Config) *Service {
	ctx := context.Background()
	engine, err := New(ctx, config)
	require.NoError(t, err)
	t.Cleanup(func() { _ = engine.Shutdown(context.Background()) })
	require.NoError(t, engine.Reload(ctx))
	return engine
}

func TestService_Contract(t *testing.T) {
	paths := map[*testing.T]string{}
	storagetest.Run(t, func(t *testing.T) storage.Engine {
		path, ok := paths[t]
		if !ok {
			path = filepath.Join(t.TempDir(), "hbnb.db")
			paths[t] = path
		}
		return newEngine(t, sqliteConfig(path))
	})
}

func TestService_UnknownKind(t *testing.T) {
	ctx := context.Background()
	engine := newEngine(t, sqliteConfig(filepath.Join(t.TempDir(), "hbnb.db")))

	_, err := engine.All(ctx, "Spaceship")
	assert.ErrorIs(t, err, storage.ErrUnknownKind)
	_, err = engine.Count(ctx, model.KindBase)
	assert.ErrorIs(t, err, storage.ErrUnknownKind)

	actual, err := engine.Get(ctx, model.KindBase, "b1")
	assert.NoError(t, err)
	assert.Nil(t, actual)
}

func TestService_PendingVisibleInSession(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "hbnb.db")
	engine := newEngine(t, sqliteConfig(path))

	state := model.NewState("Ohio")
	require.NoError(t, engine.New(ctx, state))
	actual, err := engine.Get(ctx, model.KindState, state.ID)
	require.NoError(t, err)
	assert.Same(t, state, actual)

	other := newEngine(t, sqliteConfig(path))
	actual, err = other.Get(ctx, model.KindState, state.ID)
	require.NoError(t, err)
	assert.Nil(t, actual)

	require.NoError(t, engine.Save(ctx))
	require.NoError(t, other.Reload(ctx))
	actual, err = other.Get(ctx, model.KindState, state.ID)
	require.NoError(t, err)
	storagetest.AssertSameAttributes(t, state, actual)
}

func TestService_RollbackSession(t *testing.T) {
	ctx := context.Background()
	engine := newEngine(t, sqliteConfig(filepath.Join(t.TempDir(), "hbnb.db")))

	orphan := model.NewCity("missing-state", "Nowhere")
	require.NoError(t, engine.New(ctx, orphan))
	err := engine.Save(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrSessionFailed)
	assert.True(t, engine.Session().Failed())

	_, err = engine.All(ctx, model.KindCity)
	assert.ErrorIs(t, err, storage.ErrSessionFailed)
	assert.ErrorIs(t, engine.Save(ctx), storage.ErrSessionFailed)

	require.NoError(t, engine.RollbackSession(ctx))
	assert.False(t, engine.Session().Failed())
	count, err := engine.Count(ctx, model.KindCity)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	state := model.NewState("Idaho")
	require.NoError(t, engine.New(ctx, state))
	require.NoError(t, engine.Save(ctx))
	count, err = engine.Count(ctx, model.KindState)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestService_SessionOutlivesCallContext(t *testing.T) {
	engine := newEngine(t, sqliteConfig(filepath.Join(t.TempDir(), "hbnb.db")))

	callCtx, cancel := context.WithCancel(context.Background())
	require.NoError(t, engine.New(callCtx, model.NewState("Vermont")))
	require.NoError(t, engine.Save(callCtx))
	cancel()

	ctx := context.Background()
	require.NoError(t, engine.New(ctx, model.NewState("Maine")))
	require.NoError(t, engine.Save(ctx))
	assert.False(t, engine.Session().Failed())

	require.NoError(t, engine.Reload(ctx))
	count, err := engine.Count(ctx, model.KindState)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestService_RollbackDiscardsPending(t *testing.T) {
	ctx := context.Background()
	engine := newEngine(t, sqliteConfig(filepath.Join(t.TempDir(), "hbnb.db")))

	kept := model.NewAmenity("Wifi")
	require.NoError(t, engine.New(ctx, kept))
	require.NoError(t, engine.Save(ctx))

	dropped := model.NewAmenity("Sauna")
	require.NoError(t, engine.New(ctx, dropped))
	count, err := engine.Count(ctx, model.KindAmenity)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, engine.RollbackSession(ctx))
	count, err = engine.Count(ctx, model.KindAmenity)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestService_NewBaseModelFailsAtSave(t *testing.T) {
	ctx := context.Background()
	engine := newEngine(t, sqliteConfig(filepath.Join(t.TempDir(), "hbnb.db")))

	require.NoError(t, engine.New(ctx, model.NewBaseModel()))
	err := engine.Save(ctx)
	assert.ErrorIs(t, err, storage.ErrUnknownKind)
	assert.ErrorIs(t, err, storage.ErrSessionFailed)
	require.NoError(t, engine.RollbackSession(ctx))
	require.NoError(t, engine.Save(ctx))
}

func TestService_CascadeDelete(t *testing.T) {
	ctx := context.Background()
	engine := newEngine(t, sqliteConfig(filepath.Join(t.TempDir(), "hbnb.db")))
	fixture := storagetest.NewFixture()
	fixture.Persist(t, ctx, engine)

	require.NoError(t, engine.Delete(ctx, fixture.State))
	require.NoError(t, engine.Close(ctx))
	for _, kind := range []model.Kind{model.KindState, model.KindCity, model.KindPlace, model.KindReview} {
		count, err := engine.Count(ctx, kind)
		require.NoError(t, err)
		assert.Equal(t, 0, count, kind)
	}
	count, err := engine.Count(ctx, model.KindUser)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestService_PlaceAmenities(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "hbnb.db")
	engine := newEngine(t, sqliteConfig(path))
	fixture := storagetest.NewFixture()
	pool := model.NewAmenity("Pool")
	fixture.Place.AddAmenity(pool.ID)
	require.NoError(t, engine.New(ctx, pool))
	fixture.Persist(t, ctx, engine)

	other := newEngine(t, sqliteConfig(path))
	actual, err := other.Get(ctx, model.KindPlace, fixture.Place.ID)
	require.NoError(t, err)
	require.NotNil(t, actual)
	assert.ElementsMatch(t, fixture.Place.AmenityIDs, actual.(*model.Place).AmenityIDs)

	require.NoError(t, engine.Delete(ctx, pool))
	require.NoError(t, other.Reload(ctx))
	actual, err = other.Get(ctx, model.KindPlace, fixture.Place.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{fixture.Amenity.ID}, actual.(*model.Place).AmenityIDs)
}

func TestService_IdentityMap(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "hbnb.db")
	writer := newEngine(t, sqliteConfig(path))
	user := model.NewUser("carol@example.com", "pwd")
	require.NoError(t, writer.New(ctx, user))
	require.NoError(t, writer.Save(ctx))

	engine := newEngine(t, sqliteConfig(path))
	first, err := engine.Get(ctx, model.KindUser, user.ID)
	require.NoError(t, err)
	second, err := engine.Get(ctx, model.KindUser, user.ID)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.NotSame(t, user, first)

	require.NoError(t, engine.Close(ctx))
	third, err := engine.Get(ctx, model.KindUser, user.ID)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
}

func TestService_TestEnvDropsSchema(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "hbnb.db")
	engine := newEngine(t, sqliteConfig(path))
	require.NoError(t, engine.New(ctx, model.NewState("Iowa")))
	require.NoError(t, engine.Save(ctx))
	require.NoError(t, engine.Close(ctx))

	kept := newEngine(t, sqliteConfig(path))
	count, err := kept.Count(ctx, model.KindState)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.NoError(t, kept.Close(ctx))

	config := sqliteConfig(path)
	config.Env = TestEnv
	reset := newEngine(t, config)
	count, err = reset.Count(ctx, model.KindState)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestNew_Errors(t *testing.T) {
	ctx := context.Background()
	testCases := []struct {
		name   string
		config *Config
	}{
		{name: "nil config", config: nil},
		{name: "unsupported driver", config: &Config{Driver: "oracle"}},
		{name: "missing sqlite path", config: &Config{Driver: SQLite}},
		{name: "missing mysql database", config: &Config{Driver: MySQL}},
		{name: "unreachable directory", config: sqliteConfig(filepath.Join(t.TempDir(), "missing", "dir", "hbnb.db"))},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			engine, err := New(ctx, tc.config)
			assert.Error(t, err)
			assert.Nil(t, engine)
		})
	}
}

func TestService_Spans(t *testing.T) {
	ctx := context.Background()
	exporter := tracetest.NewInMemoryExporter()
	require.NoError(t, tracing.InitWithExporter("objstore", "test", exporter))

	engine := newEngine(t, sqliteConfig(filepath.Join(t.TempDir(), "hbnb.db")))
	state := model.NewState("Texas")
	require.NoError(t, engine.New(ctx, state))
	require.NoError(t, engine.Save(ctx))
	requestCtx, request := tracing.StartSpan(ctx, "request", "INTERNAL")
	require.NoError(t, engine.Delete(requestCtx, state))
	tracing.EndSpan(request, nil)

	spans := map[string][]map[string]string{}
	for _, stub := range exporter.GetSpans() {
		attributes := map[string]string{}
		for _, kv := range stub.Attributes {
			attributes[string(kv.Key)] = kv.Value.Emit()
		}
		spans[stub.Name] = append(spans[stub.Name], attributes)
	}
	require.Len(t, spans["db.reload"], 1)
	assert.Equal(t, SQLite, spans["db.reload"][0]["driver"])
	require.Len(t, spans["db.save"], 2)
	assert.Equal(t, "1", spans["db.save"][0]["pending"])
	require.Len(t, spans["request"], 1)
	assert.Equal(t, model.KeyOf(state), spans["request"][0]["deleted"])
}
