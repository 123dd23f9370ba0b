// Package storagetest provides the behavioural test suite every
// storage.Engine implementation must pass.
package storagetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/objstore/model"
	"github.com/viant/objstore/service/storage"
)

// Factory returns a reloaded engine over an empty backing store. Engines
// returned by successive calls within one test share that store.
type Factory func(t *testing.T) storage.Engine

// Fixture is a consistent graph holding one entity of each concrete kind.
type Fixture struct {
	State   *model.State
	City    *model.City
	User    *model.User
	Amenity *model.Amenity
	Place   *model.Place
	Review  *model.Review
}

// NewFixture creates a fresh fixture graph.
func NewFixture() *Fixture {
	state := model.NewState("California")
	city := model.NewCity(state.ID, "San Francisco")
	user := model.NewUser("alice@example.com", "secret")
	user.FirstName = "Alice"
	user.LastName = "Doe"
	amenity := model.NewAmenity("Wifi")
	place := model.NewPlace(city.ID, user.ID, "Loft")
	place.Description = "sunny loft"
	place.NumberRooms = 2
	place.NumberBathrooms = 1
	place.MaxGuest = 3
	place.PriceByNight = 150
	place.Latitude = 37.7749
	place.Longitude = -122.4194
	place.AddAmenity(amenity.ID)
	review := model.NewReview(place.ID, user.ID, "lovely")
	return &Fixture{State: state, City: city, User: user, Amenity: amenity, Place: place, Review: review}
}

// Entities returns the fixture entities in dependency order.
func (f *Fixture) Entities() []model.Entity {
	return []model.Entity{f.State, f.City, f.User, f.Amenity, f.Place, f.Review}
}

// Persist tracks and saves every fixture entity.
func (f *Fixture) Persist(t *testing.T, ctx context.Context, engine storage.Engine) {
	for _, entity := range f.Entities() {
		require.NoError(t, engine.New(ctx, entity))
	}
	require.NoError(t, engine.Save(ctx))
}

// AssertSameAttributes compares the serialized attributes of two entities.
func AssertSameAttributes(t *testing.T, expected, actual model.Entity) {
	t.Helper()
	require.NotNil(t, actual, "missing %s", model.KeyOf(expected))
	expectedAttributes, err := model.Attributes(expected)
	require.NoError(t, err)
	actualAttributes, err := model.Attributes(actual)
	require.NoError(t, err)
	assert.EqualValues(t, expectedAttributes, actualAttributes)
}

// Run executes the engine contract tests.
func Run(t *testing.T, factory Factory) {
	ctx := context.Background()

	t.Run("persistence round trip", func(t *testing.T) {
		engine := factory(t)
		fixture := NewFixture()
		fixture.Persist(t, ctx, engine)
		require.NoError(t, engine.Close(ctx))
		require.NoError(t, engine.Reload(ctx))

		for _, expected := range fixture.Entities() {
			actual, err := engine.Get(ctx, expected.Kind(), expected.Identity())
			require.NoError(t, err)
			AssertSameAttributes(t, expected, actual)
		}

		other := factory(t)
		actual, err := other.Get(ctx, model.KindPlace, fixture.Place.ID)
		require.NoError(t, err)
		AssertSameAttributes(t, fixture.Place, actual)
	})

	t.Run("count matches all", func(t *testing.T) {
		engine := factory(t)
		NewFixture().Persist(t, ctx, engine)
		require.NoError(t, engine.New(ctx, model.NewState("Nevada")))

		for _, kind := range append(model.Kinds(), "") {
			all, err := engine.All(ctx, kind)
			require.NoError(t, err)
			count, err := engine.Count(ctx, kind)
			require.NoError(t, err)
			assert.Equal(t, len(all), count, kind)
		}
		states, err := engine.Count(ctx, model.KindState)
		require.NoError(t, err)
		assert.Equal(t, 2, states)
		total, err := engine.Count(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, 7, total)
	})

	t.Run("count of empty kind", func(t *testing.T) {
		engine := factory(t)
		for _, kind := range model.Kinds() {
			count, err := engine.Count(ctx, kind)
			require.NoError(t, err)
			assert.Equal(t, 0, count, kind)
			all, err := engine.All(ctx, kind)
			require.NoError(t, err)
			assert.NotNil(t, all)
			assert.Empty(t, all)
		}
	})

	t.Run("delete is durable", func(t *testing.T) {
		engine := factory(t)
		fixture := NewFixture()
		fixture.Persist(t, ctx, engine)

		require.NoError(t, engine.Delete(ctx, fixture.Review))
		actual, err := engine.Get(ctx, model.KindReview, fixture.Review.ID)
		require.NoError(t, err)
		assert.Nil(t, actual)

		require.NoError(t, engine.Reload(ctx))
		actual, err = engine.Get(ctx, model.KindReview, fixture.Review.ID)
		require.NoError(t, err)
		assert.Nil(t, actual)
		count, err := engine.Count(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, 5, count)
	})

	t.Run("delete nil and untracked are no-ops", func(t *testing.T) {
		engine := factory(t)
		fixture := NewFixture()
		fixture.Persist(t, ctx, engine)

		require.NoError(t, engine.Delete(ctx, nil))
		require.NoError(t, engine.Delete(ctx, model.NewState("Oregon")))

		count, err := engine.Count(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, 6, count)
		actual, err := engine.Get(ctx, model.KindState, fixture.State.ID)
		require.NoError(t, err)
		AssertSameAttributes(t, fixture.State, actual)
	})

	t.Run("delete all is durable", func(t *testing.T) {
		engine := factory(t)
		NewFixture().Persist(t, ctx, engine)
		require.NoError(t, engine.DeleteAll(ctx))

		assertEmpty(t, ctx, engine)
		require.NoError(t, engine.Reload(ctx))
		assertEmpty(t, ctx, engine)
		assertEmpty(t, ctx, factory(t))
	})

	t.Run("get misses", func(t *testing.T) {
		engine := factory(t)
		fixture := NewFixture()
		fixture.Persist(t, ctx, engine)

		testCases := []struct {
			name string
			kind model.Kind
			id   string
		}{
			{name: "empty kind", kind: "", id: fixture.User.ID},
			{name: "empty id", kind: model.KindUser, id: ""},
			{name: "unknown id", kind: model.KindUser, id: "missing"},
			{name: "unknown kind", kind: "Spaceship", id: fixture.User.ID},
			{name: "other kind", kind: model.KindState, id: fixture.User.ID},
		}
		for _, tc := range testCases {
			actual, err := engine.Get(ctx, tc.kind, tc.id)
			assert.NoError(t, err, tc.name)
			assert.Nil(t, actual, tc.name)
		}
	})

	t.Run("close discards unsaved", func(t *testing.T) {
		engine := factory(t)
		state := model.NewState("Texas")
		require.NoError(t, engine.New(ctx, state))
		require.NoError(t, engine.Close(ctx))
		require.NoError(t, engine.Reload(ctx))

		actual, err := engine.Get(ctx, model.KindState, state.ID)
		require.NoError(t, err)
		assert.Nil(t, actual)
	})

	t.Run("update in place", func(t *testing.T) {
		engine := factory(t)
		user := model.NewUser("bob@example.com", "pwd")
		require.NoError(t, engine.New(ctx, user))
		require.NoError(t, engine.Save(ctx))

		user.FirstName = "Bob"
		user.Touch()
		require.NoError(t, engine.New(ctx, user))
		require.NoError(t, engine.Save(ctx))
		require.NoError(t, engine.Close(ctx))
		require.NoError(t, engine.Reload(ctx))

		actual, err := engine.Get(ctx, model.KindUser, user.ID)
		require.NoError(t, err)
		AssertSameAttributes(t, user, actual)
		count, err := engine.Count(ctx, model.KindUser)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("user scenario", func(t *testing.T) {
		engine := factory(t)
		user := model.NewUser("alice@example.com", "pwd")
		user.ID = "u1"
		user.FirstName = "Alice"
		require.NoError(t, engine.New(ctx, user))
		require.NoError(t, engine.Save(ctx))

		users, err := engine.All(ctx, model.KindUser)
		require.NoError(t, err)
		require.Len(t, users, 1)
		require.Contains(t, users, "User.u1")
		AssertSameAttributes(t, user, users["User.u1"])

		actual, err := engine.Get(ctx, model.KindUser, "u1")
		require.NoError(t, err)
		AssertSameAttributes(t, user, actual)

		require.NoError(t, engine.Delete(ctx, users["User.u1"]))
		users, err = engine.All(ctx, model.KindUser)
		require.NoError(t, err)
		assert.Empty(t, users)
	})
}

func assertEmpty(t *testing.T, ctx context.Context, engine storage.Engine) {
	t.Helper()
	for _, kind := range append(model.Kinds(), "") {
		count, err := engine.Count(ctx, kind)
		require.NoError(t, err)
		assert.Equal(t, 0, count, kind)
	}
}
