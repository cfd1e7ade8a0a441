package filmusecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmorate/internal/filmorate/adapters/memory"
	"filmorate/internal/filmorate/app"
	"filmorate/internal/filmorate/domain/entities"
	"filmorate/pkg/logger"
)

// fakeCache - кэш в памяти для проверки записи и инвалидации.
type fakeCache struct {
	mu      sync.Mutex
	values  map[string]string
	deletes int
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]string)}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[key], nil
}

func (c *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	c.deletes++
	return nil
}

func (c *fakeCache) Close() error { return nil }

func testContext(t *testing.T) context.Context {
	t.Helper()
	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), testLogger)
}

func validFilm(name string) *entities.Film {
	return &entities.Film{
		Name:        name,
		Description: "adipisicing",
		ReleaseDate: entities.NewDate(1967, time.March, 25),
		Duration:    100,
		Mpa:         entities.Mpa{ID: 1},
	}
}

type fixture struct {
	films *app.FilmUseCase
	users *app.UserUseCase
	cache *fakeCache
}

func setup(t *testing.T) fixture {
	t.Helper()
	userRepo := memory.NewUserStorage()
	c := newFakeCache()
	films := app.NewFilmUseCase(
		memory.NewFilmStorage(), userRepo,
		memory.NewGenreStorage(), memory.NewMpaStorage(),
		c, app.DefaultPopularCount,
	)
	return fixture{
		films: films,
		users: app.NewUserUseCase(userRepo, false),
		cache: c,
	}
}

func createUser(t *testing.T, ctx context.Context, uc *app.UserUseCase, login string) *entities.User {
	t.Helper()
	created, err := uc.CreateUser(ctx, &entities.User{
		Email:    login + "@example.com",
		Login:    login,
		Birthday: entities.NewDate(1990, time.March, 25),
	})
	require.NoError(t, err)
	return created
}

func TestFilmUseCase_CreateFilm(t *testing.T) {
	ctx := testContext(t)

	t.Run("reference names are resolved from the catalogs", func(t *testing.T) {
		f := setup(t)

		film := validFilm("nisi eiusmod")
		film.Genres = []entities.Genre{{ID: 2}, {ID: 1}, {ID: 2}}

		created, err := f.films.CreateFilm(ctx, film)

		require.NoError(t, err)
		assert.Equal(t, "G", created.Mpa.Name)
		require.Len(t, created.Genres, 2)
		assert.Equal(t, "Комедия", created.Genres[0].Name)
		assert.Equal(t, "Драма", created.Genres[1].Name)
	})

	t.Run("unknown mpa id is not found", func(t *testing.T) {
		f := setup(t)

		film := validFilm("nisi eiusmod")
		film.Mpa.ID = 42

		_, err := f.films.CreateFilm(ctx, film)

		require.ErrorIs(t, err, entities.ErrNotFound)
		var notFound *entities.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, entities.KindMpa, notFound.Kind)
	})

	t.Run("unknown genre id is not found", func(t *testing.T) {
		f := setup(t)

		film := validFilm("nisi eiusmod")
		film.Genres = []entities.Genre{{ID: 42}}

		_, err := f.films.CreateFilm(ctx, film)

		require.ErrorIs(t, err, entities.ErrNotFound)
	})

	t.Run("too early release date is rejected", func(t *testing.T) {
		f := setup(t)

		film := validFilm("ancient")
		film.ReleaseDate = entities.NewDate(1895, time.December, 27)

		_, err := f.films.CreateFilm(ctx, film)

		require.ErrorIs(t, err, entities.ErrValidation)
	})
}

func TestFilmUseCase_Likes(t *testing.T) {
	ctx := testContext(t)

	t.Run("likes are idempotent per user", func(t *testing.T) {
		f := setup(t)
		user := createUser(t, ctx, f.users, "liker")

		created, err := f.films.CreateFilm(ctx, validFilm("nisi eiusmod"))
		require.NoError(t, err)

		film, err := f.films.AddLike(ctx, created.ID, user.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, film.Rate)

		film, err = f.films.AddLike(ctx, created.ID, user.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, film.Rate)
	})

	t.Run("like from a missing user fails the guard", func(t *testing.T) {
		f := setup(t)

		created, err := f.films.CreateFilm(ctx, validFilm("nisi eiusmod"))
		require.NoError(t, err)

		_, err = f.films.AddLike(ctx, created.ID, 9999)
		require.ErrorIs(t, err, entities.ErrNotFound)
	})

	t.Run("removing an absent like is a no-op", func(t *testing.T) {
		f := setup(t)
		user := createUser(t, ctx, f.users, "liker")

		created, err := f.films.CreateFilm(ctx, validFilm("nisi eiusmod"))
		require.NoError(t, err)

		film, err := f.films.RemoveLike(ctx, created.ID, user.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, film.Rate)
	})
}

func TestFilmUseCase_PopularFilms(t *testing.T) {
	ctx := testContext(t)

	t.Run("empty collection is an error", func(t *testing.T) {
		f := setup(t)

		_, err := f.films.PopularFilms(ctx, 10)

		require.ErrorIs(t, err, entities.ErrEmptyFilmCollection)
	})

	t.Run("ordered by likes then by id", func(t *testing.T) {
		f := setup(t)
		alice := createUser(t, ctx, f.users, "alice")
		bob := createUser(t, ctx, f.users, "bob")

		first, err := f.films.CreateFilm(ctx, validFilm("first"))
		require.NoError(t, err)
		second, err := f.films.CreateFilm(ctx, validFilm("second"))
		require.NoError(t, err)
		third, err := f.films.CreateFilm(ctx, validFilm("third"))
		require.NoError(t, err)

		_, err = f.films.AddLike(ctx, second.ID, alice.ID)
		require.NoError(t, err)
		_, err = f.films.AddLike(ctx, second.ID, bob.ID)
		require.NoError(t, err)
		_, err = f.films.AddLike(ctx, third.ID, alice.ID)
		require.NoError(t, err)

		popular, err := f.films.PopularFilms(ctx, 10)

		require.NoError(t, err)
		require.Len(t, popular, 3)
		assert.Equal(t, second.ID, popular[0].ID)
		assert.Equal(t, third.ID, popular[1].ID)
		assert.Equal(t, first.ID, popular[2].ID)
	})

	t.Run("count truncates the list", func(t *testing.T) {
		f := setup(t)

		for _, name := range []string{"first", "second", "third"} {
			_, err := f.films.CreateFilm(ctx, validFilm(name))
			require.NoError(t, err)
		}

		popular, err := f.films.PopularFilms(ctx, 2)

		require.NoError(t, err)
		assert.Len(t, popular, 2)
	})

	t.Run("result is cached and mutations invalidate it", func(t *testing.T) {
		f := setup(t)
		user := createUser(t, ctx, f.users, "liker")

		created, err := f.films.CreateFilm(ctx, validFilm("nisi eiusmod"))
		require.NoError(t, err)

		_, err = f.films.PopularFilms(ctx, 10)
		require.NoError(t, err)

		cached, err := f.cache.Get(ctx, app.PopularFilmsCacheKey)
		require.NoError(t, err)
		assert.NotEmpty(t, cached)

		_, err = f.films.AddLike(ctx, created.ID, user.ID)
		require.NoError(t, err)

		cached, err = f.cache.Get(ctx, app.PopularFilmsCacheKey)
		require.NoError(t, err)
		assert.Empty(t, cached)
	})
}
