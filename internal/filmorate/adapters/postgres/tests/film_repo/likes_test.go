package filmrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmorate/internal/filmorate/adapters/postgres"
	"filmorate/internal/filmorate/domain/entities"
	"filmorate/pkg/logger"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), testLogger)
}

func TestFilmRepository_AddLike(t *testing.T) {
	ctx := testContext(t)

	t.Run("like inserted", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("INSERT INTO likes_films_users_link").
			WithArgs(int64(1), int64(2)).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		repo := postgres.NewFilmRepository(mock)

		require.NoError(t, repo.AddLike(ctx, 1, 2))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("repeated like is a no-op", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("INSERT INTO likes_films_users_link").
			WithArgs(int64(1), int64(2)).
			WillReturnResult(pgxmock.NewResult("INSERT", 0))

		repo := postgres.NewFilmRepository(mock)

		require.NoError(t, repo.AddLike(ctx, 1, 2))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFilmRepository_RemoveLike(t *testing.T) {
	ctx := testContext(t)

	t.Run("like removed", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("DELETE FROM likes_films_users_link").
			WithArgs(int64(1), int64(2)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		repo := postgres.NewFilmRepository(mock)

		require.NoError(t, repo.RemoveLike(ctx, 1, 2))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent like is a no-op", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("DELETE FROM likes_films_users_link").
			WithArgs(int64(1), int64(2)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		repo := postgres.NewFilmRepository(mock)

		require.NoError(t, repo.RemoveLike(ctx, 1, 2))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFilmRepository_ExistsByID(t *testing.T) {
	ctx := testContext(t)

	t.Run("film exists", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int64(1)).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

		repo := postgres.NewFilmRepository(mock)

		require.NoError(t, repo.ExistsByID(ctx, 1))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("film is missing", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int64(99)).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

		repo := postgres.NewFilmRepository(mock)

		err = repo.ExistsByID(ctx, 99)
		require.ErrorIs(t, err, entities.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFilmRepository_FindByID(t *testing.T) {
	ctx := testContext(t)

	t.Run("the film was not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT f.film_id, f.name, f.description").
			WithArgs(int64(42)).
			WillReturnError(pgx.ErrNoRows)

		repo := postgres.NewFilmRepository(mock)

		film, err := repo.FindByID(ctx, 42)

		require.Nil(t, film)
		require.ErrorIs(t, err, entities.ErrNotFound)

		var notFound *entities.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, entities.KindFilm, notFound.Kind)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("film with genres and like count", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		release := time.Date(1967, time.March, 25, 0, 0, 0, 0, time.UTC)
		filmRows := pgxmock.NewRows([]string{
			"film_id", "name", "description", "release_date", "duration",
			"mpa_rating_id", "mpa_name", "rate",
		}).AddRow(int64(1), "nisi eiusmod", "adipisicing", release, 100, int64(1), "G", 3)

		mock.ExpectQuery("SELECT f.film_id, f.name, f.description").
			WithArgs(int64(1)).
			WillReturnRows(filmRows)

		genreRows := pgxmock.NewRows([]string{"genre_id", "name"}).
			AddRow(int64(1), "Комедия").
			AddRow(int64(2), "Драма")

		mock.ExpectQuery("SELECT g.genre_id, g.name").
			WithArgs(int64(1)).
			WillReturnRows(genreRows)

		repo := postgres.NewFilmRepository(mock)

		film, err := repo.FindByID(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, int64(1), film.ID)
		assert.Equal(t, "G", film.Mpa.Name)
		assert.Equal(t, 3, film.Rate)
		require.Len(t, film.Genres, 2)
		assert.Equal(t, "Комедия", film.Genres[0].Name)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}
