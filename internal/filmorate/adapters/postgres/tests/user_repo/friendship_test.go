package userrepo_test

import (
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmorate/internal/filmorate/adapters/postgres"
	"filmorate/internal/filmorate/domain/entities"
)

func TestUserRepository_ExistsByID(t *testing.T) {
	ctx := testContext(t)

	t.Run("user exists", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int64(1)).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

		repo := postgres.NewUserRepository(mock)

		require.NoError(t, repo.ExistsByID(ctx, 1))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("user is missing", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int64(99)).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

		repo := postgres.NewUserRepository(mock)

		err = repo.ExistsByID(ctx, 99)
		require.ErrorIs(t, err, entities.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_AddFriend(t *testing.T) {
	ctx := testContext(t)

	t.Run("edge inserted", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("INSERT INTO friendship_user_to_user_link").
			WithArgs(int64(1), int64(2)).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		repo := postgres.NewUserRepository(mock)

		require.NoError(t, repo.AddFriend(ctx, 1, 2))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate edge is a no-op", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("INSERT INTO friendship_user_to_user_link").
			WithArgs(int64(1), int64(2)).
			WillReturnResult(pgxmock.NewResult("INSERT", 0))

		repo := postgres.NewUserRepository(mock)

		require.NoError(t, repo.AddFriend(ctx, 1, 2))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_FindFriends(t *testing.T) {
	ctx := testContext(t)

	t.Run("friends listed in id order", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		birthday := time.Date(1990, time.March, 25, 0, 0, 0, 0, time.UTC)
		rows := pgxmock.NewRows([]string{"user_id", "email", "login", "name", "birthday"}).
			AddRow(int64(2), "second@example.com", "second", "second", &birthday).
			AddRow(int64(3), "third@example.com", "third", "third", &birthday)

		mock.ExpectQuery("SELECT u.user_id, u.email, u.login, u.name, u.birthday").
			WithArgs(int64(1)).
			WillReturnRows(rows)

		repo := postgres.NewUserRepository(mock)

		friends, err := repo.FindFriends(ctx, 1)

		require.NoError(t, err)
		require.Len(t, friends, 2)
		assert.Equal(t, int64(2), friends[0].ID)
		assert.Equal(t, int64(3), friends[1].ID)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no friends yields empty list", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT u.user_id, u.email, u.login, u.name, u.birthday").
			WithArgs(int64(1)).
			WillReturnRows(pgxmock.NewRows([]string{"user_id", "email", "login", "name", "birthday"}))

		repo := postgres.NewUserRepository(mock)

		friends, err := repo.FindFriends(ctx, 1)

		require.NoError(t, err)
		assert.Empty(t, friends)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}
