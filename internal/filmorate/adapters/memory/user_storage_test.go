package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmorate/internal/filmorate/adapters/memory"
	"filmorate/internal/filmorate/domain/entities"
	"filmorate/internal/filmorate/ports/repositories"
)

func newUser(login string) *entities.User {
	return &entities.User{
		Email:    login + "@example.com",
		Login:    login,
		Name:     login,
		Birthday: entities.NewDate(1990, time.January, 1),
	}
}

func mustCreateUser(t *testing.T, repo repositories.UserRepository, login string) *entities.User {
	t.Helper()
	created, err := repo.Create(context.Background(), newUser(login))
	require.NoError(t, err)
	return created
}

func TestUserStorage_CreateAssignsUniqueIDs(t *testing.T) {
	repo := memory.NewUserStorage()

	seen := make(map[int64]struct{})
	for _, login := range []string{"alice", "bob", "carol", "dave"} {
		created := mustCreateUser(t, repo, login)
		require.Positive(t, created.ID)
		_, dup := seen[created.ID]
		require.False(t, dup, "id %d assigned twice", created.ID)
		seen[created.ID] = struct{}{}
	}
}

func TestUserStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserStorage()

	created := mustCreateUser(t, repo, "alice")

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, found)

	updated := newUser("alice")
	updated.ID = created.ID
	updated.Name = "Alice Liddell"
	_, err = repo.Update(ctx, updated)
	require.NoError(t, err)

	found, err = repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Liddell", found.Name)
}

func TestUserStorage_UpdateMissingUser(t *testing.T) {
	repo := memory.NewUserStorage()

	ghost := newUser("ghost")
	ghost.ID = 9999
	_, err := repo.Update(context.Background(), ghost)
	require.ErrorIs(t, err, entities.ErrNotFound)
}

func TestUserStorage_FindAllEmpty(t *testing.T) {
	repo := memory.NewUserStorage()

	users, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestUserStorage_FindByEmailOrLogin(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserStorage()
	mustCreateUser(t, repo, "alice")

	t.Run("match by email", func(t *testing.T) {
		found, err := repo.FindByEmailOrLogin(ctx, "alice@example.com", "other")
		require.NoError(t, err)
		require.NotNil(t, found)
	})

	t.Run("match by login", func(t *testing.T) {
		found, err := repo.FindByEmailOrLogin(ctx, "other@example.com", "alice")
		require.NoError(t, err)
		require.NotNil(t, found)
	})

	t.Run("no match", func(t *testing.T) {
		found, err := repo.FindByEmailOrLogin(ctx, "bob@example.com", "bob")
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestUserStorage_FriendshipIsDirected(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserStorage()
	alice := mustCreateUser(t, repo, "alice")
	bob := mustCreateUser(t, repo, "bob")

	require.NoError(t, repo.AddFriend(ctx, alice.ID, bob.ID))

	aliceFriends, err := repo.FindFriends(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, aliceFriends, 1)
	assert.Equal(t, bob.ID, aliceFriends[0].ID)

	bobFriends, err := repo.FindFriends(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, bobFriends)
}

func TestUserStorage_AddFriendIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserStorage()
	alice := mustCreateUser(t, repo, "alice")
	bob := mustCreateUser(t, repo, "bob")

	require.NoError(t, repo.AddFriend(ctx, alice.ID, bob.ID))
	require.NoError(t, repo.AddFriend(ctx, alice.ID, bob.ID))

	friends, err := repo.FindFriends(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, friends, 1)
}

func TestUserStorage_RemoveFriend(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserStorage()
	alice := mustCreateUser(t, repo, "alice")
	bob := mustCreateUser(t, repo, "bob")

	require.NoError(t, repo.AddFriend(ctx, alice.ID, bob.ID))
	require.NoError(t, repo.RemoveFriend(ctx, alice.ID, bob.ID))

	friends, err := repo.FindFriends(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, friends)

	// Removing an edge that is already gone is a no-op.
	require.NoError(t, repo.RemoveFriend(ctx, alice.ID, bob.ID))
}

func TestUserStorage_CommonFriends(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserStorage()
	u1 := mustCreateUser(t, repo, "alice")
	u2 := mustCreateUser(t, repo, "bob")
	u3 := mustCreateUser(t, repo, "carol")

	edges := [][2]int64{
		{u1.ID, u2.ID}, {u1.ID, u3.ID},
		{u2.ID, u1.ID}, {u2.ID, u3.ID},
		{u3.ID, u2.ID}, {u3.ID, u1.ID},
	}
	for _, e := range edges {
		require.NoError(t, repo.AddFriend(ctx, e[0], e[1]))
	}

	common, err := repo.FindCommonFriends(ctx, u1.ID, u2.ID)
	require.NoError(t, err)
	require.Len(t, common, 1)
	assert.Equal(t, u3.ID, common[0].ID)
}

func TestUserStorage_CommonFriendsEmptyIntersection(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserStorage()
	u1 := mustCreateUser(t, repo, "alice")
	u2 := mustCreateUser(t, repo, "bob")

	common, err := repo.FindCommonFriends(ctx, u1.ID, u2.ID)
	require.NoError(t, err)
	assert.Empty(t, common)
}

func TestUserStorage_ExistsByID(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserStorage()
	alice := mustCreateUser(t, repo, "alice")

	require.NoError(t, repo.ExistsByID(ctx, alice.ID))
	require.ErrorIs(t, repo.ExistsByID(ctx, 9999), entities.ErrNotFound)
}
