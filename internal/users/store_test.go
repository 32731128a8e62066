package users

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/userbook/userbook/internal/database"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	db, err := database.Open(database.Options{Driver: database.DriverSQLite, DatabaseURL: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, CreateTables(context.Background(), db))
	return db
}

func TestUserStore(t *testing.T) {
	ctx := context.Background()

	t.Run("SaveThenFindAll", func(t *testing.T) {
		store := NewUserStore(newTestDB(t), Queries{})

		saved, err := store.Save(ctx, &User{FirstName: "Ann", LastName: "Lee"})
		require.NoError(t, err)
		assert.NotZero(t, saved.ID)

		all, err := store.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, User{ID: saved.ID, FirstName: "Ann", LastName: "Lee"}, all[0])
	})

	t.Run("SaveAssignsDistinctIDs", func(t *testing.T) {
		store := NewUserStore(newTestDB(t), Queries{})

		first, err := store.Save(ctx, &User{FirstName: "Ann", LastName: "Lee"})
		require.NoError(t, err)
		second, err := store.Save(ctx, &User{FirstName: "Bob", LastName: "Kay"})
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)

		all, err := store.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("FindAllEmpty", func(t *testing.T) {
		store := NewUserStore(newTestDB(t), Queries{})

		all, err := store.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("GetOneMissing", func(t *testing.T) {
		store := NewUserStore(newTestDB(t), Queries{})

		user, err := store.GetOne(ctx, 42)
		assert.Nil(t, user)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUserNotFound))

		var userErr *UserError
		require.True(t, errors.As(err, &userErr))
		assert.Equal(t, UserErrorTypeNotFound, userErr.Type)
		assert.Equal(t, int64(42), userErr.UserID)
	})

	t.Run("UpdateThenGetOne", func(t *testing.T) {
		store := NewUserStore(newTestDB(t), Queries{})

		saved, err := store.Save(ctx, &User{FirstName: "Ann", LastName: "Lee"})
		require.NoError(t, err)

		updated, err := store.Update(ctx, &User{ID: saved.ID, FirstName: "Anna", LastName: "Lea"})
		require.NoError(t, err)
		assert.Equal(t, saved.ID, updated.ID)

		got, err := store.GetOne(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, &User{ID: saved.ID, FirstName: "Anna", LastName: "Lea"}, got)
	})

	t.Run("UpdateMissingIsNoop", func(t *testing.T) {
		store := NewUserStore(newTestDB(t), Queries{})

		_, err := store.Update(ctx, &User{ID: 7, FirstName: "Nobody"})
		require.NoError(t, err)

		all, err := store.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("DeleteThenGetOne", func(t *testing.T) {
		store := NewUserStore(newTestDB(t), Queries{})

		saved, err := store.Save(ctx, &User{FirstName: "Ann", LastName: "Lee"})
		require.NoError(t, err)

		require.NoError(t, store.DeleteByID(ctx, saved.ID))

		_, err = store.GetOne(ctx, saved.ID)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("DeleteMissingIsNoop", func(t *testing.T) {
		store := NewUserStore(newTestDB(t), Queries{})

		assert.NoError(t, store.DeleteByID(ctx, 999))
	})

	t.Run("ConfiguredQueries", func(t *testing.T) {
		queries := Queries{
			FindAll: "SELECT id, firstname, lastname FROM users WHERE lastname = 'Lee' ORDER BY id DESC",
		}
		store := NewUserStore(newTestDB(t), queries)

		_, err := store.Save(ctx, &User{FirstName: "Ann", LastName: "Lee"})
		require.NoError(t, err)
		_, err = store.Save(ctx, &User{FirstName: "Bob", LastName: "Kay"})
		require.NoError(t, err)
		_, err = store.Save(ctx, &User{FirstName: "Cid", LastName: "Lee"})
		require.NoError(t, err)

		all, err := store.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "Cid", all[0].FirstName)
		assert.Equal(t, "Ann", all[1].FirstName)
	})

	t.Run("BrokenQuery", func(t *testing.T) {
		store := NewUserStore(newTestDB(t), Queries{GetOne: "SELECT id FROM missing_table WHERE id = ?"})

		_, err := store.GetOne(ctx, 1)
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrUserNotFound))

		var userErr *UserError
		assert.False(t, errors.As(err, &userErr))
		assert.Contains(t, err.Error(), "failed to get user 1")
		assert.NotNil(t, errors.Unwrap(err))
	})

	t.Run("BrokenUpdateAndDelete", func(t *testing.T) {
		store := NewUserStore(newTestDB(t), Queries{
			Update:     "UPDATE missing_table SET firstname = ?, lastname = ? WHERE id = ?",
			DeleteByID: "DELETE FROM missing_table WHERE id = ?",
		})

		_, err := store.Update(ctx, &User{ID: 3, FirstName: "Ann"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to update user 3")

		err = store.DeleteByID(ctx, 3)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to delete user 3")
	})

	t.Run("SaveWithoutReturning", func(t *testing.T) {
		store := NewUserStore(newTestDB(t), Queries{
			Save: "INSERT INTO users (firstname, lastname) VALUES (?, ?)",
		})

		saved, err := store.Save(ctx, &User{FirstName: "Ann", LastName: "Lee"})
		require.NoError(t, err)
		assert.Equal(t, &User{FirstName: "Ann", LastName: "Lee"}, saved)

		all, err := store.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.NotZero(t, all[0].ID)
		assert.Equal(t, "Ann", all[0].FirstName)
	})
}

// TestUserLifecycle walks one record through create, rename and delete
func TestUserLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore(newTestDB(t), Queries{})

	saved, err := store.Save(ctx, &User{FirstName: "Ann", LastName: "Lee"})
	require.NoError(t, err)

	all, err := store.FindAll(ctx)
	require.NoError(t, err)
	matches := 0
	for _, u := range all {
		if u.FirstName == "Ann" && u.LastName == "Lee" {
			matches++
		}
	}
	assert.Equal(t, 1, matches)

	_, err = store.Update(ctx, &User{ID: saved.ID, FirstName: "Anna", LastName: "Lee"})
	require.NoError(t, err)

	got, err := store.GetOne(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anna", got.FirstName)
	assert.Equal(t, "Lee", got.LastName)

	require.NoError(t, store.DeleteByID(ctx, saved.ID))

	all, err = store.FindAll(ctx)
	require.NoError(t, err)
	for _, u := range all {
		assert.NotEqual(t, saved.ID, u.ID)
	}
}

func TestQueriesWithDefaults(t *testing.T) {
	q := Queries{Update: "UPDATE people SET firstname = ?, lastname = ? WHERE id = ?"}.WithDefaults()

	d := DefaultQueries()
	assert.Equal(t, d.FindAll, q.FindAll)
	assert.Equal(t, d.Save, q.Save)
	assert.Equal(t, d.DeleteByID, q.DeleteByID)
	assert.Equal(t, d.GetOne, q.GetOne)
	assert.Equal(t, "UPDATE people SET firstname = ?, lastname = ? WHERE id = ?", q.Update)
}
