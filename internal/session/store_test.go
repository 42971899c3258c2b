package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	store := NewMemoryStore()

	sess, err := store.Create(1, "editor", "token-1", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)
	assert.Equal(t, uint(1), sess.UserID)
	assert.Equal(t, "editor", sess.Role)

	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, "token-1", got.Token)

	require.NoError(t, store.Destroy(sess.ID))
	_, err = store.Get(sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Destroying a missing session is not an error
	assert.NoError(t, store.Destroy("missing"))
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()

	sess, err := store.Create(1, "viewer", "t", -time.Minute)
	require.NoError(t, err)

	_, err = store.Get(sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.DestroyExpired())
	_, err = store.Get(sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreTouch(t *testing.T) {
	store := NewMemoryStore()

	sess, err := store.Create(1, "viewer", "t", time.Minute)
	require.NoError(t, err)

	require.NoError(t, store.Touch(sess.ID, time.Hour))
	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.True(t, got.ExpiresAt.After(sess.ExpiresAt))

	// Touching a missing session is a no-op
	assert.NoError(t, store.Touch("missing", time.Hour))
}

func TestMemoryStoreDestroyForUser(t *testing.T) {
	store := NewMemoryStore()

	a, err := store.Create(1, "viewer", "t1", time.Hour)
	require.NoError(t, err)
	b, err := store.Create(1, "viewer", "t2", time.Hour)
	require.NoError(t, err)
	c, err := store.Create(2, "admin", "t3", time.Hour)
	require.NoError(t, err)

	require.NoError(t, store.DestroyForUser(1))

	_, err = store.Get(a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Get(b.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Get(c.ID)
	assert.NoError(t, err)
}
