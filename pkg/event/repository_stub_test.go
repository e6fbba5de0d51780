package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryStub(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns sequential ids and keeps insertion order", func(t *testing.T) {
		repo := NewRepositoryStub(meeting("seeded"))

		created, err := repo.Create(ctx, meeting("new"))
		require.NoError(t, err)
		assert.Equal(t, "2", created.ID)

		events, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, "seeded", events[0].Title)
		assert.Equal(t, "new", events[1].Title)
	})

	t.Run("skips ids taken by seeded events", func(t *testing.T) {
		first := meeting("first")
		first.ID = "2"
		custom := meeting("custom")
		custom.ID = "abc"
		repo := NewRepositoryStub(first, custom, meeting("unnamed"))

		created, err := repo.Create(ctx, meeting("new"))
		require.NoError(t, err)

		events, err := repo.List(ctx)
		require.NoError(t, err)
		seen := make(map[string]bool)
		for _, e := range events {
			assert.False(t, seen[e.ID], "duplicate id %s", e.ID)
			seen[e.ID] = true
		}
		assert.Len(t, seen, 4)
		assert.NotEqual(t, "2", created.ID)
	})

	t.Run("list returns a copy", func(t *testing.T) {
		repo := NewRepositoryStub(meeting("seeded"))
		events, _ := repo.List(ctx)
		events[0].Title = "mutated"

		again, _ := repo.List(ctx)
		assert.Equal(t, "seeded", again[0].Title)
	})

	t.Run("update and delete report missing ids", func(t *testing.T) {
		repo := NewRepositoryStub()
		_, err := repo.Update(ctx, "1", meeting("x"))
		assert.ErrorIs(t, err, ErrEventNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, "1"), ErrEventNotFound)
	})

	t.Run("list error can be injected", func(t *testing.T) {
		repo := NewRepositoryStub()
		boom := errors.New("network down")
		repo.SetListError(boom)
		_, err := repo.List(ctx)
		assert.ErrorIs(t, err, boom)

		repo.Reset()
		_, err = repo.List(ctx)
		assert.NoError(t, err)
	})
}
