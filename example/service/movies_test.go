package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/conduit"
	"github.com/dmitrymomot/conduit/example/service"
	"github.com/dmitrymomot/conduit/pkg/store"
)

func names(movies []service.Movie) []string {
	out := make([]string, 0, len(movies))
	for _, m := range movies {
		out = append(out, m.Name)
	}
	return out
}

func TestMovies(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("list is sorted ignoring leading articles", func(t *testing.T) {
		t.Parallel()
		movies := service.NewMovies(store.NewMemory[[]service.Movie](nil))

		for _, name := range []string{"The Thing", "Aliens", "A Quiet Place", "alien"} {
			_, err := movies.Create(ctx, "u1", name)
			require.NoError(t, err)
		}

		list, err := movies.List(ctx, "u1")
		require.NoError(t, err)
		require.Equal(t, []string{"alien", "Aliens", "A Quiet Place", "The Thing"}, names(list))
	})

	t.Run("lists are per user", func(t *testing.T) {
		t.Parallel()
		movies := service.NewMovies(store.NewMemory[[]service.Movie](nil))

		_, err := movies.Create(ctx, "u1", "Heat")
		require.NoError(t, err)

		list, err := movies.List(ctx, "u2")
		require.NoError(t, err)
		require.NotNil(t, list)
		require.Empty(t, list)
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()
		movies := service.NewMovies(store.NewMemory[[]service.Movie](nil))

		_, err := movies.Create(ctx, "u1", " ")
		require.ErrorIs(t, err, conduit.ErrInvalidArgument)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()
		movies := service.NewMovies(store.NewMemory[[]service.Movie](nil))

		id, err := movies.Create(ctx, "u1", "Heat")
		require.NoError(t, err)
		_, err = movies.Create(ctx, "u1", "Ronin")
		require.NoError(t, err)

		require.NoError(t, movies.Delete(ctx, "u1", id))
		list, err := movies.List(ctx, "u1")
		require.NoError(t, err)
		require.Equal(t, []string{"Ronin"}, names(list))

		require.ErrorIs(t, movies.Delete(ctx, "u1", id), conduit.ErrNotFound)
		require.ErrorIs(t, movies.Delete(ctx, "u2", id), conduit.ErrNotFound)
	})
}
