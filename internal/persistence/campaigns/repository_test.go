package campaigns_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shubhamdevjs/Reddit-Masterming/internal/core"
	"github.com/shubhamdevjs/Reddit-Masterming/internal/persistence/campaigns"
	"github.com/shubhamdevjs/Reddit-Masterming/internal/persistence/memory"
)

func newRepository(t *testing.T) (*campaigns.Repository, *memory.KV) {
	t.Helper()

	kv := memory.NewKV()
	repo := &campaigns.Repository{Logger: slog.Default(), Store: kv}
	require.NoError(t, repo.Init(t.Context()))
	return repo, kv
}

func TestRepository(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("put and get", func(t *testing.T) {
		t.Parallel()

		repo, _ := newRepository(t)
		c := core.Campaign{
			ID:          "c1",
			CompanyName: "Acme",
			CreatedAt:   base,
			Posts: []core.Post{{
				ID:       "p1",
				Comments: []core.Comment{{ID: "k1", ParentID: ""}},
			}},
		}

		require.NoError(t, repo.Put(t.Context(), c))

		got, err := repo.Get(t.Context(), "c1")
		require.NoError(t, err)
		require.Equal(t, c, got)
	})

	t.Run("put replaces the snapshot", func(t *testing.T) {
		t.Parallel()

		repo, _ := newRepository(t)
		require.NoError(t, repo.Put(t.Context(), core.Campaign{ID: "c1", CompanyName: "old"}))
		require.NoError(t, repo.Put(t.Context(), core.Campaign{ID: "c1", CompanyName: "new"}))

		got, err := repo.Get(t.Context(), "c1")
		require.NoError(t, err)
		require.Equal(t, "new", got.CompanyName)
	})

	t.Run("list is newest first", func(t *testing.T) {
		t.Parallel()

		repo, kv := newRepository(t)
		require.NoError(t, repo.Put(t.Context(), core.Campaign{ID: "old", CreatedAt: base}))
		require.NoError(t, repo.Put(t.Context(), core.Campaign{ID: "new", CreatedAt: base.Add(time.Hour)}))
		require.NoError(t, repo.Put(t.Context(), core.Campaign{ID: "mid", CreatedAt: base.Add(time.Minute)}))
		require.NoError(t, kv.Put(t.Context(), "campaign.broken", []byte("{")))
		require.NoError(t, kv.Put(t.Context(), "unrelated", []byte("x")))

		list, err := repo.List(t.Context())
		require.NoError(t, err)

		ids := make([]string, len(list))
		for i, c := range list {
			ids[i] = c.ID
		}
		require.Equal(t, []string{"new", "mid", "old"}, ids)
	})

	t.Run("missing campaigns", func(t *testing.T) {
		t.Parallel()

		repo, _ := newRepository(t)

		_, err := repo.Get(t.Context(), "nope")
		require.ErrorIs(t, err, campaigns.ErrNotFound)
		require.ErrorIs(t, repo.Delete(t.Context(), "nope"), campaigns.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()

		repo, _ := newRepository(t)
		require.NoError(t, repo.Put(t.Context(), core.Campaign{ID: "c1"}))
		require.NoError(t, repo.Delete(t.Context(), "c1"))

		_, err := repo.Get(t.Context(), "c1")
		require.ErrorIs(t, err, campaigns.ErrNotFound)
	})

	t.Run("invalid ids", func(t *testing.T) {
		t.Parallel()

		repo, _ := newRepository(t)

		require.ErrorIs(t, repo.Put(t.Context(), core.Campaign{}), campaigns.ErrInvalidID)
		require.ErrorIs(t, repo.Put(t.Context(), core.Campaign{ID: "a b"}), campaigns.ErrInvalidID)
		_, err := repo.Get(t.Context(), "x.y")
		require.ErrorIs(t, err, campaigns.ErrInvalidID)
	})
}
