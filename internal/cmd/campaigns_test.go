package cmd

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shubhamdevjs/Reddit-Masterming/internal/config"
	"github.com/shubhamdevjs/Reddit-Masterming/internal/core"
	"github.com/shubhamdevjs/Reddit-Masterming/internal/persistence/campaigns"
	"github.com/shubhamdevjs/Reddit-Masterming/internal/persistence/memory"
)

type recordingPipeline struct {
	mu      sync.Mutex
	deleted []string
	err     error
}

func (p *recordingPipeline) Create(context.Context, core.CampaignInput) (core.Campaign, error) {
	return core.Campaign{}, errors.New("not implemented")
}

func (p *recordingPipeline) Delete(_ context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.deleted = append(p.deleted, id)
	return p.err
}

func (p *recordingPipeline) Health(context.Context) error {
	return nil
}

func newRepository(t *testing.T, stored ...core.Campaign) *campaigns.Repository {
	t.Helper()

	repo := &campaigns.Repository{Logger: slog.Default(), Store: memory.NewKV()}
	require.NoError(t, repo.Init(t.Context()))
	for _, c := range stored {
		require.NoError(t, repo.Put(t.Context(), c))
	}
	return repo
}

func TestDeleteRunner(t *testing.T) {
	t.Parallel()

	t.Run("deletes the backend copy under its backend id", func(t *testing.T) {
		t.Parallel()

		repo := newRepository(t,
			core.Campaign{ID: "Acme_Inc", BackendID: "Acme_Inc_", CompanyName: "Acme Inc."},
			core.Campaign{ID: "local", CompanyName: "Demo"},
		)
		pl := &recordingPipeline{}
		var out bytes.Buffer

		r := &deleteRunner{
			Logger:    slog.Default(),
			Campaigns: repo,
			Pipeline:  pl,
			out:       &out,
			ids:       []string{"Acme_Inc", "local"},
		}
		require.NoError(t, r.Run(t.Context()))

		assert.Equal(t, []string{"Acme_Inc_"}, pl.deleted)
		assert.Contains(t, out.String(), "deleted campaign Acme_Inc\n")
		assert.Contains(t, out.String(), "deleted campaign local\n")

		list, err := repo.List(t.Context())
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("backend failure is not fatal", func(t *testing.T) {
		t.Parallel()

		repo := newRepository(t, core.Campaign{ID: "c1", BackendID: "c1"})
		pl := &recordingPipeline{err: errors.New("backend down")}

		r := &deleteRunner{Logger: slog.Default(), Campaigns: repo, Pipeline: pl, out: &bytes.Buffer{}, ids: []string{"c1"}}
		require.NoError(t, r.Run(t.Context()))
		assert.Equal(t, []string{"c1"}, pl.deleted)
	})

	t.Run("unknown campaign", func(t *testing.T) {
		t.Parallel()

		pl := &recordingPipeline{}
		r := &deleteRunner{Logger: slog.Default(), Campaigns: newRepository(t), Pipeline: pl, out: &bytes.Buffer{}, ids: []string{"nope"}}

		require.ErrorIs(t, r.Run(t.Context()), campaigns.ErrNotFound)
		assert.Empty(t, pl.deleted)
	})
}

func TestWarnEphemeral(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		store string
		warns bool
	}{
		{config.StoreMemory, true},
		{config.StoreNATS, false},
		{config.StorePostgres, false},
	} {
		t.Run(tc.store, func(t *testing.T) {
			t.Parallel()

			var logs bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&logs, nil))

			assert.Equal(t, tc.warns, warnEphemeral(logger, &config.Config{Store: tc.store}))
			if tc.warns {
				assert.Contains(t, logs.String(), "level=WARN")
				assert.Contains(t, logs.String(), "in-memory store")
			} else {
				assert.Empty(t, logs.String())
			}
		})
	}
}

func TestDemoRunnerWarnsOnMemoryStore(t *testing.T) {
	t.Parallel()

	var logs, out bytes.Buffer
	repo := newRepository(t)

	r := &demoRunner{
		Logger:    slog.New(slog.NewTextHandler(&logs, nil)),
		Config:    &config.Config{Store: config.StoreMemory},
		Campaigns: repo,
		out:       &out,
	}
	require.NoError(t, r.Run(t.Context()))

	assert.Contains(t, logs.String(), "in-memory store")
	assert.Contains(t, out.String(), "created demo campaign")

	list, err := repo.List(t.Context())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
