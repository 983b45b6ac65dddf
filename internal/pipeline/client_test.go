package pipeline_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shubhamdevjs/Reddit-Masterming/internal/config"
	"github.com/shubhamdevjs/Reddit-Masterming/internal/core"
	"github.com/shubhamdevjs/Reddit-Masterming/internal/pipeline"
)

func newClient(t *testing.T, handler http.HandlerFunc) *pipeline.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := &pipeline.Client{
		Logger: slog.Default(),
		Config: &config.Config{PipelineURL: srv.URL, PipelineTimeout: 5 * time.Second},
	}
	require.NoError(t, c.Init(t.Context()))
	t.Cleanup(func() { _ = c.Shutdown(t.Context()) })

	return c
}

func TestClientCreate(t *testing.T) {
	t.Parallel()

	input := core.CampaignInput{
		CompanyName:        "Acme",
		CompanyDescription: "Anvils",
		PostsPerWeek:       2,
		Subreddits:         []string{"r/anvils"},
		Keywords:           []core.Keyword{{ID: "K1", Keyword: "anvil"}},
		Personas:           []core.Persona{{Username: "a", Info: "x"}, {Username: "b", Info: "y"}},
	}

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		var received core.CampaignInput
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/api/campaigns/create/v2", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"campaignId": "Acme", "nestedData": {"posts": [{"post_id": "P1", "comments": []}]}}`))
		})

		campaign, err := c.Create(t.Context(), input)
		require.NoError(t, err)

		require.Equal(t, input, received)
		require.Equal(t, "Acme", campaign.ID)
		require.Equal(t, "Anvils", campaign.CompanyDescription)
		require.Len(t, campaign.Posts, 1)
		require.False(t, campaign.CreatedAt.IsZero())
	})

	t.Run("backend error detail", func(t *testing.T) {
		t.Parallel()

		c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"detail": "OPENAI_API_KEY is not set"}`))
		})

		_, err := c.Create(t.Context(), input)
		require.ErrorIs(t, err, pipeline.ErrBackend)
		require.ErrorContains(t, err, "OPENAI_API_KEY is not set")
	})
}

func TestClientDelete(t *testing.T) {
	t.Parallel()

	t.Run("deletes", func(t *testing.T) {
		t.Parallel()

		var path string
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodDelete, r.Method)
			path = r.URL.Path
			w.WriteHeader(http.StatusOK)
		})

		require.NoError(t, c.Delete(t.Context(), "Acme"))
		require.Equal(t, "/api/campaigns/Acme", path)
	})

	t.Run("unknown campaign", func(t *testing.T) {
		t.Parallel()

		c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		require.NoError(t, c.Delete(t.Context(), "nope"))
	})

	t.Run("failure", func(t *testing.T) {
		t.Parallel()

		c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		require.ErrorIs(t, c.Delete(t.Context(), "x"), pipeline.ErrBackend)
	})
}

func TestClientDeleteUsesBackendID(t *testing.T) {
	t.Parallel()

	var deleted string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"campaignId": "Acme_Inc_", "nestedData": {"posts": []}}`))
		case http.MethodDelete:
			deleted = r.URL.Path
		}
	})

	campaign, err := c.Create(t.Context(), core.CampaignInput{CompanyName: "Acme Inc."})
	require.NoError(t, err)
	require.Equal(t, "Acme_Inc_", campaign.BackendID)

	require.NoError(t, c.Delete(t.Context(), campaign.BackendID))
	require.Equal(t, "/api/campaigns/Acme_Inc_", deleted)
}

func TestClientHealth(t *testing.T) {
	t.Parallel()

	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		_, _ = w.Write([]byte(`{"ok": true}`))
	})

	require.NoError(t, c.Health(t.Context()))
}
