package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shubhamdevjs/Reddit-Masterming/internal/core"
)

var now = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

func TestDecodeCampaign(t *testing.T) {
	t.Parallel()

	t.Run("current schema", func(t *testing.T) {
		t.Parallel()

		body := []byte(`{
			"status": "success",
			"campaignId": "Slide_Forge",
			"nestedData": {"posts": [{
				"post_id": "P1",
				"subreddit": "r/productivity",
				"title": "Best tools?",
				"body": "Looking for ideas",
				"author_username": "riley_ops",
				"timestamp": "2025-05-05 09:15",
				"keyword_ids": "K1, K4",
				"comments": [
					{"comment_id": "C1", "post_id": "P1", "parent_comment_id": "", "comment_text": "Try it", "username": "jordan", "timestamp": "2025-05-05 09:40"},
					{"comment_id": 2, "post_id": "P1", "parent_comment_id": "C1", "comment_text": "+1", "username": "emily", "timestamp": "2025-05-05 10:02"}
				]
			}]},
			"campaign": {
				"company_name": "Slide Forge",
				"company_description": "Decks",
				"company_website": "slideforge.com",
				"subreddits": ["r/productivity"],
				"keywords": [{"keyword_id": "K1", "keyword": "ai slides"}],
				"personas": [{"persona_username": "riley_ops", "info": "ops lead"}],
				"target_posts_per_week": 3
			}
		}`)

		c, err := decodeCampaign(body, core.CampaignInput{}, now)
		require.NoError(t, err)

		require.Equal(t, "Slide_Forge", c.ID)
		require.Equal(t, "Slide_Forge", c.BackendID)
		require.Equal(t, "Slide Forge", c.CompanyName)
		require.Equal(t, "slideforge.com", c.CompanyWebsite)
		require.Equal(t, 3, c.PostsPerWeek)
		require.Equal(t, []string{"r/productivity"}, c.Subreddits)
		require.Equal(t, []core.Keyword{{ID: "K1", Keyword: "ai slides"}}, c.Keywords)
		require.Equal(t, []core.Persona{{Username: "riley_ops", Info: "ops lead"}}, c.Personas)
		require.Equal(t, now, c.CreatedAt)

		require.Len(t, c.Posts, 1)
		p := c.Posts[0]
		require.Equal(t, core.ID("P1"), p.ID)
		require.Equal(t, "Best tools?", p.Title)
		require.Equal(t, "riley_ops", p.Author)
		require.Equal(t, core.Timestamp("2025-05-05 09:15"), p.Timestamp)
		require.Equal(t, "K1, K4", p.KeywordIDs)
		require.Equal(t, []core.Comment{
			{ID: "C1", ParentID: "", Author: "jordan", Text: "Try it", Timestamp: "2025-05-05 09:40"},
			{ID: "2", ParentID: "C1", Author: "emily", Text: "+1", Timestamp: "2025-05-05 10:02"},
		}, p.Comments)
	})

	t.Run("historical field names", func(t *testing.T) {
		t.Parallel()

		body := []byte(`{
			"campaign_id": 42,
			"posts": [{
				"id": 7,
				"subreddit_assigned": "r/startups",
				"post_title": "Title",
				"post_body": "Body",
				"persona_username": "sam",
				"scheduled_at": 1746435600,
				"keywords": ["K1", "K2"],
				"comments": [{"id": 9, "parent_id": null, "text": "hello", "author": "lee", "created_at": "2025-05-05T10:00:00Z"}]
			}]
		}`)
		input := core.CampaignInput{
			CompanyName:  "Acme",
			PostsPerWeek: 2,
			Subreddits:   []string{"r/startups"},
		}

		c, err := decodeCampaign(body, input, now)
		require.NoError(t, err)

		require.Equal(t, "42", c.ID)
		require.Equal(t, "Acme", c.CompanyName)
		require.Equal(t, 2, c.PostsPerWeek)
		require.Equal(t, []string{"r/startups"}, c.Subreddits)

		p := c.Posts[0]
		require.Equal(t, core.ID("7"), p.ID)
		require.Equal(t, "r/startups", p.Subreddit)
		require.Equal(t, "Title", p.Title)
		require.Equal(t, "Body", p.Body)
		require.Equal(t, "sam", p.Author)
		require.Equal(t, core.Timestamp("1746435600"), p.Timestamp)
		require.Equal(t, "K1, K2", p.KeywordIDs)
		require.Equal(t, []core.Comment{
			{ID: "9", Author: "lee", Text: "hello", Timestamp: "2025-05-05T10:00:00Z"},
		}, p.Comments)
	})

	t.Run("company falls back to input", func(t *testing.T) {
		t.Parallel()

		body := []byte(`{
			"campaignId": "Acme_Inc_",
			"nestedData": {"posts": []},
			"campaign": {"company_description": "Anvils for coyotes"}
		}`)
		input := core.CampaignInput{CompanyName: "Acme Inc.", CompanyDescription: "Anvils"}

		c, err := decodeCampaign(body, input, now)
		require.NoError(t, err)

		require.Equal(t, "Acme Inc.", c.CompanyName)
		require.Equal(t, "Anvils for coyotes", c.CompanyDescription)
		require.Equal(t, "Acme_Inc_", c.ID)
		require.Equal(t, "Acme_Inc_", c.BackendID)
	})

	t.Run("backend id kept verbatim", func(t *testing.T) {
		t.Parallel()

		body := []byte(`{"campaignId": "Café_Ltd_", "nestedData": {"posts": []}}`)

		c, err := decodeCampaign(body, core.CampaignInput{}, now)
		require.NoError(t, err)

		require.Equal(t, "Caf_Ltd_", c.ID)
		require.Equal(t, "Café_Ltd_", c.BackendID)
	})

	t.Run("missing posts", func(t *testing.T) {
		t.Parallel()

		_, err := decodeCampaign([]byte(`{"status": "success"}`), core.CampaignInput{}, now)
		require.ErrorIs(t, err, ErrBackend)
	})

	t.Run("not json", func(t *testing.T) {
		t.Parallel()

		_, err := decodeCampaign([]byte(`<html>`), core.CampaignInput{}, now)
		require.ErrorIs(t, err, ErrBackend)
	})
}

func TestSanitizeID(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Acme_Co", sanitizeID("Acme Co"))
	require.Equal(t, "Acme_Inc_", sanitizeID("Acme_Inc_"))
	require.Equal(t, "Caf_Ltd", sanitizeID("Café Ltd"))
	require.Equal(t, "a-b_c", sanitizeID("a-b_c"))
	require.Len(t, sanitizeID(""), 36)
	require.Len(t, sanitizeID("!!"), 36)
}
