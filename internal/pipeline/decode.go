package pipeline

import (
	"cmp"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Jeffail/gabs"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/shubhamdevjs/Reddit-Masterming/internal/core"
)

// The backend's output schema changed over time, each attribute is looked up under all the names it
// has had. The first present, non-null one wins.
var (
	campaignIDPaths = []string{"campaignId", "campaign_id", "id"}

	companyNamePaths        = []string{"company_name", "name"}
	companyDescriptionPaths = []string{"company_description", "description"}
	companyWebsitePaths     = []string{"company_website", "website"}
	postsPerWeekPaths       = []string{"target_posts_per_week", "posts_per_week"}

	keywordIDPaths       = []string{"keyword_id", "id"}
	personaUsernamePaths = []string{"persona_username", "username"}
	personaInfoPaths     = []string{"info", "description"}

	postIDPaths        = []string{"post_id", "id", "postId"}
	postSubredditPaths = []string{"subreddit", "subreddit_assigned"}
	postTitlePaths     = []string{"title", "post_title"}
	postBodyPaths      = []string{"body", "post_body"}
	postAuthorPaths    = []string{"author_username", "persona_username", "author", "username"}
	timestampPaths     = []string{"timestamp", "scheduled_at", "created_at"}
	keywordIDsPaths    = []string{"keyword_ids", "keywords"}

	commentIDPaths     = []string{"comment_id", "id"}
	commentParentPaths = []string{"parent_comment_id", "parent_id", "parentId"}
	commentTextPaths   = []string{"comment_text", "text", "body"}
	commentAuthorPaths = []string{"username", "author_username", "author"}
)

var invalidIDChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// decodeCampaign builds a campaign out of a create response. Attributes missing from the response
// are taken from the submitted input.
func decodeCampaign(body []byte, input core.CampaignInput, now time.Time) (core.Campaign, error) {
	root, err := gabs.ParseJSON(body)
	if err != nil {
		return core.Campaign{}, fmt.Errorf("%w: undecodable response: %w", ErrBackend, err)
	}

	meta := root.Path("campaign")

	postsNode := first(root, "nestedData.posts", "posts")
	if postsNode == nil {
		return core.Campaign{}, fmt.Errorf("%w: response has no posts", ErrBackend)
	}
	postNodes, err := postsNode.Children()
	if err != nil {
		return core.Campaign{}, fmt.Errorf("%w: posts is not a list: %w", ErrBackend, err)
	}

	backendID := scalar(first(root, campaignIDPaths...))

	c := core.Campaign{
		ID:                 sanitizeID(backendID),
		BackendID:          backendID,
		CompanyName:        cmp.Or(scalar(first(meta, companyNamePaths...)), input.CompanyName),
		CompanyDescription: cmp.Or(scalar(first(meta, companyDescriptionPaths...)), input.CompanyDescription),
		CompanyWebsite:     scalar(first(meta, companyWebsitePaths...)),
		PostsPerWeek:       input.PostsPerWeek,
		Subreddits:         input.Subreddits,
		Keywords:           input.Keywords,
		Personas:           input.Personas,
		Posts:              lo.Map(postNodes, func(n *gabs.Container, _ int) core.Post { return decodePost(n) }),
		CreatedAt:          now.UTC(),
	}

	if n, err := strconv.Atoi(scalar(first(meta, postsPerWeekPaths...))); err == nil {
		c.PostsPerWeek = n
	}
	if subs := stringList(first(meta, "subreddits")); len(subs) > 0 {
		c.Subreddits = subs
	}
	if kws := decodeKeywords(first(meta, "keywords")); len(kws) > 0 {
		c.Keywords = kws
	}
	if ps := decodePersonas(first(meta, "personas")); len(ps) > 0 {
		c.Personas = ps
	}

	return c, nil
}

func decodePost(n *gabs.Container) core.Post {
	post := core.Post{
		ID:         core.ID(scalar(first(n, postIDPaths...))),
		Subreddit:  scalar(first(n, postSubredditPaths...)),
		Title:      scalar(first(n, postTitlePaths...)),
		Body:       scalar(first(n, postBodyPaths...)),
		Author:     scalar(first(n, postAuthorPaths...)),
		Timestamp:  core.Timestamp(scalar(first(n, timestampPaths...))),
		KeywordIDs: keywordIDs(first(n, keywordIDsPaths...)),
	}

	if comments := first(n, "comments"); comments != nil {
		children, _ := comments.Children()
		post.Comments = lo.Map(children, func(c *gabs.Container, _ int) core.Comment {
			return core.Comment{
				ID:        core.ID(scalar(first(c, commentIDPaths...))),
				ParentID:  core.ID(scalar(first(c, commentParentPaths...))),
				Author:    scalar(first(c, commentAuthorPaths...)),
				Text:      scalar(first(c, commentTextPaths...)),
				Timestamp: core.Timestamp(scalar(first(c, timestampPaths...))),
			}
		})
	}

	return post
}

func decodeKeywords(n *gabs.Container) []core.Keyword {
	if n == nil {
		return nil
	}
	children, _ := n.Children()
	return lo.FilterMap(children, func(c *gabs.Container, _ int) (core.Keyword, bool) {
		kw := core.Keyword{
			ID:      scalar(first(c, keywordIDPaths...)),
			Keyword: scalar(first(c, "keyword")),
		}
		return kw, kw.Keyword != ""
	})
}

func decodePersonas(n *gabs.Container) []core.Persona {
	if n == nil {
		return nil
	}
	children, _ := n.Children()
	return lo.FilterMap(children, func(c *gabs.Container, _ int) (core.Persona, bool) {
		p := core.Persona{
			Username: scalar(first(c, personaUsernamePaths...)),
			Info:     scalar(first(c, personaInfoPaths...)),
		}
		return p, p.Username != ""
	})
}

// keywordIDs accepts both "K1, K2" and ["K1", "K2"].
func keywordIDs(n *gabs.Container) string {
	if n == nil {
		return ""
	}
	if _, ok := n.Data().([]any); ok {
		return strings.Join(stringList(n), ", ")
	}
	return scalar(n)
}

func first(c *gabs.Container, paths ...string) *gabs.Container {
	if c == nil {
		return nil
	}
	for _, p := range paths {
		if v := c.Path(p); v != nil && v.Data() != nil {
			return v
		}
	}
	return nil
}

func stringList(n *gabs.Container) []string {
	if n == nil {
		return nil
	}
	children, _ := n.Children()
	return lo.Compact(lo.Map(children, func(c *gabs.Container, _ int) string { return scalar(c) }))
}

// scalar renders a JSON scalar as a trimmed string. Numbers lose their float formatting so that 5
// and "5" are the same id.
func scalar(c *gabs.Container) string {
	if c == nil {
		return ""
	}

	switch v := c.Data().(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// sanitizeID makes the backend's campaign id usable as a storage key. The backend derives it from
// the company name, which may contain anything. The raw id stays on Campaign.BackendID.
func sanitizeID(raw string) string {
	id := invalidIDChars.ReplaceAllString(raw, "_")
	if strings.Trim(id, "_") == "" {
		return uuid.NewString()
	}
	return id
}
