package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ID identifies a campaign, post or comment. The pipeline emits ids as strings, numbers or null,
// all of them decode into the trimmed decimal/string form so that 5 and "5" are the same ID.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	s, err := looseString(b)
	if err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	*id = ID(s)
	return nil
}

func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the id is absent. A zero parent id means "reply to the post".
func (id ID) IsZero() bool {
	return strings.TrimSpace(string(id)) == ""
}

// Timestamp is the raw, possibly malformed, time of a post or comment.
// Use planner.ParseTimestamp to interpret it.
type Timestamp string

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	s, err := looseString(b)
	if err != nil {
		return fmt.Errorf("decode timestamp: %w", err)
	}
	*t = Timestamp(s)
	return nil
}

func (t Timestamp) String() string {
	return string(t)
}

type Keyword struct {
	ID      string `json:"keyword_id"`
	Keyword string `json:"keyword"`
}

type Persona struct {
	Username string `json:"persona_username"`
	Info     string `json:"info"`
}

// Comment is a reply inside a post's thread. Comments are owned by their post.
type Comment struct {
	ID        ID        `json:"comment_id"`
	ParentID  ID        `json:"parent_comment_id"`
	Author    string    `json:"username"`
	Text      string    `json:"comment_text"`
	Timestamp Timestamp `json:"timestamp"`
}

// Post is a planned submission to a subreddit.
type Post struct {
	ID         ID        `json:"post_id"`
	Subreddit  string    `json:"subreddit"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Author     string    `json:"author_username"`
	Timestamp  Timestamp `json:"timestamp"`
	KeywordIDs string    `json:"keyword_ids,omitempty"`
	Comments   []Comment `json:"comments"`
}

// Campaign is a whole posting plan snapshot. It is stored and deleted as a unit.
type Campaign struct {
	ID                 string    `json:"id"`
	// BackendID is the generation backend's name for the campaign, empty for local ones.
	BackendID          string    `json:"backend_id,omitempty"`
	CompanyName        string    `json:"company_name"`
	CompanyDescription string    `json:"company_description"`
	CompanyWebsite     string    `json:"company_website,omitempty"`
	PostsPerWeek       int       `json:"target_posts_per_week"`
	Subreddits         []string  `json:"subreddits"`
	Keywords           []Keyword `json:"keywords"`
	Personas           []Persona `json:"personas"`
	Posts              []Post    `json:"posts"`
	CreatedAt          time.Time `json:"created_at"`
}

func (c Campaign) CommentCount() int {
	n := 0
	for _, p := range c.Posts {
		n += len(p.Comments)
	}
	return n
}

// CampaignInput is what a user submits to have a plan generated.
type CampaignInput struct {
	CompanyName        string    `json:"company_name"`
	CompanyDescription string    `json:"company_description"`
	PostsPerWeek       int       `json:"target_posts_per_week"`
	Subreddits         []string  `json:"subreddits"`
	Keywords           []Keyword `json:"keywords"`
	Personas           []Persona `json:"personas"`
}

func looseString(b []byte) (string, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return "", nil
	}

	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return "", err
		}
		return strings.TrimSpace(s), nil
	case '{', '[':
		return "", fmt.Errorf("%w: %s", ErrUnsupportedValue, b)
	case 't', 'f':
		return string(b), nil
	}

	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return "", err
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}
