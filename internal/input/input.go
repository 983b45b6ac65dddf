package input

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shubhamdevjs/Reddit-Masterming/internal/core"
)

const (
	MinPostsPerWeek = 1
	MaxPostsPerWeek = 50
	// A thread needs somebody to post and somebody else to reply.
	MinPersonas = 2
)

var ErrInvalidInput = errors.New("invalid campaign input")

// Input is a campaign request as submitted by a user. The list fields can also be given as free
// text, the way they are pasted from a spreadsheet.
type Input struct {
	CompanyName        string         `json:"company_name"`
	CompanyDescription string         `json:"company_description"`
	PostsPerWeek       int            `json:"target_posts_per_week"`
	Subreddits         []string       `json:"subreddits,omitempty"`
	Keywords           []core.Keyword `json:"keywords,omitempty"`
	Personas           []core.Persona `json:"personas,omitempty"`

	SubredditsText string `json:"subreddits_text,omitempty"`
	KeywordsText   string `json:"keywords_text,omitempty"`
	PersonasText   string `json:"personas_text,omitempty"`
}

// Normalize merges the text fields into the lists and cleans everything up. The result has no text
// fields left.
func (in Input) Normalize() Input {
	return Input{
		CompanyName:        strings.TrimSpace(in.CompanyName),
		CompanyDescription: strings.TrimSpace(in.CompanyDescription),
		PostsPerWeek:       in.PostsPerWeek,
		Subreddits:         normalizeSubreddits(append(append([]string{}, in.Subreddits...), ParseSubreddits(in.SubredditsText)...)),
		Keywords:           mergeKeywords(in.Keywords, keywordRows(in.KeywordsText)),
		Personas:           mergePersonas(in.Personas, ParsePersonas(in.PersonasText)),
	}
}

// Validate checks a normalized input. Every violated rule is reported.
func (in Input) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidInput}, args...)...))
	}

	if strings.TrimSpace(in.CompanyName) == "" {
		fail("company name is required")
	}
	if strings.TrimSpace(in.CompanyDescription) == "" {
		fail("company description is required")
	}
	if in.PostsPerWeek < MinPostsPerWeek || in.PostsPerWeek > MaxPostsPerWeek {
		fail("posts per week must be between %d and %d, got %d", MinPostsPerWeek, MaxPostsPerWeek, in.PostsPerWeek)
	}
	if len(in.Subreddits) == 0 {
		fail("at least one subreddit is required")
	}
	if len(in.Keywords) == 0 {
		fail("at least one keyword is required")
	}
	if len(in.Personas) < MinPersonas {
		fail("at least %d personas are required, got %d", MinPersonas, len(in.Personas))
	}

	return errors.Join(errs...)
}

func (in Input) CampaignInput() core.CampaignInput {
	return core.CampaignInput{
		CompanyName:        in.CompanyName,
		CompanyDescription: in.CompanyDescription,
		PostsPerWeek:       in.PostsPerWeek,
		Subreddits:         in.Subreddits,
		Keywords:           in.Keywords,
		Personas:           in.Personas,
	}
}
