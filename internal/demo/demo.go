// Package demo builds a sample campaign for trying the planner without the generation backend.
package demo

import (
	"time"

	"github.com/google/uuid"

	"github.com/shubhamdevjs/Reddit-Masterming/internal/core"
)

const commentLayout = "2006-01-02 15:04"

// Campaign returns a three week plan starting at now, truncated to the hour. Every call gets a new
// id.
func Campaign(now time.Time) core.Campaign {
	start := now.UTC().Truncate(time.Hour)

	at := func(days int, hours, minutes int) time.Time {
		return start.AddDate(0, 0, days).Add(time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute)
	}
	postTS := func(t time.Time) core.Timestamp {
		return core.Timestamp(t.Format("2006-01-02T15:04:05"))
	}
	commentTS := func(t time.Time) core.Timestamp {
		return core.Timestamp(t.Format(commentLayout))
	}

	posts := []core.Post{
		{
			ID:         "P1",
			Subreddit:  "r/PowerPoint",
			Title:      "Best AI presentation maker?",
			Body:       "Just like it says in the title, what is the best AI presentation maker? I'm looking for something that makes high quality slides I can edit afterwards.",
			Author:     "riley_ops",
			Timestamp:  postTS(at(0, 0, 0)),
			KeywordIDs: "K1, K14, K4",
		},
		{
			ID:         "P2",
			Subreddit:  "r/productivity",
			Title:      "How do you turn meeting notes into slides fast?",
			Body:       "Every Monday I spend an hour converting notes into a deck for my team. There has to be a better way.",
			Author:     "jordan_consults",
			Timestamp:  postTS(at(2, 3, 30)),
			KeywordIDs: "K2, K7",
		},
		{
			ID:         "P3",
			Subreddit:  "r/startups",
			Title:      "Pitch deck tools that don't look templated?",
			Body:       "Raising a pre-seed soon. Canva decks all look the same. What are founders using now?",
			Author:     "emily_builds",
			Timestamp:  postTS(at(8, 1, 0)),
			KeywordIDs: "K3",
		},
		{
			ID:         "P4",
			Subreddit:  "r/consulting",
			Title:      "Client-ready slides from a rough outline",
			Body:       "Anyone automating the first draft of client decks? Curious what holds up in front of partners.",
			Author:     "riley_ops",
			Timestamp:  postTS(at(15, 6, 15)),
			KeywordIDs: "K5, K9",
		},
	}

	posts[0].Comments = []core.Comment{
		{ID: "C1", Author: "jordan_consults", Text: "I've tried a bunch of tools. Slideforge is the only one that doesn't make me fight the layout.", Timestamp: commentTS(at(0, 0, 21))},
		{ID: "C2", ParentID: "C1", Author: "riley_ops", Text: "+1 Slideforge", Timestamp: commentTS(at(0, 0, 44))},
		{ID: "C3", ParentID: "C1", Author: "emily_builds", Text: "Does it export to Google Slides?", Timestamp: commentTS(at(0, 1, 2))},
		{ID: "C4", ParentID: "C3", Author: "jordan_consults", Text: "Yep, and pptx.", Timestamp: commentTS(at(0, 1, 30))},
		{ID: "C5", Author: "emily_builds", Text: "Gamma is fine for quick stuff too.", Timestamp: commentTS(at(0, 2, 5))},
	}
	posts[1].Comments = []core.Comment{
		{ID: "C6", Author: "riley_ops", Text: "Paste the notes as an outline and let the tool draft it, then fix the 20% that's off.", Timestamp: commentTS(at(2, 4, 0))},
		{ID: "C7", ParentID: "C6", Author: "jordan_consults", Text: "That's roughly what I ended up doing.", Timestamp: commentTS(at(2, 4, 40))},
		// Replies to a removed comment are never shown.
		{ID: "C8", ParentID: "C404", Author: "emily_builds", Text: "Which template did you use?", Timestamp: commentTS(at(2, 5, 0))},
	}
	posts[2].Comments = []core.Comment{
		{ID: "C9", Author: "jordan_consults", Text: "Investors care about the story, not the theme. Keep it simple.", Timestamp: commentTS(at(8, 2, 10))},
		{ParentID: "C9", Author: "riley_ops", Text: "This. Ten slides max.", Timestamp: commentTS(at(8, 2, 50))},
	}
	posts[3].Comments = []core.Comment{
		{ID: "C10", Author: "emily_builds", Text: "We draft with AI and have a human pass for the numbers.", Timestamp: commentTS(at(15, 7, 0))},
	}

	return core.Campaign{
		ID:                 uuid.NewString(),
		CompanyName:        "Slideforge",
		CompanyDescription: "Slideforge turns outlines and notes into polished, editable presentations.",
		CompanyWebsite:     "slideforge.com",
		PostsPerWeek:       2,
		Subreddits:         []string{"r/PowerPoint", "r/productivity", "r/startups", "r/consulting"},
		Keywords: []core.Keyword{
			{ID: "K1", Keyword: "best ai presentation maker"},
			{ID: "K2", Keyword: "meeting notes to slides"},
			{ID: "K3", Keyword: "pitch deck generator"},
			{ID: "K4", Keyword: "ai slide deck tool"},
			{ID: "K5", Keyword: "consulting slides"},
			{ID: "K7", Keyword: "productivity presentation"},
			{ID: "K9", Keyword: "client deck automation"},
			{ID: "K14", Keyword: "editable ai slides"},
		},
		Personas: []core.Persona{
			{Username: "riley_ops", Info: "Operations lead at a 40 person startup, runs the weekly all-hands deck."},
			{Username: "jordan_consults", Info: "Independent strategy consultant, builds client decks every week."},
			{Username: "emily_builds", Info: "First-time founder preparing a pre-seed raise."},
		},
		Posts:     posts,
		CreatedAt: now.UTC(),
	}
}
