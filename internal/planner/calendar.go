package planner

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/shubhamdevjs/Reddit-Masterming/internal/core"
	"github.com/shubhamdevjs/Reddit-Masterming/pkg/async"
)

var ErrWeekOutOfRange = errors.New("week out of range")

type PostView struct {
	Post   core.Post
	Week   int
	Thread []ThreadEntry
}

type Week struct {
	Number int
	// Start and End bound the week, End exclusive. Both are zero when the campaign has no
	// parseable timestamps.
	Start time.Time
	End   time.Time
	Posts []PostView
}

type CalendarView struct {
	TotalWeeks   int
	Reference    time.Time
	HasReference bool
	Weeks        []Week
}

// Calendar renders every week of the campaign.
func Calendar(ctx context.Context, c core.Campaign) (CalendarView, error) {
	idx := BucketByWeek(c.Posts)

	views, err := postViews(ctx, c.Posts, idx)
	if err != nil {
		return CalendarView{}, err
	}

	cal := CalendarView{
		TotalWeeks:   idx.TotalWeeks,
		Reference:    idx.Reference,
		HasReference: idx.HasReference,
		Weeks:        make([]Week, idx.TotalWeeks),
	}
	for n := 1; n <= idx.TotalWeeks; n++ {
		cal.Weeks[n-1] = newWeek(idx, n)
	}
	for _, v := range views {
		w := &cal.Weeks[v.Week-1]
		w.Posts = append(w.Posts, v)
	}

	return cal, nil
}

// WeekView renders a single week, n being 1..TotalWeeks.
func WeekView(ctx context.Context, c core.Campaign, n int) (Week, error) {
	idx := BucketByWeek(c.Posts)
	if n < 1 || n > idx.TotalWeeks {
		return Week{}, fmt.Errorf("%w: %d not in 1..%d", ErrWeekOutOfRange, n, idx.TotalWeeks)
	}

	var posts []core.Post
	var inWeek WeekIndex
	for i, p := range c.Posts {
		if idx.Weeks[i] == n {
			posts = append(posts, p)
			inWeek.Weeks = append(inWeek.Weeks, n)
		}
	}

	views, err := postViews(ctx, posts, inWeek)
	if err != nil {
		return Week{}, err
	}

	w := newWeek(idx, n)
	w.Posts = views
	return w, nil
}

func newWeek(idx WeekIndex, n int) Week {
	w := Week{Number: n}
	if idx.HasReference {
		w.Start = idx.Reference.AddDate(0, 0, 7*(n-1))
		w.End = w.Start.AddDate(0, 0, 7)
	}
	return w
}

// postViews threads every post concurrently and returns them in chronological order.
func postViews(ctx context.Context, posts []core.Post, idx WeekIndex) ([]PostView, error) {
	views, err := async.AsyncMapI(ctx, posts, func(_ context.Context, p core.Post, i int) (PostView, error) {
		return PostView{
			Post:   p,
			Week:   idx.Weeks[i],
			Thread: BuildThread(p.Comments, ""),
		}, nil
	})
	if err != nil {
		return nil, err
	}

	return sortViews(views), nil
}

func sortViews(views []PostView) []PostView {
	slices.SortStableFunc(views, func(a, b PostView) int {
		return SortKey(a.Post.Timestamp.String()).Compare(SortKey(b.Post.Timestamp.String()))
	})
	return views
}
