package planner

import (
	"slices"
	"time"

	"github.com/samber/lo"

	"github.com/shubhamdevjs/Reddit-Masterming/internal/core"
)

const (
	day           = 24 * time.Hour
	secondsPerDay = int64(day / time.Second)
)

// WeekIndex is the result of bucketing a campaign's posts into 1-indexed weeks.
type WeekIndex struct {
	// Weeks holds the week of every post, in input order.
	Weeks []int
	// WeekOf maps post ids to weeks. Posts without an id are only present in Weeks; for duplicate
	// ids the first post wins.
	WeekOf map[string]int

	TotalWeeks int

	// Reference is T0, the earliest parseable post timestamp. HasReference is false when no post
	// has one, in which case every post is in week 1.
	Reference    time.Time
	HasReference bool
}

// BucketByWeek assigns every post to a campaign week counted from the campaign's earliest post.
func BucketByWeek(posts []core.Post) WeekIndex {
	t0, ok := Reference(posts)
	if !ok {
		return bucket(posts, func(core.Post) int { return 1 }, time.Time{}, false)
	}
	return BucketAgainst(posts, t0)
}

// BucketAgainst buckets posts relative to an explicit reference instant. Posts older than t0 land
// in week 0 or below.
func BucketAgainst(posts []core.Post, t0 time.Time) WeekIndex {
	return bucket(posts, func(p core.Post) int {
		tp, ok := ParseTimestamp(p.Timestamp.String())
		if !ok {
			return 1
		}
		return weekBetween(tp, t0)
	}, t0, true)
}

// Reference returns T0: the first parseable timestamp of the posts in chronological order.
func Reference(posts []core.Post) (time.Time, bool) {
	for _, p := range SortPosts(posts) {
		if t, ok := ParseTimestamp(p.Timestamp.String()); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// WeekNumber is the week of a single timestamp relative to a reference timestamp. If either does not
// parse the post falls back to week 1.
func WeekNumber(timestamp, reference string) int {
	tp, ok := ParseTimestamp(timestamp)
	if !ok {
		return 1
	}
	t0, ok := ParseTimestamp(reference)
	if !ok {
		return 1
	}
	return weekBetween(tp, t0)
}

// SortPosts returns a copy of posts ordered by SortKey. Posts with equal keys keep their order.
func SortPosts(posts []core.Post) []core.Post {
	sorted := slices.Clone(posts)
	slices.SortStableFunc(sorted, func(a, b core.Post) int {
		return SortKey(a.Timestamp.String()).Compare(SortKey(b.Timestamp.String()))
	})
	return sorted
}

func bucket(posts []core.Post, weekFn func(core.Post) int, t0 time.Time, hasRef bool) WeekIndex {
	idx := WeekIndex{
		Weeks:        make([]int, len(posts)),
		WeekOf:       make(map[string]int, len(posts)),
		Reference:    t0,
		HasReference: hasRef,
	}

	for i, p := range posts {
		w := weekFn(p)
		idx.Weeks[i] = w

		id := p.ID.String()
		if id == "" {
			continue
		}
		if _, exists := idx.WeekOf[id]; !exists {
			idx.WeekOf[id] = w
		}
	}

	idx.TotalWeeks = max(lo.Max(idx.Weeks), 1)
	return idx
}

// weekBetween counts whole days in seconds rather than through time.Duration, which saturates
// past ~292 years.
func weekBetween(tp, t0 time.Time) int {
	secs := tp.Unix() - t0.Unix()
	days := floorDiv(secs, secondsPerDay)
	if secs-days*secondsPerDay == 0 && tp.Nanosecond() < t0.Nanosecond() {
		days--
	}
	return int(floorDiv(days, 7)) + 1
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
