package planner_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shubhamdevjs/Reddit-Masterming/internal/core"
	"github.com/shubhamdevjs/Reddit-Masterming/internal/planner"
)

func calendarCampaign() core.Campaign {
	p1 := postAfter("p1", 0)
	p1.Comments = []core.Comment{
		comment("c2", "c1", "2025-03-03 12:00"),
		comment("c1", "", "2025-03-03 11:00"),
	}

	return core.Campaign{
		ID: "cmp",
		Posts: []core.Post{
			postAfter("p3", 8*24*time.Hour),
			p1,
			postAfter("p2", 2*24*time.Hour),
		},
	}
}

func TestCalendar(t *testing.T) {
	t.Parallel()

	cal, err := planner.Calendar(t.Context(), calendarCampaign())
	require.NoError(t, err)

	require.Equal(t, 2, cal.TotalWeeks)
	require.True(t, cal.HasReference)
	require.Len(t, cal.Weeks, 2)

	first := cal.Weeks[0]
	require.Equal(t, 1, first.Number)
	require.True(t, t0.Equal(first.Start))
	require.True(t, t0.Add(7*24*time.Hour).Equal(first.End))
	require.Len(t, first.Posts, 2)
	require.Equal(t, core.ID("p1"), first.Posts[0].Post.ID)
	require.Equal(t, core.ID("p2"), first.Posts[1].Post.ID)
	require.Equal(t, []flat{{"c1", 0}, {"c2", 1}}, flatten(first.Posts[0].Thread))

	second := cal.Weeks[1]
	require.Equal(t, 2, second.Number)
	require.Len(t, second.Posts, 1)
	require.Equal(t, 2, second.Posts[0].Week)
}

func TestCalendarWithoutTimestamps(t *testing.T) {
	t.Parallel()

	cal, err := planner.Calendar(t.Context(), core.Campaign{Posts: []core.Post{postAt("a", ""), postAt("b", "?")}})
	require.NoError(t, err)

	require.Equal(t, 1, cal.TotalWeeks)
	require.False(t, cal.HasReference)
	require.Len(t, cal.Weeks[0].Posts, 2)
	require.True(t, cal.Weeks[0].Start.IsZero())
}

func TestWeekView(t *testing.T) {
	t.Parallel()

	t.Run("selects week", func(t *testing.T) {
		t.Parallel()

		w, err := planner.WeekView(t.Context(), calendarCampaign(), 2)
		require.NoError(t, err)

		require.Equal(t, 2, w.Number)
		require.True(t, t0.Add(7*24*time.Hour).Equal(w.Start))
		require.Len(t, w.Posts, 1)
		require.Equal(t, core.ID("p3"), w.Posts[0].Post.ID)
		require.Equal(t, 2, w.Posts[0].Week)
	})

	t.Run("out of range", func(t *testing.T) {
		t.Parallel()

		_, err := planner.WeekView(t.Context(), calendarCampaign(), 3)
		require.ErrorIs(t, err, planner.ErrWeekOutOfRange)

		_, err = planner.WeekView(t.Context(), calendarCampaign(), 0)
		require.ErrorIs(t, err, planner.ErrWeekOutOfRange)
	})

	t.Run("empty campaign has one empty week", func(t *testing.T) {
		t.Parallel()

		w, err := planner.WeekView(t.Context(), core.Campaign{}, 1)
		require.NoError(t, err)
		require.Empty(t, w.Posts)
	})
}
