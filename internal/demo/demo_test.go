package demo_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shubhamdevjs/Reddit-Masterming/internal/demo"
	"github.com/shubhamdevjs/Reddit-Masterming/internal/planner"
)

func TestCampaign(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 2, 9, 41, 7, 0, time.UTC)
	c := demo.Campaign(now)

	require.NotEmpty(t, c.ID)
	require.NotEqual(t, c.ID, demo.Campaign(now).ID)

	idx := planner.BucketByWeek(c.Posts)
	require.Equal(t, []int{1, 1, 2, 3}, idx.Weeks)
	require.Equal(t, 3, idx.TotalWeeks)
	require.True(t, now.Truncate(time.Hour).Equal(idx.Reference))

	thread := planner.BuildThread(c.Posts[0].Comments, "")
	keys := make([]string, len(thread))
	depths := make([]int, len(thread))
	for i, e := range thread {
		keys[i], depths[i] = e.Key, e.Depth
	}
	require.Equal(t, []string{"C1", "C2", "C3", "C4", "C5"}, keys)
	require.Equal(t, []int{0, 1, 1, 2, 0}, depths)

	require.Len(t, planner.BuildThread(c.Posts[1].Comments, ""), 2)

	third := planner.BuildThread(c.Posts[2].Comments, "")
	require.Len(t, third, 2)
	require.Equal(t, "C9-0", third[1].Key)
}
