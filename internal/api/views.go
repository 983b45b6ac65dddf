package api

import (
	"time"

	"github.com/samber/lo"

	"github.com/shubhamdevjs/Reddit-Masterming/internal/core"
	"github.com/shubhamdevjs/Reddit-Masterming/internal/planner"
)

type campaignSummary struct {
	ID          string    `json:"id"`
	CompanyName string    `json:"company_name"`
	Posts       int       `json:"posts"`
	Comments    int       `json:"comments"`
	TotalWeeks  int       `json:"total_weeks"`
	CreatedAt   time.Time `json:"created_at"`
}

func newCampaignSummary(c core.Campaign) campaignSummary {
	return campaignSummary{
		ID:          c.ID,
		CompanyName: c.CompanyName,
		Posts:       len(c.Posts),
		Comments:    c.CommentCount(),
		TotalWeeks:  planner.BucketByWeek(c.Posts).TotalWeeks,
		CreatedAt:   c.CreatedAt,
	}
}

type campaignResponse struct {
	core.Campaign
	TotalWeeks int `json:"total_weeks"`
}

func newCampaignResponse(c core.Campaign) campaignResponse {
	return campaignResponse{Campaign: c, TotalWeeks: planner.BucketByWeek(c.Posts).TotalWeeks}
}

type threadEntryResponse struct {
	core.Comment
	Key   string `json:"key"`
	Depth int    `json:"depth"`
}

type postResponse struct {
	core.Post
	Week         int                   `json:"week"`
	CommentCount int                   `json:"comment_count"`
	Thread       []threadEntryResponse `json:"thread"`
}

type weekResponse struct {
	Number    int            `json:"number"`
	Start     *time.Time     `json:"start,omitempty"`
	End       *time.Time     `json:"end,omitempty"`
	PostCount int            `json:"post_count"`
	Posts     []postResponse `json:"posts"`
}

type calendarResponse struct {
	CampaignID string         `json:"campaign_id"`
	TotalWeeks int            `json:"total_weeks"`
	Reference  *time.Time     `json:"reference,omitempty"`
	Weeks      []weekResponse `json:"weeks"`
}

func newCalendarResponse(id string, cal planner.CalendarView) calendarResponse {
	return calendarResponse{
		CampaignID: id,
		TotalWeeks: cal.TotalWeeks,
		Reference:  lo.Ternary(cal.HasReference, &cal.Reference, nil),
		Weeks:      lo.Map(cal.Weeks, func(w planner.Week, _ int) weekResponse { return newWeekResponse(w) }),
	}
}

func newWeekResponse(w planner.Week) weekResponse {
	resp := weekResponse{
		Number:    w.Number,
		PostCount: len(w.Posts),
		Posts: lo.Map(w.Posts, func(p planner.PostView, _ int) postResponse {
			return postResponse{
				Post:         p.Post,
				Week:         p.Week,
				CommentCount: len(p.Post.Comments),
				Thread: lo.Map(p.Thread, func(e planner.ThreadEntry, _ int) threadEntryResponse {
					return threadEntryResponse{Comment: e.Comment, Key: e.Key, Depth: e.Depth}
				}),
			}
		}),
	}
	if !w.Start.IsZero() {
		resp.Start, resp.End = &w.Start, &w.End
	}
	return resp
}
