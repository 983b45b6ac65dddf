package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/k0kubun/pp"

	"github.com/shubhamdevjs/Reddit-Masterming/internal/core"
	"github.com/shubhamdevjs/Reddit-Masterming/internal/planner"
)

const dateLayout = "2006-01-02 15:04"

func renderList(w io.Writer, list []core.Campaign) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "ID\tCOMPANY\tPOSTS\tCOMMENTS\tCREATED")
	for _, c := range list {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n",
			c.ID, c.CompanyName, len(c.Posts), c.CommentCount(), c.CreatedAt.UTC().Format(time.RFC3339))
	}

	return tw.Flush()
}

// renderCampaign writes the full calendar, or only week n when n > 0.
func renderCampaign(ctx context.Context, w io.Writer, c core.Campaign, n int, format string) error {
	var view any
	var weeks []planner.Week

	if n > 0 {
		week, err := planner.WeekView(ctx, c, n)
		if err != nil {
			return err
		}
		view = week
		weeks = []planner.Week{week}
	} else {
		cal, err := planner.Calendar(ctx, c)
		if err != nil {
			return err
		}
		view = cal
		weeks = cal.Weeks
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	case "pp":
		_, err := pp.Fprintln(w, view)
		return err
	default:
		return renderText(w, c, weeks)
	}
}

func renderText(w io.Writer, c core.Campaign, weeks []planner.Week) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s (%s)\n", c.CompanyName, c.ID)

	for _, week := range weeks {
		b.WriteString("\n")
		if week.Start.IsZero() {
			fmt.Fprintf(&b, "Week %d\n", week.Number)
		} else {
			fmt.Fprintf(&b, "Week %d: %s to %s\n",
				week.Number, week.Start.Format(dateLayout), week.End.Format(dateLayout))
		}

		if len(week.Posts) == 0 {
			b.WriteString("  no posts\n")
			continue
		}

		for _, v := range week.Posts {
			writePost(&b, v)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writePost(b *strings.Builder, v planner.PostView) {
	p := v.Post

	fmt.Fprintf(b, "  [%s] r/%s by %s at %s\n", p.ID, strings.TrimPrefix(p.Subreddit, "r/"), p.Author, p.Timestamp)
	fmt.Fprintf(b, "    %s\n", p.Title)
	if p.Body != "" {
		fmt.Fprintf(b, "    %s\n", p.Body)
	}

	for _, e := range v.Thread {
		indent := strings.Repeat("  ", e.Depth+3)
		fmt.Fprintf(b, "%s- %s: %s\n", indent, e.Comment.Author, e.Comment.Text)
	}
}
