package metrics

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/shubhamdevjs/Reddit-Masterming/internal/core"
)

const collectInterval = 15 * time.Second

var (
	campaignsStored = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "campaignplan_campaigns_stored",
		Help: "Number of campaigns in the store.",
	})
	postsStored = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "campaignplan_posts_stored",
		Help: "Number of planned posts across stored campaigns.",
	})
	commentsStored = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "campaignplan_comments_stored",
		Help: "Number of planned comments across stored campaigns.",
	})
)

type Collector struct {
	Logger    *slog.Logger
	Campaigns core.CampaignRepository
}

func (c *Collector) Init(_ context.Context) error {
	c.Logger = c.Logger.With("component", "metrics.Collector")
	return nil
}

func (c *Collector) Run(ctx context.Context) error {
	ticker := time.NewTicker(collectInterval)
	defer ticker.Stop()

	for {
		if err := c.Collect(ctx); err != nil {
			c.Logger.Error("Failed to collect metrics", "error", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (c *Collector) Collect(ctx context.Context) error {
	list, err := c.Campaigns.List(ctx)
	if err != nil {
		return err
	}

	posts, comments := 0, 0
	for _, campaign := range list {
		posts += len(campaign.Posts)
		comments += campaign.CommentCount()
	}

	campaignsStored.Set(float64(len(list)))
	postsStored.Set(float64(posts))
	commentsStored.Set(float64(comments))

	c.Logger.Debug("Collected metrics", "campaigns", len(list), "posts", posts, "comments", comments)
	return nil
}
