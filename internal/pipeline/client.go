package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Jeffail/gabs"
	"resty.dev/v3"

	"github.com/shubhamdevjs/Reddit-Masterming/internal/config"
	"github.com/shubhamdevjs/Reddit-Masterming/internal/core"
)

const (
	createPath = "/api/campaigns/create/v2"
	deletePath = "/api/campaigns/{id}"
	healthPath = "/health"
)

var ErrBackend = errors.New("pipeline backend error")

// Client talks to the content generation backend. Generating a campaign takes minutes, the
// request timeout is configured accordingly.
type Client struct {
	Logger *slog.Logger
	Config *config.Config

	client *resty.Client
	now    func() time.Time
}

func (c *Client) Init(_ context.Context) error {
	c.Logger = c.Logger.With("component", "pipeline.Client")

	c.client = resty.NewWithTransportSettings(&resty.TransportSettings{
		DialerTimeout:         5 * time.Second,
		DialerKeepAlive:       30 * time.Second,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}).
		SetBaseURL(c.Config.PipelineURL).
		SetTimeout(c.Config.PipelineTimeout).
		SetRetryCount(c.Config.PipelineRetries).
		AddResponseMiddleware(metricMiddleware)

	if c.now == nil {
		c.now = time.Now
	}

	return nil
}

func (c *Client) Shutdown(_ context.Context) error {
	return c.client.Close()
}

func (c *Client) Create(ctx context.Context, input core.CampaignInput) (core.Campaign, error) {
	c.Logger.Info("requesting campaign generation", "company", input.CompanyName, "posts_per_week", input.PostsPerWeek)

	res, err := c.r(ctx, createPath).
		SetBody(input).
		Post(createPath)
	if err != nil {
		return core.Campaign{}, fmt.Errorf("%w: %w", ErrBackend, err)
	}
	if res.IsError() {
		return core.Campaign{}, backendError(res)
	}

	campaign, err := decodeCampaign(res.Bytes(), input, c.now())
	if err != nil {
		return core.Campaign{}, err
	}

	c.Logger.Info("campaign generated", "id", campaign.ID, "posts", len(campaign.Posts), "comments", campaign.CommentCount())
	return campaign, nil
}

// Delete removes the campaign's generated files on the backend. Unknown campaigns are ignored.
func (c *Client) Delete(ctx context.Context, id string) error {
	res, err := c.r(ctx, deletePath).
		SetPathParam("id", id).
		Delete(deletePath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBackend, err)
	}
	if res.StatusCode() == http.StatusNotFound {
		c.Logger.Debug("campaign unknown to the backend", "id", id)
		return nil
	}
	if res.IsError() {
		return backendError(res)
	}
	return nil
}

func (c *Client) Health(ctx context.Context) error {
	res, err := c.r(ctx, healthPath).Get(healthPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBackend, err)
	}
	if res.IsError() {
		return backendError(res)
	}
	return nil
}

func (c *Client) r(ctx context.Context, route string) *resty.Request {
	return c.client.R().WithContext(withRoute(ctx, route))
}

// backendError extracts FastAPI's {"detail": ...} message when there is one.
func backendError(res *resty.Response) error {
	detail := http.StatusText(res.StatusCode())
	if body, err := gabs.ParseJSON(res.Bytes()); err == nil {
		if d := scalar(body.Path("detail")); d != "" {
			detail = d
		}
	}
	return fmt.Errorf("%w: %d %s", ErrBackend, res.StatusCode(), detail)
}
