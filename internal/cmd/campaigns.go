package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"github.com/shubhamdevjs/Reddit-Masterming/internal/cmd/flags"
	"github.com/shubhamdevjs/Reddit-Masterming/internal/config"
	"github.com/shubhamdevjs/Reddit-Masterming/internal/core"
	"github.com/shubhamdevjs/Reddit-Masterming/internal/demo"
	"github.com/shubhamdevjs/Reddit-Masterming/internal/input"
	"github.com/shubhamdevjs/Reddit-Masterming/pkg/async"
)

var ErrMissingArgument = errors.New("missing argument")

var campaignsCmd = &cli.Command{
	Name:    "campaigns",
	Aliases: []string{"c"},
	Usage:   "Manage stored campaigns",
	Commands: []*cli.Command{
		{
			Name:  "list",
			Usage: "List stored campaigns, newest first",
			Action: func(ctx context.Context, c *cli.Command) error {
				return run(ctx, c, pal.Provide(&listRunner{out: c.Root().Writer}))
			},
		},
		{
			Name:      "show",
			Usage:     "Show a campaign calendar or a single week",
			ArgsUsage: "<id>",
			Flags:     []cli.Flag{flags.Week, flags.Format},
			Action: func(ctx context.Context, c *cli.Command) error {
				id, err := firstArg(c, "campaign id")
				if err != nil {
					return err
				}
				return run(ctx, c, pal.Provide(&showRunner{
					out:    c.Root().Writer,
					id:     id,
					week:   c.Int("week"),
					format: c.String("format"),
				}))
			},
		},
		{
			Name:  "create",
			Usage: "Generate a campaign with the backend and store it",
			Flags: []cli.Flag{
				flags.Company,
				flags.Description,
				flags.PostsPerWeek,
				flags.SubredditsFile,
				flags.KeywordsFile,
				flags.PersonasFile,
			},
			Action: func(ctx context.Context, c *cli.Command) error {
				in, err := inputFromFiles(c)
				if err != nil {
					return err
				}
				return run(ctx, c, pal.Provide(&createRunner{out: c.Root().Writer, input: in}))
			},
		},
		{
			Name:      "import",
			Usage:     "Generate a campaign from a CSV spreadsheet export",
			ArgsUsage: "<file.csv>",
			Action: func(ctx context.Context, c *cli.Command) error {
				path, err := firstArg(c, "csv file")
				if err != nil {
					return err
				}

				f, err := os.Open(path)
				if err != nil {
					return err
				}
				defer f.Close()

				in, err := input.ReadCSV(f)
				if err != nil {
					return err
				}
				return run(ctx, c, pal.Provide(&createRunner{out: c.Root().Writer, input: in}))
			},
		},
		{
			Name:      "delete",
			Usage:     "Delete stored campaigns",
			ArgsUsage: "<id> [id...]",
			Action: func(ctx context.Context, c *cli.Command) error {
				if _, err := firstArg(c, "campaign id"); err != nil {
					return err
				}
				return run(ctx, c, pal.Provide(&deleteRunner{out: c.Root().Writer, ids: c.Args().Slice()}))
			},
		},
		{
			Name:  "demo",
			Usage: "Store a sample campaign",
			Action: func(ctx context.Context, c *cli.Command) error {
				return run(ctx, c, pal.Provide(&demoRunner{out: c.Root().Writer}))
			},
		},
	},
}

func firstArg(c *cli.Command, what string) (string, error) {
	if c.Args().Len() < 1 {
		return "", fmt.Errorf("%w: %s", ErrMissingArgument, what)
	}
	return c.Args().First(), nil
}

func inputFromFiles(c *cli.Command) (input.Input, error) {
	read := func(flag string) (string, error) {
		data, err := os.ReadFile(c.String(flag))
		if err != nil {
			return "", fmt.Errorf("read %s: %w", flag, err)
		}
		return string(data), nil
	}

	subreddits, err := read("subreddits-file")
	if err != nil {
		return input.Input{}, err
	}
	keywords, err := read("keywords-file")
	if err != nil {
		return input.Input{}, err
	}
	personas, err := read("personas-file")
	if err != nil {
		return input.Input{}, err
	}

	return input.Input{
		CompanyName:        c.String("company"),
		CompanyDescription: c.String("description"),
		PostsPerWeek:       c.Int("posts-per-week"),
		SubredditsText:     subreddits,
		KeywordsText:       keywords,
		PersonasText:       personas,
	}.Normalize(), nil
}

type listRunner struct {
	Campaigns core.CampaignRepository

	out io.Writer
}

func (r *listRunner) Run(ctx context.Context) error {
	list, err := r.Campaigns.List(ctx)
	if err != nil {
		return err
	}
	return renderList(r.out, list)
}

type showRunner struct {
	Campaigns core.CampaignRepository

	out    io.Writer
	id     string
	week   int
	format string
}

func (r *showRunner) Run(ctx context.Context) error {
	campaign, err := r.Campaigns.Get(ctx, r.id)
	if err != nil {
		return err
	}
	return renderCampaign(ctx, r.out, campaign, r.week, r.format)
}

// warnEphemeral reports whether cfg points at the in-memory store, whose contents are gone once a
// one-shot command exits.
func warnEphemeral(logger *slog.Logger, cfg *config.Config) bool {
	if cfg.Store != config.StoreMemory {
		return false
	}
	logger.Warn("using the in-memory store, the campaign is discarded on exit; pass --store nats or --store postgres to keep it")
	return true
}

type createRunner struct {
	Logger    *slog.Logger
	Config    *config.Config
	Campaigns core.CampaignRepository
	Pipeline  core.PipelineClient

	out   io.Writer
	input input.Input
}

func (r *createRunner) Run(ctx context.Context) error {
	if err := r.input.Validate(); err != nil {
		return err
	}

	warnEphemeral(r.Logger, r.Config)

	campaign, err := r.Pipeline.Create(ctx, r.input.CampaignInput())
	if err != nil {
		return err
	}

	if err := r.Campaigns.Put(ctx, campaign); err != nil {
		return err
	}

	_, err = fmt.Fprintf(r.out, "created campaign %s: %d posts, %d comments\n", campaign.ID, len(campaign.Posts), campaign.CommentCount())
	return err
}

type deleteRunner struct {
	Logger    *slog.Logger
	Campaigns core.CampaignRepository
	Pipeline  core.PipelineClient

	out io.Writer
	ids []string

	mu sync.Mutex
}

// Run deletes the stored snapshots, then the backend's copies under the backend's own ids.
func (r *deleteRunner) Run(ctx context.Context) error {
	return async.AsyncEachN(ctx, 4, r.ids, func(ctx context.Context, id string) error {
		campaign, err := r.Campaigns.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("delete %s: %w", id, err)
		}

		if err := r.Campaigns.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete %s: %w", id, err)
		}

		if campaign.BackendID != "" {
			if err := r.Pipeline.Delete(ctx, campaign.BackendID); err != nil {
				r.Logger.Warn("failed to delete campaign on the backend", "id", id, "backend_id", campaign.BackendID, "error", err)
			}
		}

		r.mu.Lock()
		defer r.mu.Unlock()

		_, err = fmt.Fprintf(r.out, "deleted campaign %s\n", id)
		return err
	})
}

type demoRunner struct {
	Logger    *slog.Logger
	Config    *config.Config
	Campaigns core.CampaignRepository

	out io.Writer
}

func (r *demoRunner) Run(ctx context.Context) error {
	warnEphemeral(r.Logger, r.Config)

	campaign := demo.Campaign(time.Now())

	if err := r.Campaigns.Put(ctx, campaign); err != nil {
		return err
	}

	_, err := fmt.Fprintf(r.out, "created demo campaign %s\n", campaign.ID)
	return err
}
