package cmd

import (
	"context"
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"github.com/shubhamdevjs/Reddit-Masterming/internal/cmd/flags"
	"github.com/shubhamdevjs/Reddit-Masterming/internal/config"
	"github.com/shubhamdevjs/Reddit-Masterming/internal/core"
	"github.com/shubhamdevjs/Reddit-Masterming/internal/nats"
	"github.com/shubhamdevjs/Reddit-Masterming/internal/persistence"
	"github.com/shubhamdevjs/Reddit-Masterming/internal/persistence/campaigns"
	"github.com/shubhamdevjs/Reddit-Masterming/internal/persistence/memory"
	"github.com/shubhamdevjs/Reddit-Masterming/internal/pipeline"
	"github.com/shubhamdevjs/Reddit-Masterming/pkg/clicfg"
)

const VERSION = "0.1.0"

var cmd = &cli.Command{
	Name:    "campaignplan",
	Usage:   "Plan Reddit campaigns: generate posting plans and browse them week by week",
	Version: VERSION,
	Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
		if err := initLogger(c.String("log-level")); err != nil {
			return ctx, err
		}
		return ctx, nil
	},
	Flags: []cli.Flag{
		flags.LogLevel,
		flags.Store,
		flags.NATSUrl,
		flags.InitNATS,
		flags.NATSBucket,
		flags.DatabaseURL,
		flags.PipelineURL,
		flags.PipelineTimeout,
		flags.PipelineRetries,
	},
	Commands: []*cli.Command{
		serveCmd,
		campaignsCmd,
	},
}

func Run() {
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run starts a container with the given services on top of the campaign store and the backend
// client, and blocks until it stops.
func run(ctx context.Context, c *cli.Command, services ...pal.ServiceDef) error {
	cfg := config.Config{}
	if err := clicfg.ParseFlags(c, &cfg); err != nil {
		return err
	}

	services = append(services,
		pal.Provide(&cfg),
		storeService(&cfg),
		pal.Provide[core.CampaignRepository](&campaigns.Repository{}),
		pal.Provide[core.PipelineClient](&pipeline.Client{}),
	)

	return pal.New(services...).
		InjectSlog().
		InitTimeout(5*time.Second).
		HealthCheckTimeout(1*time.Second).
		ShutdownTimeout(10*time.Second).
		Run(ctx, syscall.SIGINT, syscall.SIGTERM)
}

func storeService(cfg *config.Config) pal.ServiceDef {
	switch cfg.Store {
	case config.StoreNATS:
		return nats.Provide()
	case config.StorePostgres:
		return pal.Provide[core.KeyValueClient](&persistence.DB{})
	default:
		return pal.Provide[core.KeyValueClient](memory.NewKV())
	}
}
