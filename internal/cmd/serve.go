package cmd

import (
	"context"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"
	"github.com/zhulik/pal/inspect"

	"github.com/shubhamdevjs/Reddit-Masterming/internal/api"
	"github.com/shubhamdevjs/Reddit-Masterming/internal/cmd/flags"
	"github.com/shubhamdevjs/Reddit-Masterming/internal/metrics"
)

var serveCmd = &cli.Command{
	Name:  "serve",
	Usage: "Serve the campaign API, metrics and health endpoints",
	Flags: []cli.Flag{
		flags.APIAddr,
		flags.MetricsAddr,
		flags.Inspect,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c, serveServices(c.Bool("inspect"))...)
	},
}

func serveServices(withInspect bool) []pal.ServiceDef {
	services := []pal.ServiceDef{
		pal.Provide(&api.Server{}),
		pal.Provide(&metrics.HTTPServer{}),
		pal.Provide(&metrics.Collector{}),
	}

	if withInspect {
		services = append(services, inspect.Provide()...)
	}

	return services
}
