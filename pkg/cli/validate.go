package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fatih/color"
	"github.com/m-mizutani/ctxlog"
	"github.com/urfave/cli/v3"

	"github.com/MrArnoldPalmer/delivlib/pkg/cli/config"
	"github.com/MrArnoldPalmer/delivlib/pkg/source"
)

func cmdValidate() *cli.Command {
	var pipelineCfg config.Pipelines

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate configuration and print resolved repository sources",
		Flags:   pipelineCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			doc, err := pipelineCfg.Load()
			if err != nil {
				return err
			}

			reqs, err := doc.Requests()
			if err != nil {
				return err
			}

			for _, req := range reqs {
				src := req.Source
				build := src.CreateBuildSource(ctx, req.Webhook, req.Branch)

				fmt.Println(color.CyanString(req.Name))
				fmt.Printf("  repository:  %s\n", src.Describe())
				fmt.Printf("  clone http:  %s\n", src.RepositoryURLHTTP())
				fmt.Printf("  clone ssh:   %s\n", src.RepositoryURLSSH())
				fmt.Printf("  branch:      %s\n", req.Branch)
				fmt.Printf("  badge:       %t\n", src.AllowsBadge())
				fmt.Printf("  writable:    %t\n", source.IsWritable(src))
				fmt.Printf("  webhook:     %t (%d filter groups)\n", build.Webhook, len(build.FilterGroups))
			}

			logger.Info("Configuration is valid",
				slog.String("config", pipelineCfg.Path),
				slog.Int("pipelines", len(reqs)),
			)

			return nil
		},
	}
}
