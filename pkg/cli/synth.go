package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/MrArnoldPalmer/delivlib/pkg/cli/config"
	"github.com/MrArnoldPalmer/delivlib/pkg/domain/model"
	"github.com/MrArnoldPalmer/delivlib/pkg/usecase"
	"github.com/MrArnoldPalmer/delivlib/pkg/utils/render"
)

func cmdSynth() *cli.Command {
	var (
		pipelineCfg config.Pipelines
		outDir      string
		formatName  string
	)

	flags := append(pipelineCfg.Flags(),
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Directory the definition files are written to",
			Value:       "out",
			Destination: &outDir,
			Sources:     cli.EnvVars("DELIVLIB_OUTPUT"),
		},
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       "Output format (json or yaml)",
			Value:       "json",
			Destination: &formatName,
			Sources:     cli.EnvVars("DELIVLIB_FORMAT"),
		},
	)

	return &cli.Command{
		Name:    "synth",
		Aliases: []string{"s"},
		Usage:   "Synthesize pipeline definitions from configuration",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			format, err := render.ParseFormat(formatName)
			if err != nil {
				return err
			}

			doc, err := pipelineCfg.Load()
			if err != nil {
				return err
			}

			reqs, err := doc.Requests()
			if err != nil {
				return err
			}

			logger.Info("Synthesizing pipeline definitions",
				slog.String("config", pipelineCfg.Path),
				slog.String("output", outDir),
				slog.Int("pipelines", len(reqs)),
			)

			defs, err := usecase.NewSynth().Synthesize(ctx, reqs)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outDir, 0755); err != nil {
				return goerr.Wrap(err, "failed to create output directory",
					goerr.V("dir", outDir),
				)
			}

			for _, def := range defs {
				path := filepath.Join(outDir, render.FileName(def.Name, format))
				if err := writeDefinition(path, format, def); err != nil {
					return err
				}

				fmt.Printf("%s %s -> %s\n", color.GreenString("synthesized"), def.Name, path)
			}

			logger.Info("Synthesis complete",
				slog.Int("definitions", len(defs)),
				slog.String("synthesis_id", defs[0].SynthesisID),
			)

			return nil
		},
	}
}

func writeDefinition(path string, format render.Format, def *model.Definition) error {
	f, err := os.Create(path)
	if err != nil {
		return goerr.Wrap(err, "failed to create definition file",
			goerr.V("path", path),
		)
	}
	defer f.Close()

	if err := render.Encode(f, format, def); err != nil {
		return goerr.Wrap(err, "failed to write definition",
			goerr.V("path", path),
		)
	}

	return nil
}
