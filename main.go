// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"path/filepath"

	"go.astrophena.name/base/cli"
	"go.astrophena.name/base/logger"
	"go.astrophena.name/cushead/internal/generator"
	"go.astrophena.name/cushead/internal/preset"
)

func main() { cli.Main(new(app)) }

type app struct {
	initDir string
	jobs    int
	serve   string
	output  string
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.StringVar(&a.initDir, "init", "", "Write a starter settings file and images into `dir` and exit.")
	fs.IntVar(&a.jobs, "jobs", 0, "Number of images processed concurrently. Defaults to the number of CPUs.")
	fs.StringVar(&a.serve, "serve", "", "Serve the output on `host:port` and regenerate it on changes.")
	fs.StringVar(&a.output, "output", "", "Write output into `dir` instead of the output directory next to the settings file.")
}

func (a *app) Run(ctx context.Context) error {
	return a.run(ctx, cli.GetEnv(ctx).Args)
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("%w: want at most one settings file", cli.ErrInvalidArgs)
	}
	if a.jobs < 0 {
		return fmt.Errorf("%w: -jobs must not be negative", cli.ErrInvalidArgs)
	}

	if a.initDir != "" {
		if len(args) > 0 || a.serve != "" {
			return fmt.Errorf("%w: -init takes no settings file and can't be combined with -serve", cli.ErrInvalidArgs)
		}
		if err := preset.Write(a.initDir); err != nil {
			return err
		}
		logger.Info(ctx, "wrote starter settings", slog.String("path", filepath.Join(a.initDir, preset.SettingsName)))
		return nil
	}

	gc := &generator.Config{
		Output:  a.output,
		Workers: a.jobs,
	}
	if len(args) == 1 {
		gc.Settings = args[0]
	}

	if a.serve != "" {
		return generator.Serve(ctx, gc, a.serve)
	}
	return generator.Generate(ctx, gc)
}
