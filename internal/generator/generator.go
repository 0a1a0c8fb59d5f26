// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Package generator generates a site head, icons and related files from a
settings file.

# Output

For a settings file in dir, the following is written to dir/output (or the
folder passed in [Config.Output]):

	index.html         Page whose <head> references everything below.
	manifest.json      Web app manifest.
	browserconfig.xml  Microsoft tiles.
	opensearch.xml     OpenSearch descriptor.
	robots.txt         Robots rules.
	favicon.ico        Copy of favicon_ico.
	static/            Resized favicon_png variants, favicon.svg and the
	                   social media preview. The folder follows static_url.

Settings with an empty image key simply produce no files (and no tags) for
that image.
*/
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"go.astrophena.name/base/logger"
	"go.astrophena.name/cushead/internal/config"
	"go.astrophena.name/cushead/internal/icons"
	"go.astrophena.name/cushead/internal/imaging"
	"go.astrophena.name/cushead/internal/render"
)

// ErrImages is returned when some images could not be generated. Rendered
// files are still written in that case.
var ErrImages = errors.New("failed to generate some images")

// Config represents a generation configuration.
type Config struct {
	// Settings is the path to the settings file. If empty, settings.json in
	// the current directory is used.
	Settings string
	// Output overrides the output folder. If empty, the output directory
	// next to the settings file is used.
	Output string
	// Workers is the number of images processed concurrently. If zero, the
	// number of CPUs is used.
	Workers int
}

func (c *Config) setDefaults() {
	if c.Settings == "" {
		c.Settings = "settings.json"
	}
}

// Generate loads the settings and writes all output files.
func Generate(ctx context.Context, gc *Config) error {
	gc.setDefaults()

	c, err := config.Load(gc.Settings, gc.Output)
	if err != nil {
		return err
	}

	cat := icons.DefaultCatalog()
	jobs := icons.DeriveJobs(c, cat)
	logger.Info(ctx, "generating images",
		slog.Int("jobs", len(jobs)),
		slog.String("static", c.StaticFolderPath),
	)
	imgErr := imaging.Run(ctx, jobs, gc.Workers)

	files, err := render.Render(c, icons.Assemble(c, cat))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.OutputFolderPath, 0o755); err != nil {
		return err
	}
	for _, f := range files {
		p := filepath.Join(c.OutputFolderPath, f.Name)
		if err := os.WriteFile(p, f.Data, 0o644); err != nil {
			return err
		}
	}
	logger.Info(ctx, "wrote files",
		slog.Int("count", len(files)),
		slog.String("output", c.OutputFolderPath),
	)

	if imgErr != nil {
		return fmt.Errorf("%w: %w", ErrImages, imgErr)
	}
	return nil
}
