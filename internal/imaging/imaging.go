// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package imaging runs icon jobs: it copies or resizes source images into
// their destinations.
package imaging

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"go.astrophena.name/base/logger"
	"go.astrophena.name/cushead/internal/icons"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	"github.com/otiai10/copy"
	"golang.org/x/sync/errgroup"
)

// JobError is returned for every job that failed.
type JobError struct {
	Job icons.Job
	Err error
}

func (e *JobError) Error() string {
	return fmt.Sprintf("%s -> %s: %v", e.Job.Src, e.Job.Dst, e.Err)
}

func (e *JobError) Unwrap() error { return e.Err }

// Run executes jobs using up to workers goroutines. If workers is not
// positive, the number of CPUs is used.
//
// A failed job doesn't stop the others. Run returns all failures joined
// together, each one a *JobError, or nil if every job succeeded.
func Run(ctx context.Context, jobs []icons.Job, workers int) error {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var (
		g    errgroup.Group
		srcs = &sources{m: make(map[string]*source)}
		errs = make([]error, len(jobs))
	)
	g.SetLimit(workers)

	for i, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = &JobError{Job: j, Err: err}
				return nil
			}
			if err := run(ctx, srcs, j); err != nil {
				logger.Error(ctx, "image job failed",
					slog.String("src", j.Src),
					slog.String("dst", j.Dst),
					slog.Any("err", err),
				)
				errs[i] = &JobError{Job: j, Err: err}
			}
			return nil // continue with other jobs
		})
	}
	g.Wait()

	return errors.Join(errs...)
}

func run(ctx context.Context, srcs *sources, j icons.Job) error {
	if err := os.MkdirAll(filepath.Dir(j.Dst), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	if !j.Resize {
		if err := copy.Copy(j.Src, j.Dst); err != nil {
			return fmt.Errorf("copy: %w", err)
		}
		return nil
	}

	img, err := srcs.open(j.Src)
	if err != nil {
		return err
	}
	if err := Resize(img, j.Dst, j.Size); err != nil {
		return err
	}
	if j.Verbose {
		logger.Info(ctx, "generated image",
			slog.String("dst", j.Dst),
			slog.String("size", j.Size.String()),
		)
	}
	return nil
}

// Resize scales img to size and writes it to path as PNG.
func Resize(img image.Image, path string, size icons.Size) error {
	if size.Width <= 0 || size.Height <= 0 {
		return fmt.Errorf("invalid size %s", size)
	}
	if img.Bounds().Dx() == 0 || img.Bounds().Dy() == 0 {
		return fmt.Errorf("empty source image %+v", img.Bounds())
	}

	rimg := transform.Resize(img, size.Width, size.Height, transform.Lanczos)
	if err := imgio.Save(path, rimg, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

// sources decodes each source image at most once, however many jobs use it.
type sources struct {
	mu sync.Mutex
	m  map[string]*source
}

type source struct {
	once sync.Once
	img  image.Image
	err  error
}

func (s *sources) open(path string) (image.Image, error) {
	s.mu.Lock()
	src, ok := s.m[path]
	if !ok {
		src = new(source)
		s.m[path] = src
	}
	s.mu.Unlock()

	src.once.Do(func() {
		src.img, src.err = imgio.Open(path)
		if src.err != nil {
			src.err = fmt.Errorf("open: %w", src.err)
		}
	})
	return src.img, src.err
}
