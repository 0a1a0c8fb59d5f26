// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package imaging

import (
	"context"
	"errors"
	"image"
	"image/color"
	_ "image/png"
	"os"
	"path/filepath"
	"testing"

	"go.astrophena.name/base/testutil"
	"go.astrophena.name/cushead/internal/icons"

	"github.com/anthonynsimon/bild/imgio"
)

func writeSource(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 0x80, A: 0xff})
		}
	}
	if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
		t.Fatal(err)
	}
}

func decodeSize(t *testing.T, path string) icons.Size {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	ic, _, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	return icons.Size{Width: ic.Width, Height: ic.Height}
}

func TestRun(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	writeSource(t, filepath.Join(src, "fav.png"), 64, 64)
	const svg = `<svg xmlns="http://www.w3.org/2000/svg"/>`
	if err := os.WriteFile(filepath.Join(src, "fav.svg"), []byte(svg), 0o644); err != nil {
		t.Fatal(err)
	}

	jobs := []icons.Job{
		{Src: filepath.Join(src, "fav.png"), Dst: filepath.Join(dst, "static", "favicon-16x16.png"), Resize: true, Size: icons.Size{Width: 16, Height: 16}},
		{Src: filepath.Join(src, "fav.png"), Dst: filepath.Join(dst, "static", "ms-icon-310x150.png"), Resize: true, Size: icons.Size{Width: 310, Height: 150}, Verbose: true},
		{Src: filepath.Join(src, "fav.svg"), Dst: filepath.Join(dst, "static", "nested", "favicon.svg")},
	}
	if err := Run(context.Background(), jobs, 2); err != nil {
		t.Fatal(err)
	}

	testutil.AssertEqual(t, decodeSize(t, jobs[0].Dst), icons.Size{Width: 16, Height: 16})
	testutil.AssertEqual(t, decodeSize(t, jobs[1].Dst), icons.Size{Width: 310, Height: 150})

	b, err := os.ReadFile(jobs[2].Dst)
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, string(b), svg)
}

func TestRunContinuesAfterFailure(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	writeSource(t, filepath.Join(src, "fav.png"), 32, 32)
	if err := os.WriteFile(filepath.Join(src, "broken.png"), []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	jobs := []icons.Job{
		{Src: filepath.Join(src, "missing.png"), Dst: filepath.Join(dst, "a-16x16.png"), Resize: true, Size: icons.Size{Width: 16, Height: 16}},
		{Src: filepath.Join(src, "fav.png"), Dst: filepath.Join(dst, "b-16x16.png"), Resize: true, Size: icons.Size{Width: 16, Height: 16}},
		{Src: filepath.Join(src, "missing.ico"), Dst: filepath.Join(dst, "favicon.ico")},
		{Src: filepath.Join(src, "broken.png"), Dst: filepath.Join(dst, "c-16x16.png"), Resize: true, Size: icons.Size{Width: 16, Height: 16}},
		{Src: filepath.Join(src, "fav.png"), Dst: filepath.Join(dst, "d-24x24.png"), Resize: true, Size: icons.Size{Width: 24, Height: 24}},
	}
	err := Run(context.Background(), jobs, 1)
	if err == nil {
		t.Fatal("want error, got nil")
	}

	var je *JobError
	if !errors.As(err, &je) {
		t.Fatalf("want *JobError, got %T", err)
	}

	failed := make(map[string]bool)
	for _, e := range err.(interface{ Unwrap() []error }).Unwrap() {
		failed[e.(*JobError).Job.Dst] = true
	}
	testutil.AssertEqual(t, len(failed), 3)
	for _, i := range []int{0, 2, 3} {
		if !failed[jobs[i].Dst] {
			t.Fatalf("job %d should have failed", i)
		}
	}

	testutil.AssertEqual(t, decodeSize(t, jobs[1].Dst), icons.Size{Width: 16, Height: 16})
	testutil.AssertEqual(t, decodeSize(t, jobs[4].Dst), icons.Size{Width: 24, Height: 24})
}

func TestRunCanceled(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	writeSource(t, filepath.Join(src, "fav.png"), 8, 8)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs := []icons.Job{
		{Src: filepath.Join(src, "fav.png"), Dst: filepath.Join(dst, "favicon-16x16.png"), Resize: true, Size: icons.Size{Width: 16, Height: 16}},
	}
	if err := Run(ctx, jobs, 0); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
	if _, err := os.Stat(jobs[0].Dst); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("canceled job wrote %s", jobs[0].Dst)
	}
}

func TestResizeInvalidSize(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if err := Resize(img, filepath.Join(t.TempDir(), "x.png"), icons.Size{}); err == nil {
		t.Fatal("want error for zero size")
	}
}
