// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package icons

import (
	"fmt"
	"path/filepath"

	"go.astrophena.name/cushead/internal/config"
)

// Fixed names of files that don't belong to a family.
const (
	ICOName     = "favicon.ico"
	SVGName     = "favicon.svg"
	PreviewName = "preview-500x500.png"
)

// PreviewSize is the size of the social media preview image.
var PreviewSize = Size{Width: 500, Height: 500}

// Job is a single image transformation.
type Job struct {
	Src string
	Dst string
	// Resize is false when the source is copied verbatim.
	Resize bool
	// Size is the target size. Only meaningful when Resize is true.
	Size Size
	// Verbose is inherited from the family that produced the job.
	Verbose bool
}

// FileName returns the name of the file generated for a family at size s.
func FileName(f Family, s Size) string {
	return fmt.Sprintf("%s-%s.png", f.FileName, s)
}

// DeriveJobs returns the image jobs needed for settings c and catalog cat.
//
// A target whose source image is not configured contributes no jobs. Source
// files are not checked for existence; that is left to whoever runs the
// jobs. Every job has a distinct destination: when two families produce the
// same file, only the first one is kept.
func DeriveJobs(c *config.Config, cat Catalog) []Job {
	var jobs []Job

	if c.FaviconICO != "" {
		jobs = append(jobs, Job{
			Src: source(c, c.FaviconICO),
			Dst: filepath.Join(c.OutputFolderPath, ICOName),
		})
	}

	if c.FaviconPNG != "" {
		src := source(c, c.FaviconPNG)
		seen := make(map[string]bool)
		for _, f := range cat.Families() {
			for _, s := range Expand(f) {
				dst := filepath.Join(c.StaticFolderPath, FileName(f, s))
				if seen[dst] {
					continue
				}
				seen[dst] = true
				jobs = append(jobs, Job{
					Src:     src,
					Dst:     dst,
					Resize:  true,
					Size:    s,
					Verbose: f.Verbose,
				})
			}
		}
	}

	if c.FaviconSVG != "" {
		jobs = append(jobs, Job{
			Src: source(c, c.FaviconSVG),
			Dst: filepath.Join(c.StaticFolderPath, SVGName),
		})
	}

	if c.PreviewPNG != "" {
		jobs = append(jobs, Job{
			Src:    source(c, c.PreviewPNG),
			Dst:    filepath.Join(c.StaticFolderPath, PreviewName),
			Resize: true,
			Size:   PreviewSize,
		})
	}

	return jobs
}

func source(c *config.Config, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.MainFolderPath, name)
}
