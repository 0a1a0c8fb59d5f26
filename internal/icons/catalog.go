// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Package icons turns settings into the list of icon images to generate and
the metadata needed to reference them.

Icons are grouped into families. A family has a name_ref (the rel or name
attribute the output refers to it by), a base file name and one or more
sizing rules. Every size of every family becomes one [Job] for the image
resizer and one [Entry] for the templates.

Nothing here touches the filesystem: [DeriveJobs] and [Assemble] are pure
and return the same result for the same settings.
*/
package icons

import (
	"fmt"

	"go.astrophena.name/cushead/internal/config"
)

// Text computes a family attribute from the settings at assembly time.
type Text func(c *config.Config) string

// Family describes a group of icons sharing a purpose.
type Family struct {
	NameRef  string
	FileName string

	Square      []int
	NonSquare   []Size
	Breakpoints []Breakpoint

	// MIMEType is the type attribute of the tag referencing the icon, if any.
	MIMEType string
	// Metatag reports whether the icon is referenced from a <meta> element
	// instead of a <link> element.
	Metatag bool
	Content Text
	Title   Text
	// Verbose families log every generated size.
	Verbose bool
}

// Catalog is the full set of icon families, keyed by the output that
// references them.
type Catalog struct {
	FaviconPNG    []Family
	BrowserConfig Family
	Manifest      Family
	OpenSearch    Family
}

// Families returns all families of the catalog in generation order.
func (cat Catalog) Families() []Family {
	fs := make([]Family, 0, len(cat.FaviconPNG)+3)
	fs = append(fs, cat.FaviconPNG...)
	return append(fs, cat.BrowserConfig, cat.Manifest, cat.OpenSearch)
}

// DefaultCatalog returns the families cushead generates.
func DefaultCatalog() Catalog {
	return Catalog{
		FaviconPNG: []Family{
			{
				NameRef:  "icon",
				FileName: "favicon",
				Square: []int{
					16, 24, 32, 48, 57, 60, 64, 70, 72, 76, 96,
					114, 120, 128, 144, 150, 152, 167, 180, 192,
					195, 196, 228, 310,
				},
				MIMEType: "image/png",
				Verbose:  true,
			},
			// Windows.
			{
				NameRef:  "msapplication-TileImage",
				FileName: "ms-icon",
				Square:   []int{144},
				Metatag:  true,
			},
			// Apple touch icon without sizes attribute, picked by default.
			{
				NameRef:  "apple-touch-icon",
				FileName: "apple-touch-icon",
				Square:   []int{57},
			},
			{
				NameRef:  "apple-touch-icon",
				FileName: "apple-touch-icon",
				Square:   []int{57, 60, 72, 76, 114, 120, 144, 152, 167, 180, 1024},
				Verbose:  true,
			},
			{
				NameRef:  "apple-touch-startup-image",
				FileName: "launch",
				Square:   []int{768},
			},
			// Based on
			// https://css-tricks.com/snippets/css/media-queries-for-standard-devices/.
			{
				NameRef:  "apple-touch-startup-image",
				FileName: "launch",
				Breakpoints: []Breakpoint{
					{38, 42},
					{320, 375},
					{375, 414},
					{414, 480},
					{480, 568},
					{568, 667},
					{667, 736},
					{736, 812},
					{812, 834},
					{1024, 1112},
					{1112, 1200},
					{1200, 1366},
					{1366, 1600},
				},
			},
			// Mac fluid icon.
			{
				NameRef:  "fluid-icon",
				FileName: "fluidicon",
				Square:   []int{512},
				Title:    func(c *config.Config) string { return c.Title },
			},
			// Yandex browser tableau.
			{
				NameRef:  "yandex-tableau-widget",
				FileName: "yandex",
				Square:   []int{120},
				Metatag:  true,
				Content: func(c *config.Config) string {
					return fmt.Sprintf("logo=%s, color=%s", c.AbsoluteURL(c.Href("yandex-120x120.png")), c.BackgroundColor)
				},
			},
		},
		BrowserConfig: Family{
			NameRef:   "browserconfig",
			FileName:  "ms-icon",
			Square:    []int{30, 44, 70, 150, 310},
			NonSquare: []Size{{Width: 310, Height: 150}},
		},
		Manifest: Family{
			NameRef:  "manifest",
			FileName: "android-icon",
			Square:   []int{36, 48, 72, 96, 144, 192, 256, 384, 512},
			MIMEType: "image/png",
			Verbose:  true,
		},
		OpenSearch: Family{
			NameRef:  "opensearch",
			FileName: "opensearch",
			Square:   []int{16},
			MIMEType: "image/png",
			Verbose:  true,
		},
	}
}
