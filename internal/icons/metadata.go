// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package icons

import "go.astrophena.name/cushead/internal/config"

// Entry references one generated file from the rendered output.
type Entry struct {
	NameRef  string
	FileName string
	Href     string
	Size     Size
	// Sizes is Size in the "WxH" form.
	Sizes    string
	MIMEType string
	Metatag  bool
	Content  string
	Title    string
	Verbose  bool
	// Media is the media query of a breakpoint-derived size, empty
	// otherwise.
	Media string
}

// Metadata is everything templates need to reference generated images.
type Metadata struct {
	// Head entries come from the favicon PNG families, in catalog order.
	Head          []Entry
	BrowserConfig []Entry
	Manifest      []Entry
	OpenSearch    []Entry

	// ICO, SVG and Preview are nil when the source image isn't configured.
	ICO     *Entry
	SVG     *Entry
	Preview *Entry
}

// Assemble returns the metadata for the images DeriveJobs produces with the
// same arguments.
func Assemble(c *config.Config, cat Catalog) Metadata {
	var m Metadata

	if c.FaviconICO != "" {
		// Browsers look for the icon at the site root, not in the static
		// folder.
		m.ICO = &Entry{
			NameRef:  "shortcut icon",
			FileName: ICOName,
			Href:     "/" + ICOName,
			MIMEType: "image/x-icon",
		}
	}

	if c.FaviconPNG != "" {
		seen := make(map[string]bool)
		m.Head = entries(c, cat.FaviconPNG, seen)
		m.BrowserConfig = entries(c, []Family{cat.BrowserConfig}, seen)
		m.Manifest = entries(c, []Family{cat.Manifest}, seen)
		m.OpenSearch = entries(c, []Family{cat.OpenSearch}, seen)
	}

	if c.FaviconSVG != "" {
		m.SVG = &Entry{
			NameRef:  "icon",
			FileName: SVGName,
			Href:     c.Href(SVGName),
			MIMEType: "image/svg+xml",
		}
	}

	if c.PreviewPNG != "" {
		m.Preview = &Entry{
			NameRef:  "preview",
			FileName: PreviewName,
			Href:     c.Href(PreviewName),
			Size:     PreviewSize,
			Sizes:    PreviewSize.String(),
			MIMEType: "image/png",
		}
	}

	return m
}

func entries(c *config.Config, fs []Family, seen map[string]bool) []Entry {
	var es []Entry
	for _, f := range fs {
		var content, title string
		if f.Content != nil {
			content = f.Content(c)
		}
		if f.Title != nil {
			title = f.Title(c)
		}
		sizes := Expand(f)
		// Breakpoint sizes always come last.
		bpStart := len(sizes) - len(f.Breakpoints)
		for i, s := range sizes {
			name := FileName(f, s)
			if seen[name] {
				continue
			}
			seen[name] = true
			var media string
			if i >= bpStart {
				media = f.Breakpoints[i-bpStart].Media()
			}
			es = append(es, Entry{
				NameRef:  f.NameRef,
				FileName: name,
				Href:     c.Href(name),
				Size:     s,
				Sizes:    s.String(),
				MIMEType: f.MIMEType,
				Metatag:  f.Metatag,
				Content:  content,
				Title:    title,
				Verbose:  f.Verbose,
				Media:    media,
			})
		}
	}
	return es
}
