// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package render renders the text files cushead produces from settings and
// icon metadata.
//
// Templates may mark regions with
//
//	{{/* oneline */}} ... {{/* endoneline */}}
//
// Inside such a region whitespace between tags is removed when the template
// is parsed. Template actions are left untouched, so whitespace they produce
// is kept.
package render

import (
	"bytes"
	"embed"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html/template"
	"strings"
	ttemplate "text/template"

	"go.astrophena.name/cushead/internal/config"
	"go.astrophena.name/cushead/internal/icons"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
	mjson "github.com/tdewolff/minify/v2/json"
	mxml "github.com/tdewolff/minify/v2/xml"
)

// Names of rendered files, relative to the output folder.
const (
	IndexName         = "index.html"
	ManifestName      = "manifest.json"
	BrowserConfigName = "browserconfig.xml"
	OpenSearchName    = "opensearch.xml"
	RobotsName        = "robots.txt"
)

//go:embed templates
var templatesFS embed.FS

// File is a rendered file.
type File struct {
	Name string
	Data []byte
}

// data is passed to every template.
type data struct {
	Config *config.Config
	Icons  icons.Metadata

	ManifestName      string
	BrowserConfigName string
	OpenSearchName    string
}

// Indexable reports whether robots are allowed to index the site.
func (d *data) Indexable() bool {
	return !strings.Contains(strings.ToLower(d.Config.Robots), "noindex")
}

// Render renders all files for settings c and icon metadata m.
func Render(c *config.Config, m icons.Metadata) ([]File, error) {
	d := &data{
		Config:            c,
		Icons:             m,
		ManifestName:      ManifestName,
		BrowserConfigName: BrowserConfigName,
		OpenSearchName:    OpenSearchName,
	}
	mn := newMin()

	var files []File

	index, err := renderHTML(IndexName, c, d)
	if err != nil {
		return nil, err
	}
	if index, err = mn.Bytes("text/html", index); err != nil {
		return nil, fmt.Errorf("%s: %w", IndexName, err)
	}
	files = append(files, File{Name: IndexName, Data: index})

	mf, err := json.Marshal(newManifest(c, m))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ManifestName, err)
	}
	if mf, err = mn.Bytes("application/json", mf); err != nil {
		return nil, fmt.Errorf("%s: %w", ManifestName, err)
	}
	files = append(files, File{Name: ManifestName, Data: mf})

	for _, name := range []string{BrowserConfigName, OpenSearchName} {
		b, err := renderText(name, c, d)
		if err != nil {
			return nil, err
		}
		if b, err = mn.Bytes("text/xml", b); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		files = append(files, File{Name: name, Data: b})
	}

	robots, err := renderText(RobotsName, c, d)
	if err != nil {
		return nil, err
	}
	files = append(files, File{Name: RobotsName, Data: robots})

	return files, nil
}

func funcs(c *config.Config) map[string]any {
	return map[string]any{
		"abs":  c.AbsoluteURL,
		"tile": tileName,
		"xml":  escapeXML,
	}
}

func readTemplate(name string) (string, error) {
	b, err := templatesFS.ReadFile("templates/" + name)
	if err != nil {
		return "", err
	}
	return oneline(string(b)), nil
}

func renderHTML(name string, c *config.Config, d *data) ([]byte, error) {
	src, err := readTemplate(name)
	if err != nil {
		return nil, err
	}
	tpl, err := template.New(name).Funcs(funcs(c)).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, d); err != nil {
		return nil, fmt.Errorf("%s: failed to execute template: %w", name, err)
	}
	return buf.Bytes(), nil
}

func renderText(name string, c *config.Config, d *data) ([]byte, error) {
	src, err := readTemplate(name)
	if err != nil {
		return nil, err
	}
	tpl, err := ttemplate.New(name).Funcs(funcs(c)).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, d); err != nil {
		return nil, fmt.Errorf("%s: failed to execute template: %w", name, err)
	}
	return buf.Bytes(), nil
}

// tileName returns the browserconfig element name for a tile of size s.
func tileName(s icons.Size) string {
	if s.Width != s.Height {
		return "wide" + s.String() + "logo"
	}
	return "square" + s.String() + "logo"
}

func escapeXML(s string) (string, error) {
	var sb strings.Builder
	if err := xml.EscapeText(&sb, []byte(s)); err != nil {
		return "", err
	}
	return sb.String(), nil
}

type min struct {
	m *minify.M
}

func newMin() *min {
	m := minify.New()
	m.Add("text/html", &html.Minifier{
		KeepDocumentTags:    true,
		KeepDefaultAttrVals: true,
		KeepEndTags:         true,
		KeepQuotes:          true,
	})
	m.AddFunc("application/json", mjson.Minify)
	m.AddFunc("text/xml", mxml.Minify)
	return &min{m: m}
}

func (m *min) Bytes(mediaType string, b []byte) ([]byte, error) {
	return m.m.Bytes(mediaType, b)
}
