// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package render

import (
	"go.astrophena.name/cushead/internal/config"
	"go.astrophena.name/cushead/internal/icons"
)

// manifest is a web app manifest.
// See https://developer.mozilla.org/en-US/docs/Web/Manifest.
type manifest struct {
	Name                      string               `json:"name,omitempty"`
	ShortName                 string               `json:"short_name,omitempty"`
	Description               string               `json:"description,omitempty"`
	Dir                       string               `json:"dir,omitempty"`
	Lang                      string               `json:"lang,omitempty"`
	StartURL                  string               `json:"start_url,omitempty"`
	Scope                     string               `json:"scope,omitempty"`
	Display                   string               `json:"display,omitempty"`
	Orientation               string               `json:"orientation,omitempty"`
	BackgroundColor           string               `json:"background_color,omitempty"`
	ThemeColor                string               `json:"theme_color,omitempty"`
	Icons                     []manifestIcon       `json:"icons,omitempty"`
	RelatedApplications       []config.Application `json:"related_applications,omitempty"`
	PreferRelatedApplications bool                 `json:"prefer_related_applications,omitempty"`
}

type manifestIcon struct {
	Src   string `json:"src"`
	Sizes string `json:"sizes"`
	Type  string `json:"type,omitempty"`
}

func newManifest(c *config.Config, m icons.Metadata) *manifest {
	mf := &manifest{
		Name:                c.Title,
		ShortName:           c.Title,
		Description:         c.Description,
		Dir:                 c.Dir,
		Lang:                c.Language,
		StartURL:            c.StartURL,
		Scope:               c.Scope,
		Display:             c.Display,
		Orientation:         c.Orientation,
		BackgroundColor:     c.BackgroundColor,
		ThemeColor:          c.BackgroundColor,
		RelatedApplications: c.Applications,
		// "web" or no platform means the site itself is the preferred
		// application.
		PreferRelatedApplications: c.Platform != "" && c.Platform != "web" && len(c.Applications) > 0,
	}
	if c.Territory != "" {
		mf.Lang += "-" + c.Territory
	}
	for _, e := range m.Manifest {
		mf.Icons = append(mf.Icons, manifestIcon{
			Src:   e.Href,
			Sizes: e.Sizes,
			Type:  e.MIMEType,
		})
	}
	return mf
}
