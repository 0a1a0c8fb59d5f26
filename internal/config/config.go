// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package config loads and holds cushead settings.
//
// A settings file is a JSON document split into sections:
//
//	{
//	  "required": {"static_url": "/static/"},
//	  "recommended": {
//	    "favicon_ico": "./favicon_ico_16px.ico",
//	    "favicon_png": "./favicon_png_1600px.png",
//	    "favicon_svg": "./favicon_svg_scalable.svg",
//	    "preview_png": "./preview_png_500px.png"
//	  },
//	  "default": {"general": {...}, "basic": {...}, "social_media": {...}},
//	  "progressive_web_apps": {...}
//	}
//
// Unknown keys are ignored. Source image paths are relative to the directory
// holding the settings file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Possible errors, used in tests.
var (
	ErrParse            = errors.New("failed to parse settings")
	ErrMissingStaticURL = errors.New("missing required setting static_url")
)

// Config is the validated, flattened form of a settings file. It is not
// modified after Load returns.
type Config struct {
	StaticURL string

	FaviconICO string
	FaviconPNG string
	FaviconSVG string
	PreviewPNG string

	ContentType   string
	XUACompatible string
	Viewport      string
	Language      string
	Territory     string
	CleanURL      string
	Protocol      string
	Robots        string

	Title           string
	Description     string
	Subject         string
	Keywords        string
	BackgroundColor string
	Author          string

	FacebookAppID string
	TwitterUser   string
	TwitterUserID string

	Dir          string
	StartURL     string
	Orientation  string
	Scope        string
	Display      string
	Platform     string
	Applications []Application

	// MainFolderPath is the directory source images are resolved against.
	MainFolderPath string
	// OutputFolderPath is where index.html, manifest.json and the other
	// rendered files are written.
	OutputFolderPath string
	// StaticFolderPath is where generated images are written. It is the
	// output folder joined with the path of StaticURL.
	StaticFolderPath string
}

// Application is a native application related to the site, listed in the
// web app manifest.
type Application struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
	ID       string `json:"id,omitempty"`
}

// file mirrors the on-disk layout of a settings file.
type file struct {
	Comment  map[string]string `json:"comment"`
	Required struct {
		StaticURL string `json:"static_url"`
	} `json:"required"`
	Recommended struct {
		FaviconICO string `json:"favicon_ico"`
		FaviconPNG string `json:"favicon_png"`
		FaviconSVG string `json:"favicon_svg"`
		PreviewPNG string `json:"preview_png"`
	} `json:"recommended"`
	Default struct {
		General struct {
			ContentType   string `json:"content-type"`
			XUACompatible string `json:"X-UA-Compatible"`
			Viewport      string `json:"viewport"`
			Language      string `json:"language"`
			Territory     string `json:"territory"`
			CleanURL      string `json:"clean_url"`
			Protocol      string `json:"protocol"`
			Robots        string `json:"robots"`
		} `json:"general"`
		Basic struct {
			Title           string `json:"title"`
			Description     string `json:"description"`
			Subject         string `json:"subject"`
			Keywords        string `json:"keywords"`
			BackgroundColor string `json:"background_color"`
			Author          string `json:"author"`
		} `json:"basic"`
		SocialMedia struct {
			FacebookAppID string `json:"facebook_app_id"`
			TwitterUser   string `json:"twitter_user_@"`
			TwitterUserID string `json:"twitter_user_id"`
		} `json:"social_media"`
	} `json:"default"`
	PWA struct {
		Dir          string        `json:"dir"`
		StartURL     string        `json:"start_url"`
		Orientation  string        `json:"orientation"`
		Scope        string        `json:"scope"`
		Display      string        `json:"display"`
		Platform     string        `json:"platform"`
		Applications []Application `json:"applications"`
	} `json:"progressive_web_apps"`
}

// Load reads the settings file at path. If outDir is not empty, it is used
// as the output folder instead of the default "output" directory next to the
// settings file.
func Load(path, outDir string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if outDir != "" {
		if outDir, err = filepath.Abs(outDir); err != nil {
			return nil, err
		}
	}
	c, err := Parse(b, filepath.Dir(abs), outDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse parses the contents of a settings file. mainDir is the directory
// source images are resolved against.
func Parse(b []byte, mainDir, outDir string) (*Config, error) {
	var f file
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	g, bs, sm, pwa := f.Default.General, f.Default.Basic, f.Default.SocialMedia, f.PWA
	c := &Config{
		StaticURL:        f.Required.StaticURL,
		FaviconICO:       f.Recommended.FaviconICO,
		FaviconPNG:       f.Recommended.FaviconPNG,
		FaviconSVG:       f.Recommended.FaviconSVG,
		PreviewPNG:       f.Recommended.PreviewPNG,
		ContentType:      g.ContentType,
		XUACompatible:    g.XUACompatible,
		Viewport:         g.Viewport,
		Language:         g.Language,
		Territory:        g.Territory,
		CleanURL:         g.CleanURL,
		Protocol:         g.Protocol,
		Robots:           g.Robots,
		Title:            bs.Title,
		Description:      bs.Description,
		Subject:          bs.Subject,
		Keywords:         bs.Keywords,
		BackgroundColor:  bs.BackgroundColor,
		Author:           bs.Author,
		FacebookAppID:    sm.FacebookAppID,
		TwitterUser:      sm.TwitterUser,
		TwitterUserID:    sm.TwitterUserID,
		Dir:              pwa.Dir,
		StartURL:         pwa.StartURL,
		Orientation:      pwa.Orientation,
		Scope:            pwa.Scope,
		Display:          pwa.Display,
		Platform:         pwa.Platform,
		Applications:     pwa.Applications,
		MainFolderPath:   mainDir,
		OutputFolderPath: outDir,
	}
	if c.StaticURL == "" {
		return nil, ErrMissingStaticURL
	}
	c.setDefaults()
	return c, nil
}

func (c *Config) setDefaults() {
	if c.ContentType == "" {
		c.ContentType = "text/html; charset=utf-8"
	}
	if c.XUACompatible == "" {
		c.XUACompatible = "ie=edge"
	}
	if c.Viewport == "" {
		c.Viewport = "width=device-width, initial-scale=1"
	}
	if c.Language == "" {
		c.Language = "en"
	}
	if c.Protocol == "" {
		c.Protocol = "https://"
	}
	if c.Robots == "" {
		c.Robots = "index, follow"
	}
	if c.StartURL == "" {
		c.StartURL = "/"
	}
	if c.Scope == "" {
		c.Scope = "/"
	}

	if c.OutputFolderPath == "" {
		c.OutputFolderPath = filepath.Join(c.MainFolderPath, "output")
	}
	if c.StaticFolderPath == "" {
		c.StaticFolderPath = filepath.Join(c.OutputFolderPath, filepath.FromSlash(staticDir(c.StaticURL)))
	}
}

// staticDir returns the path component of a static URL, which may be a
// plain path ("/static/") or a full URL ("https://cdn.example.com/static").
func staticDir(staticURL string) string {
	p := staticURL
	if i := strings.Index(p, "://"); i != -1 {
		p = p[i+3:]
		if j := strings.Index(p, "/"); j != -1 {
			p = p[j:]
		} else {
			p = "/"
		}
	}
	return strings.Trim(path.Clean("/"+p), "/")
}

// Href returns the URL a generated static file with the given name is
// served from.
func (c *Config) Href(name string) string {
	return strings.TrimSuffix(c.StaticURL, "/") + "/" + name
}

// AbsoluteURL turns a site-relative href into an absolute URL using the
// configured protocol and clean URL. It returns href unchanged if it is
// already absolute or no clean URL is configured.
func (c *Config) AbsoluteURL(href string) string {
	if strings.Contains(href, "://") || c.CleanURL == "" {
		return href
	}
	return c.Protocol + strings.TrimSuffix(c.CleanURL, "/") + "/" + strings.TrimPrefix(href, "/")
}

// Locale returns the language and territory in the og:locale form, e.g.
// "en_US".
func (c *Config) Locale() string {
	if c.Territory == "" {
		return c.Language
	}
	return c.Language + "_" + c.Territory
}
