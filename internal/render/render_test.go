// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package render

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"strings"
	"testing"

	"go.astrophena.name/base/testutil"
	"go.astrophena.name/cushead/internal/config"
	"go.astrophena.name/cushead/internal/icons"

	"github.com/PuerkitoBio/goquery"
)

func TestOneline(t *testing.T) {
	cases := map[string]struct {
		in, want string
	}{
		"no region": {
			in:   "<a>\n  <b>\n</a>",
			want: "<a>\n  <b>\n</a>",
		},
		"strips between tags": {
			in:   "<head>{{/* oneline */}}\n  <meta a>\n  <meta b>\n{{/* endoneline */}}</head>",
			want: "<head><meta a><meta b></head>",
		},
		"keeps actions": {
			in:   "{{/* oneline */}}\n  {{if .X}}\n    <p>{{ .Y }}</p>\n  {{end}}\n{{/* endoneline */}}",
			want: "{{if .X}}<p>{{ .Y }}</p>{{end}}",
		},
		"keeps space between attributes": {
			in:   "{{/* oneline */}}<link rel=\"icon\"{{if .V}} sizes=\"{{.S}}\"{{end}} href=\"x\">{{/* endoneline */}}",
			want: "<link rel=\"icon\"{{if .V}} sizes=\"{{.S}}\"{{end}} href=\"x\">",
		},
		"multiline tag": {
			in:   "{{/* oneline */}}<link\n    rel=\"icon\"\n    href=\"x\">\n<p>a b</p>{{/* endoneline */}}",
			want: "<link rel=\"icon\" href=\"x\"><p>a b</p>",
		},
		"keeps text inside tags": {
			in:   "{{/* oneline */}}<p>  hello world  </p>{{/* endoneline */}}",
			want: "<p>  hello world  </p>",
		},
		"two regions": {
			in:   "{{/* oneline */}}<a> </a>{{/* endoneline */}}\n<b> </b>\n{{/* oneline */}}<c> </c>{{/* endoneline */}}",
			want: "<a></a>\n<b> </b>\n<c></c>",
		},
		"unterminated": {
			in:   "x{{/* oneline */}}<a>\n</a>",
			want: "x<a></a>",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, oneline(tc.in), tc.want)
		})
	}
}

func testConfig() *config.Config {
	return &config.Config{
		StaticURL:        "/static/",
		FaviconICO:       "favicon.ico",
		FaviconPNG:       "favicon.png",
		FaviconSVG:       "favicon.svg",
		PreviewPNG:       "preview.png",
		ContentType:      "text/html; charset=utf-8",
		XUACompatible:    "ie=edge",
		Viewport:         "width=device-width, initial-scale=1",
		Language:         "en",
		Territory:        "US",
		CleanURL:         "microsoft.com",
		Protocol:         "https://",
		Robots:           "index, follow",
		Title:            "Microsoft",
		Description:      "Technology Solutions",
		BackgroundColor:  "#0000FF",
		Author:           "Lucas Vazquez",
		TwitterUser:      "@Microsoft",
		Dir:              "ltr",
		StartURL:         "/",
		Scope:            "/",
		Display:          "browser",
		Platform:         "web",
		MainFolderPath:   "/proj",
		OutputFolderPath: "/proj/output",
		StaticFolderPath: "/proj/output/static",
		Applications: []config.Application{
			{Platform: "play", URL: "https://play.google.com/store/apps/details?id=com.example.app", ID: "com.example.app"},
		},
	}
}

func renderFiles(t *testing.T, c *config.Config) map[string][]byte {
	t.Helper()
	files, err := Render(c, icons.Assemble(c, icons.DefaultCatalog()))
	if err != nil {
		t.Fatal(err)
	}
	m := make(map[string][]byte)
	for _, f := range files {
		m[f.Name] = f.Data
	}
	for _, name := range []string{IndexName, ManifestName, BrowserConfigName, OpenSearchName, RobotsName} {
		if _, ok := m[name]; !ok {
			t.Fatalf("%s not rendered", name)
		}
	}
	return m
}

func TestRenderIndex(t *testing.T) {
	c := testConfig()
	files := renderFiles(t, c)
	meta := icons.Assemble(c, icons.DefaultCatalog())

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(files[IndexName]))
	if err != nil {
		t.Fatal(err)
	}

	testutil.AssertEqual(t, doc.Find("title").Text(), "Microsoft")
	lang, _ := doc.Find("html").Attr("lang")
	testutil.AssertEqual(t, lang, "en")

	var wantLinks int
	for _, e := range meta.Head {
		if !e.Metatag {
			wantLinks++
		}
	}
	// favicon.ico and favicon.svg are linked too.
	wantLinks += 2
	gotLinks := doc.Find("link").FilterFunction(func(_ int, s *goquery.Selection) bool {
		rel, _ := s.Attr("rel")
		return rel != "manifest" && rel != "search"
	}).Length()
	testutil.AssertEqual(t, gotLinks, wantLinks)

	// Verbose families carry sizes, the default apple-touch-icon doesn't.
	apple := doc.Find(`link[rel="apple-touch-icon"]`)
	testutil.AssertEqual(t, apple.Length(), 11)
	_, hasSizes := apple.First().Attr("sizes")
	testutil.AssertEqual(t, hasSizes, false)
	sizes, _ := apple.Last().Attr("sizes")
	testutil.AssertEqual(t, sizes, "1024x1024")

	// Startup images for a device range carry its media query.
	startup := doc.Find(`link[rel="apple-touch-startup-image"]`)
	testutil.AssertEqual(t, startup.Length(), 14)
	_, hasMedia := startup.First().Attr("media")
	testutil.AssertEqual(t, hasMedia, false)
	media := make(map[string]string)
	startup.Each(func(_ int, s *goquery.Selection) {
		if m, ok := s.Attr("media"); ok {
			href, _ := s.Attr("href")
			media[href] = strings.ReplaceAll(m, " ", "")
		}
	})
	testutil.AssertEqual(t, len(media), 13)
	testutil.AssertEqual(t, media["/static/launch-320x375.png"], "(min-device-width:320px)and(max-device-width:375px)")

	fluidTitle, _ := doc.Find(`link[rel="fluid-icon"]`).Attr("title")
	testutil.AssertEqual(t, fluidTitle, "Microsoft")

	yandex, _ := doc.Find(`meta[name="yandex-tableau-widget"]`).Attr("content")
	testutil.AssertEqual(t, yandex, "logo=https://microsoft.com/static/yandex-120x120.png, color=#0000FF")

	var tile string
	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		if name, _ := s.Attr("name"); strings.EqualFold(name, "msapplication-TileImage") {
			tile, _ = s.Attr("content")
		}
	})
	testutil.AssertEqual(t, tile, "/static/ms-icon-144x144.png")

	ogImage, _ := doc.Find(`meta[property="og:image"]`).Attr("content")
	testutil.AssertEqual(t, ogImage, "https://microsoft.com/static/preview-500x500.png")
	card, _ := doc.Find(`meta[name="twitter:card"]`).Attr("content")
	testutil.AssertEqual(t, card, "summary_large_image")

	manifest, _ := doc.Find(`link[rel="manifest"]`).Attr("href")
	testutil.AssertEqual(t, manifest, "/manifest.json")
	search, _ := doc.Find(`link[rel="search"]`).Attr("href")
	testutil.AssertEqual(t, search, "/opensearch.xml")

	// The oneline region leaves no whitespace between head tags.
	head, err := doc.Find("head").Html()
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(head, ">\n") || strings.Contains(head, "> <") {
		t.Fatalf("head contains whitespace between tags:\n%s", head)
	}
}

func TestRenderIndexWithoutImages(t *testing.T) {
	c := testConfig()
	c.FaviconICO, c.FaviconPNG, c.FaviconSVG, c.PreviewPNG = "", "", "", ""
	files := renderFiles(t, c)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(files[IndexName]))
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, doc.Find(`link[rel="icon"]`).Length(), 0)
	testutil.AssertEqual(t, doc.Find(`meta[property="og:image"]`).Length(), 0)
	testutil.AssertEqual(t, doc.Find(`meta[name="msapplication-config"]`).Length(), 0)
	card, _ := doc.Find(`meta[name="twitter:card"]`).Attr("content")
	testutil.AssertEqual(t, card, "summary")
}

func TestRenderManifest(t *testing.T) {
	files := renderFiles(t, testConfig())

	var mf manifest
	if err := json.Unmarshal(files[ManifestName], &mf); err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, mf.Name, "Microsoft")
	testutil.AssertEqual(t, mf.Lang, "en-US")
	testutil.AssertEqual(t, mf.Display, "browser")
	testutil.AssertEqual(t, mf.ThemeColor, "#0000FF")
	testutil.AssertEqual(t, len(mf.Icons), 9)
	testutil.AssertEqual(t, mf.Icons[0], manifestIcon{Src: "/static/android-icon-36x36.png", Sizes: "36x36", Type: "image/png"})
	testutil.AssertEqual(t, len(mf.RelatedApplications), 1)
	testutil.AssertEqual(t, mf.PreferRelatedApplications, false)
}

func TestMinJSON(t *testing.T) {
	got, err := newMin().Bytes("application/json", []byte("{\n  \"name\": \"x\",\n  \"icons\": [ ]\n}"))
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, string(got), `{"name":"x","icons":[]}`)
}

func TestRenderBrowserConfig(t *testing.T) {
	files := renderFiles(t, testConfig())

	var bc struct {
		Tile struct {
			Tiles []struct {
				XMLName xml.Name
				Src     string `xml:"src,attr"`
			} `xml:",any"`
		} `xml:"msapplication>tile"`
	}
	if err := xml.Unmarshal(files[BrowserConfigName], &bc); err != nil {
		t.Fatalf("%v:\n%s", err, files[BrowserConfigName])
	}

	var names []string
	for _, tl := range bc.Tile.Tiles {
		names = append(names, tl.XMLName.Local)
	}
	testutil.AssertEqual(t, names, []string{
		"square30x30logo",
		"square44x44logo",
		"square70x70logo",
		"square150x150logo",
		"square310x310logo",
		"wide310x150logo",
		"TileColor",
	})
	testutil.AssertEqual(t, bc.Tile.Tiles[5].Src, "/static/ms-icon-310x150.png")
}

func TestRenderOpenSearch(t *testing.T) {
	c := testConfig()
	c.Title = "R&D"
	files := renderFiles(t, c)

	var os struct {
		ShortName string `xml:"ShortName"`
		Image     struct {
			Width  int    `xml:"width,attr"`
			Height int    `xml:"height,attr"`
			URL    string `xml:",chardata"`
		} `xml:"Image"`
		URL struct {
			Template string `xml:"template,attr"`
		} `xml:"Url"`
	}
	if err := xml.Unmarshal(files[OpenSearchName], &os); err != nil {
		t.Fatalf("%v:\n%s", err, files[OpenSearchName])
	}
	testutil.AssertEqual(t, os.ShortName, "R&D")
	testutil.AssertEqual(t, os.Image.Width, 16)
	testutil.AssertEqual(t, os.Image.URL, "https://microsoft.com/static/opensearch-16x16.png")
	testutil.AssertEqual(t, os.URL.Template, "https://microsoft.com/?q={searchTerms}")
}

func TestRenderRobots(t *testing.T) {
	cases := map[string]struct {
		robots, cleanURL string
		want             string
	}{
		"index": {
			robots:   "index, follow",
			cleanURL: "microsoft.com",
			want:     "User-agent: *\nAllow: /\nHost: https://microsoft.com\n",
		},
		"noindex": {
			robots: "noindex, nofollow",
			want:   "User-agent: *\nDisallow: /\n",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			c := testConfig()
			c.Robots, c.CleanURL = tc.robots, tc.cleanURL
			testutil.AssertEqual(t, string(renderFiles(t, c)[RobotsName]), tc.want)
		})
	}
}
