// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package preset writes a starter settings file and starter images.
package preset

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
)

// Names of the files Write creates.
const (
	SettingsName   = "settings.json"
	FaviconICOName = "favicon_ico_16px.ico"
	FaviconPNGName = "favicon_png_1600px.png"
	FaviconSVGName = "favicon_svg_scalable.svg"
	PreviewPNGName = "preview_png_500px.png"
)

// ErrExists is returned when a file Write would create already exists.
var ErrExists = errors.New("file already exists")

// Settings is the starter settings file.
const Settings = `{
    "comment": {
        "About": "Config file used by cushead",
        "Format": "JSON",
        "Documentation": "https://go.astrophena.name/cushead"
    },
    "required": {
        "static_url": "/static/"
    },
    "recommended": {
        "favicon_ico": "./favicon_ico_16px.ico",
        "favicon_png": "./favicon_png_1600px.png",
        "favicon_svg": "./favicon_svg_scalable.svg",
        "preview_png": "./preview_png_500px.png"
    },
    "default": {
        "general": {
            "content-type": "text/html; charset=utf-8",
            "X-UA-Compatible": "ie=edge",
            "viewport": "width=device-width, initial-scale=1",
            "language": "en",
            "territory": "US",
            "clean_url": "microsoft.com",
            "protocol": "https://",
            "robots": "index, follow"
        },
        "basic": {
            "title": "Microsoft",
            "description": "Technology Solutions",
            "subject": "Home Page",
            "keywords": "Microsoft, Windows",
            "background_color": "#0000FF",
            "author": "Lucas Vazquez"
        },
        "social_media": {
            "facebook_app_id": "123456",
            "twitter_user_@": "@Microsoft",
            "twitter_user_id": "123456"
        }
    },
    "progressive_web_apps": {
        "dir": "ltr",
        "start_url": "/",
        "orientation": "landscape",
        "scope": "/",
        "display": "browser",
        "platform": "web",
        "applications": [
            {
                "platform": "play",
                "url": "https://play.google.com/store/apps/details?id=com.example.app",
                "id": "com.example.app"
            },
            {
                "platform": "itunes",
                "url": "https://itunes.apple.com/app/example-app/id123456"
            }
        ]
    }
}
`

const faviconSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">
  <rect width="100" height="100" fill="#0000ff"/>
  <circle cx="50" cy="50" r="30" fill="#ffffff"/>
</svg>
`

var (
	background = color.RGBA{R: 0x00, G: 0x00, B: 0xff, A: 0xff}
	foreground = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Write writes the starter settings file and images into dir, creating it
// if needed. It refuses to overwrite existing files.
func Write(dir string) error {
	names := []string{SettingsName, FaviconICOName, FaviconPNGName, FaviconSVGName, PreviewPNGName}
	for _, name := range names {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return fmt.Errorf("%s: %w", filepath.Join(dir, name), ErrExists)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(dir, SettingsName), []byte(Settings), 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, FaviconSVGName), []byte(faviconSVG), 0o644); err != nil {
		return err
	}

	logo := drawLogo(1600)
	if err := imgio.Save(filepath.Join(dir, FaviconPNGName), logo, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("%s: %w", FaviconPNGName, err)
	}
	preview := transform.Resize(logo, 500, 500, transform.Lanczos)
	if err := imgio.Save(filepath.Join(dir, PreviewPNGName), preview, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("%s: %w", PreviewPNGName, err)
	}

	ico, err := encodeICO(transform.Resize(logo, 16, 16, transform.Lanczos))
	if err != nil {
		return fmt.Errorf("%s: %w", FaviconICOName, err)
	}
	return os.WriteFile(filepath.Join(dir, FaviconICOName), ico, 0o644)
}

// drawLogo draws a white disc on a blue square.
func drawLogo(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	c := float64(size) / 2
	r := float64(size) * 0.3
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(x)+0.5-c, float64(y)+0.5-c
			if dx*dx+dy*dy <= r*r {
				img.SetRGBA(x, y, foreground)
			} else {
				img.SetRGBA(x, y, background)
			}
		}
	}
	return img
}

// encodeICO wraps img into a single-image ICO file with PNG payload.
// See https://en.wikipedia.org/wiki/ICO_(file_format).
func encodeICO(img image.Image) ([]byte, error) {
	var payload bytes.Buffer
	if err := png.Encode(&payload, img); err != nil {
		return nil, err
	}

	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w > 256 || h > 256 {
		return nil, fmt.Errorf("image too large for ICO: %dx%d", w, h)
	}

	const headerSize = 6 + 16
	var buf bytes.Buffer
	for _, v := range []any{
		// ICONDIR.
		uint16(0), // reserved
		uint16(1), // type: icon
		uint16(1), // image count
		// ICONDIRENTRY: width and height (256 is stored as 0), palette
		// size, reserved, color planes, bits per pixel, payload size and
		// offset.
		uint8(w % 256),
		uint8(h % 256),
		uint8(0),
		uint8(0),
		uint16(1),
		uint16(32),
		uint32(payload.Len()),
		uint32(headerSize),
	} {
		if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
			return nil, err
		}
	}
	buf.Write(payload.Bytes())
	return buf.Bytes(), nil
}
