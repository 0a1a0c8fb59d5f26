// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Cushead generates the <head> of a web page together with the icons, web app
manifest, browserconfig.xml, opensearch.xml and robots.txt it references.

# Usage

	$ cushead [flags] [settings.json]

Reads the settings file (settings.json in the current directory by default)
and writes the generated files into the output directory next to it. Source
images are resolved relative to the settings file.

To start from a working example, write a starter settings file and starter
images into dir:

	$ cushead -init dir

To preview the result, serve the output directory and regenerate it whenever
the settings file or a source image changes:

	$ cushead -serve localhost:3000 dir/settings.json

# Settings

The settings file is JSON. Only required.static_url is mandatory, all image
keys in recommended are optional and skipped when empty. See the file written
by -init for every supported key.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/base/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
