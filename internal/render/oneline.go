// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package render

import (
	"strings"
	"unicode"
)

const (
	onelineStart = "{{/* oneline */}}"
	onelineEnd   = "{{/* endoneline */}}"
)

// oneline rewrites every oneline region of template source src. The markers
// are dropped. An unterminated region extends to the end of src.
func oneline(src string) string {
	var sb strings.Builder
	for {
		i := strings.Index(src, onelineStart)
		if i == -1 {
			sb.WriteString(src)
			return sb.String()
		}
		sb.WriteString(src[:i])
		src = src[i+len(onelineStart):]

		region := src
		if j := strings.Index(src, onelineEnd); j != -1 {
			region, src = src[:j], src[j+len(onelineEnd):]
		} else {
			src = ""
		}
		sb.WriteString(stripRegion(region))
	}
}

// stripRegion strips whitespace from the literal text of region, leaving
// actions as is.
func stripRegion(region string) string {
	var sb strings.Builder
	for region != "" {
		i := strings.Index(region, "{{")
		if i == -1 {
			sb.WriteString(stripText(region))
			break
		}
		sb.WriteString(stripText(region[:i]))
		region = region[i:]

		j := strings.Index(region, "}}")
		if j == -1 {
			// Leave the broken action for the template parser to report.
			sb.WriteString(region)
			break
		}
		sb.WriteString(region[:j+2])
		region = region[j+2:]
	}
	return sb.String()
}

// stripText removes whitespace between tags from a piece of literal text.
// The edges of the text (next to an action or the region boundary) count as
// tag boundaries. Line breaks elsewhere, as between attributes of a tag
// spanning several lines, collapse to a single space.
func stripText(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); {
		if !isSpace(s[i]) {
			sb.WriteByte(s[i])
			i++
			continue
		}

		j := i
		for j < len(s) && isSpace(s[j]) {
			j++
		}
		run := s[i:j]
		prevBoundary := i == 0 || s[i-1] == '>'
		nextBoundary := j == len(s) || s[j] == '<'

		switch {
		case prevBoundary && nextBoundary:
		case strings.ContainsAny(run, "\n\r\t"):
			sb.WriteByte(' ')
		default:
			sb.WriteString(run)
		}
		i = j
	}
	return sb.String()
}

func isSpace(b byte) bool {
	return b < 0x80 && unicode.IsSpace(rune(b))
}
