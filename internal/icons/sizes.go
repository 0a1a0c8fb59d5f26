// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package icons

import "fmt"

// Size is a target image size in pixels.
type Size struct {
	Width  int
	Height int
}

// String returns the size in the "WxH" form used in file names and in the
// sizes attribute of link tags.
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Breakpoint is a [low, high] device dimension pair used to target startup
// images at a specific screen.
type Breakpoint [2]int

// Media returns the media query matching devices whose width lies between
// the low and high bounds.
func (b Breakpoint) Media() string {
	return fmt.Sprintf("(min-device-width: %dpx) and (max-device-width: %dpx)", b[0], b[1])
}

// Expand returns the sizes a family should be generated in.
//
// Square sizes come first, in declared order, with repeated sizes dropped.
// Non-square sizes follow verbatim. Each breakpoint then contributes one
// low x high size.
func Expand(f Family) []Size {
	var sizes []Size

	seen := make(map[Size]bool)
	for _, n := range f.Square {
		s := Size{Width: n, Height: n}
		if seen[s] {
			continue
		}
		seen[s] = true
		sizes = append(sizes, s)
	}

	sizes = append(sizes, f.NonSquare...)

	for _, bp := range f.Breakpoints {
		sizes = append(sizes, Size{Width: bp[0], Height: bp[1]})
	}

	return sizes
}
