// seehuhn.de/go/xstitch - cross-stitch guides from bitmap images
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package pdfcanvas

import (
	"bytes"
	"errors"
	"fmt"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/glyph"
)

// Font is a TrueType font for the symbols in a guide.
//
// A Font only holds the parsed font data.  Every [Canvas] embeds its
// own copy, so the same Font can be used for several documents.
type Font struct {
	info   *sfnt.Font
	lookup func(rune) glyph.ID

	// code points outside [low, high] are not mapped by the cmap
	low, high rune
}

// ParseFont reads a TrueType font from the contents of a font file.
func ParseFont(data []byte) (*Font, error) {
	info, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("pdfcanvas: %w", err)
	}
	if !info.IsGlyf() {
		return nil, errors.New("pdfcanvas: no glyf outlines in font")
	}
	cmap, err := info.CMapTable.GetBest()
	if err != nil {
		return nil, fmt.Errorf("pdfcanvas: %w", err)
	}
	low, high := cmap.CodeRange()
	F := &Font{
		info:   info,
		lookup: cmap.Lookup,
		low:    low,
		high:   high,
	}
	return F, nil
}

// HasGlyph reports whether the font has a glyph for r.
func (F *Font) HasGlyph(r rune) bool {
	return F.glyphID(r) != 0
}

// glyphID returns the glyph for r, or 0 if the font has none.
func (F *Font) glyphID(r rune) glyph.ID {
	if r < F.low || r > F.high {
		return 0
	}
	return F.lookup(r)
}

// Width returns the advance width of s at the given font size.
func (F *Font) Width(s string, size float64) float64 {
	var w float64
	for _, r := range s {
		w += F.info.GlyphWidthPDF(F.glyphID(r))
	}
	return w * size / 1000
}

// Ascent returns the ascent at the given font size.
func (F *Font) Ascent(size float64) float64 {
	return float64(F.info.Ascent) * size / float64(F.info.UnitsPerEm)
}

// Descent returns the descent at the given font size.
// The value is negative for fonts which extend below the baseline.
func (F *Font) Descent(size float64) float64 {
	return float64(F.info.Descent) * size / float64(F.info.UnitsPerEm)
}
