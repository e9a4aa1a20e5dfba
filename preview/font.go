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

package preview

import (
	"fmt"

	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// Font is a TrueType or OpenType font used to draw symbols.
type Font struct {
	otf *opentype.Font
	buf sfnt.Buffer
}

// ParseFont reads a font from the contents of a font file.
func ParseFont(data []byte) (*Font, error) {
	otf, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("preview: %w", err)
	}
	return &Font{otf: otf}, nil
}

// HasGlyph reports whether the font has a glyph for r.
func (F *Font) HasGlyph(r rune) bool {
	gid, err := F.otf.GlyphIndex(&F.buf, r)
	return err == nil && gid != 0
}
