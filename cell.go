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

package xstitch

import (
	"fmt"
	"log/slog"

	"seehuhn.de/go/xstitch/symbol"
)

// cellRenderer draws the cells of one guide.
type cellRenderer struct {
	canvas Canvas
	reg    *symbol.Registry
	symCol RGB
	size   float64 // cell side length
}

// draw draws the cell for px, with the top-left corner at (x, y).
func (cr *cellRenderer) draw(px Pixel, x, y float64) error {
	s := cr.size
	c := cr.canvas

	c.SetFillColor(px.Color)
	c.StrokeRect(x, y-s, s, s)

	if px.Transparent() {
		return nil
	}
	return cr.drawIcon(px, x, y)
}

// drawIcon draws the circle and the symbol for an opaque pixel.
func (cr *cellRenderer) drawIcon(px Pixel, x, y float64) error {
	s := cr.size
	c := cr.canvas
	padding := s / 8

	c.FillCircle(x+s/2, y-s/2, (s-2*padding)/2)

	c.SetFillColor(cr.symCol)

	key := px.Color.Key()
	before := cr.reg.Len()
	sym, err := cr.reg.SymbolFor(key)
	if err != nil {
		return fmt.Errorf("pixel (%d, %d): %w", px.Col, px.Row, err)
	}
	if cr.reg.Len() > before {
		Logger().Debug("new colour",
			slog.String("key", key),
			slog.String("symbol", sym))
	}

	c.TextBox(sym, x, y-s, s, s)
	return nil
}
