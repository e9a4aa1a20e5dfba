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

// Package xstitch turns bitmap images into cross-stitch guides.
//
// Every pixel of the image becomes a square cell on the page.  Opaque
// pixels get a filled circle in the pixel colour, together with a symbol
// which identifies the colour, so that the guide can be followed without
// telling colours apart.  Fully transparent pixels only get the cell
// outline.
//
// Drawing goes through the [Canvas] interface.  The pdfcanvas package
// writes PDF files, the preview package renders to an image.
package xstitch

import (
	"errors"
	"image"
	"log/slog"

	"seehuhn.de/go/xstitch/symbol"
)

// ErrEmptyImage is returned when the image has no pixels.
var ErrEmptyImage = errors.New("image has no pixels")

// Options control the appearance of a guide.
type Options struct {
	// Margin is the distance between the grid and the page edges,
	// in PDF units.
	Margin float64

	// OutlineWidth is the line width for the cell outlines.
	// If this is zero, the line width of the canvas is not changed.
	OutlineWidth float64

	// Grid is the colour of the cell outlines.
	Grid RGB

	// Symbol is the colour of the symbols.
	Symbol RGB
}

// DefaultOptions are used when nil is passed to [Render].
var DefaultOptions = &Options{
	Margin: 36,
	Grid:   Black,
	Symbol: White,
}

// Render draws the guide for img onto the canvas.  Pixels are visited
// in row-major order, and every pixel produces exactly one cell.
// Symbols are taken from reg.  If reg runs out of symbols,
// the returned error wraps [symbol.ErrExhausted].
func Render(img image.Image, c Canvas, reg *symbol.Registry, opt *Options) (*Layout, error) {
	if opt == nil {
		opt = DefaultOptions
	}

	b := img.Bounds()
	cols, rows := b.Dx(), b.Dy()
	if cols <= 0 || rows <= 0 {
		return nil, ErrEmptyImage
	}

	pageWidth, pageHeight := c.PageSize()
	L, err := NewLayout(pageWidth, pageHeight, opt.Margin, cols, rows)
	if err != nil {
		return nil, err
	}
	Logger().Debug("page layout",
		slog.Int("cols", cols),
		slog.Int("rows", rows),
		slog.Float64("cell", L.Cell),
		slog.Float64("width", L.Width()),
		slog.Float64("height", L.Height()))

	if opt.OutlineWidth > 0 {
		c.SetLineWidth(opt.OutlineWidth)
	}
	c.SetStrokeColor(opt.Grid)

	cr := &cellRenderer{
		canvas: c,
		reg:    reg,
		symCol: opt.Symbol,
		size:   L.Cell,
	}
	for row := range rows {
		for col := range cols {
			px := NewPixel(col, row, img.At(b.Min.X+col, b.Min.Y+row))
			x, y := L.CellOrigin(col, row)
			err := cr.draw(px, x, y)
			if err != nil {
				return nil, err
			}
		}
		if err := c.Err(); err != nil {
			return nil, err
		}
	}

	Logger().Debug("guide rendered",
		slog.Int("cells", cols*rows),
		slog.Int("colours", reg.Len()))
	return L, nil
}
