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

import "fmt"

// Layout places the cells of a guide on the page.
// All coordinates are PDF page coordinates, with the origin in the
// bottom-left corner of the page.
type Layout struct {
	Left float64 // x coordinate of the left edge of the grid
	Top  float64 // y coordinate of the top edge of the grid
	Cell float64 // side length of a cell

	Cols, Rows int
}

// NewLayout computes the layout for an image with cols×rows pixels on
// a page of the given size.  The grid is placed in the top-left corner
// of the area inside the margins, and is scaled to fit this area.
func NewLayout(pageWidth, pageHeight, margin float64, cols, rows int) (*Layout, error) {
	if cols <= 0 || rows <= 0 {
		return nil, ErrEmptyImage
	}
	width := pageWidth - 2*margin
	height := pageHeight - 2*margin
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("margin %g too large for %gx%g page",
			margin, pageWidth, pageHeight)
	}

	L := &Layout{
		Left: margin,
		Top:  pageHeight - margin,
		Cell: CellSize(width, height, cols, rows),
		Cols: cols,
		Rows: rows,
	}
	return L, nil
}

// CellSize returns the side length of the largest square cells which
// allow a grid of cols×rows cells to fit into a width×height area.
func CellSize(width, height float64, cols, rows int) float64 {
	return min(width/float64(cols), height/float64(rows))
}

// CellOrigin returns the top-left corner of the cell for the pixel
// in the given column and row.
func (L *Layout) CellOrigin(col, row int) (x, y float64) {
	x = L.Left + float64(col)*L.Cell
	y = L.Top - float64(row)*L.Cell
	return x, y
}

// Width returns the width of the grid.
func (L *Layout) Width() float64 {
	return float64(L.Cols) * L.Cell
}

// Height returns the height of the grid.
func (L *Layout) Height() float64 {
	return float64(L.Rows) * L.Cell
}
