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

// Canvas is the drawing surface for a guide.
//
// Coordinates are page coordinates in PDF units, with the origin in the
// bottom-left corner of the page and the y-axis pointing up.  Rectangles
// are given by their lower-left corner, width and height.
//
// Drawing errors are sticky: once an operation fails, later operations
// are ignored and Err returns the first error.
type Canvas interface {
	// PageSize returns the width and height of the page.
	PageSize() (width, height float64)

	SetStrokeColor(c RGB)
	SetFillColor(c RGB)
	SetLineWidth(w float64)

	// StrokeRect draws the outline of a rectangle, using the stroke colour.
	StrokeRect(x, y, width, height float64)

	// FillCircle draws a filled circle, using the fill colour.
	FillCircle(cx, cy, radius float64)

	// TextBox draws s, centred horizontally and vertically in the given
	// box, using the fill colour.  The font size is reduced if needed,
	// so that the text fits into the box.
	TextBox(s string, x, y, width, height float64)

	// Err returns the first error which occurred while drawing.
	Err() error
}
