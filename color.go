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
	"image/color"
)

// RGB is a colour with 8 bits per channel.
type RGB struct {
	R, G, B uint8
}

// Commonly used colours.
var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
)

// Key returns the colour as six lower-case hex digits, e.g. "ff8000".
// Colours have the same key if and only if they are equal.
func (c RGB) Key() string {
	return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
}

// RGBA implements the [color.Color] interface.
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	return r, g, b, 0xffff
}

// Floats returns the channels scaled to the range [0, 1].
func (c RGB) Floats() (r, g, b float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255
}

// Pixel is one pixel of the source image.
type Pixel struct {
	Col, Row int    // position in the image, (0, 0) is the top-left pixel
	Color    RGB    // colour, reduced to 8 bits per channel
	Alpha    uint16 // opacity, 0 is fully transparent
}

// NewPixel converts an image colour into a Pixel.  The channels are
// read without alpha premultiplication at 16 bits and reduced to
// 8 bits by dividing by 256.
func NewPixel(col, row int, c color.Color) Pixel {
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return Pixel{
		Col: col,
		Row: row,
		Color: RGB{
			R: uint8(n.R / 256),
			G: uint8(n.G / 256),
			B: uint8(n.B / 256),
		},
		Alpha: n.A,
	}
}

// Transparent reports whether the pixel is fully transparent.
func (p Pixel) Transparent() bool {
	return p.Alpha == 0
}
