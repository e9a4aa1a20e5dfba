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

package raster

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// circleK is the control point distance for approximating a quarter
// circle of radius 1 by a cubic Bézier curve.
const circleK = 0.5522847498

// Rectangle returns the closed outline of an axis-parallel rectangle.
func Rectangle(x, y, width, height float64) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		_ = yield(path.CmdMoveTo, []vec.Vec2{{X: x, Y: y}}) &&
			yield(path.CmdLineTo, []vec.Vec2{{X: x + width, Y: y}}) &&
			yield(path.CmdLineTo, []vec.Vec2{{X: x + width, Y: y + height}}) &&
			yield(path.CmdLineTo, []vec.Vec2{{X: x, Y: y + height}}) &&
			yield(path.CmdClose, nil)
	}
}

// Frame returns the outline of a rectangular frame of the given line
// width, centred on the edges of the rectangle.  The frame must be
// filled using the [EvenOdd] rule.
func Frame(x, y, width, height, lineWidth float64) path.Path {
	d := lineWidth / 2
	outer := Rectangle(x-d, y-d, width+lineWidth, height+lineWidth)
	inner := Rectangle(x+d, y+d, width-lineWidth, height-lineWidth)
	if width <= lineWidth || height <= lineWidth {
		return outer
	}
	return func(yield func(path.Command, []vec.Vec2) bool) {
		for cmd, pts := range outer {
			if !yield(cmd, pts) {
				return
			}
		}
		for cmd, pts := range inner {
			if !yield(cmd, pts) {
				return
			}
		}
	}
}

// Circle returns the outline of a circle, made of four cubic Bézier curves.
func Circle(cx, cy, radius float64) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		k := circleK * radius
		pt := func(x, y float64) vec.Vec2 {
			return vec.Vec2{X: cx + x, Y: cy + y}
		}
		_ = yield(path.CmdMoveTo, []vec.Vec2{pt(radius, 0)}) &&
			yield(path.CmdCubeTo, []vec.Vec2{pt(radius, k), pt(k, radius), pt(0, radius)}) &&
			yield(path.CmdCubeTo, []vec.Vec2{pt(-k, radius), pt(-radius, k), pt(-radius, 0)}) &&
			yield(path.CmdCubeTo, []vec.Vec2{pt(-radius, -k), pt(-k, -radius), pt(0, -radius)}) &&
			yield(path.CmdCubeTo, []vec.Vec2{pt(k, -radius), pt(radius, -k), pt(radius, 0)}) &&
			yield(path.CmdClose, nil)
	}
}
