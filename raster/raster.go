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

// Package raster converts filled outlines into anti-aliased pixel coverage.
//
// The scan converter accumulates, for every pixel of a scanline, the signed
// height of the edges crossing the pixel ("cover") and the part of this
// height which lies inside the pixel ("area").  Summing from left to right
// gives the covered fraction of each pixel.
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Rule selects how overlapping parts of an outline are filled.
type Rule int

const (
	NonZero Rule = iota // nonzero winding number
	EvenOdd             // odd winding number
)

// segment is a line segment in device coordinates, with y0 < y1.
type segment struct {
	x0, y0 float64
	x1, y1 float64
	slope  float64 // dx/dy
	dir    float32 // +1 if the original edge pointed down, -1 if up
}

// Rasterizer fills paths and reports the pixel coverage row by row.
// Buffers are kept between calls, so one Rasterizer should be reused
// for all shapes of an image.
//
// Coverage is found by accumulating, along each scanline, the signed
// area which the edges cut off from every pixel.  This is exact for all
// pixels in which the winding number only takes the values 0 and 1 (or
// 0 and -1), in particular for all pixels of a polygon which does not
// intersect itself.  In pixels where edges cross each other, the fill
// rule is applied to the accumulated area instead of pointwise, and the
// result is an approximation.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// CTM maps user space to device space.  Device pixel (i, j) covers
	// the square [i, i+1]×[j, j+1].
	CTM matrix.Matrix

	// Clip is the device space area which receives output.
	// The coordinates must be integers.
	Clip rect.Rect

	// Flatness is the maximal distance, in device pixels, between
	// a curve and the polygon which replaces it.
	Flatness float64

	segs   []segment
	active []int
	cover  []float32
	area   []float32

	bbox  rect.Rect
	empty bool
}

// New returns a Rasterizer with the identity CTM.
func New(clip rect.Rect) *Rasterizer {
	return &Rasterizer{
		CTM:      matrix.Identity,
		Clip:     clip,
		Flatness: defaultFlatness,
	}
}

// Fill fills the path p.  For every scanline which the path touches,
// emit is called with the row, the first column and the coverage values
// of the following pixels, in the range [0, 1].  The coverage slice is
// only valid during the call.
func (r *Rasterizer) Fill(p path.Path, rule Rule, emit func(y, xMin int, coverage []float32)) {
	if !r.collect(p) {
		return
	}

	xMin := max(int(math.Floor(r.bbox.LLx)), int(r.Clip.LLx))
	xMax := min(int(math.Floor(r.bbox.URx))+1, int(r.Clip.URx))
	yMin := max(int(math.Floor(r.bbox.LLy)), int(r.Clip.LLy))
	yMax := min(int(math.Floor(r.bbox.URy))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return
	}
	width := xMax - xMin

	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.segs, func(a, b segment) int {
		return cmp.Compare(a.y0, b.y0)
	})
	r.active = r.active[:0]
	next := 0

	for y := yMin; y < yMax; y++ {
		top := float64(y)
		bottom := top + 1

		for next < len(r.segs) && r.segs[next].y0 < bottom {
			r.active = append(r.active, next)
			next++
		}
		r.active = slices.DeleteFunc(r.active, func(i int) bool {
			return r.segs[i].y1 <= top
		})
		if len(r.active) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		for _, i := range r.active {
			r.accumulate(&r.segs[i], top, bottom, xMin, xMax)
		}

		if rule == EvenOdd {
			integrateEvenOdd(r.cover, r.area)
		} else {
			integrateNonZero(r.cover, r.area)
		}

		lo, hi := 0, width
		for lo < hi && r.cover[lo] == 0 {
			lo++
		}
		for hi > lo && r.cover[hi-1] == 0 {
			hi--
		}
		if lo < hi {
			emit(y, xMin+lo, r.cover[lo:hi])
		}
	}
}

// collect flattens the path into device space segments.
// The return value is false if nothing needs to be drawn.
func (r *Rasterizer) collect(p path.Path) bool {
	r.segs = r.segs[:0]
	r.empty = true

	var current, start vec.Vec2
	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			if current != start {
				r.addLine(current, start)
			}
			current = pts[0]
			start = current
		case path.CmdLineTo:
			r.addLine(current, pts[0])
			current = pts[0]
		case path.CmdQuadTo:
			r.flattenQuad(current, pts[0], pts[1])
			current = pts[1]
		case path.CmdCubeTo:
			r.flattenCube(current, pts[0], pts[1], pts[2])
			current = pts[2]
		case path.CmdClose:
			r.addLine(current, start)
			current = start
		}
	}
	// fills close open subpaths implicitly
	if current != start {
		r.addLine(current, start)
	}

	return !r.empty
}

// addLine adds the segment from a to b, given in user space.
func (r *Rasterizer) addLine(a, b vec.Vec2) {
	M := r.CTM
	x0 := M[0]*a.X + M[2]*a.Y + M[4]
	y0 := M[1]*a.X + M[3]*a.Y + M[5]
	x1 := M[0]*b.X + M[2]*b.Y + M[4]
	y1 := M[1]*b.X + M[3]*b.Y + M[5]

	if math.Abs(y1-y0) < horizontalThreshold {
		return
	}

	dir := float32(1)
	if y1 < y0 {
		x0, y0, x1, y1 = x1, y1, x0, y0
		dir = -1
	}
	r.segs = append(r.segs, segment{
		x0: x0, y0: y0,
		x1: x1, y1: y1,
		slope: (x1 - x0) / (y1 - y0),
		dir:   dir,
	})

	if r.empty {
		r.bbox = rect.Rect{LLx: min(x0, x1), LLy: y0, URx: max(x0, x1), URy: y1}
		r.empty = false
	} else {
		r.bbox.LLx = min(r.bbox.LLx, x0, x1)
		r.bbox.LLy = min(r.bbox.LLy, y0)
		r.bbox.URx = max(r.bbox.URx, x0, x1)
		r.bbox.URy = max(r.bbox.URy, y1)
	}
}

// flattenQuad replaces a quadratic Bézier curve by line segments.
func (r *Rasterizer) flattenQuad(p0, p1, p2 vec.Vec2) {
	d := r.deviceLength(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25))
	n := 1
	if d > r.Flatness {
		n = int(math.Ceil(math.Sqrt(d / r.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		r.addLine(prev, pt)
		prev = pt
	}
}

// flattenCube replaces a cubic Bézier curve by line segments.
// The number of segments is chosen using Wang's formula.
func (r *Rasterizer) flattenCube(p0, p1, p2, p3 vec.Vec2) {
	d := max(
		r.deviceLength(p0.Sub(p1.Mul(2)).Add(p2)),
		r.deviceLength(p1.Sub(p2.Mul(2)).Add(p3)))
	n := 1
	if d > 0 {
		n = max(1, int(math.Ceil(math.Sqrt(3*d/(4*r.Flatness)))))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		r.addLine(prev, pt)
		prev = pt
	}
}

// deviceLength returns the length of v after applying the linear part
// of the CTM.
func (r *Rasterizer) deviceLength(v vec.Vec2) float64 {
	M := r.CTM
	w := vec.Vec2{
		X: M[0]*v.X + M[2]*v.Y,
		Y: M[1]*v.X + M[3]*v.Y,
	}
	return w.Length()
}

// accumulate adds the contribution of s to the scanline between top and
// bottom.  Pixels left of the clip area are folded into the first pixel.
func (r *Rasterizer) accumulate(s *segment, top, bottom float64, xMin, xMax int) {
	yA := max(top, s.y0)
	yB := min(bottom, s.y1)
	if yB <= yA {
		return
	}

	xA := s.x0 + s.slope*(yA-s.y0)
	xB := s.x0 + s.slope*(yB-s.y0)
	left := int(math.Floor(min(xA, xB)))
	right := int(math.Floor(max(xA, xB)))

	if right < xMin {
		h := s.dir * float32(yB-yA)
		r.cover[0] += h
		r.area[0] += h
		return
	}
	if left >= xMax {
		return
	}

	if left == right {
		r.addPiece(s, yA, yB, left, xMin, xMax)
		return
	}

	// split the segment at the pixel column boundaries
	for col := left; col <= right; col++ {
		ya := s.y0 + (float64(col)-s.x0)/s.slope
		yb := s.y0 + (float64(col+1)-s.x0)/s.slope
		lo := max(min(ya, yb), yA)
		hi := min(max(ya, yb), yB)
		if hi <= lo {
			continue
		}
		r.addPiece(s, lo, hi, col, xMin, xMax)
	}
}

// addPiece adds the part of s between y-coordinates lo and hi, which lies
// inside pixel column col.
func (r *Rasterizer) addPiece(s *segment, lo, hi float64, col, xMin, xMax int) {
	h := s.dir * float32(hi-lo)
	if col < xMin {
		r.cover[0] += h
		r.area[0] += h
		return
	}
	if col >= xMax {
		return
	}

	xMid := s.x0 + s.slope*((lo+hi)/2-s.y0)
	frac := xMid - float64(col)

	i := col - xMin
	r.cover[i] += h
	r.area[i] += h * float32(1-frac)
}

// integrateNonZero turns the accumulated cover and area values into
// coverage, using the nonzero winding rule.  The result is stored in cover.
func integrateNonZero(cover, area []float32) {
	var acc float32
	for i := range cover {
		v := acc + area[i]
		acc += cover[i]
		if v < 0 {
			v = -v
		}
		cover[i] = min(v, 1)
	}
}

// integrateEvenOdd turns the accumulated cover and area values into
// coverage, using the even-odd rule.  The result is stored in cover.
func integrateEvenOdd(cover, area []float32) {
	var acc float32
	for i := range cover {
		v := acc + area[i]
		acc += cover[i]
		if v < 0 {
			v = -v
		}
		v -= 2 * float32(math.Floor(float64(v/2)))
		if v > 1 {
			v = 2 - v
		}
		cover[i] = v
	}
}

const (
	// defaultFlatness is the default curve tolerance in device pixels.
	defaultFlatness = 0.25

	// horizontalThreshold is the minimal vertical extent of a segment.
	// Flatter segments do not change the coverage and are dropped.
	horizontalThreshold = 1e-10
)
