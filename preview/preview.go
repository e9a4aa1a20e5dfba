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

// Package preview renders cross-stitch guides to raster images.
//
// The [Canvas] in this package implements [xstitch.Canvas], so that
// the same guide which is written to a PDF file can be saved as a PNG
// image, for example to show it on a web page.
package preview

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/xstitch"
	"seehuhn.de/go/xstitch/raster"
)

// Options control the size and appearance of a preview.
type Options struct {
	// Scale is the number of pixels per PDF unit.
	Scale float64

	// Background is the colour of the page.
	Background xstitch.RGB
}

var defaultOptions = &Options{
	Scale:      2,
	Background: xstitch.White,
}

// Canvas draws onto an RGB image.
type Canvas struct {
	img           *image.NRGBA
	width, height float64 // page size in PDF units
	scale         float64

	r     *raster.Rasterizer
	font  *Font
	faces map[fixed.Int26_6]font.Face

	stroke, fill xstitch.RGB
	lineWidth    float64

	err error
}

var _ xstitch.Canvas = (*Canvas)(nil)

// New allocates a canvas for a page of the given size, in PDF units.
// Symbols are drawn using F.  If opt is nil, default options are used.
func New(width, height float64, F *Font, opt *Options) (*Canvas, error) {
	if opt == nil {
		opt = defaultOptions
	}
	if F == nil {
		return nil, errors.New("preview: no font given")
	}
	if opt.Scale <= 0 || math.IsInf(opt.Scale, 0) {
		return nil, errors.New("preview: invalid scale")
	}

	w := int(math.Ceil(width * opt.Scale))
	h := int(math.Ceil(height * opt.Scale))
	if w <= 0 || h <= 0 {
		return nil, errors.New("preview: empty page")
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	bg := opt.Background
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = bg.R
		img.Pix[i+1] = bg.G
		img.Pix[i+2] = bg.B
		img.Pix[i+3] = 255
	}

	r := raster.New(rect.Rect{URx: float64(w), URy: float64(h)})
	// page coordinates have the origin in the bottom-left corner
	r.CTM = matrix.Matrix{opt.Scale, 0, 0, -opt.Scale, 0, height * opt.Scale}

	c := &Canvas{
		img:       img,
		width:     width,
		height:    height,
		scale:     opt.Scale,
		r:         r,
		font:      F,
		faces:     make(map[fixed.Int26_6]font.Face),
		lineWidth: 1,
	}
	return c, nil
}

// PageSize implements the [xstitch.Canvas] interface.
func (c *Canvas) PageSize() (width, height float64) {
	return c.width, c.height
}

// SetStrokeColor implements the [xstitch.Canvas] interface.
func (c *Canvas) SetStrokeColor(col xstitch.RGB) {
	c.stroke = col
}

// SetFillColor implements the [xstitch.Canvas] interface.
func (c *Canvas) SetFillColor(col xstitch.RGB) {
	c.fill = col
}

// SetLineWidth implements the [xstitch.Canvas] interface.
func (c *Canvas) SetLineWidth(w float64) {
	if w <= 0 {
		c.setErr(errors.New("preview: line width must be positive"))
		return
	}
	c.lineWidth = w
}

// StrokeRect implements the [xstitch.Canvas] interface.
func (c *Canvas) StrokeRect(x, y, width, height float64) {
	if c.err != nil {
		return
	}
	c.paint(raster.Frame(x, y, width, height, c.lineWidth), raster.EvenOdd, c.stroke)
}

// FillCircle implements the [xstitch.Canvas] interface.
func (c *Canvas) FillCircle(cx, cy, radius float64) {
	if c.err != nil {
		return
	}
	c.paint(raster.Circle(cx, cy, radius), raster.NonZero, c.fill)
}

// TextBox implements the [xstitch.Canvas] interface.
func (c *Canvas) TextBox(s string, x, y, width, height float64) {
	if c.err != nil || s == "" {
		return
	}

	// box in device coordinates
	bw := width * c.scale
	bh := height * c.scale
	cx := (x + width/2) * c.scale
	cy := (c.height - y - height/2) * c.scale

	size := fixed.Int26_6(math.Round(bh * boxFill * 64))
	face, err := c.face(size)
	if err != nil {
		c.setErr(err)
		return
	}
	adv := font.MeasureString(face, s)
	if limit := fixed.Int26_6(bw * 64); adv > limit && adv > 0 {
		// shrink to fit
		size = fixed.Int26_6(int64(size) * int64(limit) / int64(adv))
		face, err = c.face(size)
		if err != nil {
			c.setErr(err)
			return
		}
		adv = font.MeasureString(face, s)
	}

	m := face.Metrics()
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(color.NRGBA{R: c.fill.R, G: c.fill.G, B: c.fill.B, A: 255}),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(cx*64) - adv/2,
			Y: fixed.Int26_6(cy*64) + (m.Ascent-m.Descent)/2,
		},
	}
	d.DrawString(s)
}

// Err implements the [xstitch.Canvas] interface.
func (c *Canvas) Err() error {
	return c.err
}

// Image returns the rendered image.
func (c *Canvas) Image() *image.NRGBA {
	return c.img
}

// WritePNG writes the image in PNG format.
func (c *Canvas) WritePNG(w io.Writer) error {
	if c.err != nil {
		return c.err
	}
	return png.Encode(w, c.img)
}

// Close releases the font faces used by the canvas.  The image stays
// available, and [Canvas.WritePNG] can still be used after Close.
func (c *Canvas) Close() error {
	var errs []error
	for size, face := range c.faces {
		errs = append(errs, face.Close())
		delete(c.faces, size)
	}
	return errors.Join(errs...)
}

// paint fills p with the given colour, blending the edges into the
// existing image.
func (c *Canvas) paint(p path.Path, rule raster.Rule, col xstitch.RGB) {
	img := c.img
	c.r.Fill(p, rule, func(y, xMin int, coverage []float32) {
		row := img.Pix[y*img.Stride+4*xMin:]
		for i, a := range coverage {
			px := row[4*i : 4*i+3]
			px[0] = blend(px[0], col.R, a)
			px[1] = blend(px[1], col.G, a)
			px[2] = blend(px[2], col.B, a)
		}
	})
}

func blend(dst, src uint8, alpha float32) uint8 {
	v := float32(dst)*(1-alpha) + float32(src)*alpha
	return uint8(min(max(v+0.5, 0), 255))
}

// face returns a font face of the given size in pixels.
func (c *Canvas) face(size fixed.Int26_6) (font.Face, error) {
	if size < minFaceSize {
		size = minFaceSize
	}
	if f, ok := c.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(c.font.otf, &opentype.FaceOptions{
		Size:    float64(size) / 64,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	c.faces[size] = f
	return f, nil
}

func (c *Canvas) setErr(err error) {
	if c.err == nil {
		c.err = err
	}
}

const (
	// boxFill is the font size as a fraction of the text box height.
	boxFill = 0.8

	// minFaceSize is the smallest font size used, in 26.6 pixels.
	minFaceSize fixed.Int26_6 = 64
)
