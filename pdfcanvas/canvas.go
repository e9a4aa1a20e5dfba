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

// Package pdfcanvas writes cross-stitch guides to single-page PDF files.
package pdfcanvas

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/font/truetype"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/xstitch"
	"seehuhn.de/go/xstitch/raster"
)

// Options control the generated PDF file.
type Options struct {
	// Paper is the page size.  If this is nil, A4 is used.
	Paper *pdf.Rectangle

	// Font is used for the symbols.  This must be set.
	Font *Font
}

// Paper returns the page size for one of the names "a4", "a5" and
// "letter".  Case is ignored.
func Paper(name string) (*pdf.Rectangle, error) {
	switch strings.ToLower(name) {
	case "a4":
		return document.A4, nil
	case "a5":
		return document.A5, nil
	case "letter":
		return document.Letter, nil
	default:
		return nil, fmt.Errorf("unknown paper size %q", name)
	}
}

// Canvas draws a guide onto a PDF page.
type Canvas struct {
	page     *document.Page
	font     *Font
	embedded *truetype.Composite

	err error
}

var _ xstitch.Canvas = (*Canvas)(nil)

// Create starts a new PDF file.  Missing parent directories are created.
// The file is only complete after [Canvas.Close] has been called.
func Create(fileName string, opt *Options) (*Canvas, error) {
	paper, F, err := checkOptions(opt)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(fileName)
	err = os.MkdirAll(dir, 0o755)
	if err != nil {
		return nil, err
	}

	page, err := document.CreateSinglePage(fileName, paper, pdf.V1_7, nil)
	if err != nil {
		return nil, err
	}
	return newCanvas(page, F)
}

// Write starts a new PDF document which is written to w.
// The document is only complete after [Canvas.Close] has been called.
func Write(w io.Writer, opt *Options) (*Canvas, error) {
	paper, F, err := checkOptions(opt)
	if err != nil {
		return nil, err
	}

	page, err := document.WriteSinglePage(w, paper, pdf.V1_7, nil)
	if err != nil {
		return nil, err
	}
	return newCanvas(page, F)
}

func checkOptions(opt *Options) (*pdf.Rectangle, *Font, error) {
	if opt == nil || opt.Font == nil {
		return nil, nil, errors.New("pdfcanvas: no font given")
	}
	paper := opt.Paper
	if paper == nil {
		paper = document.A4
	}
	return paper, opt.Font, nil
}

func newCanvas(page *document.Page, F *Font) (*Canvas, error) {
	embedded, err := truetype.NewComposite(F.info, nil)
	if err != nil {
		page.Close()
		return nil, fmt.Errorf("pdfcanvas: %w", err)
	}
	c := &Canvas{
		page:     page,
		font:     F,
		embedded: embedded,
	}
	return c, nil
}

// PageSize implements the [xstitch.Canvas] interface.
func (c *Canvas) PageSize() (width, height float64) {
	paper := c.page.GetPageSize()
	return paper.URx - paper.LLx, paper.URy - paper.LLy
}

// SetStrokeColor implements the [xstitch.Canvas] interface.
func (c *Canvas) SetStrokeColor(col xstitch.RGB) {
	r, g, b := col.Floats()
	c.page.SetStrokeColor(color.DeviceRGB{r, g, b})
}

// SetFillColor implements the [xstitch.Canvas] interface.
func (c *Canvas) SetFillColor(col xstitch.RGB) {
	r, g, b := col.Floats()
	c.page.SetFillColor(color.DeviceRGB{r, g, b})
}

// SetLineWidth implements the [xstitch.Canvas] interface.
func (c *Canvas) SetLineWidth(w float64) {
	c.page.SetLineWidth(w)
}

// StrokeRect implements the [xstitch.Canvas] interface.
func (c *Canvas) StrokeRect(x, y, width, height float64) {
	c.page.Rectangle(x, y, width, height)
	c.page.Stroke()
}

// FillCircle implements the [xstitch.Canvas] interface.
func (c *Canvas) FillCircle(cx, cy, radius float64) {
	c.drawPath(raster.Circle(cx, cy, radius))
	c.page.Fill()
}

// TextBox implements the [xstitch.Canvas] interface.
//
// The font size is chosen so that the text fills the box height, unless
// this would make the text wider than the box.
func (c *Canvas) TextBox(s string, x, y, width, height float64) {
	if s == "" {
		return
	}

	size := boxFill * height
	if w := c.font.Width(s, size); w > width {
		size *= width / w
	}
	w := c.font.Width(s, size)
	asc := c.font.Ascent(size)
	desc := c.font.Descent(size)

	// centre the ascent/descent band in the box
	x0 := x + (width-w)/2
	y0 := y + height/2 - (asc+desc)/2

	c.page.TextSetFont(c.embedded, size)
	c.page.TextBegin()
	c.page.TextFirstLine(x0, y0)
	c.page.TextShow(s)
	c.page.TextEnd()
}

// Err implements the [xstitch.Canvas] interface.
func (c *Canvas) Err() error {
	if c.err != nil {
		return c.err
	}
	if c.page.Builder != nil {
		return c.page.Builder.Err
	}
	return nil
}

// Close writes the page and finishes the PDF file.  If an error occurred
// while drawing, this error is returned and the file is incomplete.
func (c *Canvas) Close() error {
	drawErr := c.Err()
	err := c.page.Close()
	if drawErr != nil {
		return drawErr
	}
	return err
}

// drawPath appends p to the current path of the page.
func (c *Canvas) drawPath(p path.Path) {
	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			c.page.MoveTo(pts[0].X, pts[0].Y)
		case path.CmdLineTo:
			c.page.LineTo(pts[0].X, pts[0].Y)
		case path.CmdCubeTo:
			c.page.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
		case path.CmdClose:
			c.page.ClosePath()
		default:
			c.err = fmt.Errorf("pdfcanvas: unsupported path command %v", cmd)
			return
		}
	}
}

// boxFill is the font size as a fraction of the text box height.
const boxFill = 0.8
