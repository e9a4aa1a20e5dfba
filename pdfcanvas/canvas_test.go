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

package pdfcanvas

import (
	"bytes"
	"image"
	"image/color"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/pagetree"
	"seehuhn.de/go/pdf/reader"

	"seehuhn.de/go/xstitch"
	"seehuhn.de/go/xstitch/symbol"
)

func loadFont(t *testing.T) *Font {
	t.Helper()
	F, err := ParseFont(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	return F
}

func testImage() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 255})
	img.SetNRGBA(2, 0, color.NRGBA{B: 255, A: 255})
	img.SetNRGBA(0, 1, color.NRGBA{R: 255, A: 255})
	// (1, 1) and (2, 1) stay transparent
	return img
}

func newRegistry(F *Font) *symbol.Registry {
	pool := symbol.NewDefaultPool(rand.New(rand.NewPCG(1, 2)))
	pool.Restrict(F.HasGlyph)
	return symbol.NewRegistry(pool)
}

// pageContent reads back the content stream of a single-page PDF file.
// It returns how often each operator occurs, and the text shown by every
// text-showing operator.
func pageContent(t *testing.T, data []byte) (map[string]int, []string) {
	t.Helper()

	r, err := pdf.NewReader(bytes.NewReader(data), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	_, pageDict, err := pagetree.GetPage(r, 0)
	if err != nil {
		t.Fatal(err)
	}

	ops := make(map[string]int)
	var texts []string
	cur := ""
	rd := reader.New(r)
	rd.Text = func(text string) error {
		cur += text
		return nil
	}
	rd.EveryOp = func(op string, args []pdf.Object) error {
		ops[op]++
		if op == "Tj" || op == "TJ" {
			texts = append(texts, cur)
			cur = ""
		}
		return nil
	}
	err = rd.ParsePage(pageDict, matrix.Identity)
	if err != nil {
		t.Fatal(err)
	}
	return ops, texts
}

func TestCreate(t *testing.T) {
	F := loadFont(t)
	fileName := filepath.Join(t.TempDir(), "a", "b", "guide.pdf")

	c, err := Create(fileName, &Options{Font: F})
	if err != nil {
		t.Fatal(err)
	}
	reg := newRegistry(F)
	_, err = xstitch.Render(testImage(), c, reg, nil)
	if err != nil {
		t.Fatal(err)
	}
	err = c.Close()
	if err != nil {
		t.Fatal(err)
	}

	if reg.Len() != 3 {
		t.Errorf("%d colours registered, want 3", reg.Len())
	}

	data, err := os.ReadFile(fileName)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("output does not start with a PDF header: %q", data[:min(len(data), 16)])
	}

	// six cells, two of them transparent
	ops, texts := pageContent(t, data)
	if ops["re"] != 6 || ops["S"] != 6 {
		t.Errorf("%d rectangles, %d strokes, want 6 each", ops["re"], ops["S"])
	}
	if ops["f"] != 4 || len(texts) != 4 {
		t.Errorf("%d fills, %d texts, want 4 each", ops["f"], len(texts))
	}
	if len(texts) == 4 && texts[0] != texts[3] {
		t.Errorf("same colour, different symbols %q and %q", texts[0], texts[3])
	}
}

func TestFourColours(t *testing.T) {
	F := loadFont(t)
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 255})
	img.SetNRGBA(0, 1, color.NRGBA{B: 255, A: 255})
	img.SetNRGBA(1, 1, color.NRGBA{R: 255, G: 255, A: 255})

	buf := &bytes.Buffer{}
	c, err := Write(buf, &Options{Font: F})
	if err != nil {
		t.Fatal(err)
	}
	reg := newRegistry(F)
	_, err = xstitch.Render(img, c, reg, nil)
	if err != nil {
		t.Fatal(err)
	}
	err = c.Close()
	if err != nil {
		t.Fatal(err)
	}

	ops, texts := pageContent(t, buf.Bytes())
	if ops["re"] != 4 || ops["S"] != 4 || ops["f"] != 4 {
		t.Errorf("%d rectangles, %d strokes, %d fills, want 4 each",
			ops["re"], ops["S"], ops["f"])
	}
	// circle and symbol colours alternate
	if ops["RG"] < 1 || ops["rg"] < 4 {
		t.Errorf("%d stroke colours, %d fill colours", ops["RG"], ops["rg"])
	}
	if len(texts) != 4 {
		t.Fatalf("%d texts, want 4", len(texts))
	}
	seen := make(map[string]bool)
	for i, text := range texts {
		if text == "" {
			t.Errorf("text %d is empty", i)
		}
		seen[text] = true
	}
	if len(seen) != 4 {
		t.Errorf("symbols %q are not distinct", texts)
	}

	// the symbols in the file are the ones handed out by the registry
	for i, e := range reg.Entries() {
		if e.Symbol != texts[i] {
			t.Errorf("symbol %d is %q, registry has %q", i, texts[i], e.Symbol)
		}
	}
}

func TestWrite(t *testing.T) {
	F := loadFont(t)
	buf := &bytes.Buffer{}

	c, err := Write(buf, &Options{Font: F, Paper: document.Letter})
	if err != nil {
		t.Fatal(err)
	}
	w, h := c.PageSize()
	if w != 612 || h != 792 {
		t.Errorf("page size %gx%g, want 612x792", w, h)
	}

	_, err = xstitch.Render(testImage(), c, newRegistry(F), nil)
	if err != nil {
		t.Fatal(err)
	}
	err = c.Close()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Error("output does not start with a PDF header")
	}
}

func TestNoFont(t *testing.T) {
	_, err := Write(&bytes.Buffer{}, nil)
	if err == nil {
		t.Error("missing font not detected")
	}
	_, err = Create(filepath.Join(t.TempDir(), "x.pdf"), &Options{})
	if err == nil {
		t.Error("missing font not detected")
	}
}

func TestPaper(t *testing.T) {
	cases := []struct {
		name string
		want float64
	}{
		{"a4", document.A4.URx},
		{"A5", document.A5.URx},
		{"Letter", 612},
	}
	for _, tc := range cases {
		paper, err := Paper(tc.name)
		if err != nil {
			t.Errorf("%s: %v", tc.name, err)
			continue
		}
		if paper.URx != tc.want {
			t.Errorf("%s: width %g, want %g", tc.name, paper.URx, tc.want)
		}
	}
	if _, err := Paper("a3"); err == nil {
		t.Error("unknown paper size accepted")
	}
}

func TestFontMetrics(t *testing.T) {
	F := loadFont(t)

	if !F.HasGlyph('A') {
		t.Error("missing glyph for 'A'")
	}

	wA := F.Width("A", 10)
	if wA <= 0 || wA >= 10 {
		t.Errorf("implausible width %g for 'A'", wA)
	}
	if w := F.Width("AA", 20); math.Abs(w-4*wA) > 1e-9 {
		t.Errorf("width of 'AA' at 20pt is %g, want %g", w, 4*wA)
	}
	if F.Ascent(10) <= 0 {
		t.Error("ascent not positive")
	}
	if F.Descent(10) >= 0 {
		t.Error("descent not negative")
	}
}

// The Go fonts only have a format 4 cmap subtable, which cannot map
// code points above U+FFFF.
func TestHasGlyphSupplementary(t *testing.T) {
	F := loadFont(t)

	cases := []struct {
		r    rune
		want bool
	}{
		{'A', true},
		{'\U00010041', false}, // truncates to 'A'
		{'\U000F0000', false},
		{'\U0010FFFF', false},
		{'\U0001F600', false},
	}
	for _, tc := range cases {
		if got := F.HasGlyph(tc.r); got != tc.want {
			t.Errorf("HasGlyph(%U) = %t, want %t", tc.r, got, tc.want)
		}
	}
	if w := F.Width("\U00010041", 10); w != F.Width("\uFFFF", 10) {
		t.Errorf("U+10041 measured as a mapped glyph, width %g", w)
	}
}

func TestParseFontInvalid(t *testing.T) {
	_, err := ParseFont([]byte("not a font"))
	if err == nil {
		t.Error("invalid font data accepted")
	}
}
