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

// Command xstitch converts a bitmap image into a cross-stitch guide.
//
// Usage:
//
//	xstitch [options] INPUT_IMAGE OUTPUT_PDF
//
// Every pixel of the input image becomes one cell of the guide.  Opaque
// pixels are shown as a coloured circle with a symbol, transparent pixels
// as an empty cell.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"

	"golang.org/x/text/unicode/runenames"

	"seehuhn.de/go/xstitch"
	"seehuhn.de/go/xstitch/assets"
	"seehuhn.de/go/xstitch/internal/source"
	"seehuhn.de/go/xstitch/pdfcanvas"
	"seehuhn.de/go/xstitch/preview"
	"seehuhn.de/go/xstitch/symbol"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type config struct {
	input, output string

	font         string
	paper        string
	seed         uint64
	preview      string
	previewScale float64
	legend       bool
	verbose      bool
}

// run executes the command and returns the exit status.
// Messages for the user go to stdout, log output goes to stderr.
func run(args []string, stdout, stderr io.Writer) int {
	cfg := &config{}
	flags := flag.NewFlagSet("xstitch", flag.ContinueOnError)
	flags.SetOutput(stdout)
	flags.StringVar(&cfg.font, "font", "", "TrueType font for the symbols (default DejaVu Sans)")
	flags.StringVar(&cfg.paper, "paper", "a4", "paper size (a4, a5 or letter)")
	flags.Uint64Var(&cfg.seed, "seed", 0, "seed for the symbol choice (0 = random)")
	flags.StringVar(&cfg.preview, "preview", "", "also write a PNG preview to this file")
	flags.Float64Var(&cfg.previewScale, "preview-scale", 2, "preview pixels per PDF point")
	flags.BoolVar(&cfg.legend, "legend", false, "print the colour table")
	flags.BoolVar(&cfg.verbose, "v", false, "verbose logging")
	flags.Usage = func() {
		fmt.Fprintln(stdout, "Usage: xstitch [options] INPUT_IMAGE OUTPUT_PDF")
		flags.PrintDefaults()
	}

	err := flags.Parse(args)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	} else if err != nil {
		return 1
	}
	if flags.NArg() != 2 {
		fmt.Fprintln(stdout, "Error: Incorrect arguments given")
		fmt.Fprintln(stdout, "Usage: xstitch [options] INPUT_IMAGE OUTPUT_PDF")
		return 1
	}
	cfg.input = flags.Arg(0)
	cfg.output = flags.Arg(1)

	if cfg.verbose {
		h := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		xstitch.SetLogger(slog.New(h))
		defer xstitch.SetLogger(nil)
	}

	err = generate(cfg, stdout)
	if err != nil {
		fmt.Fprintln(stdout, "Error:", message(err))
		return 1
	}
	return 0
}

// message turns err into the text shown to the user.
func message(err error) string {
	switch {
	case errors.Is(err, source.ErrNotFound):
		return "Image path does not exist"
	case errors.Is(err, source.ErrDecode):
		return "Could not read image"
	default:
		return err.Error()
	}
}

func generate(cfg *config, stdout io.Writer) error {
	log := xstitch.Logger()

	img, format, err := source.Open(cfg.input)
	if err != nil {
		return err
	}
	log.Debug("image loaded",
		slog.String("file", cfg.input),
		slog.String("format", format),
		slog.Int("width", img.Bounds().Dx()),
		slog.Int("height", img.Bounds().Dy()))

	paper, err := pdfcanvas.Paper(cfg.paper)
	if err != nil {
		return err
	}

	fontData := assets.DejaVuSans
	if cfg.font != "" {
		fontData, err = os.ReadFile(cfg.font)
		if err != nil {
			return fmt.Errorf("cannot read font: %w", err)
		}
	}
	F, err := pdfcanvas.ParseFont(fontData)
	if err != nil {
		return err
	}

	seed := cfg.seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed))
	pool := symbol.NewDefaultPool(rng)
	dropped := pool.Restrict(F.HasGlyph)
	log.Debug("symbol pool",
		slog.Uint64("seed", seed),
		slog.Int("symbols", pool.Len()),
		slog.Int("dropped", dropped))
	reg := symbol.NewRegistry(pool)

	err = writePDF(cfg.output, img, reg, &pdfcanvas.Options{Paper: paper, Font: F})
	if err != nil {
		return err
	}

	if cfg.preview != "" {
		w, h := paper.URx-paper.LLx, paper.URy-paper.LLy
		err = writePreview(cfg.preview, img, reg, fontData, w, h, cfg.previewScale)
		if err != nil {
			return err
		}
	}

	if cfg.legend {
		printLegend(stdout, reg)
	}
	return nil
}

// writePDF renders the guide into a PDF file.  If anything goes wrong,
// the partially written file is removed.
func writePDF(fileName string, img image.Image, reg *symbol.Registry, opt *pdfcanvas.Options) (err error) {
	c, err := pdfcanvas.Create(fileName, opt)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(fileName)
		}
	}()

	_, err = xstitch.Render(img, c, reg, nil)
	closeErr := c.Close()
	if err != nil {
		return err
	}
	return closeErr
}

// writePreview renders the guide a second time, into a PNG file.  The
// registry already knows all colours, so the symbols match the PDF file.
func writePreview(fileName string, img image.Image, reg *symbol.Registry, fontData []byte, w, h, scale float64) (err error) {
	pf, err := preview.ParseFont(fontData)
	if err != nil {
		return err
	}
	c, err := preview.New(w, h, pf, &preview.Options{Scale: scale, Background: xstitch.White})
	if err != nil {
		return err
	}

	_, err = xstitch.Render(img, c, reg, nil)
	closeErr := c.Close()
	if err != nil {
		return err
	} else if closeErr != nil {
		return closeErr
	}

	out, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := out.Close()
		if err == nil {
			err = closeErr
		}
		if err != nil {
			os.Remove(fileName)
		}
	}()
	return c.WritePNG(out)
}

// printLegend lists the colours of the guide together with their symbols.
func printLegend(w io.Writer, reg *symbol.Registry) {
	for _, e := range reg.Entries() {
		r := []rune(e.Symbol)[0]
		fmt.Fprintf(w, "#%s  %s  U+%04X %s\n", e.Key, e.Symbol, r, runenames.Name(r))
	}
}
