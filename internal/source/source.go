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

// Package source reads the bitmap images which guides are made from.
package source

import (
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"os"

	// supported input formats
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	// ErrNotFound indicates that the image file does not exist.
	ErrNotFound = errors.New("image path does not exist")

	// ErrDecode indicates that the file could not be read as an image.
	ErrDecode = errors.New("could not read image")
)

// Open reads the image file with the given name.
// For animated GIF files, only the first frame is used.
func Open(fileName string) (image.Image, string, error) {
	fd, err := os.Open(fileName)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, "", fmt.Errorf("%s: %w", fileName, ErrNotFound)
	} else if err != nil {
		return nil, "", err
	}
	defer fd.Close()

	return Decode(fd)
}

// Decode reads an image from r and returns the image together with
// the name of its format.
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return img, format, nil
}
