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

// Package symbol allocates the glyphs which mark the colours of a
// cross-stitch guide.
//
// A [Pool] holds the symbols which are still available, and a [Registry]
// hands them out, one per colour.  Both types are meant to be used for a
// single rendering run and are not safe for concurrent use.
package symbol

import (
	"errors"
	"math/rand/v2"
	"slices"
)

// ErrExhausted is returned when a symbol is requested from an empty pool.
var ErrExhausted = errors.New("symbol pool exhausted")

// Range is an inclusive range of Unicode code points.
type Range struct {
	First, Last rune
}

// Len returns the number of code points in the range.
func (r Range) Len() int {
	if r.Last < r.First {
		return 0
	}
	return int(r.Last-r.First) + 1
}

// The Unicode blocks used for stitch markers.
var (
	BlockElements   = Range{First: 0x2580, Last: 0x259F}
	GeometricShapes = Range{First: 0x25A0, Last: 0x25FF}
)

// DefaultRanges lists the code point ranges of the default symbol set.
var DefaultRanges = []Range{BlockElements, GeometricShapes}

// Runes flattens the given ranges into a sorted list of code points without
// duplicates.
func Runes(ranges ...Range) []rune {
	n := 0
	for _, r := range ranges {
		n += r.Len()
	}
	res := make([]rune, 0, n)
	for _, r := range ranges {
		for c := r.First; c <= r.Last; c++ {
			res = append(res, c)
		}
	}
	slices.Sort(res)
	return slices.Compact(res)
}

// Pool is the set of symbols which have not yet been assigned.
// Every symbol leaves the pool at most once, so symbols handed out
// from the same pool are distinct.
type Pool struct {
	rng     *rand.Rand
	symbols []string
}

// NewPool returns a pool containing one single-character symbol for each
// of the given runes.  Duplicate runes are ignored.  The pool uses rng to
// choose symbols; if rng is nil, the global random source is used.
func NewPool(rng *rand.Rand, runes []rune) *Pool {
	seen := make(map[rune]bool, len(runes))
	symbols := make([]string, 0, len(runes))
	for _, r := range runes {
		if seen[r] {
			continue
		}
		seen[r] = true
		symbols = append(symbols, string(r))
	}
	return &Pool{
		rng:     rng,
		symbols: symbols,
	}
}

// NewDefaultPool returns a pool holding the symbols from [DefaultRanges].
func NewDefaultPool(rng *rand.Rand) *Pool {
	return NewPool(rng, Runes(DefaultRanges...))
}

// Len returns the number of symbols remaining in the pool.
func (p *Pool) Len() int {
	return len(p.symbols)
}

// Draw removes a uniformly chosen symbol from the pool and returns it.
// If the pool is empty, [ErrExhausted] is returned.
func (p *Pool) Draw() (string, error) {
	n := len(p.symbols)
	if n == 0 {
		return "", ErrExhausted
	}

	var i int
	if p.rng != nil {
		i = p.rng.IntN(n)
	} else {
		i = rand.IntN(n)
	}

	s := p.symbols[i]
	p.symbols = slices.Delete(p.symbols, i, i+1)
	return s, nil
}

// Restrict removes all symbols for which keep returns false.
// This is used to drop symbols which the output font cannot display.
// The return value is the number of symbols removed.
func (p *Pool) Restrict(keep func(rune) bool) int {
	before := len(p.symbols)
	p.symbols = slices.DeleteFunc(p.symbols, func(s string) bool {
		for _, r := range s {
			if !keep(r) {
				return true
			}
		}
		return false
	})
	return before - len(p.symbols)
}

// Symbols returns a copy of the remaining symbols, in pool order.
func (p *Pool) Symbols() []string {
	return slices.Clone(p.symbols)
}
