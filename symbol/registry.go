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

package symbol

import "fmt"

// Entry records the symbol assigned to one colour.
type Entry struct {
	Key    string // colour key, six hex digits
	Symbol string
}

// Registry maps colour keys to symbols.  A symbol is drawn from the pool
// the first time a key is seen, and the same symbol is returned for this
// key from then on.
type Registry struct {
	pool    *Pool
	symbols map[string]string
	order   []string // keys in order of first use
}

// NewRegistry returns an empty registry which takes its symbols from pool.
func NewRegistry(pool *Pool) *Registry {
	return &Registry{
		pool:    pool,
		symbols: make(map[string]string),
	}
}

// SymbolFor returns the symbol for the given colour key, assigning
// a new symbol if the key has not been seen before.
// If a new symbol is needed but the pool is empty, the returned error
// wraps [ErrExhausted].
func (r *Registry) SymbolFor(key string) (string, error) {
	if s, ok := r.symbols[key]; ok {
		return s, nil
	}

	s, err := r.pool.Draw()
	if err != nil {
		return "", fmt.Errorf("colour #%s (%d colours assigned): %w",
			key, len(r.order), err)
	}
	r.symbols[key] = s
	r.order = append(r.order, key)
	return s, nil
}

// Lookup returns the symbol assigned to key, without assigning a new one.
func (r *Registry) Lookup(key string) (string, bool) {
	s, ok := r.symbols[key]
	return s, ok
}

// Len returns the number of colours which have a symbol.
func (r *Registry) Len() int {
	return len(r.order)
}

// Entries returns the assigned symbols in the order the colours were
// first seen.
func (r *Registry) Entries() []Entry {
	res := make([]Entry, len(r.order))
	for i, key := range r.order {
		res[i] = Entry{Key: key, Symbol: r.symbols[key]}
	}
	return res
}
