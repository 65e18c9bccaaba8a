// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"sort"
	"strings"
)

// Symbol is a named value in the symbol table. An absent name looks up
// as an undefined Symbol with a placeholder value of 1 — see
// SymbolTable.Lookup.
type Symbol struct {
	Defined bool
	Value   int
}

// SymbolTable is a case-insensitive mapping from identifier to Symbol.
// Names are upper-cased on both insert and lookup.
type SymbolTable struct {
	entries map[string]Symbol
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{entries: make(map[string]Symbol)}
}

// Lookup returns the named symbol, or the sentinel (Defined: false,
// Value: 1) if no symbol by that name has ever been set. The sentinel
// value of 1 (rather than 0) keeps a partially-undefined expression
// from dividing by zero while it is still being checked for
// definedness; callers must check Defined before trusting Value.
func (t *SymbolTable) Lookup(name string) Symbol {
	s, ok := t.entries[strings.ToUpper(name)]
	if !ok {
		return Symbol{Defined: false, Value: 1}
	}
	return s
}

// Set upserts a symbol's value. If the symbol is already defined with
// a different value, it fails with SymbolRedefinition.
func (t *SymbolTable) Set(name string, value int) error {
	key := strings.ToUpper(name)
	if existing, ok := t.entries[key]; ok && existing.Defined && existing.Value != value {
		return newError(SymbolRedefinition,
			"symbol '%s' cannot be redefined from $%X to $%X", name, existing.Value, value)
	}
	t.entries[key] = Symbol{Defined: true, Value: value}
	return nil
}

// Clear removes all entries.
func (t *SymbolTable) Clear() {
	t.entries = make(map[string]Symbol)
}

// Names returns all defined symbol names, in upper-cased form, sorted
// alphabetically.
func (t *SymbolTable) Names() []string {
	names := make([]string, 0, len(t.entries))
	for name := range t.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NamesByValue returns all defined symbol names sorted by their value,
// ascending.
func (t *SymbolTable) NamesByValue() []string {
	names := t.Names()
	sort.SliceStable(names, func(i, j int) bool {
		return t.entries[names[i]].Value < t.entries[names[j]].Value
	})
	return names
}
