// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "sort"

// SourceMap maps emitted addresses back to the source line that
// produced them, for tools (the disassembler adapter's callers) that
// want to annotate raw bytes with the statement that generated them.
type SourceMap struct {
	addrs []int
	lines []int
}

// NewSourceMap builds a SourceMap from an assembly result's statement
// list, keyed by each statement's starting address.
func NewSourceMap(result *Result) *SourceMap {
	m := &SourceMap{
		addrs: make([]int, 0, len(result.Statements)),
		lines: make([]int, 0, len(result.Statements)),
	}
	for _, s := range result.Statements {
		if s.Kind == StmtNoop {
			continue
		}
		m.addrs = append(m.addrs, s.Loc)
		m.lines = append(m.lines, s.Line)
	}
	return m
}

// Search returns the source line number of the last mapped statement
// whose starting address is at or below addr, searching the start
// addresses as an ascending list (they are in source order, so an ORG
// that moves the location counter backwards breaks that ordering).
// ok is false only when addr lies below the first start address; an
// address past a statement's last byte, such as one in a gap between
// ORG blocks, still maps to that statement.
func (m *SourceMap) Search(addr int) (line int, ok bool) {
	i := sort.Search(len(m.addrs), func(i int) bool {
		return m.addrs[i] > addr
	})
	if i == 0 {
		return 0, false
	}
	return m.lines[i-1], true
}
