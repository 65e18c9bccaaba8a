// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package asm implements a two-pass cross-assembler for the MOS 6502
// microprocessor, including the full documented instruction set and
// the well-known undocumented opcodes.
package asm

import "io"

// AssembleOptions controls an assembly run.
type AssembleOptions struct {
	// Trace is passed through to the parser, but nothing is written to
	// it: no trace output is produced. User-facing diagnostics are
	// always returned in Result.Diagnostics.
	Trace io.Writer
}

// Result is everything produced by a successful or partially-failed
// assembly run.
type Result struct {
	Statements  []*Statement
	Symbols     *SymbolTable
	Image       *Image
	Diagnostics []Diagnostic
	Filename    string
}

// Errors returns the number of error-severity diagnostics.
func (r *Result) Errors() int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			n++
		}
	}
	return n
}

// Warnings returns the number of warning-severity diagnostics.
func (r *Result) Warnings() int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityWarning {
			n++
		}
	}
	return n
}

// Assemble parses src and runs both passes over it, producing a
// Result. Parse failures that abort before a statement list exists
// (malformed source) are returned as a non-nil error; once parsing
// succeeds, per-statement failures are reported as diagnostics instead
// and each pass continues to the end of the statement list. Pass 2 runs
// only if Pass 1 reported no errors; otherwise the returned image has
// no cells written.
//
// A fresh OpcodeTable and SymbolTable are built for each call;
// Assemble holds no state between runs.
func Assemble(src []byte, filename string, opts AssembleOptions) (*Result, error) {
	stmts, err := parseProgram(src, filename, opts)
	if err != nil {
		return nil, err
	}

	optab := NewOpcodeTable()
	symtab := NewSymbolTable()

	p1 := newPass1(symtab, optab)
	p1.run(stmts)

	p2 := newPass2(symtab, optab)
	if p1.diags.errors() == 0 {
		p2.run(stmts)
	}

	return &Result{
		Statements:  stmts,
		Symbols:     symtab,
		Image:       p2.image,
		Diagnostics: mergeDiagnostics(p1.diags, p2.diags),
		Filename:    filename,
	}, nil
}
