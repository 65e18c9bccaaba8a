// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"fmt"
	"io"
	"strings"
)

const listingWidth = 132

// WriteListing renders the full program listing: one block of rows
// per statement (continuation rows for statements wider than 5
// bytes), a diagnostics block if any were produced, and the dual
// symbol table dump.
func WriteListing(w io.Writer, result *Result) error {
	for _, s := range result.Statements {
		if err := writeStatementRows(w, s, result.Image); err != nil {
			return err
		}
	}

	if len(result.Diagnostics) > 0 {
		fmt.Fprintln(w, "\nErrors and Warnings")
		fmt.Fprintln(w, "--------------------")
		for _, d := range result.Diagnostics {
			fmt.Fprintf(w, "%5d %-7s %s\n", d.Line, d.Severity.String(), d.Message)
		}
	}

	fmt.Fprintln(w, "\nSymbol table by name")
	fmt.Fprintln(w, "--------------------")
	writeSymbols(w, result.Symbols, result.Symbols.Names())

	fmt.Fprintln(w, "\nSymbol table by value")
	fmt.Fprintln(w, "---------------------")
	writeSymbols(w, result.Symbols, result.Symbols.NamesByValue())

	return nil
}

func writeStatementRows(w io.Writer, s *Statement, img *Image) error {
	if s.Kind == StmtNoop && s.Label == "" && s.Comment == "" {
		_, err := fmt.Fprintf(w, "%5d\n", s.Line)
		return err
	}

	length := s.Length()
	if length < 0 {
		length = 0
	}

	bytes := make([]int, length)
	for i := 0; i < length; i++ {
		bytes[i] = img.At(s.Loc + i)
	}

	first := bytes
	if len(first) > 5 {
		first = first[:5]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%5d %04X  ", s.Line, s.Loc)
	writeByteCells(&b, first)
	b.WriteString(attributesColumn(s))
	b.WriteByte(' ')
	b.WriteString(labelField(s.Label))
	b.WriteString("  ")
	fmt.Fprintf(&b, "%-20s", statementText(s))
	if s.Comment != "" {
		b.WriteString("; ")
		b.WriteString(s.Comment)
	}
	b.WriteByte('\n')
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}

	for remaining := bytes[len(first):]; len(remaining) > 0; {
		chunk := remaining
		if len(chunk) > 5 {
			chunk = chunk[:5]
		}
		addr := s.Loc + (length - len(remaining))
		var cb strings.Builder
		fmt.Fprintf(&cb, "%5d %04X  ", s.Line, addr)
		writeByteCells(&cb, chunk)
		cb.WriteByte('\n')
		if _, err := io.WriteString(w, cb.String()); err != nil {
			return err
		}
		remaining = remaining[len(chunk):]
	}

	return nil
}

func writeByteCells(b *strings.Builder, bs []int) {
	for i := 0; i < 5; i++ {
		if i < len(bs) {
			fmt.Fprintf(b, "%02X ", bs[i]&0xFF)
		} else {
			b.WriteString("   ")
		}
	}
}

// attributesColumn renders the CCAUS column: two-digit clock count,
// '+' or ' ' for extra-clocks, a literal space, 'U' or ' ' for
// undocumented, 'S' or ' ' for unstable. Only meaningful for
// StmtInstruction; blank otherwise.
func attributesColumn(s *Statement) string {
	if s.Kind != StmtInstruction {
		return "      "
	}
	extra := ' '
	if s.ExtraClocks {
		extra = '+'
	}
	undoc := ' '
	if s.Undocumented {
		undoc = 'U'
	}
	unstable := ' '
	if s.Unstable {
		unstable = 'S'
	}
	return fmt.Sprintf("%2d%c %c%c", s.Clocks, extra, undoc, unstable)
}

func labelField(label string) string {
	if label == "" {
		return fmt.Sprintf("%-9s", "")
	}
	return fmt.Sprintf("%-9s", label+":")
}

// statementText renders a statement the way the source would read
// back, for the listing's right-hand column.
func statementText(s *Statement) string {
	switch s.Kind {
	case StmtOrg:
		return "ORG " + s.OrgExpr.String()
	case StmtSet:
		return "SET " + s.SetName + " = " + s.SetExpr.String()
	case StmtInstruction:
		addr := addressText(s.Addr)
		if addr == "" {
			return s.Mnemonic
		}
		return s.Mnemonic + " " + addr
	case StmtData:
		kw := "BYTE"
		if s.DataSize == SizeWord {
			kw = "WORD"
		}
		parts := make([]string, len(s.Elements))
		for i, el := range s.Elements {
			if el.Count != nil {
				parts[i] = fmt.Sprintf("REP(%s) %s", el.Count.String(), el.Value.String())
			} else {
				parts[i] = el.Value.String()
			}
		}
		return kw + " " + strings.Join(parts, ", ")
	case StmtSpace:
		kw := "BYTES"
		if s.SpaceSize == SizeWord {
			kw = "WORDS"
		}
		return kw + " " + s.SpaceCount.String()
	}
	return ""
}

func addressText(a Address) string {
	switch a.Mode {
	case AddrImplied:
		return ""
	case AddrAccumulator:
		return "A"
	case AddrImmediate:
		return "#" + a.Expr.String()
	case AddrAddress:
		return a.Expr.String()
	case AddrAddressX:
		return a.Expr.String() + ",X"
	case AddrAddressY:
		return a.Expr.String() + ",Y"
	case AddrIndirect:
		return "[" + a.Expr.String() + "]"
	case AddrIndirectX:
		return "[" + a.Expr.String() + ",X]"
	case AddrIndirectY:
		return "[" + a.Expr.String() + "],Y"
	}
	return ""
}

func writeSymbols(w io.Writer, symtab *SymbolTable, names []string) {
	if len(names) == 0 {
		return
	}
	maxLen := 0
	for _, n := range names {
		if len(n) > maxLen {
			maxLen = len(n)
		}
	}
	entryWidth := maxLen + 8
	perLine := listingWidth / entryWidth
	if perLine < 1 {
		perLine = 1
	}

	for i, n := range names {
		sym := symtab.Lookup(n)
		fmt.Fprintf(w, "%-*s $%04X  ", maxLen, n, sym.Value)
		if (i+1)%perLine == 0 {
			fmt.Fprintln(w)
		}
	}
	if len(names)%perLine != 0 {
		fmt.Fprintln(w)
	}
}
