// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"strings"
	"testing"
)

func assemble(t *testing.T, code string) *Result {
	t.Helper()
	r, err := Assemble([]byte(code), "test", AssembleOptions{})
	if err != nil {
		t.Fatalf("Assemble returned an error: %v", err)
	}
	return r
}

func checkImage(t *testing.T, code string, addr int, expected ...int) {
	t.Helper()
	r := assemble(t, code)
	if r.Errors() != 0 {
		t.Fatalf("unexpected errors: %v", r.Diagnostics)
	}
	for i, want := range expected {
		got := r.Image.At(addr + i)
		if got != want {
			t.Errorf("byte at $%04X: got %02X, want %02X", addr+i, got, want)
		}
	}
}

func checkErrorKind(t *testing.T, code string, kind ErrorKind) {
	t.Helper()
	r := assemble(t, code)
	for _, d := range r.Diagnostics {
		if d.Severity != SeverityError || d.Kind != kind {
			continue
		}
		return
	}
	t.Fatalf("expected an error of kind %v, got none (diagnostics: %v)", kind, r.Diagnostics)
}

func TestImpliedAndAccumulator(t *testing.T) {
	checkImage(t, "ORG $1000\nCLC\nSEC\nASL A", 0x1000, 0x18, 0x38, 0x0A)
}

func TestImmediate(t *testing.T) {
	checkImage(t, "ORG $1000\nLDA #$42", 0x1000, 0xA9, 0x42)
}

func TestZeroPageVersusAbsolute(t *testing.T) {
	checkImage(t, "ORG $1000\nLDA $10", 0x1000, 0xA5, 0x10)
	checkImage(t, "ORG $1000\nLDA $1234", 0x1000, 0xAD, 0x34, 0x12)
}

func TestForwardReferenceForcesAbsolute(t *testing.T) {
	code := "ORG $1000\nLDA LATER\nLATER: NOP"
	checkImage(t, code, 0x1000, 0xAD, 0x03, 0x10)
}

func TestIndexedAddressing(t *testing.T) {
	checkImage(t, "ORG $1000\nLDA $10,X", 0x1000, 0xB5, 0x10)
	checkImage(t, "ORG $1000\nLDA $1234,X", 0x1000, 0xBD, 0x34, 0x12)
	checkImage(t, "ORG $1000\nLDX $10,Y", 0x1000, 0xB6, 0x10)
}

func TestIndirectAddressing(t *testing.T) {
	checkImage(t, "ORG $1000\nJMP [$1234]", 0x1000, 0x6C, 0x34, 0x12)
	checkImage(t, "ORG $1000\nLDA [$10,X]", 0x1000, 0xA1, 0x10)
	checkImage(t, "ORG $1000\nLDA [$10],Y", 0x1000, 0xB1, 0x10)
}

func TestRelativeBranch(t *testing.T) {
	code := "ORG $1000\nLOOP: NOP\nBNE LOOP"
	checkImage(t, code, 0x1000, 0xEA, 0xD0, 0xFD)
}

func TestRelativeBranchOutOfRange(t *testing.T) {
	var b strings.Builder
	b.WriteString("ORG $1000\nBNE TARGET\n")
	for i := 0; i < 200; i++ {
		b.WriteString("NOP\n")
	}
	b.WriteString("TARGET: NOP\n")
	checkErrorKind(t, b.String(), RelativeBranchOutOfRange)
}

func TestByteAndWordData(t *testing.T) {
	checkImage(t, "ORG $1000\nBYTE $01, $02, $03", 0x1000, 0x01, 0x02, 0x03)
	checkImage(t, "ORG $1000\nWORD $1234", 0x1000, 0x34, 0x12)
}

func TestRepData(t *testing.T) {
	checkImage(t, "ORG $1000\nBYTE REP(4) $AA", 0x1000, 0xAA, 0xAA, 0xAA, 0xAA)
}

func TestSpace(t *testing.T) {
	r := assemble(t, "ORG $1000\nBYTES 4\nBYTE $FF")
	if r.Errors() != 0 {
		t.Fatalf("unexpected errors: %v", r.Diagnostics)
	}
	for i := 0; i < 4; i++ {
		if v := r.Image.At(0x1000 + i); v != -1 {
			t.Errorf("expected unwritten cell at $%04X, got %02X", 0x1000+i, v)
		}
	}
	if v := r.Image.At(0x1004); v != 0xFF {
		t.Errorf("got %02X, want FF", v)
	}
}

func TestUndefinedSymbolFailsPass2Only(t *testing.T) {
	r := assemble(t, "ORG $1000\nLDA UNDEF")
	if r.Errors() == 0 {
		t.Fatalf("expected an error for the undefined symbol")
	}
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError && d.Kind != UndefinedSymbolsInOperand {
			t.Errorf("expected only the pass-2 undefined-symbol error, got kind %v: %s", d.Kind, d.Message)
		}
	}
}

func TestOrgMustBeDefinedInPass1(t *testing.T) {
	checkErrorKind(t, "ORG UNDEF\nNOP", OrgUndefined)
}

func TestSymbolRedefinition(t *testing.T) {
	checkErrorKind(t, "ORG $1000\nFOO: NOP\nFOO: NOP", SymbolRedefinition)
}

func TestUnknownOpcode(t *testing.T) {
	checkErrorKind(t, "ORG $1000\nBOGUS $10", UnknownOpcode)
}

func TestDivideByZero(t *testing.T) {
	checkErrorKind(t, "ORG $1000\nBYTE 1/0", DivideByZero)
}

func TestUndocumentedOpcode(t *testing.T) {
	r := assemble(t, "ORG $1000\nSLO $10")
	if r.Errors() != 0 {
		t.Fatalf("unexpected errors: %v", r.Diagnostics)
	}
	if !r.Statements[1].Undocumented {
		t.Error("expected SLO to be flagged undocumented")
	}
}

func TestLocationToken(t *testing.T) {
	checkImage(t, "ORG $1000\nBYTE .-$1000", 0x1000, 0x00)
}

func TestTopLevelParenthesizedOperandWarns(t *testing.T) {
	r := assemble(t, "ORG $1000\nLDA ($10)")
	found := false
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityWarning {
			found = true
		}
	}
	if !found {
		t.Error("expected a warning for the top-level parenthesized operand")
	}
}

func TestReorderingIndependentSetsIsStable(t *testing.T) {
	r1 := assemble(t, "ORG $1000\nSET A = 1\nSET B = 2\nBYTE A, B")
	r2 := assemble(t, "ORG $1000\nSET B = 2\nSET A = 1\nBYTE A, B")
	if r1.Errors() != 0 || r2.Errors() != 0 {
		t.Fatalf("unexpected errors")
	}
	if r1.Image.At(0x1000) != r2.Image.At(0x1000) || r1.Image.At(0x1001) != r2.Image.At(0x1001) {
		t.Error("reordering independent SET statements changed the image")
	}
}
