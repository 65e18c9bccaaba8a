// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "testing"

func evalExpr(t *testing.T, e *Expr, symtab *SymbolTable, loc int) ExprResult {
	t.Helper()
	r, err := e.Eval(symtab, loc)
	if err != nil {
		t.Fatalf("Eval returned an error: %v", err)
	}
	return r
}

func TestExprConstantFolding(t *testing.T) {
	symtab := NewSymbolTable()
	e := newBinary(OpAdd, newConstant(2), newBinary(OpMul, newConstant(3), newConstant(4)))
	r := evalExpr(t, e, symtab, 0)
	if !r.IsDefined() || r.Value() != 14 {
		t.Errorf("got %v, want 14", r.Value())
	}
}

func TestExprUndefinedPropagation(t *testing.T) {
	symtab := NewSymbolTable()
	e := newBinary(OpAdd, newSymbolExpr("A"), newSymbolExpr("B"))
	r := evalExpr(t, e, symtab, 0)
	if r.IsDefined() {
		t.Fatal("expected an undefined result")
	}
	names := r.UndefinedSymbols()
	if len(names) != 2 || names[0] != "A" || names[1] != "B" {
		t.Errorf("got %v, want [A B]", names)
	}
}

func TestExprLocationToken(t *testing.T) {
	symtab := NewSymbolTable()
	r := evalExpr(t, newLocation(), symtab, 0x4000)
	if !r.IsDefined() || r.Value() != 0x4000 {
		t.Errorf("got %v, want $4000", r.Value())
	}
}

func TestExprDivideByZero(t *testing.T) {
	symtab := NewSymbolTable()
	e := newBinary(OpDiv, newConstant(1), newConstant(0))
	_, err := e.Eval(symtab, 0)
	if err == nil {
		t.Fatal("expected a divide-by-zero error")
	}
	if ae, ok := err.(*AsmError); !ok || ae.Kind != DivideByZero {
		t.Errorf("got %v, want DivideByZero", err)
	}
}

func TestExprUnaryOperators(t *testing.T) {
	symtab := NewSymbolTable()
	r := evalExpr(t, newUnary(OpNeg, newConstant(5)), symtab, 0)
	if r.Value() != -5 {
		t.Errorf("negate: got %d, want -5", r.Value())
	}
	r = evalExpr(t, newUnary(OpBitNeg, newConstant(0)), symtab, 0)
	if r.Value() != -1 {
		t.Errorf("bitwise not: got %d, want -1", r.Value())
	}
}

func TestExprSymbolLookup(t *testing.T) {
	symtab := NewSymbolTable()
	if err := symtab.Set("foo", 42); err != nil {
		t.Fatal(err)
	}
	r := evalExpr(t, newSymbolExpr("FOO"), symtab, 0)
	if !r.IsDefined() || r.Value() != 42 {
		t.Errorf("got %v, want 42 (case-insensitive lookup)", r.Value())
	}
}
