// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "testing"

func TestSymbolTableCaseInsensitive(t *testing.T) {
	st := NewSymbolTable()
	if err := st.Set("Foo", 1); err != nil {
		t.Fatal(err)
	}
	if sym := st.Lookup("FOO"); !sym.Defined || sym.Value != 1 {
		t.Errorf("got %+v, want defined value 1", sym)
	}
}

func TestSymbolTableRedefinitionConflict(t *testing.T) {
	st := NewSymbolTable()
	if err := st.Set("FOO", 1); err != nil {
		t.Fatal(err)
	}
	if err := st.Set("FOO", 2); err == nil {
		t.Fatal("expected a redefinition error")
	}
	if err := st.Set("FOO", 1); err != nil {
		t.Errorf("redefining with the same value should be allowed: %v", err)
	}
}

func TestSymbolTableUnknownLookup(t *testing.T) {
	st := NewSymbolTable()
	sym := st.Lookup("NOPE")
	if sym.Defined {
		t.Error("expected an undefined symbol")
	}
}

func TestSymbolTableOrdering(t *testing.T) {
	st := NewSymbolTable()
	st.Set("B", 2)
	st.Set("A", 1)
	st.Set("C", 3)

	names := st.Names()
	if names[0] != "A" || names[1] != "B" || names[2] != "C" {
		t.Errorf("Names() not alphabetical: %v", names)
	}

	byValue := st.NamesByValue()
	if byValue[0] != "A" || byValue[1] != "B" || byValue[2] != "C" {
		t.Errorf("NamesByValue() not sorted by value: %v", byValue)
	}
}
