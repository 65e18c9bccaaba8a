// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"bytes"
	"strings"
	"testing"
)

func TestListingContainsStatementsAndSymbols(t *testing.T) {
	r := assemble(t, "ORG $1000\nSTART: LDA #$42\nSTA RESULT\nRESULT: BYTE $00")
	if r.Errors() != 0 {
		t.Fatalf("unexpected errors: %v", r.Diagnostics)
	}

	var buf bytes.Buffer
	if err := WriteListing(&buf, r); err != nil {
		t.Fatalf("WriteListing: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "1000") {
		t.Error("expected the listing to show address $1000")
	}
	if !strings.Contains(out, "START") {
		t.Error("expected the listing to show the START label")
	}
	if !strings.Contains(out, "RESULT") {
		t.Error("expected the symbol table to contain RESULT")
	}
}

func TestListingShowsDiagnostics(t *testing.T) {
	r := assemble(t, "ORG $1000\nLDA UNDEF")

	var buf bytes.Buffer
	if err := WriteListing(&buf, r); err != nil {
		t.Fatalf("WriteListing: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "Errors and Warnings") {
		t.Error("expected a diagnostics block since the assembly has errors")
	}
}
