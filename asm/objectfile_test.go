// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"bytes"
	"testing"
)

func TestObjectFileRoundTrip(t *testing.T) {
	r := assemble(t, "ORG $1000\nLDA #$42\nSTA $2000\nBYTES 8\nBYTE $FF")
	if r.Errors() != 0 {
		t.Fatalf("unexpected errors: %v", r.Diagnostics)
	}

	var buf bytes.Buffer
	if err := WriteObjectFile(&buf, r.Image); err != nil {
		t.Fatalf("WriteObjectFile: %v", err)
	}

	readBack := newImage()
	if err := ReadObjectFile(&buf, readBack); err != nil {
		t.Fatalf("ReadObjectFile: %v", err)
	}

	for addr := 0; addr < 0x10000; addr++ {
		want := r.Image.At(addr)
		got := readBack.At(addr)
		if want != got {
			t.Fatalf("mismatch at $%04X: wrote %d, read back %d", addr, want, got)
		}
	}
}

func TestObjectFileSkipsUnwrittenCells(t *testing.T) {
	img := newImage()
	img[0x10] = 0xAB

	var buf bytes.Buffer
	if err := WriteObjectFile(&buf, img); err != nil {
		t.Fatalf("WriteObjectFile: %v", err)
	}

	out := buf.String()
	if !bytes.Contains([]byte(out), []byte("@0010")) {
		t.Errorf("expected an @0010 address marker, got:\n%s", out)
	}
}
