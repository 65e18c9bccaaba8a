// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

// DataSize distinguishes byte-sized from word-sized data.
type DataSize int

// Data sizes.
const (
	SizeByte DataSize = iota
	SizeWord
)

// AddrMode is the coarse addressing-mode tag carried by an
// instruction's Address. Address/AddressX/AddressY are sized later
// into zero-page vs. absolute by Pass 1/2.
type AddrMode int

// Addressing modes.
const (
	AddrImplied AddrMode = iota
	AddrAccumulator
	AddrImmediate
	AddrAddress
	AddrAddressX
	AddrAddressY
	AddrIndirect
	AddrIndirectX
	AddrIndirectY
)

// Address is an instruction operand: a mode tag plus the expression
// the mode applies to (nil for Implied and Accumulator).
type Address struct {
	Mode AddrMode
	Expr *Expr
}

// DataElement is one entry of a BYTE/WORD directive: either a plain
// expression, or a Count-many repetition of Value.
type DataElement struct {
	Count *Expr // nil unless this is a REP(count) element
	Value *Expr
}

// StmtKind tags the variant held by a Statement.
type StmtKind int

// Statement kinds.
const (
	StmtOrg StmtKind = iota
	StmtSet
	StmtInstruction
	StmtData
	StmtSpace
	StmtNoop
)

// Statement is one parsed line of source, carrying both the data the
// parser produced and the fields Pass 1/Pass 2 fill in.
type Statement struct {
	Kind    StmtKind
	Line    int
	Label   string
	Comment string

	// Loc is the location counter at the start of this statement, set
	// by Pass 1. NextLoc is the location counter just after this
	// statement, set by Pass 2.
	Loc     int
	NextLoc int

	// StmtOrg
	OrgExpr  *Expr
	orgValue int // computed by Pass 1, cross-checked in Pass 2 (I4)

	// StmtSet
	SetName string
	SetExpr *Expr

	// StmtInstruction
	Mnemonic     string
	Addr         Address
	OperandSize  DataSize // chosen by Pass 1
	Clocks       int      // filled by Pass 2
	ExtraClocks  bool
	Undocumented bool
	Unstable     bool

	// StmtData
	DataSize DataSize
	Elements []DataElement

	// StmtSpace
	SpaceSize  DataSize
	SpaceCount *Expr
}

// Length returns the number of bytes this statement occupies, valid
// once NextLoc has been set by Pass 2.
func (s *Statement) Length() int {
	return s.NextLoc - s.Loc
}
