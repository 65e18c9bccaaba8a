// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "strings"

// EncMode is the fine-grained addressing-mode enumeration used by the
// opcode table. It is finer than AddrMode: Address/AddressX/AddressY
// collapse the ZeroPage/Absolute distinction that EncMode keeps.
type EncMode int

// Opcode-table addressing modes.
const (
	EncAccumulator EncMode = iota
	EncImmediate
	EncImplied
	EncZeroPage
	EncZeroPageX
	EncZeroPageY
	EncAbsolute
	EncAbsoluteX
	EncAbsoluteY
	EncIndirect
	EncIndirectX
	EncIndirectY
	EncRelative
)

// Encoding is one (mnemonic, mode) entry in the opcode table.
type Encoding struct {
	Opcode       byte
	Clocks       int
	ExtraClocks  bool
	Undocumented bool
	Unstable     bool
}

// Instruction holds every encoding a mnemonic supports.
type Instruction struct {
	Mnemonic  string
	encodings map[EncMode]Encoding
}

// Encoding returns the instruction's encoding for mode, if it has one.
func (i *Instruction) Encoding(mode EncMode) (Encoding, bool) {
	e, ok := i.encodings[mode]
	return e, ok
}

// OpcodeTable is the static mapping from mnemonic to Instruction,
// built once and treated as read-only thereafter.
type OpcodeTable struct {
	instructions map[string]*Instruction
}

// Lookup finds an instruction by mnemonic, case-insensitively.
func (t *OpcodeTable) Lookup(mnemonic string) (*Instruction, error) {
	inst, ok := t.instructions[strings.ToUpper(mnemonic)]
	if !ok {
		return nil, newError(UnknownOpcode, "unknown opcode '%s'", mnemonic)
	}
	return inst, nil
}

func (t *OpcodeTable) add(mnemonic string, mode EncMode, opcode byte, clocks int, extra, undoc, unstable bool) {
	key := strings.ToUpper(mnemonic)
	inst, ok := t.instructions[key]
	if !ok {
		inst = &Instruction{Mnemonic: key, encodings: make(map[EncMode]Encoding)}
		t.instructions[key] = inst
	}
	inst.encodings[mode] = Encoding{
		Opcode:       opcode,
		Clocks:       clocks,
		ExtraClocks:  extra,
		Undocumented: undoc,
		Unstable:     unstable,
	}
}

// NewOpcodeTable builds the full documented-6502-plus-undocumented
// opcode table and asserts invariant I3 (every zero-page encoding has
// a matching absolute encoding) before returning.
func NewOpcodeTable() *OpcodeTable {
	t := &OpcodeTable{instructions: make(map[string]*Instruction)}

	doc := false
	un := true

	// Documented instructions.
	t.add("ADC", EncImmediate, 0x69, 2, false, doc, false)
	t.add("ADC", EncZeroPage, 0x65, 3, false, doc, false)
	t.add("ADC", EncZeroPageX, 0x75, 4, false, doc, false)
	t.add("ADC", EncAbsolute, 0x6D, 4, false, doc, false)
	t.add("ADC", EncAbsoluteX, 0x7D, 4, true, doc, false)
	t.add("ADC", EncAbsoluteY, 0x79, 4, true, doc, false)
	t.add("ADC", EncIndirectX, 0x61, 6, false, doc, false)
	t.add("ADC", EncIndirectY, 0x71, 5, true, doc, false)

	t.add("AND", EncImmediate, 0x29, 2, false, doc, false)
	t.add("AND", EncZeroPage, 0x25, 3, false, doc, false)
	t.add("AND", EncZeroPageX, 0x35, 4, false, doc, false)
	t.add("AND", EncAbsolute, 0x2D, 4, false, doc, false)
	t.add("AND", EncAbsoluteX, 0x3D, 4, true, doc, false)
	t.add("AND", EncAbsoluteY, 0x39, 4, true, doc, false)
	t.add("AND", EncIndirectX, 0x21, 6, false, doc, false)
	t.add("AND", EncIndirectY, 0x31, 5, true, doc, false)

	t.add("ASL", EncAccumulator, 0x0A, 2, false, doc, false)
	t.add("ASL", EncZeroPage, 0x06, 5, false, doc, false)
	t.add("ASL", EncZeroPageX, 0x16, 6, false, doc, false)
	t.add("ASL", EncAbsolute, 0x0E, 6, false, doc, false)
	t.add("ASL", EncAbsoluteX, 0x1E, 7, false, doc, false)

	t.add("BCC", EncRelative, 0x90, 2, true, doc, false)
	t.add("BCS", EncRelative, 0xB0, 2, true, doc, false)
	t.add("BEQ", EncRelative, 0xF0, 2, true, doc, false)
	t.add("BMI", EncRelative, 0x30, 2, true, doc, false)
	t.add("BNE", EncRelative, 0xD0, 2, true, doc, false)
	t.add("BPL", EncRelative, 0x10, 2, true, doc, false)
	t.add("BVC", EncRelative, 0x50, 2, true, doc, false)
	t.add("BVS", EncRelative, 0x70, 2, true, doc, false)

	t.add("BIT", EncZeroPage, 0x24, 3, false, doc, false)
	t.add("BIT", EncAbsolute, 0x2C, 4, false, doc, false)

	t.add("BRK", EncImplied, 0x00, 7, false, doc, false)

	t.add("CLC", EncImplied, 0x18, 2, false, doc, false)
	t.add("CLD", EncImplied, 0xD8, 2, false, doc, false)
	t.add("CLI", EncImplied, 0x58, 2, false, doc, false)
	t.add("CLV", EncImplied, 0xB8, 2, false, doc, false)

	t.add("CMP", EncImmediate, 0xC9, 2, false, doc, false)
	t.add("CMP", EncZeroPage, 0xC5, 3, false, doc, false)
	t.add("CMP", EncZeroPageX, 0xD5, 4, false, doc, false)
	t.add("CMP", EncAbsolute, 0xCD, 4, false, doc, false)
	t.add("CMP", EncAbsoluteX, 0xDD, 4, true, doc, false)
	t.add("CMP", EncAbsoluteY, 0xD9, 4, true, doc, false)
	t.add("CMP", EncIndirectX, 0xC1, 6, false, doc, false)
	t.add("CMP", EncIndirectY, 0xD1, 5, true, doc, false)

	t.add("CPX", EncImmediate, 0xE0, 2, false, doc, false)
	t.add("CPX", EncZeroPage, 0xE4, 3, false, doc, false)
	t.add("CPX", EncAbsolute, 0xEC, 4, false, doc, false)

	t.add("CPY", EncImmediate, 0xC0, 2, false, doc, false)
	t.add("CPY", EncZeroPage, 0xC4, 3, false, doc, false)
	t.add("CPY", EncAbsolute, 0xCC, 4, false, doc, false)

	t.add("DEC", EncZeroPage, 0xC6, 5, false, doc, false)
	t.add("DEC", EncZeroPageX, 0xD6, 6, false, doc, false)
	t.add("DEC", EncAbsolute, 0xCE, 6, false, doc, false)
	t.add("DEC", EncAbsoluteX, 0xDE, 7, false, doc, false)

	t.add("DEX", EncImplied, 0xCA, 2, false, doc, false)
	t.add("DEY", EncImplied, 0x88, 2, false, doc, false)

	t.add("EOR", EncImmediate, 0x49, 2, false, doc, false)
	t.add("EOR", EncZeroPage, 0x45, 3, false, doc, false)
	t.add("EOR", EncZeroPageX, 0x55, 4, false, doc, false)
	t.add("EOR", EncAbsolute, 0x4D, 4, false, doc, false)
	t.add("EOR", EncAbsoluteX, 0x5D, 4, true, doc, false)
	t.add("EOR", EncAbsoluteY, 0x59, 4, true, doc, false)
	t.add("EOR", EncIndirectX, 0x41, 6, false, doc, false)
	t.add("EOR", EncIndirectY, 0x51, 5, true, doc, false)

	t.add("INC", EncZeroPage, 0xE6, 5, false, doc, false)
	t.add("INC", EncZeroPageX, 0xF6, 6, false, doc, false)
	t.add("INC", EncAbsolute, 0xEE, 6, false, doc, false)
	t.add("INC", EncAbsoluteX, 0xFE, 7, false, doc, false)

	t.add("INX", EncImplied, 0xE8, 2, false, doc, false)
	t.add("INY", EncImplied, 0xC8, 2, false, doc, false)

	t.add("JMP", EncAbsolute, 0x4C, 3, false, doc, false)
	t.add("JMP", EncIndirect, 0x6C, 5, false, doc, false)

	t.add("JSR", EncAbsolute, 0x20, 6, false, doc, false)

	t.add("LDA", EncImmediate, 0xA9, 2, false, doc, false)
	t.add("LDA", EncZeroPage, 0xA5, 3, false, doc, false)
	t.add("LDA", EncZeroPageX, 0xB5, 4, false, doc, false)
	t.add("LDA", EncAbsolute, 0xAD, 4, false, doc, false)
	t.add("LDA", EncAbsoluteX, 0xBD, 4, true, doc, false)
	t.add("LDA", EncAbsoluteY, 0xB9, 4, true, doc, false)
	t.add("LDA", EncIndirectX, 0xA1, 6, false, doc, false)
	t.add("LDA", EncIndirectY, 0xB1, 5, true, doc, false)

	t.add("LDX", EncImmediate, 0xA2, 2, false, doc, false)
	t.add("LDX", EncZeroPage, 0xA6, 3, false, doc, false)
	t.add("LDX", EncZeroPageY, 0xB6, 4, false, doc, false)
	t.add("LDX", EncAbsolute, 0xAE, 4, false, doc, false)
	t.add("LDX", EncAbsoluteY, 0xBE, 4, true, doc, false)

	t.add("LDY", EncImmediate, 0xA0, 2, false, doc, false)
	t.add("LDY", EncZeroPage, 0xA4, 3, false, doc, false)
	t.add("LDY", EncZeroPageX, 0xB4, 4, false, doc, false)
	t.add("LDY", EncAbsolute, 0xAC, 4, false, doc, false)
	t.add("LDY", EncAbsoluteX, 0xBC, 4, true, doc, false)

	t.add("LSR", EncAccumulator, 0x4A, 2, false, doc, false)
	t.add("LSR", EncZeroPage, 0x46, 5, false, doc, false)
	t.add("LSR", EncZeroPageX, 0x56, 6, false, doc, false)
	t.add("LSR", EncAbsolute, 0x4E, 6, false, doc, false)
	t.add("LSR", EncAbsoluteX, 0x5E, 7, false, doc, false)

	t.add("NOP", EncImplied, 0xEA, 2, false, doc, false)

	t.add("ORA", EncImmediate, 0x09, 2, false, doc, false)
	t.add("ORA", EncZeroPage, 0x05, 3, false, doc, false)
	t.add("ORA", EncZeroPageX, 0x15, 4, false, doc, false)
	t.add("ORA", EncAbsolute, 0x0D, 4, false, doc, false)
	t.add("ORA", EncAbsoluteX, 0x1D, 4, true, doc, false)
	t.add("ORA", EncAbsoluteY, 0x19, 4, true, doc, false)
	t.add("ORA", EncIndirectX, 0x01, 6, false, doc, false)
	t.add("ORA", EncIndirectY, 0x11, 5, true, doc, false)

	t.add("PHA", EncImplied, 0x48, 3, false, doc, false)
	t.add("PHP", EncImplied, 0x08, 3, false, doc, false)
	t.add("PLA", EncImplied, 0x68, 4, false, doc, false)
	t.add("PLP", EncImplied, 0x28, 4, false, doc, false)

	t.add("ROL", EncAccumulator, 0x2A, 2, false, doc, false)
	t.add("ROL", EncZeroPage, 0x26, 5, false, doc, false)
	t.add("ROL", EncZeroPageX, 0x36, 6, false, doc, false)
	t.add("ROL", EncAbsolute, 0x2E, 6, false, doc, false)
	t.add("ROL", EncAbsoluteX, 0x3E, 7, false, doc, false)

	t.add("ROR", EncAccumulator, 0x6A, 2, false, doc, false)
	t.add("ROR", EncZeroPage, 0x66, 5, false, doc, false)
	t.add("ROR", EncZeroPageX, 0x76, 6, false, doc, false)
	t.add("ROR", EncAbsolute, 0x6E, 6, false, doc, false)
	t.add("ROR", EncAbsoluteX, 0x7E, 7, false, doc, false)

	t.add("RTI", EncImplied, 0x40, 6, false, doc, false)
	t.add("RTS", EncImplied, 0x60, 6, false, doc, false)

	t.add("SBC", EncImmediate, 0xE9, 2, false, doc, false)
	t.add("SBC", EncZeroPage, 0xE5, 3, false, doc, false)
	t.add("SBC", EncZeroPageX, 0xF5, 4, false, doc, false)
	t.add("SBC", EncAbsolute, 0xED, 4, false, doc, false)
	t.add("SBC", EncAbsoluteX, 0xFD, 4, true, doc, false)
	t.add("SBC", EncAbsoluteY, 0xF9, 4, true, doc, false)
	t.add("SBC", EncIndirectX, 0xE1, 6, false, doc, false)
	t.add("SBC", EncIndirectY, 0xF1, 5, true, doc, false)

	t.add("SEC", EncImplied, 0x38, 2, false, doc, false)
	t.add("SED", EncImplied, 0xF8, 2, false, doc, false)
	t.add("SEI", EncImplied, 0x78, 2, false, doc, false)

	t.add("STA", EncZeroPage, 0x85, 3, false, doc, false)
	t.add("STA", EncZeroPageX, 0x95, 4, false, doc, false)
	t.add("STA", EncAbsolute, 0x8D, 4, false, doc, false)
	t.add("STA", EncAbsoluteX, 0x9D, 5, false, doc, false)
	t.add("STA", EncAbsoluteY, 0x99, 5, false, doc, false)
	t.add("STA", EncIndirectX, 0x81, 6, false, doc, false)
	t.add("STA", EncIndirectY, 0x91, 6, false, doc, false)

	t.add("STX", EncZeroPage, 0x86, 3, false, doc, false)
	t.add("STX", EncZeroPageY, 0x96, 4, false, doc, false)
	t.add("STX", EncAbsolute, 0x8E, 4, false, doc, false)

	t.add("STY", EncZeroPage, 0x84, 3, false, doc, false)
	t.add("STY", EncZeroPageX, 0x94, 4, false, doc, false)
	t.add("STY", EncAbsolute, 0x8C, 4, false, doc, false)

	t.add("TAX", EncImplied, 0xAA, 2, false, doc, false)
	t.add("TAY", EncImplied, 0xA8, 2, false, doc, false)
	t.add("TSX", EncImplied, 0xBA, 2, false, doc, false)
	t.add("TXA", EncImplied, 0x8A, 2, false, doc, false)
	t.add("TXS", EncImplied, 0x9A, 2, false, doc, false)
	t.add("TYA", EncImplied, 0x98, 2, false, doc, false)

	// Undocumented instructions.
	t.add("SLO", EncZeroPage, 0x07, 5, false, un, false)
	t.add("SLO", EncZeroPageX, 0x17, 6, false, un, false)
	t.add("SLO", EncAbsolute, 0x0F, 6, false, un, false)
	t.add("SLO", EncAbsoluteX, 0x1F, 7, false, un, false)
	t.add("SLO", EncAbsoluteY, 0x1B, 7, false, un, false)
	t.add("SLO", EncIndirectX, 0x03, 8, false, un, false)
	t.add("SLO", EncIndirectY, 0x13, 8, false, un, false)

	t.add("RLA", EncZeroPage, 0x27, 5, false, un, false)
	t.add("RLA", EncZeroPageX, 0x37, 6, false, un, false)
	t.add("RLA", EncAbsolute, 0x2F, 6, false, un, false)
	t.add("RLA", EncAbsoluteX, 0x3F, 7, false, un, false)
	t.add("RLA", EncAbsoluteY, 0x3B, 7, false, un, false)
	t.add("RLA", EncIndirectX, 0x23, 8, false, un, false)
	t.add("RLA", EncIndirectY, 0x33, 8, false, un, false)

	t.add("SRE", EncZeroPage, 0x47, 5, false, un, false)
	t.add("SRE", EncZeroPageX, 0x57, 6, false, un, false)
	t.add("SRE", EncAbsolute, 0x4F, 6, false, un, false)
	t.add("SRE", EncAbsoluteX, 0x5F, 7, false, un, false)
	t.add("SRE", EncAbsoluteY, 0x5B, 7, false, un, false)
	t.add("SRE", EncIndirectX, 0x43, 8, false, un, false)
	t.add("SRE", EncIndirectY, 0x53, 8, false, un, false)

	t.add("RRA", EncZeroPage, 0x67, 5, false, un, false)
	t.add("RRA", EncZeroPageX, 0x77, 6, false, un, false)
	t.add("RRA", EncAbsolute, 0x6F, 6, false, un, false)
	t.add("RRA", EncAbsoluteX, 0x7F, 7, false, un, false)
	t.add("RRA", EncAbsoluteY, 0x7B, 7, false, un, false)
	t.add("RRA", EncIndirectX, 0x63, 8, false, un, false)
	t.add("RRA", EncIndirectY, 0x73, 8, false, un, false)

	t.add("SAX", EncZeroPage, 0x87, 3, false, un, false)
	t.add("SAX", EncZeroPageY, 0x97, 4, false, un, false)
	t.add("SAX", EncAbsolute, 0x8F, 4, false, un, false)
	t.add("SAX", EncIndirectX, 0x83, 6, false, un, false)

	t.add("LAX", EncImmediate, 0xAB, 2, false, un, true)
	t.add("LAX", EncZeroPage, 0xA7, 3, false, un, false)
	t.add("LAX", EncZeroPageY, 0xB7, 4, false, un, false)
	t.add("LAX", EncAbsolute, 0xAF, 4, false, un, false)
	t.add("LAX", EncAbsoluteY, 0xBF, 4, true, un, false)
	t.add("LAX", EncIndirectX, 0xA3, 6, false, un, false)
	t.add("LAX", EncIndirectY, 0xB3, 5, true, un, false)

	t.add("DCP", EncZeroPage, 0xC7, 5, false, un, false)
	t.add("DCP", EncZeroPageX, 0xD7, 6, false, un, false)
	t.add("DCP", EncAbsolute, 0xCF, 6, false, un, false)
	t.add("DCP", EncAbsoluteX, 0xDF, 7, false, un, false)
	t.add("DCP", EncAbsoluteY, 0xDB, 7, false, un, false)
	t.add("DCP", EncIndirectX, 0xC3, 8, false, un, false)
	t.add("DCP", EncIndirectY, 0xD3, 8, false, un, false)

	t.add("ISC", EncZeroPage, 0xE7, 5, false, un, false)
	t.add("ISC", EncZeroPageX, 0xF7, 6, false, un, false)
	t.add("ISC", EncAbsolute, 0xEF, 6, false, un, false)
	t.add("ISC", EncAbsoluteX, 0xFF, 7, false, un, false)
	t.add("ISC", EncAbsoluteY, 0xFB, 7, false, un, false)
	t.add("ISC", EncIndirectX, 0xE3, 8, false, un, false)
	t.add("ISC", EncIndirectY, 0xF3, 8, false, un, false)

	t.add("ANC", EncImmediate, 0x0B, 2, false, un, false)
	t.add("ALR", EncImmediate, 0x4B, 2, false, un, false)
	t.add("ARR", EncImmediate, 0x6B, 2, false, un, false)
	t.add("XAA", EncImmediate, 0x8B, 2, false, un, true)
	t.add("AXS", EncImmediate, 0xCB, 2, false, un, false)

	t.add("AHX", EncAbsoluteY, 0x9F, 5, false, un, true)
	t.add("AHX", EncIndirectY, 0x93, 6, false, un, true)
	t.add("SHX", EncAbsoluteY, 0x9E, 5, false, un, true)
	t.add("SHY", EncAbsoluteX, 0x9C, 5, false, un, true)
	t.add("TAS", EncAbsoluteY, 0x9B, 5, false, un, true)
	t.add("LAS", EncAbsoluteY, 0xBB, 4, true, un, false)

	// Undocumented NOPs. These occupy addressing modes the documented
	// NOP (implied only) doesn't use, so no mode collides.
	t.add("NOP", EncImmediate, 0x80, 2, false, un, false)
	t.add("NOP", EncZeroPage, 0x04, 3, false, un, false)
	t.add("NOP", EncZeroPageX, 0x14, 4, false, un, false)
	t.add("NOP", EncAbsolute, 0x0C, 4, false, un, false)
	t.add("NOP", EncAbsoluteX, 0x1C, 4, true, un, false)

	for mnemonic, inst := range t.instructions {
		if _, hasZP := inst.Encoding(EncZeroPage); hasZP {
			if _, hasAbs := inst.Encoding(EncAbsolute); !hasAbs {
				panic("opcode table violates I3: " + mnemonic + " has zero-page but no absolute encoding")
			}
		}
	}

	return t
}
