// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "fmt"

// DisasmLine is one decoded instruction: its address, the raw bytes
// it occupies, and its rendered mnemonic/operand text.
type DisasmLine struct {
	Addr  int
	Bytes []int
	Text  string
}

// opcodeEntry records, for one opcode byte, the mnemonic that owns it
// and the addressing mode it was encoded with. buildOpcodeIndex builds
// the byte-to-entry index afresh on each Disassemble call.
type opcodeEntry struct {
	mnemonic string
	mode     EncMode
}

// Disassemble decodes up to count instructions starting at addr,
// reading bytes from img via the same opcode table the assembler
// used to produce them. Unknown or unwritten bytes decode as a
// one-byte "???" placeholder so disassembly never gets stuck.
func Disassemble(img *Image, optab *OpcodeTable, addr, count int) []DisasmLine {
	byOpcode := buildOpcodeIndex(optab)

	var lines []DisasmLine
	for i := 0; i < count && addr <= 0xFFFF; i++ {
		b := img.At(addr)
		if b < 0 {
			lines = append(lines, DisasmLine{Addr: addr, Bytes: []int{0}, Text: "???"})
			addr++
			continue
		}

		entry, ok := byOpcode[byte(b)]
		if !ok {
			lines = append(lines, DisasmLine{Addr: addr, Bytes: []int{b}, Text: "???"})
			addr++
			continue
		}

		size := operandSize(entry.mode)
		bytes := make([]int, 1, size+1)
		bytes[0] = b
		for n := 1; n <= size; n++ {
			bytes = append(bytes, img.At(addr+n))
		}

		text := disasmText(entry, bytes, addr)
		lines = append(lines, DisasmLine{Addr: addr, Bytes: bytes, Text: text})
		addr += size + 1
	}
	return lines
}

func buildOpcodeIndex(optab *OpcodeTable) map[byte]opcodeEntry {
	idx := make(map[byte]opcodeEntry, 256)
	for mnemonic, inst := range optab.instructions {
		for mode, enc := range inst.encodings {
			if _, exists := idx[enc.Opcode]; exists {
				continue
			}
			idx[enc.Opcode] = opcodeEntry{mnemonic: mnemonic, mode: mode}
		}
	}
	return idx
}

func operandSize(mode EncMode) int {
	switch mode {
	case EncAccumulator, EncImplied:
		return 0
	case EncImmediate, EncZeroPage, EncZeroPageX, EncZeroPageY,
		EncIndirectX, EncIndirectY, EncRelative:
		return 1
	case EncAbsolute, EncAbsoluteX, EncAbsoluteY, EncIndirect:
		return 2
	}
	return 0
}

func disasmText(e opcodeEntry, bytes []int, addr int) string {
	m := e.mnemonic
	switch e.mode {
	case EncImplied:
		return m
	case EncAccumulator:
		return m + " A"
	case EncImmediate:
		return fmt.Sprintf("%s #$%02X", m, bytes[1])
	case EncZeroPage:
		return fmt.Sprintf("%s $%02X", m, bytes[1])
	case EncZeroPageX:
		return fmt.Sprintf("%s $%02X,X", m, bytes[1])
	case EncZeroPageY:
		return fmt.Sprintf("%s $%02X,Y", m, bytes[1])
	case EncAbsolute:
		return fmt.Sprintf("%s $%02X%02X", m, bytes[2], bytes[1])
	case EncAbsoluteX:
		return fmt.Sprintf("%s $%02X%02X,X", m, bytes[2], bytes[1])
	case EncAbsoluteY:
		return fmt.Sprintf("%s $%02X%02X,Y", m, bytes[2], bytes[1])
	case EncIndirect:
		return fmt.Sprintf("%s [$%02X%02X]", m, bytes[2], bytes[1])
	case EncIndirectX:
		return fmt.Sprintf("%s [$%02X,X]", m, bytes[1])
	case EncIndirectY:
		return fmt.Sprintf("%s [$%02X],Y", m, bytes[1])
	case EncRelative:
		target := addr + 2 + int(int8(bytes[1]))
		return fmt.Sprintf("%s $%04X", m, target)
	}
	return m
}
