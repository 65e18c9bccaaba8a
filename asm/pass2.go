// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

// pass2 re-evaluates every expression (now requiring full
// definedness), selects the concrete encoding for each instruction,
// and writes bytes into the image.
type pass2 struct {
	symtab *SymbolTable
	optab  *OpcodeTable
	loc    int
	image  *Image
	diags  *diagnosticSink
}

func newPass2(symtab *SymbolTable, optab *OpcodeTable) *pass2 {
	return &pass2{symtab: symtab, optab: optab, image: newImage(), diags: newDiagnosticSink()}
}

func (p *pass2) setLoc(loc int) error {
	if loc > 0x10000 || loc < 0 {
		return newError(AddressOverflow, "location counter out of range")
	}
	p.loc = loc
	return nil
}

func (p *pass2) run(stmts []*Statement) {
	p.loc = 0
	for _, s := range stmts {
		if err := p.visit(s); err != nil {
			p.diags.report(s.Line, err)
		}
		s.NextLoc = p.loc
	}
}

// evalCheckDefined evaluates expr and fails if it is not fully
// defined.
func (p *pass2) evalCheckDefined(expr *Expr) (int, error) {
	r, err := expr.Eval(p.symtab, p.loc)
	if err != nil {
		return 0, err
	}
	if !r.IsDefined() {
		return 0, newError(UndefinedSymbolsInOperand,
			"symbols '%s' are undefined in instruction operand", joinNames(r.UndefinedSymbols()))
	}
	return r.Value(), nil
}

// emit writes one byte to the image at the current location and
// advances the location counter.
func (p *pass2) emit(b int) error {
	if p.loc < 0 || p.loc >= 0xFFFF+1 {
		return newError(AddressOverflow, "location counter $%04X is outside the addressable range", p.loc)
	}
	p.image[p.loc] = b & 0xFF
	p.loc++
	return nil
}

// checkByte warns (but does not fail) if value doesn't fit in a
// signed or unsigned byte. Callers invoke this after emit, so the low
// byte is written regardless.
func (p *pass2) checkByte(value int) error {
	if value >= -128 && value <= 255 {
		return nil
	}
	return newError(OperandDoesNotFitInByte,
		"operand value %d should fit in one byte; truncated", value)
}

func (p *pass2) visit(s *Statement) error {
	switch s.Kind {
	case StmtOrg:
		return p.visitOrg(s)
	case StmtSet:
		return p.visitSet(s)
	case StmtInstruction:
		return p.visitInstruction(s)
	case StmtData:
		return p.visitData(s)
	case StmtSpace:
		return p.visitSpace(s)
	case StmtNoop:
		return nil
	}
	return nil
}

func (p *pass2) visitOrg(s *Statement) error {
	value, err := p.evalCheckDefined(s.OrgExpr)
	if err != nil {
		return err
	}
	if value != s.orgValue {
		return newError(OrgChanged, "ORG expression has a different value in pass 2")
	}
	return p.setLoc(s.orgValue)
}

func (p *pass2) visitSet(s *Statement) error {
	value, err := p.evalCheckDefined(s.SetExpr)
	if err != nil {
		return err
	}
	return p.symtab.Set(s.SetName, value)
}

func (p *pass2) visitInstruction(s *Statement) error {
	inst, err := p.optab.Lookup(s.Mnemonic)
	if err != nil {
		return err
	}

	var op Encoding
	var ok bool

	switch s.Addr.Mode {
	case AddrImplied:
		op, ok = inst.Encoding(EncImplied)
		if !ok {
			return noSuchMode(s.Mnemonic, "implied")
		}
		if err := p.emit(int(op.Opcode)); err != nil {
			return err
		}

	case AddrAccumulator:
		op, ok = inst.Encoding(EncAccumulator)
		if !ok {
			return noSuchMode(s.Mnemonic, "accumulator")
		}
		if err := p.emit(int(op.Opcode)); err != nil {
			return err
		}

	case AddrImmediate:
		op, ok = inst.Encoding(EncImmediate)
		if !ok {
			return noSuchMode(s.Mnemonic, "immediate")
		}
		value, err := p.evalCheckDefined(s.Addr.Expr)
		if err != nil {
			return err
		}
		if err := p.emit(int(op.Opcode)); err != nil {
			return err
		}
		if err := p.emit(value); err != nil {
			return err
		}
		if err := p.checkByte(value); err != nil {
			p.diags.report(s.Line, err)
		}

	case AddrAddress:
		value, err := p.evalCheckDefined(s.Addr.Expr)
		if err != nil {
			return err
		}
		if rel, isRel := inst.Encoding(EncRelative); isRel {
			delta := value - (p.loc + 2)
			if delta < -128 || delta > 127 {
				return newError(RelativeBranchOutOfRange, "relative branch is out of range")
			}
			if err := p.emit(int(rel.Opcode)); err != nil {
				return err
			}
			if err := p.emit(delta); err != nil {
				return err
			}
			op = rel
			break
		}
		if s.OperandSize == SizeByte {
			op, ok = inst.Encoding(EncZeroPage)
			if !ok {
				return noSuchMode(s.Mnemonic, "zero page")
			}
			if err := p.emit(int(op.Opcode)); err != nil {
				return err
			}
			if err := p.emit(value); err != nil {
				return err
			}
		} else {
			op, ok = inst.Encoding(EncAbsolute)
			if !ok {
				return noSuchMode(s.Mnemonic, "absolute")
			}
			if err := p.emit(int(op.Opcode)); err != nil {
				return err
			}
			if err := p.emit(value); err != nil {
				return err
			}
			if err := p.emit(value >> 8); err != nil {
				return err
			}
		}

	case AddrAddressX, AddrAddressY:
		value, err := p.evalCheckDefined(s.Addr.Expr)
		if err != nil {
			return err
		}

		absMode, zpMode := EncAbsoluteX, EncZeroPageX
		if s.Addr.Mode == AddrAddressY {
			absMode, zpMode = EncAbsoluteY, EncZeroPageY
		}

		size := s.OperandSize
		if size == SizeByte {
			op, ok = inst.Encoding(zpMode)
			if !ok {
				return noSuchMode(s.Mnemonic, "zero-page indexed")
			}
		} else {
			op, ok = inst.Encoding(absMode)
			if !ok {
				var zp Encoding
				zp, ok = inst.Encoding(zpMode)
				if ok && value >= -127 && value <= 255 {
					op = zp
					size = SizeByte
				} else {
					return newError(NoSuchAddressingMode,
						"%s has no absolute-indexed or usable zero-page-indexed encoding", s.Mnemonic)
				}
			}
		}

		if err := p.emit(int(op.Opcode)); err != nil {
			return err
		}
		if err := p.emit(value); err != nil {
			return err
		}
		if size == SizeWord {
			if err := p.emit(value >> 8); err != nil {
				return err
			}
		}

	case AddrIndirect:
		op, ok = inst.Encoding(EncIndirect)
		if !ok {
			return noSuchMode(s.Mnemonic, "indirect")
		}
		value, err := p.evalCheckDefined(s.Addr.Expr)
		if err != nil {
			return err
		}
		if err := p.emit(int(op.Opcode)); err != nil {
			return err
		}
		if err := p.emit(value); err != nil {
			return err
		}
		if err := p.emit(value >> 8); err != nil {
			return err
		}

	case AddrIndirectX, AddrIndirectY:
		mode := EncIndirectX
		if s.Addr.Mode == AddrIndirectY {
			mode = EncIndirectY
		}
		op, ok = inst.Encoding(mode)
		if !ok {
			return noSuchMode(s.Mnemonic, "indirect indexed")
		}
		value, err := p.evalCheckDefined(s.Addr.Expr)
		if err != nil {
			return err
		}
		if value < 0 || value > 0xFF {
			return newError(AddressNotZeroPage, "address is not in zero page")
		}
		if err := p.emit(int(op.Opcode)); err != nil {
			return err
		}
		if err := p.emit(value); err != nil {
			return err
		}
	}

	s.Clocks = op.Clocks
	s.ExtraClocks = op.ExtraClocks
	s.Undocumented = op.Undocumented
	s.Unstable = op.Unstable
	return nil
}

func (p *pass2) visitData(s *Statement) error {
	for _, el := range s.Elements {
		count := 1
		if el.Count != nil {
			r, err := p.evalCheckDefined(el.Count)
			if err != nil {
				return err
			}
			count = r
		}
		value, err := p.evalCheckDefined(el.Value)
		if err != nil {
			return err
		}
		for i := 0; i < count; i++ {
			if err := p.emit(value); err != nil {
				return err
			}
			if s.DataSize == SizeByte {
				if err := p.checkByte(value); err != nil {
					p.diags.report(s.Line, err)
				}
			} else {
				if err := p.emit(value >> 8); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (p *pass2) visitSpace(s *Statement) error {
	r, err := p.evalCheckDefined(s.SpaceCount)
	if err != nil {
		return err
	}
	unit := 1
	if s.SpaceSize == SizeWord {
		unit = 2
	}
	return p.setLoc(p.loc + unit*r)
}

func noSuchMode(mnemonic, mode string) error {
	return newError(NoSuchAddressingMode, "%s has no %s addressing mode", mnemonic, mode)
}
