// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

// pass1 computes location-counter values, defines labels, and chooses
// each instruction's operand size. It writes no bytes.
type pass1 struct {
	symtab *SymbolTable
	optab  *OpcodeTable
	loc    int
	diags  *diagnosticSink
}

func newPass1(symtab *SymbolTable, optab *OpcodeTable) *pass1 {
	return &pass1{symtab: symtab, optab: optab, diags: newDiagnosticSink()}
}

func (p *pass1) setLoc(loc int) error {
	if loc > 0x10000 {
		return newError(AddressOverflow, "location counter cannot exceed $10000")
	}
	if loc < 0 {
		return newError(AddressOverflow, "location counter cannot be negative")
	}
	p.loc = loc
	return nil
}

// run walks the statement list in source order, per spec.md §4.4.
func (p *pass1) run(stmts []*Statement) {
	for _, s := range stmts {
		s.Loc = p.loc
		if err := p.visit(s); err != nil {
			p.diags.report(s.Line, err)
		}
	}
}

func (p *pass1) defineLabel(s *Statement) error {
	if s.Label == "" {
		return nil
	}
	return p.symtab.Set(s.Label, p.loc)
}

func (p *pass1) visit(s *Statement) error {
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
		return p.defineLabel(s)
	}
	return nil
}

func (p *pass1) visitOrg(s *Statement) error {
	if err := p.defineLabel(s); err != nil {
		return err
	}
	r, err := s.OrgExpr.Eval(p.symtab, p.loc)
	if err != nil {
		return err
	}
	if !r.IsDefined() {
		return newError(OrgUndefined,
			"ORG expression must be fully defined in pass 1, but contains undefined symbols '%s'",
			joinNames(r.UndefinedSymbols()))
	}
	s.orgValue = r.Value()
	return p.setLoc(r.Value())
}

func (p *pass1) visitSet(s *Statement) error {
	if err := p.defineLabel(s); err != nil {
		return err
	}
	r, err := s.SetExpr.Eval(p.symtab, p.loc)
	if err != nil {
		return err
	}
	if !r.IsDefined() {
		// It is ok for a SET symbol to not be fully defined in pass 1.
		return nil
	}
	return p.symtab.Set(s.SetName, r.Value())
}

func (p *pass1) visitInstruction(s *Statement) error {
	if err := p.defineLabel(s); err != nil {
		return err
	}

	if s.Addr.Expr != nil && s.Addr.Expr.Parenthesized {
		p.diags.report(s.Line, newError(TopLevelParenthesizedOperand,
			"top-level expression is parenthesized; did you mean brackets for indirect addressing?"))
	}

	inst, err := p.optab.Lookup(s.Mnemonic)
	if err != nil {
		return err
	}

	size := 0

	switch s.Addr.Mode {
	case AddrImplied, AddrAccumulator:
		size = 1

	case AddrImmediate:
		size = 2

	case AddrAddress:
		if _, ok := inst.Encoding(EncRelative); ok {
			size = 2
			break
		}
		size = 3
		if _, ok := inst.Encoding(EncZeroPage); ok {
			r, err := s.Addr.Expr.Eval(p.symtab, p.loc)
			if err != nil {
				return err
			}
			if r.IsDefined() && r.Value() >= 0 && r.Value() <= 0xFF {
				size = 2
			}
		}

	case AddrAddressX, AddrAddressY:
		size = 3
		_, hasZPX := inst.Encoding(EncZeroPageX)
		_, hasZPY := inst.Encoding(EncZeroPageY)
		hasZeroPage := (s.Addr.Mode == AddrAddressX && hasZPX) || (s.Addr.Mode == AddrAddressY && hasZPY)
		if hasZeroPage {
			r, err := s.Addr.Expr.Eval(p.symtab, p.loc)
			if err != nil {
				return err
			}
			if r.IsDefined() && r.Value() >= 0 && r.Value() <= 0xFF {
				size = 2
			}
		}

	case AddrIndirect:
		size = 3

	case AddrIndirectX, AddrIndirectY:
		size = 2
	}

	if size == 3 {
		s.OperandSize = SizeWord
	} else {
		s.OperandSize = SizeByte
	}

	return p.setLoc(p.loc + size)
}

func (p *pass1) visitData(s *Statement) error {
	if err := p.defineLabel(s); err != nil {
		return err
	}
	unit := 1
	if s.DataSize == SizeWord {
		unit = 2
	}
	count := 0
	for _, el := range s.Elements {
		if el.Count == nil {
			count++
			continue
		}
		r, err := el.Count.Eval(p.symtab, p.loc)
		if err != nil {
			return err
		}
		if !r.IsDefined() {
			return newError(RepCountUndefined, "REP count must be fully defined in pass 1")
		}
		if r.Value() < 1 {
			return newError(RepCountNonPositive, "REP count must be positive, got %d", r.Value())
		}
		count += r.Value()
	}
	return p.setLoc(p.loc + unit*count)
}

func (p *pass1) visitSpace(s *Statement) error {
	if err := p.defineLabel(s); err != nil {
		return err
	}
	r, err := s.SpaceCount.Eval(p.symtab, p.loc)
	if err != nil {
		return err
	}
	if !r.IsDefined() {
		return newError(SpaceUndefined, "space count must be fully defined in pass 1")
	}
	unit := 1
	if s.SpaceSize == SizeWord {
		unit = 2
	}
	return p.setLoc(p.loc + unit*r.Value())
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += "', '"
		}
		out += n
	}
	return out
}
