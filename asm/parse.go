// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"strings"
)

// parseProgram tokenizes and parses the whole source file into a
// statement list. A non-nil error here means the source is malformed
// badly enough that no sensible statement list exists; per-statement
// semantic errors are never returned here, only reported later as
// diagnostics by Pass 1/Pass 2.
func parseProgram(src []byte, filename string, opts AssembleOptions) ([]*Statement, error) {
	text := strings.ReplaceAll(string(src), "\r\n", "\n")
	lines := strings.Split(text, "\n")

	stmts := make([]*Statement, 0, len(lines))
	for i, line := range lines {
		row := i + 1
		s, err := parseLine(newFstring(0, row, line))
		if err != nil {
			return nil, err
		}
		s.Line = row
		stmts = append(stmts, s)
	}
	return stmts, nil
}

// parseLine parses one line of source into a Statement. Blank lines
// and comment-only lines (with no label) become a StmtNoop with no
// label, preserving the line for the listing formatter.
func parseLine(line fstring) (*Statement, error) {
	toks, err := lexLine(line)
	if err != nil {
		return nil, err
	}

	p := &tokenCursor{toks: toks}
	s := &Statement{Kind: StmtNoop, Comment: extractComment(line)}

	if p.peek().kind == tkLabel {
		s.Label = p.next().text
	}

	if p.peek().kind == tkEOL {
		return s, nil
	}

	if p.peek().kind != tkIdent {
		return nil, newError(UnknownOpcode, "expected a directive or mnemonic")
	}
	word := strings.ToUpper(p.peek().text)

	switch word {
	case "ORG":
		p.next()
		s.Kind = StmtOrg
		s.OrgExpr, err = parseExpr(p)
		if err != nil {
			return nil, err
		}
	case "SET", "EQU":
		p.next()
		if p.peek().kind != tkIdent {
			return nil, newError(UnknownOpcode, "expected symbol name after SET")
		}
		s.Kind = StmtSet
		s.SetName = p.next().text
		if p.peek().kind != tkEquals {
			return nil, newError(UnknownOpcode, "expected '=' after SET symbol name")
		}
		p.next()
		s.SetExpr, err = parseExpr(p)
		if err != nil {
			return nil, err
		}
	case "BYTE":
		p.next()
		s.Kind = StmtData
		s.DataSize = SizeByte
		s.Elements, err = parseDataElements(p)
		if err != nil {
			return nil, err
		}
	case "WORD":
		p.next()
		s.Kind = StmtData
		s.DataSize = SizeWord
		s.Elements, err = parseDataElements(p)
		if err != nil {
			return nil, err
		}
	case "ASCII", "ASCIZ":
		p.next()
		if p.peek().kind != tkString {
			return nil, newError(UnknownOpcode, "expected a string literal after %s", word)
		}
		str := p.next().text
		if word == "ASCIZ" {
			str += "\x00"
		}
		s.Kind = StmtData
		s.DataSize = SizeByte
		s.Elements = make([]DataElement, len(str))
		for i := 0; i < len(str); i++ {
			s.Elements[i] = DataElement{Value: newConstant(int(str[i]))}
		}
	case "BYTES":
		p.next()
		s.Kind = StmtSpace
		s.SpaceSize = SizeByte
		s.SpaceCount, err = parseExpr(p)
		if err != nil {
			return nil, err
		}
	case "WORDS":
		p.next()
		s.Kind = StmtSpace
		s.SpaceSize = SizeWord
		s.SpaceCount, err = parseExpr(p)
		if err != nil {
			return nil, err
		}
	case "END":
		p.next()
		s.Kind = StmtNoop

	default:
		s.Kind = StmtInstruction
		s.Mnemonic = word
		p.next()
		s.Addr, err = parseAddress(p)
		if err != nil {
			return nil, err
		}
	}

	if p.peek().kind != tkEOL {
		return nil, newError(UnknownOpcode, "unexpected trailing text on line")
	}
	return s, nil
}

// extractComment returns the text following the line's comment
// character, or "" if the line has no comment. It mirrors
// fstring.stripTrailingComment's quote-awareness so a ';' inside a
// string literal isn't mistaken for a comment start.
func extractComment(line fstring) string {
	str := line.str
	for i := 0; i < len(str); i++ {
		if comment(str[i]) {
			return strings.TrimRight(str[i+1:], " \t")
		}
		if stringQuote(str[i]) {
			q := str[i]
			i++
			for ; i < len(str) && str[i] != q; i++ {
			}
		}
	}
	return ""
}

// parseDataElements parses a comma-separated list of BYTE/WORD
// elements, each an expression optionally preceded by REP(count).
func parseDataElements(p *tokenCursor) ([]DataElement, error) {
	var elems []DataElement
	for {
		var el DataElement
		if p.peek().kind == tkIdent && strings.EqualFold(p.peek().text, "REP") {
			p.next()
			if p.peek().kind != tkLParen {
				return nil, newError(UnknownOpcode, "expected '(' after REP")
			}
			p.next()
			count, err := parseExpr(p)
			if err != nil {
				return nil, err
			}
			if p.peek().kind != tkRParen {
				return nil, newError(UnknownOpcode, "expected ')' to close REP(count)")
			}
			p.next()
			el.Count = count
		}
		value, err := parseExpr(p)
		if err != nil {
			return nil, err
		}
		el.Value = value
		elems = append(elems, el)

		if p.peek().kind != tkComma {
			break
		}
		p.next()
	}
	return elems, nil
}

// parseAddress parses an instruction operand into its addressing
// mode and expression. An absent operand (EOL immediately following
// the mnemonic) is AddrImplied.
func parseAddress(p *tokenCursor) (Address, error) {
	if p.peek().kind == tkEOL {
		return Address{Mode: AddrImplied}, nil
	}

	if p.peek().kind == tkIdent && strings.EqualFold(p.peek().text, "A") {
		save := p.pos
		p.next()
		if p.peek().kind == tkEOL {
			return Address{Mode: AddrAccumulator}, nil
		}
		p.pos = save
	}

	if p.peek().kind == tkHash {
		p.next()
		expr, err := parseExpr(p)
		if err != nil {
			return Address{}, err
		}
		return Address{Mode: AddrImmediate, Expr: expr}, nil
	}

	if p.peek().kind == tkLBracket {
		p.next()
		expr, err := parseExpr(p)
		if err != nil {
			return Address{}, err
		}
		switch p.peek().kind {
		case tkComma:
			p.next()
			if err := expectIndexReg(p, 'X'); err != nil {
				return Address{}, err
			}
			if p.peek().kind != tkRBracket {
				return Address{}, newError(UnknownOpcode, "expected ']' to close indirect operand")
			}
			p.next()
			return Address{Mode: AddrIndirectX, Expr: expr}, nil

		case tkRBracket:
			p.next()
			if p.peek().kind == tkComma {
				p.next()
				if err := expectIndexReg(p, 'Y'); err != nil {
					return Address{}, err
				}
				return Address{Mode: AddrIndirectY, Expr: expr}, nil
			}
			return Address{Mode: AddrIndirect, Expr: expr}, nil

		default:
			return Address{}, newError(UnknownOpcode, "malformed indirect operand")
		}
	}

	expr, err := parseExpr(p)
	if err != nil {
		return Address{}, err
	}
	if p.peek().kind == tkComma {
		p.next()
		switch {
		case p.peek().kind == tkIdent && strings.EqualFold(p.peek().text, "X"):
			p.next()
			return Address{Mode: AddrAddressX, Expr: expr}, nil
		case p.peek().kind == tkIdent && strings.EqualFold(p.peek().text, "Y"):
			p.next()
			return Address{Mode: AddrAddressY, Expr: expr}, nil
		default:
			return Address{}, newError(UnknownOpcode, "expected index register X or Y after ','")
		}
	}
	return Address{Mode: AddrAddress, Expr: expr}, nil
}

func expectIndexReg(p *tokenCursor, reg byte) error {
	if p.peek().kind != tkIdent || !strings.EqualFold(p.peek().text, string(reg)) {
		return newError(UnknownOpcode, "expected index register %c", reg)
	}
	p.next()
	return nil
}

// tokenCursor walks a token slice produced by lexLine.
type tokenCursor struct {
	toks []token
	pos  int
}

func (c *tokenCursor) peek() token {
	return c.toks[c.pos]
}

func (c *tokenCursor) next() token {
	t := c.toks[c.pos]
	if c.pos < len(c.toks)-1 {
		c.pos++
	}
	return t
}

// opdata describes one binary operator's precedence, used by the
// shunting-yard expression parser below.
type opdata struct {
	op   ExprOp
	prec int
}

var binaryOps = map[string]opdata{
	"|":  {OpOr, 1},
	"^":  {OpXor, 2},
	"&":  {OpAnd, 3},
	"<<": {OpShl, 4},
	">>": {OpShr, 4},
	"+":  {OpAdd, 5},
	"-":  {OpSub, 5},
	"*":  {OpMul, 6},
	"/":  {OpDiv, 6},
	"%":  {OpMod, 6},
}

const unaryPrec = 7

// opStackEntry is either a pending binary operator, a pending unary
// operator, or a left-parenthesis marker.
type opStackEntry struct {
	leftParen bool
	unary     bool
	op        ExprOp
	prec      int
}

// parseExpr parses one expression using the shunting-yard algorithm:
// an operand stack and an operator stack, with operators applied in
// precedence order as they're popped. It stops at the first token
// that cannot extend the expression (comma, bracket/paren close with
// no matching open, EOL, etc.) and leaves that token unconsumed.
func parseExpr(p *tokenCursor) (*Expr, error) {
	var operands []*Expr
	var ops []opStackEntry
	expectOperand := true

	apply := func(e opStackEntry) error {
		if e.unary {
			if len(operands) < 1 {
				return newError(UnknownOpcode, "malformed expression")
			}
			a := operands[len(operands)-1]
			operands = operands[:len(operands)-1]
			operands = append(operands, newUnary(e.op, a))
			return nil
		}
		if len(operands) < 2 {
			return newError(UnknownOpcode, "malformed expression")
		}
		b := operands[len(operands)-1]
		a := operands[len(operands)-2]
		operands = operands[:len(operands)-2]
		operands = append(operands, newBinary(e.op, a, b))
		return nil
	}

	for {
		t := p.peek()

		if expectOperand {
			switch t.kind {
			case tkOp:
				switch t.text {
				case "-":
					ops = append(ops, opStackEntry{unary: true, op: OpNeg, prec: unaryPrec})
					p.next()
					continue
				case "~":
					ops = append(ops, opStackEntry{unary: true, op: OpBitNeg, prec: unaryPrec})
					p.next()
					continue
				}
				return nil, newError(UnknownOpcode, "unexpected operator '%s' in expression", t.text)

			case tkLParen:
				ops = append(ops, opStackEntry{leftParen: true})
				p.next()
				continue

			case tkNumber:
				operands = append(operands, newConstant(t.num))
				p.next()
				expectOperand = false
				continue

			case tkIdent:
				operands = append(operands, newSymbolExpr(t.text))
				p.next()
				expectOperand = false
				continue

			case tkDot:
				operands = append(operands, newLocation())
				p.next()
				expectOperand = false
				continue

			default:
				return nil, newError(UnknownOpcode, "expected an operand in expression")
			}
		}

		// expectOperand is false: we just finished an operand or a
		// closing paren, so only a binary operator or ')' can follow.
		switch t.kind {
		case tkOp:
			entry, ok := binaryOps[t.text]
			if !ok {
				return nil, newError(UnknownOpcode, "unexpected operator '%s' in expression", t.text)
			}
			for len(ops) > 0 && !ops[len(ops)-1].leftParen && ops[len(ops)-1].prec >= entry.prec {
				top := ops[len(ops)-1]
				ops = ops[:len(ops)-1]
				if err := apply(top); err != nil {
					return nil, err
				}
			}
			ops = append(ops, opStackEntry{op: entry.op, prec: entry.prec})
			p.next()
			expectOperand = true
			continue

		case tkRParen:
			closed := false
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				ops = ops[:len(ops)-1]
				if top.leftParen {
					closed = true
					break
				}
				if err := apply(top); err != nil {
					return nil, err
				}
			}
			if !closed {
				// No matching '(' on our stack: this ')' belongs to
				// an enclosing bracket/paren context. Stop here.
				goto done
			}
			p.next()
			if len(operands) == 0 {
				return nil, newError(UnknownOpcode, "malformed expression")
			}
			operands[len(operands)-1].Parenthesized = true
			continue

		default:
			goto done
		}
	}

done:
	for len(ops) > 0 {
		top := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		if top.leftParen {
			return nil, newError(UnknownOpcode, "unbalanced parenthesis in expression")
		}
		if err := apply(top); err != nil {
			return nil, err
		}
	}

	if len(operands) != 1 {
		return nil, newError(UnknownOpcode, "malformed expression")
	}
	return operands[0], nil
}
