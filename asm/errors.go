// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "fmt"

// Severity distinguishes a fatal diagnostic from an advisory one.
type Severity int

// Severities a diagnostic may carry.
const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "Warning"
	}
	return "Error"
}

// ErrorKind enumerates the taxonomy of assembler-level failures.
type ErrorKind int

// Error kinds of the diagnostic taxonomy; errorSeverity gives each
// kind's severity.
const (
	UnknownOpcode ErrorKind = iota
	UndefinedSymbolsInOperand
	OrgUndefined
	OrgChanged
	SpaceUndefined
	RepCountUndefined
	RepCountNonPositive
	SymbolRedefinition
	DivideByZero
	NoSuchAddressingMode
	RelativeBranchOutOfRange
	AddressNotZeroPage
	AddressOverflow
	OperandDoesNotFitInByte
	TopLevelParenthesizedOperand
)

var errorSeverity = map[ErrorKind]Severity{
	UnknownOpcode:                 SeverityError,
	UndefinedSymbolsInOperand:     SeverityError,
	OrgUndefined:                  SeverityError,
	OrgChanged:                    SeverityError,
	SpaceUndefined:                SeverityError,
	RepCountUndefined:             SeverityError,
	RepCountNonPositive:           SeverityError,
	SymbolRedefinition:            SeverityError,
	DivideByZero:                  SeverityError,
	NoSuchAddressingMode:          SeverityError,
	RelativeBranchOutOfRange:      SeverityError,
	AddressNotZeroPage:            SeverityError,
	AddressOverflow:               SeverityError,
	OperandDoesNotFitInByte:       SeverityWarning,
	TopLevelParenthesizedOperand:  SeverityWarning,
}

// AsmError is a diagnostic tied to one of the taxonomy's error kinds.
type AsmError struct {
	Kind     ErrorKind
	Severity Severity
	Message  string
}

func (e *AsmError) Error() string {
	return e.Message
}

func newError(kind ErrorKind, format string, args ...interface{}) *AsmError {
	return &AsmError{
		Kind:     kind,
		Severity: errorSeverity[kind],
		Message:  fmt.Sprintf(format, args...),
	}
}
