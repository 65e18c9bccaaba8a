// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "sort"

// Diagnostic is one (severity, line, message) entry produced while
// assembling a statement. Kind is the taxonomy kind of the *AsmError
// that produced it (zero for any other error).
type Diagnostic struct {
	Severity Severity
	Kind     ErrorKind
	Line     int
	Message  string
}

// diagnosticSink accumulates diagnostics for a single pass, preserving
// the order in which they were reported.
type diagnosticSink struct {
	diags []Diagnostic
}

func newDiagnosticSink() *diagnosticSink {
	return &diagnosticSink{}
}

func (s *diagnosticSink) report(line int, err error) {
	if err == nil {
		return
	}
	if ae, ok := err.(*AsmError); ok {
		s.diags = append(s.diags, Diagnostic{Severity: ae.Severity, Kind: ae.Kind, Line: line, Message: ae.Message})
		return
	}
	s.diags = append(s.diags, Diagnostic{Severity: SeverityError, Line: line, Message: err.Error()})
}

func (s *diagnosticSink) errors() int {
	n := 0
	for _, d := range s.diags {
		if d.Severity == SeverityError {
			n++
		}
	}
	return n
}

func (s *diagnosticSink) warnings() int {
	n := 0
	for _, d := range s.diags {
		if d.Severity == SeverityWarning {
			n++
		}
	}
	return n
}

// mergeDiagnostics concatenates pass-1 then pass-2 diagnostics and
// stably re-sorts the result by source line, preserving insertion order
// among diagnostics that share a line.
func mergeDiagnostics(pass1, pass2 *diagnosticSink) []Diagnostic {
	all := make([]Diagnostic, 0, len(pass1.diags)+len(pass2.diags))
	all = append(all, pass1.diags...)
	all = append(all, pass2.diags...)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Line < all[j].Line
	})
	return all
}
