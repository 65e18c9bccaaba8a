// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package repl implements an interactive command loop for assembling
// a source file and browsing the result: its symbol table, its
// diagnostics, and a disassembly view of the bytes it produced.
package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/cmd"
	"github.com/beevik/prefixtree/v2"
	"github.com/jgeist/yas6502/asm"
)

var errReplQuit = errors.New("quit")

// REPL holds the state of one interactive session: the most recently
// assembled result (nil until the first "assemble"), display
// settings, and I/O plumbing.
type REPL struct {
	result      *asm.Result
	settings    *settings
	symbolTree  *prefixtree.Tree[string]
	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool
	lastCmd     *cmd.Selection
}

// New creates an empty REPL. Call RunCommands to drive it.
func New() *REPL {
	return &REPL{settings: newSettings()}
}

// RunCommands reads commands from in and writes output to out until in
// is exhausted or a command requests exit. When interactive is true, a
// prompt is printed before each command.
func (r *REPL) RunCommands(in io.Reader, out io.Writer, interactive bool) {
	r.input = bufio.NewScanner(in)
	r.output = bufio.NewWriter(out)
	r.interactive = interactive

	for {
		r.prompt()

		line, err := r.getLine()
		if err != nil {
			break
		}

		var sel cmd.Selection
		if line != "" {
			sel, err = cmds.Lookup(line)
			switch {
			case err == cmd.ErrNotFound:
				r.println("Command not found.")
				continue
			case err == cmd.ErrAmbiguous:
				r.println("Command is ambiguous.")
				continue
			case err != nil:
				r.printf("ERROR: %v\n", err)
				continue
			}
		} else if r.lastCmd != nil {
			sel = *r.lastCmd
		}

		if sel.Command == nil {
			continue
		}
		r.lastCmd = &sel

		handler := sel.Command.Data.(func(*REPL, cmd.Selection) error)
		if err := handler(r, sel); err != nil {
			break
		}
	}
	r.flush()
}

func (r *REPL) print(args ...interface{}) {
	fmt.Fprint(r.output, args...)
}

func (r *REPL) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.output, format, args...)
	r.flush()
}

func (r *REPL) println(args ...interface{}) {
	fmt.Fprintln(r.output, args...)
	r.flush()
}

func (r *REPL) flush() {
	r.output.Flush()
}

func (r *REPL) getLine() (string, error) {
	if r.input.Scan() {
		return r.input.Text(), nil
	}
	if r.input.Err() != nil {
		return "", r.input.Err()
	}
	return "", io.EOF
}

func (r *REPL) prompt() {
	if r.interactive {
		r.printf("yas6502> ")
	}
}

// rebuildSymbolTree indexes the current assembly's symbol names by
// every unambiguous prefix, for the "symbols" command.
func (r *REPL) rebuildSymbolTree() {
	r.symbolTree = prefixtree.New[string]()
	if r.result == nil {
		return
	}
	for _, name := range r.result.Symbols.Names() {
		r.symbolTree.Add(strings.ToLower(name), name)
	}
}
