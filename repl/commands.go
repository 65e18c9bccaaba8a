// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package repl

import (
	"os"
	"strconv"
	"strings"

	"github.com/beevik/cmd"
	"github.com/jgeist/yas6502/asm"
)

var cmds *cmd.Tree

func init() {
	cmds = cmd.NewTree("yas6502repl")
	cmds.AddCommand(cmd.Command{
		Name:  "help",
		Brief: "Display help",
		Usage: "help",
		Data:  (*REPL).cmdHelp,
	})
	cmds.AddCommand(cmd.Command{
		Name:        "assemble",
		Brief:       "Assemble a file",
		Description: "Run the assembler on the specified file and report its diagnostics.",
		Usage:       "assemble <filename>",
		Data:        (*REPL).cmdAssemble,
	})
	cmds.AddCommand(cmd.Command{
		Name:        "symbols",
		Brief:       "Display the symbol table",
		Description: "List every symbol defined by the last assembly, or resolve one name or unambiguous prefix.",
		Usage:       "symbols [name-or-prefix]",
		Data:        (*REPL).cmdSymbols,
	})
	cmds.AddCommand(cmd.Command{
		Name:        "errors",
		Brief:       "Display diagnostics",
		Description: "List every error and warning produced by the last assembly.",
		Usage:       "errors",
		Data:        (*REPL).cmdErrors,
	})
	cmds.AddCommand(cmd.Command{
		Name:        "disassemble",
		Brief:       "Disassemble the assembled image",
		Description: "Disassemble instructions starting at an address in the last assembled image.",
		Usage:       "disassemble <address> [count]",
		Data:        (*REPL).cmdDisassemble,
	})
	cmds.AddCommand(cmd.Command{
		Name:  "set",
		Brief: "Change a display setting",
		Usage: "set <field> <value>",
		Data:  (*REPL).cmdSet,
	})
	cmds.AddCommand(cmd.Command{
		Name:  "show",
		Brief: "Display current settings",
		Usage: "show",
		Data:  (*REPL).cmdShow,
	})
	cmds.AddCommand(cmd.Command{
		Name:  "quit",
		Brief: "Exit the REPL",
		Usage: "quit",
		Data:  (*REPL).cmdQuit,
	})

	cmds.AddShortcut("?", "help")
	cmds.AddShortcut("a", "assemble")
	cmds.AddShortcut("sym", "symbols")
	cmds.AddShortcut("e", "errors")
	cmds.AddShortcut("d", "disassemble")
	cmds.AddShortcut("q", "quit")
}

func (r *REPL) cmdHelp(c cmd.Selection) error {
	r.println("Commands:")
	for _, cc := range cmds.Commands {
		r.printf("  %-12s %s\n", cc.Name, cc.Brief)
	}
	return nil
}

func (r *REPL) cmdAssemble(c cmd.Selection) error {
	if len(c.Args) < 1 {
		r.println("usage: assemble <filename>")
		return nil
	}
	src, err := os.ReadFile(c.Args[0])
	if err != nil {
		r.printf("%v\n", err)
		return nil
	}

	result, err := asm.Assemble(src, c.Args[0], asm.AssembleOptions{})
	if err != nil {
		r.printf("%v\n", err)
		return nil
	}

	r.result = result
	r.rebuildSymbolTree()
	r.printf("Assembled %s: %d error(s), %d warning(s)\n", c.Args[0], result.Errors(), result.Warnings())
	return nil
}

func (r *REPL) cmdSymbols(c cmd.Selection) error {
	if r.result == nil {
		r.println("Nothing assembled yet.")
		return nil
	}

	if len(c.Args) > 0 {
		name, err := r.symbolTree.FindValue(strings.ToLower(c.Args[0]))
		if err != nil {
			r.printf("%v\n", err)
			return nil
		}
		r.printValue(name, r.result.Symbols.Lookup(name).Value)
		return nil
	}

	for _, name := range r.result.Symbols.Names() {
		r.printValue(name, r.result.Symbols.Lookup(name).Value)
	}
	return nil
}

func (r *REPL) printValue(name string, value int) {
	if r.settings.HexMode {
		r.printf("  %-20s $%04X\n", name, value)
	} else {
		r.printf("  %-20s %d\n", name, value)
	}
}

func (r *REPL) cmdErrors(c cmd.Selection) error {
	if r.result == nil {
		r.println("Nothing assembled yet.")
		return nil
	}
	if len(r.result.Diagnostics) == 0 {
		r.println("No errors or warnings.")
		return nil
	}
	for _, d := range r.result.Diagnostics {
		r.printf("  %5d %-7s %s\n", d.Line, d.Severity.String(), d.Message)
	}
	return nil
}

func (r *REPL) cmdDisassemble(c cmd.Selection) error {
	if r.result == nil {
		r.println("Nothing assembled yet.")
		return nil
	}
	if len(c.Args) < 1 {
		r.println("usage: disassemble <address> [count]")
		return nil
	}

	addr, err := strconv.ParseInt(strings.TrimPrefix(c.Args[0], "$"), 16, 32)
	if err != nil {
		r.printf("invalid address: %v\n", err)
		return nil
	}

	count := r.settings.DisasmLines
	if len(c.Args) > 1 {
		n, err := strconv.Atoi(c.Args[1])
		if err != nil {
			r.printf("invalid count: %v\n", err)
			return nil
		}
		count = n
	}

	optab := asm.NewOpcodeTable()
	srcMap := asm.NewSourceMap(r.result)
	for _, line := range asm.Disassemble(r.result.Image, optab, int(addr), count) {
		if srcLine, ok := srcMap.Search(line.Addr); ok {
			r.printf("  %04X  %-20s ; line %d\n", line.Addr, line.Text, srcLine)
		} else {
			r.printf("  %04X  %s\n", line.Addr, line.Text)
		}
	}
	return nil
}

func (r *REPL) cmdSet(c cmd.Selection) error {
	if len(c.Args) < 2 {
		r.println("usage: set <field> <value>")
		return nil
	}
	if err := r.settings.Set(c.Args[0], c.Args[1]); err != nil {
		r.printf("%v\n", err)
	}
	return nil
}

func (r *REPL) cmdShow(c cmd.Selection) error {
	r.settings.Display(r.output)
	r.flush()
	return nil
}

func (r *REPL) cmdQuit(c cmd.Selection) error {
	return errReplQuit
}
