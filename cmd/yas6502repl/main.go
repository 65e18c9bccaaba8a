// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/jgeist/yas6502/repl"
)

func main() {
	r := repl.New()

	args := os.Args[1:]
	if len(args) > 0 {
		for _, filename := range args {
			file, err := os.Open(filename)
			if err != nil {
				exitOnError(err)
			}
			r.RunCommands(file, os.Stdout, false)
			file.Close()
		}
	}

	r.RunCommands(os.Stdin, os.Stdout, true)
}

func exitOnError(err error) {
	os.Stderr.WriteString("ERROR: " + err.Error() + "\n")
	os.Exit(1)
}
