// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/jgeist/yas6502/asm"
)

var (
	listing     bool
	listingPath string
	objectPath  string
	showVersion bool
)

func init() {
	flag.BoolVar(&listing, "L", false, "write a listing file")
	flag.StringVar(&listingPath, "l", "", "listing file path (implies -L)")
	flag.StringVar(&objectPath, "o", "", "object file path")
	flag.BoolVar(&showVersion, "v", false, "print the version and exit")
	flag.CommandLine.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: yas6502 [options] file\nOptions:")
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Println("yas6502 version 1.00")
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) < 1 {
		flag.CommandLine.Usage()
		os.Exit(1)
	}
	srcPath := args[0]

	if listingPath != "" {
		listing = true
	}
	base := strings.TrimSuffix(srcPath, filepathExt(srcPath))
	if listing && listingPath == "" {
		listingPath = base + ".lst"
	}
	if objectPath == "" {
		objectPath = base + ".o"
	}

	src, err := os.ReadFile(srcPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "yas6502: %v\n", err)
		os.Exit(1)
	}

	result, err := asm.Assemble(src, srcPath, asm.AssembleOptions{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "yas6502: %v\n", err)
		os.Exit(1)
	}

	os.Remove(objectPath)

	if result.Errors() == 0 {
		if err := writeObjectFile(objectPath, result); err != nil {
			fmt.Fprintf(os.Stderr, "yas6502: %v\n", err)
			os.Exit(1)
		}
	}

	if listing {
		if err := writeListingFile(listingPath, result); err != nil {
			fmt.Fprintf(os.Stderr, "yas6502: %v\n", err)
			os.Exit(1)
		}
	}

	if len(result.Diagnostics) > 0 {
		fmt.Fprintf(os.Stderr, "%d error(s), %d warning(s)\n", result.Errors(), result.Warnings())
	}

	if result.Errors() > 0 {
		os.Exit(1)
	}
	os.Exit(0)
}

func writeObjectFile(path string, result *asm.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return asm.WriteObjectFile(f, result.Image)
}

func writeListingFile(path string, result *asm.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return asm.WriteListing(f, result)
}

func filepathExt(name string) string {
	for i := len(name) - 1; i >= 0 && name[i] != '/'; i-- {
		if name[i] == '.' {
			return name[i:]
		}
	}
	return ""
}
