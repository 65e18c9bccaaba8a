// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "sort"

var hex = "0123456789ABCDEF"

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func hexchar(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}

func hexToByte(s string) byte {
	return hexchar(s[0])<<4 | hexchar(s[1])
}

// byteHex renders a single byte as two uppercase hex digits.
func byteHex(b byte) string {
	return string([]byte{hex[b>>4], hex[b&0x0f]})
}

func sortStrings(s []string) []string {
	sort.Strings(s)
	return s
}
