// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

// Image is the assembled 64 KiB memory image. Cells that were never
// written hold the sentinel -1.
type Image [65536]int

// newImage returns an image with every cell set to the "unwritten"
// sentinel.
func newImage() *Image {
	img := &Image{}
	for i := range img {
		img[i] = -1
	}
	return img
}

// At returns the byte at addr, or -1 if unwritten. addr must be in
// [0, 0xFFFF].
func (img *Image) At(addr int) int {
	return img[addr]
}
