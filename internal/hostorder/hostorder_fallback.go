//go:build !amd64 && !arm64 && !386 && !riscv64 && !ppc64le && !mips64le && !mipsle && !loong64 && !wasm && !arm && !s390x && !ppc64 && !mips && !mips64

// Copyright (c) 2026 The wlcore Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hostorder

import "unsafe"

// littleEndian determines the machine's byte order at init time on ports not
// covered by the explicit build-tag files.
func littleEndian() bool {
	var x uint16 = 0x0102
	b := *(*[2]byte)(unsafe.Pointer(&x))
	return b[0] != 0x01
}
