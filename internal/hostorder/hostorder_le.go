//go:build amd64 || arm64 || 386 || riscv64 || ppc64le || mips64le || mipsle || loong64 || wasm || arm

// Copyright (c) 2026 The wlcore Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hostorder

func littleEndian() bool { return true }
