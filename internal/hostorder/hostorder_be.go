//go:build s390x || ppc64 || mips || mips64

// Copyright (c) 2026 The wlcore Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hostorder

func littleEndian() bool { return false }
