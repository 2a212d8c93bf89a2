// Copyright (c) 2026 The wlcore Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wlcore

// Encode appends the on-wire encoding of m (8-byte header, body, and zero
// padding to the next multiple of 4 bytes) to dst and returns the extended
// slice. It is the mechanical inverse of Framer.Parse.
func (m RawMessage) Encode(dst []byte) ([]byte, error) {
	size := headerLen + len(m.Body)
	if size > maxFrameSize {
		return nil, ErrMessageTooLarge
	}

	bo := hostOrder()
	var header [headerLen]byte
	bo.PutUint32(header[0:4], m.ObjectID)
	bo.PutUint32(header[4:8], uint32(size)<<16|uint32(m.Opcode))

	dst = append(dst, header[:]...)
	dst = append(dst, m.Body...)

	padded := (size + 3) &^ 3
	for i := size; i < padded; i++ {
		dst = append(dst, 0)
	}
	return dst, nil
}
