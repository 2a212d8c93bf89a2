// Copyright (c) 2026 The wlcore Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wlcore_test

import (
	"bytes"
	"testing"

	"github.com/wlcore/wlcore"
)

func encodeLiteral(t *testing.T, objectID uint32, opcode uint16, body []byte) []byte {
	t.Helper()
	enc, err := wlcore.RawMessage{ObjectID: objectID, Opcode: opcode, Body: body}.Encode(nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return enc
}

// Scenario 1 — single framed message, drip-fed one byte at a time.
func TestFramer_DripFedSingleMessage(t *testing.T) {
	body := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	frame := encodeLiteral(t, 420, 69, body)
	if len(frame) != 16 {
		t.Fatalf("frame len=%d want 16", len(frame))
	}

	fr := wlcore.NewFramer(64)
	for i := 0; i < len(frame)-1; i++ {
		fr.Write(frame[i : i+1])
		if _, ok := fr.Parse(); ok {
			t.Fatalf("unexpected message after byte %d", i+1)
		}
	}
	fr.Write(frame[len(frame)-1:])

	msg, ok := fr.Parse()
	if !ok {
		t.Fatal("expected a message after final byte")
	}
	if msg.ObjectID != 420 || msg.Opcode != 69 || !bytes.Equal(msg.Body, body) {
		t.Fatalf("msg=%+v", msg)
	}

	if _, ok := fr.Parse(); ok {
		t.Fatal("expected no further messages")
	}
}

// Scenario 2 — two 16-byte messages delivered in a single 32-byte write.
func TestFramer_TwoMessagesOneChunk(t *testing.T) {
	body := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	one := encodeLiteral(t, 420, 69, body)
	chunk := append(append([]byte(nil), one...), one...)
	if len(chunk) != 32 {
		t.Fatalf("chunk len=%d want 32", len(chunk))
	}

	fr := wlcore.NewFramer(64)
	fr.Write(chunk)

	for i := 0; i < 2; i++ {
		msg, ok := fr.Parse()
		if !ok {
			t.Fatalf("message %d: expected ok", i)
		}
		if msg.ObjectID != 420 || msg.Opcode != 69 || !bytes.Equal(msg.Body, body) {
			t.Fatalf("message %d: msg=%+v", i, msg)
		}
	}
	if _, ok := fr.Parse(); ok {
		t.Fatal("expected no third message")
	}
}

// Property: header-size clamp. A size field of 0-7 is promoted to 8, and
// exactly 8 bytes are consumed for such a header-only frame.
func TestFramer_SizeFieldClampedTo8(t *testing.T) {
	fr := wlcore.NewFramer(64)
	// object_id=1, opcode=5, size=3 (invalid, below header length)
	raw := []byte{1, 0, 0, 0, 5, 0, 3, 0}
	fr.Write(raw)

	msg, ok := fr.Parse()
	if !ok {
		t.Fatal("expected a message")
	}
	if len(msg.Body) != 0 {
		t.Fatalf("body len=%d want 0", len(msg.Body))
	}
	if fr.Available() != 0 {
		t.Fatalf("available=%d want 0 (exactly 8 bytes consumed)", fr.Available())
	}
}

// Property: framing round-trip across arbitrary chunk sizes.
func TestFramer_RoundTripArbitraryChunking(t *testing.T) {
	bodies := [][]byte{
		{},
		{1},
		{1, 2, 3},
		bytes.Repeat([]byte{0xAB}, 37),
		bytes.Repeat([]byte{0xCD}, 4),
	}

	var all []byte
	for i, b := range bodies {
		all = append(all, encodeLiteral(t, uint32(i+1), uint16(i), b)...)
	}

	fr := wlcore.NewFramer(4096)
	chunkSizes := []int{1, 2, 3, 5, 7, 11, 13, 17, 23, 29, 1000}
	off := 0
	var got []wlcore.RawMessage
	ci := 0
	for off < len(all) {
		n := chunkSizes[ci%len(chunkSizes)]
		ci++
		if off+n > len(all) {
			n = len(all) - off
		}
		fr.Write(all[off : off+n])
		off += n
		for {
			msg, ok := fr.Parse()
			if !ok {
				break
			}
			// Copy Body since it aliases internal storage.
			bodyCopy := append([]byte(nil), msg.Body...)
			got = append(got, wlcore.RawMessage{ObjectID: msg.ObjectID, Opcode: msg.Opcode, Body: bodyCopy})
		}
	}

	if len(got) != len(bodies) {
		t.Fatalf("got %d messages, want %d", len(got), len(bodies))
	}
	for i, b := range bodies {
		if got[i].ObjectID != uint32(i+1) || got[i].Opcode != uint16(i) || !bytes.Equal(got[i].Body, b) {
			t.Fatalf("message %d mismatch: got=%+v want body=%v", i, got[i], b)
		}
	}
}

func TestRawMessage_EncodeTooLarge(t *testing.T) {
	_, err := wlcore.RawMessage{Body: make([]byte, 1 << 16)}.Encode(nil)
	if err != wlcore.ErrMessageTooLarge {
		t.Fatalf("err=%v want ErrMessageTooLarge", err)
	}
}

func TestRawMessage_EncodeZeroBodyPadsToHeaderOnly(t *testing.T) {
	enc := encodeLiteral(t, 7, 2, nil)
	if len(enc) != 8 {
		t.Fatalf("len=%d want 8", len(enc))
	}
}
