// Copyright (c) 2026 The wlcore Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package protocol

import (
	"github.com/wlcore/wlcore"
	"github.com/wlcore/wlcore/parse"
)

// RegistryVersion is the wl_registry interface version this package models.
const RegistryVersion uint32 = 1

// RegistryRequest is the sum of every request wl_registry accepts.
type RegistryRequest interface{ isRegistryRequest() }

// RegistryBindRequest binds the global advertised as Name to a new object of
// the client-chosen Interface/Version, identified by ID. This is the
// canonical "poly new_id" argument: unlike DisplaySyncRequest's Callback,
// the target interface is not fixed by the schema, so it travels on the
// wire alongside the id.
type RegistryBindRequest struct {
	Name  uint32
	NewID parse.PolyNewID
}

func (RegistryBindRequest) isRegistryRequest() {}

// RegistryRequestParser returns the parser for a wl_registry request opcode.
func RegistryRequestParser(opcode uint16) (parse.Parser[RegistryRequest], bool) {
	switch opcode {
	case 0: // bind
		p := parse.Then(parse.U32(), func(name uint32) parse.Parser[RegistryRequest] {
			return parse.Then(parse.StringZ(), func(iface string) parse.Parser[RegistryRequest] {
				return parse.Then(parse.U32(), func(version uint32) parse.Parser[RegistryRequest] {
					return parse.Map(parse.U32(), func(id uint32) RegistryRequest {
						return RegistryBindRequest{
							Name: name,
							NewID: parse.PolyNewID{
								Interface: iface,
								Version:   version,
								ID:        id,
							},
						}
					})
				})
			})
		})
		return p, true
	default:
		return nil, false
	}
}

// RegistryGlobalEvent advertises a named global object the client may bind.
type RegistryGlobalEvent struct {
	Name      uint32
	Interface string
	Version   uint32
}

// Encode serializes the global event (wl_registry opcode 0).
func (e RegistryGlobalEvent) Encode(registryObjectID uint32) wlcore.RawMessage {
	enc := NewArgEncoder(32 + len(e.Interface))
	enc.PutUint32(e.Name)
	enc.PutString(e.Interface)
	enc.PutUint32(e.Version)
	msg, _ := enc.Message(registryObjectID, 0)
	return msg
}

// RegistryGlobalRemoveEvent retracts a previously advertised global.
type RegistryGlobalRemoveEvent struct {
	Name uint32
}

// Encode serializes the global_remove event (wl_registry opcode 1).
func (e RegistryGlobalRemoveEvent) Encode(registryObjectID uint32) wlcore.RawMessage {
	enc := NewArgEncoder(8)
	enc.PutUint32(e.Name)
	msg, _ := enc.Message(registryObjectID, 1)
	return msg
}
