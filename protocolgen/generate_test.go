// Copyright (c) 2026 The wlcore Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package protocolgen

import (
	"strings"
	"testing"
)

func TestGenerate_ProducesFormattedSourceForEveryArgKind(t *testing.T) {
	p := loadTestProtocol(t)

	src, err := Generate(p, Options{
		PackageName:  "wlcoretestprotocol",
		ParsePackage: "github.com/wlcore/wlcore/parse",
		CorePackage:  "github.com/wlcore/wlcore",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	out := string(src)
	if !strings.HasPrefix(out, "// Code generated by wlcore-scanner") {
		t.Fatalf("missing generated-code header:\n%s", out[:min(len(out), 80)])
	}
	if !strings.Contains(out, "package wlcoretestprotocol") {
		t.Fatal("missing package clause")
	}

	// A request sum type per interface, each request folded into a
	// Then-chain ending in Pass,
	// and an opcode-dispatching decoder factory.
	for _, want := range []string{
		"type TestSeatRequest interface{ isTestSeatRequest() }",
		"type TestSeatSetNameRequest struct",
		"func TestSeatRequestParser(opcode uint16)",
		"parse.Then(parse.StringZ()",
		"parse.Pass[TestSeatRequest]",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("generated source missing %q:\n%s", want, out)
		}
	}

	// Enum constants use the interface-qualified name and literal values
	// from the XML (decimal and hex both resolve to the same Go literal
	// form via Entry.IntValue before rendering).
	if !strings.Contains(out, "TestSeatCapability") {
		t.Fatal("missing generated enum type")
	}
	if !strings.Contains(out, "TestSeatCapability = 4") {
		t.Fatal("hex enum entry value 0x4 not rendered as 4")
	}

	// The interface version constant and the schema's descriptions survive
	// into the generated source.
	if !strings.Contains(out, "const TestSeatVersion uint32 = 3") {
		t.Fatal("missing interface version constant")
	}
	if !strings.Contains(out, "// assign a human-readable name") {
		t.Fatal("request description not carried into a doc comment")
	}

	// An event carrying an fd encodes it via PutFD and hands the fd slice
	// back for SCM_RIGHTS delivery alongside the message.
	if !strings.Contains(out, "func (e TestSeatKeymapEvent) Encode(objectID uint32) (wlcore.RawMessage, []int)") {
		t.Fatal("fd-carrying event should return its fds from Encode")
	}
	if !strings.Contains(out, "enc.PutFD(e.Fd)") {
		t.Fatal("fd-carrying event should queue its fd on the encoder")
	}
}

func TestGenerate_RejectsMalformedEnumEntry(t *testing.T) {
	p := &Protocol{
		Name: "bad",
		Interfaces: []Interface{{
			Name: "broken",
			Enums: []Enum{{
				Name:    "e",
				Entries: []Entry{{Name: "x", Value: "not-a-number"}},
			}},
		}},
	}

	if _, err := Generate(p, Options{PackageName: "broken"}); err == nil {
		t.Fatal("expected Generate to fail on a malformed enum entry value")
	}
}
