// Copyright (c) 2026 The wlcore Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package protocolgen reads a Wayland protocol XML schema and emits Go
// source in the style of the hand-written protocol package: a request sum
// type per interface decoded via a fold-right chain of parse.Then, event
// structs with an Encode method, and generated enums.
package protocolgen

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// Protocol is the root element of a Wayland protocol XML file.
type Protocol struct {
	XMLName    xml.Name    `xml:"protocol"`
	Name       string      `xml:"name,attr"`
	Interfaces []Interface `xml:"interface"`
}

// Interface describes one Wayland interface: its requests, events, and
// enums.
type Interface struct {
	Name        string       `xml:"name,attr"`
	Version     uint32       `xml:"version,attr"`
	Description Description  `xml:"description"`
	Requests    []Request    `xml:"request"`
	Events      []Event      `xml:"event"`
	Enums       []Enum       `xml:"enum"`
}

// Description is the free-text documentation attached to most schema
// elements.
type Description struct {
	Summary string `xml:"summary,attr"`
	Text    string `xml:",chardata"`
}

// Lines returns the description's doc-comment body, preferring the long
// form text over the one-line summary when both are present.
func (d Description) Lines() []string {
	text := strings.TrimSpace(d.Text)
	if text == "" {
		text = d.Summary
	}
	var out []string
	for _, line := range strings.Split(text, "\n") {
		out = append(out, strings.TrimSpace(line))
	}
	return out
}

// Request is one method a client may invoke on an interface.
type Request struct {
	Name        string      `xml:"name,attr"`
	Description Description `xml:"description"`
	Args        []Arg       `xml:"arg"`
}

// Event is one message a server may emit on an interface.
type Event struct {
	Name        string      `xml:"name,attr"`
	Description Description `xml:"description"`
	Args        []Arg       `xml:"arg"`
}

// Arg is one request or event argument.
type Arg struct {
	Name      string `xml:"name,attr"`
	Type      string `xml:"type,attr"`
	Interface string `xml:"interface,attr"`
	Enum      string `xml:"enum,attr"`
	Summary   string `xml:"summary,attr"`
	AllowNull bool   `xml:"allow-null,attr"`
}

// Enum is a named set of integer constants scoped to an interface.
type Enum struct {
	Name        string      `xml:"name,attr"`
	Description Description `xml:"description"`
	Entries     []Entry     `xml:"entry"`
}

// Entry is one member of an Enum.
type Entry struct {
	Name    string `xml:"name,attr"`
	Value   string `xml:"value,attr"`
	Summary string `xml:"summary,attr"`
}

// IntValue parses Entry's Value attribute, which the schema may express in
// decimal or, prefixed with "0x", hexadecimal.
func (e Entry) IntValue() (uint32, error) {
	s := e.Value
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err := strconv.ParseUint(s[2:], 16, 32)
		return uint32(v), err
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("protocolgen: entry %q: %w", e.Name, err)
	}
	return uint32(v), nil
}

// ParseProtocol decodes a Wayland protocol XML document.
func ParseProtocol(data []byte) (*Protocol, error) {
	var p Protocol
	if err := xml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("protocolgen: parse protocol xml: %w", err)
	}
	return &p, nil
}
