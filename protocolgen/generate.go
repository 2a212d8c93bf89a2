// Copyright (c) 2026 The wlcore Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package protocolgen

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"
	"text/template"
)

// Options configures Generate.
type Options struct {
	// PackageName is the name of the generated Go package.
	PackageName string
	// ParsePackage is the import path of the parse package (component F),
	// e.g. "github.com/wlcore/wlcore/parse".
	ParsePackage string
	// CorePackage is the import path of the root wire package supplying
	// RawMessage, e.g. "github.com/wlcore/wlcore".
	CorePackage string
}

// Generate renders gofmt-formatted Go source implementing p's interfaces in
// the scheme demonstrated by hand in package protocol: a version constant
// and request sum type per interface, decoded by folding parse.Then
// right-to-left over its argument list and terminating in parse.Pass, plus
// event structs with an Encode method and enums with a Parse(uint32)
// (T, bool) lookup. Schema descriptions are carried through as doc comments.
//
// The emitted events call NewArgEncoder, so the target package must supply
// the ArgEncoder support code package protocol defines in types.go.
func Generate(p *Protocol, opts Options) ([]byte, error) {
	data := struct {
		Options
		Protocol    *Protocol
		Interfaces  []ifaceData
		HasRequests bool
		HasEvents   bool
	}{Options: opts, Protocol: p}

	// ifaceMap resolves a foreign enum= reference like "wl_output.transform"
	// to the Go interface name its type was generated under, for enum
	// arguments that point at another interface's enum.
	ifaceMap := make(map[string]string, len(p.Interfaces))
	for _, iface := range p.Interfaces {
		ifaceMap[iface.Name] = pascalCase(iface.Name)
	}

	for _, iface := range p.Interfaces {
		id, err := newIfaceData(iface, ifaceMap)
		if err != nil {
			return nil, err
		}
		if len(id.Requests) > 0 {
			data.HasRequests = true
		}
		if len(id.Events) > 0 {
			data.HasEvents = true
		}
		data.Interfaces = append(data.Interfaces, id)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("protocolgen: render template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("protocolgen: gofmt generated source: %w", err)
	}
	return formatted, nil
}

// ifaceData is the template-ready projection of one Interface, with names
// already cased and argument types already resolved to Go spellings.
type ifaceData struct {
	Pascal   string
	Version  uint32
	Doc      []string
	Requests []requestData
	Events   []eventData
	Enums    []enumData
}

type requestData struct {
	Pascal string
	Opcode int
	Doc    []string
	Args   []argData
	// ParserExpr is the fully rendered Go expression that decodes this
	// request: a right fold of parse.Then over Args terminating in
	// parse.Pass, built here (rather than by the text/template, which
	// cannot recurse over a slice) the same way the original generator
	// folds its argument list right-to-left into nested `then` calls.
	ParserExpr string
}

// buildParserExpr folds args right-to-left into nested parse.Then calls
// ending in a parse.Pass of the fully assembled request struct, mirroring
// wayne-protocol-macros/src/protocol/generator.rs's arg_parser fold.
// structType is the concrete request struct being assembled; sumType is the
// per-interface request interface every step's continuation is typed as.
func buildParserExpr(structType, sumType string, args []argData) string {
	fields := make([]string, len(args))
	for i, a := range args {
		fields[i] = fmt.Sprintf("%s: %s", a.GoField, a.Name)
	}
	expr := fmt.Sprintf("parse.Pass[%s](%s{%s})", sumType, structType, strings.Join(fields, ", "))

	for i := len(args) - 1; i >= 0; i-- {
		a := args[i]
		expr = fmt.Sprintf(
			"parse.Then(%s, func(%s %s) parse.Parser[%s] {\n\t\treturn %s\n\t})",
			a.ParserCall, a.Name, a.GoType, sumType, expr,
		)
	}
	return expr
}

// polyNewIDParserCall decodes wl_registry.bind's dynamic new_id: the
// interface name, its version, and the new object id, in that wire order.
const polyNewIDParserCall = `parse.Then(parse.StringZ(), func(iface string) parse.Parser[parse.PolyNewID] {
		return parse.Then(parse.U32(), func(version uint32) parse.Parser[parse.PolyNewID] {
			return parse.Map(parse.U32(), func(id uint32) parse.PolyNewID {
				return parse.PolyNewID{Interface: iface, Version: version, ID: id}
			})
		})
	})`

type eventData struct {
	Pascal string
	Opcode int
	Doc    []string
	Args   []argData
	HasFD  bool
}

type argData struct {
	Name        string
	GoField     string
	ParserCall  string // e.g. "parse.U32()", only set for request args
	GoType      string // decoded/wire Go type, shared by request and event structs
	PutCall     string // ArgEncoder method name, e.g. "PutUint32", only set for event args
	PutArg      string // expression passed to PutCall, e.g. "e.Size" or "uint32(e.Format)"
	IsFD        bool
	IsPolyNewID bool
	IsEnum      bool
	IsNullable  bool
}

type enumData struct {
	Pascal  string
	Doc     []string
	Entries []entryData
}

type entryData struct {
	Pascal string
	Value  uint32
}

func newIfaceData(iface Interface, ifaceMap map[string]string) (ifaceData, error) {
	id := ifaceData{
		Pascal:  pascalCase(iface.Name),
		Version: iface.Version,
		Doc:     docLines(iface.Description),
	}

	for i, req := range iface.Requests {
		rd := requestData{Pascal: pascalCase(req.Name), Opcode: i, Doc: docLines(req.Description)}
		for _, a := range req.Args {
			// A new_id argument with no interface attribute is the
			// dynamic "poly" form wl_registry.bind uses: the interface
			// name and version travel on the wire alongside the id.
			isPoly := a.Type == "new_id" && a.Interface == ""
			ad := argData{
				Name:        goParamName(a.Name),
				GoField:     pascalCase(a.Name),
				GoType:      goTypeFor(a),
				IsFD:        a.Type == "fd",
				IsPolyNewID: isPoly,
			}
			switch {
			case isPoly:
				ad.ParserCall = polyNewIDParserCall
				ad.GoType = "parse.PolyNewID"
			case a.Enum != "":
				ad.IsEnum = true
				ad.GoType = enumGoType(a.Enum, id.Pascal, ifaceMap)
				ad.ParserCall = enumParserCall(a, ad.GoType)
			default:
				ad.ParserCall = parserCallFor(a)
			}
			rd.Args = append(rd.Args, ad)
		}
		rd.ParserExpr = buildParserExpr(id.Pascal+rd.Pascal+"Request", id.Pascal+"Request", rd.Args)
		id.Requests = append(id.Requests, rd)
	}

	for i, ev := range iface.Events {
		ed := eventData{Pascal: pascalCase(ev.Name), Opcode: i, Doc: docLines(ev.Description)}
		for _, a := range ev.Args {
			ad := argData{
				Name:    a.Name,
				GoField: pascalCase(a.Name),
				GoType:  goTypeFor(a),
				IsFD:    a.Type == "fd",
				IsEnum:  a.Enum != "",
			}
			if ad.IsEnum {
				ad.GoType = enumGoType(a.Enum, id.Pascal, ifaceMap)
			}
			ad.PutCall = putCallFor(a)
			ad.PutArg = putArgFor(ad)
			if ad.IsFD {
				ed.HasFD = true
			}
			ed.Args = append(ed.Args, ad)
		}
		id.Events = append(id.Events, ed)
	}

	for _, en := range iface.Enums {
		ed := enumData{Pascal: pascalCase(iface.Name) + pascalCase(en.Name), Doc: docLines(en.Description)}
		for _, entry := range en.Entries {
			v, err := entry.IntValue()
			if err != nil {
				return ifaceData{}, err
			}
			ed.Entries = append(ed.Entries, entryData{Pascal: pascalCase(entry.Name), Value: v})
		}
		id.Enums = append(id.Enums, ed)
	}

	return id, nil
}

// enumGoType resolves a Wayland arg's enum= attribute to the Go type name
// the generator emits for it. The attribute is either a bare enum name
// scoped to the current interface ("capability") or, for enums belonging to
// another interface, "interface_name.enum_name" (e.g. "wl_output.transform")
// — ifaceMap maps the foreign interface's XML name to its generated Pascal
// name so the reference resolves across interfaces.
func enumGoType(enumRef, currentIfacePascal string, ifaceMap map[string]string) string {
	if dot := strings.IndexByte(enumRef, '.'); dot >= 0 {
		ifaceName, enumName := enumRef[:dot], enumRef[dot+1:]
		ifacePascal, ok := ifaceMap[ifaceName]
		if !ok {
			ifacePascal = pascalCase(ifaceName)
		}
		return ifacePascal + pascalCase(enumName)
	}
	return currentIfacePascal + pascalCase(enumRef)
}

// enumParserCall decodes the argument's underlying wire integer and looks it
// up against the resolved enum's generated Parse function, failing the
// request if the wire value has no matching member — the same
// .map(...).some() composition hand-written in protocol/wl_shm_pool.go's
// ShmPoolCreateBufferRequest decoder.
func enumParserCall(a Arg, enumGoType string) string {
	base, conv := "parse.U32()", "uint32"
	if a.Type == "int" {
		base, conv = "parse.I32()", "int32"
	}
	return fmt.Sprintf(
		"parse.Some(%s, func(v %s) (%s, bool) { return Parse%s(uint32(v)) }, parse.ErrInvalidEnum)",
		base, conv, enumGoType, enumGoType,
	)
}

// putArgFor returns the expression passed to ad.PutCall: enum-typed event
// args need an explicit conversion to their wire integer type, matching
// protocol/wl_shm.go's hand-written ShmFormatEvent.Encode
// ("enc.PutUint32(uint32(e.Format))").
func putArgFor(ad argData) string {
	if ad.IsEnum {
		return fmt.Sprintf("uint32(e.%s)", ad.GoField)
	}
	return fmt.Sprintf("e.%s", ad.GoField)
}

func parserCallFor(a Arg) string {
	switch a.Type {
	case "int":
		return "parse.I32()"
	case "uint":
		return "parse.U32()"
	case "fixed":
		return "parse.Fixed()"
	case "string":
		return "parse.StringZ()"
	case "array":
		return "parse.Array()"
	case "fd":
		return "parse.FD()"
	case "object":
		// The generator has no per-interface phantom marker type to bind
		// (those are hand-authored, e.g. protocol.Surface), so object
		// arguments decode as bare uint32s here, same wire shape.
		return "parse.U32()"
	case "new_id":
		return "parse.U32()"
	default:
		return "parse.U32()"
	}
}

func goTypeFor(a Arg) string {
	switch a.Type {
	case "int":
		return "int32"
	case "uint", "object", "new_id":
		return "uint32"
	case "fixed":
		return "float64"
	case "string":
		return "string"
	case "array":
		return "[]byte"
	case "fd":
		return "int"
	default:
		return "uint32"
	}
}

func putCallFor(a Arg) string {
	switch a.Type {
	case "int":
		return "PutInt32"
	case "uint":
		return "PutUint32"
	case "fixed":
		return "PutFixed"
	case "string":
		return "PutString"
	case "array":
		return "PutArray"
	case "object", "new_id":
		return "PutObjID"
	case "fd":
		return "PutFD"
	default:
		return "PutUint32"
	}
}

// docLines projects a schema description into doc-comment lines, dropping
// interior blank lines so the rendered comment stays a single block.
func docLines(d Description) []string {
	var out []string
	for _, line := range d.Lines() {
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// goParamName returns the argument's name as a usable Go identifier: schema
// argument names like "interface" or "type" are legal in protocol XML but
// collide with Go keywords when used as lambda parameters.
func goParamName(s string) string {
	switch s {
	case "break", "case", "chan", "const", "continue", "default", "defer",
		"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
		"interface", "map", "package", "range", "return", "select", "struct",
		"switch", "type", "var":
		return s + "_"
	}
	return s
}

// pascalCase converts a snake_case protocol identifier (e.g. "get_registry")
// to PascalCase (e.g. "GetRegistry"), matching the casing convention the
// hand-written protocol package itself uses.
func pascalCase(s string) string {
	parts := strings.Split(s, "_")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		if p[0] >= '0' && p[0] <= '9' {
			b.WriteByte('_')
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

var tmpl = template.Must(template.New("protocol").Parse(sourceTemplate))

const sourceTemplate = `// Code generated by wlcore-scanner from {{.Protocol.Name}}.xml. DO NOT EDIT.

package {{.PackageName}}

{{if or .HasEvents .HasRequests}}
import (
{{if .HasEvents}}	"{{.CorePackage}}"
{{end}}{{if .HasRequests}}	"{{.ParsePackage}}"
{{end}})
{{end}}

{{range .Interfaces}}
{{$iface := .}}
{{range .Doc}}// {{.}}
{{end}}const {{.Pascal}}Version uint32 = {{.Version}}
{{range .Enums}}
{{$enum := .}}
{{range .Doc}}// {{.}}
{{end}}type {{.Pascal}} uint32

const (
{{range .Entries}}	{{$enum.Pascal}}{{.Pascal}} {{$enum.Pascal}} = {{.Value}}
{{end}}
)

// Parse{{.Pascal}} looks up the {{.Pascal}} member for a wire value.
func Parse{{.Pascal}}(v uint32) ({{.Pascal}}, bool) {
	switch {{.Pascal}}(v) {
	case {{range $i, $e := .Entries}}{{if $i}}, {{end}}{{$enum.Pascal}}{{$e.Pascal}}{{end}}:
		return {{.Pascal}}(v), true
	default:
		return 0, false
	}
}
{{end}}
{{if .Requests}}
// {{$iface.Pascal}}Request is the sum of every request {{$iface.Pascal}} accepts.
type {{$iface.Pascal}}Request interface{ is{{$iface.Pascal}}Request() }
{{end}}
{{range .Requests}}
{{range .Doc}}// {{.}}
{{end}}type {{$iface.Pascal}}{{.Pascal}}Request struct {
{{range .Args}}	{{.GoField}} {{.GoType}}
{{end}}}

func ({{$iface.Pascal}}{{.Pascal}}Request) is{{$iface.Pascal}}Request() {}
{{end}}
{{if .Requests}}
// {{$iface.Pascal}}RequestParser returns the parser for a {{$iface.Pascal}} request opcode.
func {{$iface.Pascal}}RequestParser(opcode uint16) (parse.Parser[{{$iface.Pascal}}Request], bool) {
	switch opcode {
{{range .Requests}}	case {{.Opcode}}:
		return {{.ParserExpr}}, true
{{end}}	default:
		return nil, false
	}
}
{{end}}
{{range .Events}}
{{range .Doc}}// {{.}}
{{end}}type {{$iface.Pascal}}{{.Pascal}}Event struct {
{{range .Args}}	{{.GoField}} {{.GoType}}
{{end}}}
{{if .HasFD}}
func (e {{$iface.Pascal}}{{.Pascal}}Event) Encode(objectID uint32) (wlcore.RawMessage, []int) {
	enc := NewArgEncoder(32)
{{range .Args}}	enc.{{.PutCall}}({{.PutArg}})
{{end}}	return enc.Message(objectID, {{.Opcode}})
}
{{else}}
func (e {{$iface.Pascal}}{{.Pascal}}Event) Encode(objectID uint32) wlcore.RawMessage {
	enc := NewArgEncoder(32)
{{range .Args}}	enc.{{.PutCall}}({{.PutArg}})
{{end}}	msg, _ := enc.Message(objectID, {{.Opcode}})
	return msg
}
{{end}}{{end}}
{{end}}
`
