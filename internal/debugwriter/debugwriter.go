// Package debugwriter renders a codegen.Result's metadata into the JSON
// debug map a downstream editor or emulator loads alongside the ROM
// image, using stdlib encoding/json — no third-party serializer in the
// retrieved pack targets this caller-facing structured-output shape.
package debugwriter

import (
	"encoding/json"

	"github.com/asmkit/asm8080/internal/codegen"
)

// Map is the JSON-serializable debug map: labels, constants, the
// address each source line assembled to, and the placement of every
// data-emitting directive.
type Map struct {
	Labels        []LabelEntry `json:"labels"`
	Consts        []ConstEntry `json:"consts"`
	LineAddresses []LineEntry  `json:"lineAddresses"`
	DataLines     []DataEntry  `json:"dataLines"`
}

type LabelEntry struct {
	Name string `json:"name"`
	Addr int64  `json:"addr"`
	File string `json:"file"`
	Line int    `json:"line"`
}

type ConstEntry struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

type LineEntry struct {
	File string `json:"file"`
	Line int    `json:"line"`
	Addr int64  `json:"addr"`
}

type DataEntry struct {
	File       string `json:"file"`
	Line       int    `json:"line"`
	Addr       int64  `json:"addr"`
	ByteLength int    `json:"byteLength"`
	UnitBytes  int    `json:"unitBytes"`
}

// FromResult converts a codegen.Result into the JSON-serializable Map.
func FromResult(res *codegen.Result) *Map {
	m := &Map{
		Labels:        make([]LabelEntry, len(res.Labels)),
		Consts:        make([]ConstEntry, len(res.Consts)),
		LineAddresses: make([]LineEntry, len(res.LineAddresses)),
		DataLines:     make([]DataEntry, len(res.DataLines)),
	}
	for i, l := range res.Labels {
		m.Labels[i] = LabelEntry{Name: l.Name, Addr: l.Addr, File: l.File, Line: l.Line}
	}
	for i, c := range res.Consts {
		m.Consts[i] = ConstEntry{Name: c.Name, Value: c.Value}
	}
	for i, la := range res.LineAddresses {
		m.LineAddresses[i] = LineEntry{File: la.File, Line: la.OrigLine, Addr: la.Addr}
	}
	for i, dl := range res.DataLines {
		m.DataLines[i] = DataEntry{File: dl.File, Line: dl.OrigLine, Addr: dl.Addr, ByteLength: dl.ByteLength, UnitBytes: dl.UnitBytes}
	}
	return m
}

// Marshal renders a codegen.Result as indented debug-map JSON.
func Marshal(res *codegen.Result) ([]byte, error) {
	return json.MarshalIndent(FromResult(res), "", "  ")
}
