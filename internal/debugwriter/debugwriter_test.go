package debugwriter

import (
	"encoding/json"
	"testing"

	"github.com/asmkit/asm8080/internal/codegen"
)

func TestMarshalRoundTrip(t *testing.T) {
	res := &codegen.Result{
		ROM:    []byte{0x3E, 0x05},
		Labels: []codegen.LabelInfo{{Name: "start", Addr: 0, File: "prog.asm", Line: 1}},
		Consts: []codegen.ConstInfo{{Name: "LIMIT", Value: 10}},
		LineAddresses: []codegen.LineAddr{
			{File: "prog.asm", OrigLine: 1, Addr: 0},
		},
		DataLines: []codegen.DataLine{
			{File: "prog.asm", OrigLine: 2, Addr: 2, ByteLength: 3, UnitBytes: 1},
		},
	}

	out, err := Marshal(res)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded Map
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(decoded.Labels) != 1 || decoded.Labels[0].Name != "start" {
		t.Fatalf("labels = %+v", decoded.Labels)
	}
	if len(decoded.Consts) != 1 || decoded.Consts[0].Value != 10 {
		t.Fatalf("consts = %+v", decoded.Consts)
	}
	if len(decoded.DataLines) != 1 || decoded.DataLines[0].ByteLength != 3 {
		t.Fatalf("dataLines = %+v", decoded.DataLines)
	}
}

func TestMarshalEmptyResult(t *testing.T) {
	out, err := Marshal(&codegen.Result{})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded Map
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Labels == nil {
		t.Fatalf("labels = nil, want an empty (non-null) JSON array for a result with no labels")
	}
}
