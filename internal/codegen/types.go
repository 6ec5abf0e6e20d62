// Package codegen implements the two-pass layout/emit engine: Pass 1 walks
// the fully expanded line stream to assign addresses and sizes without
// emitting bytes, and Pass 2 walks it again to encode every instruction
// and directive into the final ROM image, following the collectPass/
// emitPass split in the teacher's codegen.go/codegen_passes.go.
package codegen

import (
	"github.com/asmkit/asm8080/internal/isa"
)

// LabelInfo is one resolved label for the debug map.
type LabelInfo struct {
	Name string
	Addr int64
	File string
	Line int
}

// ConstInfo is one resolved constant for the debug map.
type ConstInfo struct {
	Name  string
	Value int64
}

// LineAddr records the ROM address the first byte of a given original
// source line was emitted at.
type LineAddr struct {
	File     string
	OrigLine int
	Addr     int64
}

// DataLine records where a data-emitting directive (DB/DW/DS/.text/.incbin) placed its
// bytes, for the debug writer's dataLines section.
type DataLine struct {
	File       string
	OrigLine   int
	Addr       int64
	ByteLength int
	UnitBytes  int
}

// Result is everything Generate produces: the flat ROM image plus enough
// metadata to write the debug map.
type Result struct {
	ROM           []byte
	Labels        []LabelInfo
	Consts        []ConstInfo
	LineAddresses []LineAddr
	DataLines     []DataLine
	// Prints holds every .print message in emission order, mirrored to
	// standard output as Pass 2 encounters them.
	Prints []string
}

// Options configures a Generator.
type Options struct {
	CPU isa.CPU
}

// ifState is the three-state .if/.endif conditional-assembly status:
// a frame is either actively emitting,
// inactive because its own condition was false, or inactive only because
// an ancestor frame is inactive (so its own condition is never evaluated).
type ifState int

const (
	ifActive ifState = iota
	ifInactiveByCondition
	ifInactiveSuppressed
)

type ifFrame struct {
	state ifState
}
