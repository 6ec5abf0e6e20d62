package isa

// Lookup resolves a "MNEMONIC SHAPE" key against the table for the given
// CPU. For CPUZ80, a Z80-only direct form is tried first, then the
// alias table normalizes Z80 syntax onto the 8080 key space, then the
// 8080 table itself (since every 8080 mnemonic is also valid Z80-subset
// syntax here).
func Lookup(cpu CPU, key string) (Entry, bool) {
	if cpu == CPUZ80 {
		if e, ok := z80direct[key]; ok {
			return e, true
		}
		if aliased, ok := z80Alias(key); ok {
			key = aliased
		}
	}
	e, ok := table8080[key]
	return e, ok
}
