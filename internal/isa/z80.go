package isa

// z80direct holds the handful of genuinely Z80-only forms this subset
// supports — relative jumps and the shadow-register exchange — that have
// no 8080 equivalent to normalize into.
var z80direct = map[string]Entry{
	"JR A8":      {Opcode: []byte{0x18}, Size: 2, ImmSize: 1},
	"JRNZ A8":    {Opcode: []byte{0x20}, Size: 2, ImmSize: 1},
	"JRZ A8":     {Opcode: []byte{0x28}, Size: 2, ImmSize: 1},
	"JRNC A8":    {Opcode: []byte{0x30}, Size: 2, ImmSize: 1},
	"JRC A8":     {Opcode: []byte{0x38}, Size: 2, ImmSize: 1},
	"DJNZ A8":    {Opcode: []byte{0x10}, Size: 2, ImmSize: 1},
	"EXX":        {Opcode: []byte{0xD9}, Size: 1, ImmSize: 0},
	"EX AF,AF\"": {Opcode: []byte{0x08}, Size: 1, ImmSize: 0},
}

// z80Alias maps a Z80 mnemonic+shape key onto the equivalent 8080 table
// key. Only the LD/JP/CALL/RET/ADD-A family and EX DE,HL are aliased — the rest of the
// Z80 mnemonic set (CB-prefixed bit instructions, IX/IY, the alternate
// register file beyond AF') is out of scope per SPEC_FULL.md's
// 8080-equivalent-subset-only Z80 support.
func z80Alias(key string) (string, bool) {
	if aliased, ok := z80LDAlias[key]; ok {
		return aliased, true
	}
	if aliased, ok := z80JumpAlias[key]; ok {
		return aliased, true
	}
	return "", false
}

var z80LDAlias = buildZ80LDAlias()

func buildZ80LDAlias() map[string]string {
	m := make(map[string]string)
	regOrder := []string{"B", "C", "D", "E", "H", "L", "M", "A"}
	for _, dst := range regOrder {
		for _, src := range regOrder {
			if dst == "M" && src == "M" {
				continue
			}
			m["LD "+dst+","+src] = "MOV " + dst + "," + src
		}
		m["LD "+dst+",D8"] = "MVI " + dst + ",D8"
	}
	for _, rp := range []string{"B", "D", "H", "SP"} {
		m["LD "+rp+",D16"] = "LXI " + rp + ",D16"
	}
	m["LD (B),A"] = "STAX B"
	m["LD (D),A"] = "STAX D"
	m["LD A,(B)"] = "LDAX B"
	m["LD A,(D)"] = "LDAX D"
	m["LD (A16),A"] = "STA A16"
	m["LD A,(A16)"] = "LDA A16"
	m["LD (A16),H"] = "SHLD A16"
	m["LD H,(A16)"] = "LHLD A16"
	m["ADD A,A"] = "ADD A" // register-only ADD A,r forms collapse onto ADD r
	for _, r := range regOrder {
		m["ADD A,"+r] = "ADD " + r
	}
	m["EX D,H"] = "XCHG"
	return m
}

var z80JumpAlias = map[string]string{
	"JP A16":   "JMP A16",
	"CALL A16": "CALL A16",
	"RET":      "RET",
	"JPNZ A16": "JNZ A16",
	"JPZ A16":  "JZ A16",
	"JPNC A16": "JNC A16",
	"JPC A16":  "JC A16",
	"JPPO A16": "JPO A16",
	"JPPE A16": "JPE A16",
	"JPP A16":  "JP A16",
	"JPM A16":  "JM A16",
}
