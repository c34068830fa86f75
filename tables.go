package z80

// The CB table has a uniform shape across all 256 opcodes: bits 0-2 always
// select a register (or (HL)), and bits 3-7 select which of four operation
// families (rotate/shift, BIT, RES, SET) applies and, for the latter
// three, which bit number. One pass with a switch on the family builds the
// whole table instead of four separately-bounded range loops.
func (c *CPU) initCBOps() {
	for opcode := 0; opcode <= 0xFF; opcode++ {
		op := byte(opcode)
		reg := op & 0x07
		field := (op >> 3) & 0x07 // rotate/shift group, or bit number for BIT/RES/SET
		switch {
		case op < 0x40:
			c.cbOps[op] = func(cpu *CPU) { cpu.opCBRotateShift(field, reg) }
		case op < 0x80:
			c.cbOps[op] = func(cpu *CPU) { cpu.opCBBIT(field, reg) }
		case op < 0xC0:
			c.cbOps[op] = func(cpu *CPU) { cpu.opCBRES(field, reg) }
		default:
			c.cbOps[op] = func(cpu *CPU) { cpu.opCBSET(field, reg) }
		}
	}
}

// indexedOpsTemplate is the opcode→handler assignment shared by DD and FD:
// both prefixes recognize exactly the same indexed-addressing subset and
// differ only in which register indexReg() resolves to at call time (set
// by opDDPrefix/opFDPrefix before the table is consulted). initDDOps and
// initFDOps each start from their own "everything unimplemented" table and
// then apply this one template, instead of keeping two hand-duplicated
// IX/IY opcode lists in sync.
func indexedOpsTemplate(ops *[256]func(*CPU)) {
	ops[0x21] = (*CPU).opLDIdxNN
	ops[0x22] = (*CPU).opLDNNIdx
	ops[0x2A] = (*CPU).opLDIdxNNMem
	ops[0xE5] = (*CPU).opPUSHIdx
	ops[0xE1] = (*CPU).opPOPIdx
	ops[0xF9] = (*CPU).opLDSPIdx
	ops[0x36] = (*CPU).opLDIdxdN
	ops[0x34] = (*CPU).opINCIdxd
	ops[0x35] = (*CPU).opDECIdxd
	ops[0xE9] = (*CPU).opJPIdx
	ops[0xE3] = (*CPU).opEXSPIdx
	ops[0x09] = (*CPU).opADDIdxBC
	ops[0x19] = (*CPU).opADDIdxDE
	ops[0x29] = (*CPU).opADDIdxIdx
	ops[0x39] = (*CPU).opADDIdxSP
	ops[0x23] = (*CPU).opINCIdx
	ops[0x2B] = (*CPU).opDECIdx

	for opcode := byte(0x46); opcode <= 0x7E; opcode += 0x08 {
		if opcode == 0x76 {
			continue
		}
		dest := (opcode >> 3) & 0x07
		ops[opcode] = func(cpu *CPU) {
			cpu.opLDRegIdxd(dest)
		}
	}
	for opcode := byte(0x70); opcode <= 0x77; opcode++ {
		if opcode == 0x76 {
			continue
		}
		src := opcode & 0x07
		ops[opcode] = func(cpu *CPU) {
			cpu.opLDIdxdReg(src)
		}
	}
	for opcode := byte(0x86); opcode <= 0xBE; opcode += 0x08 {
		alu := aluOp((opcode >> 3) & 0x07)
		ops[opcode] = func(cpu *CPU) {
			cpu.opALUIdxd(alu)
		}
	}
}

func (c *CPU) initDDOps() {
	for i := range c.ddOps {
		c.ddOps[i] = (*CPU).opDDUnimplemented
	}
	indexedOpsTemplate(&c.ddOps)
	c.ddOps[0xCB] = (*CPU).opDDCBPrefix
}

func (c *CPU) initFDOps() {
	for i := range c.fdOps {
		c.fdOps[i] = (*CPU).opFDUnimplemented
	}
	indexedOpsTemplate(&c.fdOps)
	c.fdOps[0xCB] = (*CPU).opFDCBPrefix
}

func (c *CPU) initEDOps() {
	for i := range c.edOps {
		c.edOps[i] = (*CPU).opEDUnimplemented
	}

	// 0x40-0x7F's low 3 bits alternate IN r,(C) (bit pattern xx0) and OUT
	// (C),r (xx1); the register code is the 3 bits above that.
	for opcode := 0x40; opcode <= 0x7E; opcode += 0x08 {
		op := byte(opcode)
		reg := (op >> 3) & 0x07
		c.edOps[op] = func(cpu *CPU) { cpu.opINRegC(reg) }
		c.edOps[op+1] = func(cpu *CPU) { cpu.opOUTRegC(reg) }
	}

	c.edOps[0x44] = (*CPU).opNEG
	c.edOps[0x4C] = (*CPU).opNEG
	c.edOps[0x54] = (*CPU).opNEG
	c.edOps[0x5C] = (*CPU).opNEG
	c.edOps[0x64] = (*CPU).opNEG
	c.edOps[0x6C] = (*CPU).opNEG
	c.edOps[0x74] = (*CPU).opNEG
	c.edOps[0x7C] = (*CPU).opNEG

	c.edOps[0x47] = (*CPU).opLDIA
	c.edOps[0x4F] = (*CPU).opLDRA
	c.edOps[0x57] = (*CPU).opLDAI
	c.edOps[0x5F] = (*CPU).opLDAR

	c.edOps[0x46] = (*CPU).opIM0
	c.edOps[0x56] = (*CPU).opIM1
	c.edOps[0x5E] = (*CPU).opIM2
	c.edOps[0x66] = (*CPU).opIM0
	c.edOps[0x6E] = (*CPU).opIM0
	c.edOps[0x76] = (*CPU).opIM1
	c.edOps[0x7E] = (*CPU).opIM2

	c.edOps[0x45] = (*CPU).opRETN
	c.edOps[0x4D] = (*CPU).opRETI
	c.edOps[0x55] = (*CPU).opRETN
	c.edOps[0x5D] = (*CPU).opRETN
	c.edOps[0x65] = (*CPU).opRETN
	c.edOps[0x6D] = (*CPU).opRETN
	c.edOps[0x75] = (*CPU).opRETN
	c.edOps[0x7D] = (*CPU).opRETN

	c.edOps[0x67] = (*CPU).opRRD
	c.edOps[0x6F] = (*CPU).opRLD

	c.edOps[0xA0] = (*CPU).opLDI
	c.edOps[0xB0] = (*CPU).opLDIR
	c.edOps[0xA8] = (*CPU).opLDD
	c.edOps[0xB8] = (*CPU).opLDDR
	c.edOps[0xA1] = (*CPU).opCPI
	c.edOps[0xB1] = (*CPU).opCPIR
	c.edOps[0xA9] = (*CPU).opCPD
	c.edOps[0xB9] = (*CPU).opCPDR
	c.edOps[0xA2] = (*CPU).opINI
	c.edOps[0xB2] = (*CPU).opINIR
	c.edOps[0xAA] = (*CPU).opIND
	c.edOps[0xBA] = (*CPU).opINDR
	c.edOps[0xA3] = (*CPU).opOUTI
	c.edOps[0xB3] = (*CPU).opOTIR
	c.edOps[0xAB] = (*CPU).opOUTD
	c.edOps[0xBB] = (*CPU).opOTDR

	// 0x42-0x7B's low nibble pattern (2=SBC, 3=LD (nn),ss, A=ADC, B=LD
	// ss,(nn)) repeats every 0x10 with the ss register code in bits 4-5.
	for opcode := 0x42; opcode <= 0x7B; opcode += 0x10 {
		base := byte(opcode)
		code := (base >> 4) & 0x03
		c.edOps[base] = func(cpu *CPU) { cpu.opSBCHLss(code) }
		c.edOps[base+1] = func(cpu *CPU) { cpu.opLDNNss(code) }
		c.edOps[base+8] = func(cpu *CPU) { cpu.opADCHLss(code) }
		c.edOps[base+9] = func(cpu *CPU) { cpu.opLDssNN(code) }
	}
}

// opEDUnimplemented halts the core: ED is only ever issued deliberately by
// software, so an unassigned ED opcode signals a genuinely unrecognized
// instruction stream rather than hardware's usual indifference to it.
func (c *CPU) opEDUnimplemented() {
	c.tick(8)
	c.Halted = true
}

// opDDUnimplemented and opFDUnimplemented reproduce real Z80 behaviour for
// a DD/FD prefix not touching HL: the prefix is wasted (4 T-states) and the
// opcode byte following it falls through to the unprefixed root table.
func (c *CPU) opDDUnimplemented() {
	c.tick(4)
	c.baseOps[c.prefixOpcode](c)
}

func (c *CPU) opFDUnimplemented() {
	c.tick(4)
	c.baseOps[c.prefixOpcode](c)
}
