package z80

// The DD and FD prefixes are identical in every respect but which index
// register they address, so every op here is written once against
// c.indexReg() and reused for both IX (tables.go's ddOps) and IY (fdOps) —
// opDDPrefix/opFDPrefix set prefixMode before dispatching into either
// table, so indexReg() always resolves to the right register.

func (c *CPU) opLDIdxNN() {
	*c.indexReg() = c.fetchWord()
	c.tick(14)
}

func (c *CPU) opLDNNIdx() {
	addr := c.fetchWord()
	idx := *c.indexReg()
	c.write(addr, byte(idx))
	c.write(addr+1, byte(idx>>8))
	c.WZ = addr + 1
	c.tick(20)
}

func (c *CPU) opLDIdxNNMem() {
	addr := c.fetchWord()
	low := c.read(addr)
	high := c.read(addr + 1)
	*c.indexReg() = uint16(high)<<8 | uint16(low)
	c.WZ = addr + 1
	c.tick(20)
}

func (c *CPU) opPUSHIdx() {
	c.pushWord(*c.indexReg())
	c.tick(15)
}

func (c *CPU) opPOPIdx() {
	*c.indexReg() = c.popWord()
	c.tick(14)
}

func (c *CPU) opLDSPIdx() {
	c.SP = *c.indexReg()
	c.tick(10)
}

func (c *CPU) indexedAddr() uint16 {
	disp := int8(c.fetchByte())
	return uint16(int32(*c.indexReg()) + int32(disp))
}

func (c *CPU) opLDIdxdN() {
	addr := c.indexedAddr()
	c.write(addr, c.fetchByte())
	c.tick(19)
}

func (c *CPU) opINCIdxd() {
	addr := c.indexedAddr()
	c.write(addr, c.inc8(c.read(addr)))
	c.tick(23)
}

func (c *CPU) opDECIdxd() {
	addr := c.indexedAddr()
	c.write(addr, c.dec8(c.read(addr)))
	c.tick(23)
}

func (c *CPU) opJPIdx() {
	c.PC = *c.indexReg()
	c.WZ = c.PC
	c.tick(8)
}

func (c *CPU) opEXSPIdx() {
	idx := c.indexReg()
	low := c.read(c.SP)
	high := c.read(c.SP + 1)
	memVal := uint16(high)<<8 | uint16(low)
	c.write(c.SP, byte(*idx))
	c.write(c.SP+1, byte(*idx>>8))
	*idx = memVal
	c.WZ = memVal
	c.tick(23)
}

func (c *CPU) opADDIdxBC() {
	c.addIdx(c.BC())
	c.tick(15)
}

func (c *CPU) opADDIdxDE() {
	c.addIdx(c.DE())
	c.tick(15)
}

func (c *CPU) opADDIdxIdx() {
	c.addIdx(*c.indexReg())
	c.tick(15)
}

func (c *CPU) opADDIdxSP() {
	c.addIdx(c.SP)
	c.tick(15)
}

func (c *CPU) opINCIdx() {
	*c.indexReg()++
	c.tick(10)
}

func (c *CPU) opDECIdx() {
	*c.indexReg()--
	c.tick(10)
}

func (c *CPU) opLDRegIdxd(dest byte) {
	addr := c.indexedAddr()
	c.writeReg8Plain(dest, c.read(addr))
	c.tick(19)
}

func (c *CPU) opLDIdxdReg(src byte) {
	addr := c.indexedAddr()
	c.write(addr, c.readReg8Plain(src))
	c.tick(19)
}

func (c *CPU) opALUIdxd(op aluOp) {
	addr := c.indexedAddr()
	c.performALU(op, c.read(addr))
	c.tick(19)
}
