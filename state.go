package z80

import "fmt"

// GetState snapshots the 26 register bytes (A,F,B,C,D,E,H,L, shadow set,
// IX, IY, SP, PC, I, R, IM) followed by IFF1 and IFF2 as 0/1 bytes — 28
// bytes total. The layout matches the register order used by
// the debug adapter's register listing.
func (c *CPU) GetState() [28]byte {
	var s [28]byte
	s[0] = c.A
	s[1] = c.F
	s[2] = c.B
	s[3] = c.C
	s[4] = c.D
	s[5] = c.E
	s[6] = c.H
	s[7] = c.L
	s[8] = c.A2
	s[9] = c.F2
	s[10] = c.B2
	s[11] = c.C2
	s[12] = c.D2
	s[13] = c.E2
	s[14] = c.H2
	s[15] = c.L2
	s[16] = byte(c.IX >> 8)
	s[17] = byte(c.IX)
	s[18] = byte(c.IY >> 8)
	s[19] = byte(c.IY)
	s[20] = byte(c.SP >> 8)
	s[21] = byte(c.SP)
	s[22] = byte(c.PC >> 8)
	s[23] = byte(c.PC)
	s[24] = c.I
	s[25] = c.R
	s[26] = boolByte(c.IFF1)
	s[27] = boolByte(c.IFF2)
	return s
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// DumpState renders a human-readable multi-line register and flag table.
// Formatting is not meant to round-trip; it exists for terminal/log
// inspection.
func (c *CPU) DumpState() string {
	return fmt.Sprintf(
		"AF=%04X BC=%04X DE=%04X HL=%04X\n"+
			"AF'=%04X BC'=%04X DE'=%04X HL'=%04X\n"+
			"IX=%04X IY=%04X SP=%04X PC=%04X\n"+
			"I=%02X R=%02X IM=%d IFF1=%t IFF2=%t HALT=%t\n"+
			"flags: %s\n"+
			"cycles=%d",
		c.AF(), c.BC(), c.DE(), c.HL(),
		c.AF2(), c.BC2(), c.DE2(), c.HL2(),
		c.IX, c.IY, c.SP, c.PC,
		c.I, c.R, c.IM, c.IFF1, c.IFF2, c.Halted,
		c.flagString(),
		c.Cycles,
	)
}

func (c *CPU) flagString() string {
	bits := []struct {
		mask byte
		name string
	}{
		{flagS, "S"}, {flagZ, "Z"}, {flagY, "Y"}, {flagH, "H"},
		{flagX, "X"}, {flagPV, "P"}, {flagN, "N"}, {flagC, "C"},
	}
	out := make([]byte, 0, len(bits))
	for _, b := range bits {
		if c.Flag(b.mask) {
			out = append(out, b.name[0])
		} else {
			out = append(out, '-')
		}
	}
	return string(out)
}
