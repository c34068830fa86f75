package z80

import "testing"

func TestLDIAndLDIR(t *testing.T) {
	rig := newTestRig(t)
	rig.load(0x0000, []byte{
		0xED, 0xA0, // LDI
		0xED, 0xB0, // LDIR
	})
	rig.cpu.A = 0x10
	rig.cpu.SetHL(0x4000)
	rig.cpu.SetDE(0x5000)
	rig.cpu.SetBC(0x0001)
	rig.mem.mem[0x4000] = 0x22
	rig.cpu.F = flagC

	rig.cpu.Step()
	if rig.mem.mem[0x5000] != 0x22 {
		t.Fatalf("mem[0x5000] = %02X, want 22", rig.mem.mem[0x5000])
	}
	requireEqualU16(t, "HL", rig.cpu.HL(), 0x4001)
	requireEqualU16(t, "DE", rig.cpu.DE(), 0x5001)
	requireEqualU16(t, "BC", rig.cpu.BC(), 0x0000)
	requireEqualU8(t, "F", rig.cpu.F, 0x21)
	if rig.cpu.Cycles != 16 {
		t.Fatalf("Cycles = %d, want 16", rig.cpu.Cycles)
	}

	rig.load(0x0000, []byte{
		0xED, 0xB0, // LDIR
	})
	rig.cpu.A = 0x00
	rig.cpu.SetHL(0x4100)
	rig.cpu.SetDE(0x5100)
	rig.cpu.SetBC(0x0002)
	rig.mem.mem[0x4100] = 0x11
	rig.mem.mem[0x4101] = 0x22

	rig.cpu.Step()
	requireEqualU16(t, "BC", rig.cpu.BC(), 0x0001)
	requireEqualU16(t, "HL", rig.cpu.HL(), 0x4101)
	requireEqualU16(t, "DE", rig.cpu.DE(), 0x5101)
	requireEqualU16(t, "PC", rig.cpu.PC, 0x0000)
	if rig.cpu.Cycles != 21 {
		t.Fatalf("Cycles = %d, want 21", rig.cpu.Cycles)
	}

	rig.cpu.Step()
	requireEqualU16(t, "BC", rig.cpu.BC(), 0x0000)
	requireEqualU16(t, "HL", rig.cpu.HL(), 0x4102)
	requireEqualU16(t, "DE", rig.cpu.DE(), 0x5102)
	requireEqualU16(t, "PC", rig.cpu.PC, 0x0002)
	if rig.cpu.Cycles != 37 {
		t.Fatalf("Cycles = %d, want 37", rig.cpu.Cycles)
	}
	if rig.mem.mem[0x5100] != 0x11 || rig.mem.mem[0x5101] != 0x22 {
		t.Fatalf("mem copy failed")
	}
}

func TestLDDAndLDDR(t *testing.T) {
	rig := newTestRig(t)
	rig.load(0x0000, []byte{
		0xED, 0xA8, // LDD
		0xED, 0xB8, // LDDR
	})
	rig.cpu.A = 0x00
	rig.cpu.SetHL(0x4201)
	rig.cpu.SetDE(0x5201)
	rig.cpu.SetBC(0x0001)
	rig.mem.mem[0x4201] = 0x33

	rig.cpu.Step()
	if rig.mem.mem[0x5201] != 0x33 {
		t.Fatalf("mem[0x5201] = %02X, want 33", rig.mem.mem[0x5201])
	}
	requireEqualU16(t, "HL", rig.cpu.HL(), 0x4200)
	requireEqualU16(t, "DE", rig.cpu.DE(), 0x5200)
	requireEqualU16(t, "BC", rig.cpu.BC(), 0x0000)
	if rig.cpu.Cycles != 16 {
		t.Fatalf("Cycles = %d, want 16", rig.cpu.Cycles)
	}

	rig.load(0x0000, []byte{
		0xED, 0xB8, // LDDR
	})
	rig.cpu.SetHL(0x4301)
	rig.cpu.SetDE(0x5301)
	rig.cpu.SetBC(0x0002)
	rig.mem.mem[0x4301] = 0x44
	rig.mem.mem[0x4300] = 0x55

	rig.cpu.Step()
	requireEqualU16(t, "BC", rig.cpu.BC(), 0x0001)
	requireEqualU16(t, "HL", rig.cpu.HL(), 0x4300)
	requireEqualU16(t, "DE", rig.cpu.DE(), 0x5300)
	requireEqualU16(t, "PC", rig.cpu.PC, 0x0000)
	if rig.cpu.Cycles != 21 {
		t.Fatalf("Cycles = %d, want 21", rig.cpu.Cycles)
	}

	rig.cpu.Step()
	requireEqualU16(t, "BC", rig.cpu.BC(), 0x0000)
	requireEqualU16(t, "HL", rig.cpu.HL(), 0x42FF)
	requireEqualU16(t, "DE", rig.cpu.DE(), 0x52FF)
	requireEqualU16(t, "PC", rig.cpu.PC, 0x0002)
	if rig.cpu.Cycles != 37 {
		t.Fatalf("Cycles = %d, want 37", rig.cpu.Cycles)
	}
	if rig.mem.mem[0x5301] != 0x44 || rig.mem.mem[0x5300] != 0x55 {
		t.Fatalf("mem copy failed")
	}
}

func TestCPIAndCPIR(t *testing.T) {
	rig := newTestRig(t)
	rig.load(0x0000, []byte{
		0xED, 0xA1, // CPI
		0xED, 0xB1, // CPIR
	})
	rig.cpu.A = 0x20
	rig.cpu.SetHL(0x4400)
	rig.cpu.SetBC(0x0001)
	rig.mem.mem[0x4400] = 0x10

	rig.cpu.Step()
	requireEqualU16(t, "BC", rig.cpu.BC(), 0x0000)
	requireEqualU16(t, "HL", rig.cpu.HL(), 0x4401)
	if rig.cpu.Cycles != 16 {
		t.Fatalf("Cycles = %d, want 16", rig.cpu.Cycles)
	}

	rig.load(0x0000, []byte{
		0xED, 0xB1, // CPIR
	})
	rig.cpu.A = 0x20
	rig.cpu.SetHL(0x4500)
	rig.cpu.SetBC(0x0002)
	rig.mem.mem[0x4500] = 0x10
	rig.mem.mem[0x4501] = 0x20

	rig.cpu.Step()
	requireEqualU16(t, "BC", rig.cpu.BC(), 0x0001)
	requireEqualU16(t, "HL", rig.cpu.HL(), 0x4501)
	requireEqualU16(t, "PC", rig.cpu.PC, 0x0000)
	if rig.cpu.Cycles != 21 {
		t.Fatalf("Cycles = %d, want 21", rig.cpu.Cycles)
	}

	rig.cpu.Step()
	requireEqualU16(t, "BC", rig.cpu.BC(), 0x0000)
	requireEqualU16(t, "HL", rig.cpu.HL(), 0x4502)
	requireEqualU16(t, "PC", rig.cpu.PC, 0x0002)
	if rig.cpu.Cycles != 37 {
		t.Fatalf("Cycles = %d, want 37", rig.cpu.Cycles)
	}
	if !rig.cpu.Flag(flagZ) {
		t.Fatalf("Z should be set after match")
	}
}
