// Package z80 implements a cycle-approximate interpreter for the Zilog
// Z80 8-bit microprocessor: the root, CB, DD, ED, FD and DDCB/FDCB opcode
// tables, the ALU and flag engine, the HALT/interrupt state machine, and
// the three interrupt-acknowledge modes plus NMI.
//
// The core consumes a 64 KiB memory image and a 16-bit port space through
// the Memory and Ports collaborators (bus.go); it performs no I/O of its
// own. Callers drive execution one instruction at a time via Step.
package z80

const (
	flagS  = 0x80
	flagZ  = 0x40
	flagY  = 0x20
	flagH  = 0x10
	flagX  = 0x08
	flagPV = 0x04
	flagN  = 0x02
	flagC  = 0x01
)

const (
	prefixNone byte = iota
	prefixDD
	prefixFD
)

// CPU is the Z80 register file, decoder and execution engine.
type CPU struct {
	// Main register set
	A, F byte
	B, C byte
	D, E byte
	H, L byte

	// Alternate (shadow) register set, exchanged via EXX / EX AF,AF'
	A2, F2 byte
	B2, C2 byte
	D2, E2 byte
	H2, L2 byte

	IX uint16
	IY uint16
	SP uint16
	PC uint16

	I  byte // interrupt vector register
	R  byte // memory refresh register
	IM byte // interrupt mode: 0, 1 or 2
	WZ uint16

	IFF1 bool
	IFF2 bool

	Halted bool
	Cycles uint64 // total T-states credited since reset

	iffDelay int // EI takes effect after the instruction following it

	mem   Memory
	ports Ports
	log   Logger
	pace  *pacer

	baseOps [256]func(*CPU)
	cbOps   [256]func(*CPU)
	ddOps   [256]func(*CPU)
	fdOps   [256]func(*CPU)
	edOps   [256]func(*CPU)

	prefixMode   byte
	prefixOpcode byte
}

// Option configures optional Core collaborators at construction time.
type Option func(*CPU)

// WithLogger attaches a diagnostic sink. Without this option the core uses
// a zero-cost no-op logger.
func WithLogger(l Logger) Option {
	return func(c *CPU) { c.log = l }
}

// WithClock attaches a pacing clock and enables real-time pacing (§4.5).
// Without this option the core never sleeps: wait() still credits the R
// register and Cycles counter but performs no wall-clock throttling, which
// is what deterministic tests want.
func WithClock(clock Clock) Option {
	return func(c *CPU) {
		c.pace = newPacer(clock)
		c.pace.enabled = true
	}
}

// New constructs a Core bound to the given memory and port collaborators
// and performs an implicit Reset. Both collaborators are required.
func New(mem Memory, ports Ports, opts ...Option) (*CPU, error) {
	if mem == nil {
		return nil, ErrNoMemory
	}
	if ports == nil {
		return nil, ErrNoPorts
	}
	c := &CPU{
		mem:   mem,
		ports: ports,
		log:   nopLogger{},
		pace:  newPacer(nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.initBaseOps()
	c.initCBOps()
	c.initDDOps()
	c.initFDOps()
	c.initEDOps()
	c.Reset()
	return c, nil
}

// Reset reinitializes the register file and flip-flops:
// A=F=0xFF, SP=0xFFFF, PC=0x0000, IFF1=IFF2=false, interrupt_mode=0,
// halted=false; every other register is zeroed.
func (c *CPU) Reset() {
	c.A, c.F = 0xFF, 0xFF
	c.B, c.C, c.D, c.E, c.H, c.L = 0, 0, 0, 0, 0, 0
	c.A2, c.F2 = 0, 0
	c.B2, c.C2, c.D2, c.E2, c.H2, c.L2 = 0, 0, 0, 0, 0, 0
	c.IX, c.IY = 0, 0
	c.SP = 0xFFFF
	c.PC = 0
	c.I, c.R = 0, 0
	c.IM = 0
	c.WZ = 0
	c.prefixMode = prefixNone
	c.IFF1, c.IFF2 = false, false
	c.iffDelay = 0
	c.Halted = false
	c.Cycles = 0
}

// Composite 16-bit register views. The first byte occupies the high half.
func (c *CPU) AF() uint16  { return uint16(c.A)<<8 | uint16(c.F) }
func (c *CPU) BC() uint16  { return uint16(c.B)<<8 | uint16(c.C) }
func (c *CPU) DE() uint16  { return uint16(c.D)<<8 | uint16(c.E) }
func (c *CPU) HL() uint16  { return uint16(c.H)<<8 | uint16(c.L) }
func (c *CPU) AF2() uint16 { return uint16(c.A2)<<8 | uint16(c.F2) }
func (c *CPU) BC2() uint16 { return uint16(c.B2)<<8 | uint16(c.C2) }
func (c *CPU) DE2() uint16 { return uint16(c.D2)<<8 | uint16(c.E2) }
func (c *CPU) HL2() uint16 { return uint16(c.H2)<<8 | uint16(c.L2) }

func (c *CPU) SetAF(v uint16)  { c.A, c.F = byte(v>>8), byte(v) }
func (c *CPU) SetBC(v uint16)  { c.B, c.C = byte(v>>8), byte(v) }
func (c *CPU) SetDE(v uint16)  { c.D, c.E = byte(v>>8), byte(v) }
func (c *CPU) SetHL(v uint16)  { c.H, c.L = byte(v>>8), byte(v) }
func (c *CPU) SetAF2(v uint16) { c.A2, c.F2 = byte(v>>8), byte(v) }
func (c *CPU) SetBC2(v uint16) { c.B2, c.C2 = byte(v>>8), byte(v) }
func (c *CPU) SetDE2(v uint16) { c.D2, c.E2 = byte(v>>8), byte(v) }
func (c *CPU) SetHL2(v uint16) { c.H2, c.L2 = byte(v>>8), byte(v) }

// Flag reports whether every bit in mask is set in F.
func (c *CPU) Flag(mask byte) bool { return c.F&mask != 0 }

// SetFlag sets or clears every bit in mask within F.
func (c *CPU) SetFlag(mask byte, on bool) {
	if on {
		c.F |= mask
	} else {
		c.F &^= mask
	}
}

// Halted reports whether the core is latched in the HALT state.
func (c *CPU) IsHalted() bool { return c.Halted }

// ExAF exchanges AF with the shadow AF'.
func (c *CPU) ExAF() {
	c.A, c.A2 = c.A2, c.A
	c.F, c.F2 = c.F2, c.F
}

// Exx exchanges BC, DE, HL with their shadow counterparts.
func (c *CPU) Exx() {
	c.B, c.B2 = c.B2, c.B
	c.C, c.C2 = c.C2, c.C
	c.D, c.D2 = c.D2, c.D
	c.E, c.E2 = c.E2, c.E
	c.H, c.H2 = c.H2, c.H
	c.L, c.L2 = c.L2, c.L
}
