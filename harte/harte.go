// Package harte runs SingleStepTests-format JSON opcode vectors against the
// z80 core and reports per-test pass/fail, the same convention used for the
// x86 and m68k cores (cpu_x86_harte_test.go, cpu_m68k_harte_test.go)
// generalized to the Z80 register set.
package harte

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/ngdrascal/z80emulator"
)

// State is the register/memory snapshot format used by both the "initial"
// and "final" halves of a test case.
type State struct {
	PC  uint16  `json:"pc"`
	SP  uint16  `json:"sp"`
	A   byte    `json:"a"`
	B   byte    `json:"b"`
	C   byte    `json:"c"`
	D   byte    `json:"d"`
	E   byte    `json:"e"`
	F   byte    `json:"f"`
	H   byte    `json:"h"`
	L   byte    `json:"l"`
	I   byte    `json:"i"`
	R   byte    `json:"r"`
	IX  uint16  `json:"ix"`
	IY  uint16  `json:"iy"`
	AF2 uint16  `json:"af_"`
	BC2 uint16  `json:"bc_"`
	DE2 uint16  `json:"de_"`
	HL2 uint16  `json:"hl_"`
	IFF1 int    `json:"iff1"`
	IFF2 int    `json:"iff2"`
	IM   int    `json:"im"`
	RAM  [][2]int `json:"ram"`
}

// TestCase is one SingleStepTests entry: an opcode's initial state, the
// state after executing exactly one instruction, and (unused here) the
// per-cycle bus-activity log.
type TestCase struct {
	Name    string          `json:"name"`
	Initial State           `json:"initial"`
	Final   State           `json:"final"`
	Cycles  json.RawMessage `json:"cycles"`
}

// LoadFile reads one SingleStepTests JSON file (an array of TestCase).
func LoadFile(path string) ([]TestCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("harte: read %s: %w", path, err)
	}
	var cases []TestCase
	if err := json.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("harte: decode %s: %w", path, err)
	}
	return cases, nil
}

// flatMemory backs z80.Memory with a plain 64 KiB array.
type flatMemory struct {
	mem [0x10000]byte
}

func (m *flatMemory) Read(addr uint16) byte        { return m.mem[addr] }
func (m *flatMemory) Write(addr uint16, value byte) { m.mem[addr] = value }

// idlePorts satisfies z80.Ports with no I/O and no pending interrupts —
// SingleStepTests vectors never exercise ports or interrupt lines.
type idlePorts struct{}

func (idlePorts) In(uint16) byte         { return 0xFF }
func (idlePorts) Out(uint16, byte)       {}
func (idlePorts) NMI() bool              { return false }
func (idlePorts) MI() bool               { return false }
func (idlePorts) Data() byte             { return 0 }

// Result is the outcome of a single test case.
type Result struct {
	Name       string
	Passed     bool
	Mismatches []string
}

// Run executes one test case against a fresh core and reports mismatches.
func Run(tc TestCase) Result {
	mem := &flatMemory{}
	cpu, err := z80.New(mem, idlePorts{})
	if err != nil {
		return Result{Name: tc.Name, Passed: false, Mismatches: []string{err.Error()}}
	}
	applyState(cpu, mem, tc.Initial)

	cpu.Step()

	return verify(cpu, mem, tc)
}

func applyState(cpu *z80.CPU, mem *flatMemory, s State) {
	cpu.PC, cpu.SP = s.PC, s.SP
	cpu.A, cpu.F = s.A, s.F
	cpu.B, cpu.C = s.B, s.C
	cpu.D, cpu.E = s.D, s.E
	cpu.H, cpu.L = s.H, s.L
	cpu.I, cpu.R = s.I, s.R
	cpu.IX, cpu.IY = s.IX, s.IY
	cpu.SetAF2(s.AF2)
	cpu.SetBC2(s.BC2)
	cpu.SetDE2(s.DE2)
	cpu.SetHL2(s.HL2)
	cpu.IFF1 = s.IFF1 != 0
	cpu.IFF2 = s.IFF2 != 0
	cpu.IM = byte(s.IM)
	for _, entry := range s.RAM {
		mem.mem[uint16(entry[0])] = byte(entry[1])
	}
}

func verify(cpu *z80.CPU, mem *flatMemory, tc TestCase) Result {
	res := Result{Name: tc.Name, Passed: true}
	mismatch := func(format string, args ...any) {
		res.Passed = false
		res.Mismatches = append(res.Mismatches, fmt.Sprintf(format, args...))
	}

	want := tc.Final
	if cpu.PC != want.PC {
		mismatch("PC: got 0x%04X, want 0x%04X", cpu.PC, want.PC)
	}
	if cpu.SP != want.SP {
		mismatch("SP: got 0x%04X, want 0x%04X", cpu.SP, want.SP)
	}
	if cpu.A != want.A {
		mismatch("A: got 0x%02X, want 0x%02X", cpu.A, want.A)
	}
	if cpu.F != want.F {
		mismatch("F: got 0x%02X, want 0x%02X", cpu.F, want.F)
	}
	if cpu.BC() != uint16(want.B)<<8|uint16(want.C) {
		mismatch("BC: got 0x%04X, want 0x%02X%02X", cpu.BC(), want.B, want.C)
	}
	if cpu.DE() != uint16(want.D)<<8|uint16(want.E) {
		mismatch("DE: got 0x%04X, want 0x%02X%02X", cpu.DE(), want.D, want.E)
	}
	if cpu.HL() != uint16(want.H)<<8|uint16(want.L) {
		mismatch("HL: got 0x%04X, want 0x%02X%02X", cpu.HL(), want.H, want.L)
	}
	if cpu.IX != want.IX {
		mismatch("IX: got 0x%04X, want 0x%04X", cpu.IX, want.IX)
	}
	if cpu.IY != want.IY {
		mismatch("IY: got 0x%04X, want 0x%04X", cpu.IY, want.IY)
	}
	if cpu.I != want.I {
		mismatch("I: got 0x%02X, want 0x%02X", cpu.I, want.I)
	}

	for _, entry := range want.RAM {
		addr := uint16(entry[0])
		expected := byte(entry[1])
		if got := mem.mem[addr]; got != expected {
			mismatch("RAM[0x%04X]: got 0x%02X, want 0x%02X", addr, got, expected)
		}
	}

	return res
}

// FileSummary aggregates Run across every case in one JSON file.
type FileSummary struct {
	File   string
	Passed int
	Failed int
	Fails  []string
}

// RunFile runs every test case in a single JSON file sequentially.
func RunFile(path string) (FileSummary, error) {
	cases, err := LoadFile(path)
	if err != nil {
		return FileSummary{}, err
	}
	summary := FileSummary{File: path}
	for _, tc := range cases {
		r := Run(tc)
		if r.Passed {
			summary.Passed++
		} else {
			summary.Failed++
			if len(summary.Fails) < 10 {
				summary.Fails = append(summary.Fails, r.Name)
			}
		}
	}
	return summary, nil
}

// RunDir runs every *.json file under dir concurrently, one goroutine per
// file, bounded by errgroup's SetLimit. The core carries no shared mutable
// state between instances, so concurrent RunFile calls are safe.
func RunDir(ctx context.Context, dir string, workers int) ([]FileSummary, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("harte: glob %s: %w", dir, err)
	}

	summaries := make([]FileSummary, len(files))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			s, err := RunFile(file)
			if err != nil {
				return err
			}
			summaries[i] = s
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}
