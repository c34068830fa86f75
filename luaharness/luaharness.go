// Package luaharness drives the z80 core from Lua scripts: a script pokes
// memory and ports, steps the core, and asserts on register state. This
// gives ad hoc reproduction scenarios a scriptable front end instead of a
// recompiled Go test per scenario.
package luaharness

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/ngdrascal/z80emulator"
)

// memory is a plain 64 KiB array exposed to Lua via mem_read/mem_write.
type memory struct {
	mem [0x10000]byte
}

func (m *memory) Read(addr uint16) byte        { return m.mem[addr] }
func (m *memory) Write(addr uint16, value byte) { m.mem[addr] = value }

// ports is a plain 64 KiB I/O space plus the two interrupt lines, all
// settable from Lua via port_out/set_nmi/set_mi/set_data.
type ports struct {
	io   [0x10000]byte
	nmi  bool
	mi   bool
	data byte
}

func (p *ports) In(port uint16) byte  { return p.io[port] }
func (p *ports) Out(port uint16, v byte) { p.io[port] = v }
func (p *ports) NMI() bool            { return p.nmi }
func (p *ports) MI() bool             { return p.mi }
func (p *ports) Data() byte           { return p.data }

// Harness bundles a core instance with the Lua state driving it.
type Harness struct {
	L     *lua.LState
	mem   *memory
	ports *ports
	cpu   *z80.CPU
}

// New constructs a Harness with a fresh core and registers the Lua API.
func New() (*Harness, error) {
	mem := &memory{}
	ports := &ports{}
	cpu, err := z80.New(mem, ports)
	if err != nil {
		return nil, fmt.Errorf("luaharness: %w", err)
	}

	h := &Harness{L: lua.NewState(), mem: mem, ports: ports, cpu: cpu}
	h.registerAPI()
	return h, nil
}

// Close releases the Lua state.
func (h *Harness) Close() {
	h.L.Close()
}

// RunScript executes a Lua script against this harness's core and ports.
func (h *Harness) RunScript(script string) error {
	if err := h.L.DoString(script); err != nil {
		return fmt.Errorf("luaharness: script error: %w", err)
	}
	return nil
}

func (h *Harness) registerAPI() {
	L := h.L

	L.SetGlobal("mem_write", L.NewFunction(func(L *lua.LState) int {
		addr := uint16(L.CheckInt(1))
		value := byte(L.CheckInt(2))
		h.mem.Write(addr, value)
		return 0
	}))

	L.SetGlobal("mem_read", L.NewFunction(func(L *lua.LState) int {
		addr := uint16(L.CheckInt(1))
		L.Push(lua.LNumber(h.mem.Read(addr)))
		return 1
	}))

	L.SetGlobal("load_bytes", L.NewFunction(func(L *lua.LState) int {
		addr := uint16(L.CheckInt(1))
		tbl := L.CheckTable(2)
		i := 0
		tbl.ForEach(func(_, v lua.LValue) {
			h.mem.Write(addr+uint16(i), byte(lua.LVAsNumber(v)))
			i++
		})
		return 0
	}))

	L.SetGlobal("port_out", L.NewFunction(func(L *lua.LState) int {
		port := uint16(L.CheckInt(1))
		value := byte(L.CheckInt(2))
		h.ports.Out(port, value)
		return 0
	}))

	L.SetGlobal("port_in", L.NewFunction(func(L *lua.LState) int {
		port := uint16(L.CheckInt(1))
		L.Push(lua.LNumber(h.ports.In(port)))
		return 1
	}))

	L.SetGlobal("set_nmi", L.NewFunction(func(L *lua.LState) int {
		h.ports.nmi = lua.LVAsBool(L.CheckAny(1))
		return 0
	}))

	L.SetGlobal("set_mi", L.NewFunction(func(L *lua.LState) int {
		h.ports.mi = lua.LVAsBool(L.CheckAny(1))
		return 0
	}))

	L.SetGlobal("set_data", L.NewFunction(func(L *lua.LState) int {
		h.ports.data = byte(L.CheckInt(1))
		return 0
	}))

	L.SetGlobal("reset", L.NewFunction(func(L *lua.LState) int {
		h.cpu.Reset()
		return 0
	}))

	L.SetGlobal("step", L.NewFunction(func(L *lua.LState) int {
		n := 1
		if L.GetTop() >= 1 {
			n = L.CheckInt(1)
		}
		for i := 0; i < n; i++ {
			h.cpu.Step()
		}
		return 0
	}))

	L.SetGlobal("set_pc", L.NewFunction(func(L *lua.LState) int {
		h.cpu.PC = uint16(L.CheckInt(1))
		return 0
	}))

	L.SetGlobal("regs", L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("a", lua.LNumber(h.cpu.A))
		tbl.RawSetString("f", lua.LNumber(h.cpu.F))
		tbl.RawSetString("bc", lua.LNumber(h.cpu.BC()))
		tbl.RawSetString("de", lua.LNumber(h.cpu.DE()))
		tbl.RawSetString("hl", lua.LNumber(h.cpu.HL()))
		tbl.RawSetString("ix", lua.LNumber(h.cpu.IX))
		tbl.RawSetString("iy", lua.LNumber(h.cpu.IY))
		tbl.RawSetString("sp", lua.LNumber(h.cpu.SP))
		tbl.RawSetString("pc", lua.LNumber(h.cpu.PC))
		tbl.RawSetString("halted", lua.LBool(h.cpu.Halted))
		L.Push(tbl)
		return 1
	}))

	L.SetGlobal("dump_state", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(h.cpu.DumpState()))
		return 1
	}))
}

// CPU exposes the underlying core for Go-side assertions after a script runs.
func (h *Harness) CPU() *z80.CPU { return h.cpu }
