// Command z80mon is a terminal front end for the z80 core: it loads a raw
// binary into memory at an origin address and either runs it to HALT,
// disassembles it, or drops into an interactive raw-mode REPL.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.design/x/clipboard"
	"golang.org/x/term"

	"github.com/ngdrascal/z80emulator"
)

// flatMemory is the 64 KiB memory image the monitor loads ROMs into.
type flatMemory struct {
	mem [0x10000]byte
}

func (m *flatMemory) Read(addr uint16) byte         { return m.mem[addr] }
func (m *flatMemory) Write(addr uint16, value byte) { m.mem[addr] = value }

// silentPorts is the monitor's default port space: no devices attached,
// no pending interrupts.
type silentPorts struct{}

func (silentPorts) In(uint16) byte   { return 0xFF }
func (silentPorts) Out(uint16, byte) {}
func (silentPorts) NMI() bool        { return false }
func (silentPorts) MI() bool         { return false }
func (silentPorts) Data() byte       { return 0 }

func main() {
	rootCmd := &cobra.Command{
		Use:   "z80mon",
		Short: "Interactive monitor and runner for the Z80 core",
	}

	var origin uint16

	loadCmd := &cobra.Command{
		Use:   "load [binary]",
		Short: "Load a raw binary into memory at --origin and run it to HALT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cpu, err := loadBinary(args[0], origin)
			if err != nil {
				return err
			}
			cpu.PC = origin
			for !cpu.Halted {
				cpu.Step()
			}
			fmt.Println(cpu.DumpState())
			return nil
		},
	}
	loadCmd.Flags().Uint16Var(&origin, "origin", 0x0000, "Load address")

	var disasmCount int
	disasmCmd := &cobra.Command{
		Use:   "disasm [binary]",
		Short: "Disassemble a raw binary starting at --origin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mem, _, err := loadBinary(args[0], origin)
			if err != nil {
				return err
			}
			lines := z80.Disassemble(mem, origin, disasmCount)
			for _, l := range lines {
				branch := ""
				if l.IsBranch {
					branch = fmt.Sprintf(" -> $%04X", l.BranchTarget)
				}
				fmt.Printf("%04X  %-12s %s%s\n", l.Address, l.HexBytes, l.Mnemonic, branch)
			}
			return nil
		},
	}
	disasmCmd.Flags().Uint16Var(&origin, "origin", 0x0000, "Start address")
	disasmCmd.Flags().IntVar(&disasmCount, "count", 20, "Number of instructions")

	var clipboardOut bool
	dumpCmd := &cobra.Command{
		Use:   "dump [binary]",
		Short: "Load a binary, run to HALT, and print (or copy) register state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cpu, err := loadBinary(args[0], origin)
			if err != nil {
				return err
			}
			cpu.PC = origin
			for !cpu.Halted {
				cpu.Step()
			}
			out := cpu.DumpState()
			if clipboardOut {
				if err := copyToClipboard(out); err != nil {
					fmt.Fprintf(os.Stderr, "z80mon: clipboard unavailable: %v\n", err)
				}
			}
			fmt.Println(out)
			return nil
		},
	}
	dumpCmd.Flags().Uint16Var(&origin, "origin", 0x0000, "Load address")
	dumpCmd.Flags().BoolVar(&clipboardOut, "clipboard", false, "Also copy the dump to the system clipboard")

	replCmd := &cobra.Command{
		Use:   "repl [binary]",
		Short: "Load a binary and drop into an interactive step/run/dump REPL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mem, cpu, err := loadBinary(args[0], origin)
			if err != nil {
				return err
			}
			cpu.PC = origin
			return runREPL(mem, cpu)
		},
	}
	replCmd.Flags().Uint16Var(&origin, "origin", 0x0000, "Load address")

	rootCmd.AddCommand(loadCmd, disasmCmd, dumpCmd, replCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadBinary(path string, origin uint16) (*flatMemory, *z80.CPU, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("z80mon: %w", err)
	}
	mem := &flatMemory{}
	for i, b := range data {
		if origin+uint16(i) < 0x10000 {
			mem.mem[origin+uint16(i)] = b
		}
	}
	cpu, err := z80.New(mem, silentPorts{})
	if err != nil {
		return nil, nil, fmt.Errorf("z80mon: %w", err)
	}
	return mem, cpu, nil
}

func copyToClipboard(text string) error {
	if err := clipboard.Init(); err != nil {
		return err
	}
	<-clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

// runREPL reads single raw keystrokes from stdin (s=step, r=run, d=dump,
// a=disassemble from PC, q=quit) rather than a line editor. Raw mode is
// restored on every exit path.
func runREPL(mem *flatMemory, cpu *z80.CPU) error {
	fd := int(os.Stdin.Fd())
	var oldState *term.State
	var restoreOnce sync.Once
	restore := func() {
		restoreOnce.Do(func() {
			if oldState != nil {
				_ = term.Restore(fd, oldState)
			}
		})
	}
	defer restore()

	if term.IsTerminal(fd) {
		state, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("z80mon: failed to set raw mode: %w", err)
		}
		oldState = state
	}

	fmt.Print("z80mon REPL — s=step r=run d=dump a=disasm q=quit\r\n")
	reader := bufio.NewReader(os.Stdin)
	for {
		b, err := reader.ReadByte()
		if err != nil {
			return nil
		}
		switch b {
		case 's':
			if !cpu.Halted {
				cpu.Step()
			}
			fmt.Printf("PC=%04X\r\n", cpu.PC)
		case 'r':
			for !cpu.Halted {
				cpu.Step()
			}
			fmt.Print("halted\r\n")
		case 'd':
			fmt.Print(strings.ReplaceAll(cpu.DumpState(), "\n", "\r\n") + "\r\n")
		case 'a':
			for _, l := range z80.Disassemble(mem, cpu.PC, 10) {
				fmt.Printf("%04X  %-12s %s\r\n", l.Address, l.HexBytes, l.Mnemonic)
			}
		case 'q':
			return nil
		}
	}
}
