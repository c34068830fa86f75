package z80

import (
	"fmt"
	"log"
)

// Logger is the diagnostic sink contract. Calls to it may be
// elided entirely in release builds; the zero value of Core uses nopLogger
// so attaching one is opt-in.
type Logger interface {
	LogMemRead(addr uint16, value byte)
	Log(text string)
	RegName8(idx byte) string
	RegName16(idx byte) string
}

var reg8Names = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}
var reg16Names = [4]string{"BC", "DE", "HL", "SP"}

type nopLogger struct{}

func (nopLogger) LogMemRead(addr uint16, value byte) {}
func (nopLogger) Log(text string)                    {}
func (nopLogger) RegName8(idx byte) string {
	if int(idx) < len(reg8Names) {
		return reg8Names[idx]
	}
	return "?"
}
func (nopLogger) RegName16(idx byte) string {
	if int(idx) < len(reg16Names) {
		return reg16Names[idx]
	}
	return "?"
}

// TextLogger writes diagnostics through a stdlib *log.Logger, using plain
// fmt/strings formatting rather than a structured-logging library.
type TextLogger struct {
	L *log.Logger
}

func (t TextLogger) LogMemRead(addr uint16, value byte) {
	t.L.Printf("mem[%04X] -> %02X", addr, value)
}

func (t TextLogger) Log(text string) {
	t.L.Print(text)
}

func (t TextLogger) RegName8(idx byte) string {
	if int(idx) < len(reg8Names) {
		return reg8Names[idx]
	}
	return fmt.Sprintf("r%d", idx)
}

func (t TextLogger) RegName16(idx byte) string {
	if int(idx) < len(reg16Names) {
		return reg16Names[idx]
	}
	return fmt.Sprintf("rr%d", idx)
}
