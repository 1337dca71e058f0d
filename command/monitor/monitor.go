package monitor

/*
 * GBA - Interactive monitor console.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	control "github.com/rcornwell/GBA/emu/control"
	core "github.com/rcornwell/GBA/emu/core"
	cpu "github.com/rcornwell/GBA/emu/cpu"
	disassemble "github.com/rcornwell/GBA/emu/disassemble"
	memory "github.com/rcornwell/GBA/emu/memory"
)

var commands = []string{
	"step", "go", "regs", "mem", "dis", "pc", "irq", "key", "reset", "help", "quit",
}

// Console runs the monitor until quit or an aborted prompt. Commands step
// the machine, inspect registers and memory, disassemble, and assert
// interrupt lines.
func Console() {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(prefix string) []string {
		var match []string
		for _, cmd := range commands {
			if strings.HasPrefix(cmd, strings.ToLower(prefix)) {
				match = append(match, cmd)
			}
		}
		return match
	})

	for {
		input, err := line.Prompt("GBA> ")
		if err != nil {
			if !errors.Is(err, liner.ErrPromptAborted) {
				fmt.Println("Error: " + err.Error())
			}
			return
		}
		line.AppendHistory(input)
		if process(input) {
			return
		}
	}
}

// Process one command line. Returns true on quit.
func process(input string) bool {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return false
	}

	switch strings.ToLower(fields[0]) {
	case "quit", "q":
		return true
	case "step", "s":
		stepCommand(fields[1:], true)
	case "go", "g":
		stepCommand(fields[1:], false)
	case "regs", "r":
		showRegisters()
	case "mem", "m":
		memCommand(fields[1:])
	case "dis", "d":
		disCommand(fields[1:])
	case "irq":
		irqCommand(fields[1:])
	case "key":
		keyCommand(fields[1:])
	case "pc":
		pcCommand(fields[1:])
	case "reset":
		cpu.InitializeCPU()
		control.Initialize()
		showRegisters()
	case "help", "?":
		fmt.Println("step [n] | go [n] | regs | mem ADDR [LEN] | dis [ADDR] [N] |" +
			" pc ADDR | irq N | key MASK | reset | quit")
	default:
		fmt.Println("Unknown command: " + fields[0])
	}
	return false
}

func number(field string) (uint32, error) {
	value, err := strconv.ParseUint(strings.TrimPrefix(field, "0x"), 16, 32)
	return uint32(value), err
}

// Step the machine. With trace each instruction prints as it executes.
func stepCommand(args []string, trace bool) {
	count := uint32(1)
	if !trace {
		count = 0x10000
	}
	if len(args) > 0 {
		n, err := number(args[0])
		if err != nil {
			fmt.Println("Bad count: " + args[0])
			return
		}
		count = n
	}
	for i := uint32(0); i < count; i++ {
		if trace {
			showCurrent()
		}
		core.Cycle()
	}
	if !trace {
		showCurrent()
	}
}

// Print the instruction due to execute.
func showCurrent() {
	addr := cpu.PC()
	if cpu.CurrentPSR().State == cpu.StateThumb {
		inst := memory.ReadHword(addr)
		fmt.Printf("%08x: %04x      %s\n", addr, inst, disassemble.Thumb(addr, inst))
		return
	}
	inst := memory.ReadWord(addr)
	fmt.Printf("%08x: %08x  %s\n", addr, inst, disassemble.ARM(addr, inst))
}

func showRegisters() {
	for i := 0; i < 16; i += 4 {
		for j := i; j < i+4; j++ {
			fmt.Printf("R%-2d %08x  ", j, cpu.Register(j))
		}
		fmt.Println()
	}
	psr := cpu.CurrentPSR()
	flag := func(name string, set bool) string {
		if set {
			return name
		}
		return strings.ToLower(name)
	}
	fmt.Printf("Mode %s  State %s  %s%s%s%s %s%s\n", psr.Mode, psr.State,
		flag("N", psr.Negative), flag("Z", psr.Zero), flag("C", psr.Carry),
		flag("V", psr.Overflow), flag("I", psr.IRQDisable), flag("F", psr.FIQDisable))
}

// Hex dump of a memory range.
func memCommand(args []string) {
	if len(args) == 0 {
		fmt.Println("mem ADDR [LEN]")
		return
	}
	addr, err := number(args[0])
	if err != nil {
		fmt.Println("Bad address: " + args[0])
		return
	}
	length := uint32(0x40)
	if len(args) > 1 {
		if length, err = number(args[1]); err != nil {
			fmt.Println("Bad length: " + args[1])
			return
		}
	}
	for row := addr &^ 0xf; row < addr+length; row += 16 {
		fmt.Printf("%08x:", row)
		for i := uint32(0); i < 16; i++ {
			fmt.Printf(" %02x", memory.ReadByte(row+i))
		}
		fmt.Println()
	}
}

// Disassemble from an address, defaulting to the current instruction.
func disCommand(args []string) {
	addr := cpu.PC()
	count := uint32(8)
	var err error
	if len(args) > 0 {
		if addr, err = number(args[0]); err != nil {
			fmt.Println("Bad address: " + args[0])
			return
		}
	}
	if len(args) > 1 {
		if count, err = number(args[1]); err != nil {
			fmt.Println("Bad count: " + args[1])
			return
		}
	}
	thumb := cpu.CurrentPSR().State == cpu.StateThumb
	for i := uint32(0); i < count; i++ {
		if thumb {
			inst := memory.ReadHword(addr)
			fmt.Printf("%08x: %04x      %s\n", addr, inst, disassemble.Thumb(addr, inst))
			addr += 2
		} else {
			inst := memory.ReadWord(addr)
			fmt.Printf("%08x: %08x  %s\n", addr, inst, disassemble.ARM(addr, inst))
			addr += 4
		}
	}
}

// Redirect execution: the pipeline refetches at the new address.
func pcCommand(args []string) {
	if len(args) == 0 {
		fmt.Println("pc ADDR")
		return
	}
	addr, err := number(args[0])
	if err != nil {
		fmt.Println("Bad address: " + args[0])
		return
	}
	cpu.SetRegister(15, addr)
	cpu.FlushPipeline()
	showCurrent()
}

// Assert an interrupt line.
func irqCommand(args []string) {
	if len(args) == 0 {
		fmt.Println("irq N")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 || n > 13 {
		fmt.Println("Bad interrupt number: " + args[0])
		return
	}
	control.InterruptRequest(control.Interrupt(n))
}

// Publish a keypad mask.
func keyCommand(args []string) {
	mask := uint32(core.KeypadIdle)
	var err error
	if len(args) > 0 {
		if mask, err = number(args[0]); err != nil {
			fmt.Println("Bad mask: " + args[0])
			return
		}
	}
	core.UpdateKeypad(uint16(mask))
}
