package control

/*
 * GBA - Interrupt and power controllers.
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
	cpu "github.com/rcornwell/GBA/emu/cpu"
	memory "github.com/rcornwell/GBA/emu/memory"
	debug "github.com/rcornwell/GBA/util/debug"
)

// PowerMode is the machine's run state.
type PowerMode int

const (
	PowerActive PowerMode = iota
	PowerHalt
	PowerStop
)

// Interrupt sources, in request-register bit order.
type Interrupt int

const (
	IntVBlank Interrupt = iota
	IntHBlank
	IntVCounter
	IntTimer0
	IntTimer1
	IntTimer2
	IntTimer3
	IntSerial
	IntDMA0
	IntDMA1
	IntDMA2
	IntDMA3
	IntKeypad
	IntCartridge
)

// Only the low 14 bits of IE and IF are wired.
const interruptMask = 0x3fff

// Wait-state counts for one cartridge region: first access, sequential
// access.
type waitState struct {
	first  int
	second int
}

// Holds the interrupt controller's register snapshot and the power
// controller's state machine.
type controlState struct {
	master  bool
	enable  uint16
	request uint16

	sramWait int
	waits    [3]waitState
	prefetch bool

	power PowerMode
}

var sysControl controlState

// Initialize resets both controllers; the machine starts Active.
func Initialize() {
	sysControl = controlState{}
}

// Power returns the current run state.
func Power() PowerMode {
	return sysControl.power
}

// InterruptRequest asserts an interrupt source. Peripheral collaborators
// and the keypad evaluation call this; the service routine acknowledges
// by writing ones to IF.
func InterruptRequest(which Interrupt) {
	memory.RaiseIF(1 << uint(which))
	debug.Debugf("irq", "request %d", which)
}

// CycleIRQ evaluates master-enable against the enabled request set. A hit
// wakes the machine and forces the IRQ exception with the return address
// four bytes beyond the pending instruction.
func CycleIRQ() {
	c := &sysControl
	c.master = memory.ReadHword(memory.IOBase+memory.IME)&1 != 0
	c.enable = memory.ReadHword(memory.IOBase+memory.IE) & interruptMask
	c.request = memory.ReadHword(memory.IOBase+memory.IF) & interruptMask

	if !c.master || c.enable&c.request == 0 {
		return
	}
	c.power = PowerActive
	debug.Debugf("irq", "inject, pending %04x", c.enable&c.request)
	cpu.EnterException(cpu.ExcIRQ, cpu.PC()+4)
}

// CycleSystem refreshes the wait-state snapshot from WAITCNT and observes
// the HALTCNT one-shot. Bit 7 of HALTCNT selects Stop, otherwise Halt.
func CycleSystem() {
	c := &sysControl
	waitcnt := memory.ReadHword(memory.IOBase + memory.WAITCNT)

	c.sramWait = int(waitcnt) & 3
	c.waits[0] = waitState{int(waitcnt>>2) & 3, int(waitcnt>>4) & 1}
	c.waits[1] = waitState{int(waitcnt>>5) & 3, int(waitcnt>>7) & 1}
	c.waits[2] = waitState{int(waitcnt>>8) & 3, int(waitcnt>>10) & 1}
	c.prefetch = waitcnt&0x4000 != 0

	if memory.HaltPending() {
		if memory.ReadByte(memory.IOBase+memory.HALTCNT)&0x80 != 0 {
			c.power = PowerStop
		} else {
			c.power = PowerHalt
		}
		debug.Debugf("irq", "power mode %d", c.power)
	}
}
