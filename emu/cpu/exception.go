package cpu

/*
 * GBA - Exception entry.
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
	debug "github.com/rcornwell/GBA/util/debug"
)

// Exception kinds with their hard-wired vectors and target modes.
type Exception int

const (
	ExcReset Exception = iota
	ExcUndefined
	ExcSoftwareInterrupt
	ExcPrefetchAbort
	ExcDataAbort
	ExcIRQ
	ExcFIQ
)

func (e Exception) vector() uint32 {
	switch e {
	case ExcUndefined:
		return 0x04
	case ExcSoftwareInterrupt:
		return 0x08
	case ExcPrefetchAbort:
		return 0x0c
	case ExcDataAbort:
		return 0x10
	case ExcIRQ:
		return 0x18
	case ExcFIQ:
		return 0x1c
	}
	return 0x00
}

func (e Exception) mode() Mode {
	switch e {
	case ExcUndefined:
		return ModeUndefined
	case ExcPrefetchAbort, ExcDataAbort:
		return ModeAbort
	case ExcIRQ:
		return ModeIRQ
	case ExcFIQ:
		return ModeFIQ
	}
	return ModeSupervisor
}

// EnterException forces the exception from outside the executor, used by
// the interrupt controller. The caller supplies the return address per the
// architectural rule for the exception kind. Unlike an in-instruction
// entry there is no cycle tail to refill the last pipeline slot, so it is
// refetched here.
func EnterException(exc Exception, ret uint32) {
	sysCPU.enterException(exc, ret)
	sysCPU.pipeline[2] = sysCPU.fetch()
}

// Enter an exception: switch to the target mode, save the outgoing status
// word into the new SPSR and the return address into the new LR, force the
// 32 bit state, mask IRQ (and FIQ for Reset/FIQ), then redirect to the
// vector.
func (c *cpuState) enterException(exc Exception, ret uint32) {
	debug.Debugf("cpu", "exception %d at %08x, return %08x", exc, c.instrAddr(), ret)
	old := c.cpsr.Pack()
	c.setMode(exc.mode())
	c.spsr = old
	c.reg[regLR] = ret
	c.cpsr.State = StateARM
	c.cpsr.IRQDisable = true
	if exc == ExcReset || exc == ExcFIQ {
		c.cpsr.FIQDisable = true
	}
	c.reg[regPC] = exc.vector()
	c.flushPipeline()
}
