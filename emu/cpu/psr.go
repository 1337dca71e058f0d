package cpu

/*
 * GBA - Program status register.
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
)

// Operating mode field of the PSR. The values are the architectural 5 bit
// encodings.
type Mode uint8

const (
	ModeUser       Mode = 0x10
	ModeFIQ        Mode = 0x11
	ModeIRQ        Mode = 0x12
	ModeSupervisor Mode = 0x13
	ModeAbort      Mode = 0x17
	ModeUndefined  Mode = 0x1b
	ModeSystem     Mode = 0x1f
)

// Reading a PSR whose mode field holds none of the seven legal encodings.
var ErrIllegalMode = errors.New("illegal mode encoding")

func (m Mode) String() string {
	switch m {
	case ModeUser:
		return "User"
	case ModeFIQ:
		return "FIQ"
	case ModeIRQ:
		return "IRQ"
	case ModeSupervisor:
		return "Supervisor"
	case ModeAbort:
		return "Abort"
	case ModeUndefined:
		return "Undefined"
	case ModeSystem:
		return "System"
	}
	return "Illegal"
}

// Each privileged mode owns a (SP, LR, SPSR) triple. User and System share
// entry zero.
func (m Mode) bankIndex() int {
	switch m {
	case ModeFIQ:
		return 1
	case ModeIRQ:
		return 2
	case ModeSupervisor:
		return 3
	case ModeAbort:
		return 4
	case ModeUndefined:
		return 5
	}
	return 0
}

func modeFromBits(value uint32) (Mode, error) {
	m := Mode(value & 0x1f)
	switch m {
	case ModeUser, ModeFIQ, ModeIRQ, ModeSupervisor, ModeAbort, ModeUndefined, ModeSystem:
		return m, nil
	}
	return m, ErrIllegalMode
}

// Instruction set state: the 32 bit encoding or the 16 bit encoding.
type State uint8

const (
	StateARM State = iota
	StateThumb
)

func (s State) String() string {
	if s == StateThumb {
		return "Thumb"
	}
	return "ARM"
}

// PSR is the structured view of the 32 bit status word.
type PSR struct {
	Negative bool
	Zero     bool
	Carry    bool
	Overflow bool

	IRQDisable bool
	FIQDisable bool

	State State
	Mode  Mode
}

// Packed PSR layout.
const (
	psrNegative   = 1 << 31
	psrZero       = 1 << 30
	psrCarry      = 1 << 29
	psrOverflow   = 1 << 28
	psrIRQDisable = 1 << 7
	psrFIQDisable = 1 << 6
	psrState      = 1 << 5
	psrModeMask   = 0x1f
)

// Pack converts the structured view into the packed status word. Reserved
// bits read as zero.
func (p PSR) Pack() uint32 {
	var value uint32
	if p.Negative {
		value |= psrNegative
	}
	if p.Zero {
		value |= psrZero
	}
	if p.Carry {
		value |= psrCarry
	}
	if p.Overflow {
		value |= psrOverflow
	}
	if p.IRQDisable {
		value |= psrIRQDisable
	}
	if p.FIQDisable {
		value |= psrFIQDisable
	}
	if p.State == StateThumb {
		value |= psrState
	}
	return value | uint32(p.Mode)&psrModeMask
}

// UnpackPSR converts a packed status word into the structured view. An
// illegal mode field returns ErrIllegalMode; the caller decides how the
// fault surfaces to the guest.
func UnpackPSR(value uint32) (PSR, error) {
	mode, err := modeFromBits(value)
	if err != nil {
		return PSR{}, err
	}
	state := StateARM
	if value&psrState != 0 {
		state = StateThumb
	}
	return PSR{
		Negative:   value&psrNegative != 0,
		Zero:       value&psrZero != 0,
		Carry:      value&psrCarry != 0,
		Overflow:   value&psrOverflow != 0,
		IRQDisable: value&psrIRQDisable != 0,
		FIQDisable: value&psrFIQDisable != 0,
		State:      state,
		Mode:       mode,
	}, nil
}
