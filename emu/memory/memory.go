package memory

/*
 * GBA - Address space router.
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

	bus "github.com/rcornwell/GBA/emu/bus"
	cartridge "github.com/rcornwell/GBA/emu/cartridge"
	debug "github.com/rcornwell/GBA/util/debug"
)

// Region sizes.
const (
	biosSize  = 0x4000
	ewramSize = 0x40000
	iwramSize = 0x8000
	ioSize    = 0x400
	pramSize  = 0x400
	vramSize  = 0x18000
	oamSize   = 0x400
)

// I/O register offsets meaningful to the core. The rest of the register
// file is plain storage shared with the external peripherals.
const (
	DISPCNT  = 0x000
	KEYINPUT = 0x130
	KEYCNT   = 0x132
	IE       = 0x200
	IF       = 0x202
	WAITCNT  = 0x204
	IME      = 0x208
	HALTCNT  = 0x301
)

// IOBase is the bus address of I/O register zero.
const IOBase = 0x04000000

// Value returned for reads that hit no mapped region.
const openBus = 0x00

var ErrBIOSSize = errors.New("BIOS image must be 16384 bytes")

// Holds all internal memory and the attached cartridge.
type memState struct {
	bios  [biosSize]uint8
	ewram [ewramSize]uint8
	iwram [iwramSize]uint8
	io    [ioSize]uint8
	pram  [pramSize]uint8
	vram  [vramSize]uint8
	oam   [oamSize]uint8

	cart *cartridge.Cartridge

	haltPending bool
}

var sysMem memState

// Initialize loads the BIOS image, attaches the cartridge and clears all
// internal memory. The keypad register starts with all keys released.
func Initialize(bios []uint8, cart *cartridge.Cartridge) error {
	if len(bios) != biosSize {
		return ErrBIOSSize
	}
	sysMem = memState{cart: cart}
	copy(sysMem.bios[:], bios)
	WriteHword(IOBase+KEYINPUT, 0x03ff)
	return nil
}

// space adapts the routed address space to the bus contract so that the
// composed half-word and word forms share its alignment and byte-order
// rules.
type space struct{}

func (space) ReadByte(addr uint32) uint8         { return ReadByte(addr) }
func (space) WriteByte(addr uint32, value uint8) { WriteByte(addr, value) }

// ReadByte dispatches on the high byte of the address.
func ReadByte(addr uint32) uint8 {
	switch addr >> 24 {
	case 0x00:
		if addr < biosSize {
			return sysMem.bios[addr]
		}
	case 0x02:
		return sysMem.ewram[addr&(ewramSize-1)]
	case 0x03:
		return sysMem.iwram[addr&(iwramSize-1)]
	case 0x04:
		if addr <= IOBase+0x3fe {
			return sysMem.io[addr&(ioSize-1)]
		}
	case 0x05:
		return sysMem.pram[addr&(pramSize-1)]
	case 0x06:
		return sysMem.vram[vramOffset(addr)]
	case 0x07:
		return sysMem.oam[addr&(oamSize-1)]
	case 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e:
		return sysMem.cart.ReadByte(addr & 0x0fffffff)
	}
	debug.Debugf("mem", "unmapped read %08x", addr)
	return openBus
}

// WriteByte dispatches on the high byte of the address. Writes to the
// BIOS are ignored; byte writes to the video regions are dropped, as on
// hardware.
func WriteByte(addr uint32, value uint8) {
	switch addr >> 24 {
	case 0x00, 0x05, 0x06, 0x07:
		return
	case 0x02:
		sysMem.ewram[addr&(ewramSize-1)] = value
	case 0x03:
		sysMem.iwram[addr&(iwramSize-1)] = value
	case 0x04:
		if addr <= IOBase+0x3fe {
			writeIO(addr&(ioSize-1), value)
		}
	case 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e:
		sysMem.cart.WriteByte(addr&0x0fffffff, value)
	default:
		debug.Debugf("mem", "unmapped write %08x = %02x", addr, value)
	}
}

// ReadHword reads a little-endian half word at the aligned address.
func ReadHword(addr uint32) uint16 {
	return bus.ReadHword(space{}, addr)
}

// ReadWord reads a little-endian word at the aligned address.
func ReadWord(addr uint32) uint32 {
	return bus.ReadWord(space{}, addr)
}

// WriteHword writes a little-endian half word at the aligned address. The
// video regions accept half-word granularity even though they drop bytes.
func WriteHword(addr uint32, value uint16) {
	addr &^= 1
	switch addr >> 24 {
	case 0x05:
		bus.WriteHword(bus.RAM(sysMem.pram[:]), addr&(pramSize-1), value)
	case 0x06:
		bus.WriteHword(bus.RAM(sysMem.vram[:]), vramOffset(addr), value)
	case 0x07:
		bus.WriteHword(bus.RAM(sysMem.oam[:]), addr&(oamSize-1), value)
	default:
		bus.WriteHword(space{}, addr, value)
	}
}

// WriteWord writes a little-endian word as two half words in increasing
// address order.
func WriteWord(addr uint32, value uint32) {
	addr &^= 3
	WriteHword(addr, uint16(value))
	WriteHword(addr+2, uint16(value>>16))
}

// The 96 KiB video memory mirrors as 64K+32K+32K in each 128 KiB window.
func vramOffset(addr uint32) uint32 {
	offset := addr & 0x1ffff
	if offset >= vramSize {
		offset -= 0x8000
	}
	return offset
}

// I/O writes with side effects. The interrupt request register is
// write-one-to-clear; a HALTCNT write arms the one-shot the power
// controller observes.
func writeIO(offset uint32, value uint8) {
	switch offset {
	case IF, IF + 1:
		sysMem.io[offset] &^= value
	case HALTCNT:
		sysMem.io[offset] = value
		sysMem.haltPending = true
	default:
		sysMem.io[offset] = value
	}
}

// RaiseIF sets request bits directly, bypassing the guest-facing
// write-one-to-clear behavior. Used by the interrupt controller on behalf
// of peripherals.
func RaiseIF(mask uint16) {
	sysMem.io[IF] |= uint8(mask)
	sysMem.io[IF+1] |= uint8(mask >> 8)
}

// HaltPending reports whether HALTCNT was written since the last clear.
func HaltPending() bool {
	return sysMem.haltPending
}

// ClearHaltPending rearms the HALTCNT one-shot.
func ClearHaltPending() {
	sysMem.haltPending = false
}
