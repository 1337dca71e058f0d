package cartridge

/*
 * GBA - Flash backup media.
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
	bus "github.com/rcornwell/GBA/emu/bus"
	debug "github.com/rcornwell/GBA/util/debug"
)

// Command unlock addresses within the 64 KiB window.
const (
	flashCmdAddr1 = 0x5555
	flashCmdAddr2 = 0x2aaa
)

// Command bytes accepted after the unlock sequence.
const (
	flashCmdEnterID     = 0x90
	flashCmdExitID      = 0xf0
	flashCmdEraseMode   = 0x80
	flashCmdEraseChip   = 0x10
	flashCmdEraseSector = 0x30
	flashCmdProgram     = 0xa0
	flashCmdSetBank     = 0xb0
)

// Unlock sequence progress.
const (
	flashIdle = iota
	flashUnlock1
	flashUnlock2
)

// Pending operation selected by the last completed command.
const (
	flashNone = iota
	flashErase
	flashWrite
	flashBank
)

// Flash backup with the standard two-address command state machine: chip
// identification, chip/sector erase, single-byte program, and bank
// switching on the 128 KiB part. The guest sees a 64 KiB window; the bank
// register selects the visible half of the larger part.
type Flash struct {
	data   bus.RAM
	banked bool
	bank   uint32

	state   int
	pending int
	idMode  bool
}

// Device codes reported in ID mode, matching the parts the 64 KiB and
// 128 KiB cartridges shipped with.
const (
	flashMaker64   = 0xbf // SST
	flashDevice64  = 0xd4
	flashMaker128  = 0x62 // Sanyo
	flashDevice128 = 0x13
)

func NewFlash(size int, save []uint8) *Flash {
	f := &Flash{
		data:   make(bus.RAM, size),
		banked: size > 0x10000,
	}
	// Erased flash reads all ones.
	for i := range f.data {
		f.data[i] = 0xff
	}
	copy(f.data, save)
	return f
}

func (f *Flash) ReadByte(addr uint32) uint8 {
	addr &= 0xffff
	if f.idMode {
		if f.banked {
			if addr&1 == 0 {
				return flashMaker128
			}
			return flashDevice128
		}
		if addr&1 == 0 {
			return flashMaker64
		}
		return flashDevice64
	}
	return f.data.ReadByte(f.bank<<16 | addr)
}

func (f *Flash) WriteByte(addr uint32, value uint8) {
	addr &= 0xffff

	switch f.pending {
	case flashWrite:
		f.data.WriteByte(f.bank<<16|addr, value)
		f.pending = flashNone
		return
	case flashBank:
		if addr == 0 && f.banked {
			f.bank = uint32(value) & 1
		}
		f.pending = flashNone
		return
	}

	switch f.state {
	case flashIdle:
		if addr == flashCmdAddr1 && value == 0xaa {
			f.state = flashUnlock1
		}
	case flashUnlock1:
		if addr == flashCmdAddr2 && value == 0x55 {
			f.state = flashUnlock2
		} else {
			f.state = flashIdle
		}
	case flashUnlock2:
		f.state = flashIdle
		f.command(addr, value)
	}
}

func (f *Flash) command(addr uint32, value uint8) {
	if f.pending == flashErase {
		f.pending = flashNone
		switch {
		case addr == flashCmdAddr1 && value == flashCmdEraseChip:
			for i := range f.data {
				f.data[i] = 0xff
			}
		case value == flashCmdEraseSector:
			base := f.bank<<16 | addr&0xf000
			for i := uint32(0); i < 0x1000; i++ {
				f.data[base+i] = 0xff
			}
		}
		return
	}

	if addr != flashCmdAddr1 {
		return
	}
	switch value {
	case flashCmdEnterID:
		f.idMode = true
	case flashCmdExitID:
		f.idMode = false
	case flashCmdEraseMode:
		f.pending = flashErase
	case flashCmdProgram:
		f.pending = flashWrite
	case flashCmdSetBank:
		f.pending = flashBank
	default:
		debug.Debugf("cart", "flash command %02x ignored", value)
	}
}

// Data exposes the buffer for host-side save persistence.
func (f *Flash) Data() []uint8 {
	return f.data
}
