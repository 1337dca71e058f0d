package cartridge

/*
 * GBA - SRAM backup media.
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
)

const sramSize = 0x8000

// Battery-backed static RAM, 32 KiB, byte addressed.
type SRAM struct {
	data bus.RAM
}

func NewSRAM(save []uint8) *SRAM {
	s := &SRAM{data: make(bus.RAM, sramSize)}
	copy(s.data, save)
	return s
}

func (s *SRAM) ReadByte(addr uint32) uint8 {
	return s.data.ReadByte(addr & (sramSize - 1))
}

func (s *SRAM) WriteByte(addr uint32, value uint8) {
	s.data.WriteByte(addr&(sramSize-1), value)
}

// Data exposes the buffer for host-side save persistence.
func (s *SRAM) Data() []uint8 {
	return s.data
}
