package cartridge

/*
 * GBA - EEPROM backup media.
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

// Serial EEPROM, 512 bytes or 8 KiB. The guest drives it one bit at a
// time through the overlap window at the top of the cartridge space; the
// DMA-clocked 68 bit transfer protocol lives with the DMA engine outside
// the core, so the core-side unit holds the buffer, answers reads with
// the ready bit, and keeps save-file sizing exact.
type EEPROM struct {
	data bus.RAM
}

func NewEEPROM(size int, save []uint8) *EEPROM {
	e := &EEPROM{data: make(bus.RAM, size)}
	copy(e.data, save)
	return e
}

func (e *EEPROM) ReadByte(uint32) uint8 {
	return 1
}

func (e *EEPROM) WriteByte(uint32, uint8) {
}

// Data exposes the buffer for host-side save persistence.
func (e *EEPROM) Data() []uint8 {
	return e.data
}
