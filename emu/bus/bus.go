package bus

/*
 * GBA - Memory bus contract.
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

// Device is the byte-granular bus contract. Every addressable unit in the
// machine (memory regions, cartridge, backup media) implements it for its
// own window. Addresses are relative to whatever window the caller hands
// the device.
type Device interface {
	ReadByte(addr uint32) uint8
	WriteByte(addr uint32, value uint8)
}

// Half-word and word access compose from byte access. The low address bits
// are cleared first, so accesses are always naturally aligned, and the
// byte order is little endian with bytes written in increasing address
// order.

// Read a half word from a device.
func ReadHword(dev Device, addr uint32) uint16 {
	addr &^= 1
	return uint16(dev.ReadByte(addr)) | uint16(dev.ReadByte(addr+1))<<8
}

// Write a half word to a device.
func WriteHword(dev Device, addr uint32, value uint16) {
	addr &^= 1
	dev.WriteByte(addr, uint8(value))
	dev.WriteByte(addr+1, uint8(value>>8))
}

// Read a full word from a device.
func ReadWord(dev Device, addr uint32) uint32 {
	addr &^= 3
	return uint32(ReadHword(dev, addr)) | uint32(ReadHword(dev, addr+2))<<16
}

// Write a full word to a device.
func WriteWord(dev Device, addr uint32, value uint32) {
	addr &^= 3
	WriteHword(dev, addr, uint16(value))
	WriteHword(dev, addr+2, uint16(value>>16))
}

// RAM is a flat byte region addressed from zero. Callers mask addresses to
// the region size before indexing.
type RAM []uint8

func (r RAM) ReadByte(addr uint32) uint8 {
	return r[addr]
}

func (r RAM) WriteByte(addr uint32, value uint8) {
	r[addr] = value
}
