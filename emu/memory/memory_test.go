package memory

/*
 * GBA - Address space router tests.
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
	"testing"

	cartridge "github.com/rcornwell/GBA/emu/cartridge"
)

func setup(t *testing.T) {
	t.Helper()
	setupBios(t, make([]uint8, biosSize))
}

func setupBios(t *testing.T, bios []uint8) {
	t.Helper()
	rom := make(cartridge.ROM, 64)
	for i := range rom {
		rom[i] = uint8(i)
	}
	cart, err := cartridge.New(rom, nil)
	if err != nil {
		t.Fatalf("Cartridge setup failed: %v", err)
	}
	if err := Initialize(bios, cart); err != nil {
		t.Fatalf("Memory setup failed: %v", err)
	}
}

func TestBIOSSizeRejected(t *testing.T) {
	cart, err := cartridge.New(make(cartridge.ROM, 64), nil)
	if err != nil {
		t.Fatalf("Cartridge setup failed: %v", err)
	}
	if err := Initialize(make([]uint8, 0x2000), cart); err != ErrBIOSSize {
		t.Errorf("Short BIOS got: %v expected: %v", err, ErrBIOSSize)
	}
	if err := Initialize(make([]uint8, biosSize), cart); err != nil {
		t.Errorf("Exact BIOS got: %v expected: nil", err)
	}
}

func TestBIOSReadOnly(t *testing.T) {
	bios := make([]uint8, biosSize)
	bios[0x10] = 0xab
	setupBios(t, bios)
	if got := ReadByte(0x00000010); got != 0xab {
		t.Errorf("BIOS read got: %02x expected: ab", got)
	}
	WriteByte(0x00000010, 0x55)
	if got := ReadByte(0x00000010); got != 0xab {
		t.Errorf("BIOS write not ignored got: %02x expected: ab", got)
	}
}

func TestLittleEndianComposition(t *testing.T) {
	setup(t)
	WriteWord(0x02000000, 0x11223344)
	want := []uint8{0x44, 0x33, 0x22, 0x11}
	for i, b := range want {
		if got := ReadByte(0x02000000 + uint32(i)); got != b {
			t.Errorf("Byte %d got: %02x expected: %02x", i, got, b)
		}
	}
	if got := ReadHword(0x02000002); got != 0x1122 {
		t.Errorf("Hword got: %04x expected: 1122", got)
	}
	if got := ReadWord(0x02000000); got != 0x11223344 {
		t.Errorf("Word got: %08x expected: 11223344", got)
	}
}

// Half-word and word accesses force natural alignment.
func TestAlignmentMasking(t *testing.T) {
	setup(t)
	WriteWord(0x03000000, 0xa1b2c3d4)
	for a := uint32(0x03000000); a < 0x03000004; a++ {
		if got, want := ReadHword(a), ReadHword(a&^1); got != want {
			t.Errorf("Hword %08x got: %04x expected: %04x", a, got, want)
		}
		if got, want := ReadWord(a), ReadWord(a&^3); got != want {
			t.Errorf("Word %08x got: %08x expected: %08x", a, got, want)
		}
	}
}

// Work RAM mirrors through its region.
func TestRAMMirrors(t *testing.T) {
	setup(t)
	WriteByte(0x02000004, 0x77)
	if got := ReadByte(0x02040004); got != 0x77 {
		t.Errorf("EWRAM mirror got: %02x expected: 77", got)
	}
	WriteByte(0x03000008, 0x88)
	if got := ReadByte(0x03008008); got != 0x88 {
		t.Errorf("IWRAM mirror got: %02x expected: 88", got)
	}
}

// The last 32 KiB of video memory mirror once in each 128 KiB window.
func TestVRAMMirror(t *testing.T) {
	setup(t)
	WriteHword(0x06010000, 0xbeef)
	if got := ReadHword(0x06018000); got != 0xbeef {
		t.Errorf("VRAM mirror got: %04x expected: beef", got)
	}
}

// Byte writes to the video regions are dropped; half-word writes land.
func TestVideoByteWriteDropped(t *testing.T) {
	setup(t)
	WriteByte(0x05000000, 0x12)
	if got := ReadByte(0x05000000); got != 0 {
		t.Errorf("PRAM byte write not dropped got: %02x", got)
	}
	WriteHword(0x05000000, 0x1234)
	if got := ReadHword(0x05000000); got != 0x1234 {
		t.Errorf("PRAM hword got: %04x expected: 1234", got)
	}
	WriteHword(0x07000000, 0x5678)
	if got := ReadHword(0x07000000); got != 0x5678 {
		t.Errorf("OAM hword got: %04x expected: 5678", got)
	}
}

func TestCartridgeDispatch(t *testing.T) {
	setup(t)
	if got := ReadByte(0x08000005); got != 5 {
		t.Errorf("ROM read got: %02x expected: 05", got)
	}
	// Mirrors at 0x0a and 0x0c.
	if got := ReadByte(0x0a000005); got != 5 {
		t.Errorf("ROM mirror got: %02x expected: 05", got)
	}
	if got := ReadByte(0x0c000005); got != 5 {
		t.Errorf("ROM mirror got: %02x expected: 05", got)
	}
	// ROM writes are dropped.
	WriteByte(0x08000005, 0xff)
	if got := ReadByte(0x08000005); got != 5 {
		t.Errorf("ROM write not ignored got: %02x", got)
	}
}

// Unmapped reads return the deterministic open value; writes are ignored.
func TestUnmappedAccess(t *testing.T) {
	setup(t)
	for _, addr := range []uint32{0x00004000, 0x01000000, 0x0f000000, 0x10000000, 0x04000400} {
		if got := ReadByte(addr); got != openBus {
			t.Errorf("Unmapped read %08x got: %02x expected: %02x", addr, got, openBus)
		}
		WriteByte(addr, 0xff)
	}
}

// The interrupt request register is write-one-to-clear for the guest; the
// controller raises bits directly.
func TestInterruptFlagClear(t *testing.T) {
	setup(t)
	RaiseIF(0x0005)
	if got := ReadHword(IOBase + IF); got != 0x0005 {
		t.Errorf("IF got: %04x expected: 0005", got)
	}
	WriteHword(IOBase+IF, 0x0001)
	if got := ReadHword(IOBase + IF); got != 0x0004 {
		t.Errorf("IF after acknowledge got: %04x expected: 0004", got)
	}
	RaiseIF(0x2000)
	if got := ReadHword(IOBase + IF); got != 0x2004 {
		t.Errorf("IF high bit got: %04x expected: 2004", got)
	}
}

// A HALTCNT write arms the one-shot until cleared.
func TestHaltLatch(t *testing.T) {
	setup(t)
	if HaltPending() {
		t.Errorf("Halt pending after initialize")
	}
	WriteByte(IOBase+HALTCNT, 0x80)
	if !HaltPending() {
		t.Errorf("Halt not pending after HALTCNT write")
	}
	if got := ReadByte(IOBase + HALTCNT); got != 0x80 {
		t.Errorf("HALTCNT got: %02x expected: 80", got)
	}
	ClearHaltPending()
	if HaltPending() {
		t.Errorf("Halt still pending after clear")
	}
}

// Plain I/O registers hold their value; KEYINPUT starts all released.
func TestIORegisters(t *testing.T) {
	setup(t)
	if got := ReadHword(IOBase + KEYINPUT); got != 0x03ff {
		t.Errorf("KEYINPUT got: %04x expected: 03ff", got)
	}
	WriteHword(IOBase+IE, 0x3fff)
	if got := ReadHword(IOBase + IE); got != 0x3fff {
		t.Errorf("IE got: %04x expected: 3fff", got)
	}
	WriteHword(IOBase+WAITCNT, 0x4317)
	if got := ReadHword(IOBase + WAITCNT); got != 0x4317 {
		t.Errorf("WAITCNT got: %04x expected: 4317", got)
	}
}
