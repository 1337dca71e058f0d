package cartridge

/*
 * GBA - Cartridge mapping and backup dispatch.
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
	debug "github.com/rcornwell/GBA/util/debug"
)

// Largest ROM a cartridge can carry.
const romLimit = 0x2000000

// Cartridge addresses as seen from the bus, with the system nibble
// stripped: ROM mirrors at 0x08/0x0a/0x0c, backup window at 0x0e.
const (
	backupBase  = 0x0e000000
	romMask     = 0x01ffffff
	flashWindow = 0xffff
)

var ErrROMSize = errors.New("ROM image larger than 32 MiB")

// Media is the byte contract plus access to the underlying save buffer.
type media interface {
	bus.Device
	Data() []uint8
}

// Cartridge is the ROM image plus whatever backup media was detected.
type Cartridge struct {
	rom    ROM
	kind   BackupKind
	backup media
}

// New builds a cartridge. When a save file is present its length selects
// the media and overrides detection; otherwise the ROM is scanned for a
// backup ID token.
func New(rom ROM, save []uint8) (*Cartridge, error) {
	if len(rom) > romLimit {
		return nil, ErrROMSize
	}

	kind := BackupNone
	switch len(save) {
	case 0x8000:
		kind = BackupSRAM
	case 0x200:
		kind = BackupEEPROM512
	case 0x2000:
		kind = BackupEEPROM8K
	case 0x10000:
		kind = BackupFlash64K
	case 0x20000:
		kind = BackupFlash128K
	default:
		kind = rom.DetectBackup()
		save = nil
	}

	cart := &Cartridge{rom: rom, kind: kind}
	switch kind {
	case BackupSRAM:
		cart.backup = NewSRAM(save)
	case BackupEEPROM512:
		cart.backup = NewEEPROM(0x200, save)
	case BackupEEPROM8K:
		cart.backup = NewEEPROM(0x2000, save)
	case BackupFlash64K:
		cart.backup = NewFlash(0x10000, save)
	case BackupFlash128K:
		cart.backup = NewFlash(0x20000, save)
	}
	return cart, nil
}

// Backup reports the detected media kind.
func (c *Cartridge) Backup() BackupKind {
	return c.kind
}

// SaveData exposes the backup buffer for host persistence, nil without
// media.
func (c *Cartridge) SaveData() []uint8 {
	if c.backup == nil {
		return nil
	}
	return c.backup.Data()
}

// The EEPROM answers in an overlap window carved out of the ROM mirrors:
// the top 256 bytes of the last 16 MiB for large ROMs, the whole 0x0d
// mirror for smaller ones.
func (c *Cartridge) eepromWindow(addr uint32) bool {
	if c.kind != BackupEEPROM512 && c.kind != BackupEEPROM8K {
		return false
	}
	if len(c.rom) > 0x1000000 {
		return addr&0x01ffff00 == 0x01ffff00
	}
	return addr>>24 == 0x0d
}

// ReadByte serves the ROM mirrors and the backup window. Reads past the
// end of the image return a fixed value.
func (c *Cartridge) ReadByte(addr uint32) uint8 {
	if addr < backupBase {
		if c.eepromWindow(addr) {
			return c.backup.ReadByte(addr)
		}
		offset := addr & romMask
		if offset < uint32(len(c.rom)) {
			return c.rom[offset]
		}
		return 0
	}

	switch c.kind {
	case BackupSRAM:
		return c.backup.ReadByte(addr)
	case BackupFlash64K, BackupFlash128K:
		return c.backup.ReadByte(addr & flashWindow)
	}
	debug.Debugf("cart", "backup read %08x without media", addr)
	return 0
}

// WriteByte ignores the ROM mirrors outside the EEPROM window and routes
// the backup window to the active media.
func (c *Cartridge) WriteByte(addr uint32, value uint8) {
	if addr < backupBase {
		if c.eepromWindow(addr) {
			c.backup.WriteByte(addr, value)
		}
		return
	}

	switch c.kind {
	case BackupSRAM:
		c.backup.WriteByte(addr, value)
	case BackupFlash64K, BackupFlash128K:
		c.backup.WriteByte(addr&flashWindow, value)
	default:
		debug.Debugf("cart", "backup write %08x without media", addr)
	}
}
