package cartridge

/*
 * GBA - Cartridge ROM image and backup detection.
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
	"bytes"
)

// ROM is a read-only cartridge image.
type ROM []uint8

// BackupKind identifies the save media behind the cartridge.
type BackupKind int

const (
	BackupNone BackupKind = iota
	BackupSRAM
	BackupEEPROM512
	BackupEEPROM8K
	BackupFlash64K
	BackupFlash128K
)

func (k BackupKind) String() string {
	switch k {
	case BackupSRAM:
		return "SRAM 32K"
	case BackupEEPROM512:
		return "EEPROM 512"
	case BackupEEPROM8K:
		return "EEPROM 8K"
	case BackupFlash64K:
		return "Flash 64K"
	case BackupFlash128K:
		return "Flash 128K"
	}
	return "none"
}

// Build tools stamp one of these tokens into the image; scanning at word
// strides finds it. First hit wins.
var backupTokens = []struct {
	id   []byte
	kind BackupKind
}{
	{[]byte("EEPROM_V"), BackupEEPROM8K},
	{[]byte("SRAM_V"), BackupSRAM},
	{[]byte("FLASH_V"), BackupFlash64K},
	{[]byte("FLASH512_V"), BackupFlash64K},
	{[]byte("FLASH1M_V"), BackupFlash128K},
}

// DetectBackup scans the image for a backup ID token. No token means the
// cartridge has no save media.
func (r ROM) DetectBackup() BackupKind {
	for i := 0; i < len(r); i += 4 {
		for _, token := range backupTokens {
			if bytes.HasPrefix(r[i:], token.id) {
				return token.kind
			}
		}
	}
	return BackupNone
}
