package core

/*
 * GBA - Keypad register handling.
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
	control "github.com/rcornwell/GBA/emu/control"
	memory "github.com/rcornwell/GBA/emu/memory"
)

// KeypadIdle is the all-released input mask (the register is active low).
const KeypadIdle = 0x03ff

// UpdateKeypad publishes the host's 10 bit input mask and evaluates the
// keypad interrupt condition: with bit 14 of KEYCNT set, bit 15 selects
// whether every selected key (AND) or any selected key (OR) must be down.
func UpdateKeypad(mask uint16) {
	memory.WriteHword(memory.IOBase+memory.KEYINPUT, mask&KeypadIdle)

	keycnt := memory.ReadHword(memory.IOBase + memory.KEYCNT)
	if keycnt&0x4000 == 0 {
		return
	}

	pressed := ^mask & KeypadIdle
	selected := keycnt & KeypadIdle

	var fire bool
	if keycnt&0x8000 != 0 {
		fire = pressed > 0 && pressed&selected == selected
	} else {
		fire = pressed&selected > 0
	}
	if fire {
		control.InterruptRequest(control.IntKeypad)
	}
}
