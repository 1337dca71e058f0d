package core

/*
 * GBA - Machine composition and tick loop.
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
	"log/slog"

	cartridge "github.com/rcornwell/GBA/emu/cartridge"
	control "github.com/rcornwell/GBA/emu/control"
	cpu "github.com/rcornwell/GBA/emu/cpu"
	memory "github.com/rcornwell/GBA/emu/memory"
)

// Initialize builds the machine from a BIOS image and a cartridge. The
// pipeline is primed from the reset vector and the machine starts Active.
func Initialize(bios []uint8, cart *cartridge.Cartridge) error {
	if err := memory.Initialize(bios, cart); err != nil {
		return err
	}
	control.Initialize()
	cpu.InitializeCPU()
	slog.Info("Machine initialized", "backup", cart.Backup().String())
	return nil
}

// Cycle advances the machine one tick. While Active the CPU runs one
// instruction; Halt keeps the controllers alive without executing; Stop
// leaves only interrupt evaluation, which is also what wakes the machine.
func Cycle() {
	if control.Power() == control.PowerActive {
		memory.ClearHaltPending()
		cpu.Cycle()
	}
	if control.Power() != control.PowerStop {
		control.CycleSystem()
	}
	control.CycleIRQ()
}

// Run steps the machine until stop is closed.
func Run(stop <-chan struct{}) {
	for i := 0; ; i++ {
		// Poll for shutdown once in a while, not every tick.
		if i&0x3fff == 0 {
			select {
			case <-stop:
				return
			default:
			}
		}
		Cycle()
	}
}
