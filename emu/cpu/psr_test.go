package cpu

/*
 * GBA - PSR tests.
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

	"github.com/google/go-cmp/cmp"
)

var legalModes = []Mode{
	ModeUser, ModeFIQ, ModeIRQ, ModeSupervisor, ModeAbort, ModeUndefined, ModeSystem,
}

// Every legal PSR must survive a pack/unpack round trip.
func TestPSRRoundTrip(t *testing.T) {
	for _, mode := range legalModes {
		for flags := 0; flags < 0x80; flags++ {
			psr := PSR{
				Negative:   flags&1 != 0,
				Zero:       flags&2 != 0,
				Carry:      flags&4 != 0,
				Overflow:   flags&8 != 0,
				IRQDisable: flags&16 != 0,
				FIQDisable: flags&32 != 0,
				Mode:       mode,
			}
			if flags&64 != 0 {
				psr.State = StateThumb
			}
			got, err := UnpackPSR(psr.Pack())
			if err != nil {
				t.Fatalf("Unpack failed for mode %s: %v", mode, err)
			}
			if diff := cmp.Diff(psr, got); diff != "" {
				t.Errorf("Round trip mismatch (-want +got):\n%s", diff)
			}
		}
	}
}

// Reserved bits read back as zero.
func TestPSRReservedBits(t *testing.T) {
	psr, err := UnpackPSR(0x0fffff00 | uint32(ModeSystem))
	if err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}
	if got := psr.Pack(); got != uint32(ModeSystem) {
		t.Errorf("Reserved bits kept got: %08x expected: %08x", got, uint32(ModeSystem))
	}
}

func TestIllegalModeEncoding(t *testing.T) {
	legal := map[Mode]bool{}
	for _, m := range legalModes {
		legal[m] = true
	}
	for value := uint32(0); value < 32; value++ {
		_, err := UnpackPSR(value)
		if legal[Mode(value)] {
			if err != nil {
				t.Errorf("Mode %05b rejected: %v", value, err)
			}
		} else if err != ErrIllegalMode {
			t.Errorf("Mode %05b accepted", value)
		}
	}
}

func TestBankIndexMapping(t *testing.T) {
	want := map[Mode]int{
		ModeUser: 0, ModeSystem: 0, ModeFIQ: 1, ModeIRQ: 2,
		ModeSupervisor: 3, ModeAbort: 4, ModeUndefined: 5,
	}
	for mode, index := range want {
		if got := mode.bankIndex(); got != index {
			t.Errorf("Bank index for %s got: %d expected: %d", mode, got, index)
		}
	}
}
