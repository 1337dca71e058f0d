package disassemble

/*
 * GBA - Disassembler tests.
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
)

func TestARM(t *testing.T) {
	cases := []struct {
		addr uint32
		inst uint32
		want string
	}{
		{0x08000000, 0xea000000, "B 0x08000008"},
		{0x08000000, 0xeb000004, "BL 0x08000018"},
		{0, 0x0a000000, "BEQ 0x00000008"},
		{0, 0xe12fff11, "BX R1"},
		{0, 0xe3a00001, "MOV R0, #0x1"},
		{0, 0xe3a01404, "MOV R1, #0x4000000"},
		{0, 0xe0901002, "ADDS R1, R0, R2"},
		{0, 0xe1a00211, "MOV R0, R1, LSL R2"},
		{0, 0xe1a00fa1, "MOV R0, R1, LSR #31"},
		{0, 0xe3500001, "CMP R0, #0x1"},
		{0, 0xe5910000, "LDR R0, [R1, #0x0]"},
		{0, 0xe5c10301, "STRB R0, [R1, #0x301]"},
		{0, 0xe4910004, "LDR R0, [R1], #0x4"},
		{0, 0xe1d100f0, "LDRSH R0, [R1, #0x0]"},
		{0, 0xe8bd8000, "LDMIA SP!, {PC}"},
		{0, 0xe92d4003, "STMDB SP!, {R0, R1, LR}"},
		{0, 0xe1010092, "SWP R0, R2, [R1]"},
		{0, 0xe0000291, "MUL R0, R1, R2"},
		{0, 0xe10f0000, "MRS R0, CPSR"},
		{0, 0xe129f001, "MSR CPSR, R1"},
		{0, 0xe128f001, "MSR CPSR_flg, R1"},
		{0, 0xef000042, "SWI 0x000042"},
	}
	for _, test := range cases {
		if got := ARM(test.addr, test.inst); got != test.want {
			t.Errorf("ARM %08x got: %q expected: %q", test.inst, got, test.want)
		}
	}
}

func TestThumb(t *testing.T) {
	cases := []struct {
		addr uint32
		inst uint16
		want string
	}{
		{0, 0x00c8, "LSL R0, R1, #3"},
		{0, 0x0808, "LSR R0, R1, #32"},
		{0, 0x1a88, "SUB R0, R1, R2"},
		{0, 0x2005, "MOV R0, #0x5"},
		{0, 0x4308, "ORR R0, R1"},
		{0, 0x4770, "BX LR"},
		{0, 0x46b7, "MOV PC, R6"},
		{0, 0x4800, "LDR R0, [PC, #0x0]"},
		{0, 0x5088, "STR R0, [R1, R2]"},
		{0, 0x9001, "STR R0, [SP, #0x4]"},
		{0, 0xb501, "PUSH {R0, LR}"},
		{0, 0xbd01, "POP {R0, PC}"},
		{0, 0xc10c, "STMIA R1!, {R2, R3}"},
		{0x1000, 0xd004, "BEQ 0x0000100c"},
		{0x1000, 0xe004, "B 0x0000100c"},
		{0, 0xdf05, "SWI 0x05"},
	}
	for _, test := range cases {
		if got := Thumb(test.addr, test.inst); got != test.want {
			t.Errorf("Thumb %04x got: %q expected: %q", test.inst, got, test.want)
		}
	}
}
