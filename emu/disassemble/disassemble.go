package disassemble

/*
 * GBA - Instruction disassembler.
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
	"fmt"
	"strings"
)

// Condition mnemonics indexed by the 4 bit condition field.
var condNames = [16]string{
	"EQ", "NE", "CS", "CC", "MI", "PL", "VS", "VC",
	"HI", "LS", "GE", "LT", "GT", "LE", "", "NV",
}

// Data processing mnemonics indexed by opcode.
var aluNames = [16]string{
	"AND", "EOR", "SUB", "RSB", "ADD", "ADC", "SBC", "RSC",
	"TST", "TEQ", "CMP", "CMN", "ORR", "MOV", "BIC", "MVN",
}

var shiftNames = [4]string{"LSL", "LSR", "ASR", "ROR"}

func reg(num uint32) string {
	switch num & 0xf {
	case 13:
		return "SP"
	case 14:
		return "LR"
	case 15:
		return "PC"
	}
	return fmt.Sprintf("R%d", num&0xf)
}

// Format a register list for block transfers.
func regList(list uint32) string {
	var names []string
	for r := uint32(0); r < 16; r++ {
		if list&(1<<r) != 0 {
			names = append(names, reg(r))
		}
	}
	return "{" + strings.Join(names, ", ") + "}"
}

// Format the shifted-register form of operand two.
func shiftedRegister(field uint32) string {
	base := reg(field)
	kind := shiftNames[(field>>5)&3]
	if field&0x10 != 0 {
		return fmt.Sprintf("%s, %s %s", base, kind, reg(field>>8))
	}
	amount := (field >> 7) & 0x1f
	if amount == 0 {
		switch (field >> 5) & 3 {
		case 0:
			return base
		case 3:
			return base + ", RRX"
		default:
			amount = 32
		}
	}
	return fmt.Sprintf("%s, %s #%d", base, kind, amount)
}

func rotatedImmediate(field uint32) uint32 {
	value := field & 0xff
	count := ((field >> 8) & 0xf) * 2
	if count == 0 {
		return value
	}
	return value>>count | value<<(32-count)
}

// ARM formats one 32 bit instruction at addr.
func ARM(addr uint32, inst uint32) string {
	cond := condNames[inst>>28]

	switch {
	case inst&0x0ffffff0 == 0x012fff10:
		return fmt.Sprintf("BX%s %s", cond, reg(inst))

	case inst&0x0fc000f0 == 0x00000090:
		name := "MUL"
		args := fmt.Sprintf("%s, %s, %s", reg(inst>>16), reg(inst), reg(inst>>8))
		if inst&(1<<21) != 0 {
			name = "MLA"
			args += ", " + reg(inst>>12)
		}
		return fmt.Sprintf("%s%s%s %s", name, cond, sFlag(inst), args)

	case inst&0x0f8000f0 == 0x00800090:
		name := "UMULL"
		switch (inst >> 21) & 3 {
		case 1:
			name = "UMLAL"
		case 2:
			name = "SMULL"
		case 3:
			name = "SMLAL"
		}
		return fmt.Sprintf("%s%s%s %s, %s, %s, %s", name, cond, sFlag(inst),
			reg(inst>>12), reg(inst>>16), reg(inst), reg(inst>>8))

	case inst&0x0fbf0fff == 0x010f0000:
		return fmt.Sprintf("MRS%s %s, %s", cond, reg(inst>>12), psrName(inst&(1<<22) != 0))

	case inst&0x0dbef000 == 0x0128f000:
		target := psrName(inst&(1<<22) != 0)
		if inst&(1<<16) == 0 {
			target += "_flg"
		}
		if inst&(1<<25) != 0 {
			return fmt.Sprintf("MSR%s %s, #0x%x", cond, target, rotatedImmediate(inst))
		}
		return fmt.Sprintf("MSR%s %s, %s", cond, target, reg(inst))

	case inst&0x0fb00ff0 == 0x01000090:
		name := "SWP"
		if inst&(1<<22) != 0 {
			name = "SWPB"
		}
		return fmt.Sprintf("%s%s %s, %s, [%s]", name, cond, reg(inst>>12), reg(inst), reg(inst>>16))

	case inst&0x0e000090 == 0x00000090:
		return halfTransfer(cond, inst)

	case inst&0x0f000000 == 0x0a000000:
		return fmt.Sprintf("B%s 0x%08x", cond, branchTarget(addr, inst))

	case inst&0x0f000000 == 0x0b000000:
		return fmt.Sprintf("BL%s 0x%08x", cond, branchTarget(addr, inst))

	case inst&0x0e000010 == 0x06000010:
		return fmt.Sprintf("UNDEF%s 0x%08x", cond, inst)

	case inst&0x0e000000 == 0x08000000:
		return blockTransfer(cond, inst)

	case inst&0x0c000000 == 0x00000000:
		return dataProcessing(cond, inst)

	case inst&0x0c000000 == 0x04000000:
		return singleTransfer(cond, inst)

	case inst&0x0f000000 == 0x0f000000:
		return fmt.Sprintf("SWI%s 0x%06x", cond, inst&0xffffff)
	}
	return fmt.Sprintf("DC.W 0x%08x", inst)
}

func sFlag(inst uint32) string {
	if inst&(1<<20) != 0 {
		return "S"
	}
	return ""
}

func psrName(spsr bool) string {
	if spsr {
		return "SPSR"
	}
	return "CPSR"
}

func branchTarget(addr uint32, inst uint32) uint32 {
	offset := int32(inst<<8) >> 6
	return addr + 8 + uint32(offset)
}

func dataProcessing(cond string, inst uint32) string {
	opcode := (inst >> 21) & 0xf
	name := aluNames[opcode]

	var op2 string
	if inst&(1<<25) != 0 {
		op2 = fmt.Sprintf("#0x%x", rotatedImmediate(inst))
	} else {
		op2 = shiftedRegister(inst)
	}

	switch {
	case opcode >= 8 && opcode <= 11: // tests, no destination
		return fmt.Sprintf("%s%s %s, %s", name, cond, reg(inst>>16), op2)
	case opcode == 13 || opcode == 15: // single operand
		return fmt.Sprintf("%s%s%s %s, %s", name, cond, sFlag(inst), reg(inst>>12), op2)
	}
	return fmt.Sprintf("%s%s%s %s, %s, %s", name, cond, sFlag(inst), reg(inst>>12), reg(inst>>16), op2)
}

func addressMode(inst uint32, offset string) string {
	rn := reg(inst >> 16)
	sign := ""
	if inst&(1<<23) == 0 {
		sign = "-"
	}
	if inst&(1<<24) == 0 {
		return fmt.Sprintf("[%s], %s%s", rn, sign, offset)
	}
	writeback := ""
	if inst&(1<<21) != 0 {
		writeback = "!"
	}
	return fmt.Sprintf("[%s, %s%s]%s", rn, sign, offset, writeback)
}

func singleTransfer(cond string, inst uint32) string {
	name := "STR"
	if inst&(1<<20) != 0 {
		name = "LDR"
	}
	if inst&(1<<22) != 0 {
		name += "B"
	}
	var offset string
	if inst&(1<<25) != 0 {
		offset = shiftedRegister(inst)
	} else {
		offset = fmt.Sprintf("#0x%x", inst&0xfff)
	}
	return fmt.Sprintf("%s%s %s, %s", name, cond, reg(inst>>12), addressMode(inst, offset))
}

func halfTransfer(cond string, inst uint32) string {
	var name string
	switch {
	case inst&(1<<20) == 0:
		name = "STRH"
	case inst&(1<<6) != 0 && inst&(1<<5) != 0:
		name = "LDRSH"
	case inst&(1<<6) != 0:
		name = "LDRSB"
	default:
		name = "LDRH"
	}
	var offset string
	if inst&(1<<22) != 0 {
		offset = fmt.Sprintf("#0x%x", (inst>>4)&0xf0|inst&0xf)
	} else {
		offset = reg(inst)
	}
	return fmt.Sprintf("%s%s %s, %s", name, cond, reg(inst>>12), addressMode(inst, offset))
}

func blockTransfer(cond string, inst uint32) string {
	name := "STM"
	if inst&(1<<20) != 0 {
		name = "LDM"
	}
	if inst&(1<<23) != 0 {
		name += "I"
	} else {
		name += "D"
	}
	if inst&(1<<24) != 0 {
		name += "B"
	} else {
		name += "A"
	}
	writeback := ""
	if inst&(1<<21) != 0 {
		writeback = "!"
	}
	psr := ""
	if inst&(1<<22) != 0 {
		psr = "^"
	}
	return fmt.Sprintf("%s%s %s%s, %s%s", name, cond, reg(inst>>16), writeback, regList(inst&0xffff), psr)
}

// Thumb formats one 16 bit instruction at addr.
func Thumb(addr uint32, inst uint16) string {
	w := uint32(inst)
	// Most formats name R0-R7 in 3 bit fields.
	lo := func(n uint32) string { return reg(n & 7) }

	switch {
	case inst&0xf800 == 0x1800:
		name := "ADD"
		if inst&(1<<9) != 0 {
			name = "SUB"
		}
		if inst&(1<<10) != 0 {
			return fmt.Sprintf("%s %s, %s, #%d", name, lo(w), lo(w>>3), (w>>6)&7)
		}
		return fmt.Sprintf("%s %s, %s, %s", name, lo(w), lo(w>>3), lo(w>>6))

	case inst&0xe000 == 0x0000:
		amount := (w >> 6) & 0x1f
		kind := (w >> 11) & 3
		if amount == 0 && kind != 0 {
			amount = 32
		}
		return fmt.Sprintf("%s %s, %s, #%d", shiftNames[kind], lo(w), lo(w>>3), amount)

	case inst&0xe000 == 0x2000:
		names := [4]string{"MOV", "CMP", "ADD", "SUB"}
		return fmt.Sprintf("%s %s, #0x%x", names[(w>>11)&3], lo(w>>8), w&0xff)

	case inst&0xfc00 == 0x4000:
		names := [16]string{
			"AND", "EOR", "LSL", "LSR", "ASR", "ADC", "SBC", "ROR",
			"TST", "NEG", "CMP", "CMN", "ORR", "MUL", "BIC", "MVN",
		}
		return fmt.Sprintf("%s %s, %s", names[(w>>6)&0xf], lo(w), lo(w>>3))

	case inst&0xfc00 == 0x4400:
		rd := w&7 | (w>>4)&8
		rs := (w >> 3) & 0xf
		switch (w >> 8) & 3 {
		case 0:
			return fmt.Sprintf("ADD %s, %s", reg(rd), reg(rs))
		case 1:
			return fmt.Sprintf("CMP %s, %s", reg(rd), reg(rs))
		case 2:
			return fmt.Sprintf("MOV %s, %s", reg(rd), reg(rs))
		}
		return fmt.Sprintf("BX %s", reg(rs))

	case inst&0xf800 == 0x4800:
		return fmt.Sprintf("LDR %s, [PC, #0x%x]", lo(w>>8), (w&0xff)<<2)

	case inst&0xf200 == 0x5000:
		name := "STR"
		if inst&(1<<11) != 0 {
			name = "LDR"
		}
		if inst&(1<<10) != 0 {
			name += "B"
		}
		return fmt.Sprintf("%s %s, [%s, %s]", name, lo(w), lo(w>>3), lo(w>>6))

	case inst&0xf200 == 0x5200:
		names := [4]string{"STRH", "LDSB", "LDRH", "LDSH"}
		name := names[(w>>10)&3]
		return fmt.Sprintf("%s %s, [%s, %s]", name, lo(w), lo(w>>3), lo(w>>6))

	case inst&0xe000 == 0x6000:
		name := "STR"
		if inst&(1<<11) != 0 {
			name = "LDR"
		}
		offset := (w >> 6) & 0x1f
		if inst&(1<<12) != 0 {
			name += "B"
		} else {
			offset <<= 2
		}
		return fmt.Sprintf("%s %s, [%s, #0x%x]", name, lo(w), lo(w>>3), offset)

	case inst&0xf000 == 0x8000:
		name := "STRH"
		if inst&(1<<11) != 0 {
			name = "LDRH"
		}
		return fmt.Sprintf("%s %s, [%s, #0x%x]", name, lo(w), lo(w>>3), (w>>6)&0x1f<<1)

	case inst&0xf000 == 0x9000:
		name := "STR"
		if inst&(1<<11) != 0 {
			name = "LDR"
		}
		return fmt.Sprintf("%s %s, [SP, #0x%x]", name, lo(w>>8), (w&0xff)<<2)

	case inst&0xf000 == 0xa000:
		base := "PC"
		if inst&(1<<11) != 0 {
			base = "SP"
		}
		return fmt.Sprintf("ADD %s, %s, #0x%x", lo(w>>8), base, (w&0xff)<<2)

	case inst&0xff00 == 0xb000:
		name := "ADD"
		if inst&(1<<7) != 0 {
			name = "SUB"
		}
		return fmt.Sprintf("%s SP, #0x%x", name, (w&0x7f)<<2)

	case inst&0xf600 == 0xb400:
		list := w & 0xff
		if inst&(1<<11) != 0 {
			if inst&(1<<8) != 0 {
				list |= 1 << 15
			}
			return fmt.Sprintf("POP %s", regList(list))
		}
		if inst&(1<<8) != 0 {
			list |= 1 << 14
		}
		return fmt.Sprintf("PUSH %s", regList(list))

	case inst&0xf000 == 0xc000:
		name := "STMIA"
		if inst&(1<<11) != 0 {
			name = "LDMIA"
		}
		return fmt.Sprintf("%s %s!, %s", name, lo(w>>8), regList(w&0xff))

	case inst&0xff00 == 0xdf00:
		return fmt.Sprintf("SWI 0x%02x", w&0xff)

	case inst&0xf000 == 0xd000:
		offset := uint32(int32(int8(w)) << 1)
		return fmt.Sprintf("B%s 0x%08x", condNames[(w>>8)&0xf], addr+4+offset)

	case inst&0xf800 == 0xe000:
		offset := uint32(int32(w<<21) >> 20)
		return fmt.Sprintf("B 0x%08x", addr+4+offset)

	case inst&0xf800 == 0xf000:
		return fmt.Sprintf("BL high #0x%x", w&0x7ff)

	case inst&0xf800 == 0xf800:
		return fmt.Sprintf("BL low #0x%x", w&0x7ff)
	}
	return fmt.Sprintf("DC.H 0x%04x", inst)
}
