package malbolge

import (
	"fmt"
)

// Translation tables between printable ASCII Malbolge source and the
// normalized opcode alphabet. The byte values are load-bearing: program files
// only stay portable across toolkits if these match the reference tables
// exactly.
const (
	normalTranslate = "+b(29e*j1VMEKLyC})8&m#~W>qxdRp0wkrUo[D7,XTcA\"lI.v%{gJh4G\\-=O@5`_3i<?Z';FNQuY]szf$!BS/|t:Pn6^Ha"

	encryptionTranslate = "5z]&gqtyfr$(we4{WP)H-Zn,[%\\3dL+Q;>U!pJS72FhOA1CB6v^=I_0/8|jsb9m<.TVac`uY*MK'X~xDl}REokN:#?G\"i@"
)

// ValidInstructions is the normalized Malbolge instruction alphabet.
const ValidInstructions = "i</*jpov"

// MaxProgramLength caps loaded programs at one opcode per addressable cell.
const MaxProgramLength = MaxAddressSpace

// opcodeIndex maps an instruction byte to its position in normalTranslate,
// or -1 for bytes outside the instruction alphabet.
var opcodeIndex [128]int16

func init() {
	for i := range opcodeIndex {
		opcodeIndex[i] = -1
	}
	for i := 0; i < len(normalTranslate); i++ {
		op := normalTranslate[i]
		if IsOpcode(op) {
			opcodeIndex[op] = int16(i)
		}
	}
}

// IsOpcode reports whether b is one of the eight Malbolge instructions.
func IsOpcode(b byte) bool {
	switch b {
	case 'i', '<', '/', '*', 'j', 'p', 'o', 'v':
		return true
	}
	return false
}

// Normalize converts printable ASCII Malbolge source to opcodes. The character
// at position k decodes through normalTranslate[(ch + k - 33) mod 94]; any
// character that is not printable or decodes outside the instruction set is a
// load error.
func Normalize(source string) (string, error) {
	if len(source) > MaxProgramLength {
		return "", fmt.Errorf("program length [%d] exceeds Malbolge maximum [%d]", len(source), MaxProgramLength)
	}
	ops := make([]byte, len(source))
	for i := 0; i < len(source); i++ {
		ch := source[i]
		if ch < 33 || ch > 126 {
			return "", fmt.Errorf("byte [%d] at position [%d] is not printable ASCII", ch, i)
		}
		op := normalTranslate[(int(ch)-33+i)%94]
		if !IsOpcode(op) {
			return "", fmt.Errorf("character [%c] at position [%d] decodes to [%c], which is not a Malbolge instruction", ch, i, op)
		}
		ops[i] = op
	}
	return string(ops), nil
}

// ReverseNormalize renders opcodes as the printable ASCII source that decodes
// back to them when loaded starting at tape position startIndex.
func ReverseNormalize(opcodes string, startIndex int) (string, error) {
	if startIndex+len(opcodes) > MaxProgramLength {
		return "", fmt.Errorf("program length [%d] exceeds Malbolge maximum [%d]", startIndex+len(opcodes), MaxProgramLength)
	}
	out := make([]byte, len(opcodes))
	for i := 0; i < len(opcodes); i++ {
		op := opcodes[i]
		idx := int(-1)
		if op < 128 {
			idx = int(opcodeIndex[op])
		}
		if idx < 0 {
			return "", fmt.Errorf("invalid opcode [%c] at position [%d]", op, i)
		}
		offset := (idx - (startIndex + i)) % 94
		if offset < 0 {
			offset += 94
		}
		out[i] = byte(offset + 33)
	}
	return string(out), nil
}
