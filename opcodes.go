package malbolge_gen

import (
	"fmt"
)

// Archive rows store opcode strings packed at 4 bits per symbol: code 0 pads
// the final byte, codes 1..8 cover the instruction alphabet.

var packCodes = [128]byte{}
var unpackSymbols = [9]byte{0, 'i', '<', '/', '*', 'j', 'p', 'o', 'v'}

func init() {
	for code := 1; code < len(unpackSymbols); code++ {
		packCodes[unpackSymbols[code]] = byte(code)
	}
}

// PackOpcodes compresses an opcode string for blob storage.
func PackOpcodes(opcodes string) ([]byte, error) {
	packed := make([]byte, (len(opcodes)+1)/2)
	for i := 0; i < len(opcodes); i++ {
		op := opcodes[i]
		var code byte
		if op < 128 {
			code = packCodes[op]
		}
		if code == 0 {
			return nil, fmt.Errorf("unknown opcode [%c] at position [%d]", op, i)
		}
		if i%2 == 0 {
			packed[i/2] = code << 4
		} else {
			packed[i/2] |= code
		}
	}
	return packed, nil
}

// UnpackOpcodes reverses PackOpcodes.
func UnpackOpcodes(packed []byte) (string, error) {
	ops := make([]byte, 0, len(packed)*2)
	for i, b := range packed {
		for _, code := range [2]byte{b >> 4, b & 0x0f} {
			if code == 0 {
				continue
			}
			if int(code) >= len(unpackSymbols) {
				return "", fmt.Errorf("unknown symbol code [%d] in packed byte [%d]", code, i)
			}
			ops = append(ops, unpackSymbols[code])
		}
	}
	return string(ops), nil
}
