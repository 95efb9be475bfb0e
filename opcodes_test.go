package malbolge_gen

import (
	"testing"
)

func TestPackUnpackRoundTrip(t *testing.T) {
	for _, opcodes := range []string{"v", "iv", "i<ov", "op*op*<v", BootstrapPrefix() + "v"} {
		packed, err := PackOpcodes(opcodes)
		if err != nil {
			t.Fatalf("Unexpected failure packing [%s]. %v", opcodes, err)
		}
		back, err := UnpackOpcodes(packed)
		if err != nil {
			t.Fatalf("Unexpected failure unpacking [%s]. %v", opcodes, err)
		}
		if back != opcodes {
			t.Errorf("Round trip produced [%s], want [%s]", back, opcodes)
		}
	}
}

func TestPackedSizeIsHalved(t *testing.T) {
	packed, err := PackOpcodes("op*o")
	if err != nil {
		t.Fatalf("Unexpected failure packing. %v", err)
	}
	if len(packed) != 2 {
		t.Errorf("Packed length [%d] is not 2", len(packed))
	}
}

func TestPackRejectsUnknownOpcode(t *testing.T) {
	if _, err := PackOpcodes("ox"); err == nil {
		t.Errorf("Unexpected success packing unknown opcode")
	}
}

func TestUnpackRejectsUnknownCode(t *testing.T) {
	if _, err := UnpackOpcodes([]byte{0x9f}); err == nil {
		t.Errorf("Unexpected success unpacking reserved symbol code")
	}
}
