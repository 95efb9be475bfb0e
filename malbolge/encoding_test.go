package malbolge

import (
	"strings"
	"testing"
)

func TestTranslationTablesArePermutations(t *testing.T) {
	for name, table := range map[string]string{
		"normal":     normalTranslate,
		"encryption": encryptionTranslate,
	} {
		if len(table) != 94 {
			t.Fatalf("%s table length [%d] is not 94", name, len(table))
		}
		var seen [128]bool
		for i := 0; i < len(table); i++ {
			ch := table[i]
			if ch < 33 || ch > 126 {
				t.Errorf("%s table entry [%d] = [%d] outside printable range", name, i, ch)
			}
			if seen[ch] {
				t.Errorf("%s table repeats character [%c]", name, ch)
			}
			seen[ch] = true
		}
	}
}

func TestRoundTripOpcodes(t *testing.T) {
	opcodes := "i<ov"
	ascii, err := ReverseNormalize(opcodes, 0)
	if err != nil {
		t.Fatalf("Unexpected failure calling ReverseNormalize. %v", err)
	}
	back, err := Normalize(ascii)
	if err != nil {
		t.Fatalf("Unexpected failure calling Normalize. %v", err)
	}
	if back != opcodes {
		t.Errorf("Round trip produced [%s], want [%s]", back, opcodes)
	}
}

func TestRoundTripWithOffset(t *testing.T) {
	prefix := "i<"
	suffix := "p"
	asciiPrefix, err := ReverseNormalize(prefix, 0)
	if err != nil {
		t.Fatalf("Unexpected failure encoding prefix. %v", err)
	}
	asciiSuffix, err := ReverseNormalize(suffix, len(prefix))
	if err != nil {
		t.Fatalf("Unexpected failure encoding suffix. %v", err)
	}
	back, err := Normalize(asciiPrefix + asciiSuffix)
	if err != nil {
		t.Fatalf("Unexpected failure decoding combined source. %v", err)
	}
	if back != prefix+suffix {
		t.Errorf("Offset round trip produced [%s], want [%s]", back, prefix+suffix)
	}
}

func TestRoundTripAllOpcodes(t *testing.T) {
	opcodes := ValidInstructions + ValidInstructions
	ascii, err := ReverseNormalize(opcodes, 0)
	if err != nil {
		t.Fatalf("Unexpected failure calling ReverseNormalize. %v", err)
	}
	back, err := Normalize(ascii)
	if err != nil {
		t.Fatalf("Unexpected failure calling Normalize. %v", err)
	}
	if back != opcodes {
		t.Errorf("Round trip produced [%s], want [%s]", back, opcodes)
	}
}

func TestReverseNormalizeRejectsInvalidOpcode(t *testing.T) {
	if _, err := ReverseNormalize("x", 0); err == nil {
		t.Errorf("Unexpected success encoding invalid opcode")
	}
}

func TestNormalizeRejectsNonInstructionDecode(t *testing.T) {
	// '+' at position 0 decodes through index (43-33) = 10, which is 'M'.
	if _, err := Normalize("+"); err == nil {
		t.Errorf("Unexpected success decoding a character that is not an instruction")
	}
}

func TestNormalizeRejectsUnprintable(t *testing.T) {
	if _, err := Normalize("\n"); err == nil {
		t.Errorf("Unexpected success decoding unprintable input")
	}
}

func TestLengthGuards(t *testing.T) {
	long := strings.Repeat("i", MaxProgramLength+1)
	if _, err := ReverseNormalize(long, 0); err == nil {
		t.Errorf("Unexpected success encoding oversize program")
	}
	if _, err := ReverseNormalize("i", MaxProgramLength); err == nil {
		t.Errorf("Unexpected success encoding past the address space")
	}
}
