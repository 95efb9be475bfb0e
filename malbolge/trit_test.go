package malbolge

import (
	"testing"
)

func TestRotateRightKnownValues(t *testing.T) {
	cases := []struct {
		in   uint16
		want uint16
	}{
		{0, 0},
		{1, 19683},
		{3, 1},
		{9, 3},
		{19683, 6561},
		{59048, 59048},
	}
	for _, c := range cases {
		if got := RotateRight(c.in); got != c.want {
			t.Errorf("RotateRight(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestRotateRightTenTimesIsIdentity(t *testing.T) {
	for _, v := range []uint16{0, 1, 2, 42, 12345, 29524, 59047, 59048} {
		got := v
		for i := 0; i < TernaryDigits; i++ {
			got = RotateRight(got)
		}
		if got != v {
			t.Errorf("rotating [%d] ten times yielded [%d]", v, got)
		}
	}
}

func TestCrazyBoundaryPairs(t *testing.T) {
	cases := []struct {
		x, y uint16
		want uint16
	}{
		{0, 0, 29524},
		{0, 59048, 59048},
		{59048, 0, 0},
		{59048, 59048, 29524},
		{1, 0, 29523},
	}
	for _, c := range cases {
		if got := Crazy(c.x, c.y); got != c.want {
			t.Errorf("Crazy(%d, %d) = %d, want %d", c.x, c.y, got, c.want)
		}
	}
}

func TestCrazyDigitTable(t *testing.T) {
	// Single-trit inputs exercise the 3x3 table directly: the low digit comes
	// from the table, every higher digit from the (0,0) entry.
	base := uint16(29524 - 1) // nine high trits of 1, low trit 0
	for x := uint16(0); x < 3; x++ {
		for y := uint16(0); y < 3; y++ {
			want := base + crazyTable[x*3+y]
			if got := Crazy(x, y); got != want {
				t.Errorf("Crazy(%d, %d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestCrazyStaysInRange(t *testing.T) {
	for _, x := range []uint16{0, 1, 2, 100, 29524, 59048} {
		for _, y := range []uint16{0, 1, 2, 100, 29524, 59048} {
			if got := Crazy(x, y); got >= MaxAddressSpace {
				t.Errorf("Crazy(%d, %d) = %d escaped the address space", x, y, got)
			}
		}
	}
}
