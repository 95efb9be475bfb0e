package malbolge

// Ternary arithmetic on 10-trit Malbolge words. Every register and tape cell
// is a value in [0, MaxAddressSpace).

const (
	// MaxAddressSpace is 3^10, the size of the Malbolge address space.
	MaxAddressSpace = 59049
	// TernaryDigits is the trit width of a machine word.
	TernaryDigits = 10
)

// topTrit is the place value of the most significant trit, 3^9.
const topTrit = 19683

// crazyTable holds Crazy(x, y) for single trits, indexed by x*3 + y.
var crazyTable = [9]uint16{1, 1, 2, 0, 0, 2, 0, 2, 1}

// RotateRight moves the least significant trit of v to the most significant
// position. v must be in [0, MaxAddressSpace).
func RotateRight(v uint16) uint16 {
	return v/3 + (v%3)*topTrit
}

// Crazy applies Malbolge's digit-wise ternary operation to two 10-trit words.
func Crazy(x, y uint16) uint16 {
	var total, power uint16 = 0, 1
	for i := 0; i < TernaryDigits; i++ {
		total += crazyTable[(x%3)*3+y%3] * power
		x /= 3
		y /= 3
		power *= 3
	}
	return total
}
