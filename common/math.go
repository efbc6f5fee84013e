package common

// TileSize is the default tile edge in pixels.
const TileSize = 32

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// FloorDiv divides with flooring so negative coordinates round toward
// negative infinity instead of zero.
func FloorDiv(a, n int) int {
	q := a / n
	if a%n != 0 && (a < 0) != (n < 0) {
		q--
	}
	return q
}
