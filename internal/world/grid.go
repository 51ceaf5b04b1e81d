package world

// ManhattanDistance returns the grid distance between two towns, counting
// horizontal and vertical steps.
func ManhattanDistance(a, b *Town) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// ChebyshevDistance returns the number of king moves between two towns.
// Towns at distance 1 or less form a neighbourhood.
func ChebyshevDistance(a, b *Town) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	if dx > dy {
		return dx
	}
	return dy
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
