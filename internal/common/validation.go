package common

// AxialDistance is the hex step distance between two axial coordinates
func AxialDistance(q1, r1, q2, r2 int) int {
	dq, dr := q1-q2, r1-r2
	return Max(Max(Abs(dq), Abs(dr)), Abs(dq+dr))
}

// IsValidAxial checks if (q, r) lies on a hexagonal board of the given radius
// centred on the origin
func IsValidAxial(q, r, radius int) bool {
	return radius >= 0 && AxialDistance(q, r, 0, 0) <= radius
}

// HexCount is the number of cells on a hexagonal board of the given radius
func HexCount(radius int) int {
	if radius < 0 {
		return 0
	}
	return 3*radius*(radius+1) + 1
}
