package math

// Series generates limit values starting at from with the given step.
func Series(from, step float64, limit int) []float64 {
	xx := make([]float64, 0, limit)
	for i := 0; i < limit; i++ {
		xx = append(xx, from+step*float64(i))
	}
	return xx
}

// Grid returns every point of the cartesian product of the given series over dimension coordinates.
// The first coordinate varies slowest.
func Grid(dimension int, series []float64) [][]float64 {
	points := [][]float64{{}}
	for d := 0; d < dimension; d++ {
		next := make([][]float64, 0, len(points)*len(series))
		for _, p := range points {
			for _, s := range series {
				np := make([]float64, len(p)+1)
				copy(np, p)
				np[len(p)] = s
				next = append(next, np)
			}
		}
		points = next
	}
	return points
}
