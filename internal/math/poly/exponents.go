package poly

import (
	"fmt"
	"sort"
)

const (
	// MaxDegree is the highest supported polynomial degree.
	MaxDegree = 9
	// MaxDimension is the highest supported number of variables.
	MaxDimension = 5
)

// Exponents returns the exponent vectors of all the terms of a complete polynomial
// with the given number of variables and degree.
//
// Each vector has dimension entries in 0..degree adding up to at most degree,
// so there are (dimension+degree) over degree of them. They are ordered by
// descending relevance: higher total degree first, then higher single
// exponent, then exponents on the leading variables.
func Exponents(dimension, degree int) ([][]int, error) {
	if err := checkDomain(dimension, degree); err != nil {
		return nil, err
	}

	if degree == 0 {
		return [][]int{make([]int, dimension)}, nil
	}

	points := [][]int{{}}
	for d := 0; d < dimension; d++ {
		points = appendDimension(points, degree)
	}

	valid := make([]scored, 0, len(points))
	for _, p := range points {
		if sum(p) <= degree {
			valid = append(valid, scored{exponents: p, score: relevance(p)})
		}
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].score > valid[j].score
	})

	ee := make([][]int, len(valid))
	for i, v := range valid {
		ee[i] = v.exponents
	}
	return ee, nil
}

type scored struct {
	exponents []int
	score     int
}

// appendDimension replaces every point with degree+1 points one coordinate longer.
func appendDimension(points [][]int, degree int) [][]int {
	next := make([][]int, 0, len(points)*(degree+1))
	for _, p := range points {
		for v := 0; v <= degree; v++ {
			np := make([]int, len(p)+1)
			copy(np, p)
			np[len(p)] = v
			next = append(next, np)
		}
	}
	return next
}

// relevance scores an exponent vector for ordering.
func relevance(exponents []int) int {
	n := len(exponents)
	weighted := 0
	for i, e := range exponents {
		weighted += (1 << (n - i)) * e
	}
	return 1000000*sum(exponents) + 1000*maxOf(exponents) + weighted
}

func checkDomain(dimension, degree int) error {
	if degree < 0 || degree > MaxDegree {
		return fmt.Errorf("degree %d out of range [0, %d]: %w", degree, MaxDegree, ErrDomainTooLarge)
	}
	if dimension < 1 || dimension > MaxDimension {
		return fmt.Errorf("dimension %d out of range [1, %d]: %w", dimension, MaxDimension, ErrDomainTooLarge)
	}
	return nil
}

func sum(ii []int) int {
	s := 0
	for _, i := range ii {
		s += i
	}
	return s
}

func maxOf(ii []int) int {
	m := 0
	for _, i := range ii {
		if i > m {
			m = i
		}
	}
	return m
}
