package manifold

import (
	"context"
	"fmt"
)

// fourPointDelta computes the normalized four-point Gromov hyperbolicity
// of the sampled vectors.
//
// For every 4-subset {a,b,c,d} the three pairwise-distance sums are
//
//	S1 = d(a,b)+d(c,d)   S2 = d(a,c)+d(b,d)   S3 = d(a,d)+d(b,c)
//
// and the tuple's contribution is half the gap between the two largest
// sums. The classical delta is the maximum contribution; a tree metric
// yields zero. The returned value is normalized by the sample diameter and
// inverted so that higher means more tree-like, matching the orientation
// the renderer expects.
//
// The scan honors ctx and gives up with ErrBudgetExceeded once tupleBudget
// 4-tuples have been visited, so an oversized sample degrades to the
// heuristic path instead of stalling the request.
func fourPointDelta(ctx context.Context, vectors [][]float64, tupleBudget int) (float64, error) {
	n := len(vectors)
	if n < 4 {
		return 0, fmt.Errorf("%w: need at least 4 points, have %d", ErrComputation, n)
	}

	// Precompute the distance matrix; O(N^2) memory on a sample <= 30.
	dist := make([][]float64, n)
	diameter := 0.0
	for i := range dist {
		dist[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := euclidean(vectors[i], vectors[j])
			dist[i][j] = d
			dist[j][i] = d
			if d > diameter {
				diameter = d
			}
		}
	}
	if diameter == 0 {
		// All points coincide; degenerate but defined.
		return 0, nil
	}

	maxGap := 0.0
	visited := 0
	for a := 0; a < n-3; a++ {
		for b := a + 1; b < n-2; b++ {
			for c := b + 1; c < n-1; c++ {
				if err := ctx.Err(); err != nil {
					return 0, fmt.Errorf("%w: %v", ErrBudgetExceeded, err)
				}
				for d := c + 1; d < n; d++ {
					visited++
					if visited > tupleBudget {
						return 0, fmt.Errorf("%w: visited %d tuples", ErrBudgetExceeded, visited)
					}
					s1 := dist[a][b] + dist[c][d]
					s2 := dist[a][c] + dist[b][d]
					s3 := dist[a][d] + dist[b][c]
					if gap := halfGapOfTwoLargest(s1, s2, s3); gap > maxGap {
						maxGap = gap
					}
				}
			}
		}
	}

	// A small gap relative to the diameter means the four-point condition
	// nearly holds everywhere, i.e. the sample is tree-like.
	return clamp01(1 - 2*maxGap/diameter), nil
}

// halfGapOfTwoLargest returns half the difference between the two largest
// of the three sums.
func halfGapOfTwoLargest(s1, s2, s3 float64) float64 {
	if s1 < s2 {
		s1, s2 = s2, s1
	}
	if s1 < s3 {
		s1, s3 = s3, s1
	}
	if s2 < s3 {
		s2 = s3
	}
	return (s1 - s2) / 2
}
