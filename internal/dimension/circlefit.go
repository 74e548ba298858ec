package dimension

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"draft-engine/pkg/geometry"
)

// FitCircle fits a circle to three or more points by algebraic least
// squares, solving x*D + y*E + F = -(x^2 + y^2) for the circle parameters.
// Collinear or near-collinear points produce no usable circle and return an
// error.
func FitCircle(points []geometry.Point2D) (center geometry.Point2D, radius float64, err error) {
	n := len(points)
	if n < 3 {
		return geometry.Point2D{}, 0, fmt.Errorf("fit circle: need at least 3 points, got %d", n)
	}

	A := mat.NewDense(n, 3, nil)
	B := mat.NewVecDense(n, nil)
	for i, p := range points {
		A.Set(i, 0, p.X)
		A.Set(i, 1, p.Y)
		A.Set(i, 2, 1)
		B.SetVec(i, -(p.X*p.X + p.Y*p.Y))
	}

	var qr mat.QR
	qr.Factorize(A)

	var params mat.VecDense
	if err := qr.SolveVecTo(&params, false, B); err != nil {
		return geometry.Point2D{}, 0, fmt.Errorf("fit circle: %w", err)
	}

	d := params.AtVec(0)
	e := params.AtVec(1)
	f := params.AtVec(2)

	center = geometry.Point2D{X: -d / 2, Y: -e / 2}
	rr := (d*d+e*e)/4 - f
	if math.IsNaN(rr) || math.IsInf(rr, 0) || rr <= minSpan {
		return geometry.Point2D{}, 0, fmt.Errorf("fit circle: points are collinear")
	}
	return center, math.Sqrt(rr), nil
}
