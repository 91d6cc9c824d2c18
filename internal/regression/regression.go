// Package regression fits ordinary least squares lines of gas used on
// message length.
package regression

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/hashforge/gasplot-cli/internal/dataset"
)

// ErrInsufficientData indicates fewer than two points were supplied;
// a least-squares line is undefined below that.
var ErrInsufficientData = errors.New("need at least 2 points for a linear fit")

// Result is an immutable OLS fit. Intercept is the base gas cost and Slope
// the marginal cost per byte. StdErr and PValue describe the slope estimate;
// both are NaN when the fit has no residual degrees of freedom (n == 2).
type Result struct {
	Intercept float64
	Slope     float64
	R2        float64
	StdErr    float64
	PValue    float64
	N         int
}

// Fit computes the least-squares line over the given rows. The result is a
// pure function of the input set; row order does not matter.
func Fit(rows []dataset.NumericRow) (Result, error) {
	if len(rows) < 2 {
		return Result{}, fmt.Errorf("%w: have %d", ErrInsufficientData, len(rows))
	}

	xs := make([]float64, len(rows))
	ys := make([]float64, len(rows))
	for i, r := range rows {
		xs[i] = float64(r.Length)
		ys[i] = r.Gas
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	r2 := stat.RSquared(xs, ys, nil, alpha, beta)

	res := Result{
		Intercept: alpha,
		Slope:     beta,
		R2:        r2,
		StdErr:    math.NaN(),
		PValue:    math.NaN(),
		N:         len(rows),
	}

	// Slope standard error and the two-sided p-value for a zero-slope null
	// need n-2 residual degrees of freedom.
	if n := len(rows); n > 2 {
		xMean := stat.Mean(xs, nil)
		var sse, sxx float64
		for i := range xs {
			resid := ys[i] - (alpha + beta*xs[i])
			sse += resid * resid
			dx := xs[i] - xMean
			sxx += dx * dx
		}
		if sxx > 0 {
			res.StdErr = math.Sqrt(sse / float64(n-2) / sxx)
			if res.StdErr > 0 {
				t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 2)}
				res.PValue = 2 * t.Survival(math.Abs(beta)/res.StdErr)
			} else {
				// Perfect fit: the slope is exact.
				res.PValue = 0
			}
		}
	}
	return res, nil
}

// PredictY evaluates the fitted line at x.
func (r Result) PredictY(x float64) float64 {
	return r.Intercept + r.Slope*x
}

// Equation renders the fit the way it appears in chart legends.
func (r Result) Equation() string {
	return fmt.Sprintf("y = %.2f + %.2fx (R² = %.4f)", r.Intercept, r.Slope, r.R2)
}
