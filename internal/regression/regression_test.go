package regression

import (
	"errors"
	"math"
	"testing"

	"github.com/hashforge/gasplot-cli/internal/dataset"
)

const tol = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) <= tol*(1+math.Abs(b))
}

func TestFitExactLine(t *testing.T) {
	// gas = 1000 + 50*length, no noise
	var rows []dataset.NumericRow
	for l := 10; l <= 100; l += 10 {
		rows = append(rows, dataset.NumericRow{Length: l, Gas: 1000 + 50*float64(l)})
	}
	res, err := Fit(rows)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if !approx(res.Intercept, 1000) {
		t.Errorf("intercept = %v, want 1000", res.Intercept)
	}
	if !approx(res.Slope, 50) {
		t.Errorf("slope = %v, want 50", res.Slope)
	}
	if !approx(res.R2, 1) {
		t.Errorf("R2 = %v, want 1", res.R2)
	}
	if res.N != len(rows) {
		t.Errorf("N = %d, want %d", res.N, len(rows))
	}
	// Perfect fit leaves no residual: slope error collapses to zero and
	// the zero-slope null is rejected outright.
	if !approx(res.StdErr, 0) {
		t.Errorf("StdErr = %v, want 0", res.StdErr)
	}
	if !approx(res.PValue, 0) {
		t.Errorf("PValue = %v, want 0", res.PValue)
	}
}

func TestFitOrderInvariance(t *testing.T) {
	rows := []dataset.NumericRow{
		{Length: 10, Gas: 1230},
		{Length: 200, Gas: 11800},
		{Length: 50, Gas: 3400},
		{Length: 500, Gas: 26100},
		{Length: 100, Gas: 6350},
	}
	shuffled := []dataset.NumericRow{rows[3], rows[0], rows[4], rows[1], rows[2]}

	a, err := Fit(rows)
	if err != nil {
		t.Fatalf("Fit(rows): %v", err)
	}
	b, err := Fit(shuffled)
	if err != nil {
		t.Fatalf("Fit(shuffled): %v", err)
	}
	if !approx(a.Intercept, b.Intercept) || !approx(a.Slope, b.Slope) || !approx(a.R2, b.R2) {
		t.Errorf("shuffled fit differs: %+v vs %+v", a, b)
	}
}

func TestFitInsufficientData(t *testing.T) {
	for _, rows := range [][]dataset.NumericRow{
		nil,
		{{Length: 10, Gas: 1200}},
	} {
		if _, err := Fit(rows); !errors.Is(err, ErrInsufficientData) {
			t.Errorf("Fit(%d rows) err = %v, want ErrInsufficientData", len(rows), err)
		}
	}
}

func TestFitTwoPoints(t *testing.T) {
	res, err := Fit([]dataset.NumericRow{
		{Length: 0, Gas: 700},
		{Length: 100, Gas: 5700},
	})
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if !approx(res.Intercept, 700) || !approx(res.Slope, 50) {
		t.Errorf("fit = %+v, want intercept 700 slope 50", res)
	}
	// No residual degrees of freedom with two points.
	if !math.IsNaN(res.StdErr) || !math.IsNaN(res.PValue) {
		t.Errorf("StdErr/PValue = %v/%v, want NaN/NaN", res.StdErr, res.PValue)
	}
}

func TestFitBenchmarkTriple(t *testing.T) {
	// Three collinear points on gas = 700 + 50*length.
	res, err := Fit([]dataset.NumericRow{
		{Length: 10, Gas: 1200},
		{Length: 50, Gas: 3200},
		{Length: 100, Gas: 5700},
	})
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if !approx(res.Intercept, 700) {
		t.Errorf("intercept = %v, want 700", res.Intercept)
	}
	if !approx(res.Slope, 50) {
		t.Errorf("slope = %v, want 50", res.Slope)
	}
	if got := res.Equation(); got != "y = 700.00 + 50.00x (R² = 1.0000)" {
		t.Errorf("Equation() = %q", got)
	}
}

func TestPredictY(t *testing.T) {
	r := Result{Intercept: 700, Slope: 50}
	if got := r.PredictY(10); !approx(got, 1200) {
		t.Errorf("PredictY(10) = %v, want 1200", got)
	}
	if got := r.PredictY(0); !approx(got, 700) {
		t.Errorf("PredictY(0) = %v, want 700", got)
	}
}
