package goquad_test

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/integrate/quad"

	"github.com/njchilds90/goquad"
)

func TestGaussLegendre_XSquaredTwoPoints(t *testing.T) {
	res, err := goquad.GaussLegendre("x^2", 0, 1, 0.333333, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !scalar.EqualWithinAbs(res.Result, 1.0/3, 1e-14) {
		t.Errorf("want 1/3, got %v", res.Result)
	}
	if want := goquad.ErrorMetric(0.333333, res.Result); res.Error != want {
		t.Errorf("want error %v, got %v", want, res.Error)
	}
	if len(res.Abscissas) != 2 || len(res.Weight) != 2 {
		t.Errorf("want 2 abscissas and weights, got %d and %d", len(res.Abscissas), len(res.Weight))
	}
}

func TestGaussLegendre_ReportsCanonicalNodes(t *testing.T) {
	res, err := goquad.GaussLegendre("x", 3, 7, 20, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	xs, ws, _ := goquad.LegendreNodes(4)
	for i := range xs {
		if res.Abscissas[i] != xs[i] || res.Weight[i] != ws[i] {
			t.Errorf("node %d: want (%v, %v) on [-1, 1], got (%v, %v)", i, xs[i], ws[i], res.Abscissas[i], res.Weight[i])
		}
	}
}

func TestGaussLegendre_DegreeOfExactness(t *testing.T) {
	const a, b = -0.5, 1.5
	for n := 1; n <= 8; n++ {
		d := 2*n - 1
		eq := fmt.Sprintf("x^%d + 2*x^%d + 1", d, d-1)
		want := (math.Pow(b, float64(d+1))-math.Pow(a, float64(d+1)))/float64(d+1) +
			2*(math.Pow(b, float64(d))-math.Pow(a, float64(d)))/float64(d) +
			(b - a)
		res, err := goquad.GaussLegendre(eq, a, b, want, n)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if !scalar.EqualWithinAbsOrRel(res.Result, want, 1e-12, 1e-12) {
			t.Errorf("n=%d, degree %d: want %v, got %v", n, d, want, res.Result)
		}
	}
}

func TestGaussLegendre_ConstantFunction(t *testing.T) {
	for n := 1; n <= 6; n++ {
		res, err := goquad.GaussLegendre("-4", 1, 3.5, -10, n)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if !scalar.EqualWithinAbs(res.Result, -10, 1e-12) {
			t.Errorf("n=%d: want -10, got %v", n, res.Result)
		}
	}
}

func TestGaussLegendre_AgreesWithGonumFixed(t *testing.T) {
	in, _ := goquad.New(goquad.DefaultConfig())
	f := func(x float64) float64 { return math.Exp(-x*x) * math.Cos(3*x) }
	for n := 1; n <= 15; n++ {
		want := quad.Fixed(f, -1, 2, n, quad.Legendre{}, 0)
		res, err := in.GaussLegendreFunc(goquad.Func(f), -1, 2, want, n)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if !scalar.EqualWithinAbsOrRel(res.Result, want, 1e-12, 1e-12) {
			t.Errorf("n=%d: want %v, got %v", n, want, res.Result)
		}
	}
}

func TestGaussLegendre_ReversedInterval(t *testing.T) {
	fwd, err := goquad.GaussLegendre("exp(x)", 0, 1, 0, 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rev, err := goquad.GaussLegendre("exp(x)", 1, 0, 0, 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !scalar.EqualWithinAbs(fwd.Result, -rev.Result, 1e-15) {
		t.Errorf("want %v, got %v", -fwd.Result, rev.Result)
	}
}

func TestGaussLegendre_Errors(t *testing.T) {
	if _, err := goquad.GaussLegendre("***invalid", 0, 1, 0, 3); !errors.Is(err, goquad.ErrInvalidEquation) {
		t.Errorf("want ErrInvalidEquation, got %v", err)
	}
	if _, err := goquad.GaussLegendre("x", 0, 1, 0, 0); !errors.Is(err, goquad.ErrConfig) {
		t.Errorf("points=0: want ErrConfig, got %v", err)
	}
	if _, err := goquad.GaussLegendre("x", math.Inf(-1), 1, 0, 3); !errors.Is(err, goquad.ErrConfig) {
		t.Errorf("infinite bound: want ErrConfig, got %v", err)
	}
}

func TestIntegrator_ConcurrentUse(t *testing.T) {
	in, _ := goquad.New(goquad.DefaultConfig())
	want, err := in.GaussLegendre("sin(x)^2", 0, math.Pi, math.Pi/2, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var wg sync.WaitGroup
	results := make([]float64, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := in.GaussLegendre("sin(x)^2", 0, math.Pi, math.Pi/2, 12)
			if err != nil {
				t.Errorf("goroutine %d: %v", i, err)
				return
			}
			results[i] = res.Result
		}(i)
	}
	wg.Wait()

	for i, r := range results {
		if r != want.Result {
			t.Errorf("goroutine %d: want %v, got %v", i, want.Result, r)
		}
	}
}
