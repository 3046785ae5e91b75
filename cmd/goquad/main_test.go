package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/njchilds90/goquad"
)

func run(t *testing.T, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	var out bytes.Buffer
	cli := CLI{Globals: Globals{out: &out}}
	parser, err := newParser(&cli)
	if err != nil {
		t.Fatalf("newParser: %v", err)
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		return &out, err
	}
	return &out, ctx.Run()
}

func TestTrapezoidalCommand(t *testing.T) {
	out, err := run(t, "trapezoidal", "x^2", "0", "1", "-n", "4", "--true", "0.333333", "--compact")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var res goquad.IntegralResult
	if err := json.Unmarshal(out.Bytes(), &res); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if res.Result != 0.34375 || res.Segments != 4 {
		t.Errorf("want 0.34375 over 4 segments, got %+v", res)
	}
}

func TestRombergCommand_ExpressionBounds(t *testing.T) {
	out, err := run(t, "romberg", "sin(x)", "0", "pi", "--true", "2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var res goquad.RombergResult
	if err := json.Unmarshal(out.Bytes(), &res); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if math.Abs(res.Estimate-2) > 1e-10 {
		t.Errorf("want 2, got %v", res.Estimate)
	}
}

func TestGaussCommand(t *testing.T) {
	out, err := run(t, "gauss", "-p", "2", "x^2", "0", "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var res goquad.GaussIntegralResult
	if err := json.Unmarshal(out.Bytes(), &res); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if math.Abs(res.Result-1.0/3) > 1e-14 || len(res.Abscissas) != 2 {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestNodesCommand(t *testing.T) {
	out, err := run(t, "nodes", "3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var nodes map[string][]float64
	if err := json.Unmarshal(out.Bytes(), &nodes); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(nodes["abscissas"]) != 3 || len(nodes["weight"]) != 3 {
		t.Errorf("want 3 nodes, got %v", nodes)
	}
}

func TestStrictFlag(t *testing.T) {
	_, err := run(t, "simpson38", "x", "0", "1", "-n", "4", "--strict")
	if !errors.Is(err, goquad.ErrConfig) {
		t.Errorf("want ErrConfig, got %v", err)
	}
	out, err := run(t, "simpson38", "x", "0", "1", "-n", "4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var res goquad.IntegralResult
	json.Unmarshal(out.Bytes(), &res)
	if res.Segments != 6 {
		t.Errorf("want 6 segments, got %d", res.Segments)
	}
}

func TestCommandErrors(t *testing.T) {
	if _, err := run(t, "simpson13", "***invalid", "0", "1"); !errors.Is(err, goquad.ErrInvalidEquation) {
		t.Errorf("want ErrInvalidEquation, got %v", err)
	}
	if _, err := run(t, "trapezoidal", "x", "zero", "1"); !errors.Is(err, goquad.ErrInvalidEquation) {
		t.Errorf("bad bound: want ErrInvalidEquation, got %v", err)
	}
	if _, err := run(t, "romberg", "x", "0", "1", "--tolerance", "0"); !errors.Is(err, goquad.ErrConfig) {
		t.Errorf("zero tolerance: want ErrConfig, got %v", err)
	}
}
