// Command goquad integrates a function of x from the command line and prints
// the result as JSON.
//
//	goquad trapezoidal "x^2" 0 1 --segments 4 --true 0.333333
//	goquad romberg "sin(x)" 0 pi --true 2
//	goquad gauss --points 5 -- "exp(-x^2)" -1 1
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/njchilds90/goquad"
	"github.com/njchilds90/goquad/internal/logging"
)

// Globals are shared by every subcommand.
type Globals struct {
	LogLevel            string  `help:"Log level (debug, info, warn, error)." default:"warn" env:"GOQUAD_LOG_LEVEL"`
	Tolerance           float64 `help:"Convergence threshold for Romberg and Newton iteration." default:"1e-12" env:"GOQUAD_TOLERANCE"`
	MaxRombergLevels    int     `help:"Maximum Romberg step halvings." default:"20" env:"GOQUAD_MAX_ROMBERG_LEVELS"`
	MaxNewtonIterations int     `help:"Maximum Newton iterations per Legendre root." default:"100" env:"GOQUAD_MAX_NEWTON_ITERATIONS"`
	Strict              bool    `help:"Reject segment counts that do not fit a Newton–Cotes rule." env:"GOQUAD_STRICT_PARTITION"`
	Compact             bool    `help:"Print JSON on one line."`

	out io.Writer `kong:"-"`
}

func (g *Globals) integrator() (*goquad.Integrator, error) {
	level, err := logging.ParseLevel(g.LogLevel)
	if err != nil {
		return nil, err
	}
	logging.InitLogger(os.Stderr, level, logging.FormatText)
	return goquad.New(goquad.Config{
		Tolerance:           g.Tolerance,
		MaxRombergLevels:    g.MaxRombergLevels,
		MaxNewtonIterations: g.MaxNewtonIterations,
		StrictPartition:     g.Strict,
	})
}

func (g *Globals) print(v interface{}) error {
	enc := json.NewEncoder(g.out)
	if !g.Compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// CLI defines the command-line interface.
type CLI struct {
	Globals

	Trapezoidal TrapezoidalCmd `cmd:"" help:"Composite trapezoidal rule"`
	Simpson13   Simpson13Cmd   `cmd:"" name:"simpson13" help:"Composite Simpson 1/3 rule"`
	Simpson38   Simpson38Cmd   `cmd:"" name:"simpson38" help:"Composite Simpson 3/8 rule"`
	Romberg     RombergCmd     `cmd:"" help:"Romberg extrapolation"`
	Gauss       GaussCmd       `cmd:"" help:"Gauss–Legendre quadrature"`
	Nodes       NodesCmd       `cmd:"" help:"Print Gauss–Legendre abscissas and weights"`
	Eval        EvalCmd        `cmd:"" help:"Evaluate an equation at a point"`
}

// Interval is the shared positional arguments of the integration commands.
type Interval struct {
	Equation string  `arg:"" help:"Function of x, e.g. \"x^2 + sin(x)\""`
	A        string  `arg:"" help:"Lower bound (an expression, e.g. 0 or pi/2)"`
	B        string  `arg:"" help:"Upper bound (an expression)"`
	True     float64 `name:"true" help:"Known true result to score against." default:"0"`
}

// bounds evaluates the bound expressions, so "pi" and "2*pi" are accepted.
func (iv Interval) bounds() (a, b float64, err error) {
	ea, err := goquad.ParseEquation(iv.A)
	if err != nil {
		return 0, 0, fmt.Errorf("lower bound: %w", err)
	}
	eb, err := goquad.ParseEquation(iv.B)
	if err != nil {
		return 0, 0, fmt.Errorf("upper bound: %w", err)
	}
	return ea.Eval(0), eb.Eval(0), nil
}

type compositeFunc func(in *goquad.Integrator, eq string, a, b float64, n int, trueResult float64) (*goquad.IntegralResult, error)

func runComposite(g *Globals, iv Interval, segments int, fn compositeFunc) error {
	in, err := g.integrator()
	if err != nil {
		return err
	}
	a, b, err := iv.bounds()
	if err != nil {
		return err
	}
	res, err := fn(in, iv.Equation, a, b, segments, iv.True)
	if err != nil {
		return err
	}
	return g.print(res)
}

type TrapezoidalCmd struct {
	Interval
	Segments int `short:"n" help:"Number of segments." default:"4"`
}

func (c *TrapezoidalCmd) Run(g *Globals) error {
	return runComposite(g, c.Interval, c.Segments, (*goquad.Integrator).Trapezoidal)
}

type Simpson13Cmd struct {
	Interval
	Segments int `short:"n" help:"Number of segments (rounded up to even)." default:"4"`
}

func (c *Simpson13Cmd) Run(g *Globals) error {
	return runComposite(g, c.Interval, c.Segments, (*goquad.Integrator).Simpson13)
}

type Simpson38Cmd struct {
	Interval
	Segments int `short:"n" help:"Number of segments (rounded up to a multiple of 3)." default:"3"`
}

func (c *Simpson38Cmd) Run(g *Globals) error {
	return runComposite(g, c.Interval, c.Segments, (*goquad.Integrator).Simpson38)
}

type RombergCmd struct {
	Interval
}

func (c *RombergCmd) Run(g *Globals) error {
	in, err := g.integrator()
	if err != nil {
		return err
	}
	a, b, err := c.bounds()
	if err != nil {
		return err
	}
	res, err := in.Romberg(c.Equation, a, b, c.True)
	if err != nil {
		return err
	}
	return g.print(res)
}

type GaussCmd struct {
	Interval
	Points int `short:"p" help:"Number of Gauss–Legendre points." default:"3"`
}

func (c *GaussCmd) Run(g *Globals) error {
	in, err := g.integrator()
	if err != nil {
		return err
	}
	a, b, err := c.bounds()
	if err != nil {
		return err
	}
	res, err := in.GaussLegendre(c.Equation, a, b, c.True, c.Points)
	if err != nil {
		return err
	}
	return g.print(res)
}

type NodesCmd struct {
	Points int `arg:"" help:"Number of points."`
}

func (c *NodesCmd) Run(g *Globals) error {
	in, err := g.integrator()
	if err != nil {
		return err
	}
	abscissas, weights, err := in.LegendreNodes(c.Points)
	if err != nil {
		return err
	}
	return g.print(map[string][]float64{"abscissas": abscissas, "weight": weights})
}

type EvalCmd struct {
	Equation string  `arg:"" help:"Function of x."`
	X        float64 `arg:"" help:"Point to evaluate at."`
}

func (c *EvalCmd) Run(g *Globals) error {
	eq, err := goquad.ParseEquation(c.Equation)
	if err != nil {
		return err
	}
	return g.print(map[string]interface{}{"equation": eq.String(), "x": c.X, "value": fmt.Sprint(eq.Eval(c.X))})
}

func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("goquad"),
		kong.Description("Numerical integration: Newton–Cotes, Romberg and Gauss–Legendre"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Bind(&cli.Globals),
	}, options...)
	return kong.New(cli, options...)
}

func main() {
	cli := CLI{Globals: Globals{out: os.Stdout}}
	parser, err := newParser(&cli)
	if err != nil {
		panic(err)
	}
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)
	ctx.FatalIfErrorf(ctx.Run())
}
