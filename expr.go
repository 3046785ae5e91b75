package goquad

import (
	"fmt"
	"math"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ============================================================
// Grammar
// ============================================================

// Precedence, loosest first: + -, * / %, unary + -, ^ (right-associative).
// "**" is accepted as a synonym for "^".

//nolint:govet // participle grammar tags are not standard struct tags
type exprAST struct {
	Head *termAST   `@@`
	Tail []*addTerm `@@*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type addTerm struct {
	Op   string   `@("+" | "-")`
	Term *termAST `@@`
}

//nolint:govet // participle grammar tags are not standard struct tags
type termAST struct {
	Head *unaryAST  `@@`
	Tail []*mulTerm `@@*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type mulTerm struct {
	Op    string    `@("*" | "/" | "%")`
	Unary *unaryAST `@@`
}

//nolint:govet // participle grammar tags are not standard struct tags
type unaryAST struct {
	Op    string    `  ( @("-" | "+")`
	Unary *unaryAST `    @@ )`
	Power *powerAST `| @@`
}

//nolint:govet // participle grammar tags are not standard struct tags
type powerAST struct {
	Base     *primaryAST `@@`
	Exponent *unaryAST   `( ("^" | "**") @@ )?`
}

//nolint:govet // participle grammar tags are not standard struct tags
type primaryAST struct {
	Number *float64  `  @Number`
	Ident  *identAST `| @@`
	Group  *exprAST  `| "(" @@ ")"`
}

// identAST is a variable, a constant, or a function call when Call is set.
//
//nolint:govet // participle grammar tags are not standard struct tags
type identAST struct {
	Name string     `@Ident`
	Call bool       `( @"("`
	Args []*exprAST `  ( @@ ( "," @@ )* )? ")" )?`
}

var exprLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Number", Pattern: `(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Punct", Pattern: `\*\*|[-+*/%^(),]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var exprParser = participle.MustBuild[exprAST](
	participle.Lexer(exprLexer),
	participle.Elide("Whitespace"),
)

// ============================================================
// Equation
// ============================================================

// Variable is the name of the integration variable.
const Variable = "x"

// Equation is a parsed function of one real variable. It is immutable and
// safe for concurrent evaluation.
type Equation struct {
	text string
	root node
}

// ParseEquation parses text into an Equation. Syntax errors, unknown
// identifiers and wrong argument counts are reported as *ParseError.
func ParseEquation(text string) (*Equation, error) {
	src := strings.TrimSpace(text)
	if src == "" {
		return nil, &ParseError{Equation: text, Err: fmt.Errorf("empty equation")}
	}
	ast, err := exprParser.ParseString("", src)
	if err != nil {
		return nil, &ParseError{Equation: text, Err: err}
	}
	root, err := ast.compile()
	if err != nil {
		return nil, &ParseError{Equation: text, Err: err}
	}
	return &Equation{text: src, root: root}, nil
}

// MustParseEquation is like ParseEquation but panics on error.
func MustParseEquation(text string) *Equation {
	eq, err := ParseEquation(text)
	if err != nil {
		panic(err)
	}
	return eq
}

// Eval evaluates the equation at x. Domain errors surface as NaN or ±Inf.
func (e *Equation) Eval(x float64) float64 { return e.root.eval(x) }

func (e *Equation) String() string { return e.text }

// ============================================================
// Compiled tree
// ============================================================

type node interface {
	eval(x float64) float64
}

type constNode float64

func (n constNode) eval(float64) float64 { return float64(n) }

type varNode struct{}

func (varNode) eval(x float64) float64 { return x }

type negNode struct{ arg node }

func (n negNode) eval(x float64) float64 { return -n.arg.eval(x) }

type binaryNode struct {
	op   string
	l, r node
}

func (n binaryNode) eval(x float64) float64 {
	a, b := n.l.eval(x), n.r.eval(x)
	switch n.op {
	case "+":
		return a + b
	case "-":
		return a - b
	case "*":
		return a * b
	case "/":
		return a / b
	case "%":
		return math.Mod(a, b)
	case "^", "**":
		return math.Pow(a, b)
	}
	return math.NaN()
}

type callNode struct {
	fn   func(args []float64) float64
	args []node
}

func (n callNode) eval(x float64) float64 {
	vals := make([]float64, len(n.args))
	for i, a := range n.args {
		vals[i] = a.eval(x)
	}
	return n.fn(vals)
}

type unaryFuncNode struct {
	fn  func(float64) float64
	arg node
}

func (n unaryFuncNode) eval(x float64) float64 { return n.fn(n.arg.eval(x)) }

// ============================================================
// Built-ins
// ============================================================

var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

var unaryFuncs = map[string]func(float64) float64{
	"sqrt":   math.Sqrt,
	"exp":    math.Exp,
	"ln":     math.Log,
	"log":    math.Log10,
	"log10":  math.Log10,
	"log2":   math.Log2,
	"abs":    math.Abs,
	"sin":    math.Sin,
	"cos":    math.Cos,
	"tan":    math.Tan,
	"asin":   math.Asin,
	"acos":   math.Acos,
	"atan":   math.Atan,
	"sinh":   math.Sinh,
	"cosh":   math.Cosh,
	"tanh":   math.Tanh,
	"asinh":  math.Asinh,
	"acosh":  math.Acosh,
	"atanh":  math.Atanh,
	"floor":  math.Floor,
	"ceil":   math.Ceil,
	"round":  math.Round,
	"signum": signum,
}

var binaryFuncs = map[string]func(float64, float64) float64{
	"atan2": math.Atan2,
	"pow":   math.Pow,
}

var variadicFuncs = map[string]func([]float64) float64{
	"max": func(v []float64) float64 {
		m := v[0]
		for _, f := range v[1:] {
			m = math.Max(m, f)
		}
		return m
	},
	"min": func(v []float64) float64 {
		m := v[0]
		for _, f := range v[1:] {
			m = math.Min(m, f)
		}
		return m
	},
}

func signum(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return x // 0, -0 and NaN
}

// ============================================================
// AST -> tree
// ============================================================

func (a *exprAST) compile() (node, error) {
	left, err := a.Head.compile()
	if err != nil {
		return nil, err
	}
	for _, t := range a.Tail {
		right, err := t.Term.compile()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: t.Op, l: left, r: right}
	}
	return left, nil
}

func (a *termAST) compile() (node, error) {
	left, err := a.Head.compile()
	if err != nil {
		return nil, err
	}
	for _, t := range a.Tail {
		right, err := t.Unary.compile()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: t.Op, l: left, r: right}
	}
	return left, nil
}

func (a *unaryAST) compile() (node, error) {
	if a.Unary != nil {
		arg, err := a.Unary.compile()
		if err != nil {
			return nil, err
		}
		if a.Op == "-" {
			return negNode{arg: arg}, nil
		}
		return arg, nil
	}
	return a.Power.compile()
}

func (a *powerAST) compile() (node, error) {
	base, err := a.Base.compile()
	if err != nil {
		return nil, err
	}
	if a.Exponent == nil {
		return base, nil
	}
	exp, err := a.Exponent.compile()
	if err != nil {
		return nil, err
	}
	return binaryNode{op: "^", l: base, r: exp}, nil
}

func (a *primaryAST) compile() (node, error) {
	switch {
	case a.Number != nil:
		return constNode(*a.Number), nil
	case a.Ident != nil:
		return a.Ident.compile()
	case a.Group != nil:
		return a.Group.compile()
	}
	return nil, fmt.Errorf("empty expression")
}

func (a *identAST) compile() (node, error) {
	name := strings.ToLower(a.Name)
	if !a.Call {
		if name == Variable {
			return varNode{}, nil
		}
		if c, ok := constants[name]; ok {
			return constNode(c), nil
		}
		if isFunction(name) {
			return nil, fmt.Errorf("function %s used without arguments", name)
		}
		return nil, fmt.Errorf("unknown identifier %q", a.Name)
	}

	args := make([]node, len(a.Args))
	for i, arg := range a.Args {
		n, err := arg.compile()
		if err != nil {
			return nil, err
		}
		args[i] = n
	}

	if fn, ok := unaryFuncs[name]; ok {
		if len(args) != 1 {
			return nil, fmt.Errorf("%s takes 1 argument, got %d", name, len(args))
		}
		return unaryFuncNode{fn: fn, arg: args[0]}, nil
	}
	if fn, ok := binaryFuncs[name]; ok {
		if len(args) != 2 {
			return nil, fmt.Errorf("%s takes 2 arguments, got %d", name, len(args))
		}
		return callNode{fn: func(v []float64) float64 { return fn(v[0], v[1]) }, args: args}, nil
	}
	if fn, ok := variadicFuncs[name]; ok {
		if len(args) == 0 {
			return nil, fmt.Errorf("%s takes at least 1 argument", name)
		}
		return callNode{fn: fn, args: args}, nil
	}
	return nil, fmt.Errorf("unknown function %q", a.Name)
}

func isFunction(name string) bool {
	_, u := unaryFuncs[name]
	_, b := binaryFuncs[name]
	_, v := variadicFuncs[name]
	return u || b || v
}
