package goquad

import (
	"encoding/json"
	"fmt"
	"math"
)

// ============================================================
// MCP Tool Interface
// ============================================================

// Request limits for the tool surface. The library functions themselves do
// not cap these.
const (
	MaxToolSegments = 10_000_000
	MaxToolPoints   = 2_000
)

var toolNames = map[string]bool{
	"trapezodial": true, "trapezoidal": true, "simpson_1in3": true, "simpson_3in8": true,
	"romberg": true, "guass_integration": true, "gauss_legendre": true,
	"legendre_nodes": true, "evaluate": true, "mcp_spec": true,
}

// IsTool reports whether name is a tool HandleToolCall understands.
func IsTool(name string) bool { return toolNames[name] }

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// HandleToolCall runs a tool with DefaultConfig.
func HandleToolCall(req ToolRequest) ToolResponse {
	return defaultIntegrator.HandleToolCall(req)
}

// HandleToolCall dispatches req to the matching method. Failures, including an
// unparsable equation, are reported in ToolResponse.Error.
func (in *Integrator) HandleToolCall(req ToolRequest) ToolResponse {
	resp, err := in.dispatch(req)
	if err != nil {
		return ToolResponse{Error: err.Error()}
	}
	return resp
}

func (in *Integrator) dispatch(req ToolRequest) (ToolResponse, error) {
	p := toolParams(req.Params)

	switch req.Tool {
	case "trapezodial", "trapezoidal", "simpson_1in3", "simpson_3in8":
		eq, err := p.string("equation")
		if err != nil {
			return ToolResponse{}, err
		}
		a, b, err := p.bounds()
		if err != nil {
			return ToolResponse{}, err
		}
		n, err := p.int("trapezoid_count", MaxToolSegments)
		if err != nil {
			return ToolResponse{}, err
		}
		trueResult, err := p.float("true_result")
		if err != nil {
			return ToolResponse{}, err
		}
		var res *IntegralResult
		switch req.Tool {
		case "simpson_1in3":
			res, err = in.Simpson13(eq, a, b, n, trueResult)
		case "simpson_3in8":
			res, err = in.Simpson38(eq, a, b, n, trueResult)
		default:
			res, err = in.Trapezoidal(eq, a, b, n, trueResult)
		}
		if err != nil {
			return ToolResponse{}, err
		}
		return ToolResponse{Result: res}, nil

	case "romberg":
		eq, err := p.string("equation")
		if err != nil {
			return ToolResponse{}, err
		}
		a, b, err := p.bounds()
		if err != nil {
			return ToolResponse{}, err
		}
		trueResult, err := p.float("true_result")
		if err != nil {
			return ToolResponse{}, err
		}
		res, err := in.Romberg(eq, a, b, trueResult)
		if err != nil {
			return ToolResponse{}, err
		}
		return ToolResponse{Result: res}, nil

	case "guass_integration", "gauss_legendre":
		eq, err := p.string("equation")
		if err != nil {
			return ToolResponse{}, err
		}
		a, b, err := p.bounds()
		if err != nil {
			return ToolResponse{}, err
		}
		trueResult, err := p.float("true_result")
		if err != nil {
			return ToolResponse{}, err
		}
		points, err := p.int("points", MaxToolPoints)
		if err != nil {
			return ToolResponse{}, err
		}
		res, err := in.GaussLegendre(eq, a, b, trueResult, points)
		if err != nil {
			return ToolResponse{}, err
		}
		return ToolResponse{Result: res}, nil

	case "legendre_nodes":
		points, err := p.int("points", MaxToolPoints)
		if err != nil {
			return ToolResponse{}, err
		}
		abscissas, weights, err := in.LegendreNodes(points)
		if err != nil {
			return ToolResponse{}, err
		}
		return ToolResponse{Result: map[string]interface{}{"abscissas": abscissas, "weight": weights}}, nil

	case "evaluate":
		text, err := p.string("equation")
		if err != nil {
			return ToolResponse{}, err
		}
		x, err := p.float("x")
		if err != nil {
			return ToolResponse{}, err
		}
		eq, err := ParseEquation(text)
		if err != nil {
			return ToolResponse{}, err
		}
		return ToolResponse{Result: jsonFloat(eq.Eval(x))}, nil

	case "mcp_spec":
		return ToolResponse{Result: MCPToolSpec()}, nil
	}

	return ToolResponse{}, fmt.Errorf("unknown tool: %s", req.Tool)
}

// jsonFloat keeps non-finite values encodable; encoding/json rejects NaN and Inf.
func jsonFloat(f float64) interface{} {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Sprint(f)
	}
	return f
}

type toolParams map[string]interface{}

func (p toolParams) string(key string) (string, error) {
	v, ok := p[key]
	if !ok {
		return "", fmt.Errorf("missing param: %s", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("param %s must be a string", key)
	}
	return s, nil
}

func (p toolParams) float(key string) (float64, error) {
	v, ok := p[key]
	if !ok {
		return 0, fmt.Errorf("missing param: %s", key)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	}
	return 0, fmt.Errorf("param %s must be a number", key)
}

func (p toolParams) int(key string, max int) (int, error) {
	f, err := p.float(key)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || f < 1 || f > float64(max) {
		return 0, fmt.Errorf("param %s must be an integer in 1..%d, got %v", key, max, f)
	}
	return int(f), nil
}

func (p toolParams) bounds() (a, b float64, err error) {
	if a, err = p.float("bound_least"); err != nil {
		return 0, 0, err
	}
	if b, err = p.float("bound_most"); err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// ============================================================
// MCP tool schema
// ============================================================

func MCPToolSpec() string {
	nc := map[string]string{"equation": "string", "bound_least": "number", "bound_most": "number", "trapezoid_count": "integer", "true_result": "number"}
	ncRequired := []string{"equation", "bound_least", "bound_most", "trapezoid_count", "true_result"}
	tools := []map[string]interface{}{
		ts("trapezodial", "Composite trapezoidal rule over trapezoid_count segments", ncRequired, nc),
		ts("simpson_1in3", "Composite Simpson 1/3 rule; odd segment counts are rounded up to even", ncRequired, nc),
		ts("simpson_3in8", "Composite Simpson 3/8 rule; segment counts are rounded up to a multiple of 3", ncRequired, nc),
		ts("romberg", "Romberg extrapolation table, stops when neighbouring entries agree to 1e-12",
			[]string{"equation", "bound_least", "bound_most", "true_result"},
			map[string]string{"equation": "string", "bound_least": "number", "bound_most": "number", "true_result": "number"}),
		ts("guass_integration", "Gauss–Legendre quadrature with the given number of points",
			[]string{"equation", "bound_least", "bound_most", "true_result", "points"},
			map[string]string{"equation": "string", "bound_least": "number", "bound_most": "number", "true_result": "number", "points": "integer"}),
		ts("legendre_nodes", "Gauss–Legendre abscissas and weights on [-1, 1]", []string{"points"}, map[string]string{"points": "integer"}),
		ts("evaluate", "Evaluate an equation in x at a point", []string{"equation", "x"}, map[string]string{"equation": "string", "x": "number"}),
		ts("mcp_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
