// cmd/mcp-server/main.go — Standalone HTTP MCP server for goquad
//
// Exposes the quadrature tools as an HTTP endpoint for calculator front ends
// and AI agent frameworks.
//
// Usage:
//
//	go run ./cmd/mcp-server --port 8080
//
// Tool call endpoint: POST /tool
// Schema endpoint:    GET  /schema
// Health endpoint:    GET  /health
// Metrics endpoint:   GET  /metrics
package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/njchilds90/goquad"
	"github.com/njchilds90/goquad/internal/logging"
)

// CLI holds the server flags. Every flag can also be set from the environment.
type CLI struct {
	Port      int    `help:"Port to listen on." default:"8080" env:"GOQUAD_PORT"`
	LogLevel  string `help:"Log level (debug, info, warn, error)." default:"info" env:"GOQUAD_LOG_LEVEL"`
	LogFormat string `help:"Log format (json, text)." default:"json" enum:"json,text" env:"GOQUAD_LOG_FORMAT"`

	Tolerance           float64 `help:"Convergence threshold for Romberg and Newton iteration." default:"1e-12" env:"GOQUAD_TOLERANCE"`
	MaxRombergLevels    int     `help:"Maximum Romberg step halvings." default:"20" env:"GOQUAD_MAX_ROMBERG_LEVELS"`
	MaxNewtonIterations int     `help:"Maximum Newton iterations per Legendre root." default:"100" env:"GOQUAD_MAX_NEWTON_ITERATIONS"`
	StrictPartition     bool    `help:"Reject segment counts that do not fit a Newton–Cotes rule." env:"GOQUAD_STRICT_PARTITION"`
}

func (c *CLI) config() goquad.Config {
	return goquad.Config{
		Tolerance:           c.Tolerance,
		MaxRombergLevels:    c.MaxRombergLevels,
		MaxNewtonIterations: c.MaxNewtonIterations,
		StrictPartition:     c.StrictPartition,
	}
}

// Run starts the server and blocks until it fails.
func (c *CLI) Run() error {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(c.LogFormat)
	if err != nil {
		return err
	}
	logging.InitLogger(os.Stderr, level, format)

	integrator, err := goquad.New(c.config())
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	handler := newServer(integrator, newMetrics(reg), reg)

	addr := fmt.Sprintf(":%d", c.Port)
	logging.ServerStartup("mcp", "http", c.Port,
		"endpoints", []string{"POST /tool", "GET /schema", "GET /health", "GET /metrics"})

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("mcp-server"),
		kong.Description("HTTP tool server for numerical integration"),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run())
}
