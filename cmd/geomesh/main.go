// Command geomesh evaluates a geometry description and writes the
// tessellated meshes as JSON.
//
// Usage:
//
//	geomesh [-config geomesh.toml] [-o meshes.json] [-inspect] detector.geo
//	geomesh [-config geomesh.toml] -print-config
//
// With -inspect it prints a per-volume topology report instead. With
// -print-config it prints the effective settings as TOML and exits.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/chazu/geomesh/pkg/app"
	"github.com/chazu/geomesh/pkg/config"
	"github.com/chazu/geomesh/pkg/logging"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "geomesh:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("geomesh", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", "", "TOML settings file")
	outPath := fs.String("o", "", "write JSON here instead of stdout")
	inspect := fs.Bool("inspect", false, "report per-volume topology instead of meshes")
	printConfig := fs.Bool("print-config", false, "print the effective settings as TOML and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			return err
		}
	}
	if *printConfig {
		data, err := cfg.Encode()
		if err != nil {
			return err
		}
		_, err = stdout.Write(data)
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("expected one source file, got %d", fs.NArg())
	}
	logger, err := logging.New(stderr, cfg.LogLevel)
	if err != nil {
		return err
	}

	source, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}

	out := stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	a := app.New(cfg, logger)
	if *inspect {
		reports, err := a.Inspect(string(source))
		if err != nil {
			return err
		}
		return encode(out, reports)
	}

	result := a.Evaluate(string(source))
	for _, w := range result.Warnings {
		logger.Warn(w.Message)
	}
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			logger.Error(e.Message, "line", e.Line, "col", e.Col)
		}
		return fmt.Errorf("%d evaluation errors", len(result.Errors))
	}
	logger.Info("tessellated", "file", fs.Arg(0), "meshes", len(result.Meshes))
	return encode(out, result)
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
