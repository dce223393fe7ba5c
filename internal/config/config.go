// Package config loads a compiler run's YAML configuration document:
// output mode, dump flags, and tracing, the run-level knobs the CLI
// (cmd/classc) reads before invoking internal/compiler. Grounded on the
// teacher's internal/eval_harness/spec.go BenchmarkSpec loader (a flat
// yaml.v3-tagged struct plus a LoadSpec(path) (*T, error) entry point
// with required-field validation after Unmarshal), repurposed from
// benchmark manifests to compiler run configuration per SPEC_FULL.md §2
// item 14.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// OutputMode selects what a compiler run emits on success.
type OutputMode string

const (
	// OutputNone runs the pipeline for its diagnostics only.
	OutputNone OutputMode = "none"
	// OutputPretty renders the elaborated program back to concrete
	// syntax (internal/printer).
	OutputPretty OutputMode = "pretty"
	// OutputJSON dumps the elaborated program's error/diagnostic report
	// as JSON (errs.Report.ToJSON), for tooling consumption.
	OutputJSON OutputMode = "json"
)

// DumpFlags names one flag per phase boundary in
// internal/compiler.Compile. They are loaded and validated here only:
// neither cmd/classc nor internal/compiler reads them, so no
// intermediate artifact is written out.
type DumpFlags struct {
	Tokens      bool `yaml:"tokens"`
	AST         bool `yaml:"ast"`
	Constraints bool `yaml:"constraints"`
	Solution    bool `yaml:"solution"`
	Elaborated  bool `yaml:"elaborated"`
}

// Trace holds the solver-tracing settings, the teacher's
// spec.md-independent verbosity knob. Nothing in the pipeline reads
// it; the solver emits no trace.
type Trace struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"` // empty means stderr
}

// Config is a full compiler run configuration, the YAML document
// SPEC_FULL.md §2 item 14 names.
type Config struct {
	Output OutputMode `yaml:"output"`
	Dump   DumpFlags  `yaml:"dump"`
	Trace  Trace      `yaml:"trace"`
}

// Default returns the configuration a run uses when no config file is
// given: pretty-print the result, no dumps, no tracing.
func Default() *Config {
	return &Config{Output: OutputPretty}
}

// Load reads and parses a run configuration from a YAML file at path,
// validating the output mode against the set this package declares.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	switch cfg.Output {
	case OutputNone, OutputPretty, OutputJSON:
	default:
		return nil, fmt.Errorf("config: unrecognized output mode %q", cfg.Output)
	}

	return cfg, nil
}
