// Package joincfg loads the demo binary's job configuration: a YAML
// document naming the left/right CSV inputs, the join parameters, and
// a handful of presentation options, validated against an embedded
// JSON Schema and layered with environment variable overrides. Not
// used by the core simjoin.Join entry point, which takes an Options
// struct directly.
package joincfg

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	_ "embed"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJSON []byte

// Side names one table's CSV source and column mapping.
type Side struct {
	Path    string   `yaml:"path"`
	KeyCol  string   `yaml:"key_col"`
	JoinCol string   `yaml:"join_col"`
	OutCols []string `yaml:"out_cols"`
}

// Job is the demo binary's job configuration.
type Job struct {
	Left             Side    `yaml:"left"`
	Right            Side    `yaml:"right"`
	Threshold        float64 `yaml:"threshold"`
	CompOp           string  `yaml:"comp_op"`
	QVal             int     `yaml:"qval"`
	NormalizeUnicode bool    `yaml:"normalize_unicode"`
	AllowMissing     bool    `yaml:"allow_missing"`
	OutSimScore      bool    `yaml:"out_sim_score"`
	NJobs            int     `yaml:"n_jobs"`
	SampleRows       int     `yaml:"sample_rows"`
	Log              Log     `yaml:"log"`
}

// Log configures the demo binary's logger. An empty Level defaults to
// INFO; an empty FilePath disables the rotating file sink and logs to
// stderr only.
type Log struct {
	Level      string `yaml:"level"`
	FilePath   string `yaml:"file_path"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

var validator *jsonschema.Schema

func compiledValidator() (*jsonschema.Schema, error) {
	if validator != nil {
		return validator, nil
	}
	compiler := jsonschema.NewCompiler()
	const virtualURL = "memory://simjoin-job-config.json"
	if err := compiler.AddResource(virtualURL, strings.NewReader(string(schemaJSON))); err != nil {
		return nil, fmt.Errorf("joincfg: add schema resource: %w", err)
	}
	compiled, err := compiler.Compile(virtualURL)
	if err != nil {
		return nil, fmt.Errorf("joincfg: compile schema: %w", err)
	}
	validator = compiled
	return validator, nil
}

// Load reads a YAML job file from path, validates it against the
// embedded JSON Schema, applies SIMJOIN_*-prefixed environment variable
// overrides, and fills in defaults (comp_op "<=", qval 2, sample_rows
// 10, n_jobs 1).
func Load(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("joincfg: read %s: %w", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("joincfg: parse %s: %w", path, err)
	}
	applyEnvOverrides(raw)

	v, err := compiledValidator()
	if err != nil {
		return nil, err
	}
	if err := v.Validate(raw); err != nil {
		return nil, fmt.Errorf("joincfg: %s: schema validation failed: %w", path, err)
	}

	remarshaled, err := yaml.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("joincfg: remarshal %s: %w", path, err)
	}
	var job Job
	if err := yaml.Unmarshal(remarshaled, &job); err != nil {
		return nil, fmt.Errorf("joincfg: decode %s: %w", path, err)
	}

	if job.CompOp == "" {
		job.CompOp = "<="
	}
	if job.QVal == 0 {
		job.QVal = 2
	}
	if job.SampleRows == 0 {
		job.SampleRows = 10
	}
	if job.NJobs == 0 {
		job.NJobs = 1
	}
	if job.Log.Level == "" {
		job.Log.Level = "INFO"
	}
	return &job, nil
}

// applyEnvOverrides layers SIMJOIN_THRESHOLD, SIMJOIN_COMP_OP, and
// SIMJOIN_N_JOBS onto the loaded document — a fixed, small override set
// rather than a general env-spec mechanism, since the demo has only a
// handful of knobs worth overriding from a shell.
func applyEnvOverrides(raw map[string]any) {
	if v, ok := os.LookupEnv("SIMJOIN_THRESHOLD"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			raw["threshold"] = f
		}
	}
	if v, ok := os.LookupEnv("SIMJOIN_COMP_OP"); ok {
		raw["comp_op"] = v
	}
	if v, ok := os.LookupEnv("SIMJOIN_N_JOBS"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			raw["n_jobs"] = n
		}
	}
}
