package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/npillmayer/ruley/rules"
	"github.com/npillmayer/ruley/rules/ruletext"
)

// Config holds defaults for command line flags, read from the environment.
type Config struct {
	Trace    string `env:"RULEY_TRACE"    envDefault:"Info"`
	Progress bool   `env:"RULEY_PROGRESS"`
	Parallel bool   `env:"RULEY_PARALLEL"`
	Patch8   string `env:"RULEY_PATCH_8"`  // replacement rule definition for rule 8
	Patch11  string `env:"RULEY_PATCH_11"` // replacement rule definition for rule 11
}

// loadConfig reads the configuration from the environment.
func loadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// patches returns the rule replacements for the second part of a count.
// Definitions given as flags win over the environment, which wins over
// the built-in loops for rules 8 and 11.
func (cfg Config) patches(defs []string) ([]rules.Patch, error) {
	if len(defs) > 0 {
		return parsePatches(defs)
	}
	patches := rules.SelfReferentialPatch() // 8, then 11
	for i, def := range []string{cfg.Patch8, cfg.Patch11} {
		if def == "" {
			continue
		}
		p, err := ruletext.ParsePatch(def)
		if err != nil {
			return nil, err
		}
		patches[i] = p
	}
	return patches, nil
}

func parsePatches(defs []string) ([]rules.Patch, error) {
	patches := make([]rules.Patch, 0, len(defs))
	for _, def := range defs {
		p, err := ruletext.ParsePatch(def)
		if err != nil {
			return nil, err
		}
		patches = append(patches, p)
	}
	return patches, nil
}
