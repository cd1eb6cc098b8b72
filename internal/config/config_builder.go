package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

// layer is one configuration source. Earlier layers take precedence.
type layer struct {
	source string
	cfg    *StructuredConfig
}

type configBuilder struct {
	layers []layer
	rest   []string
	err    error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{layers: make([]layer, 0, 3)}
}

func (b *configBuilder) add(source string, cfg *StructuredConfig) *configBuilder {
	b.layers = append(b.layers, layer{source: source, cfg: cfg})
	return b
}

func (b *configBuilder) fail(source string, err error) *configBuilder {
	b.err = errors.Join(b.err, fmt.Errorf("%s: %w", source, err))
	return b
}

// build merges the layers over each other, fills defaults and validates.
func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error reading configuration: %w", b.err)
	}

	merged := new(StructuredConfig)
	for _, l := range b.layers {
		if err := mergo.Merge(merged, l.cfg); err != nil {
			return nil, fmt.Errorf("error merging %s configuration: %w", l.source, err)
		}
	}
	merged.applyDefaults()

	return merged, merged.validate()
}

func (b *configBuilder) withEnv() *configBuilder {
	cfg := new(StructuredConfig)
	if err := parseEnv(cfg); err != nil {
		return b.fail("env", err)
	}
	return b.add("env", cfg)
}

// withFlags parses the leading flags; the remaining arguments are kept for
// the command line.
func (b *configBuilder) withFlags(args []string) *configBuilder {
	cfg, rest, err := ParseFlags(args)
	if err != nil {
		return b.fail("flags", err)
	}
	b.rest = rest
	return b.add("flags", cfg)
}

// withFile reads the file named by the last layer that names one.
func (b *configBuilder) withFile() *configBuilder {
	path := ""
	for _, l := range b.layers {
		if l.cfg.FilePath != "" {
			path = l.cfg.FilePath
		}
	}
	if path == "" {
		return b
	}

	cfg, err := parseFile(path)
	if err != nil {
		return b.fail("file "+path, err)
	}
	return b.add("file", cfg)
}
