// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CryptaTrack Authors

package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

// configBuilder collects one partial config per source and merges them in
// registration order. mergo keeps already-set fields, so the earliest source
// providing a non-zero value wins.
type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{configs: make([]*StructuredConfig, 0, 3)}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("build config: %w", b.err)
	}

	merged := new(StructuredConfig)
	for _, partial := range b.configs {
		if err := mergo.Merge(merged, partial); err != nil {
			return nil, fmt.Errorf("merge config sources: %w", err)
		}
	}

	return merged, merged.validate()
}

func (b *configBuilder) withEnv() *configBuilder {
	partial := &StructuredConfig{}
	if err := parseEnv(partial); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, partial)
	return b
}

func (b *configBuilder) withFlags() *configBuilder {
	b.configs = append(b.configs, ParseFlags())
	return b
}

// withJSON resolves the file path from the sources already loaded, so both
// the CONFIG env var and the -c/-config flag can point at the file.
func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string
	for _, partial := range b.configs {
		if partial.JSONFilePath != "" {
			jsonPath = partial.JSONFilePath
		}
	}
	if jsonPath == "" {
		return b
	}

	partial, err := parseJSON(jsonPath)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, partial)
	return b
}
