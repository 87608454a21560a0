// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CryptaTrack Authors

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// relay invariants before it is used at startup.
//
// Missing Arcium credentials are deliberately not an error: the relay then
// serves tagged mock results and offline health, which is the product's
// demo mode.
func (cfg *StructuredConfig) validate() error {
	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Chain.RPCEndpoint == "" {
		return ErrInvalidChainConfigs
	}

	return nil
}
