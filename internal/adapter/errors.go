// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CryptaTrack Authors

package adapter

import "errors"

var (
	// ErrCredentialsMissing means the relay has no remote-network API key
	// configured. Surfaced to callers of /encrypt-relay as HTTP 500.
	ErrCredentialsMissing = errors.New("arcium credentials missing")

	// ErrUpstreamCompute means the remote network was unreachable or
	// answered non-2xx. Compute paths recover from it by synthesizing a
	// mock response; it is never shown to an end user.
	ErrUpstreamCompute = errors.New("upstream compute failed")

	// ErrEmptyAggregation means AggregateEncryptedValues was called with no
	// inputs. A caller bug: aggregation of nothing is invalid by
	// construction and is never retried or mocked.
	ErrEmptyAggregation = errors.New("cannot aggregate empty value list")
)
