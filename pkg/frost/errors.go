// SPDX-License-Identifier: Apache-2.0
//
// Copyright 2025 Jeremy Hahn
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package frost implements threshold Schnorr signing over key shares
// produced by the dkg package: nonce commitment generation, single-signer
// partial signatures, partial verification, aggregation and stateless group
// verification.
package frost

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput indicates a structurally bad argument: empty
	// commitment set, non-canonical point, wrong length. Caller bug; not
	// retryable.
	ErrInvalidInput = errors.New("frost: invalid input")

	// ErrUnknownCommitment indicates a signer whose own entry is absent
	// from the commitment set it was asked to sign under.
	ErrUnknownCommitment = errors.New("frost: signer not in commitment set")

	// ErrNonceMissing indicates that the private pair for a nonce
	// commitment is not in the store. Nonce pairs are single-use; a reused
	// handle surfaces as this error.
	ErrNonceMissing = errors.New("frost: private nonce missing")

	// ErrBadCommitments indicates that the aggregated nonce point is the
	// identity or that the commitment set contains a duplicate id.
	ErrBadCommitments = errors.New("frost: bad commitment set")

	// ErrInconsistentAggregate indicates partial signatures that disagree
	// on the aggregated nonce point.
	ErrInconsistentAggregate = errors.New("frost: partial signatures disagree on aggregated nonce")

	// ErrVerificationFailed indicates a group signature that does not
	// verify.
	ErrVerificationFailed = errors.New("frost: group signature verification failed")

	// ErrUnauthorized indicates an aggregator key that the validator does
	// not authorize for signature aggregation.
	ErrUnauthorized = errors.New("frost: aggregator not authorized")
)

// PartialInvalidError attributes a failed partial signature verification to
// a specific signer. Recovery (excluding the signer, retrying with a
// different subset) is delegated to the caller.
type PartialInvalidError struct {
	SignerID uint64
}

func (e *PartialInvalidError) Error() string {
	return fmt.Sprintf("frost: invalid partial signature from signer %d", e.SignerID)
}
