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

package frost

import (
	"bytes"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/jeremyhahn/go-frostsig/pkg/curve"
	"github.com/jeremyhahn/go-frostsig/pkg/node"
)

// Signing event result values.
const (
	ResultSuccessful = "SUCCESSFUL"
	ResultFailed     = "FAILED"
)

// SigningResult is the outcome of one aggregation request.
type SigningResult struct {
	RequestID string `json:"request_id"`

	// Result is ResultSuccessful or ResultFailed.
	Result string `json:"result"`

	// Signature is the aggregated group signature on success.
	Signature *Signature `json:"signature,omitempty"`

	// Malicious lists signers whose partials were rejected with blame.
	Malicious []uint64 `json:"malicious,omitempty"`
}

// Aggregator drives signature aggregation for signing events. It combines
// collected partials, attributes blame for bad ones, and self-verifies the
// group signature before releasing it. Collecting the partials from signers
// is the transport's job and happens outside the core.
type Aggregator struct {
	publicKey []byte
	nodes     node.NodeInfo
	validator node.Validator
}

// NewAggregator creates an aggregator identified by its long-term public
// key. The validator decides whether that key may aggregate at all.
func NewAggregator(publicKey []byte, nodes node.NodeInfo, validator node.Validator) *Aggregator {
	return &Aggregator{
		publicKey: publicKey,
		nodes:     nodes,
		validator: validator,
	}
}

// AggregateSignatures runs one signing event over already-collected
// partials.
//
// The signer subset must be part of the session party. Signers that
// disagree with the recomputed aggregated nonce, or whose partials fail
// verification, are reported in SigningResult.Malicious together with a
// ResultFailed outcome; subset reselection is the caller's policy.
func (a *Aggregator) AggregateSignatures(dkgID string, message []byte, set *CommitmentSet, partials []*PartialSignature, groupKey []byte) (*SigningResult, error) {
	requestID := uuid.New().String()
	result := &SigningResult{RequestID: requestID, Result: ResultFailed}

	if !a.validator.IsAuthorizedAggregator(a.publicKey) {
		return result, ErrUnauthorized
	}
	if set == nil || len(partials) == 0 {
		return result, ErrInvalidInput
	}

	party, err := a.nodes.PeersOf(dkgID)
	if err != nil {
		return result, errors.Wrapf(err, "resolve party for dkg %s", dkgID)
	}
	member := make(map[uint64]struct{}, len(party))
	for _, id := range party {
		member[id] = struct{}{}
	}
	for _, id := range set.SignerIDs() {
		if _, ok := member[id]; !ok {
			return result, errors.Wrapf(ErrInvalidInput, "signer %d not in party of dkg %s", id, dkgID)
		}
	}

	// Recompute the aggregated nonce independently; any signer reporting a
	// different one is misbehaving, not merely inconsistent.
	R, err := set.GroupCommitment(message)
	if err != nil {
		return result, err
	}
	expectedNonce := curve.SerializePoint(R)
	for _, p := range partials {
		if !bytes.Equal(p.AggregatedNonce, expectedNonce) {
			result.Malicious = append(result.Malicious, p.ID)
		}
	}
	if len(result.Malicious) > 0 {
		log.Warn().
			Str("request_id", requestID).
			Str("dkg_id", dkgID).
			Uints64("malicious", result.Malicious).
			Msg("signers disagree on aggregated nonce")
		return result, ErrInconsistentAggregate
	}

	sig, err := Aggregate(message, partials, set, groupKey)
	if err != nil {
		var partialErr *PartialInvalidError
		if errors.As(err, &partialErr) {
			result.Malicious = append(result.Malicious, partialErr.SignerID)
			log.Warn().
				Str("request_id", requestID).
				Str("dkg_id", dkgID).
				Uint64("signer", partialErr.SignerID).
				Msg("partial signature rejected")
		}
		return result, err
	}

	if err := sig.Verify(message); err != nil {
		return result, err
	}

	result.Result = ResultSuccessful
	result.Signature = sig
	log.Info().
		Str("request_id", requestID).
		Str("dkg_id", dkgID).
		Int("signers", len(partials)).
		Msg("group signature aggregated")
	return result, nil
}
