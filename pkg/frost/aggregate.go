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

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/jeremyhahn/go-frostsig/pkg/curve"
)

// Signature is the final aggregated group signature.
type Signature struct {
	// Nonce is the aggregated nonce point R in compressed form.
	Nonce []byte `json:"nonce"`

	// Signature is the aggregated response z = sum_j z_j.
	Signature []byte `json:"signature"`

	// PublicKey is the group public key Y in compressed form.
	PublicKey []byte `json:"public_key"`

	// MessageHash is the domain-separated digest of the signed message.
	MessageHash []byte `json:"message_hash"`
}

// Verify checks the signature over the given message.
func (s *Signature) Verify(message []byte) error {
	return VerifyGroupSignature(s.Nonce, s.Signature, s.PublicKey, message)
}

// Aggregate combines partial signatures into the final group signature.
//
// Every partial must report the same aggregated nonce; a disagreement fails
// with ErrInconsistentAggregate before any per-signer work. Each partial is
// then verified individually so that a bad one is attributed to its signer
// via PartialInvalidError; recovery is delegated to the caller.
func Aggregate(message []byte, partials []*PartialSignature, set *CommitmentSet, groupKey []byte) (*Signature, error) {
	if len(partials) == 0 || set == nil {
		return nil, ErrInvalidInput
	}

	first := partials[0].AggregatedNonce
	for _, p := range partials[1:] {
		if !bytes.Equal(p.AggregatedNonce, first) {
			return nil, ErrInconsistentAggregate
		}
	}

	z := new(secp256k1.ModNScalar)
	for _, p := range partials {
		if err := VerifyPartial(p, set, message, groupKey); err != nil {
			return nil, err
		}
		zj, err := curve.ParseScalar(p.Signature)
		if err != nil {
			return nil, &PartialInvalidError{SignerID: p.ID}
		}
		z.Add(zj)
	}

	return &Signature{
		Nonce:       first,
		Signature:   curve.SerializeScalar(z),
		PublicKey:   groupKey,
		MessageHash: curve.HashBytes(curve.DomainMessage, message),
	}, nil
}
