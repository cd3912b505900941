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
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"

	"github.com/jeremyhahn/go-frostsig/pkg/curve"
	"github.com/jeremyhahn/go-frostsig/pkg/dkg"
)

// PartialSignature is one signer's contribution to a signing event. Each
// partial is verifiable in isolation given the commitment set, the message
// and the group key.
type PartialSignature struct {
	ID uint64 `json:"id"`

	// Signature is the response scalar z = d + e*rho + lambda*share*c.
	Signature []byte `json:"signature"`

	// VerificationKey is the signer's public key share Y_i in compressed
	// form.
	VerificationKey []byte `json:"public_key_share"`

	// AggregatedNonce is the signer's view of the aggregated nonce point R
	// in compressed form. All honest signers over the same (B, m) agree.
	AggregatedNonce []byte `json:"aggregated_public_nonce"`
}

// Sign produces a partial signature over message for the signer owning key,
// under the commitment set B. The private nonce pair is taken from the store
// and consumed regardless of outcome.
func Sign(key *dkg.KeyShare, set *CommitmentSet, message []byte, store NonceStore) (*PartialSignature, error) {
	if key == nil || set == nil || store == nil {
		return nil, ErrInvalidInput
	}

	self := set.Find(key.ID)
	if self == nil {
		return nil, ErrUnknownCommitment
	}

	// Consume the nonce pair first: single use holds even if signing fails
	// below.
	nonce, err := store.TakeNonce(key.ID, self.HidingCommitment)
	if err != nil {
		return nil, err
	}
	defer nonce.Zeroize()

	d, err := curve.ParseScalar(nonce.Hiding)
	if err != nil {
		return nil, errors.Wrap(err, "stored hiding nonce")
	}
	e, err := curve.ParseScalar(nonce.Binding)
	if err != nil {
		curve.ZeroScalar(d)
		return nil, errors.Wrap(err, "stored binding nonce")
	}
	defer curve.ZeroScalars(d, e)

	share, err := key.ShareScalar()
	if err != nil {
		return nil, errors.Wrap(err, "key share")
	}
	defer curve.ZeroScalar(share)

	groupKey, err := key.GroupPoint()
	if err != nil {
		return nil, errors.Wrap(err, "group key")
	}

	R, err := set.GroupCommitment(message)
	if err != nil {
		return nil, err
	}

	c := challenge(R, groupKey, message)
	lambda, err := dkg.LagrangeCoefficient(key.ID, set.SignerIDs())
	if err != nil {
		return nil, err
	}

	// z = d + e*rho + lambda*share*c
	rho := set.BindingFactor(key.ID, message)
	z := new(secp256k1.ModNScalar).Set(e)
	z.Mul(rho)
	z.Add(d)
	term := new(secp256k1.ModNScalar).Set(share)
	term.Mul(lambda)
	term.Mul(c)
	z.Add(term)
	curve.ZeroScalar(term)

	return &PartialSignature{
		ID:              key.ID,
		Signature:       curve.SerializeScalar(z),
		VerificationKey: curve.SerializePoint(curve.BasePointMult(share)),
		AggregatedNonce: curve.SerializePoint(R),
	}, nil
}

// challenge computes the Schnorr challenge c = H("challenge", R, Y, m).
func challenge(R, groupKey *secp256k1.JacobianPoint, message []byte) *secp256k1.ModNScalar {
	return curve.HashToScalar(curve.DomainChallenge,
		curve.SerializePoint(R),
		curve.SerializePoint(groupKey),
		message,
	)
}
