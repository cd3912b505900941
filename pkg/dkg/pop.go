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

package dkg

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/jeremyhahn/go-frostsig/pkg/curve"
)

// Proof context labels. Each proof binds the label, the DKG session id and
// the prover's participant id, preventing replay across sessions and across
// use sites within a session.
const (
	// ContextCoefficient0 labels the proof of knowledge of the polynomial
	// constant term under its commitment.
	ContextCoefficient0 = "coef0"

	// ContextEphemeralKey labels the proof of knowledge of the ephemeral
	// communication secret key.
	ContextEphemeralKey = "epk"

	// ContextShare labels the proof of knowledge of the final key share,
	// reported to external registries after a successful session.
	ContextShare = "share"
)

// Proof is a Schnorr proof of knowledge of the discrete log of a public key.
// The wire field names are part of the round-message contract.
type Proof struct {
	// Nonce is the compressed commitment point R = k*G.
	Nonce []byte `json:"nonce"`

	// Signature is the response scalar s = k + c*sk mod q.
	Signature []byte `json:"signature"`
}

// Prove creates a Schnorr proof of knowledge of sk under pk, bound to the
// given context label, session id and participant id.
func Prove(sk *secp256k1.ModNScalar, pk *secp256k1.JacobianPoint, label, dkgID string, id uint64) (*Proof, error) {
	k, err := curve.RandomScalar()
	if err != nil {
		return nil, err
	}
	defer curve.ZeroScalar(k)

	R := curve.BasePointMult(k)
	c := proofChallenge(pk, R, label, dkgID, id)

	// s = k + c*sk
	s := new(secp256k1.ModNScalar).Set(sk)
	s.Mul(c)
	s.Add(k)

	return &Proof{
		Nonce:     curve.SerializePoint(R),
		Signature: curve.SerializeScalar(s),
	}, nil
}

// Verify checks the proof against pk and the same context that was used to
// create it: s*G == R + c*pk.
func (p *Proof) Verify(pk *secp256k1.JacobianPoint, label, dkgID string, id uint64) bool {
	if p == nil {
		return false
	}
	R, err := curve.ParsePoint(p.Nonce)
	if err != nil || curve.IsIdentity(R) {
		return false
	}
	s, err := curve.ParseScalar(p.Signature)
	if err != nil {
		return false
	}

	c := proofChallenge(pk, R, label, dkgID, id)
	lhs := curve.BasePointMult(s)
	rhs := curve.AddPoints(R, curve.PointMult(c, pk))
	return curve.PointsEqual(lhs, rhs)
}

func proofChallenge(pk, R *secp256k1.JacobianPoint, label, dkgID string, id uint64) *secp256k1.ModNScalar {
	return curve.HashToScalar(curve.DomainProof,
		[]byte(label),
		[]byte(dkgID),
		curve.EncodeID(id),
		curve.SerializePoint(pk),
		curve.SerializePoint(R),
	)
}
