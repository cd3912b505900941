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

// Polynomial is a scalar polynomial over the secp256k1 scalar field.
//
// A polynomial f of degree at most t-1 is represented by t coefficients:
// f(x) = coeffs[0] + coeffs[1]*x + ... + coeffs[t-1]*x^(t-1)
//
// The constant term coeffs[0] is the shared secret contribution in the DKG;
// shares are evaluations at nonzero participant ids.
type Polynomial struct {
	coeffs []*secp256k1.ModNScalar
}

// NewRandomPolynomial samples a polynomial of threshold t (degree t-1) with
// uniformly random coefficients from [1, q). If coefficient0 is non-nil it is
// used as the constant term, allowing deterministic key material to be
// injected.
func NewRandomPolynomial(t int, coefficient0 *secp256k1.ModNScalar) (*Polynomial, error) {
	if t <= 0 {
		return nil, ErrInvalidThreshold
	}

	coeffs := make([]*secp256k1.ModNScalar, t)
	for i := range coeffs {
		s, err := curve.RandomScalar()
		if err != nil {
			return nil, err
		}
		coeffs[i] = s
	}
	if coefficient0 != nil {
		c := *coefficient0
		coeffs[0] = &c
	}

	return &Polynomial{coeffs: coeffs}, nil
}

// Threshold returns the threshold value t (the number of coefficients).
func (p *Polynomial) Threshold() int {
	return len(p.coeffs)
}

// Eval evaluates the polynomial at x using Horner's method.
//
// SECURITY: This function panics if x is zero because evaluating at zero
// reveals the secret (constant term). Use ConstantTerm() for explicit access.
func (p *Polynomial) Eval(x *secp256k1.ModNScalar) *secp256k1.ModNScalar {
	if x.IsZero() {
		panic("dkg: polynomial evaluation at zero would reveal secret")
	}

	value := new(secp256k1.ModNScalar)
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		value.Mul(x)
		value.Add(p.coeffs[i])
	}
	return value
}

// EvalAt evaluates the polynomial at a participant id.
func (p *Polynomial) EvalAt(id uint64) *secp256k1.ModNScalar {
	return p.Eval(curve.ScalarFromID(id))
}

// ConstantTerm returns a copy of the constant term f(0).
func (p *Polynomial) ConstantTerm() *secp256k1.ModNScalar {
	c := *p.coeffs[0]
	return &c
}

// Commit returns the coefficient commitments [a_0*G, a_1*G, ..., a_(t-1)*G].
func (p *Polynomial) Commit() []*secp256k1.JacobianPoint {
	commitments := make([]*secp256k1.JacobianPoint, len(p.coeffs))
	for i, c := range p.coeffs {
		commitments[i] = curve.BasePointMult(c)
	}
	return commitments
}

// Zeroize overwrites all coefficients with zero and drops the references.
func (p *Polynomial) Zeroize() {
	if p == nil {
		return
	}
	for i := range p.coeffs {
		curve.ZeroScalar(p.coeffs[i])
		p.coeffs[i] = nil
	}
	p.coeffs = nil
}

// EvalCommitments evaluates a coefficient commitment vector at a participant
// id:
//
//	C_0 + id*C_1 + id^2*C_2 + ... + id^(t-1)*C_(t-1)
//
// This is the public key corresponding to the secret share f(id) and is used
// to verify received shares without learning the polynomial.
func EvalCommitments(commitments []*secp256k1.JacobianPoint, id uint64) *secp256k1.JacobianPoint {
	x := curve.ScalarFromID(id)

	result := &secp256k1.JacobianPoint{}
	xPower := new(secp256k1.ModNScalar).SetInt(1)
	for i, c := range commitments {
		if !curve.IsIdentity(c) {
			result = curve.AddPoints(result, curve.PointMult(xPower, c))
		}
		if i < len(commitments)-1 {
			xPower.Mul(x)
		}
	}
	return result
}

// LagrangeCoefficient computes the Lagrange coefficient of id over the signer
// set at evaluation point zero:
//
//	lambda_id(S) = prod_{k in S, k != id} id_k * (id_k - id)^-1 mod q
//
// Returns ErrDuplicateParticipant if the set contains a duplicate id and
// ErrUnknownParticipant if id is not a member of the set.
func LagrangeCoefficient(id uint64, signerSet []uint64) (*secp256k1.ModNScalar, error) {
	member := false
	seen := make(map[uint64]struct{}, len(signerSet))
	for _, k := range signerSet {
		if _, dup := seen[k]; dup {
			return nil, ErrDuplicateParticipant
		}
		seen[k] = struct{}{}
		if k == id {
			member = true
		}
	}
	if !member {
		return nil, ErrUnknownParticipant
	}

	num := new(secp256k1.ModNScalar).SetInt(1)
	den := new(secp256k1.ModNScalar).SetInt(1)
	idScalar := curve.ScalarFromID(id)

	for _, k := range signerSet {
		if k == id {
			continue
		}
		kScalar := curve.ScalarFromID(k)
		num.Mul(kScalar)

		diff := new(secp256k1.ModNScalar).Set(idScalar)
		diff.Negate()
		diff.Add(kScalar)
		den.Mul(diff)
	}

	denInv, err := curve.InvertScalar(den)
	if err != nil {
		return nil, ErrDuplicateParticipant
	}
	return num.Mul(denInv), nil
}
