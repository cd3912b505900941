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
	"github.com/jeremyhahn/go-frostsig/pkg/curve"
	"github.com/jeremyhahn/go-frostsig/pkg/dkg"
)

// VerifyPartial checks one partial signature against its signing context:
//
//	z_j*G == (D_j + rho_j*E_j) + lambda_j*c*Y_j
//
// A nil return means the partial is valid.
func VerifyPartial(partial *PartialSignature, set *CommitmentSet, message, groupKey []byte) error {
	if partial == nil || set == nil {
		return ErrInvalidInput
	}
	entry := set.Find(partial.ID)
	if entry == nil {
		return &PartialInvalidError{SignerID: partial.ID}
	}

	z, err := curve.ParseScalar(partial.Signature)
	if err != nil {
		return &PartialInvalidError{SignerID: partial.ID}
	}
	Yj, err := curve.ParsePoint(partial.VerificationKey)
	if err != nil || curve.IsIdentity(Yj) {
		return &PartialInvalidError{SignerID: partial.ID}
	}
	Y, err := curve.ParsePoint(groupKey)
	if err != nil || curve.IsIdentity(Y) {
		return ErrInvalidInput
	}

	R, err := set.GroupCommitment(message)
	if err != nil {
		return err
	}
	Rj, err := curve.ParsePoint(partial.AggregatedNonce)
	if err != nil || !curve.PointsEqual(R, Rj) {
		return &PartialInvalidError{SignerID: partial.ID}
	}

	D, err := curve.ParsePoint(entry.HidingCommitment)
	if err != nil {
		return ErrInvalidInput
	}
	E, err := curve.ParsePoint(entry.BindingCommitment)
	if err != nil {
		return ErrInvalidInput
	}

	rho := set.BindingFactor(partial.ID, message)
	c := challenge(R, Y, message)
	lambda, err := dkg.LagrangeCoefficient(partial.ID, set.SignerIDs())
	if err != nil {
		return err
	}

	lhs := curve.BasePointMult(z)

	lambdaC := lambda.Mul(c)
	rhs := curve.AddPoints(D, curve.PointMult(rho, E), curve.PointMult(lambdaC, Yj))

	if !curve.PointsEqual(lhs, rhs) {
		return &PartialInvalidError{SignerID: partial.ID}
	}
	return nil
}

// VerifyGroupSignature statelessly verifies an aggregated signature:
//
//	z*G == R + H("challenge", R, Y, m)*Y
//
// Nothing from the DKG beyond the group key is required.
func VerifyGroupSignature(nonce, signature, groupKey, message []byte) error {
	R, err := curve.ParsePoint(nonce)
	if err != nil || curve.IsIdentity(R) {
		return ErrInvalidInput
	}
	z, err := curve.ParseScalar(signature)
	if err != nil {
		return ErrInvalidInput
	}
	Y, err := curve.ParsePoint(groupKey)
	if err != nil || curve.IsIdentity(Y) {
		return ErrInvalidInput
	}

	c := challenge(R, Y, message)
	lhs := curve.BasePointMult(z)
	rhs := curve.AddPoints(R, curve.PointMult(c, Y))
	if !curve.PointsEqual(lhs, rhs) {
		return ErrVerificationFailed
	}
	return nil
}
