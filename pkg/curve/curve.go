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

// Package curve provides the secp256k1 field and group primitives used by the
// threshold signing core.
//
// Scalars are values modulo the curve order q and are represented by
// secp256k1.ModNScalar, whose arithmetic is constant time. Points use the
// Jacobian representation from the same library.
//
// # Canonical Encodings
//
// All encodings are part of the wire contract and must be reproduced
// bit-exactly by every participant:
//   - scalars: 32-byte big-endian
//   - points: 33-byte compressed SEC1; the identity encodes as 33 zero bytes
//   - participant ids: 8-byte big-endian unsigned integers
package curve

import (
	"crypto/subtle"
	"encoding/binary"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

const (
	// ScalarSize is the serialized size of a scalar in bytes.
	ScalarSize = 32

	// PointSize is the serialized size of a compressed point in bytes.
	PointSize = 33

	// IDSize is the serialized size of a participant id in bytes.
	IDSize = 8
)

// BasePointMult computes k*G.
func BasePointMult(k *secp256k1.ModNScalar) *secp256k1.JacobianPoint {
	var result secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(k, &result)
	return &result
}

// PointMult computes k*P.
func PointMult(k *secp256k1.ModNScalar, p *secp256k1.JacobianPoint) *secp256k1.JacobianPoint {
	var result secp256k1.JacobianPoint
	secp256k1.ScalarMultNonConst(k, p, &result)
	return &result
}

// AddPoints returns the sum of the given points. With no arguments it returns
// the identity.
func AddPoints(points ...*secp256k1.JacobianPoint) *secp256k1.JacobianPoint {
	var result secp256k1.JacobianPoint
	for _, p := range points {
		var sum secp256k1.JacobianPoint
		secp256k1.AddNonConst(&result, p, &sum)
		result = sum
	}
	return &result
}

// IsIdentity reports whether p is the point at infinity.
func IsIdentity(p *secp256k1.JacobianPoint) bool {
	return p.Z.IsZero() || (p.X.IsZero() && p.Y.IsZero())
}

// SerializePoint returns the 33-byte compressed encoding of p.
// The identity serializes as all zeros.
func SerializePoint(p *secp256k1.JacobianPoint) []byte {
	if IsIdentity(p) {
		return make([]byte, PointSize)
	}
	affine := *p
	affine.ToAffine()
	return secp256k1.NewPublicKey(&affine.X, &affine.Y).SerializeCompressed()
}

// ParsePoint decodes a 33-byte compressed point. An all-zero encoding decodes
// to the identity, matching SerializePoint.
func ParsePoint(b []byte) (*secp256k1.JacobianPoint, error) {
	if len(b) != PointSize {
		return nil, ErrInvalidPointEncoding
	}
	allZero := true
	for _, by := range b {
		if by != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return &secp256k1.JacobianPoint{}, nil
	}
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, ErrInvalidPointEncoding
	}
	var p secp256k1.JacobianPoint
	pub.AsJacobian(&p)
	return &p, nil
}

// PointsEqual compares two points in constant time over their canonical
// encodings.
func PointsEqual(a, b *secp256k1.JacobianPoint) bool {
	return subtle.ConstantTimeCompare(SerializePoint(a), SerializePoint(b)) == 1
}

// EncodeID returns the fixed-width big-endian encoding of a participant id.
func EncodeID(id uint64) []byte {
	b := make([]byte, IDSize)
	binary.BigEndian.PutUint64(b, id)
	return b
}
