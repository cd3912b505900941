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

package curve

import (
	"crypto/rand"
	"crypto/subtle"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// RandomScalar samples a scalar uniformly from [1, q) using rejection
// sampling against crypto/rand.
func RandomScalar() (*secp256k1.ModNScalar, error) {
	var buf [ScalarSize]byte
	for {
		if _, err := rand.Read(buf[:]); err != nil {
			return nil, err
		}
		s := new(secp256k1.ModNScalar)
		overflow := s.SetBytes(&buf)
		ZeroBytes(buf[:])
		if overflow != 0 || s.IsZero() {
			continue
		}
		return s, nil
	}
}

// ScalarFromID converts a participant id to a scalar.
func ScalarFromID(id uint64) *secp256k1.ModNScalar {
	var buf [ScalarSize]byte
	copy(buf[ScalarSize-IDSize:], EncodeID(id))
	s := new(secp256k1.ModNScalar)
	s.SetBytes(&buf)
	return s
}

// SerializeScalar returns the 32-byte big-endian encoding of s.
func SerializeScalar(s *secp256k1.ModNScalar) []byte {
	b := s.Bytes()
	return b[:]
}

// ParseScalar decodes a 32-byte big-endian scalar. Values >= q are rejected
// as non-canonical.
func ParseScalar(b []byte) (*secp256k1.ModNScalar, error) {
	if len(b) != ScalarSize {
		return nil, ErrInvalidScalarEncoding
	}
	var buf [ScalarSize]byte
	copy(buf[:], b)
	s := new(secp256k1.ModNScalar)
	if overflow := s.SetBytes(&buf); overflow != 0 {
		return nil, ErrInvalidScalarEncoding
	}
	return s, nil
}

// ScalarsEqual compares two scalars in constant time.
func ScalarsEqual(a, b *secp256k1.ModNScalar) bool {
	ab := a.Bytes()
	bb := b.Bytes()
	return subtle.ConstantTimeCompare(ab[:], bb[:]) == 1
}

// InvertScalar returns s^-1 mod q, or ErrZeroScalar for the zero scalar.
// The inversion is variable time and must only be used on public values
// (Lagrange denominators over public ids).
func InvertScalar(s *secp256k1.ModNScalar) (*secp256k1.ModNScalar, error) {
	if s.IsZero() {
		return nil, ErrZeroScalar
	}
	inv := new(secp256k1.ModNScalar)
	inv.InverseValNonConst(s)
	return inv, nil
}
