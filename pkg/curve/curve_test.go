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
	"bytes"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

func TestScalarRoundTrip(t *testing.T) {
	t.Run("RandomScalar", func(t *testing.T) {
		s, err := RandomScalar()
		if err != nil {
			t.Fatalf("RandomScalar failed: %v", err)
		}
		if s.IsZero() {
			t.Fatal("RandomScalar returned zero")
		}

		parsed, err := ParseScalar(SerializeScalar(s))
		if err != nil {
			t.Fatalf("ParseScalar failed: %v", err)
		}
		if !ScalarsEqual(s, parsed) {
			t.Error("scalar round trip mismatch")
		}
	})

	t.Run("RejectsWrongLength", func(t *testing.T) {
		if _, err := ParseScalar(make([]byte, 31)); err != ErrInvalidScalarEncoding {
			t.Errorf("expected ErrInvalidScalarEncoding, got %v", err)
		}
	})

	t.Run("RejectsOverflow", func(t *testing.T) {
		overflow := bytes.Repeat([]byte{0xff}, ScalarSize)
		if _, err := ParseScalar(overflow); err != ErrInvalidScalarEncoding {
			t.Errorf("expected ErrInvalidScalarEncoding, got %v", err)
		}
	})
}

func TestScalarFromID(t *testing.T) {
	five := ScalarFromID(5)
	expected := new(secp256k1.ModNScalar).SetInt(5)
	if !ScalarsEqual(five, expected) {
		t.Error("ScalarFromID(5) != 5")
	}
	if !ScalarFromID(0).IsZero() {
		t.Error("ScalarFromID(0) should be zero")
	}
}

func TestPointRoundTrip(t *testing.T) {
	t.Run("BasePoint", func(t *testing.T) {
		k, err := RandomScalar()
		if err != nil {
			t.Fatalf("RandomScalar failed: %v", err)
		}
		p := BasePointMult(k)
		encoded := SerializePoint(p)
		if len(encoded) != PointSize {
			t.Fatalf("expected %d bytes, got %d", PointSize, len(encoded))
		}

		parsed, err := ParsePoint(encoded)
		if err != nil {
			t.Fatalf("ParsePoint failed: %v", err)
		}
		if !PointsEqual(p, parsed) {
			t.Error("point round trip mismatch")
		}
	})

	t.Run("Identity", func(t *testing.T) {
		identity := &secp256k1.JacobianPoint{}
		if !IsIdentity(identity) {
			t.Fatal("zero point should be identity")
		}
		encoded := SerializePoint(identity)
		if !bytes.Equal(encoded, make([]byte, PointSize)) {
			t.Error("identity should serialize as all zeros")
		}
		parsed, err := ParsePoint(encoded)
		if err != nil {
			t.Fatalf("ParsePoint failed: %v", err)
		}
		if !IsIdentity(parsed) {
			t.Error("all-zero encoding should parse to identity")
		}
	})

	t.Run("RejectsGarbage", func(t *testing.T) {
		garbage := bytes.Repeat([]byte{0xff}, PointSize)
		if _, err := ParsePoint(garbage); err != ErrInvalidPointEncoding {
			t.Errorf("expected ErrInvalidPointEncoding, got %v", err)
		}
		if _, err := ParsePoint([]byte{0x02}); err != ErrInvalidPointEncoding {
			t.Errorf("expected ErrInvalidPointEncoding, got %v", err)
		}
	})
}

func TestPointArithmetic(t *testing.T) {
	t.Run("AddMatchesScalarAdd", func(t *testing.T) {
		a, _ := RandomScalar()
		b, _ := RandomScalar()

		sum := new(secp256k1.ModNScalar).Add2(a, b)
		direct := BasePointMult(sum)
		added := AddPoints(BasePointMult(a), BasePointMult(b))
		if !PointsEqual(direct, added) {
			t.Error("(a+b)*G != a*G + b*G")
		}
	})

	t.Run("MultMatchesScalarMul", func(t *testing.T) {
		a, _ := RandomScalar()
		b, _ := RandomScalar()

		prod := new(secp256k1.ModNScalar).Mul2(a, b)
		direct := BasePointMult(prod)
		chained := PointMult(a, BasePointMult(b))
		if !PointsEqual(direct, chained) {
			t.Error("(a*b)*G != a*(b*G)")
		}
	})
}

func TestInvertScalar(t *testing.T) {
	t.Run("Inverse", func(t *testing.T) {
		s, _ := RandomScalar()
		inv, err := InvertScalar(s)
		if err != nil {
			t.Fatalf("InvertScalar failed: %v", err)
		}
		one := new(secp256k1.ModNScalar).SetInt(1)
		if !ScalarsEqual(new(secp256k1.ModNScalar).Mul2(s, inv), one) {
			t.Error("s * s^-1 != 1")
		}
	})

	t.Run("Zero", func(t *testing.T) {
		if _, err := InvertScalar(new(secp256k1.ModNScalar)); err != ErrZeroScalar {
			t.Errorf("expected ErrZeroScalar, got %v", err)
		}
	})
}

func TestHashDomainSeparation(t *testing.T) {
	input := []byte("same input")

	s1 := HashToScalar(DomainBinding, input)
	s2 := HashToScalar(DomainChallenge, input)
	if ScalarsEqual(s1, s2) {
		t.Error("different domains must produce different scalars")
	}

	again := HashToScalar(DomainBinding, input)
	if !ScalarsEqual(s1, again) {
		t.Error("hash must be deterministic")
	}
}

func TestZeroize(t *testing.T) {
	t.Run("Bytes", func(t *testing.T) {
		b := []byte{1, 2, 3, 4}
		ZeroBytes(b)
		if !bytes.Equal(b, make([]byte, 4)) {
			t.Error("ZeroBytes left data behind")
		}
	})

	t.Run("Scalar", func(t *testing.T) {
		s, _ := RandomScalar()
		ZeroScalar(s)
		if !s.IsZero() {
			t.Error("ZeroScalar left value behind")
		}
	})
}
