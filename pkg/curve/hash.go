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
	"crypto/sha256"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// DomainPrefix is prepended to every hash domain tag. This keeps hash outputs
// unique to this protocol and prevents collisions with other Schnorr
// deployments on the same curve.
const DomainPrefix = "FROST-SIG/"

// Hash domain tags. Each use site carries its own tag; two sites must never
// share one.
const (
	// DomainProof is the Schnorr proof-of-knowledge challenge domain.
	DomainProof = "pop"

	// DomainBinding is the per-signer nonce binding factor domain.
	DomainBinding = "rho"

	// DomainChallenge is the group signature challenge domain.
	DomainChallenge = "challenge"

	// DomainMessage is the message digest domain for the final artifact.
	DomainMessage = "msg"
)

// HashBytes returns the SHA-256 digest of the domain-tagged concatenation of
// the given chunks.
func HashBytes(domain string, chunks ...[]byte) []byte {
	h := sha256.New()
	h.Write([]byte(DomainPrefix))
	h.Write([]byte(domain))
	for _, c := range chunks {
		h.Write(c)
	}
	return h.Sum(nil)
}

// HashToScalar hashes the domain-tagged input to a uniform scalar in [0, q).
// The digest is interpreted big-endian and reduced mod q; the reduction bias
// is negligible for secp256k1.
func HashToScalar(domain string, chunks ...[]byte) *secp256k1.ModNScalar {
	digest := HashBytes(domain, chunks...)
	s := new(secp256k1.ModNScalar)
	s.SetByteSlice(digest)
	return s
}
