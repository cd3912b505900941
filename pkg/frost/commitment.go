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
	"sort"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/jeremyhahn/go-frostsig/pkg/curve"
)

// NonceCommitment is one signer's public nonce commitment pair (D, E).
type NonceCommitment struct {
	ID uint64 `json:"id"`

	// HidingCommitment is D = d*G in compressed form.
	HidingCommitment []byte `json:"public_nonce_d"`

	// BindingCommitment is E = e*G in compressed form.
	BindingCommitment []byte `json:"public_nonce_e"`
}

// CommitmentSet is the ordered commitment set B for one signing event:
// entries sorted by signer id ascending. The ordering is canonical and every
// signer must reproduce it bit-exactly.
type CommitmentSet struct {
	entries []*NonceCommitment
}

// NewCommitmentSet builds the canonical commitment set from the given
// entries, sorting by id. Duplicate ids, zero ids, and malformed or identity
// points are rejected.
func NewCommitmentSet(entries []*NonceCommitment) (*CommitmentSet, error) {
	if len(entries) == 0 {
		return nil, ErrInvalidInput
	}
	sorted := make([]*NonceCommitment, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	var prev uint64
	for _, e := range sorted {
		if e == nil || e.ID == 0 {
			return nil, ErrInvalidInput
		}
		if e.ID == prev {
			return nil, ErrBadCommitments
		}
		prev = e.ID
		for _, enc := range [][]byte{e.HidingCommitment, e.BindingCommitment} {
			p, err := curve.ParsePoint(enc)
			if err != nil || curve.IsIdentity(p) {
				return nil, ErrInvalidInput
			}
		}
	}
	return &CommitmentSet{entries: sorted}, nil
}

// Entries returns the commitments in canonical order.
func (b *CommitmentSet) Entries() []*NonceCommitment {
	return b.entries
}

// SignerIDs returns the signer subset S in ascending order.
func (b *CommitmentSet) SignerIDs() []uint64 {
	ids := make([]uint64, len(b.entries))
	for i, e := range b.entries {
		ids[i] = e.ID
	}
	return ids
}

// Find returns the entry for the given signer id, or nil.
func (b *CommitmentSet) Find(id uint64) *NonceCommitment {
	for _, e := range b.entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Encode returns the canonical byte encoding of the set: for each entry in
// id order, id || compress(D) || compress(E) with fixed-width id encoding.
func (b *CommitmentSet) Encode() []byte {
	out := make([]byte, 0, len(b.entries)*(curve.IDSize+2*curve.PointSize))
	for _, e := range b.entries {
		out = append(out, curve.EncodeID(e.ID)...)
		out = append(out, e.HidingCommitment...)
		out = append(out, e.BindingCommitment...)
	}
	return out
}

// BindingFactor computes the binding factor rho for one signer:
// H("rho", id, message, Encode(B)).
func (b *CommitmentSet) BindingFactor(id uint64, message []byte) *secp256k1.ModNScalar {
	return curve.HashToScalar(curve.DomainBinding, curve.EncodeID(id), message, b.Encode())
}

// GroupCommitment computes the aggregated nonce point
// R = sum_k (D_k + rho_k * E_k) over the set. Returns ErrBadCommitments if R
// is the identity.
func (b *CommitmentSet) GroupCommitment(message []byte) (*secp256k1.JacobianPoint, error) {
	R := &secp256k1.JacobianPoint{}
	for _, e := range b.entries {
		D, err := curve.ParsePoint(e.HidingCommitment)
		if err != nil {
			return nil, ErrInvalidInput
		}
		E, err := curve.ParsePoint(e.BindingCommitment)
		if err != nil {
			return nil, ErrInvalidInput
		}
		rho := b.BindingFactor(e.ID, message)
		R = curve.AddPoints(R, D, curve.PointMult(rho, E))
	}
	if curve.IsIdentity(R) {
		return nil, ErrBadCommitments
	}
	return R, nil
}
