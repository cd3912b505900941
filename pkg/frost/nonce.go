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
)

// PrivateNonce is the secret half of a nonce commitment pair, keyed by the
// hiding commitment D (the "nonce handle"). Strictly single-use: it is
// consumed on a signing attempt regardless of outcome.
type PrivateNonce struct {
	// Handle is the compressed hiding commitment D used as the lookup key.
	Handle []byte `json:"public_nonce_d"`

	// Hiding is the secret scalar d. Secret.
	Hiding []byte `json:"d"`

	// Binding is the secret scalar e. Secret.
	Binding []byte `json:"e"`
}

// Zeroize clears the secret scalars.
func (n *PrivateNonce) Zeroize() {
	if n == nil {
		return
	}
	curve.ZeroBytes(n.Hiding)
	curve.ZeroBytes(n.Binding)
	n.Hiding = nil
	n.Binding = nil
}

// NonceStore is the narrow view of the data manager that signing needs.
// Take must be atomic: two concurrent signing attempts over the same handle
// must not both receive the pair.
type NonceStore interface {
	// StoreNonces persists a batch of private pairs for a participant.
	StoreNonces(id uint64, nonces []*PrivateNonce) error

	// TakeNonce removes and returns the pair for the given handle.
	// Returns ErrNonceMissing if the handle is unknown or already consumed.
	TakeNonce(id uint64, handle []byte) (*PrivateNonce, error)
}

// CreateNonces batch-produces count nonce pairs for a participant. It
// returns the public commitments to publish to the aggregator and the
// aligned private pairs, which the caller must hand to the data manager
// before the commitments are released.
func CreateNonces(id uint64, count int) ([]*NonceCommitment, []*PrivateNonce, error) {
	if id == 0 || count <= 0 {
		return nil, nil, ErrInvalidInput
	}

	commitments := make([]*NonceCommitment, count)
	privates := make([]*PrivateNonce, count)
	for i := 0; i < count; i++ {
		d, err := curve.RandomScalar()
		if err != nil {
			return nil, nil, err
		}
		e, err := curve.RandomScalar()
		if err != nil {
			curve.ZeroScalar(d)
			return nil, nil, err
		}

		D := curve.SerializePoint(curve.BasePointMult(d))
		E := curve.SerializePoint(curve.BasePointMult(e))

		commitments[i] = &NonceCommitment{
			ID:                id,
			HidingCommitment:  D,
			BindingCommitment: E,
		}
		privates[i] = &PrivateNonce{
			Handle:  D,
			Hiding:  curve.SerializeScalar(d),
			Binding: curve.SerializeScalar(e),
		}
		curve.ZeroScalars(d, e)
	}
	return commitments, privates, nil
}
