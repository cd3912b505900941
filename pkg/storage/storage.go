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

// Package storage defines the DataManager contract that persists private
// nonce pairs and long-lived key shares for the signing core. The core
// treats implementations as opaque key-value stores with atomic single-key
// operations; durability is an implementation concern.
package storage

import (
	"errors"

	"github.com/jeremyhahn/go-frostsig/pkg/dkg"
	"github.com/jeremyhahn/go-frostsig/pkg/frost"
)

// ErrKeyNotFound indicates that no key share is stored for a dkg id.
var ErrKeyNotFound = errors.New("storage: key share not found")

// DataManager persists private nonces and key shares. TakeNonce must be
// atomic so a nonce pair can never be handed to two concurrent signing
// attempts.
type DataManager interface {
	frost.NonceStore

	// StoreKey persists a participant's key share for a DKG session.
	StoreKey(dkgID string, key *dkg.KeyShare) error

	// LoadKey returns the stored key share for a DKG session, or
	// ErrKeyNotFound.
	LoadKey(dkgID string) (*dkg.KeyShare, error)
}
