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

// Package node defines the peer directory and authorization contracts the
// signing core depends on. Discovery and transport live outside the core;
// implementations of these interfaces are injected per node instance.
package node

import "errors"

var (
	// ErrNodeNotFound indicates an id with no directory entry.
	ErrNodeNotFound = errors.New("node: not found")

	// ErrUnknownSession indicates a dkg id with no registered party.
	ErrUnknownSession = errors.New("node: unknown dkg session")
)

// Node is a peer directory entry.
type Node struct {
	// ID is the participant id, the polynomial evaluation point.
	ID uint64 `json:"id"`

	// PublicKey is the peer's long-term public key in compressed form.
	PublicKey []byte `json:"public_key"`

	// Address is the peer's network address, opaque to the core.
	Address string `json:"network_address"`
}

// NodeInfo enumerates peers and exposes their long-term public keys.
type NodeInfo interface {
	// Lookup returns the directory entry for a participant.
	Lookup(id uint64) (*Node, error)

	// PeersOf returns the participant set of a DKG session.
	PeersOf(dkgID string) ([]uint64, error)
}

// Validator authorizes privileged protocol roles by long-term public key.
type Validator interface {
	// IsAuthorizedAggregator reports whether the key may aggregate
	// signatures.
	IsAuthorizedAggregator(publicKey []byte) bool

	// IsAuthorizedDKGInitiator reports whether the key may initiate DKG
	// sessions.
	IsAuthorizedDKGInitiator(publicKey []byte) bool
}
