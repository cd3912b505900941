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

package node

import (
	"encoding/hex"
	"sync"
)

// Registry is an in-memory NodeInfo implementation. It is safe for
// concurrent use and suitable for tests and single-process deployments;
// production nodes typically back this with their discovery layer.
type Registry struct {
	mu      sync.RWMutex
	nodes   map[uint64]*Node
	parties map[string][]uint64
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		nodes:   make(map[uint64]*Node),
		parties: make(map[string][]uint64),
	}
}

// Register adds or replaces a directory entry.
func (r *Registry) Register(n *Node) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nodes[n.ID] = n
}

// RegisterParty records the participant set of a DKG session.
func (r *Registry) RegisterParty(dkgID string, party []uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]uint64, len(party))
	copy(ids, party)
	r.parties[dkgID] = ids
}

// Lookup implements NodeInfo.
func (r *Registry) Lookup(id uint64) (*Node, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.nodes[id]
	if !ok {
		return nil, ErrNodeNotFound
	}
	return n, nil
}

// PeersOf implements NodeInfo.
func (r *Registry) PeersOf(dkgID string) ([]uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	party, ok := r.parties[dkgID]
	if !ok {
		return nil, ErrUnknownSession
	}
	ids := make([]uint64, len(party))
	copy(ids, party)
	return ids, nil
}

// KeyAllowlist is a Validator backed by static allowlists of long-term
// public keys.
type KeyAllowlist struct {
	mu          sync.RWMutex
	aggregators map[string]struct{}
	initiators  map[string]struct{}
}

// NewKeyAllowlist creates an empty allowlist; nothing is authorized until
// keys are allowed.
func NewKeyAllowlist() *KeyAllowlist {
	return &KeyAllowlist{
		aggregators: make(map[string]struct{}),
		initiators:  make(map[string]struct{}),
	}
}

// AllowAggregator authorizes a key for signature aggregation.
func (a *KeyAllowlist) AllowAggregator(publicKey []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.aggregators[hex.EncodeToString(publicKey)] = struct{}{}
}

// AllowInitiator authorizes a key for DKG initiation.
func (a *KeyAllowlist) AllowInitiator(publicKey []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.initiators[hex.EncodeToString(publicKey)] = struct{}{}
}

// IsAuthorizedAggregator implements Validator.
func (a *KeyAllowlist) IsAuthorizedAggregator(publicKey []byte) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, ok := a.aggregators[hex.EncodeToString(publicKey)]
	return ok
}

// IsAuthorizedDKGInitiator implements Validator.
func (a *KeyAllowlist) IsAuthorizedDKGInitiator(publicKey []byte) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, ok := a.initiators[hex.EncodeToString(publicKey)]
	return ok
}
