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

package storage

import (
	"encoding/hex"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"

	"github.com/jeremyhahn/go-frostsig/pkg/dkg"
	"github.com/jeremyhahn/go-frostsig/pkg/frost"
)

// Memory is an in-process DataManager. The mutex makes TakeNonce atomic
// across concurrent signing attempts. Key shares are stored as their JSON
// wire encoding so the round trip exercises the same schema a durable
// backend would.
type Memory struct {
	mu     sync.Mutex
	nonces map[uint64]map[string]*frost.PrivateNonce
	keys   map[string][]byte
}

// NewMemory creates an empty in-memory data manager.
func NewMemory() *Memory {
	return &Memory{
		nonces: make(map[uint64]map[string]*frost.PrivateNonce),
		keys:   make(map[string][]byte),
	}
}

// StoreNonces implements DataManager.
func (m *Memory) StoreNonces(id uint64, nonces []*frost.PrivateNonce) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	byHandle, ok := m.nonces[id]
	if !ok {
		byHandle = make(map[string]*frost.PrivateNonce, len(nonces))
		m.nonces[id] = byHandle
	}
	for _, n := range nonces {
		byHandle[hex.EncodeToString(n.Handle)] = n
	}
	return nil
}

// TakeNonce implements DataManager. The pair is removed before it is
// returned; a second take of the same handle reports frost.ErrNonceMissing.
func (m *Memory) TakeNonce(id uint64, handle []byte) (*frost.PrivateNonce, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	byHandle := m.nonces[id]
	key := hex.EncodeToString(handle)
	n, ok := byHandle[key]
	if !ok {
		return nil, frost.ErrNonceMissing
	}
	delete(byHandle, key)
	return n, nil
}

// StoreKey implements DataManager.
func (m *Memory) StoreKey(dkgID string, key *dkg.KeyShare) error {
	encoded, err := json.Marshal(key)
	if err != nil {
		return errors.Wrap(err, "encode key share")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[dkgID] = encoded
	return nil
}

// LoadKey implements DataManager.
func (m *Memory) LoadKey(dkgID string) (*dkg.KeyShare, error) {
	m.mu.Lock()
	encoded, ok := m.keys[dkgID]
	m.mu.Unlock()
	if !ok {
		return nil, ErrKeyNotFound
	}
	var key dkg.KeyShare
	if err := json.Unmarshal(encoded, &key); err != nil {
		return nil, errors.Wrap(err, "decode key share")
	}
	return &key, nil
}
