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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&Node{ID: 1, PublicKey: []byte{0x02}, Address: "10.0.0.1:9000"})
	registry.RegisterParty("session-1", []uint64{1, 2, 3})

	n, err := registry.Lookup(1)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1:9000", n.Address)

	_, err = registry.Lookup(2)
	assert.ErrorIs(t, err, ErrNodeNotFound)

	party, err := registry.PeersOf("session-1")
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3}, party)

	_, err = registry.PeersOf("absent")
	assert.ErrorIs(t, err, ErrUnknownSession)
}

func TestKeyAllowlist(t *testing.T) {
	allowlist := NewKeyAllowlist()
	aggregator := []byte("agg-key")
	initiator := []byte("init-key")

	assert.False(t, allowlist.IsAuthorizedAggregator(aggregator))
	assert.False(t, allowlist.IsAuthorizedDKGInitiator(initiator))

	allowlist.AllowAggregator(aggregator)
	allowlist.AllowInitiator(initiator)

	assert.True(t, allowlist.IsAuthorizedAggregator(aggregator))
	assert.True(t, allowlist.IsAuthorizedDKGInitiator(initiator))
	assert.False(t, allowlist.IsAuthorizedAggregator(initiator))
	assert.False(t, allowlist.IsAuthorizedDKGInitiator(aggregator))
}
