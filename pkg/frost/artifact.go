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
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// ArtifactPublicKey is the group key split into the coordinates an on-chain
// Schnorr verifier consumes: the x coordinate and the parity of y.
type ArtifactPublicKey struct {
	X       hexutil.Bytes `json:"x"`
	YParity uint8         `json:"y_parity"`
}

// SignatureArtifact is the public verifier artifact for EVM-style contract
// verifiers: the aggregated nonce in Ethereum address form, the group key
// coordinates, the response scalar and the message digest.
type SignatureArtifact struct {
	Nonce       common.Address    `json:"nonce"`
	PublicKey   ArtifactPublicKey `json:"public_key"`
	Signature   hexutil.Bytes     `json:"signature"`
	MessageHash hexutil.Bytes     `json:"message_hash"`
}

// Artifact renders the signature into its EVM verifier form. The nonce
// point is reduced to the address of its uncompressed encoding, the form
// contract verifiers compare against ecrecover output.
func (s *Signature) Artifact() (*SignatureArtifact, error) {
	noncePub, err := secp256k1.ParsePubKey(s.Nonce)
	if err != nil {
		return nil, ErrInvalidInput
	}
	groupPub, err := secp256k1.ParsePubKey(s.PublicKey)
	if err != nil {
		return nil, ErrInvalidInput
	}

	uncompressed := noncePub.SerializeUncompressed()
	address := common.BytesToAddress(ethcrypto.Keccak256(uncompressed[1:])[12:])

	compressed := groupPub.SerializeCompressed()
	return &SignatureArtifact{
		Nonce: address,
		PublicKey: ArtifactPublicKey{
			X:       compressed[1:],
			YParity: compressed[0] - secp256k1.PubKeyFormatCompressedEven,
		},
		Signature:   s.Signature,
		MessageHash: s.MessageHash,
	}, nil
}
