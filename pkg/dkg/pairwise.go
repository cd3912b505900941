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

package dkg

import (
	"crypto/sha256"
	"encoding/binary"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"github.com/jeremyhahn/go-frostsig/pkg/curve"
)

// PairwiseKDFLabel is the HKDF info label for deriving pairwise symmetric
// keys from an ECDH shared secret. The construction is part of the wire
// contract:
//
//	k_ij = HKDF-SHA256(ikm = X(esk_i * epk_j), salt = dkg_id, info = "frost-pair")
//
// truncated to 32 bytes and used as a ChaCha20-Poly1305 key.
const PairwiseKDFLabel = "frost-pair"

// nonceCounterOffset places the message counter in the trailing 8 bytes of
// the 12-byte AEAD nonce.
const nonceCounterOffset = chacha20poly1305.NonceSize - 8

// DerivePairwiseKey derives the symmetric key shared between the holder of
// esk and the holder of the secret behind peer. ECDH is symmetric, so both
// directions derive the same key.
func DerivePairwiseKey(esk *secp256k1.PrivateKey, peer *secp256k1.PublicKey, dkgID string) ([]byte, error) {
	shared := secp256k1.GenerateSharedSecret(esk, peer)
	defer curve.ZeroBytes(shared)

	key := make([]byte, chacha20poly1305.KeySize)
	kdf := hkdf.New(sha256.New, shared, []byte(dkgID), []byte(PairwiseKDFLabel))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, err
	}
	return key, nil
}

// EncryptShare encrypts a pairwise share under the given key. The counter
// must be unique per key; a per-session counter suffices because the key is
// single-instance. The AEAD nonce is prepended to the ciphertext.
func EncryptShare(key []byte, counter uint64, share *secp256k1.ModNScalar, associatedData []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, chacha20poly1305.NonceSize)
	binary.BigEndian.PutUint64(nonce[nonceCounterOffset:], counter)

	plaintext := curve.SerializeScalar(share)
	defer curve.ZeroBytes(plaintext)

	out := make([]byte, 0, len(nonce)+len(plaintext)+aead.Overhead())
	out = append(out, nonce...)
	return aead.Seal(out, nonce, plaintext, associatedData), nil
}

// DecryptShare authenticates and decrypts a pairwise share ciphertext.
// Returns ErrDecryptFailed on any authentication, framing or scalar decoding
// failure; all of these are attributable to the sender.
func DecryptShare(key, ciphertext, associatedData []byte) (*secp256k1.ModNScalar, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < chacha20poly1305.NonceSize+aead.Overhead() {
		return nil, ErrDecryptFailed
	}

	nonce := ciphertext[:chacha20poly1305.NonceSize]
	plaintext, err := aead.Open(nil, nonce, ciphertext[chacha20poly1305.NonceSize:], associatedData)
	if err != nil {
		return nil, ErrDecryptFailed
	}
	defer curve.ZeroBytes(plaintext)

	share, err := curve.ParseScalar(plaintext)
	if err != nil {
		return nil, ErrDecryptFailed
	}
	return share, nil
}

// shareAssociatedData builds the AEAD associated data binding a ciphertext
// to its session, sender and receiver.
func shareAssociatedData(dkgID string, sender, receiver uint64) []byte {
	ad := make([]byte, 0, len(dkgID)+2*curve.IDSize)
	ad = append(ad, []byte(dkgID)...)
	ad = append(ad, curve.EncodeID(sender)...)
	ad = append(ad, curve.EncodeID(receiver)...)
	return ad
}
