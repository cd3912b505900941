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
	"bytes"
	"encoding/json"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/jeremyhahn/go-frostsig/pkg/curve"
)

// Round status values reported in Round3Result.
const (
	StatusSuccessful = "SUCCESSFUL"
	StatusComplaint  = "COMPLAINT"
)

// Round1Broadcast is a participant's public round-1 message. The JSON field
// names are part of the wire contract and stable across implementations.
type Round1Broadcast struct {
	// SenderID is the broadcasting participant's id.
	SenderID uint64 `json:"sender_id"`

	// PublicFx holds the coefficient commitments [a_0*G, ..., a_(t-1)*G]
	// in compressed form.
	PublicFx [][]byte `json:"public_fx"`

	// Coefficient0Signature proves knowledge of the constant term a_0 under
	// PublicFx[0].
	Coefficient0Signature *Proof `json:"coefficient0_signature"`

	// PublicKey is the sender's ephemeral communication public key for this
	// session, in compressed form.
	PublicKey []byte `json:"public_key"`

	// SecretSignature proves knowledge of the ephemeral secret key under
	// PublicKey.
	SecretSignature *Proof `json:"secret_signature"`
}

// Round2Message carries one encrypted pairwise share.
type Round2Message struct {
	SenderID   uint64 `json:"sender_id"`
	ReceiverID uint64 `json:"receiver_id"`

	// Data is the AEAD ciphertext of f_sender(receiver_id), bound to
	// (dkg_id, sender_id, receiver_id) as associated data.
	Data []byte `json:"data"`
}

// Round3Result is the terminal output of a DKG session.
type Round3Result struct {
	// Status is StatusSuccessful or StatusComplaint.
	Status string `json:"status"`

	// Data carries the key share on success or the complaint evidence on
	// abort.
	Data *Round3Data `json:"data"`
}

// Round3Data is the payload of a Round3Result.
type Round3Data struct {
	Key        *KeyShare    `json:"key,omitempty"`
	Complaints []*Complaint `json:"complaints,omitempty"`
}

// KeyShare is a participant's long-lived output of a successful DKG session.
type KeyShare struct {
	// DKGID identifies the session that produced this share.
	DKGID string `json:"dkg_id"`

	// ID is the owning participant's id.
	ID uint64 `json:"id"`

	// Share is the secret share, a 32-byte big-endian scalar. Secret.
	Share []byte `json:"share"`

	// GroupKey is the group public key Y in compressed form.
	GroupKey []byte `json:"dkg_public_key"`

	// VerificationKey is the participant's public verification key
	// Y_i = share * G in compressed form.
	VerificationKey []byte `json:"public_key_share"`

	// ShareSignature proves knowledge of the share under VerificationKey.
	// This is the artifact reported to external registries.
	ShareSignature *Proof `json:"share_signature"`
}

// ShareScalar parses the secret share.
func (k *KeyShare) ShareScalar() (*secp256k1.ModNScalar, error) {
	return curve.ParseScalar(k.Share)
}

// GroupPoint parses the group public key.
func (k *KeyShare) GroupPoint() (*secp256k1.JacobianPoint, error) {
	return curve.ParsePoint(k.GroupKey)
}

// VerificationPoint parses the verification key.
func (k *KeyShare) VerificationPoint() (*secp256k1.JacobianPoint, error) {
	return curve.ParsePoint(k.VerificationKey)
}

// Zeroize clears the secret share bytes.
func (k *KeyShare) Zeroize() {
	if k == nil {
		return
	}
	curve.ZeroBytes(k.Share)
	k.Share = nil
}

// decodeStrict unmarshals JSON rejecting unknown fields. Round messages are
// tagged records; anything outside the schema is a protocol fault.
func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return ErrInvalidMessage
	}
	return nil
}

// DecodeRound1Broadcast parses a round-1 broadcast, rejecting unknown fields.
func DecodeRound1Broadcast(data []byte) (*Round1Broadcast, error) {
	var msg Round1Broadcast
	if err := decodeStrict(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// DecodeRound2Message parses a round-2 message, rejecting unknown fields.
func DecodeRound2Message(data []byte) (*Round2Message, error) {
	var msg Round2Message
	if err := decodeStrict(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// DecodeRound3Result parses a round-3 result, rejecting unknown fields.
func DecodeRound3Result(data []byte) (*Round3Result, error) {
	var msg Round3Result
	if err := decodeStrict(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
