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
	"errors"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/jeremyhahn/go-frostsig/pkg/curve"
)

// Complaint kinds.
const (
	// ComplaintDecrypt: the accused sent a ciphertext that fails AEAD
	// authentication or decodes to a non-canonical scalar.
	ComplaintDecrypt = "decrypt"

	// ComplaintShare: the accused sent a well-formed ciphertext whose
	// plaintext share does not match the accused's own coefficient
	// commitments.
	ComplaintShare = "share"

	// ComplaintMissing: the accused sent no round-1 broadcast before the
	// session timeout. Treated with the same severity as ComplaintDecrypt;
	// there is no cryptographic evidence to re-verify. A missing round-2
	// ciphertext is recorded as ComplaintDecrypt with no ciphertext.
	ComplaintMissing = "missing"

	// ComplaintDuplicate: the accused broadcast more than once in round 1.
	// Verified from the public transcript.
	ComplaintDuplicate = "duplicate"
)

// Complaint is the published evidence of a protocol fault. For decrypt and
// share complaints the complainant reveals its ephemeral secret for the
// session, so any observer can re-derive the pairwise key and confirm the
// fault independently. The long-term key and the DKG share are never
// revealed.
type Complaint struct {
	DKGID       string `json:"dkg_id"`
	Complainant uint64 `json:"complainant"`
	Against     uint64 `json:"against"`
	Kind        string `json:"kind"`

	// EphemeralSecret is the complainant's esk for this session.
	EphemeralSecret []byte `json:"ephemeral_secret,omitempty"`

	// EphemeralPublic is the accused's epk as broadcast in round 1.
	EphemeralPublic []byte `json:"ephemeral_public,omitempty"`

	// Ciphertext is the offending round-2 ciphertext, if one was received.
	Ciphertext []byte `json:"ciphertext,omitempty"`
}

// Complaint verification errors.
var (
	// ErrComplaintUnfounded indicates that the published evidence does not
	// demonstrate the claimed fault: the complaint itself is bogus.
	ErrComplaintUnfounded = errors.New("dkg: complaint evidence does not demonstrate a fault")

	// ErrComplaintMalformed indicates evidence that cannot be checked:
	// wrong kind, missing fields, or an ephemeral secret that does not
	// match the complainant's broadcast.
	ErrComplaintMalformed = errors.New("dkg: malformed complaint evidence")
)

// VerifyComplaint re-verifies published complaint evidence from the public
// transcript. accused and complainant are the respective round-1 broadcasts.
// A nil return confirms the accused misbehaved; ErrComplaintUnfounded means
// the evidence clears the accused (and implicates the complainant).
//
// Only decrypt and share complaints carry cryptographic evidence; other
// kinds are judged from the transcript directly.
func VerifyComplaint(c *Complaint, accused, complainant *Round1Broadcast, threshold int) error {
	if c == nil || accused == nil || complainant == nil {
		return ErrComplaintMalformed
	}
	if c.Kind != ComplaintDecrypt && c.Kind != ComplaintShare {
		return ErrComplaintMalformed
	}
	if accused.SenderID != c.Against || complainant.SenderID != c.Complainant {
		return ErrComplaintMalformed
	}

	// The revealed ephemeral secret must match the complainant's broadcast
	// epk; otherwise the "evidence" proves nothing about the accused.
	eskScalar, err := curve.ParseScalar(c.EphemeralSecret)
	if err != nil {
		return ErrComplaintMalformed
	}
	esk := secp256k1.NewPrivateKey(eskScalar)
	if !bytes.Equal(esk.PubKey().SerializeCompressed(), complainant.PublicKey) {
		return ErrComplaintMalformed
	}

	// The accused's epk in the complaint must match its broadcast.
	if !bytes.Equal(c.EphemeralPublic, accused.PublicKey) {
		return ErrComplaintMalformed
	}
	epk, err := secp256k1.ParsePubKey(accused.PublicKey)
	if err != nil {
		// A broadcast that passed round-2 validation always parses; a
		// non-parsing epk is itself a fault of the accused.
		return nil
	}

	key, err := DerivePairwiseKey(esk, epk, c.DKGID)
	if err != nil {
		return ErrComplaintMalformed
	}
	defer curve.ZeroBytes(key)

	switch c.Kind {
	case ComplaintDecrypt:
		if len(c.Ciphertext) == 0 {
			// Missing ciphertext: nothing to re-verify beyond the
			// transcript. The broadcast channel record decides.
			return nil
		}
		share, err := DecryptShare(key, c.Ciphertext, shareAssociatedData(c.DKGID, c.Against, c.Complainant))
		if err != nil {
			return nil // confirmed: ciphertext does not authenticate
		}
		curve.ZeroScalar(share)
		return ErrComplaintUnfounded

	case ComplaintShare:
		share, err := DecryptShare(key, c.Ciphertext, shareAssociatedData(c.DKGID, c.Against, c.Complainant))
		if err != nil {
			// Decrypts for the complainant but not for the observer is
			// impossible with a matching key; the evidence is inconsistent
			// with the claimed kind but still attributable to the accused.
			return nil
		}
		defer curve.ZeroScalar(share)

		if len(accused.PublicFx) != threshold {
			return nil
		}
		commits := make([]*secp256k1.JacobianPoint, len(accused.PublicFx))
		for i, enc := range accused.PublicFx {
			p, perr := curve.ParsePoint(enc)
			if perr != nil {
				return nil
			}
			commits[i] = p
		}
		expected := EvalCommitments(commits, c.Complainant)
		if curve.PointsEqual(curve.BasePointMult(share), expected) {
			return ErrComplaintUnfounded
		}
		return nil
	}
	return ErrComplaintMalformed
}
