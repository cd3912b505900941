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
	"encoding/json"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/jeremyhahn/go-frostsig/pkg/curve"
)

// newTestSessions creates one session per party member and collects their
// round-1 broadcasts.
func newTestSessions(t *testing.T, dkgID string, threshold int, party []uint64, coef0 map[uint64]*secp256k1.ModNScalar) (map[uint64]*Session, []*Round1Broadcast) {
	t.Helper()
	sessions := make(map[uint64]*Session, len(party))
	var broadcasts []*Round1Broadcast
	for _, id := range party {
		cfg := Config{
			DKGID:     dkgID,
			Threshold: threshold,
			SelfID:    id,
			Party:     party,
		}
		if coef0 != nil {
			cfg.Coefficient0 = coef0[id]
		}
		session, err := NewSession(cfg)
		if err != nil {
			t.Fatalf("NewSession(%d) failed: %v", id, err)
		}
		b, err := session.RoundOne()
		if err != nil {
			t.Fatalf("RoundOne(%d) failed: %v", id, err)
		}
		sessions[id] = session
		broadcasts = append(broadcasts, b)
	}
	return sessions, broadcasts
}

// runTestRound2 runs round 2 for every session and routes the resulting
// ciphertexts by receiver.
func runTestRound2(t *testing.T, sessions map[uint64]*Session, broadcasts []*Round1Broadcast) map[uint64][]*Round2Message {
	t.Helper()
	inbox := make(map[uint64][]*Round2Message)
	for id, session := range sessions {
		msgs, err := session.RoundTwo(broadcasts)
		if err != nil {
			t.Fatalf("RoundTwo(%d) failed: %v", id, err)
		}
		for _, m := range msgs {
			inbox[m.ReceiverID] = append(inbox[m.ReceiverID], m)
		}
	}
	return inbox
}

// runTestDKG drives a full honest session for every participant.
func runTestDKG(t *testing.T, dkgID string, threshold int, party []uint64, coef0 map[uint64]*secp256k1.ModNScalar) map[uint64]*KeyShare {
	t.Helper()
	sessions, broadcasts := newTestSessions(t, dkgID, threshold, party, coef0)
	inbox := runTestRound2(t, sessions, broadcasts)

	keys := make(map[uint64]*KeyShare, len(party))
	for id, session := range sessions {
		result, err := session.RoundThree(inbox[id])
		if err != nil {
			t.Fatalf("RoundThree(%d) failed: %v", id, err)
		}
		if result.Status != StatusSuccessful {
			t.Fatalf("RoundThree(%d) status %s", id, result.Status)
		}
		if session.State() != StateDone {
			t.Fatalf("session %d not Done after round 3", id)
		}
		keys[id] = result.Data.Key
	}
	return keys
}

func TestNewSessionValidation(t *testing.T) {
	valid := Config{DKGID: "s", Threshold: 2, SelfID: 1, Party: []uint64{1, 2, 3}}

	t.Run("Valid", func(t *testing.T) {
		if _, err := NewSession(valid); err != nil {
			t.Fatalf("NewSession failed: %v", err)
		}
	})

	cases := []struct {
		name string
		mod  func(Config) Config
		want error
	}{
		{"EmptySessionID", func(c Config) Config { c.DKGID = ""; return c }, ErrInvalidSessionID},
		{"ZeroThreshold", func(c Config) Config { c.Threshold = 0; return c }, ErrInvalidThreshold},
		{"ThresholdAboveN", func(c Config) Config { c.Threshold = 4; return c }, ErrInvalidThreshold},
		{"ZeroID", func(c Config) Config { c.Party = []uint64{0, 2, 3}; return c }, ErrInvalidParty},
		{"DuplicateID", func(c Config) Config { c.Party = []uint64{1, 2, 2}; return c }, ErrInvalidParty},
		{"SelfNotInParty", func(c Config) Config { c.SelfID = 9; return c }, ErrUnknownParticipant},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewSession(tc.mod(valid)); err != tc.want {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestRoundOrdering(t *testing.T) {
	cfg := Config{DKGID: "s", Threshold: 2, SelfID: 1, Party: []uint64{1, 2, 3}}
	session, _ := NewSession(cfg)

	if _, err := session.RoundTwo(nil); err != ErrInvalidRoundState {
		t.Errorf("RoundTwo before RoundOne: expected ErrInvalidRoundState, got %v", err)
	}
	if _, err := session.RoundThree(nil); err != ErrInvalidRoundState {
		t.Errorf("RoundThree before RoundOne: expected ErrInvalidRoundState, got %v", err)
	}
	if _, err := session.RoundOne(); err != nil {
		t.Fatalf("RoundOne failed: %v", err)
	}
	if _, err := session.RoundOne(); err != ErrInvalidRoundState {
		t.Errorf("second RoundOne: expected ErrInvalidRoundState, got %v", err)
	}
}

func TestDKGConsistency(t *testing.T) {
	party := []uint64{1, 2, 3, 4, 5}
	keys := runTestDKG(t, NewSessionID(), 3, party, nil)

	groupKey := keys[1].GroupKey
	for id, key := range keys {
		if string(key.GroupKey) != string(groupKey) {
			t.Fatalf("participant %d disagrees on group key", id)
		}

		// share_i * G == Y_i
		share, err := key.ShareScalar()
		if err != nil {
			t.Fatalf("ShareScalar(%d) failed: %v", id, err)
		}
		Yi, err := key.VerificationPoint()
		if err != nil {
			t.Fatalf("VerificationPoint(%d) failed: %v", id, err)
		}
		if !curve.PointsEqual(curve.BasePointMult(share), Yi) {
			t.Errorf("participant %d: share*G != verification key", id)
		}

		// The share proof must verify for any registry observer.
		if !key.ShareSignature.Verify(Yi, ContextShare, key.DKGID, id) {
			t.Errorf("participant %d: share proof does not verify", id)
		}
	}

	// sum over any threshold subset of lambda_i * share_i * G == Y.
	Y, _ := keys[1].GroupPoint()
	for _, subset := range [][]uint64{{1, 2, 3}, {2, 4, 5}, {1, 3, 5}, {1, 2, 3, 4, 5}} {
		sum := new(secp256k1.ModNScalar)
		for _, id := range subset {
			lambda, err := LagrangeCoefficient(id, subset)
			if err != nil {
				t.Fatalf("LagrangeCoefficient failed: %v", err)
			}
			share, _ := keys[id].ShareScalar()
			share.Mul(lambda)
			sum.Add(share)
		}
		if !curve.PointsEqual(curve.BasePointMult(sum), Y) {
			t.Errorf("subset %v does not reconstruct the group key", subset)
		}
	}
}

// TestDKGDeterministicKey pins the group secret to 1 by supplying
// coefficient0 values (1, 0, 0) and checks Y == G plus reconstruction of
// the secret from any two shares.
func TestDKGDeterministicKey(t *testing.T) {
	one := new(secp256k1.ModNScalar).SetInt(1)
	zero := new(secp256k1.ModNScalar)
	party := []uint64{1, 2, 3}
	coef0 := map[uint64]*secp256k1.ModNScalar{1: one, 2: zero, 3: zero}

	keys := runTestDKG(t, NewSessionID(), 2, party, coef0)

	G := curve.BasePointMult(new(secp256k1.ModNScalar).SetInt(1))
	Y, err := keys[1].GroupPoint()
	if err != nil {
		t.Fatalf("GroupPoint failed: %v", err)
	}
	if !curve.PointsEqual(Y, G) {
		t.Fatal("expected group key G for group secret 1")
	}

	for _, subset := range [][]uint64{{1, 2}, {1, 3}, {2, 3}} {
		sum := new(secp256k1.ModNScalar)
		for _, id := range subset {
			lambda, err := LagrangeCoefficient(id, subset)
			if err != nil {
				t.Fatalf("LagrangeCoefficient failed: %v", err)
			}
			share, _ := keys[id].ShareScalar()
			share.Mul(lambda)
			sum.Add(share)
		}
		if !curve.ScalarsEqual(sum, one) {
			t.Errorf("subset %v does not reconstruct the secret 1", subset)
		}
	}
}

func TestRoundTwoRejectsBadProof(t *testing.T) {
	party := []uint64{1, 2, 3}
	sessions, broadcasts := newTestSessions(t, "proof-abort", 2, party, nil)

	// Corrupt participant 2's coefficient0 proof.
	for _, b := range broadcasts {
		if b.SenderID == 2 {
			b.Coefficient0Signature.Signature[0] ^= 1
		}
	}

	_, err := sessions[1].RoundTwo(broadcasts)
	proofErr, ok := err.(*ProofInvalidError)
	if !ok {
		t.Fatalf("expected ProofInvalidError, got %v", err)
	}
	if proofErr.SenderID != 2 {
		t.Errorf("blame attributed to %d, expected 2", proofErr.SenderID)
	}
	if sessions[1].State() != StateComplaint {
		t.Error("session should be terminal after proof failure")
	}
}

func TestRoundThreeShareComplaint(t *testing.T) {
	party := []uint64{1, 2, 3, 4, 5}
	dkgID := "cheater-session"
	sessions, broadcasts := newTestSessions(t, dkgID, 3, party, nil)
	inbox := runTestRound2(t, sessions, broadcasts)

	// Participant 3 re-encrypts a random scalar instead of f_3(1) for
	// receiver 1, under the correct pairwise key.
	cheater := sessions[3]
	bogus, err := curve.RandomScalar()
	if err != nil {
		t.Fatalf("RandomScalar failed: %v", err)
	}
	key, err := DerivePairwiseKey(cheater.esk, cheater.peerKeys[1], dkgID)
	if err != nil {
		t.Fatalf("DerivePairwiseKey failed: %v", err)
	}
	forged, err := EncryptShare(key, 99, bogus, shareAssociatedData(dkgID, 3, 1))
	if err != nil {
		t.Fatalf("EncryptShare failed: %v", err)
	}
	for _, m := range inbox[1] {
		if m.SenderID == 3 {
			m.Data = forged
		}
	}

	result, err := sessions[1].RoundThree(inbox[1])
	if err != nil {
		t.Fatalf("RoundThree failed: %v", err)
	}
	if result.Status != StatusComplaint {
		t.Fatalf("expected COMPLAINT status, got %s", result.Status)
	}
	if len(result.Data.Complaints) != 1 {
		t.Fatalf("expected 1 complaint, got %d", len(result.Data.Complaints))
	}
	complaint := result.Data.Complaints[0]
	if complaint.Against != 3 || complaint.Kind != ComplaintShare {
		t.Fatalf("unexpected complaint %+v", complaint)
	}

	// Any observer can re-verify the published evidence from the public
	// transcript.
	var accused, complainant *Round1Broadcast
	for _, b := range broadcasts {
		switch b.SenderID {
		case 3:
			accused = b
		case 1:
			complainant = b
		}
	}
	if err := VerifyComplaint(complaint, accused, complainant, 3); err != nil {
		t.Errorf("published evidence failed re-verification: %v", err)
	}

	// The same evidence against an honest ciphertext is unfounded.
	honest := *complaint
	for _, m := range inbox[1] {
		if m.SenderID == 2 {
			honest.Against = 2
			honest.EphemeralPublic = nil
			for _, b := range broadcasts {
				if b.SenderID == 2 {
					honest.EphemeralPublic = b.PublicKey
				}
			}
			honest.Ciphertext = m.Data
		}
	}
	var honestBroadcast *Round1Broadcast
	for _, b := range broadcasts {
		if b.SenderID == 2 {
			honestBroadcast = b
		}
	}
	if err := VerifyComplaint(&honest, honestBroadcast, complainant, 3); err != ErrComplaintUnfounded {
		t.Errorf("expected ErrComplaintUnfounded for honest sender, got %v", err)
	}
}

func TestRoundThreeDecryptComplaint(t *testing.T) {
	party := []uint64{1, 2, 3}
	dkgID := "garbled-session"
	sessions, broadcasts := newTestSessions(t, dkgID, 2, party, nil)
	inbox := runTestRound2(t, sessions, broadcasts)

	for _, m := range inbox[2] {
		if m.SenderID == 3 {
			m.Data[len(m.Data)-1] ^= 1
		}
	}

	result, err := sessions[2].RoundThree(inbox[2])
	if err != nil {
		t.Fatalf("RoundThree failed: %v", err)
	}
	if result.Status != StatusComplaint {
		t.Fatalf("expected COMPLAINT status, got %s", result.Status)
	}
	complaint := result.Data.Complaints[0]
	if complaint.Against != 3 || complaint.Kind != ComplaintDecrypt {
		t.Fatalf("unexpected complaint %+v", complaint)
	}

	var accused, complainant *Round1Broadcast
	for _, b := range broadcasts {
		switch b.SenderID {
		case 3:
			accused = b
		case 2:
			complainant = b
		}
	}
	if err := VerifyComplaint(complaint, accused, complainant, 2); err != nil {
		t.Errorf("decrypt evidence failed re-verification: %v", err)
	}
}

func TestRoundThreeMissingCiphertext(t *testing.T) {
	party := []uint64{1, 2, 3}
	sessions, broadcasts := newTestSessions(t, "missing-ct", 2, party, nil)
	inbox := runTestRound2(t, sessions, broadcasts)

	// Drop participant 3's ciphertext to participant 1.
	var kept []*Round2Message
	for _, m := range inbox[1] {
		if m.SenderID != 3 {
			kept = append(kept, m)
		}
	}

	result, err := sessions[1].RoundThree(kept)
	if err != nil {
		t.Fatalf("RoundThree failed: %v", err)
	}
	if result.Status != StatusComplaint {
		t.Fatalf("expected COMPLAINT status, got %s", result.Status)
	}
	if c := result.Data.Complaints[0]; c.Against != 3 || c.Kind != ComplaintDecrypt {
		t.Fatalf("unexpected complaint %+v", c)
	}
}

func TestRoundTwoDuplicateBroadcast(t *testing.T) {
	party := []uint64{1, 2, 3}
	sessions, broadcasts := newTestSessions(t, "dup-broadcast", 2, party, nil)

	var dup *Round1Broadcast
	for _, b := range broadcasts {
		if b.SenderID == 2 {
			copied := *b
			dup = &copied
		}
	}

	msgs, err := sessions[1].RoundTwo(append(broadcasts, dup))
	if err != nil {
		t.Fatalf("RoundTwo failed: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 round-2 messages, got %d", len(msgs))
	}

	inbox := make(map[uint64][]*Round2Message)
	for id, session := range sessions {
		if id == 1 {
			for _, m := range msgs {
				inbox[m.ReceiverID] = append(inbox[m.ReceiverID], m)
			}
			continue
		}
		out, err := session.RoundTwo(broadcasts)
		if err != nil {
			t.Fatalf("RoundTwo(%d) failed: %v", id, err)
		}
		for _, m := range out {
			inbox[m.ReceiverID] = append(inbox[m.ReceiverID], m)
		}
	}

	result, err := sessions[1].RoundThree(inbox[1])
	if err != nil {
		t.Fatalf("RoundThree failed: %v", err)
	}
	if result.Status != StatusComplaint {
		t.Fatalf("duplicate broadcast should terminate in COMPLAINT, got %s", result.Status)
	}
	if c := result.Data.Complaints[0]; c.Against != 2 || c.Kind != ComplaintDuplicate {
		t.Fatalf("unexpected complaint %+v", c)
	}
}

func TestRoundMessageRoundTrip(t *testing.T) {
	party := []uint64{1, 2}
	sessions, broadcasts := newTestSessions(t, "wire", 2, party, nil)

	t.Run("Round1", func(t *testing.T) {
		encoded, err := json.Marshal(broadcasts[0])
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}
		decoded, err := DecodeRound1Broadcast(encoded)
		if err != nil {
			t.Fatalf("DecodeRound1Broadcast failed: %v", err)
		}
		reencoded, _ := json.Marshal(decoded)
		if string(encoded) != string(reencoded) {
			t.Error("round-1 broadcast round trip is not the identity")
		}
	})

	t.Run("UnknownFieldRejected", func(t *testing.T) {
		encoded, _ := json.Marshal(broadcasts[0])
		patched := append([]byte(`{"bogus":1,`), encoded[1:]...)
		if _, err := DecodeRound1Broadcast(patched); err != ErrInvalidMessage {
			t.Errorf("expected ErrInvalidMessage, got %v", err)
		}
	})

	t.Run("Round2AndRound3", func(t *testing.T) {
		inbox := runTestRound2(t, sessions, broadcasts)

		encoded, _ := json.Marshal(inbox[1][0])
		decoded, err := DecodeRound2Message(encoded)
		if err != nil {
			t.Fatalf("DecodeRound2Message failed: %v", err)
		}
		reencoded, _ := json.Marshal(decoded)
		if string(encoded) != string(reencoded) {
			t.Error("round-2 message round trip is not the identity")
		}

		result, err := sessions[1].RoundThree(inbox[1])
		if err != nil {
			t.Fatalf("RoundThree failed: %v", err)
		}
		encoded, _ = json.Marshal(result)
		decodedResult, err := DecodeRound3Result(encoded)
		if err != nil {
			t.Fatalf("DecodeRound3Result failed: %v", err)
		}
		reencoded, _ = json.Marshal(decodedResult)
		if string(encoded) != string(reencoded) {
			t.Error("round-3 result round trip is not the identity")
		}
	})
}
