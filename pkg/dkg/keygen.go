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
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/jeremyhahn/go-frostsig/pkg/curve"
)

// State tracks the position of a session in the round sequence.
type State int

const (
	StateInit State = iota
	StateAwaitRound2
	StateAwaitRound3
	StateDone
	StateComplaint
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "INIT"
	case StateAwaitRound2:
		return "AWAIT_ROUND2"
	case StateAwaitRound3:
		return "AWAIT_ROUND3"
	case StateDone:
		return "DONE"
	case StateComplaint:
		return "COMPLAINT"
	default:
		return "UNKNOWN"
	}
}

// Config carries the parameters of a DKG session.
type Config struct {
	// DKGID identifies the session. Must be unique per session; see
	// NewSessionID.
	DKGID string

	// Threshold is the minimum number of cooperating signers t.
	Threshold int

	// SelfID is this participant's id.
	SelfID uint64

	// Party is the full participant set, including SelfID.
	Party []uint64

	// Coefficient0 optionally fixes the constant term of the local
	// polynomial, for deriving deterministic key material. Nil means a
	// uniformly random constant term.
	Coefficient0 *secp256k1.ModNScalar
}

// NewSessionID returns a fresh opaque session id for DKG initiators.
func NewSessionID() string {
	return uuid.New().String()
}

// Session is the per-participant DKG state machine:
//
//	Init -> AwaitRound2 -> AwaitRound3 -> Done | Complaint
//
// Rounds are synchronous transformations over the complete message set of
// the previous round; network waiting happens outside. A Session is not safe
// for concurrent use. Session-scoped secrets (the polynomial and the
// ephemeral key) are zeroized when the session reaches a terminal state or
// is aborted.
type Session struct {
	cfg   Config
	state State

	poly        *Polynomial
	commitments []*secp256k1.JacobianPoint
	esk         *secp256k1.PrivateKey

	round1      map[uint64]*Round1Broadcast
	peerKeys    map[uint64]*secp256k1.PublicKey
	peerCommits map[uint64][]*secp256k1.JacobianPoint
	complaints  []*Complaint
	sendCounter uint64
}

// NewSession validates the configuration and creates a session in the Init
// state.
func NewSession(cfg Config) (*Session, error) {
	if cfg.DKGID == "" {
		return nil, ErrInvalidSessionID
	}
	n := len(cfg.Party)
	if cfg.Threshold < 1 || cfg.Threshold > n {
		return nil, ErrInvalidThreshold
	}
	seen := make(map[uint64]struct{}, n)
	self := false
	for _, id := range cfg.Party {
		if id == 0 {
			return nil, ErrInvalidParty
		}
		if _, dup := seen[id]; dup {
			return nil, ErrInvalidParty
		}
		seen[id] = struct{}{}
		if id == cfg.SelfID {
			self = true
		}
	}
	if !self {
		return nil, ErrUnknownParticipant
	}

	return &Session{
		cfg:    cfg,
		state:  StateInit,
		round1: make(map[uint64]*Round1Broadcast, n),
	}, nil
}

// State returns the current round state.
func (s *Session) State() State {
	return s.state
}

// RoundOne samples the session polynomial and ephemeral communication key
// and produces the public broadcast: coefficient commitments, the ephemeral
// public key, and proofs of knowledge for the constant term and the
// ephemeral secret.
func (s *Session) RoundOne() (*Round1Broadcast, error) {
	if s.state != StateInit {
		return nil, ErrInvalidRoundState
	}

	poly, err := NewRandomPolynomial(s.cfg.Threshold, s.cfg.Coefficient0)
	if err != nil {
		return nil, errors.Wrap(err, "sample polynomial")
	}
	esk, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		poly.Zeroize()
		return nil, errors.Wrap(err, "generate ephemeral key")
	}

	s.poly = poly
	s.esk = esk
	s.commitments = poly.Commit()

	coef0 := poly.ConstantTerm()
	defer curve.ZeroScalar(coef0)
	coef0Proof, err := Prove(coef0, s.commitments[0], ContextCoefficient0, s.cfg.DKGID, s.cfg.SelfID)
	if err != nil {
		s.Abort()
		return nil, errors.Wrap(err, "prove coefficient0")
	}

	epkPoint, err := curve.ParsePoint(esk.PubKey().SerializeCompressed())
	if err != nil {
		s.Abort()
		return nil, err
	}
	epkProof, err := Prove(&esk.Key, epkPoint, ContextEphemeralKey, s.cfg.DKGID, s.cfg.SelfID)
	if err != nil {
		s.Abort()
		return nil, errors.Wrap(err, "prove ephemeral key")
	}

	publicFx := make([][]byte, len(s.commitments))
	for i, c := range s.commitments {
		publicFx[i] = curve.SerializePoint(c)
	}

	s.state = StateAwaitRound2
	log.Debug().
		Str("dkg_id", s.cfg.DKGID).
		Uint64("participant", s.cfg.SelfID).
		Int("threshold", s.cfg.Threshold).
		Int("party_size", len(s.cfg.Party)).
		Msg("dkg round 1 broadcast produced")

	return &Round1Broadcast{
		SenderID:              s.cfg.SelfID,
		PublicFx:              publicFx,
		Coefficient0Signature: coef0Proof,
		PublicKey:             esk.PubKey().SerializeCompressed(),
		SecretSignature:       epkProof,
	}, nil
}

// RoundTwo verifies the round-1 broadcasts of all peers and produces one
// encrypted pairwise share per peer.
//
// A failed round-1 proof aborts the whole session: the broadcast is public,
// so the failure is attributable without further evidence. A duplicate
// broadcast from the same sender is rejected (first wins) and recorded as a
// complaint. A peer with no broadcast by the caller's timeout is recorded as
// a missing-broadcast complaint; the session then terminates in round 3.
func (s *Session) RoundTwo(broadcasts []*Round1Broadcast) ([]*Round2Message, error) {
	if s.state != StateAwaitRound2 {
		return nil, ErrInvalidRoundState
	}

	for _, b := range broadcasts {
		if b == nil {
			return nil, ErrInvalidMessage
		}
		if b.SenderID == s.cfg.SelfID {
			// Self-broadcast is tolerated and ignored.
			continue
		}
		if !s.isMember(b.SenderID) {
			return nil, ErrUnknownParticipant
		}
		if _, dup := s.round1[b.SenderID]; dup {
			s.recordComplaint(&Complaint{
				DKGID:       s.cfg.DKGID,
				Complainant: s.cfg.SelfID,
				Against:     b.SenderID,
				Kind:        ComplaintDuplicate,
			})
			continue
		}
		s.round1[b.SenderID] = b
	}

	s.peerKeys = make(map[uint64]*secp256k1.PublicKey, len(s.round1))
	s.peerCommits = make(map[uint64][]*secp256k1.JacobianPoint, len(s.round1))

	var out []*Round2Message
	for _, peer := range s.cfg.Party {
		if peer == s.cfg.SelfID {
			continue
		}
		b, ok := s.round1[peer]
		if !ok {
			s.recordComplaint(&Complaint{
				DKGID:       s.cfg.DKGID,
				Complainant: s.cfg.SelfID,
				Against:     peer,
				Kind:        ComplaintMissing,
			})
			continue
		}

		commits, epk, err := s.verifyBroadcast(b)
		if err != nil {
			s.Abort()
			return nil, err
		}
		s.peerCommits[peer] = commits
		s.peerKeys[peer] = epk

		share := s.poly.EvalAt(peer)
		key, err := DerivePairwiseKey(s.esk, epk, s.cfg.DKGID)
		if err != nil {
			curve.ZeroScalar(share)
			s.Abort()
			return nil, errors.Wrapf(err, "derive pairwise key for participant %d", peer)
		}
		ciphertext, err := EncryptShare(key, s.sendCounter, share, shareAssociatedData(s.cfg.DKGID, s.cfg.SelfID, peer))
		curve.ZeroScalar(share)
		curve.ZeroBytes(key)
		if err != nil {
			s.Abort()
			return nil, errors.Wrapf(err, "encrypt share for participant %d", peer)
		}
		s.sendCounter++

		out = append(out, &Round2Message{
			SenderID:   s.cfg.SelfID,
			ReceiverID: peer,
			Data:       ciphertext,
		})
	}

	s.state = StateAwaitRound3
	return out, nil
}

// verifyBroadcast validates the structure and both proofs of a peer's
// round-1 broadcast.
func (s *Session) verifyBroadcast(b *Round1Broadcast) ([]*secp256k1.JacobianPoint, *secp256k1.PublicKey, error) {
	if len(b.PublicFx) != s.cfg.Threshold {
		return nil, nil, ErrInvalidMessage
	}
	// Identity coefficients are tolerated: an externally supplied zero
	// constant term commits to the identity and is still verifiable.
	commits := make([]*secp256k1.JacobianPoint, len(b.PublicFx))
	for i, enc := range b.PublicFx {
		p, err := curve.ParsePoint(enc)
		if err != nil {
			return nil, nil, ErrInvalidMessage
		}
		commits[i] = p
	}

	if !b.Coefficient0Signature.Verify(commits[0], ContextCoefficient0, s.cfg.DKGID, b.SenderID) {
		return nil, nil, &ProofInvalidError{SenderID: b.SenderID, Context: ContextCoefficient0}
	}

	epkPoint, err := curve.ParsePoint(b.PublicKey)
	if err != nil || curve.IsIdentity(epkPoint) {
		return nil, nil, ErrInvalidMessage
	}
	if !b.SecretSignature.Verify(epkPoint, ContextEphemeralKey, s.cfg.DKGID, b.SenderID) {
		return nil, nil, &ProofInvalidError{SenderID: b.SenderID, Context: ContextEphemeralKey}
	}
	epk, err := secp256k1.ParsePubKey(b.PublicKey)
	if err != nil {
		return nil, nil, ErrInvalidMessage
	}
	return commits, epk, nil
}

// RoundThree decrypts the pairwise shares addressed to this participant,
// verifies each against the sender's coefficient commitments, and either
// completes the session with a key share or terminates it with complaint
// evidence.
func (s *Session) RoundThree(messages []*Round2Message) (*Round3Result, error) {
	if s.state != StateAwaitRound3 {
		return nil, ErrInvalidRoundState
	}

	ciphertexts := make(map[uint64][]byte, len(messages))
	for _, m := range messages {
		if m == nil || m.ReceiverID != s.cfg.SelfID {
			return nil, ErrInvalidMessage
		}
		if !s.isMember(m.SenderID) || m.SenderID == s.cfg.SelfID {
			return nil, ErrUnknownParticipant
		}
		if _, dup := ciphertexts[m.SenderID]; dup {
			continue // first wins
		}
		ciphertexts[m.SenderID] = m.Data
	}

	received := make(map[uint64]*secp256k1.ModNScalar, len(s.cfg.Party))
	zeroizeReceived := func() {
		for _, sh := range received {
			curve.ZeroScalar(sh)
		}
	}

	for _, peer := range s.cfg.Party {
		if peer == s.cfg.SelfID {
			continue
		}
		epk, ok := s.peerKeys[peer]
		if !ok {
			// Already the subject of a missing-broadcast complaint from
			// round 2.
			continue
		}
		ciphertext, ok := ciphertexts[peer]
		if !ok {
			s.recordComplaint(s.evidence(peer, ComplaintDecrypt, nil))
			continue
		}

		key, err := DerivePairwiseKey(s.esk, epk, s.cfg.DKGID)
		if err != nil {
			zeroizeReceived()
			s.Abort()
			return nil, errors.Wrapf(err, "derive pairwise key for participant %d", peer)
		}
		share, err := DecryptShare(key, ciphertext, shareAssociatedData(s.cfg.DKGID, peer, s.cfg.SelfID))
		curve.ZeroBytes(key)
		if err != nil {
			s.recordComplaint(s.evidence(peer, ComplaintDecrypt, ciphertext))
			continue
		}

		expected := EvalCommitments(s.peerCommits[peer], s.cfg.SelfID)
		if !curve.PointsEqual(curve.BasePointMult(share), expected) {
			curve.ZeroScalar(share)
			s.recordComplaint(s.evidence(peer, ComplaintShare, ciphertext))
			continue
		}
		received[peer] = share
	}

	if len(s.complaints) > 0 {
		zeroizeReceived()
		complaints := s.complaints
		s.state = StateComplaint
		s.destroy(false)
		return &Round3Result{
			Status: StatusComplaint,
			Data:   &Round3Data{Complaints: complaints},
		}, nil
	}

	// share_i = f_i(id_i) + sum_j s_{j->i}
	share := s.poly.EvalAt(s.cfg.SelfID)
	for _, sh := range received {
		share.Add(sh)
	}
	zeroizeReceived()

	// Y = sum_j C_{j,0}, including our own contribution.
	groupKey := s.commitments[0]
	for _, commits := range s.peerCommits {
		groupKey = curve.AddPoints(groupKey, commits[0])
	}
	verificationKey := curve.BasePointMult(share)

	shareProof, err := Prove(share, verificationKey, ContextShare, s.cfg.DKGID, s.cfg.SelfID)
	if err != nil {
		curve.ZeroScalar(share)
		s.Abort()
		return nil, errors.Wrap(err, "prove key share")
	}

	key := &KeyShare{
		DKGID:           s.cfg.DKGID,
		ID:              s.cfg.SelfID,
		Share:           curve.SerializeScalar(share),
		GroupKey:        curve.SerializePoint(groupKey),
		VerificationKey: curve.SerializePoint(verificationKey),
		ShareSignature:  shareProof,
	}
	curve.ZeroScalar(share)

	s.state = StateDone
	s.destroy(false)

	log.Info().
		Str("dkg_id", s.cfg.DKGID).
		Uint64("participant", s.cfg.SelfID).
		Msg("dkg session completed")

	return &Round3Result{
		Status: StatusSuccessful,
		Data:   &Round3Data{Key: key},
	}, nil
}

// evidence builds a complaint against a peer, revealing this participant's
// ephemeral secret for the session so that any observer can re-derive the
// pairwise key and confirm the fault. Long-term keys and the DKG share are
// never revealed.
func (s *Session) evidence(against uint64, kind string, ciphertext []byte) *Complaint {
	var epk []byte
	if b, ok := s.round1[against]; ok {
		epk = b.PublicKey
	}
	return &Complaint{
		DKGID:           s.cfg.DKGID,
		Complainant:     s.cfg.SelfID,
		Against:         against,
		Kind:            kind,
		EphemeralSecret: s.esk.Serialize(),
		EphemeralPublic: epk,
		Ciphertext:      ciphertext,
	}
}

func (s *Session) recordComplaint(c *Complaint) {
	log.Warn().
		Str("dkg_id", s.cfg.DKGID).
		Uint64("complainant", c.Complainant).
		Uint64("against", c.Against).
		Str("kind", c.Kind).
		Msg("dkg complaint recorded")
	s.complaints = append(s.complaints, c)
}

func (s *Session) isMember(id uint64) bool {
	for _, p := range s.cfg.Party {
		if p == id {
			return true
		}
	}
	return false
}

// Abort cancels the session and destroys its secrets. Already-broadcast
// round-1 material is public and remains so.
func (s *Session) Abort() {
	if s.state == StateDone || s.state == StateComplaint {
		return
	}
	s.state = StateComplaint
	s.destroy(false)
}

// destroy zeroizes session-scoped secrets. When keepEsk is true the
// ephemeral secret is left intact because it was published as complaint
// evidence; it has no value beyond this session.
func (s *Session) destroy(keepEsk bool) {
	if s.poly != nil {
		s.poly.Zeroize()
		s.poly = nil
	}
	if s.esk != nil && !keepEsk {
		s.esk.Zero()
	}
	s.esk = nil
	s.peerKeys = nil
}
