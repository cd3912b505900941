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

// Package dkg implements a three-round distributed key generation protocol
// with verifiable secret sharing, encrypted pairwise share delivery and
// identifiable aborts.
package dkg

import (
	"errors"
	"fmt"
)

// Structural errors. These indicate caller bugs and are never retryable.
var (
	// ErrInvalidThreshold indicates a threshold outside [1, n].
	ErrInvalidThreshold = errors.New("dkg: invalid threshold")

	// ErrInvalidParty indicates a malformed party set: a zero id or a
	// duplicate id.
	ErrInvalidParty = errors.New("dkg: invalid party set")

	// ErrInvalidSessionID indicates an empty DKG session id.
	ErrInvalidSessionID = errors.New("dkg: invalid session id")

	// ErrDuplicateParticipant indicates a duplicate participant id in a set
	// that requires distinct members.
	ErrDuplicateParticipant = errors.New("dkg: duplicate participant id")

	// ErrUnknownParticipant indicates a participant id that is not a member
	// of the session party.
	ErrUnknownParticipant = errors.New("dkg: unknown participant id")

	// ErrInvalidRoundState indicates that a round was invoked out of order.
	// Round ordering is strict; this is a programmer fault.
	ErrInvalidRoundState = errors.New("dkg: round invoked out of order")

	// ErrInvalidMessage indicates a structurally bad round message
	// (wrong recipient, non-canonical point, wrong commitment count).
	ErrInvalidMessage = errors.New("dkg: invalid round message")

	// ErrDecryptFailed indicates an AEAD failure on a pairwise ciphertext.
	ErrDecryptFailed = errors.New("dkg: pairwise share decryption failed")
)

// ProofInvalidError reports a failed round-1 proof of knowledge. Round-1
// broadcasts are public, so the failure is globally attributable and aborts
// the session.
type ProofInvalidError struct {
	// SenderID is the participant whose proof failed.
	SenderID uint64
	// Context is the proof context label that failed.
	Context string
}

func (e *ProofInvalidError) Error() string {
	return fmt.Sprintf("dkg: invalid %q proof from participant %d", e.Context, e.SenderID)
}
