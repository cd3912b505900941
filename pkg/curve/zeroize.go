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

package curve

import (
	"crypto/subtle"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// ZeroBytes securely zeros a byte slice. crypto/subtle prevents the compiler
// from optimizing the zeroing away.
func ZeroBytes(b []byte) {
	if len(b) == 0 {
		return
	}
	zeros := make([]byte, len(b))
	subtle.ConstantTimeCopy(1, b, zeros)
}

// ZeroScalar overwrites a scalar with zero. Call on shares, polynomial
// coefficients, private nonce halves and ephemeral secrets when they are no
// longer needed.
func ZeroScalar(s *secp256k1.ModNScalar) {
	if s != nil {
		s.Zero()
	}
}

// ZeroScalars zeros multiple scalars.
func ZeroScalars(scalars ...*secp256k1.ModNScalar) {
	for _, s := range scalars {
		ZeroScalar(s)
	}
}
