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

import "errors"

var (
	// ErrInvalidPointEncoding indicates a point encoding that is not a valid
	// 33-byte compressed secp256k1 point.
	ErrInvalidPointEncoding = errors.New("curve: invalid point encoding")

	// ErrInvalidScalarEncoding indicates a scalar encoding that is not a
	// canonical 32-byte big-endian value below the curve order.
	ErrInvalidScalarEncoding = errors.New("curve: invalid scalar encoding")

	// ErrZeroScalar indicates a zero scalar in a context where it is not
	// allowed, such as inversion.
	ErrZeroScalar = errors.New("curve: zero scalar")
)
