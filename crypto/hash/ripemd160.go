// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package hash

import (
	"golang.org/x/crypto/ripemd160"
)

const (
	RIPEMD160_HASH_SIZE_BYTES = 20
)

// CalcRipemd160Sha256 is used to turn arbitrary state keys into fixed size state addresses
func CalcRipemd160Sha256(data []byte) []byte {
	r := ripemd160.New()
	r.Write(CalcSha256(data))
	return r.Sum(nil)
}
