// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package digest

import (
	"encoding/binary"
	"github.com/orbs-network/contribchain-go/crypto/hash"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
)

var fieldSeparator = []byte{0}

// CalcTxHash is the value a contributor signs; every field that affects execution is covered
func CalcTxHash(
	contractName primitives.ContractName,
	methodName primitives.MethodName,
	rawInputArguments []byte,
	timestamp primitives.TimestampNano,
	signerPublicKey primitives.Ed25519PublicKey,
) primitives.Sha256 {
	timestampBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(timestampBytes, uint64(timestamp))
	return hash.CalcSha256(
		[]byte(contractName), fieldSeparator,
		[]byte(methodName), fieldSeparator,
		rawInputArguments, fieldSeparator,
		timestampBytes,
		signerPublicKey,
	)
}
