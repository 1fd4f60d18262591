// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package statestorage

import (
	"github.com/orbs-network/contribchain-go/crypto/hash"
	"github.com/orbs-network/contribchain-go/services/statestorage/adapter"
	"github.com/orbs-network/membuffers/go"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"sort"
)

func genesisStateHash() []byte {
	return make([]byte, hash.KECCAK256_HASH_SIZE_BYTES)
}

// keccak256 over the previous hash, the block header fields and the diff in canonical order
func calcStateHash(prevStateHash []byte, height primitives.BlockHeight, ts primitives.TimestampNano, diff adapter.ChainState) []byte {
	parts := [][]byte{prevStateHash, uint64Bytes(uint64(height)), uint64Bytes(uint64(ts))}

	contracts := make([]primitives.ContractName, 0, len(diff))
	for contract := range diff {
		contracts = append(contracts, contract)
	}
	sort.Slice(contracts, func(i, j int) bool { return contracts[i] < contracts[j] })

	for _, contract := range contracts {
		records := diff[contract]
		keys := make([]string, 0, len(records))
		for key := range records {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		parts = append(parts, lengthPrefixed([]byte(contract)))
		for _, key := range keys {
			parts = append(parts, lengthPrefixed([]byte(key)), lengthPrefixed(records[key]))
		}
	}

	return hash.CalcKeccak256(parts...)
}

func uint64Bytes(value uint64) []byte {
	res := make([]byte, 8)
	membuffers.WriteUint64(res, value)
	return res
}

func lengthPrefixed(data []byte) []byte {
	res := make([]byte, 4, 4+len(data))
	membuffers.WriteUint32(res, uint32(len(data)))
	return append(res, data...)
}
