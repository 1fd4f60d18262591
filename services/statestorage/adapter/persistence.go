// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package adapter

import (
	"github.com/orbs-network/orbs-spec/types/go/primitives"
)

type ChainState map[primitives.ContractName]map[string][]byte

type StatePersistence interface {
	Write(height primitives.BlockHeight, ts primitives.TimestampNano, stateHash []byte, diff ChainState) error
	Read(contract primitives.ContractName, key string) ([]byte, bool, error)
	ReadMetadata() (primitives.BlockHeight, primitives.TimestampNano, error)
	ReadStateHash(height primitives.BlockHeight) ([]byte, bool, error)
	Close() error
}

// an empty value written to a key removes it from state
func IsZeroValue(value []byte) bool {
	return len(value) == 0
}
