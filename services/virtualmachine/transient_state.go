// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package virtualmachine

import (
	"bytes"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"sort"
)

type keyValuePair struct {
	key     []byte
	value   []byte
	isDirty bool
}

type transientState struct {
	contractSortOrder []primitives.ContractName
	contracts         map[primitives.ContractName]map[string]*keyValuePair
}

func newTransientState() *transientState {
	return &transientState{
		contracts: make(map[primitives.ContractName]map[string]*keyValuePair),
	}
}

func (t *transientState) getValue(contractName primitives.ContractName, key []byte) ([]byte, bool) {
	records, found := t.contracts[contractName]
	if !found {
		return nil, false
	}
	record, found := records[string(key)]
	if !found {
		return nil, false
	}
	return record.value, true
}

func (t *transientState) setValue(contractName primitives.ContractName, key []byte, value []byte, isDirty bool) {
	records, found := t.contracts[contractName]
	if !found {
		records = make(map[string]*keyValuePair)
		t.contracts[contractName] = records
		t.contractSortOrder = append(t.contractSortOrder, contractName)
	}
	records[string(key)] = &keyValuePair{key, value, isDirty}
}

// iterates dirty keys of a contract in ascending key order
func (t *transientState) forDirty(contractName primitives.ContractName, f func(key []byte, value []byte)) {
	records, found := t.contracts[contractName]
	if !found {
		return
	}
	dirty := make([]*keyValuePair, 0, len(records))
	for _, record := range records {
		if record.isDirty {
			dirty = append(dirty, record)
		}
	}
	sort.Slice(dirty, func(i, j int) bool {
		return bytes.Compare(dirty[i].key, dirty[j].key) < 0
	})
	for _, record := range dirty {
		f(record.key, record.value)
	}
}

func (t *transientState) mergeIntoTransientState(other *transientState) {
	for _, contractName := range t.contractSortOrder {
		t.forDirty(contractName, func(key []byte, value []byte) {
			other.setValue(contractName, key, value, true)
		})
	}
}
