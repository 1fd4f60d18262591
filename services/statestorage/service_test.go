// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package statestorage

import (
	"context"
	"fmt"
	"github.com/orbs-network/contribchain-go/instrumentation/metric"
	"github.com/orbs-network/contribchain-go/services"
	"github.com/orbs-network/contribchain-go/services/statestorage/adapter/memory"
	"github.com/orbs-network/contribchain-go/test"
	"github.com/orbs-network/contribchain-go/test/with"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/stretchr/testify/require"
	"testing"
)

func newStateStorageForTests(h *with.LoggingHarness) services.StateStorage {
	registry := metric.NewRegistry()
	return NewStateStorage(memory.NewStatePersistence(registry), h.Logger, registry)
}

func commit(t testing.TB, s services.StateStorage, height primitives.BlockHeight, contract primitives.ContractName, keyValues ...string) *services.CommitStateDiffOutput {
	records := []*services.StateRecord{}
	for i := 0; i+1 < len(keyValues); i += 2 {
		records = append(records, &services.StateRecord{Key: []byte(keyValues[i]), Value: []byte(keyValues[i+1])})
	}
	output, err := s.CommitStateDiff(context.Background(), &services.CommitStateDiffInput{
		BlockHeight:        height,
		BlockTimestamp:     primitives.TimestampNano(height * 1000),
		ContractStateDiffs: []*services.ContractStateDiff{{ContractName: contract, StateDiffs: records}},
	})
	require.NoError(t, err)
	return output
}

func readKey(t testing.TB, s services.StateStorage, height primitives.BlockHeight, contract primitives.ContractName, key string) string {
	output, err := s.ReadKeys(context.Background(), &services.ReadKeysInput{
		BlockHeight:  height,
		ContractName: contract,
		Keys:         [][]byte{[]byte(key)},
	})
	require.NoError(t, err)
	require.Len(t, output.StateRecords, 1)
	return string(output.StateRecords[0].Value)
}

func TestReadKeys_MissingKeyReadsEmpty(t *testing.T) {
	with.Logging(t, func(h *with.LoggingHarness) {
		s := newStateStorageForTests(h)
		require.Equal(t, "", readKey(t, s, 0, "Contract1", "missing"))
	})
}

func TestReadKeys_RequiresContractName(t *testing.T) {
	with.Logging(t, func(h *with.LoggingHarness) {
		s := newStateStorageForTests(h)
		_, err := s.ReadKeys(context.Background(), &services.ReadKeysInput{Keys: [][]byte{[]byte("key")}})
		require.Error(t, err)
	})
}

func TestReadKeys_RejectsFutureHeight(t *testing.T) {
	with.Logging(t, func(h *with.LoggingHarness) {
		s := newStateStorageForTests(h)
		_, err := s.ReadKeys(context.Background(), &services.ReadKeysInput{BlockHeight: 1, ContractName: "Contract1", Keys: [][]byte{[]byte("key")}})
		require.Error(t, err)
	})
}

func TestCommitStateDiff_WritesAndDeletes(t *testing.T) {
	with.Logging(t, func(h *with.LoggingHarness) {
		s := newStateStorageForTests(h)

		output := commit(t, s, 1, "Contract1", "key1", "value1", "key2", "value2")
		require.EqualValues(t, 2, output.NextDesiredBlockHeight)
		require.Equal(t, "value1", readKey(t, s, 1, "Contract1", "key1"))
		require.Equal(t, "", readKey(t, s, 1, "Contract2", "key1"), "state is kept per contract")

		commit(t, s, 2, "Contract1", "key1", "")
		require.Equal(t, "", readKey(t, s, 2, "Contract1", "key1"), "empty value should delete")
		require.Equal(t, "value2", readKey(t, s, 2, "Contract1", "key2"))
	})
}

func TestCommitStateDiff_IgnoresOutOfOrderBlocks(t *testing.T) {
	with.Logging(t, func(h *with.LoggingHarness) {
		s := newStateStorageForTests(h)

		output := commit(t, s, 3, "Contract1", "key1", "value1")
		require.EqualValues(t, 1, output.NextDesiredBlockHeight, "should ask for the next consecutive block")
		require.Equal(t, "", readKey(t, s, 0, "Contract1", "key1"))

		heightOutput, err := s.GetStateStorageBlockHeight(context.Background(), &services.GetStateStorageBlockHeightInput{})
		require.NoError(t, err)
		require.EqualValues(t, 0, heightOutput.LastCommittedBlockHeight)
	})
}

func TestGetStateStorageBlockHeight_ReportsLastCommit(t *testing.T) {
	with.Logging(t, func(h *with.LoggingHarness) {
		s := newStateStorageForTests(h)
		commit(t, s, 1, "Contract1", "key1", "value1")
		commit(t, s, 2, "Contract1", "key1", "value2")

		output, err := s.GetStateStorageBlockHeight(context.Background(), &services.GetStateStorageBlockHeightInput{})
		require.NoError(t, err)
		require.EqualValues(t, 2, output.LastCommittedBlockHeight)
		require.EqualValues(t, 2000, output.LastCommittedBlockTimestamp)
	})
}

func TestGetStateHash_ChainsOverPreviousHash(t *testing.T) {
	with.Logging(t, func(h *with.LoggingHarness) {
		s := newStateStorageForTests(h)

		genesis, err := s.GetStateHash(context.Background(), &services.GetStateHashInput{BlockHeight: 0})
		require.NoError(t, err)
		require.Equal(t, genesisStateHash(), genesis.StateHash)

		commit(t, s, 1, "Contract1", "key1", "value1")
		first, err := s.GetStateHash(context.Background(), &services.GetStateHashInput{BlockHeight: 1})
		require.NoError(t, err)
		require.Equal(t, calcStateHash(genesisStateHash(), 1, 1000, chainStateFromDiffs([]*services.ContractStateDiff{
			{ContractName: "Contract1", StateDiffs: []*services.StateRecord{{Key: []byte("key1"), Value: []byte("value1")}}},
		})), first.StateHash)

		commit(t, s, 2, "Contract1", "key1", "value1")
		second, err := s.GetStateHash(context.Background(), &services.GetStateHashInput{BlockHeight: 2})
		require.NoError(t, err)
		require.NotEqual(t, first.StateHash, second.StateHash, "identical diffs at different heights should hash differently")

		_, err = s.GetStateHash(context.Background(), &services.GetStateHashInput{BlockHeight: 3})
		require.Error(t, err, "future state hash should not exist")
	})
}

func TestCalcStateHash_IsIndependentOfMapOrder(t *testing.T) {
	diff1 := chainStateFromDiffs([]*services.ContractStateDiff{
		{ContractName: "A", StateDiffs: []*services.StateRecord{{Key: []byte("1"), Value: []byte("x")}, {Key: []byte("2"), Value: []byte("y")}}},
		{ContractName: "B", StateDiffs: []*services.StateRecord{{Key: []byte("3"), Value: []byte("z")}}},
	})
	diff2 := chainStateFromDiffs([]*services.ContractStateDiff{
		{ContractName: "B", StateDiffs: []*services.StateRecord{{Key: []byte("3"), Value: []byte("z")}}},
		{ContractName: "A", StateDiffs: []*services.StateRecord{{Key: []byte("2"), Value: []byte("y")}, {Key: []byte("1"), Value: []byte("x")}}},
	})

	require.Equal(t, calcStateHash(genesisStateHash(), 1, 1, diff1), calcStateHash(genesisStateHash(), 1, 1, diff2))
	require.Len(t, calcStateHash(genesisStateHash(), 1, 1, diff1), 32)
}

func TestCalcStateHash_IsIndependentOfRecordOrder(t *testing.T) {
	ctrlRand := test.NewControlledRand(t)

	records := map[primitives.ContractName][]*services.StateRecord{}
	for i := 0; i < 60; i++ {
		contract := primitives.ContractName(fmt.Sprintf("Contract%d", ctrlRand.Intn(3)))
		value := make([]byte, 1+ctrlRand.Intn(16))
		ctrlRand.Read(value)
		records[contract] = append(records[contract], &services.StateRecord{Key: []byte(fmt.Sprintf("key%d", i)), Value: value})
	}

	var ordered, shuffled []*services.ContractStateDiff
	for contract, stateDiffs := range records {
		ordered = append(ordered, &services.ContractStateDiff{ContractName: contract, StateDiffs: stateDiffs})

		mixed := append([]*services.StateRecord{}, stateDiffs...)
		ctrlRand.Shuffle(len(mixed), func(i, j int) { mixed[i], mixed[j] = mixed[j], mixed[i] })
		shuffled = append([]*services.ContractStateDiff{{ContractName: contract, StateDiffs: mixed}}, shuffled...)
	}

	require.Equal(t,
		calcStateHash(genesisStateHash(), 7, 7, chainStateFromDiffs(ordered)),
		calcStateHash(genesisStateHash(), 7, 7, chainStateFromDiffs(shuffled)),
		"hash should not depend on the order records arrive in")
}
