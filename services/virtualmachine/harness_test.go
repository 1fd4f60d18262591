// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package virtualmachine_test

import (
	"context"
	"github.com/orbs-network/contribchain-go/config"
	"github.com/orbs-network/contribchain-go/instrumentation/metric"
	"github.com/orbs-network/contribchain-go/services"
	"github.com/orbs-network/contribchain-go/services/processor/native"
	"github.com/orbs-network/contribchain-go/services/processor/native/repository/ContributionLedger"
	"github.com/orbs-network/contribchain-go/services/virtualmachine"
	"github.com/orbs-network/go-mock"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/scribe/log"
)

type stateStorageMock struct {
	mock.Mock
}

func (s *stateStorageMock) ReadKeys(ctx context.Context, input *services.ReadKeysInput) (*services.ReadKeysOutput, error) {
	ret := s.Called(ctx, input)
	if out := ret.Get(0); out != nil {
		return out.(*services.ReadKeysOutput), ret.Error(1)
	}
	return nil, ret.Error(1)
}

func (s *stateStorageMock) CommitStateDiff(ctx context.Context, input *services.CommitStateDiffInput) (*services.CommitStateDiffOutput, error) {
	ret := s.Called(ctx, input)
	if out := ret.Get(0); out != nil {
		return out.(*services.CommitStateDiffOutput), ret.Error(1)
	}
	return nil, ret.Error(1)
}

func (s *stateStorageMock) GetStateStorageBlockHeight(ctx context.Context, input *services.GetStateStorageBlockHeightInput) (*services.GetStateStorageBlockHeightOutput, error) {
	ret := s.Called(ctx, input)
	if out := ret.Get(0); out != nil {
		return out.(*services.GetStateStorageBlockHeightOutput), ret.Error(1)
	}
	return nil, ret.Error(1)
}

func (s *stateStorageMock) GetStateHash(ctx context.Context, input *services.GetStateHashInput) (*services.GetStateHashOutput, error) {
	ret := s.Called(ctx, input)
	if out := ret.Get(0); out != nil {
		return out.(*services.GetStateHashOutput), ret.Error(1)
	}
	return nil, ret.Error(1)
}

type harness struct {
	vm           services.VirtualMachine
	stateStorage *stateStorageMock

	committedHeight    primitives.BlockHeight
	committedTimestamp primitives.TimestampNano
	committed          map[string][]byte
}

func newHarness(logger log.Logger) *harness {
	registry := metric.NewRegistry()
	stateStorage := &stateStorageMock{}
	processor := native.NewNativeProcessor(logger, registry, &contributionledger.CONTRACT)

	h := &harness{
		vm:           virtualmachine.NewVirtualMachine(stateStorage, processor, config.ForTests(), logger, registry),
		stateStorage: stateStorage,
		committed:    make(map[string][]byte),
	}
	h.serveCommittedStateFromHarness()
	return h
}

func (h *harness) serveCommittedStateFromHarness() {
	h.stateStorage.When("ReadKeys", mock.Any, mock.Any).Call(func(ctx context.Context, input *services.ReadKeysInput) (*services.ReadKeysOutput, error) {
		records := make([]*services.StateRecord, 0, len(input.Keys))
		for _, key := range input.Keys {
			value, found := h.committed[string(input.ContractName)+"/"+string(key)]
			if !found {
				value = []byte{}
			}
			records = append(records, &services.StateRecord{Key: key, Value: value})
		}
		return &services.ReadKeysOutput{StateRecords: records}, nil
	})
	h.stateStorage.When("GetStateStorageBlockHeight", mock.Any, mock.Any).Call(func(ctx context.Context, input *services.GetStateStorageBlockHeightInput) (*services.GetStateStorageBlockHeightOutput, error) {
		return &services.GetStateStorageBlockHeightOutput{
			LastCommittedBlockHeight:    h.committedHeight,
			LastCommittedBlockTimestamp: h.committedTimestamp,
		}, nil
	})
}

func (h *harness) commit(height primitives.BlockHeight, timestamp primitives.TimestampNano, diffs []*services.ContractStateDiff) {
	for _, diff := range diffs {
		for _, record := range diff.StateDiffs {
			h.committed[string(diff.ContractName)+"/"+string(record.Key)] = record.Value
		}
	}
	h.committedHeight = height
	h.committedTimestamp = timestamp
}
