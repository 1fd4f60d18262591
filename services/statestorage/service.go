// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package statestorage

import (
	"context"
	"github.com/orbs-network/contribchain-go/instrumentation/logfields"
	"github.com/orbs-network/contribchain-go/instrumentation/metric"
	"github.com/orbs-network/contribchain-go/instrumentation/trace"
	"github.com/orbs-network/contribchain-go/services"
	"github.com/orbs-network/contribchain-go/services/statestorage/adapter"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"sync"
	"time"
)

var LogTag = log.Service("state-storage")

type metrics struct {
	commitTime          *metric.Histogram
	readKeysTime        *metric.Histogram
	lastCommittedHeight *metric.Gauge
}

func newMetrics(m metric.Factory) *metrics {
	return &metrics{
		commitTime:          m.NewLatency("StateStorage.CommitStateDiffTime", 10*time.Second),
		readKeysTime:        m.NewLatency("StateStorage.ReadKeysTime", 10*time.Second),
		lastCommittedHeight: m.NewGauge("StateStorage.LastCommittedBlockHeight"),
	}
}

type service struct {
	logger      log.Logger
	metrics     *metrics
	mutex       sync.RWMutex
	persistence adapter.StatePersistence
}

func NewStateStorage(persistence adapter.StatePersistence, parentLogger log.Logger, metricFactory metric.Factory) services.StateStorage {
	s := &service{
		logger:      parentLogger.WithTags(LogTag),
		metrics:     newMetrics(metricFactory),
		persistence: persistence,
	}

	if height, _, err := persistence.ReadMetadata(); err == nil {
		s.metrics.lastCommittedHeight.Update(int64(height))
	}

	return s
}

func (s *service) CommitStateDiff(ctx context.Context, input *services.CommitStateDiffInput) (*services.CommitStateDiffOutput, error) {
	logger := s.logger.WithTags(trace.LogFieldFrom(ctx))
	start := time.Now()
	defer s.metrics.commitTime.RecordSince(start)

	s.mutex.Lock()
	defer s.mutex.Unlock()

	lastCommittedHeight, _, err := s.persistence.ReadMetadata()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read committed block height")
	}
	if input.BlockHeight != lastCommittedHeight+1 {
		logger.Info("ignoring commit of out of order block", logfields.BlockHeight(input.BlockHeight), log.Uint64("expected-height", uint64(lastCommittedHeight+1)))
		return &services.CommitStateDiffOutput{NextDesiredBlockHeight: lastCommittedHeight + 1}, nil
	}

	prevStateHash, err := s.stateHashAt(lastCommittedHeight)
	if err != nil {
		return nil, err
	}

	diff := chainStateFromDiffs(input.ContractStateDiffs)
	stateHash := calcStateHash(prevStateHash, input.BlockHeight, input.BlockTimestamp, diff)

	if err := s.persistence.Write(input.BlockHeight, input.BlockTimestamp, stateHash, diff); err != nil {
		return nil, errors.Wrapf(err, "failed to commit state of block %d", input.BlockHeight)
	}
	s.metrics.lastCommittedHeight.Update(int64(input.BlockHeight))

	logger.Info("committed state diff", logfields.BlockHeight(input.BlockHeight), log.Int64("contracts", int64(len(diff))))

	return &services.CommitStateDiffOutput{NextDesiredBlockHeight: input.BlockHeight + 1}, nil
}

// only the latest revision is kept, so any height up to the last committed one reads it
func (s *service) ReadKeys(ctx context.Context, input *services.ReadKeysInput) (*services.ReadKeysOutput, error) {
	start := time.Now()
	defer s.metrics.readKeysTime.RecordSince(start)

	if input.ContractName == "" {
		return nil, errors.New("missing contract name")
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	lastCommittedHeight, _, err := s.persistence.ReadMetadata()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read committed block height")
	}
	if input.BlockHeight > lastCommittedHeight {
		return nil, errors.Errorf("requested state of block %d but last committed block is %d", input.BlockHeight, lastCommittedHeight)
	}

	records := make([]*services.StateRecord, 0, len(input.Keys))
	for _, key := range input.Keys {
		value, found, err := s.persistence.Read(input.ContractName, string(key))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read key %x of contract %s", key, input.ContractName)
		}
		if !found {
			value = []byte{}
		}
		records = append(records, &services.StateRecord{Key: key, Value: value})
	}

	return &services.ReadKeysOutput{StateRecords: records}, nil
}

func (s *service) GetStateStorageBlockHeight(ctx context.Context, input *services.GetStateStorageBlockHeightInput) (*services.GetStateStorageBlockHeightOutput, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	height, ts, err := s.persistence.ReadMetadata()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read committed block height")
	}

	return &services.GetStateStorageBlockHeightOutput{
		LastCommittedBlockHeight:    height,
		LastCommittedBlockTimestamp: ts,
	}, nil
}

func (s *service) GetStateHash(ctx context.Context, input *services.GetStateHashInput) (*services.GetStateHashOutput, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	lastCommittedHeight, _, err := s.persistence.ReadMetadata()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read committed block height")
	}
	if input.BlockHeight > lastCommittedHeight {
		return nil, errors.Errorf("requested state hash of block %d but last committed block is %d", input.BlockHeight, lastCommittedHeight)
	}

	stateHash, err := s.stateHashAt(input.BlockHeight)
	if err != nil {
		return nil, err
	}

	return &services.GetStateHashOutput{StateHash: stateHash}, nil
}

func (s *service) stateHashAt(height primitives.BlockHeight) ([]byte, error) {
	if height == 0 {
		return genesisStateHash(), nil
	}
	stateHash, found, err := s.persistence.ReadStateHash(height)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read state hash of block %d", height)
	}
	if !found {
		return nil, errors.Errorf("state hash of block %d is missing", height)
	}
	return stateHash, nil
}

// later records for the same key win
func chainStateFromDiffs(contractStateDiffs []*services.ContractStateDiff) adapter.ChainState {
	res := adapter.ChainState{}
	for _, contractDiff := range contractStateDiffs {
		records, found := res[contractDiff.ContractName]
		if !found {
			records = make(map[string][]byte)
			res[contractDiff.ContractName] = records
		}
		for _, record := range contractDiff.StateDiffs {
			records[string(record.Key)] = record.Value
		}
	}
	return res
}
