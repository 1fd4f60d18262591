// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package publicapi

import (
	"context"
	"github.com/orbs-network/contribchain-go/crypto/digest"
	"github.com/orbs-network/contribchain-go/instrumentation/logfields"
	"github.com/orbs-network/contribchain-go/instrumentation/trace"
	"github.com/orbs-network/contribchain-go/services"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"time"
)

func (s *service) SendTransaction(parentCtx context.Context, input *services.SendTransactionInput) (*services.SendTransactionOutput, error) {
	ctx := trace.NewContext(parentCtx, "PublicApi.SendTransaction")
	start := time.Now()
	defer s.metrics.sendTransactionTime.RecordSince(start)

	s.metrics.totalTransactionsFromClients.Inc()
	if input == nil || input.Transaction == nil {
		s.metrics.totalTransactionsErrNilRequest.Inc()
		err := errors.New("client request is nil")
		s.logger.Info("send transaction received missing input", log.Error(err))
		return nil, err
	}

	tx := input.Transaction
	txHash := tx.Hash()
	logger := s.logger.WithTags(trace.LogFieldFrom(ctx), logfields.Transaction(txHash))
	logger.Info("send transaction request received", logfields.Contract(tx.ContractName), logfields.Method(tx.MethodName))

	s.sendMutex.Lock()
	defer s.sendMutex.Unlock()

	lastCommitted, err := s.stateStorage.GetStateStorageBlockHeight(ctx, &services.GetStateStorageBlockHeightInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to read committed block height")
	}
	blockHeight := lastCommitted.LastCommittedBlockHeight + 1
	blockTimestamp := digest.CalcNewBlockTimestamp(lastCommitted.LastCommittedBlockTimestamp, s.clock())

	processOutput, err := s.virtualMachine.ProcessTransaction(ctx, &services.ProcessTransactionInput{
		CurrentBlockHeight:    blockHeight,
		CurrentBlockTimestamp: blockTimestamp,
		Transaction:           tx,
	})
	if err != nil {
		s.metrics.totalTransactionsErrInvalidRequest.Inc()
		logger.Info("transaction rejected", log.Error(err))
		return nil, err
	}

	output := &services.SendTransactionOutput{
		TxHash:              txHash,
		ExecutionResult:     processOutput.ExecutionResult,
		OutputArgumentArray: processOutput.OutputArgumentArray,
		BlockHeight:         lastCommitted.LastCommittedBlockHeight,
		BlockTimestamp:      lastCommitted.LastCommittedBlockTimestamp,
	}

	if processOutput.ExecutionResult != protocol.EXECUTION_RESULT_SUCCESS {
		s.metrics.totalTransactionsFailed.Inc()
		logger.Info("transaction failed and was not committed", log.Stringable("result", processOutput.ExecutionResult))
		return output, nil
	}

	if err := s.commitBlock(ctx, blockHeight, blockTimestamp, processOutput.ContractStateDiffs); err != nil {
		return nil, err
	}
	logger.Info("transaction committed", logfields.BlockHeight(blockHeight))

	output.BlockHeight = blockHeight
	output.BlockTimestamp = blockTimestamp
	return output, nil
}

func (s *service) commitBlock(ctx context.Context, height primitives.BlockHeight, ts primitives.TimestampNano, diffs []*services.ContractStateDiff) error {
	commitOutput, err := s.stateStorage.CommitStateDiff(ctx, &services.CommitStateDiffInput{
		BlockHeight:        height,
		BlockTimestamp:     ts,
		ContractStateDiffs: diffs,
	})
	if err != nil {
		return errors.Wrapf(err, "failed to commit block %d", height)
	}
	if commitOutput.NextDesiredBlockHeight != height+1 {
		return errors.Errorf("state storage refused block %d and expects block %d", height, commitOutput.NextDesiredBlockHeight)
	}
	s.metrics.lastCommittedBlockHeight.Update(int64(height))
	return nil
}
