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
	"github.com/pkg/errors"
)

// InitializeGenesis commits the _init state of every deployed contract as block 1
// when nothing was committed yet. It does nothing on a node that already has state.
func (s *service) InitializeGenesis(parentCtx context.Context) error {
	ctx := trace.NewContext(parentCtx, "PublicApi.InitializeGenesis")
	logger := s.logger.WithTags(trace.LogFieldFrom(ctx))

	s.sendMutex.Lock()
	defer s.sendMutex.Unlock()

	lastCommitted, err := s.stateStorage.GetStateStorageBlockHeight(ctx, &services.GetStateStorageBlockHeightInput{})
	if err != nil {
		return errors.Wrap(err, "failed to read committed block height")
	}
	if lastCommitted.LastCommittedBlockHeight > 0 {
		logger.Info("state already initialized", logfields.BlockHeight(lastCommitted.LastCommittedBlockHeight))
		return nil
	}

	blockTimestamp := digest.CalcNewBlockTimestamp(lastCommitted.LastCommittedBlockTimestamp, s.clock())
	initOutput, err := s.virtualMachine.InitializeContracts(ctx, &services.InitializeContractsInput{
		CurrentBlockHeight:    1,
		CurrentBlockTimestamp: blockTimestamp,
	})
	if err != nil {
		return errors.Wrap(err, "failed to initialize contracts")
	}

	if err := s.commitBlock(ctx, 1, blockTimestamp, initOutput.ContractStateDiffs); err != nil {
		return err
	}
	logger.Info("genesis block committed", logfields.BlockHeight(1))
	return nil
}
