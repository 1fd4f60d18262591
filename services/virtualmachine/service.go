// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package virtualmachine

import (
	"context"
	"github.com/orbs-network/contribchain-go/crypto/digest"
	"github.com/orbs-network/contribchain-go/instrumentation/logfields"
	"github.com/orbs-network/contribchain-go/instrumentation/metric"
	"github.com/orbs-network/contribchain-go/instrumentation/trace"
	"github.com/orbs-network/contribchain-go/services"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"time"
)

var LogTag = log.Service("virtual-machine")

var ErrSignatureMismatch = errors.New("transaction signature mismatch")

type Config interface {
	VirtualMachineMaxValueSizeBytes() uint32
}

type service struct {
	stateStorage services.StateStorage
	processor    services.Processor
	config       Config
	logger       log.Logger

	contexts *executionContextProvider
	metrics  *metrics
}

type metrics struct {
	processTransactionTime *metric.Histogram
	runQueryTime           *metric.Histogram
	transactions           *metric.Rate
	rejectedTransactions   *metric.Rate
	failedTransactions     *metric.Rate
}

func getMetrics(m metric.Factory) *metrics {
	return &metrics{
		processTransactionTime: m.NewLatency("VirtualMachine.ProcessTransactionTime", 10*time.Second),
		runQueryTime:           m.NewLatency("VirtualMachine.RunQueryTime", 10*time.Second),
		transactions:           m.NewRate("VirtualMachine.Transactions.PerSecond"),
		rejectedTransactions:   m.NewRate("VirtualMachine.RejectedTransactions.PerSecond"),
		failedTransactions:     m.NewRate("VirtualMachine.FailedTransactions.PerSecond"),
	}
}

func NewVirtualMachine(
	stateStorage services.StateStorage,
	processor services.Processor,
	config Config,
	parentLogger log.Logger,
	metricFactory metric.Factory,
) services.VirtualMachine {

	s := &service{
		stateStorage: stateStorage,
		processor:    processor,
		config:       config,
		logger:       parentLogger.WithTags(LogTag),
		contexts:     newExecutionContextProvider(),
		metrics:      getMetrics(metricFactory),
	}

	processor.RegisterContractSdkCallHandler(s)

	return s
}

func (s *service) ProcessTransaction(ctx context.Context, input *services.ProcessTransactionInput) (*services.ProcessTransactionOutput, error) {
	logger := s.logger.WithTags(trace.LogFieldFrom(ctx))
	start := time.Now()
	defer s.metrics.processTransactionTime.RecordSince(start)

	tx := input.Transaction
	if tx == nil {
		return nil, errors.New("transaction is missing")
	}
	if !tx.VerifySignature() {
		s.metrics.rejectedTransactions.Measure(1)
		logger.Info("transaction rejected", logfields.Transaction(tx.Hash()), log.Error(ErrSignatureMismatch))
		return nil, errors.Wrapf(ErrSignatureMismatch, "transaction %s", tx.Hash())
	}
	signerAddress, err := digest.CalcClientAddressOfEd25519PublicKey(tx.SignerPublicKey)
	if err != nil {
		s.metrics.rejectedTransactions.Measure(1)
		return nil, errors.Wrap(err, "failed to derive signer address")
	}

	logger.Info("processing transaction", logfields.Contract(tx.ContractName), logfields.Method(tx.MethodName), logfields.BlockHeight(input.CurrentBlockHeight))
	s.metrics.transactions.Measure(1)

	executionContextId, executionContext := s.contexts.allocateExecutionContext(input.CurrentBlockHeight-1, input.CurrentBlockHeight, input.CurrentBlockTimestamp, protocol.ACCESS_SCOPE_READ_WRITE, signerAddress)
	defer s.contexts.destroyExecutionContext(executionContextId)

	callResult, outputArgs, _ := s.runMethod(ctx, executionContextId, executionContext, &services.ProcessCallInput{
		ContractName:           tx.ContractName,
		MethodName:             tx.MethodName,
		InputArgumentArray:     tx.InputArgumentArray,
		AccessScope:            protocol.ACCESS_SCOPE_READ_WRITE,
		CallingPermissionScope: protocol.PERMISSION_SCOPE_SERVICE,
	})

	output := &services.ProcessTransactionOutput{
		ExecutionResult:     callResult,
		OutputArgumentArray: outputArgs,
	}
	if callResult == protocol.EXECUTION_RESULT_SUCCESS {
		output.ContractStateDiffs = encodeTransientStateToStateDiffs(executionContext.transientState)
	} else {
		s.metrics.failedTransactions.Measure(1)
	}
	return output, nil
}

func (s *service) RunQuery(ctx context.Context, input *services.RunQueryInput) (*services.RunQueryOutput, error) {
	logger := s.logger.WithTags(trace.LogFieldFrom(ctx))
	start := time.Now()
	defer s.metrics.runQueryTime.RecordSince(start)

	query := input.Query
	if query == nil {
		return nil, errors.New("query is missing")
	}

	heightOutput, err := s.stateStorage.GetStateStorageBlockHeight(ctx, &services.GetStateStorageBlockHeightInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to read committed block height")
	}
	referenceBlockHeight := heightOutput.LastCommittedBlockHeight

	logger.Info("running query", logfields.Contract(query.ContractName), logfields.Method(query.MethodName), logfields.BlockHeight(referenceBlockHeight))

	executionContextId, executionContext := s.contexts.allocateExecutionContext(referenceBlockHeight, referenceBlockHeight, heightOutput.LastCommittedBlockTimestamp, protocol.ACCESS_SCOPE_READ_ONLY, nil)
	defer s.contexts.destroyExecutionContext(executionContextId)

	callResult, outputArgs, _ := s.runMethod(ctx, executionContextId, executionContext, &services.ProcessCallInput{
		ContractName:           query.ContractName,
		MethodName:             query.MethodName,
		InputArgumentArray:     query.InputArgumentArray,
		AccessScope:            protocol.ACCESS_SCOPE_READ_ONLY,
		CallingPermissionScope: protocol.PERMISSION_SCOPE_SERVICE,
	})

	return &services.RunQueryOutput{
		ExecutionResult:      callResult,
		OutputArgumentArray:  outputArgs,
		ReferenceBlockHeight: referenceBlockHeight,
	}, nil
}

// runs the _init method of every deployed contract as part of a single genesis block
func (s *service) InitializeContracts(ctx context.Context, input *services.InitializeContractsInput) (*services.InitializeContractsOutput, error) {
	logger := s.logger.WithTags(trace.LogFieldFrom(ctx))
	genesisState := newTransientState()

	for _, contractName := range s.processor.DeployedContracts() {
		executionContextId, executionContext := s.contexts.allocateExecutionContext(input.CurrentBlockHeight-1, input.CurrentBlockHeight, input.CurrentBlockTimestamp, protocol.ACCESS_SCOPE_READ_WRITE, nil)

		callResult, _, err := s.runMethod(ctx, executionContextId, executionContext, &services.ProcessCallInput{
			ContractName:           contractName,
			MethodName:             "_init",
			AccessScope:            protocol.ACCESS_SCOPE_READ_WRITE,
			CallingPermissionScope: protocol.PERMISSION_SCOPE_SYSTEM,
		})
		if callResult == protocol.EXECUTION_RESULT_SUCCESS {
			executionContext.transientState.mergeIntoTransientState(genesisState)
		}
		s.contexts.destroyExecutionContext(executionContextId)

		if callResult != protocol.EXECUTION_RESULT_SUCCESS {
			if err == nil {
				err = errors.Errorf("execution result %s", callResult)
			}
			return nil, errors.Wrapf(err, "failed to initialize contract %s", contractName)
		}
		logger.Info("contract initialized", logfields.Contract(contractName))
	}

	return &services.InitializeContractsOutput{
		ContractStateDiffs: encodeTransientStateToStateDiffs(genesisState),
	}, nil
}
