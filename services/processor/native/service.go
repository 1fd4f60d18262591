// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package native

import (
	"context"
	"fmt"
	"github.com/orbs-network/contribchain-go/instrumentation/logfields"
	"github.com/orbs-network/contribchain-go/instrumentation/metric"
	"github.com/orbs-network/contribchain-go/instrumentation/trace"
	"github.com/orbs-network/contribchain-go/services"
	"github.com/orbs-network/contribchain-go/services/handlers"
	"github.com/orbs-network/contribchain-go/services/processor/native/types"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"sort"
	"sync"
	"time"
)

var LogTag = log.Service("processor-native")

type service struct {
	logger     log.Logger
	sdkHandler handlers.ContractSdkCallHandler

	contracts map[primitives.ContractName]*types.ContractInfo
	instances struct {
		sync.Mutex
		byName map[primitives.ContractName]*types.ContractInstance
	}

	metrics *metrics
}

type metrics struct {
	processCallTime   *metric.Histogram
	deployedContracts *metric.Gauge
	contractErrors    *metric.Rate
}

func getMetrics(m metric.Factory) *metrics {
	return &metrics{
		processCallTime:   m.NewLatency("Processor.Native.ProcessCallTime", 10*time.Second),
		deployedContracts: m.NewGauge("Processor.Native.DeployedContracts.Count"),
		contractErrors:    m.NewRate("Processor.Native.ContractErrors.PerSecond"),
	}
}

func NewNativeProcessor(parentLogger log.Logger, metricFactory metric.Factory, contracts ...*types.ContractInfo) services.Processor {
	s := &service{
		logger:    parentLogger.WithTags(LogTag),
		contracts: make(map[primitives.ContractName]*types.ContractInfo),
		metrics:   getMetrics(metricFactory),
	}
	s.instances.byName = make(map[primitives.ContractName]*types.ContractInstance)

	for _, contractInfo := range contracts {
		s.contracts[contractInfo.Name] = contractInfo
	}
	s.metrics.deployedContracts.Update(int64(len(s.contracts)))

	return s
}

func (s *service) RegisterContractSdkCallHandler(handler handlers.ContractSdkCallHandler) {
	s.sdkHandler = handler
}

func (s *service) DeployedContracts() []primitives.ContractName {
	res := make([]primitives.ContractName, 0, len(s.contracts))
	for name := range s.contracts {
		res = append(res, name)
	}
	sort.Slice(res, func(i, j int) bool { return res[i] < res[j] })
	return res
}

func (s *service) ProcessCall(ctx context.Context, input *services.ProcessCallInput) (*services.ProcessCallOutput, error) {
	logger := s.logger.WithTags(trace.LogFieldFrom(ctx))

	// retrieve code
	contractInstance, err := s.getContractInstance(input.ContractName)
	if err != nil {
		return &services.ProcessCallOutput{
			OutputArgumentArray: s.createMethodOutputArgsWithString(err.Error()),
			CallResult:          protocol.EXECUTION_RESULT_ERROR_CONTRACT_NOT_DEPLOYED,
		}, err
	}

	// get the method and check permissions
	methodInfo, err := s.retrieveMethod(contractInstance, string(input.ContractName), string(input.MethodName), input.CallingPermissionScope, input.AccessScope)
	if err != nil {
		return &services.ProcessCallOutput{
			OutputArgumentArray: s.createMethodOutputArgsWithString(err.Error()),
			CallResult:          protocol.EXECUTION_RESULT_ERROR_INPUT,
		}, err
	}

	start := time.Now()
	defer s.metrics.processCallTime.RecordSince(start)

	// execute
	logger.Info("processor executing contract", logfields.Contract(input.ContractName), logfields.Method(input.MethodName))

	functionNameForErrors := fmt.Sprintf("%s.%s", input.ContractName, input.MethodName)
	outputArgs, contractErr, err := s.processMethodCall(types.Context(input.ContextId), contractInstance, methodInfo, input.InputArgumentArray, functionNameForErrors)
	if outputArgs == nil {
		outputArgs = (&protocol.ArgumentArrayBuilder{}).Build()
	}
	if err != nil {
		logger.Info("contract execution failed", logfields.Contract(input.ContractName), logfields.Method(input.MethodName), log.Error(err))

		return &services.ProcessCallOutput{
			OutputArgumentArray: s.createMethodOutputArgsWithString(err.Error()),
			CallResult:          protocol.EXECUTION_RESULT_ERROR_INPUT,
		}, err
	}

	// result
	callResult := protocol.EXECUTION_RESULT_SUCCESS
	if contractErr != nil {
		logger.Info("contract returned error", logfields.Contract(input.ContractName), logfields.Method(input.MethodName), log.Error(contractErr))

		s.metrics.contractErrors.Measure(1)
		callResult = protocol.EXECUTION_RESULT_ERROR_SMART_CONTRACT
	}
	return &services.ProcessCallOutput{
		OutputArgumentArray: outputArgs,
		CallResult:          callResult,
	}, contractErr
}

func (s *service) GetContractInfo(ctx context.Context, input *services.GetContractInfoInput) (*services.GetContractInfoOutput, error) {
	contractInfo, found := s.contracts[input.ContractName]
	if !found {
		return nil, errors.Errorf("contract '%s' not deployed", input.ContractName)
	}

	return &services.GetContractInfoOutput{
		PermissionScope: contractInfo.Permission,
	}, nil
}

func (s *service) getContractInstance(contractName primitives.ContractName) (*types.ContractInstance, error) {
	s.instances.Lock()
	defer s.instances.Unlock()

	if instance, found := s.instances.byName[contractName]; found {
		return instance, nil
	}

	contractInfo, found := s.contracts[contractName]
	if !found {
		return nil, errors.Errorf("contract '%s' not deployed", contractName)
	}

	instance, err := types.NewContractInstance(contractInfo, s.newBaseContract(contractInfo.Permission))
	if err != nil {
		return nil, errors.Wrapf(err, "error creating contract instance for contract %s", contractName)
	}
	s.instances.byName[contractName] = instance

	return instance, nil
}

func (s *service) newBaseContract(permissionScope protocol.ExecutionPermissionScope) *types.BaseContract {
	sdk := &sdkCaller{service: s, permissionScope: permissionScope}
	return types.NewBaseContract(
		&stateSdk{sdk},
		&addressSdk{sdk},
		&envSdk{sdk},
	)
}
