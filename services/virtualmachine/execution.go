// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package virtualmachine

import (
	"context"
	"github.com/orbs-network/contribchain-go/instrumentation/logfields"
	"github.com/orbs-network/contribchain-go/instrumentation/trace"
	"github.com/orbs-network/contribchain-go/services"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/orbs-network/scribe/log"
)

func (s *service) runMethod(
	ctx context.Context,
	executionContextId services.ExecutionContextId,
	executionContext *executionContext,
	input *services.ProcessCallInput,
) (protocol.ExecutionResult, *protocol.ArgumentArray, error) {

	logger := s.logger.WithTags(trace.LogFieldFrom(ctx))

	executionContext.serviceStackPush(input.ContractName)
	defer executionContext.serviceStackPop()

	input.ContextId = executionContextId
	output, err := s.processor.ProcessCall(ctx, input)
	if output == nil {
		logger.Info("processor returned no output", logfields.Contract(input.ContractName), logfields.Method(input.MethodName), log.Error(err))
		return protocol.EXECUTION_RESULT_ERROR_UNEXPECTED, emptyArguments(), err
	}
	if err != nil {
		logger.Info("method execution failed", logfields.Contract(input.ContractName), logfields.Method(input.MethodName), log.Stringable("result", output.CallResult), log.Error(err))
	}

	outputArgs := output.OutputArgumentArray
	if outputArgs == nil {
		outputArgs = emptyArguments()
	}
	return output.CallResult, outputArgs, err
}

func encodeTransientStateToStateDiffs(state *transientState) []*services.ContractStateDiff {
	res := []*services.ContractStateDiff{}
	for _, contractName := range state.contractSortOrder {
		stateDiffs := []*services.StateRecord{}
		state.forDirty(contractName, func(key []byte, value []byte) {
			stateDiffs = append(stateDiffs, &services.StateRecord{
				Key:   key,
				Value: value,
			})
		})
		if len(stateDiffs) > 0 {
			res = append(res, &services.ContractStateDiff{
				ContractName: contractName,
				StateDiffs:   stateDiffs,
			})
		}
	}
	return res
}

func emptyArguments() *protocol.ArgumentArray {
	return (&protocol.ArgumentArrayBuilder{}).Build()
}
