// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package virtualmachine

import (
	"context"
	"github.com/orbs-network/contribchain-go/services"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/pkg/errors"
)

func (s *service) handleSdkStateCall(ctx context.Context, executionContext *executionContext, methodName string, args []*protocol.Argument) ([]*protocol.Argument, error) {
	switch methodName {

	case "read":
		value, err := s.handleSdkStateRead(ctx, executionContext, args)
		if err != nil {
			return nil, err
		}
		return []*protocol.Argument{(&protocol.ArgumentBuilder{
			Type:       protocol.ARGUMENT_TYPE_BYTES_VALUE,
			BytesValue: value,
		}).Build()}, nil

	case "write":
		err := s.handleSdkStateWrite(executionContext, args)
		return []*protocol.Argument{}, err

	default:
		return nil, errors.Errorf("unknown SDK state call method: %s", methodName)
	}
}

// reads go through the transient state of the call before falling back to committed state
func (s *service) handleSdkStateRead(ctx context.Context, executionContext *executionContext, args []*protocol.Argument) ([]byte, error) {
	if len(args) != 1 || !args[0].IsTypeBytesValue() {
		return nil, errors.Errorf("invalid SDK state read args: %v", args)
	}
	key := args[0].BytesValue()
	contractName := executionContext.serviceStackTop()

	if value, found := executionContext.transientState.getValue(contractName, key); found {
		return value, nil
	}

	output, err := s.stateStorage.ReadKeys(ctx, &services.ReadKeysInput{
		BlockHeight:  executionContext.lastCommittedBlockHeight,
		ContractName: contractName,
		Keys:         [][]byte{key},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to read committed state")
	}
	if len(output.StateRecords) != 1 {
		return nil, errors.Errorf("state read returned %d records instead of 1", len(output.StateRecords))
	}

	value := output.StateRecords[0].Value
	executionContext.transientState.setValue(contractName, key, value, false)
	return value, nil
}

func (s *service) handleSdkStateWrite(executionContext *executionContext, args []*protocol.Argument) error {
	if executionContext.accessScope != protocol.ACCESS_SCOPE_READ_WRITE {
		return errors.Errorf("write attempted without write access: %s", executionContext.accessScope)
	}
	if len(args) != 2 || !args[0].IsTypeBytesValue() || !args[1].IsTypeBytesValue() {
		return errors.Errorf("invalid SDK state write args: %v", args)
	}
	value := args[1].BytesValue()
	if maxSize := s.config.VirtualMachineMaxValueSizeBytes(); uint32(len(value)) > maxSize {
		return errors.Errorf("state value of %d bytes exceeds the maximum of %d bytes", len(value), maxSize)
	}

	executionContext.transientState.setValue(executionContext.serviceStackTop(), args[0].BytesValue(), value, true)
	return nil
}
