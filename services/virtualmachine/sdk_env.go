// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package virtualmachine

import (
	"context"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/pkg/errors"
)

func (s *service) handleSdkEnvCall(ctx context.Context, executionContext *executionContext, methodName string, args []*protocol.Argument) ([]*protocol.Argument, error) {
	switch methodName {

	case "getBlockHeight":
		return uint64Output(uint64(executionContext.currentBlockHeight)), nil

	case "getBlockTimestamp":
		return uint64Output(uint64(executionContext.currentBlockTimestamp)), nil

	default:
		return nil, errors.Errorf("unknown SDK env call method: %s", methodName)
	}
}

func uint64Output(value uint64) []*protocol.Argument {
	return []*protocol.Argument{(&protocol.ArgumentBuilder{
		Type:        protocol.ARGUMENT_TYPE_UINT_64_VALUE,
		Uint64Value: value,
	}).Build()}
}
