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

func (s *service) handleSdkAddressCall(ctx context.Context, executionContext *executionContext, methodName string, args []*protocol.Argument) ([]*protocol.Argument, error) {
	switch methodName {

	case "getSignerAddress":
		if len(args) != 0 {
			return nil, errors.Errorf("invalid SDK address getSignerAddress args: %v", args)
		}
		if len(executionContext.signerAddress) == 0 {
			return nil, errors.New("no signer address in this execution context")
		}
		return []*protocol.Argument{(&protocol.ArgumentBuilder{
			Type:       protocol.ARGUMENT_TYPE_BYTES_VALUE,
			BytesValue: executionContext.signerAddress,
		}).Build()}, nil

	default:
		return nil, errors.Errorf("unknown SDK address call method: %s", methodName)
	}
}
