// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package native

import (
	"context"
	"github.com/orbs-network/contribchain-go/services/handlers"
	"github.com/orbs-network/contribchain-go/services/processor/native/types"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/pkg/errors"
)

// sdkCaller forwards contract SDK calls to the handler registered by the virtual machine
type sdkCaller struct {
	service         *service
	permissionScope protocol.ExecutionPermissionScope
}

func (c *sdkCaller) call(ctx types.Context, operationName string, methodName string, args ...*protocol.Argument) ([]*protocol.Argument, error) {
	handler := c.service.sdkHandler
	if handler == nil {
		return nil, errors.Errorf("no sdk call handler registered for %s.%s", operationName, methodName)
	}

	output, err := handler.HandleSdkCall(context.TODO(), &handlers.HandleSdkCallInput{
		ContextId:       ctx,
		OperationName:   operationName,
		MethodName:      methodName,
		InputArguments:  args,
		PermissionScope: c.permissionScope,
	})
	if err != nil {
		return nil, err
	}
	if output == nil {
		return nil, nil
	}
	return output.OutputArguments, nil
}
