// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package handlers

import (
	"context"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
)

// ContractSdkCallHandler serves contract SDK operations (state, address, env) for a running execution context
type ContractSdkCallHandler interface {
	HandleSdkCall(ctx context.Context, input *HandleSdkCallInput) (*HandleSdkCallOutput, error)
}

type HandleSdkCallInput struct {
	ContextId       []byte
	OperationName   string
	MethodName      string
	InputArguments  []*protocol.Argument
	PermissionScope protocol.ExecutionPermissionScope
}

type HandleSdkCallOutput struct {
	OutputArguments []*protocol.Argument
}
