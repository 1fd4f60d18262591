// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package types

import (
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
)

type ContractInfo struct {
	Name          primitives.ContractName
	Permission    protocol.ExecutionPermissionScope
	Methods       map[primitives.MethodName]MethodInfo
	InitSingleton func(*BaseContract) Contract
}

// MethodInfo.Implementation is a method expression on the contract type, e.g. (*contract).transfer;
// its first argument after the receiver is always Context
type MethodInfo struct {
	Name           primitives.MethodName
	External       bool
	Access         protocol.ExecutionAccessScope
	Implementation interface{}
}
