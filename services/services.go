// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package services

import (
	"context"
	"github.com/orbs-network/contribchain-go/services/handlers"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
)

type ExecutionContextId []byte

// Processor runs contract code inside an execution context owned by the virtual machine
type Processor interface {
	ProcessCall(ctx context.Context, input *ProcessCallInput) (*ProcessCallOutput, error)
	GetContractInfo(ctx context.Context, input *GetContractInfoInput) (*GetContractInfoOutput, error)
	DeployedContracts() []primitives.ContractName
	RegisterContractSdkCallHandler(handler handlers.ContractSdkCallHandler)
}

type ProcessCallInput struct {
	ContextId              ExecutionContextId
	ContractName           primitives.ContractName
	MethodName             primitives.MethodName
	InputArgumentArray     *protocol.ArgumentArray
	AccessScope            protocol.ExecutionAccessScope
	CallingPermissionScope protocol.ExecutionPermissionScope
}

type ProcessCallOutput struct {
	OutputArgumentArray *protocol.ArgumentArray
	CallResult          protocol.ExecutionResult
}

type GetContractInfoInput struct {
	ContractName primitives.ContractName
}

type GetContractInfoOutput struct {
	PermissionScope protocol.ExecutionPermissionScope
}

type VirtualMachine interface {
	ProcessTransaction(ctx context.Context, input *ProcessTransactionInput) (*ProcessTransactionOutput, error)
	RunQuery(ctx context.Context, input *RunQueryInput) (*RunQueryOutput, error)
	InitializeContracts(ctx context.Context, input *InitializeContractsInput) (*InitializeContractsOutput, error)
}

type ProcessTransactionInput struct {
	CurrentBlockHeight    primitives.BlockHeight
	CurrentBlockTimestamp primitives.TimestampNano
	Transaction           *Transaction
}

type ProcessTransactionOutput struct {
	ExecutionResult     protocol.ExecutionResult
	OutputArgumentArray *protocol.ArgumentArray
	ContractStateDiffs  []*ContractStateDiff
}

type RunQueryInput struct {
	Query *Query
}

type RunQueryOutput struct {
	ExecutionResult      protocol.ExecutionResult
	OutputArgumentArray  *protocol.ArgumentArray
	ReferenceBlockHeight primitives.BlockHeight
}

type InitializeContractsInput struct {
	CurrentBlockHeight    primitives.BlockHeight
	CurrentBlockTimestamp primitives.TimestampNano
}

type InitializeContractsOutput struct {
	ContractStateDiffs []*ContractStateDiff
}

type StateStorage interface {
	ReadKeys(ctx context.Context, input *ReadKeysInput) (*ReadKeysOutput, error)
	CommitStateDiff(ctx context.Context, input *CommitStateDiffInput) (*CommitStateDiffOutput, error)
	GetStateStorageBlockHeight(ctx context.Context, input *GetStateStorageBlockHeightInput) (*GetStateStorageBlockHeightOutput, error)
	GetStateHash(ctx context.Context, input *GetStateHashInput) (*GetStateHashOutput, error)
}

type ReadKeysInput struct {
	BlockHeight  primitives.BlockHeight
	ContractName primitives.ContractName
	Keys         [][]byte
}

type ReadKeysOutput struct {
	StateRecords []*StateRecord
}

type CommitStateDiffInput struct {
	BlockHeight        primitives.BlockHeight
	BlockTimestamp     primitives.TimestampNano
	ContractStateDiffs []*ContractStateDiff
}

type CommitStateDiffOutput struct {
	NextDesiredBlockHeight primitives.BlockHeight
}

type GetStateStorageBlockHeightInput struct{}

type GetStateStorageBlockHeightOutput struct {
	LastCommittedBlockHeight    primitives.BlockHeight
	LastCommittedBlockTimestamp primitives.TimestampNano
}

type GetStateHashInput struct {
	BlockHeight primitives.BlockHeight
}

type GetStateHashOutput struct {
	StateHash []byte
}

type PublicApi interface {
	SendTransaction(ctx context.Context, input *SendTransactionInput) (*SendTransactionOutput, error)
	RunQuery(ctx context.Context, input *RunQueryInput) (*RunQueryOutput, error)
	GetStatus(ctx context.Context) (*GetStatusOutput, error)
	InitializeGenesis(ctx context.Context) error
}

type SendTransactionInput struct {
	Transaction *Transaction
}

type SendTransactionOutput struct {
	TxHash              primitives.Sha256
	ExecutionResult     protocol.ExecutionResult
	OutputArgumentArray *protocol.ArgumentArray
	BlockHeight         primitives.BlockHeight
	BlockTimestamp      primitives.TimestampNano
}

type GetStatusOutput struct {
	BlockHeight    primitives.BlockHeight
	BlockTimestamp primitives.TimestampNano
	StateHash      []byte
}
