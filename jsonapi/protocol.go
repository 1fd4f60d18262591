// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package jsonapi

const (
	ARGUMENT_TYPE_UINT32 = "uint32"
	ARGUMENT_TYPE_UINT64 = "uint64"
	ARGUMENT_TYPE_STRING = "string"
	ARGUMENT_TYPE_BYTES  = "bytes"
)

// Argument carries integers in decimal and bytes in checksummed hex
type Argument struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type Transaction struct {
	ContractName    string     `json:"contractName"`
	MethodName      string     `json:"methodName"`
	Arguments       []Argument `json:"arguments"`
	Timestamp       uint64     `json:"timestamp"`
	SignerPublicKey string     `json:"signerPublicKey"`
	Signature       string     `json:"signature"`
}

type Query struct {
	ContractName string     `json:"contractName"`
	MethodName   string     `json:"methodName"`
	Arguments    []Argument `json:"arguments"`
}

type SendTransactionResponse struct {
	TxHash          string     `json:"txHash"`
	ExecutionResult string     `json:"executionResult"`
	OutputArguments []Argument `json:"outputArguments"`
	BlockHeight     uint64     `json:"blockHeight"`
	BlockTimestamp  uint64     `json:"blockTimestamp"`
}

type RunQueryResponse struct {
	ExecutionResult string     `json:"executionResult"`
	OutputArguments []Argument `json:"outputArguments"`
	BlockHeight     uint64     `json:"blockHeight"`
}

type StatusResponse struct {
	BlockHeight    uint64 `json:"blockHeight"`
	BlockTimestamp uint64 `json:"blockTimestamp"`
	StateHash      string `json:"stateHash"`
	TotalEntries   uint64 `json:"totalEntries"`
	Version        string `json:"version"`
	Commit         string `json:"commit"`
}

// RecordContributionRequest is a signed ContributionLedger.recordContribution transaction
type RecordContributionRequest struct {
	Description     string `json:"description"`
	Hours           uint64 `json:"hours"`
	Timestamp       uint64 `json:"timestamp"`
	SignerPublicKey string `json:"signerPublicKey"`
	Signature       string `json:"signature"`
}

type RecordContributionResponse struct {
	Id          uint64 `json:"id"`
	TxHash      string `json:"txHash"`
	BlockHeight uint64 `json:"blockHeight"`
}

type ContributionResponse struct {
	Id          uint64 `json:"id"`
	Description string `json:"description"`
	Hours       uint64 `json:"hours"`
	Contributor string `json:"contributor"`
	Timestamp   uint64 `json:"timestamp"`
}

type CountResponse struct {
	Count uint64 `json:"count"`
}

type ErrorResponse struct {
	Error           string `json:"error"`
	ExecutionResult string `json:"executionResult,omitempty"`
}
