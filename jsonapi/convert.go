// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package jsonapi

import (
	"github.com/orbs-network/contribchain-go/crypto/encoding"
	"github.com/orbs-network/contribchain-go/services"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/pkg/errors"
	"strconv"
)

const (
	LEDGER_CONTRACT_NAME       = "ContributionLedger"
	RECORD_CONTRIBUTION_METHOD = "recordContribution"
)

func ToArgumentArray(args []Argument) (*protocol.ArgumentArray, error) {
	builders := make([]*protocol.ArgumentBuilder, 0, len(args))
	for i, arg := range args {
		builder, err := toArgumentBuilder(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "argument %d", i)
		}
		builders = append(builders, builder)
	}
	return (&protocol.ArgumentArrayBuilder{Arguments: builders}).Build(), nil
}

func toArgumentBuilder(arg Argument) (*protocol.ArgumentBuilder, error) {
	switch arg.Type {
	case ARGUMENT_TYPE_UINT32:
		value, err := strconv.ParseUint(arg.Value, 10, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid uint32 value '%s'", arg.Value)
		}
		return &protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_UINT_32_VALUE, Uint32Value: uint32(value)}, nil
	case ARGUMENT_TYPE_UINT64:
		value, err := strconv.ParseUint(arg.Value, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid uint64 value '%s'", arg.Value)
		}
		return &protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_UINT_64_VALUE, Uint64Value: value}, nil
	case ARGUMENT_TYPE_STRING:
		return &protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_STRING_VALUE, StringValue: arg.Value}, nil
	case ARGUMENT_TYPE_BYTES:
		value, err := encoding.DecodeHex(arg.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid bytes value '%s'", arg.Value)
		}
		return &protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_BYTES_VALUE, BytesValue: value}, nil
	default:
		return nil, errors.Errorf("unsupported argument type '%s'", arg.Type)
	}
}

func FromArgumentArray(args *protocol.ArgumentArray) []Argument {
	res := []Argument{}
	if args == nil {
		return res
	}
	for i := args.ArgumentsIterator(); i.HasNext(); {
		arg := i.NextArguments()
		switch {
		case arg.IsTypeUint32Value():
			res = append(res, Argument{ARGUMENT_TYPE_UINT32, strconv.FormatUint(uint64(arg.Uint32Value()), 10)})
		case arg.IsTypeUint64Value():
			res = append(res, Argument{ARGUMENT_TYPE_UINT64, strconv.FormatUint(arg.Uint64Value(), 10)})
		case arg.IsTypeStringValue():
			res = append(res, Argument{ARGUMENT_TYPE_STRING, arg.StringValue()})
		case arg.IsTypeBytesValue():
			res = append(res, Argument{ARGUMENT_TYPE_BYTES, encoding.EncodeHex(arg.BytesValue())})
		}
	}
	return res
}

func ToTransaction(tx *Transaction) (*services.Transaction, error) {
	args, err := ToArgumentArray(tx.Arguments)
	if err != nil {
		return nil, err
	}
	publicKey, err := encoding.DecodeHex(tx.SignerPublicKey)
	if err != nil {
		return nil, errors.Wrap(err, "invalid signer public key")
	}
	signature, err := encoding.DecodeHex(tx.Signature)
	if err != nil {
		return nil, errors.Wrap(err, "invalid signature")
	}
	return &services.Transaction{
		ContractName:       primitives.ContractName(tx.ContractName),
		MethodName:         primitives.MethodName(tx.MethodName),
		InputArgumentArray: args,
		Timestamp:          primitives.TimestampNano(tx.Timestamp),
		SignerPublicKey:    primitives.Ed25519PublicKey(publicKey),
		Signature:          signature,
	}, nil
}

func FromTransaction(tx *services.Transaction) *Transaction {
	return &Transaction{
		ContractName:    string(tx.ContractName),
		MethodName:      string(tx.MethodName),
		Arguments:       FromArgumentArray(tx.InputArgumentArray),
		Timestamp:       uint64(tx.Timestamp),
		SignerPublicKey: encoding.EncodeHex(tx.SignerPublicKey),
		Signature:       encoding.EncodeHex(tx.Signature),
	}
}

func ToQuery(query *Query) (*services.Query, error) {
	args, err := ToArgumentArray(query.Arguments)
	if err != nil {
		return nil, err
	}
	return &services.Query{
		ContractName:       primitives.ContractName(query.ContractName),
		MethodName:         primitives.MethodName(query.MethodName),
		InputArgumentArray: args,
	}, nil
}

func FromSendTransactionOutput(output *services.SendTransactionOutput) *SendTransactionResponse {
	return &SendTransactionResponse{
		TxHash:          encoding.EncodeHex(output.TxHash),
		ExecutionResult: output.ExecutionResult.String(),
		OutputArguments: FromArgumentArray(output.OutputArgumentArray),
		BlockHeight:     uint64(output.BlockHeight),
		BlockTimestamp:  uint64(output.BlockTimestamp),
	}
}

func FromRunQueryOutput(output *services.RunQueryOutput) *RunQueryResponse {
	return &RunQueryResponse{
		ExecutionResult: output.ExecutionResult.String(),
		OutputArguments: FromArgumentArray(output.OutputArgumentArray),
		BlockHeight:     uint64(output.ReferenceBlockHeight),
	}
}

// RecordContributionTransaction expands the convenience request into the ledger transaction it signs
func RecordContributionTransaction(request *RecordContributionRequest) *Transaction {
	return &Transaction{
		ContractName: LEDGER_CONTRACT_NAME,
		MethodName:   RECORD_CONTRIBUTION_METHOD,
		Arguments: []Argument{
			{ARGUMENT_TYPE_STRING, request.Description},
			{ARGUMENT_TYPE_UINT64, strconv.FormatUint(request.Hours, 10)},
		},
		Timestamp:       request.Timestamp,
		SignerPublicKey: request.SignerPublicKey,
		Signature:       request.Signature,
	}
}
