// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package services

import (
	"github.com/orbs-network/contribchain-go/crypto/digest"
	"github.com/orbs-network/contribchain-go/crypto/signature"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/pkg/errors"
)

// Transaction is a signed request to run a mutating contract method
type Transaction struct {
	ContractName       primitives.ContractName
	MethodName         primitives.MethodName
	InputArgumentArray *protocol.ArgumentArray
	Timestamp          primitives.TimestampNano
	SignerPublicKey    primitives.Ed25519PublicKey
	Signature          []byte
}

func (t *Transaction) Hash() primitives.Sha256 {
	return digest.CalcTxHash(t.ContractName, t.MethodName, rawArguments(t.InputArgumentArray), t.Timestamp, t.SignerPublicKey)
}

func (t *Transaction) Sign(privateKey primitives.Ed25519PrivateKey) error {
	sig, err := signature.SignEd25519(privateKey, t.Hash())
	if err != nil {
		return errors.Wrap(err, "failed to sign transaction")
	}
	t.Signature = sig
	return nil
}

func (t *Transaction) VerifySignature() bool {
	return signature.VerifyEd25519(t.SignerPublicKey, t.Hash(), t.Signature)
}

// Query runs a read-only method; it is not signed
type Query struct {
	ContractName       primitives.ContractName
	MethodName         primitives.MethodName
	InputArgumentArray *protocol.ArgumentArray
}

type StateRecord struct {
	Key   []byte
	Value []byte
}

type ContractStateDiff struct {
	ContractName primitives.ContractName
	StateDiffs   []*StateRecord
}

func rawArguments(args *protocol.ArgumentArray) []byte {
	if args == nil {
		return nil
	}
	return args.Raw()
}
