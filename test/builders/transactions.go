// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package builders

import (
	"github.com/orbs-network/contribchain-go/services"
	"github.com/orbs-network/contribchain-go/test/crypto/keys"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"time"
)

type transaction struct {
	signer primitives.Ed25519PrivateKey
	tx     *services.Transaction
}

func Transaction() *transaction {
	keyPair := keys.Ed25519KeyPairForTests(1)
	return &transaction{
		signer: keyPair.PrivateKey(),
		tx: &services.Transaction{
			ContractName:       "ContributionLedger",
			MethodName:         "recordContribution",
			InputArgumentArray: ArgumentsArray("Fixed a bug", uint64(3)),
			Timestamp:          primitives.TimestampNano(time.Now().UnixNano()),
			SignerPublicKey:    keyPair.PublicKey(),
		},
	}
}

func (t *transaction) Build() *services.Transaction {
	if err := t.tx.Sign(t.signer); err != nil {
		panic(err)
	}
	return t.tx
}

func (t *transaction) WithSigner(publicKey primitives.Ed25519PublicKey, privateKey primitives.Ed25519PrivateKey) *transaction {
	t.tx.SignerPublicKey = publicKey
	t.signer = privateKey
	return t
}

func (t *transaction) WithSignerIndex(setIndex int) *transaction {
	keyPair := keys.Ed25519KeyPairForTests(setIndex)
	return t.WithSigner(keyPair.PublicKey(), keyPair.PrivateKey())
}

// signs with a key that does not match the declared public key
func (t *transaction) WithInvalidSigner() *transaction {
	t.signer = keys.Ed25519KeyPairForTests(0).PrivateKey()
	t.tx.SignerPublicKey = keys.Ed25519KeyPairForTests(2).PublicKey()
	return t
}

func (t *transaction) WithMethod(contractName primitives.ContractName, methodName primitives.MethodName) *transaction {
	t.tx.ContractName = contractName
	t.tx.MethodName = methodName
	return t
}

func (t *transaction) WithArgs(args ...interface{}) *transaction {
	t.tx.InputArgumentArray = ArgumentsArray(args...)
	return t
}

// ContributionLedger.recordContribution

func RecordContributionTransaction(description string, hours uint64) *transaction {
	return Transaction().WithArgs(description, hours)
}

func Query(contractName primitives.ContractName, methodName primitives.MethodName, args ...interface{}) *services.Query {
	return &services.Query{
		ContractName:       contractName,
		MethodName:         methodName,
		InputArgumentArray: ArgumentsArray(args...),
	}
}
