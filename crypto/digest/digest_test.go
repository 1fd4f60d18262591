// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package digest

import (
	"github.com/orbs-network/contribchain-go/test/crypto/keys"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestCalcClientAddressOfEd25519PublicKey(t *testing.T) {
	address, err := CalcClientAddressOfEd25519PublicKey(keys.Ed25519KeyPairForTests(0).PublicKey())
	require.NoError(t, err)
	require.Len(t, address, CLIENT_ADDRESS_SIZE_BYTES)

	other, err := CalcClientAddressOfEd25519PublicKey(keys.Ed25519KeyPairForTests(1).PublicKey())
	require.NoError(t, err)
	require.NotEqual(t, address, other, "different signers must have different addresses")
}

func TestCalcClientAddressOfEd25519PublicKey_InvalidKey(t *testing.T) {
	_, err := CalcClientAddressOfEd25519PublicKey([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestCalcClientAddressOfContract(t *testing.T) {
	_, err := CalcClientAddressOfContract("")
	require.Error(t, err)

	address, err := CalcClientAddressOfContract("ContributionLedger")
	require.NoError(t, err)
	require.Len(t, address, CLIENT_ADDRESS_SIZE_BYTES)
}

func TestCalcTxHash_CoversEveryField(t *testing.T) {
	signer := keys.Ed25519KeyPairForTests(0).PublicKey()
	base := CalcTxHash("ContributionLedger", "recordContribution", []byte{1, 2}, 1000, signer)

	require.Equal(t, base, CalcTxHash("ContributionLedger", "recordContribution", []byte{1, 2}, 1000, signer), "hash must be deterministic")
	require.NotEqual(t, base, CalcTxHash("ContributionLedgeR", "recordContribution", []byte{1, 2}, 1000, signer))
	require.NotEqual(t, base, CalcTxHash("ContributionLedger", "getContribution", []byte{1, 2}, 1000, signer))
	require.NotEqual(t, base, CalcTxHash("ContributionLedger", "recordContribution", []byte{1, 3}, 1000, signer))
	require.NotEqual(t, base, CalcTxHash("ContributionLedger", "recordContribution", []byte{1, 2}, 1001, signer))
	require.NotEqual(t, base, CalcTxHash("ContributionLedger", "recordContribution", []byte{1, 2}, 1000, keys.Ed25519KeyPairForTests(1).PublicKey()))
}

func TestCalcNewBlockTimestamp(t *testing.T) {
	require.Equal(t, primitives.TimestampNano(1001), CalcNewBlockTimestamp(500, 1000))
	require.Equal(t, primitives.TimestampNano(1001), CalcNewBlockTimestamp(1000, 1000))
	require.Equal(t, primitives.TimestampNano(2001), CalcNewBlockTimestamp(2000, 1000), "must not go backwards")
}
