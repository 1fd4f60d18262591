// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package native

import (
	"github.com/orbs-network/contribchain-go/crypto/digest"
	"github.com/orbs-network/contribchain-go/services/processor/native/types"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/pkg/errors"
)

const SDK_OPERATION_NAME_ADDRESS = "Sdk.Address"

type addressSdk struct {
	*sdkCaller
}

func (s *addressSdk) GetSignerAddress(ctx types.Context) ([]byte, error) {
	output, err := s.call(ctx, SDK_OPERATION_NAME_ADDRESS, "getSignerAddress")
	if err != nil {
		return nil, err
	}
	if len(output) != 1 || !output[0].IsTypeBytesValue() {
		return nil, errors.Errorf("getSignerAddress Sdk.Address returned corrupt output value")
	}
	return output[0].BytesValue(), nil
}

func (s *addressSdk) GetContractAddress(contractName string) ([]byte, error) {
	return digest.CalcClientAddressOfContract(primitives.ContractName(contractName))
}
