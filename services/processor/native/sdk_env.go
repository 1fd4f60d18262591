// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package native

import (
	"github.com/orbs-network/contribchain-go/services/processor/native/types"
	"github.com/pkg/errors"
)

const SDK_OPERATION_NAME_ENV = "Sdk.Env"

type envSdk struct {
	*sdkCaller
}

func (s *envSdk) GetBlockHeight(ctx types.Context) (uint64, error) {
	return s.readUint64(ctx, "getBlockHeight")
}

func (s *envSdk) GetBlockTimestamp(ctx types.Context) (uint64, error) {
	return s.readUint64(ctx, "getBlockTimestamp")
}

func (s *envSdk) readUint64(ctx types.Context, methodName string) (uint64, error) {
	output, err := s.call(ctx, SDK_OPERATION_NAME_ENV, methodName)
	if err != nil {
		return 0, err
	}
	if len(output) != 1 || !output[0].IsTypeUint64Value() {
		return 0, errors.Errorf("%s Sdk.Env returned corrupt output value", methodName)
	}
	return output[0].Uint64Value(), nil
}
