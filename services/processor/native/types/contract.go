// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package types

// Context identifies the execution context a contract method runs in; contracts pass it back to every SDK call
type Context []byte

type Contract interface {
	// _init(ctx Context) error
}

type BaseContract struct {
	State   StateSdk
	Address AddressSdk
	Env     EnvSdk
}

func NewBaseContract(
	state StateSdk,
	address AddressSdk,
	env EnvSdk,
) *BaseContract {

	return &BaseContract{
		State:   state,
		Address: address,
		Env:     env,
	}
}
