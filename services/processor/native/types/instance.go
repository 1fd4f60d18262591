// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package types

import (
	"github.com/pkg/errors"
	"reflect"
	"strings"
)

type MethodInstance interface{}

type ContractInstance struct {
	Info          *ContractInfo
	Instance      Contract
	PublicMethods map[string]*MethodInfo
	SystemMethods map[string]*MethodInfo
}

// NewContractInstance builds the singleton and splits methods into public and system ones; system methods start with an underscore
func NewContractInstance(contractInfo *ContractInfo, base *BaseContract) (*ContractInstance, error) {
	if contractInfo.InitSingleton == nil {
		return nil, errors.Errorf("contract %s has no singleton constructor", contractInfo.Name)
	}

	res := &ContractInstance{
		Info:          contractInfo,
		Instance:      contractInfo.InitSingleton(base),
		PublicMethods: make(map[string]*MethodInfo),
		SystemMethods: make(map[string]*MethodInfo),
	}

	for name, method := range contractInfo.Methods {
		method := method
		if err := verifyMethodSignature(res.Instance, &method); err != nil {
			return nil, errors.Wrapf(err, "contract %s", contractInfo.Name)
		}
		switch {
		case strings.HasPrefix(string(name), "_"):
			res.SystemMethods[string(name)] = &method
		case method.External:
			res.PublicMethods[string(name)] = &method
		}
	}

	return res, nil
}

var contextType = reflect.TypeOf(Context(nil))
var errorType = reflect.TypeOf((*error)(nil)).Elem()

func verifyMethodSignature(instance Contract, method *MethodInfo) error {
	t := reflect.TypeOf(method.Implementation)
	if t == nil || t.Kind() != reflect.Func {
		return errors.Errorf("method %s implementation is not a function", method.Name)
	}
	if t.NumIn() < 2 || t.In(0) != reflect.TypeOf(instance) || t.In(1) != contextType {
		return errors.Errorf("method %s must take the contract receiver and a Context", method.Name)
	}
	if t.NumOut() == 0 || t.Out(t.NumOut()-1) != errorType {
		return errors.Errorf("method %s must return an error as its last value", method.Name)
	}
	return nil
}
