// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package native

import (
	"github.com/orbs-network/contribchain-go/services/processor/native/types"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/pkg/errors"
	"reflect"
)

func (s *service) retrieveMethod(contractInstance *types.ContractInstance, contractName string, methodName string, permissionScope protocol.ExecutionPermissionScope, accessScope protocol.ExecutionAccessScope) (*types.MethodInfo, error) {
	methodInfo, found := contractInstance.PublicMethods[methodName]
	if !found {
		methodInfo, found = contractInstance.SystemMethods[methodName]
		if found && permissionScope != protocol.PERMISSION_SCOPE_SYSTEM {
			return nil, errors.Errorf("only system contracts can run method '%s'", methodName)
		}
	}
	if !found {
		return nil, errors.Errorf("method '%s' not found on contract '%s'", methodName, contractName)
	}

	if accessScope == protocol.ACCESS_SCOPE_READ_ONLY && methodInfo.Access != protocol.ACCESS_SCOPE_READ_ONLY {
		return nil, errors.Errorf("method '%s' within contract '%s' has write access but called with read only scope", methodName, contractName)
	}

	return methodInfo, nil
}

func (s *service) processMethodCall(executionContextId types.Context, contractInstance *types.ContractInstance, methodInfo *types.MethodInfo, args *protocol.ArgumentArray, functionNameForErrors string) (contractOutputArgs *protocol.ArgumentArray, contractOutputErr error, err error) {

	defer func() {
		if r := recover(); r != nil {
			contractOutputErr = errors.Errorf("%s", r)
			contractOutputArgs = s.createMethodOutputArgsWithString(contractOutputErr.Error())
		}
	}()

	methodImpl := reflect.ValueOf(methodInfo.Implementation)

	// verify input args
	inValues, err := s.prepareMethodInputArgsForCall(methodImpl.Type(), args, functionNameForErrors)
	if err != nil {
		return nil, nil, err
	}
	inValues = append([]reflect.Value{reflect.ValueOf(contractInstance.Instance), reflect.ValueOf(executionContextId)}, inValues...)

	// execute the call
	outValues := methodImpl.Call(inValues)

	// the last return value is always the contract error
	if errValue := outValues[len(outValues)-1]; !errValue.IsNil() {
		contractOutputErr = errValue.Interface().(error)
		return s.createMethodOutputArgsWithString(contractOutputErr.Error()), contractOutputErr, nil
	}

	// create output args
	contractOutputArgs, err = s.createMethodOutputArgs(outValues[:len(outValues)-1], functionNameForErrors)
	if err != nil {
		return nil, nil, err
	}

	return contractOutputArgs, nil, nil
}

// the first two parameters of every method are the receiver and the execution context
const methodImplicitArgs = 2

func (s *service) prepareMethodInputArgsForCall(methodType reflect.Type, args *protocol.ArgumentArray, functionNameForErrors string) ([]reflect.Value, error) {
	res := []reflect.Value{}
	expected := methodType.NumIn() - methodImplicitArgs

	if args == nil {
		args = (&protocol.ArgumentArrayBuilder{}).Build()
	}

	var arg *protocol.Argument
	argsIterator := args.ArgumentsIterator()
	for i := 0; i < expected; i++ {

		// get the next arg from the transaction
		if argsIterator.HasNext() {
			arg = argsIterator.NextArguments()
		} else {
			return nil, errors.Errorf("method '%s' takes %d args but received %d", functionNameForErrors, expected, i)
		}

		// translate argument type
		switch methodType.In(i + methodImplicitArgs).Kind() {
		case reflect.Uint32:
			if !arg.IsTypeUint32Value() {
				return nil, errors.Errorf("method '%s' expects arg %d to be uint32 but it has %s", functionNameForErrors, i, arg.StringType())
			}
			res = append(res, reflect.ValueOf(arg.Uint32Value()))
		case reflect.Uint64:
			if !arg.IsTypeUint64Value() {
				return nil, errors.Errorf("method '%s' expects arg %d to be uint64 but it has %s", functionNameForErrors, i, arg.StringType())
			}
			res = append(res, reflect.ValueOf(arg.Uint64Value()))
		case reflect.String:
			if !arg.IsTypeStringValue() {
				return nil, errors.Errorf("method '%s' expects arg %d to be string but it has %s", functionNameForErrors, i, arg.StringType())
			}
			res = append(res, reflect.ValueOf(arg.StringValue()))
		case reflect.Slice:
			if methodType.In(i+methodImplicitArgs).Elem().Kind() != reflect.Uint8 {
				return nil, errors.Errorf("method '%s' arg %d slice type is not byte", functionNameForErrors, i)
			}
			if !arg.IsTypeBytesValue() {
				return nil, errors.Errorf("method '%s' expects arg %d to be bytes but it has %s", functionNameForErrors, i, arg.StringType())
			}
			res = append(res, reflect.ValueOf(arg.BytesValue()))
		default:
			return nil, errors.Errorf("method '%s' expects arg %d to be a known type but it has %s", functionNameForErrors, i, arg.StringType())
		}

	}

	// make sure transaction doesn't have any more args left
	if argsIterator.HasNext() {
		return nil, errors.Errorf("method '%s' takes %d args but received more", functionNameForErrors, expected)
	}

	return res, nil
}

func (s *service) createMethodOutputArgs(args []reflect.Value, functionNameForErrors string) (*protocol.ArgumentArray, error) {
	res := []*protocol.ArgumentBuilder{}
	for i, arg := range args {
		switch arg.Kind() {
		case reflect.Uint32:
			res = append(res, &protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_UINT_32_VALUE, Uint32Value: uint32(arg.Uint())})
		case reflect.Uint64:
			res = append(res, &protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_UINT_64_VALUE, Uint64Value: arg.Uint()})
		case reflect.String:
			res = append(res, &protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_STRING_VALUE, StringValue: arg.String()})
		case reflect.Slice:
			if arg.Type().Elem().Kind() != reflect.Uint8 {
				return nil, errors.Errorf("method '%s' output arg %d slice type is not byte", functionNameForErrors, i)
			}
			res = append(res, &protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_BYTES_VALUE, BytesValue: arg.Bytes()})
		default:
			return nil, errors.Errorf("method '%s' output arg %d is of unsupported type", functionNameForErrors, i)
		}
	}
	return (&protocol.ArgumentArrayBuilder{
		Arguments: res,
	}).Build(), nil
}

func (s *service) createMethodOutputArgsWithString(str string) *protocol.ArgumentArray {
	return (&protocol.ArgumentArrayBuilder{
		Arguments: []*protocol.ArgumentBuilder{
			{Type: protocol.ARGUMENT_TYPE_STRING_VALUE, StringValue: str},
		},
	}).Build()
}
