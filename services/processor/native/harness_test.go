// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package native

import (
	"context"
	"github.com/orbs-network/contribchain-go/instrumentation/metric"
	"github.com/orbs-network/contribchain-go/services"
	"github.com/orbs-network/contribchain-go/services/handlers"
	"github.com/orbs-network/contribchain-go/services/processor/native/types"
	"github.com/orbs-network/contribchain-go/test/builders"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
)

var exampleContextId = services.ExecutionContextId{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x07}

const testerContractName = "Tester"

var testerContract = types.ContractInfo{
	Name:       testerContractName,
	Permission: protocol.PERMISSION_SCOPE_SERVICE,
	Methods: map[primitives.MethodName]types.MethodInfo{
		"_init":      {Name: "_init", External: false, Access: protocol.ACCESS_SCOPE_READ_WRITE, Implementation: (*tester)._init},
		"echo":       {Name: "echo", External: true, Access: protocol.ACCESS_SCOPE_READ_ONLY, Implementation: (*tester).echo},
		"store":      {Name: "store", External: true, Access: protocol.ACCESS_SCOPE_READ_WRITE, Implementation: (*tester).store},
		"load":       {Name: "load", External: true, Access: protocol.ACCESS_SCOPE_READ_ONLY, Implementation: (*tester).load},
		"throw":      {Name: "throw", External: true, Access: protocol.ACCESS_SCOPE_READ_ONLY, Implementation: (*tester).throw},
		"panic":      {Name: "panic", External: true, Access: protocol.ACCESS_SCOPE_READ_ONLY, Implementation: (*tester).panic},
		"whoAndWhen": {Name: "whoAndWhen", External: true, Access: protocol.ACCESS_SCOPE_READ_ONLY, Implementation: (*tester).whoAndWhen},
		"internal":   {Name: "internal", External: false, Access: protocol.ACCESS_SCOPE_READ_ONLY, Implementation: (*tester).internal},
	},
	InitSingleton: func(base *types.BaseContract) types.Contract {
		return &tester{base}
	},
}

type tester struct{ *types.BaseContract }

func (c *tester) _init(ctx types.Context) error {
	return c.State.WriteStringByKey(ctx, "initialized", "yes")
}

func (c *tester) echo(ctx types.Context, a uint32, b uint64, s string, bytes []byte) (uint32, uint64, string, []byte, error) {
	return a, b, s, bytes, nil
}

func (c *tester) store(ctx types.Context, key string, value uint64) error {
	return c.State.WriteUint64ByKey(ctx, key, value)
}

func (c *tester) load(ctx types.Context, key string) (uint64, error) {
	return c.State.ReadUint64ByKey(ctx, key)
}

func (c *tester) throw(ctx types.Context) error {
	return errors.New("example error returned by contract")
}

func (c *tester) panic(ctx types.Context) error {
	panic("example panic thrown by contract")
}

func (c *tester) whoAndWhen(ctx types.Context) ([]byte, uint64, uint64, error) {
	signer, err := c.Address.GetSignerAddress(ctx)
	if err != nil {
		return nil, 0, 0, err
	}
	height, err := c.Env.GetBlockHeight(ctx)
	if err != nil {
		return nil, 0, 0, err
	}
	timestamp, err := c.Env.GetBlockTimestamp(ctx)
	if err != nil {
		return nil, 0, 0, err
	}
	return signer, height, timestamp, nil
}

func (c *tester) internal(ctx types.Context) error {
	return nil
}

type contractSdkCallHandlerStub struct {
	store          map[string][]byte
	signer         []byte
	height         uint64
	timestamp      uint64
	seenContextIds [][]byte
}

func newSdkHandlerStub() *contractSdkCallHandlerStub {
	return &contractSdkCallHandlerStub{
		store:     make(map[string][]byte),
		signer:    []byte{0x01, 0x02, 0x03},
		height:    11,
		timestamp: 12,
	}
}

func (c *contractSdkCallHandlerStub) HandleSdkCall(ctx context.Context, input *handlers.HandleSdkCallInput) (*handlers.HandleSdkCallOutput, error) {
	if input.PermissionScope != protocol.PERMISSION_SCOPE_SERVICE {
		panic("permissions passed to SDK are incorrect")
	}
	c.seenContextIds = append(c.seenContextIds, input.ContextId)

	switch input.OperationName + "." + input.MethodName {
	case "Sdk.State.read":
		return &handlers.HandleSdkCallOutput{
			OutputArguments: builders.Arguments(c.store[string(input.InputArguments[0].BytesValue())]),
		}, nil
	case "Sdk.State.write":
		c.store[string(input.InputArguments[0].BytesValue())] = input.InputArguments[1].BytesValue()
		return nil, nil
	case "Sdk.Address.getSignerAddress":
		return &handlers.HandleSdkCallOutput{OutputArguments: builders.Arguments(c.signer)}, nil
	case "Sdk.Env.getBlockHeight":
		return &handlers.HandleSdkCallOutput{OutputArguments: builders.Arguments(c.height)}, nil
	case "Sdk.Env.getBlockTimestamp":
		return &handlers.HandleSdkCallOutput{OutputArguments: builders.Arguments(c.timestamp)}, nil
	default:
		return nil, errors.New("unknown method")
	}
}

type harness struct {
	service *service
	handler *contractSdkCallHandlerStub
}

func newHarness(logger log.Logger) *harness {
	s := NewNativeProcessor(logger, metric.NewRegistry(), &testerContract).(*service)
	handler := newSdkHandlerStub()
	s.RegisterContractSdkCallHandler(handler)
	return &harness{service: s, handler: handler}
}

func processCallInput(methodName primitives.MethodName, args ...interface{}) *services.ProcessCallInput {
	return &services.ProcessCallInput{
		ContextId:              exampleContextId,
		ContractName:           testerContractName,
		MethodName:             methodName,
		InputArgumentArray:     builders.ArgumentsArray(args...),
		AccessScope:            protocol.ACCESS_SCOPE_READ_WRITE,
		CallingPermissionScope: protocol.PERMISSION_SCOPE_SERVICE,
	}
}
