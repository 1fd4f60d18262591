// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package builders

import (
	"fmt"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
)

// ArgumentsBuilders accepts uint32, uint64, string and []byte values; any other type is a test bug and panics
func ArgumentsBuilders(args ...interface{}) (res []*protocol.ArgumentBuilder) {
	res = []*protocol.ArgumentBuilder{}
	for _, arg := range args {
		switch arg.(type) {
		case uint32:
			res = append(res, &protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_UINT_32_VALUE, Uint32Value: arg.(uint32)})
		case uint64:
			res = append(res, &protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_UINT_64_VALUE, Uint64Value: arg.(uint64)})
		case string:
			res = append(res, &protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_STRING_VALUE, StringValue: arg.(string)})
		case []byte:
			res = append(res, &protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_BYTES_VALUE, BytesValue: arg.([]byte)})
		default:
			panic(fmt.Sprintf("unsupported argument type %T", arg))
		}
	}
	return
}

func Arguments(args ...interface{}) (res []*protocol.Argument) {
	res = []*protocol.Argument{}
	builders := ArgumentsBuilders(args...)
	for _, builder := range builders {
		res = append(res, builder.Build())
	}
	return
}

func ArgumentsArray(args ...interface{}) *protocol.ArgumentArray {
	res := []*protocol.ArgumentBuilder{}
	builders := ArgumentsBuilders(args...)
	res = append(res, builders...)

	return (&protocol.ArgumentArrayBuilder{Arguments: res}).Build()
}

func ArgumentsFromArray(argArray *protocol.ArgumentArray) (res []interface{}) {
	res = []interface{}{}
	for i := argArray.ArgumentsIterator(); i.HasNext(); {
		arg := i.NextArguments()
		switch {
		case arg.IsTypeUint32Value():
			res = append(res, arg.Uint32Value())
		case arg.IsTypeUint64Value():
			res = append(res, arg.Uint64Value())
		case arg.IsTypeStringValue():
			res = append(res, arg.StringValue())
		case arg.IsTypeBytesValue():
			res = append(res, arg.BytesValue())
		}
	}
	return
}
