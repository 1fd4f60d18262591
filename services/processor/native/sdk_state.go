// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package native

import (
	"github.com/orbs-network/contribchain-go/crypto/hash"
	"github.com/orbs-network/contribchain-go/services/processor/native/types"
	"github.com/orbs-network/membuffers/go"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/pkg/errors"
)

const SDK_OPERATION_NAME_STATE = "Sdk.State"

type stateSdk struct {
	*sdkCaller
}

func (s *stateSdk) ReadBytesByAddress(ctx types.Context, address []byte) ([]byte, error) {
	output, err := s.call(ctx, SDK_OPERATION_NAME_STATE, "read",
		(&protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_BYTES_VALUE, BytesValue: address}).Build(),
	)
	if err != nil {
		return nil, err
	}
	if len(output) != 1 || !output[0].IsTypeBytesValue() {
		return nil, errors.Errorf("read Sdk.State returned corrupt output value")
	}
	return output[0].BytesValue(), nil
}

func (s *stateSdk) WriteBytesByAddress(ctx types.Context, address []byte, value []byte) error {
	_, err := s.call(ctx, SDK_OPERATION_NAME_STATE, "write",
		(&protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_BYTES_VALUE, BytesValue: address}).Build(),
		(&protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_BYTES_VALUE, BytesValue: value}).Build(),
	)
	return err
}

func (s *stateSdk) ReadBytesByKey(ctx types.Context, key string) ([]byte, error) {
	return s.ReadBytesByAddress(ctx, keyToAddress(key))
}

func (s *stateSdk) ReadStringByAddress(ctx types.Context, address []byte) (string, error) {
	bytes, err := s.ReadBytesByAddress(ctx, address)
	return string(bytes), err
}

func (s *stateSdk) ReadStringByKey(ctx types.Context, key string) (string, error) {
	return s.ReadStringByAddress(ctx, keyToAddress(key))
}

func (s *stateSdk) ReadUint64ByAddress(ctx types.Context, address []byte) (uint64, error) {
	bytes, err := s.ReadBytesByAddress(ctx, address)
	if err != nil || len(bytes) == 0 {
		return 0, err
	}
	if len(bytes) < 8 {
		return 0, errors.Errorf("state value of %d bytes is too short for uint64", len(bytes))
	}
	return membuffers.GetUint64(bytes), nil
}

func (s *stateSdk) ReadUint64ByKey(ctx types.Context, key string) (uint64, error) {
	return s.ReadUint64ByAddress(ctx, keyToAddress(key))
}

func (s *stateSdk) ReadUint32ByAddress(ctx types.Context, address []byte) (uint32, error) {
	bytes, err := s.ReadBytesByAddress(ctx, address)
	if err != nil || len(bytes) == 0 {
		return 0, err
	}
	if len(bytes) < 4 {
		return 0, errors.Errorf("state value of %d bytes is too short for uint32", len(bytes))
	}
	return membuffers.GetUint32(bytes), nil
}

func (s *stateSdk) ReadUint32ByKey(ctx types.Context, key string) (uint32, error) {
	return s.ReadUint32ByAddress(ctx, keyToAddress(key))
}

func (s *stateSdk) WriteBytesByKey(ctx types.Context, key string, value []byte) error {
	return s.WriteBytesByAddress(ctx, keyToAddress(key), value)
}

func (s *stateSdk) WriteStringByAddress(ctx types.Context, address []byte, value string) error {
	return s.WriteBytesByAddress(ctx, address, []byte(value))
}

func (s *stateSdk) WriteStringByKey(ctx types.Context, key string, value string) error {
	return s.WriteStringByAddress(ctx, keyToAddress(key), value)
}

func (s *stateSdk) WriteUint64ByAddress(ctx types.Context, address []byte, value uint64) error {
	bytes := make([]byte, 8)
	membuffers.WriteUint64(bytes, value)
	return s.WriteBytesByAddress(ctx, address, bytes)
}

func (s *stateSdk) WriteUint64ByKey(ctx types.Context, key string, value uint64) error {
	return s.WriteUint64ByAddress(ctx, keyToAddress(key), value)
}

func (s *stateSdk) WriteUint32ByAddress(ctx types.Context, address []byte, value uint32) error {
	bytes := make([]byte, 4)
	membuffers.WriteUint32(bytes, value)
	return s.WriteBytesByAddress(ctx, address, bytes)
}

func (s *stateSdk) WriteUint32ByKey(ctx types.Context, key string, value uint32) error {
	return s.WriteUint32ByAddress(ctx, keyToAddress(key), value)
}

func (s *stateSdk) ClearByAddress(ctx types.Context, address []byte) error {
	return s.WriteBytesByAddress(ctx, address, []byte{})
}

func (s *stateSdk) ClearByKey(ctx types.Context, key string) error {
	return s.ClearByAddress(ctx, keyToAddress(key))
}

func keyToAddress(key string) []byte {
	return hash.CalcRipemd160Sha256([]byte(key))
}
