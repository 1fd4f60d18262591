// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package testkit

import (
	"github.com/orbs-network/contribchain-go/crypto/digest"
	"github.com/orbs-network/contribchain-go/crypto/hash"
	"github.com/orbs-network/contribchain-go/services/processor/native/types"
	"github.com/orbs-network/membuffers/go"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
)

// FakeSdk backs a contract with in-memory state and a fixed signer and block time, for unit testing contracts without a VM
type FakeSdk struct {
	state          map[string][]byte
	SignerAddress  []byte
	BlockHeight    uint64
	BlockTimestamp uint64
	WriteCount     int
}

func NewFakeSdk(signerAddress []byte, blockTimestampNano uint64) *FakeSdk {
	return &FakeSdk{
		state:          make(map[string][]byte),
		SignerAddress:  signerAddress,
		BlockHeight:    1,
		BlockTimestamp: blockTimestampNano,
	}
}

func (f *FakeSdk) BaseContract() *types.BaseContract {
	return types.NewBaseContract(f, f, f)
}

func (f *FakeSdk) StateSize() int {
	return len(f.state)
}

func (f *FakeSdk) ReadBytesByAddress(ctx types.Context, address []byte) ([]byte, error) {
	return f.state[string(address)], nil
}

func (f *FakeSdk) ReadBytesByKey(ctx types.Context, key string) ([]byte, error) {
	return f.ReadBytesByAddress(ctx, hash.CalcRipemd160Sha256([]byte(key)))
}

func (f *FakeSdk) ReadStringByAddress(ctx types.Context, address []byte) (string, error) {
	bytes, err := f.ReadBytesByAddress(ctx, address)
	return string(bytes), err
}

func (f *FakeSdk) ReadStringByKey(ctx types.Context, key string) (string, error) {
	bytes, err := f.ReadBytesByKey(ctx, key)
	return string(bytes), err
}

func (f *FakeSdk) ReadUint64ByAddress(ctx types.Context, address []byte) (uint64, error) {
	bytes, err := f.ReadBytesByAddress(ctx, address)
	if len(bytes) == 0 {
		return 0, err
	}
	return membuffers.GetUint64(bytes), err
}

func (f *FakeSdk) ReadUint64ByKey(ctx types.Context, key string) (uint64, error) {
	return f.ReadUint64ByAddress(ctx, hash.CalcRipemd160Sha256([]byte(key)))
}

func (f *FakeSdk) ReadUint32ByAddress(ctx types.Context, address []byte) (uint32, error) {
	bytes, err := f.ReadBytesByAddress(ctx, address)
	if len(bytes) == 0 {
		return 0, err
	}
	return membuffers.GetUint32(bytes), err
}

func (f *FakeSdk) ReadUint32ByKey(ctx types.Context, key string) (uint32, error) {
	return f.ReadUint32ByAddress(ctx, hash.CalcRipemd160Sha256([]byte(key)))
}

func (f *FakeSdk) WriteBytesByAddress(ctx types.Context, address []byte, value []byte) error {
	f.WriteCount++
	if len(value) == 0 {
		delete(f.state, string(address))
		return nil
	}
	f.state[string(address)] = append([]byte{}, value...)
	return nil
}

func (f *FakeSdk) WriteBytesByKey(ctx types.Context, key string, value []byte) error {
	return f.WriteBytesByAddress(ctx, hash.CalcRipemd160Sha256([]byte(key)), value)
}

func (f *FakeSdk) WriteStringByAddress(ctx types.Context, address []byte, value string) error {
	return f.WriteBytesByAddress(ctx, address, []byte(value))
}

func (f *FakeSdk) WriteStringByKey(ctx types.Context, key string, value string) error {
	return f.WriteBytesByKey(ctx, key, []byte(value))
}

func (f *FakeSdk) WriteUint64ByAddress(ctx types.Context, address []byte, value uint64) error {
	bytes := make([]byte, 8)
	membuffers.WriteUint64(bytes, value)
	return f.WriteBytesByAddress(ctx, address, bytes)
}

func (f *FakeSdk) WriteUint64ByKey(ctx types.Context, key string, value uint64) error {
	return f.WriteUint64ByAddress(ctx, hash.CalcRipemd160Sha256([]byte(key)), value)
}

func (f *FakeSdk) WriteUint32ByAddress(ctx types.Context, address []byte, value uint32) error {
	bytes := make([]byte, 4)
	membuffers.WriteUint32(bytes, value)
	return f.WriteBytesByAddress(ctx, address, bytes)
}

func (f *FakeSdk) WriteUint32ByKey(ctx types.Context, key string, value uint32) error {
	return f.WriteUint32ByAddress(ctx, hash.CalcRipemd160Sha256([]byte(key)), value)
}

func (f *FakeSdk) ClearByAddress(ctx types.Context, address []byte) error {
	return f.WriteBytesByAddress(ctx, address, nil)
}

func (f *FakeSdk) ClearByKey(ctx types.Context, key string) error {
	return f.ClearByAddress(ctx, hash.CalcRipemd160Sha256([]byte(key)))
}

func (f *FakeSdk) GetSignerAddress(ctx types.Context) ([]byte, error) {
	return f.SignerAddress, nil
}

func (f *FakeSdk) GetContractAddress(contractName string) ([]byte, error) {
	return digest.CalcClientAddressOfContract(primitives.ContractName(contractName))
}

func (f *FakeSdk) GetBlockHeight(ctx types.Context) (uint64, error) {
	return f.BlockHeight, nil
}

func (f *FakeSdk) GetBlockTimestamp(ctx types.Context) (uint64, error) {
	return f.BlockTimestamp, nil
}
