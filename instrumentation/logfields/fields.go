// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package logfields

import (
	"github.com/orbs-network/govnr"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/scribe/log"
	"runtime/debug"
)

func Transaction(txHash primitives.Sha256) *log.Field {
	return log.Stringable("txHash", txHash)
}

func BlockHeight(value primitives.BlockHeight) *log.Field {
	return log.Uint64("block-height", uint64(value))
}

func TimestampNano(key string, value primitives.TimestampNano) *log.Field {
	return log.Uint64(key, uint64(value))
}

func Contract(contractName primitives.ContractName) *log.Field {
	return log.String("contract", string(contractName))
}

func Method(methodName primitives.MethodName) *log.Field {
	return log.String("method", string(methodName))
}

type Errorer interface {
	Error(message string, fields ...*log.Field)
}

type govnrErrorer struct {
	logger Errorer
}

func (h *govnrErrorer) Error(err error) {
	h.logger.Error("recovered panic", log.Error(err), log.String("panic", "true"), log.String("stack-trace", string(debug.Stack())))
}

func GovnrErrorer(logger Errorer) govnr.Errorer {
	return &govnrErrorer{logger}
}
