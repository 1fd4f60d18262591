// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package virtualmachine

import (
	"encoding/binary"
	"github.com/orbs-network/contribchain-go/services"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"sync"
)

type executionContext struct {
	lastCommittedBlockHeight primitives.BlockHeight
	currentBlockHeight       primitives.BlockHeight
	currentBlockTimestamp    primitives.TimestampNano
	accessScope              protocol.ExecutionAccessScope
	signerAddress            primitives.ClientAddress
	serviceStack             []primitives.ContractName
	transientState           *transientState
}

func (c *executionContext) serviceStackTop() primitives.ContractName {
	if len(c.serviceStack) == 0 {
		return ""
	}
	return c.serviceStack[len(c.serviceStack)-1]
}

func (c *executionContext) serviceStackPush(contractName primitives.ContractName) {
	c.serviceStack = append(c.serviceStack, contractName)
}

func (c *executionContext) serviceStackPop() {
	if len(c.serviceStack) == 0 {
		return
	}
	c.serviceStack = c.serviceStack[0 : len(c.serviceStack)-1]
}

type executionContextProvider struct {
	mutex          sync.RWMutex
	lastContextId  uint64
	activeContexts map[string]*executionContext
}

func newExecutionContextProvider() *executionContextProvider {
	return &executionContextProvider{
		activeContexts: make(map[string]*executionContext),
	}
}

func (cp *executionContextProvider) allocateExecutionContext(
	lastCommittedBlockHeight primitives.BlockHeight,
	currentBlockHeight primitives.BlockHeight,
	currentBlockTimestamp primitives.TimestampNano,
	accessScope protocol.ExecutionAccessScope,
	signerAddress primitives.ClientAddress,
) (services.ExecutionContextId, *executionContext) {

	cp.mutex.Lock()
	defer cp.mutex.Unlock()

	newContext := &executionContext{
		lastCommittedBlockHeight: lastCommittedBlockHeight,
		currentBlockHeight:       currentBlockHeight,
		currentBlockTimestamp:    currentBlockTimestamp,
		accessScope:              accessScope,
		signerAddress:            signerAddress,
		transientState:           newTransientState(),
	}

	cp.lastContextId++
	contextId := make([]byte, 8)
	binary.BigEndian.PutUint64(contextId, cp.lastContextId)
	cp.activeContexts[string(contextId)] = newContext
	return contextId, newContext
}

func (cp *executionContextProvider) destroyExecutionContext(contextId services.ExecutionContextId) {
	cp.mutex.Lock()
	defer cp.mutex.Unlock()

	delete(cp.activeContexts, string(contextId))
}

func (cp *executionContextProvider) loadExecutionContext(contextId services.ExecutionContextId) *executionContext {
	cp.mutex.RLock()
	defer cp.mutex.RUnlock()

	return cp.activeContexts[string(contextId)]
}

func (cp *executionContextProvider) activeCount() int {
	cp.mutex.RLock()
	defer cp.mutex.RUnlock()

	return len(cp.activeContexts)
}
