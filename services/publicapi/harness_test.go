// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package publicapi

import (
	"context"
	"github.com/orbs-network/contribchain-go/config"
	"github.com/orbs-network/contribchain-go/instrumentation/metric"
	"github.com/orbs-network/contribchain-go/services"
	"github.com/orbs-network/contribchain-go/services/processor/native"
	"github.com/orbs-network/contribchain-go/services/processor/native/repository"
	"github.com/orbs-network/contribchain-go/services/statestorage"
	"github.com/orbs-network/contribchain-go/services/statestorage/adapter/memory"
	"github.com/orbs-network/contribchain-go/services/virtualmachine"
	"github.com/orbs-network/contribchain-go/test/builders"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/orbs-network/scribe/log"
	"github.com/stretchr/testify/require"
	"testing"
)

const fixedNow = primitives.TimestampNano(1700000000 * 1000000000)

type harness struct {
	t            testing.TB
	api          *service
	stateStorage services.StateStorage
	persistence  *memory.InMemoryStatePersistence
}

func newHarness(t testing.TB, logger log.Logger) *harness {
	return newHarnessWithConfig(t, logger, config.ForTests())
}

func newHarnessWithConfig(t testing.TB, logger log.Logger, cfg virtualmachine.Config) *harness {
	registry := metric.NewRegistry()
	persistence := memory.NewStatePersistence(registry)
	stateStorage := statestorage.NewStateStorage(persistence, logger, registry)
	processor := native.NewNativeProcessor(logger, registry, repository.All()...)
	vm := virtualmachine.NewVirtualMachine(stateStorage, processor, cfg, logger, registry)

	api := NewPublicApi(vm, stateStorage, logger, registry).(*service)
	api.clock = func() primitives.TimestampNano { return fixedNow }

	return &harness{t: t, api: api, stateStorage: stateStorage, persistence: persistence}
}

func newInitializedHarness(t testing.TB, logger log.Logger) *harness {
	return initialize(newHarness(t, logger))
}

func initialize(h *harness) *harness {
	require.NoError(h.t, h.api.InitializeGenesis(context.Background()))
	return h
}

func (h *harness) record(description string, hours uint64) *services.SendTransactionOutput {
	output, err := h.api.SendTransaction(context.Background(), &services.SendTransactionInput{
		Transaction: builders.RecordContributionTransaction(description, hours).Build(),
	})
	require.NoError(h.t, err)
	return output
}

func (h *harness) query(methodName primitives.MethodName, args ...interface{}) *services.RunQueryOutput {
	output, err := h.api.RunQuery(context.Background(), &services.RunQueryInput{
		Query: builders.Query("ContributionLedger", methodName, args...),
	})
	require.NoError(h.t, err)
	return output
}

func (h *harness) requireRecorded(output *services.SendTransactionOutput, expectedId uint64) {
	require.Equal(h.t, protocol.EXECUTION_RESULT_SUCCESS, output.ExecutionResult, "record should succeed")
	require.Equal(h.t, []interface{}{expectedId}, builders.ArgumentsFromArray(output.OutputArgumentArray))
}

func (h *harness) requireCount(expected uint64) {
	output := h.query("totalEntries")
	require.Equal(h.t, protocol.EXECUTION_RESULT_SUCCESS, output.ExecutionResult)
	require.Equal(h.t, []interface{}{expected}, builders.ArgumentsFromArray(output.OutputArgumentArray), "unexpected count")
}

func (h *harness) requireDescription(id uint64, expected string) {
	output := h.query("getContribution", id)
	require.Equal(h.t, protocol.EXECUTION_RESULT_SUCCESS, output.ExecutionResult)
	require.Equal(h.t, []interface{}{expected}, builders.ArgumentsFromArray(output.OutputArgumentArray))
}

func (h *harness) requireNotFound(id uint64) {
	output := h.query("getContribution", id)
	require.Equal(h.t, protocol.EXECUTION_RESULT_ERROR_SMART_CONTRACT, output.ExecutionResult)
	require.Contains(h.t, builders.ArgumentsFromArray(output.OutputArgumentArray)[0], "not found")
}

func (h *harness) committedHeight() primitives.BlockHeight {
	output, err := h.stateStorage.GetStateStorageBlockHeight(context.Background(), &services.GetStateStorageBlockHeightInput{})
	require.NoError(h.t, err)
	return output.LastCommittedBlockHeight
}
