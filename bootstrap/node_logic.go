// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package bootstrap

import (
	"context"
	"github.com/orbs-network/contribchain-go/config"
	"github.com/orbs-network/contribchain-go/instrumentation/metric"
	"github.com/orbs-network/contribchain-go/services"
	"github.com/orbs-network/contribchain-go/services/processor/native"
	"github.com/orbs-network/contribchain-go/services/processor/native/repository"
	"github.com/orbs-network/contribchain-go/services/publicapi"
	"github.com/orbs-network/contribchain-go/services/statestorage"
	stateStorageAdapter "github.com/orbs-network/contribchain-go/services/statestorage/adapter"
	"github.com/orbs-network/contribchain-go/services/virtualmachine"
	"github.com/orbs-network/contribchain-go/synchronization"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
)

type NodeLogic interface {
	PublicApi() services.PublicApi
}

type nodeLogic struct {
	publicApi      services.PublicApi
	metricReporter *synchronization.PeriodicalTrigger
}

// NewNodeLogic wires the services around statePersistence and commits the genesis block on an empty ledger
func NewNodeLogic(
	ctx context.Context,
	statePersistence stateStorageAdapter.StatePersistence,
	logger log.Logger,
	metricRegistry metric.Registry,
	nodeConfig config.NodeConfig,
) (NodeLogic, error) {

	processor := native.NewNativeProcessor(logger, metricRegistry, repository.All()...)
	stateStorageService := statestorage.NewStateStorage(statePersistence, logger, metricRegistry)
	virtualMachineService := virtualmachine.NewVirtualMachine(stateStorageService, processor, nodeConfig, logger, metricRegistry)
	publicApiService := publicapi.NewPublicApi(virtualMachineService, stateStorageService, logger, metricRegistry)

	if err := publicApiService.InitializeGenesis(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to initialize genesis state")
	}

	return &nodeLogic{
		publicApi:      publicApiService,
		metricReporter: metricRegistry.ReportEvery(ctx, nodeConfig.MetricsReportInterval(), logger),
	}, nil
}

func (n *nodeLogic) PublicApi() services.PublicApi {
	return n.publicApi
}
