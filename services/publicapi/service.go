// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package publicapi

import (
	"context"
	"github.com/orbs-network/contribchain-go/instrumentation/metric"
	"github.com/orbs-network/contribchain-go/instrumentation/trace"
	"github.com/orbs-network/contribchain-go/services"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"sync"
	"time"
)

var LogTag = log.Service("public-api")

type service struct {
	virtualMachine services.VirtualMachine
	stateStorage   services.StateStorage
	logger         log.Logger
	clock          func() primitives.TimestampNano

	// one transaction closes one block, so sends are serialized
	sendMutex sync.Mutex

	metrics *metrics
}

type metrics struct {
	sendTransactionTime                *metric.Histogram
	runQueryTime                       *metric.Histogram
	totalTransactionsFromClients       *metric.Gauge
	totalTransactionsErrNilRequest     *metric.Gauge
	totalTransactionsErrInvalidRequest *metric.Gauge
	totalTransactionsFailed            *metric.Gauge
	totalQueriesFromClients            *metric.Gauge
	lastCommittedBlockHeight           *metric.Gauge
}

func newMetrics(factory metric.Factory) *metrics {
	return &metrics{
		sendTransactionTime:                factory.NewLatency("PublicApi.SendTransactionProcessingTime.Millis", 10*time.Second),
		runQueryTime:                       factory.NewLatency("PublicApi.RunQueryProcessingTime.Millis", 5*time.Second),
		totalTransactionsFromClients:       factory.NewGauge("PublicApi.TotalTransactionsFromClients.Count"),
		totalTransactionsErrNilRequest:     factory.NewGauge("PublicApi.TotalTransactionsErrNilRequest.Count"),
		totalTransactionsErrInvalidRequest: factory.NewGauge("PublicApi.TotalTransactionsErrInvalidRequest.Count"),
		totalTransactionsFailed:            factory.NewGauge("PublicApi.TotalTransactionsFailed.Count"),
		totalQueriesFromClients:            factory.NewGauge("PublicApi.TotalQueriesFromClients.Count"),
		lastCommittedBlockHeight:           factory.NewGauge("PublicApi.LastCommittedBlockHeight"),
	}
}

func NewPublicApi(
	virtualMachine services.VirtualMachine,
	stateStorage services.StateStorage,
	logger log.Logger,
	metricFactory metric.Factory,
) services.PublicApi {
	return &service{
		virtualMachine: virtualMachine,
		stateStorage:   stateStorage,
		logger:         logger.WithTags(LogTag),
		clock:          systemClock,
		metrics:        newMetrics(metricFactory),
	}
}

func systemClock() primitives.TimestampNano {
	return primitives.TimestampNano(time.Now().UnixNano())
}

func (s *service) GetStatus(parentCtx context.Context) (*services.GetStatusOutput, error) {
	ctx := trace.NewContext(parentCtx, "PublicApi.GetStatus")

	height, err := s.stateStorage.GetStateStorageBlockHeight(ctx, &services.GetStateStorageBlockHeightInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to read committed block height")
	}
	stateHash, err := s.stateStorage.GetStateHash(ctx, &services.GetStateHashInput{BlockHeight: height.LastCommittedBlockHeight})
	if err != nil {
		return nil, errors.Wrap(err, "failed to read state hash")
	}

	return &services.GetStatusOutput{
		BlockHeight:    height.LastCommittedBlockHeight,
		BlockTimestamp: height.LastCommittedBlockTimestamp,
		StateHash:      stateHash.StateHash,
	}, nil
}
