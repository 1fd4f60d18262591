// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package publicapi

import (
	"context"
	"github.com/orbs-network/contribchain-go/instrumentation/logfields"
	"github.com/orbs-network/contribchain-go/instrumentation/trace"
	"github.com/orbs-network/contribchain-go/services"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"time"
)

func (s *service) RunQuery(parentCtx context.Context, input *services.RunQueryInput) (*services.RunQueryOutput, error) {
	ctx := trace.NewContext(parentCtx, "PublicApi.RunQuery")
	start := time.Now()
	defer s.metrics.runQueryTime.RecordSince(start)

	s.metrics.totalQueriesFromClients.Inc()
	if input == nil || input.Query == nil {
		err := errors.New("client request is nil")
		s.logger.Info("run query received missing input", log.Error(err))
		return nil, err
	}

	logger := s.logger.WithTags(trace.LogFieldFrom(ctx))
	logger.Info("run query request received", logfields.Contract(input.Query.ContractName), logfields.Method(input.Query.MethodName))

	output, err := s.virtualMachine.RunQuery(ctx, input)
	if err != nil {
		logger.Info("run query failed", log.Error(err))
		return nil, err
	}
	return output, nil
}
