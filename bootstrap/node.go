// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package bootstrap

import (
	"context"
	"github.com/orbs-network/contribchain-go/bootstrap/httpserver"
	"github.com/orbs-network/contribchain-go/config"
	"github.com/orbs-network/contribchain-go/instrumentation/metric"
	stateStorageAdapter "github.com/orbs-network/contribchain-go/services/statestorage/adapter"
	"github.com/orbs-network/contribchain-go/services/statestorage/adapter/leveldb"
	"github.com/orbs-network/contribchain-go/services/statestorage/adapter/memory"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"sync"
)

type Node struct {
	httpServer   httpserver.HttpServer
	logic        NodeLogic
	persistence  stateStorageAdapter.StatePersistence
	logger       log.Logger
	ctxCancel    context.CancelFunc
	shutdownOnce sync.Once
	shutdownDone chan struct{}
}

func NewNode(nodeConfig config.NodeConfig, logger log.Logger) *Node {
	config.NewValidator(logger).Validate(nodeConfig)

	ctx, ctxCancel := context.WithCancel(context.Background())
	metricRegistry := metric.NewRegistry()

	persistence, err := newStatePersistence(nodeConfig, metricRegistry)
	if err != nil {
		ctxCancel()
		panic(err)
	}

	nodeLogic, err := NewNodeLogic(ctx, persistence, logger, metricRegistry, nodeConfig)
	if err != nil {
		ctxCancel()
		persistence.Close()
		panic(err)
	}

	httpServer := httpserver.NewHttpServer(nodeConfig, logger, nodeLogic.PublicApi(), metricRegistry)

	logger.Info("node started", log.String("state-storage-directory", nodeConfig.StateStorageDirectory()), log.String("version", config.GetVersion().Semantic))

	return &Node{
		httpServer:   httpServer,
		logic:        nodeLogic,
		persistence:  persistence,
		logger:       logger,
		ctxCancel:    ctxCancel,
		shutdownDone: make(chan struct{}),
	}
}

// newStatePersistence keeps state in memory when no directory is configured
func newStatePersistence(nodeConfig config.NodeConfig, metricFactory metric.Factory) (stateStorageAdapter.StatePersistence, error) {
	dir := nodeConfig.StateStorageDirectory()
	if dir == "" {
		return memory.NewStatePersistence(metricFactory), nil
	}

	persistence, err := leveldb.NewStatePersistence(dir, metricFactory)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open state storage at %s", dir)
	}
	return persistence, nil
}

func (n *Node) HttpPort() int {
	return n.httpServer.Port()
}

func (n *Node) GracefulShutdown(shutdownContext context.Context) {
	n.shutdownOnce.Do(func() {
		n.ctxCancel()
		n.httpServer.GracefulShutdown(shutdownContext)
		if err := n.persistence.Close(); err != nil {
			n.logger.Error("failed to close state storage", log.Error(err))
		}
		close(n.shutdownDone)
	})
}

func (n *Node) WaitUntilShutdown(ctx context.Context) {
	select {
	case <-n.shutdownDone:
	case <-ctx.Done():
	}
}
