// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package metric

import (
	"context"
	"github.com/orbs-network/contribchain-go/test"
	"github.com/orbs-network/contribchain-go/test/with"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
	"time"
)

func TestInMemoryRegistry_ExportAll(t *testing.T) {
	registry := NewRegistry()
	gauge := registry.NewGauge("hello")
	gauge.Add(1)

	gaugeValue := registry.ExportAll()["hello"].(gaugeExport)
	require.EqualValues(t, gaugeValue.Value, 1)
}

func TestInMemoryRegistry_StringContainsAllMetrics(t *testing.T) {
	registry := NewRegistry()
	registry.NewGauge("StateStorage.BlockHeight").Update(7)
	registry.NewRate("PublicApi.Transactions")
	registry.NewLatency("VirtualMachine.ProcessTransaction", time.Second)

	s := registry.String()
	require.True(t, strings.Contains(s, "metric StateStorage.BlockHeight: 7"))
	require.True(t, strings.Contains(s, "metric PublicApi.Transactions"))
	require.True(t, strings.Contains(s, "metric VirtualMachine.ProcessTransaction"))
}

func TestInMemoryRegistry_ReportEveryRotatesHistograms(t *testing.T) {
	with.Logging(t, func(harness *with.LoggingHarness) {
		registry := NewRegistry()
		latency := registry.NewLatency("latency", time.Second)
		latency.Record(int64(time.Millisecond))

		trigger := registry.ReportEvery(context.Background(), time.Millisecond, harness.Logger)
		defer trigger.Stop()

		require.True(t, test.Eventually(func() bool {
			return latency.export().Samples == 0
		}), "histogram was not rotated by the reporter")
	})
}
