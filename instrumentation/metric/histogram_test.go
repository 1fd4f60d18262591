// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package metric

import (
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestHistogram_RecordsSamples(t *testing.T) {
	h := newHistogram("latency", time.Second.Nanoseconds())
	for i := int64(1); i <= 100; i++ {
		h.Record(i * int64(time.Millisecond))
	}

	e := h.export()
	require.EqualValues(t, 100, e.Samples)
	require.InEpsilon(t, int64(time.Millisecond), e.Min, 0.01)
	require.InEpsilon(t, int64(100*time.Millisecond), e.Max, 0.01)
	require.Zero(t, h.OverflowCount())
}

func TestHistogram_CountsOverflow(t *testing.T) {
	h := newHistogram("latency", time.Millisecond.Nanoseconds())
	h.Record(int64(time.Hour))

	require.EqualValues(t, 1, h.OverflowCount())
	require.EqualValues(t, 0, h.export().Samples)
}

func TestHistogram_RotateStartsFreshWindow(t *testing.T) {
	h := newHistogram("latency", time.Second.Nanoseconds())
	h.RecordSince(time.Now())
	require.EqualValues(t, 1, h.export().Samples)

	h.Rotate()
	require.EqualValues(t, 0, h.export().Samples)
}
