// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package config

import (
	"github.com/orbs-network/contribchain-go/test/with"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestValidateConfig(t *testing.T) {
	with.Logging(t, func(harness *with.LoggingHarness) {
		require.NotPanics(t, func() {
			NewValidator(harness.Logger).Validate(defaultProductionConfig())
		})
		require.NotPanics(t, func() {
			NewValidator(harness.Logger).Validate(ForTests())
		})
	})
}

func TestValidateConfig_PanicsOnInvalidValue(t *testing.T) {
	with.Logging(t, func(harness *with.LoggingHarness) {
		harness.AllowErrorsMatching("config value must be positive")

		cfg := defaultProductionConfig()
		cfg.SetDuration(METRICS_REPORT_INTERVAL, 0)

		require.Panics(t, func() {
			NewValidator(harness.Logger).Validate(cfg)
		})
	})
}

func TestValidateConfig_PanicsOnZeroValueSize(t *testing.T) {
	with.Logging(t, func(harness *with.LoggingHarness) {
		harness.AllowErrorsMatching("config value must be positive")

		cfg := ForTests()
		cfg.SetUint32(VIRTUAL_MACHINE_MAX_VALUE_SIZE_BYTES, 0)

		require.Panics(t, func() {
			NewValidator(harness.Logger).Validate(cfg)
		})
	})
}

func TestValidateConfig_PanicsOnEmptyHttpAddress(t *testing.T) {
	with.Logging(t, func(harness *with.LoggingHarness) {
		harness.AllowErrorsMatching("config value must not be empty")

		cfg := ForTests()
		cfg.SetString(HTTP_ADDRESS, "")
		cfg.SetDuration(HTTP_SHUTDOWN_TIMEOUT, time.Second)

		require.Panics(t, func() {
			NewValidator(harness.Logger).Validate(cfg)
		})
	})
}
