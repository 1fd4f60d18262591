// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package config

import (
	"time"
)

// all other configs are variations from the production one
func defaultProductionConfig() mutableNodeConfig {
	cfg := emptyConfig()

	cfg.SetString(HTTP_ADDRESS, ":8080")
	cfg.SetDuration(HTTP_SHUTDOWN_TIMEOUT, 5*time.Second)

	// 64KB per stored value is plenty for a task description
	cfg.SetUint32(VIRTUAL_MACHINE_MAX_VALUE_SIZE_BYTES, 64*1024)

	cfg.SetDuration(METRICS_REPORT_INTERVAL, 30*time.Second)

	cfg.SetBool(LOGGER_FULL_LOG, false)
	cfg.SetDuration(LOGGER_FILE_TRUNCATION_INTERVAL, 24*time.Hour)

	return cfg
}

// ForProduction persists state under stateStorageDirectory, or keeps it in memory when the directory is empty
func ForProduction(stateStorageDirectory string) mutableNodeConfig {
	cfg := defaultProductionConfig()
	cfg.SetString(STATE_STORAGE_DIRECTORY, stateStorageDirectory)
	return cfg
}

func ForTests() mutableNodeConfig {
	cfg := defaultProductionConfig()

	cfg.SetString(HTTP_ADDRESS, "127.0.0.1:0")
	cfg.SetDuration(HTTP_SHUTDOWN_TIMEOUT, 1*time.Second)
	cfg.SetString(STATE_STORAGE_DIRECTORY, "")
	cfg.SetDuration(METRICS_REPORT_INTERVAL, 100*time.Millisecond)
	cfg.SetUint32(VIRTUAL_MACHINE_MAX_VALUE_SIZE_BYTES, 1024)
	cfg.SetBool(LOGGER_FULL_LOG, true)
	cfg.SetDuration(LOGGER_FILE_TRUNCATION_INTERVAL, 0)

	return cfg
}
