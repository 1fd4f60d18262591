// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package config

import (
	"github.com/stretchr/testify/require"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig_FillEmptyConfig(t *testing.T) {
	cfg := emptyConfig()
	err := mergeTest(cfg)

	require.NoError(t, err)
	checkMerged(t, cfg)
}

func TestConfig_OverrideProductionConfig(t *testing.T) {
	cfg := ForProduction("/var/lib/contribchain")
	err := mergeTest(cfg)

	require.NoError(t, err)
	checkMerged(t, cfg)
}

func TestConfig_ParsesZeroValues(t *testing.T) {
	cfg := emptyConfig()
	require.NoError(t, mergeTest(cfg))

	err := modifyFromJson(cfg, `
{
	"logger-full-log": false,
	"metrics-report-interval": "0s",
	"virtual-machine-max-value-size-bytes": 0,
	"state-storage-directory": ""
}`)

	require.NoError(t, err)
	require.False(t, cfg.LoggerFullLog())
	require.EqualValues(t, 0, cfg.MetricsReportInterval())
	require.EqualValues(t, 0, cfg.VirtualMachineMaxValueSizeBytes())
	require.Empty(t, cfg.StateStorageDirectory())
}

func TestConfig_RejectsNegativeNumbers(t *testing.T) {
	err := modifyFromJson(emptyConfig(), `{"virtual-machine-max-value-size-bytes": -3}`)
	require.Error(t, err)
}

func TestConfig_RejectsMalformedJson(t *testing.T) {
	err := modifyFromJson(emptyConfig(), `{"http-address": `)
	require.Error(t, err)
}

func TestConfig_Modify(t *testing.T) {
	cfg := ForTests()
	cfg.Modify(NodeConfigKeyValue{Key: STATE_STORAGE_DIRECTORY, Value: NodeConfigValue{StringValue: "/tmp/state"}})

	require.Equal(t, "/tmp/state", cfg.StateStorageDirectory())
}

func TestGetNodeConfigFromFiles_LaterFilesWin(t *testing.T) {
	dir, err := ioutil.TempDir("", "config")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	first := filepath.Join(dir, "first.json")
	second := filepath.Join(dir, "second.json")
	require.NoError(t, ioutil.WriteFile(first, []byte(`{"metrics-report-interval": "1m", "state-storage-directory": "/data"}`), 0644))
	require.NoError(t, ioutil.WriteFile(second, []byte(`{"metrics-report-interval": "2m"}`), 0644))

	cfg, err := GetNodeConfigFromFiles(FilesPaths{first, second}, "127.0.0.1:9999")
	require.NoError(t, err)

	require.Equal(t, 2*time.Minute, cfg.MetricsReportInterval())
	require.Equal(t, "/data", cfg.StateStorageDirectory())
	require.Equal(t, "127.0.0.1:9999", cfg.HttpAddress())
}

func TestGetNodeConfigFromFiles_MissingFile(t *testing.T) {
	_, err := GetNodeConfigFromFiles(FilesPaths{"/no/such/config.json"}, "")
	require.Error(t, err)
}

func TestFilesPaths_CollectsRepeatedFlags(t *testing.T) {
	var paths FilesPaths
	require.NoError(t, paths.Set("a.json"))
	require.NoError(t, paths.Set("b.json"))

	require.Equal(t, FilesPaths{"a.json", "b.json"}, paths)
	require.Equal(t, "a.json,b.json", paths.String())
}

func mergeTest(cfg mutableNodeConfig) error {
	return modifyFromJson(cfg, `
{
	"http-address": "0.0.0.0:8888",
	"http-shutdown-timeout": "7s",
	"state-storage-directory": "/opt/contributions",
	"virtual-machine-max-value-size-bytes": 4096,
	"metrics-report-interval": "10m",
	"logger-full-log": true
}`)
}

func checkMerged(t *testing.T, cfg NodeConfig) {
	require.Equal(t, "0.0.0.0:8888", cfg.HttpAddress())
	require.Equal(t, 7*time.Second, cfg.HttpShutdownTimeout())
	require.Equal(t, "/opt/contributions", cfg.StateStorageDirectory())
	require.EqualValues(t, 4096, cfg.VirtualMachineMaxValueSizeBytes())
	require.Equal(t, 10*time.Minute, cfg.MetricsReportInterval())
	require.True(t, cfg.LoggerFullLog())
}
