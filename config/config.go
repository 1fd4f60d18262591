// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package config

import (
	"time"
)

type NodeConfig interface {
	// http
	HttpAddress() string
	HttpShutdownTimeout() time.Duration

	// state storage
	StateStorageDirectory() string

	// virtual machine
	VirtualMachineMaxValueSizeBytes() uint32

	// metrics
	MetricsReportInterval() time.Duration

	// logger
	LoggerFullLog() bool
	LoggerFileTruncationInterval() time.Duration
}

type mutableNodeConfig interface {
	NodeConfig
	Set(key string, value NodeConfigValue) mutableNodeConfig
	SetDuration(key string, value time.Duration) mutableNodeConfig
	SetUint32(key string, value uint32) mutableNodeConfig
	SetString(key string, value string) mutableNodeConfig
	SetBool(key string, value bool) mutableNodeConfig
	Modify(newValues ...NodeConfigKeyValue)
}

type NodeConfigValue struct {
	Uint32Value   uint32
	DurationValue time.Duration
	StringValue   string
	BoolValue     bool
}

type NodeConfigKeyValue struct {
	Key   string
	Value NodeConfigValue
}

const (
	HTTP_ADDRESS          = "HTTP_ADDRESS"
	HTTP_SHUTDOWN_TIMEOUT = "HTTP_SHUTDOWN_TIMEOUT"

	STATE_STORAGE_DIRECTORY = "STATE_STORAGE_DIRECTORY"

	VIRTUAL_MACHINE_MAX_VALUE_SIZE_BYTES = "VIRTUAL_MACHINE_MAX_VALUE_SIZE_BYTES"

	METRICS_REPORT_INTERVAL = "METRICS_REPORT_INTERVAL"

	LOGGER_FULL_LOG                 = "LOGGER_FULL_LOG"
	LOGGER_FILE_TRUNCATION_INTERVAL = "LOGGER_FILE_TRUNCATION_INTERVAL"
)

type config struct {
	kv map[string]NodeConfigValue
}

func emptyConfig() mutableNodeConfig {
	return &config{
		kv: make(map[string]NodeConfigValue),
	}
}

func (c *config) Set(key string, value NodeConfigValue) mutableNodeConfig {
	c.kv[key] = value
	return c
}

func (c *config) SetDuration(key string, value time.Duration) mutableNodeConfig {
	c.kv[key] = NodeConfigValue{DurationValue: value}
	return c
}

func (c *config) SetUint32(key string, value uint32) mutableNodeConfig {
	c.kv[key] = NodeConfigValue{Uint32Value: value}
	return c
}

func (c *config) SetString(key string, value string) mutableNodeConfig {
	c.kv[key] = NodeConfigValue{StringValue: value}
	return c
}

func (c *config) SetBool(key string, value bool) mutableNodeConfig {
	c.kv[key] = NodeConfigValue{BoolValue: value}
	return c
}

func (c *config) HttpAddress() string {
	return c.kv[HTTP_ADDRESS].StringValue
}

func (c *config) HttpShutdownTimeout() time.Duration {
	return c.kv[HTTP_SHUTDOWN_TIMEOUT].DurationValue
}

func (c *config) StateStorageDirectory() string {
	return c.kv[STATE_STORAGE_DIRECTORY].StringValue
}

func (c *config) VirtualMachineMaxValueSizeBytes() uint32 {
	return c.kv[VIRTUAL_MACHINE_MAX_VALUE_SIZE_BYTES].Uint32Value
}

func (c *config) MetricsReportInterval() time.Duration {
	return c.kv[METRICS_REPORT_INTERVAL].DurationValue
}

func (c *config) LoggerFullLog() bool {
	return c.kv[LOGGER_FULL_LOG].BoolValue
}

func (c *config) LoggerFileTruncationInterval() time.Duration {
	return c.kv[LOGGER_FILE_TRUNCATION_INTERVAL].DurationValue
}
