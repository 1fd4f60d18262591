// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package config

import (
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"reflect"
	"runtime"
	"strings"
	"time"
)

type validator struct {
	logger log.Logger
}

func NewValidator(logger log.Logger) *validator {
	return &validator{logger: logger}
}

func (v *validator) Validate(cfg NodeConfig) {
	v.requirePositiveDuration(cfg.MetricsReportInterval)
	v.requirePositiveDuration(cfg.HttpShutdownTimeout)
	v.requirePositiveUint32(cfg.VirtualMachineMaxValueSizeBytes)
	v.requireNonEmptyString(cfg.HttpAddress)
}

func (v *validator) requirePositiveDuration(d func() time.Duration) {
	if d() <= 0 {
		v.fail("config value must be positive", log.Stringable(funcName(d), d()))
	}
}

func (v *validator) requirePositiveUint32(u func() uint32) {
	if u() == 0 {
		v.fail("config value must be positive", log.Uint32(funcName(u), u()))
	}
}

func (v *validator) requireNonEmptyString(s func() string) {
	if s() == "" {
		v.fail("config value must not be empty", log.String("key", funcName(s)))
	}
}

func (v *validator) fail(msg string, field *log.Field) {
	v.logger.Error(msg, field)
	panic(errors.Errorf("%s: %s", msg, field.Key))
}

func funcName(i interface{}) string {
	fullName := runtime.FuncForPC(reflect.ValueOf(i).Pointer()).Name()
	lastDot := strings.LastIndex(fullName, ".")
	return strings.TrimSuffix(fullName[lastDot+1:], "-fm")
}
