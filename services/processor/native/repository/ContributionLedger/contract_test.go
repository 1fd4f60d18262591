// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package contributionledger

import (
	"github.com/orbs-network/contribchain-go/services/processor/native/testkit"
	"github.com/orbs-network/contribchain-go/services/processor/native/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"math"
	"testing"
)

var exampleContext = types.Context{0x01}

var aliceAddress = []byte{0xa1, 0x1c, 0xe0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01}
var bobAddress = []byte{0xb0, 0xb0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x02}

const exampleTimestampNano = uint64(1700000000123456789)

func newDeployedContract(t *testing.T) (*contract, *testkit.FakeSdk) {
	sdk := testkit.NewFakeSdk(aliceAddress, exampleTimestampNano)
	c := newContract(sdk.BaseContract()).(*contract)
	require.NoError(t, c._init(exampleContext))
	return c, sdk
}

func TestContributionLedger_CountIsZeroAfterDeployment(t *testing.T) {
	c, _ := newDeployedContract(t)

	count, err := c.totalEntries(exampleContext)
	require.NoError(t, err)
	require.EqualValues(t, 0, count)
}

func TestContributionLedger_AssignsDenseIncreasingIds(t *testing.T) {
	c, _ := newDeployedContract(t)

	for expected := uint64(0); expected < 5; expected++ {
		id, err := c.recordContribution(exampleContext, "task", expected+1)
		require.NoError(t, err)
		require.Equal(t, expected, id, "ids must be assigned in order starting at zero")
	}

	count, err := c.totalEntries(exampleContext)
	require.NoError(t, err)
	require.EqualValues(t, 5, count)
}

func TestContributionLedger_RejectsZeroHours(t *testing.T) {
	c, sdk := newDeployedContract(t)
	_, err := c.recordContribution(exampleContext, "first", 2)
	require.NoError(t, err)
	writesBefore := sdk.WriteCount

	_, err = c.recordContribution(exampleContext, "zero", 0)
	require.Error(t, err)
	require.Equal(t, ErrInvalidArgument, errors.Cause(err))
	require.Contains(t, err.Error(), "Hours must be greater than zero")
	require.Equal(t, writesBefore, sdk.WriteCount, "a rejected record must not write anything")

	count, err := c.totalEntries(exampleContext)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestContributionLedger_ReadAfterWrite(t *testing.T) {
	c, _ := newDeployedContract(t)
	description := "Reviewed PR #42: ünïcödé ✓"

	id, err := c.recordContribution(exampleContext, description, 3)
	require.NoError(t, err)

	stored, err := c.getContribution(exampleContext, id)
	require.NoError(t, err)
	require.Equal(t, description, stored)
}

func TestContributionLedger_StoresHoursContributorAndTimestamp(t *testing.T) {
	c, _ := newDeployedContract(t)

	id, err := c.recordContribution(exampleContext, "Wrote docs", 7)
	require.NoError(t, err)

	hours, err := c.getContributionHours(exampleContext, id)
	require.NoError(t, err)
	require.EqualValues(t, 7, hours)

	contributor, err := c.getContributor(exampleContext, id)
	require.NoError(t, err)
	require.Equal(t, aliceAddress, contributor)

	timestamp, err := c.getContributionTimestamp(exampleContext, id)
	require.NoError(t, err)
	require.EqualValues(t, 1700000000, timestamp, "timestamp is stored in whole seconds")
}

func TestContributionLedger_NotFoundAtOrBeyondCount(t *testing.T) {
	c, _ := newDeployedContract(t)

	_, err := c.getContribution(exampleContext, 0)
	require.Equal(t, ErrNotFound, errors.Cause(err), "nothing exists before the first record")

	_, err = c.recordContribution(exampleContext, "only one", 1)
	require.NoError(t, err)

	for _, id := range []uint64{1, 2, 1000, math.MaxUint64} {
		_, err := c.getContribution(exampleContext, id)
		require.Equal(t, ErrNotFound, errors.Cause(err), "id %d", id)
		require.Contains(t, err.Error(), "Contribution not found")

		_, err = c.getContributionHours(exampleContext, id)
		require.Equal(t, ErrNotFound, errors.Cause(err))
		_, err = c.getContributor(exampleContext, id)
		require.Equal(t, ErrNotFound, errors.Cause(err))
		_, err = c.getContributionTimestamp(exampleContext, id)
		require.Equal(t, ErrNotFound, errors.Cause(err))
	}
}

func TestContributionLedger_CountEqualsSuccessfulRecords(t *testing.T) {
	c, _ := newDeployedContract(t)

	hours := []uint64{1, 0, 4, 0, 0, 9}
	successes := 0
	for _, h := range hours {
		if _, err := c.recordContribution(exampleContext, "task", h); err == nil {
			successes++
		}
	}

	count, err := c.totalEntries(exampleContext)
	require.NoError(t, err)
	require.EqualValues(t, successes, count)
}

func TestContributionLedger_RecordsAreImmutable(t *testing.T) {
	c, sdk := newDeployedContract(t)

	id, err := c.recordContribution(exampleContext, "Fixed bug", 3)
	require.NoError(t, err)

	sdk.SignerAddress = bobAddress
	sdk.BlockTimestamp = exampleTimestampNano + 3600*1000000000
	for i := 0; i < 10; i++ {
		_, err := c.recordContribution(exampleContext, "other work", uint64(i+1))
		require.NoError(t, err)
	}

	description, err := c.getContribution(exampleContext, id)
	require.NoError(t, err)
	require.Equal(t, "Fixed bug", description)

	hours, err := c.getContributionHours(exampleContext, id)
	require.NoError(t, err)
	require.EqualValues(t, 3, hours)

	contributor, err := c.getContributor(exampleContext, id)
	require.NoError(t, err)
	require.Equal(t, aliceAddress, contributor)

	timestamp, err := c.getContributionTimestamp(exampleContext, id)
	require.NoError(t, err)
	require.EqualValues(t, 1700000000, timestamp)
}

func TestContributionLedger_AcceptsEmptyDescription(t *testing.T) {
	c, _ := newDeployedContract(t)

	id, err := c.recordContribution(exampleContext, "", 1)
	require.NoError(t, err)

	description, err := c.getContribution(exampleContext, id)
	require.NoError(t, err, "an empty description is still an existing record")
	require.Equal(t, "", description)
}

func TestContributionLedger_RejectsWhenIdentifiersAreExhausted(t *testing.T) {
	c, sdk := newDeployedContract(t)
	require.NoError(t, sdk.WriteUint64ByKey(exampleContext, nextIdKey, math.MaxUint64))
	writesBefore := sdk.WriteCount

	_, err := c.recordContribution(exampleContext, "one too many", 1)
	require.Equal(t, ErrLedgerFull, errors.Cause(err))
	require.Equal(t, writesBefore, sdk.WriteCount)

	count, err := c.totalEntries(exampleContext)
	require.NoError(t, err)
	require.EqualValues(t, uint64(math.MaxUint64), count)
}

func TestContributionLedger_ErrorMessagesCarryTheirKind(t *testing.T) {
	c, sdk := newDeployedContract(t)

	_, err := c.recordContribution(exampleContext, "zero", 0)
	require.Equal(t, "Hours must be greater than zero: invalid argument", err.Error())
	require.Equal(t, ErrInvalidArgument, ErrorKind(err.Error()))

	_, err = c.getContribution(exampleContext, 7)
	require.Equal(t, "Contribution not found: not found", err.Error())
	require.Equal(t, ErrNotFound, ErrorKind(err.Error()))

	require.NoError(t, sdk.WriteUint64ByKey(exampleContext, nextIdKey, math.MaxUint64))
	_, err = c.recordContribution(exampleContext, "one too many", 1)
	require.Equal(t, "no identifiers left to assign: ledger full", err.Error())
	require.Equal(t, ErrLedgerFull, ErrorKind(err.Error()))
}

func TestErrorKind_RequiresAnExactTrailingKind(t *testing.T) {
	require.Nil(t, ErrorKind("not found"), "a bare kind without context is not a wrapped ledger error")
	require.Nil(t, ErrorKind("state key not found"))
	require.Nil(t, ErrorKind("lookup: not found: retry later"))
	require.Nil(t, ErrorKind("state value of 20 bytes exceeds the maximum of 10 bytes"))
	require.Equal(t, ErrNotFound, ErrorKind("outer: Contribution not found: not found"))
}

func TestContributionLedger_ExampleScenario(t *testing.T) {
	c, _ := newDeployedContract(t)

	count, err := c.totalEntries(exampleContext)
	require.NoError(t, err)
	require.EqualValues(t, 0, count)

	_, err = c.getContribution(exampleContext, 0)
	require.Equal(t, ErrNotFound, errors.Cause(err))

	id, err := c.recordContribution(exampleContext, "Fix bug #42", 3)
	require.NoError(t, err)
	require.EqualValues(t, 0, id)

	_, err = c.recordContribution(exampleContext, "Write docs", 0)
	require.Equal(t, ErrInvalidArgument, errors.Cause(err))
	count, err = c.totalEntries(exampleContext)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	id, err = c.recordContribution(exampleContext, "Write docs", 2)
	require.NoError(t, err)
	require.EqualValues(t, 1, id)

	description, err := c.getContribution(exampleContext, 0)
	require.NoError(t, err)
	require.Equal(t, "Fix bug #42", description)

	description, err = c.getContribution(exampleContext, 1)
	require.NoError(t, err)
	require.Equal(t, "Write docs", description)

	count, err = c.totalEntries(exampleContext)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	_, err = c.getContribution(exampleContext, 2)
	require.Equal(t, ErrNotFound, errors.Cause(err))
}

func TestContributionLedger_DeclarationIsWellFormed(t *testing.T) {
	sdk := testkit.NewFakeSdk(aliceAddress, exampleTimestampNano)
	instance, err := types.NewContractInstance(&CONTRACT, sdk.BaseContract())
	require.NoError(t, err)

	require.Contains(t, instance.SystemMethods, "_init")
	for _, name := range []string{"recordContribution", "getContribution", "totalEntries", "getContributionHours", "getContributor", "getContributionTimestamp"} {
		require.Contains(t, instance.PublicMethods, name)
	}
}
