// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package contributionledger

import (
	"fmt"
	"github.com/orbs-network/contribchain-go/services/processor/native/types"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/pkg/errors"
	"math"
	"strings"
)

const CONTRACT_NAME = "ContributionLedger"

var CONTRACT = types.ContractInfo{
	Name:       CONTRACT_NAME,
	Permission: protocol.PERMISSION_SCOPE_SERVICE,
	Methods: map[primitives.MethodName]types.MethodInfo{
		METHOD_INIT.Name:                       METHOD_INIT,
		METHOD_RECORD_CONTRIBUTION.Name:        METHOD_RECORD_CONTRIBUTION,
		METHOD_GET_CONTRIBUTION.Name:           METHOD_GET_CONTRIBUTION,
		METHOD_TOTAL_ENTRIES.Name:              METHOD_TOTAL_ENTRIES,
		METHOD_GET_CONTRIBUTION_HOURS.Name:     METHOD_GET_CONTRIBUTION_HOURS,
		METHOD_GET_CONTRIBUTOR.Name:            METHOD_GET_CONTRIBUTOR,
		METHOD_GET_CONTRIBUTION_TIMESTAMP.Name: METHOD_GET_CONTRIBUTION_TIMESTAMP,
	},
	InitSingleton: newContract,
}

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrLedgerFull      = errors.New("ledger full")
)

const causeSeparator = ": "

// ErrorKind returns the ledger error a failed call's message carries, or nil when it carries none.
// Ledger errors reach callers as "<context>: <kind>" strings, the format errors.Wrap produces.
func ErrorKind(message string) error {
	i := strings.LastIndex(message, causeSeparator)
	if i < 0 {
		return nil
	}
	switch message[i+len(causeSeparator):] {
	case ErrInvalidArgument.Error():
		return ErrInvalidArgument
	case ErrNotFound.Error():
		return ErrNotFound
	case ErrLedgerFull.Error():
		return ErrLedgerFull
	}
	return nil
}

const (
	nextIdKey            = "next_id"
	descriptionsPrefix   = "descriptions_"
	hourCountsPrefix     = "hour_counts_"
	contributorsPrefix   = "contributors_"
	timestampsPrefix     = "timestamps_"
	nanosecondsPerSecond = uint64(1000000000)
)

func newContract(base *types.BaseContract) types.Contract {
	return &contract{base}
}

type contract struct{ *types.BaseContract }

///////////////////////////////////////////////////////////////////////////

var METHOD_INIT = types.MethodInfo{
	Name:           "_init",
	External:       false,
	Access:         protocol.ACCESS_SCOPE_READ_WRITE,
	Implementation: (*contract)._init,
}

func (c *contract) _init(ctx types.Context) error {
	return c.State.WriteUint64ByKey(ctx, nextIdKey, 0)
}

///////////////////////////////////////////////////////////////////////////

var METHOD_RECORD_CONTRIBUTION = types.MethodInfo{
	Name:           "recordContribution",
	External:       true,
	Access:         protocol.ACCESS_SCOPE_READ_WRITE,
	Implementation: (*contract).recordContribution,
}

// recordContribution appends a contribution attributed to the transaction signer and returns its id.
// Nothing is written when validation fails.
func (c *contract) recordContribution(ctx types.Context, description string, hours uint64) (uint64, error) {
	if hours == 0 {
		return 0, errors.Wrap(ErrInvalidArgument, "Hours must be greater than zero")
	}

	id, err := c.State.ReadUint64ByKey(ctx, nextIdKey)
	if err != nil {
		return 0, err
	}
	if id == math.MaxUint64 {
		return 0, errors.Wrap(ErrLedgerFull, "no identifiers left to assign")
	}

	contributor, err := c.Address.GetSignerAddress(ctx)
	if err != nil {
		return 0, err
	}

	timestampNano, err := c.Env.GetBlockTimestamp(ctx)
	if err != nil {
		return 0, err
	}

	if err := c.State.WriteStringByKey(ctx, descriptionsKey(id), description); err != nil {
		return 0, err
	}
	if err := c.State.WriteUint64ByKey(ctx, hourCountsKey(id), hours); err != nil {
		return 0, err
	}
	if err := c.State.WriteBytesByKey(ctx, contributorsKey(id), contributor); err != nil {
		return 0, err
	}
	if err := c.State.WriteUint64ByKey(ctx, timestampsKey(id), timestampNano/nanosecondsPerSecond); err != nil {
		return 0, err
	}
	if err := c.State.WriteUint64ByKey(ctx, nextIdKey, id+1); err != nil {
		return 0, err
	}

	return id, nil
}

///////////////////////////////////////////////////////////////////////////

var METHOD_GET_CONTRIBUTION = types.MethodInfo{
	Name:           "getContribution",
	External:       true,
	Access:         protocol.ACCESS_SCOPE_READ_ONLY,
	Implementation: (*contract).getContribution,
}

func (c *contract) getContribution(ctx types.Context, id uint64) (string, error) {
	if err := c.requireExists(ctx, id); err != nil {
		return "", err
	}
	return c.State.ReadStringByKey(ctx, descriptionsKey(id))
}

///////////////////////////////////////////////////////////////////////////

var METHOD_TOTAL_ENTRIES = types.MethodInfo{
	Name:           "totalEntries",
	External:       true,
	Access:         protocol.ACCESS_SCOPE_READ_ONLY,
	Implementation: (*contract).totalEntries,
}

func (c *contract) totalEntries(ctx types.Context) (uint64, error) {
	return c.State.ReadUint64ByKey(ctx, nextIdKey)
}

///////////////////////////////////////////////////////////////////////////

var METHOD_GET_CONTRIBUTION_HOURS = types.MethodInfo{
	Name:           "getContributionHours",
	External:       true,
	Access:         protocol.ACCESS_SCOPE_READ_ONLY,
	Implementation: (*contract).getContributionHours,
}

func (c *contract) getContributionHours(ctx types.Context, id uint64) (uint64, error) {
	if err := c.requireExists(ctx, id); err != nil {
		return 0, err
	}
	return c.State.ReadUint64ByKey(ctx, hourCountsKey(id))
}

///////////////////////////////////////////////////////////////////////////

var METHOD_GET_CONTRIBUTOR = types.MethodInfo{
	Name:           "getContributor",
	External:       true,
	Access:         protocol.ACCESS_SCOPE_READ_ONLY,
	Implementation: (*contract).getContributor,
}

func (c *contract) getContributor(ctx types.Context, id uint64) ([]byte, error) {
	if err := c.requireExists(ctx, id); err != nil {
		return nil, err
	}
	return c.State.ReadBytesByKey(ctx, contributorsKey(id))
}

///////////////////////////////////////////////////////////////////////////

var METHOD_GET_CONTRIBUTION_TIMESTAMP = types.MethodInfo{
	Name:           "getContributionTimestamp",
	External:       true,
	Access:         protocol.ACCESS_SCOPE_READ_ONLY,
	Implementation: (*contract).getContributionTimestamp,
}

func (c *contract) getContributionTimestamp(ctx types.Context, id uint64) (uint64, error) {
	if err := c.requireExists(ctx, id); err != nil {
		return 0, err
	}
	return c.State.ReadUint64ByKey(ctx, timestampsKey(id))
}

///////////////////////////////////////////////////////////////////////////

// ids are dense, so an id exists exactly when it is below the counter
func (c *contract) requireExists(ctx types.Context, id uint64) error {
	nextId, err := c.State.ReadUint64ByKey(ctx, nextIdKey)
	if err != nil {
		return err
	}
	if id >= nextId {
		return errors.Wrap(ErrNotFound, "Contribution not found")
	}
	return nil
}

func descriptionsKey(id uint64) string {
	return fmt.Sprintf("%s%d", descriptionsPrefix, id)
}

func hourCountsKey(id uint64) string {
	return fmt.Sprintf("%s%d", hourCountsPrefix, id)
}

func contributorsKey(id uint64) string {
	return fmt.Sprintf("%s%d", contributorsPrefix, id)
}

func timestampsKey(id uint64) string {
	return fmt.Sprintf("%s%d", timestampsPrefix, id)
}
