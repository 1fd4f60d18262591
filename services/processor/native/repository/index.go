// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package repository

import (
	"github.com/orbs-network/contribchain-go/services/processor/native/repository/ContributionLedger"
	"github.com/orbs-network/contribchain-go/services/processor/native/types"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"sort"
)

var Contracts = map[primitives.ContractName]types.ContractInfo{
	contributionledger.CONTRACT.Name: contributionledger.CONTRACT,
	// add new native contracts here
}

// All returns the prebuilt contracts ordered by name
func All() []*types.ContractInfo {
	res := make([]*types.ContractInfo, 0, len(Contracts))
	for name := range Contracts {
		contractInfo := Contracts[name]
		res = append(res, &contractInfo)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res
}
