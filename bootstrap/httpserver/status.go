// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package httpserver

import (
	"github.com/orbs-network/contribchain-go/config"
	"github.com/orbs-network/contribchain-go/crypto/encoding"
	"github.com/orbs-network/contribchain-go/jsonapi"
	"net/http"
)

func (s *server) getStatus(w http.ResponseWriter, r *http.Request) {
	if e := requireMethod(r, http.MethodGet); e != nil {
		s.writeErrorResponseAndLog(w, e)
		return
	}

	status, err := s.publicApi.GetStatus(r.Context())
	if err != nil {
		s.writeErrorResponseAndLog(w, translateSystemError(err))
		return
	}

	count, e := s.totalEntries(r.Context())
	if e != nil {
		s.writeErrorResponseAndLog(w, e)
		return
	}

	version := config.GetVersion()
	s.writeJsonResponse(w, http.StatusOK, &jsonapi.StatusResponse{
		BlockHeight:    uint64(status.BlockHeight),
		BlockTimestamp: uint64(status.BlockTimestamp),
		StateHash:      encoding.EncodeHex(status.StateHash),
		TotalEntries:   count,
		Version:        version.Semantic,
		Commit:         version.Commit,
	})
}
