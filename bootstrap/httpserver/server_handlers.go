// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package httpserver

import (
	"github.com/orbs-network/contribchain-go/instrumentation/logfields"
	"github.com/orbs-network/contribchain-go/jsonapi"
	"github.com/orbs-network/contribchain-go/services"
	"github.com/orbs-network/contribchain-go/services/virtualmachine"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"net/http"
)

func (s *server) robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, err := w.Write([]byte("User-agent: *\nDisallow: /\n"))
	if err != nil {
		s.logger.Info("error writing robots.txt response", log.Error(err))
	}
}

func (s *server) dumpMetrics(w http.ResponseWriter, r *http.Request) {
	s.writeJsonResponse(w, http.StatusOK, s.metricRegistry.ExportAll())
}

func (s *server) sendTransactionHandler(w http.ResponseWriter, r *http.Request) {
	if e := requireMethod(r, http.MethodPost); e != nil {
		s.writeErrorResponseAndLog(w, e)
		return
	}

	request := &jsonapi.Transaction{}
	if e := readJsonInput(w, r, request); e != nil {
		s.writeErrorResponseAndLog(w, e)
		return
	}

	tx, err := jsonapi.ToTransaction(request)
	if err != nil {
		s.writeErrorResponseAndLog(w, &httpErr{code: http.StatusBadRequest, logField: log.Error(err), message: err.Error()})
		return
	}

	s.logger.Info("http server received send-transaction", logfields.Contract(tx.ContractName), logfields.Method(tx.MethodName))
	output, err := s.publicApi.SendTransaction(r.Context(), &services.SendTransactionInput{Transaction: tx})
	if err != nil {
		s.writeErrorResponseAndLog(w, translateSystemError(err))
		return
	}
	s.writeJsonResponse(w, http.StatusOK, jsonapi.FromSendTransactionOutput(output))
}

func (s *server) runQueryHandler(w http.ResponseWriter, r *http.Request) {
	if e := requireMethod(r, http.MethodPost); e != nil {
		s.writeErrorResponseAndLog(w, e)
		return
	}

	request := &jsonapi.Query{}
	if e := readJsonInput(w, r, request); e != nil {
		s.writeErrorResponseAndLog(w, e)
		return
	}

	query, err := jsonapi.ToQuery(request)
	if err != nil {
		s.writeErrorResponseAndLog(w, &httpErr{code: http.StatusBadRequest, logField: log.Error(err), message: err.Error()})
		return
	}

	s.logger.Info("http server received run-query", logfields.Contract(query.ContractName), logfields.Method(query.MethodName))
	output, err := s.publicApi.RunQuery(r.Context(), &services.RunQueryInput{Query: query})
	if err != nil {
		s.writeErrorResponseAndLog(w, translateSystemError(err))
		return
	}
	s.writeJsonResponse(w, http.StatusOK, jsonapi.FromRunQueryOutput(output))
}

func translateSystemError(err error) *httpErr {
	if errors.Cause(err) == virtualmachine.ErrSignatureMismatch {
		return &httpErr{code: http.StatusUnauthorized, logField: log.Error(err), message: err.Error()}
	}
	return &httpErr{code: http.StatusInternalServerError, logField: log.Error(err), message: err.Error()}
}
