// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package httpserver

import (
	"context"
	"github.com/orbs-network/contribchain-go/crypto/encoding"
	"github.com/orbs-network/contribchain-go/jsonapi"
	"github.com/orbs-network/contribchain-go/services"
	"github.com/orbs-network/contribchain-go/services/processor/native/repository/ContributionLedger"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/orbs-network/scribe/log"
	"net/http"
	"strconv"
	"strings"
)

const contributionsPath = "/api/v1/contributions/"

func (s *server) recordContributionHandler(w http.ResponseWriter, r *http.Request) {
	if e := requireMethod(r, http.MethodPost); e != nil {
		s.writeErrorResponseAndLog(w, e)
		return
	}

	request := &jsonapi.RecordContributionRequest{}
	if e := readJsonInput(w, r, request); e != nil {
		s.writeErrorResponseAndLog(w, e)
		return
	}

	tx, err := jsonapi.ToTransaction(jsonapi.RecordContributionTransaction(request))
	if err != nil {
		s.writeErrorResponseAndLog(w, &httpErr{code: http.StatusBadRequest, logField: log.Error(err), message: err.Error()})
		return
	}

	output, err := s.publicApi.SendTransaction(r.Context(), &services.SendTransactionInput{Transaction: tx})
	if err != nil {
		s.writeErrorResponseAndLog(w, translateSystemError(err))
		return
	}
	if output.ExecutionResult != protocol.EXECUTION_RESULT_SUCCESS {
		s.writeErrorResponseAndLog(w, translateExecutionFailure(output.ExecutionResult, output.OutputArgumentArray))
		return
	}

	id, e := uint64Result(output.OutputArgumentArray)
	if e != nil {
		s.writeErrorResponseAndLog(w, e)
		return
	}
	s.writeJsonResponse(w, http.StatusOK, &jsonapi.RecordContributionResponse{
		Id:          id,
		TxHash:      encoding.EncodeHex(output.TxHash),
		BlockHeight: uint64(output.BlockHeight),
	})
}

// readContributionsHandler serves /api/v1/contributions/count and /api/v1/contributions/{id}
func (s *server) readContributionsHandler(w http.ResponseWriter, r *http.Request) {
	if e := requireMethod(r, http.MethodGet); e != nil {
		s.writeErrorResponseAndLog(w, e)
		return
	}

	resource := strings.TrimPrefix(r.URL.Path, contributionsPath)
	if resource == "count" {
		count, e := s.totalEntries(r.Context())
		if e != nil {
			s.writeErrorResponseAndLog(w, e)
			return
		}
		s.writeJsonResponse(w, http.StatusOK, &jsonapi.CountResponse{Count: count})
		return
	}

	id, err := strconv.ParseUint(resource, 10, 64)
	if err != nil {
		s.writeErrorResponseAndLog(w, &httpErr{code: http.StatusBadRequest, logField: log.String("path", r.URL.Path), message: "contribution id must be an unsigned integer"})
		return
	}

	contribution, e := s.readContribution(r.Context(), id)
	if e != nil {
		s.writeErrorResponseAndLog(w, e)
		return
	}
	s.writeJsonResponse(w, http.StatusOK, contribution)
}

func (s *server) totalEntries(ctx context.Context) (uint64, *httpErr) {
	output, e := s.queryLedger(ctx, contributionledger.METHOD_TOTAL_ENTRIES.Name)
	if e != nil {
		return 0, e
	}
	return uint64Result(output)
}

func (s *server) readContribution(ctx context.Context, id uint64) (*jsonapi.ContributionResponse, *httpErr) {
	idArg := &protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_UINT_64_VALUE, Uint64Value: id}
	res := &jsonapi.ContributionResponse{Id: id}

	output, e := s.queryLedger(ctx, contributionledger.METHOD_GET_CONTRIBUTION.Name, idArg)
	if e != nil {
		return nil, e
	}
	if res.Description, e = stringResult(output); e != nil {
		return nil, e
	}

	if output, e = s.queryLedger(ctx, contributionledger.METHOD_GET_CONTRIBUTION_HOURS.Name, idArg); e != nil {
		return nil, e
	}
	if res.Hours, e = uint64Result(output); e != nil {
		return nil, e
	}

	if output, e = s.queryLedger(ctx, contributionledger.METHOD_GET_CONTRIBUTOR.Name, idArg); e != nil {
		return nil, e
	}
	contributor, e := bytesResult(output)
	if e != nil {
		return nil, e
	}
	res.Contributor = encoding.EncodeHex(contributor)

	if output, e = s.queryLedger(ctx, contributionledger.METHOD_GET_CONTRIBUTION_TIMESTAMP.Name, idArg); e != nil {
		return nil, e
	}
	if res.Timestamp, e = uint64Result(output); e != nil {
		return nil, e
	}

	return res, nil
}

func (s *server) queryLedger(ctx context.Context, method primitives.MethodName, args ...*protocol.ArgumentBuilder) (*protocol.ArgumentArray, *httpErr) {
	output, err := s.publicApi.RunQuery(ctx, &services.RunQueryInput{Query: &services.Query{
		ContractName:       contributionledger.CONTRACT_NAME,
		MethodName:         method,
		InputArgumentArray: (&protocol.ArgumentArrayBuilder{Arguments: args}).Build(),
	}})
	if err != nil {
		return nil, translateSystemError(err)
	}
	if output.ExecutionResult != protocol.EXECUTION_RESULT_SUCCESS {
		return nil, translateExecutionFailure(output.ExecutionResult, output.OutputArgumentArray)
	}
	return output.OutputArgumentArray, nil
}

// translateExecutionFailure maps a failed contract call to an http status by the ledger error it carries
func translateExecutionFailure(result protocol.ExecutionResult, outputArgs *protocol.ArgumentArray) *httpErr {
	message, e := stringResult(outputArgs)
	if e != nil {
		message = result.String()
	}

	code := http.StatusInternalServerError
	switch result {
	case protocol.EXECUTION_RESULT_ERROR_SMART_CONTRACT:
		switch contributionledger.ErrorKind(message) {
		case contributionledger.ErrNotFound:
			code = http.StatusNotFound
		case contributionledger.ErrInvalidArgument:
			code = http.StatusBadRequest
		case contributionledger.ErrLedgerFull:
			code = http.StatusConflict
		default:
			code = http.StatusUnprocessableEntity
		}
	case protocol.EXECUTION_RESULT_ERROR_INPUT:
		code = http.StatusBadRequest
	case protocol.EXECUTION_RESULT_ERROR_CONTRACT_NOT_DEPLOYED:
		code = http.StatusNotFound
	}

	return &httpErr{code: code, logField: log.Stringable("result", result), message: message, executionResult: result.String()}
}

func firstResult(outputArgs *protocol.ArgumentArray) (*protocol.Argument, *httpErr) {
	if outputArgs == nil {
		return nil, &httpErr{code: http.StatusInternalServerError, message: "contract returned no output"}
	}
	i := outputArgs.ArgumentsIterator()
	if !i.HasNext() {
		return nil, &httpErr{code: http.StatusInternalServerError, message: "contract returned no output"}
	}
	return i.NextArguments(), nil
}

func uint64Result(outputArgs *protocol.ArgumentArray) (uint64, *httpErr) {
	arg, e := firstResult(outputArgs)
	if e != nil {
		return 0, e
	}
	if !arg.IsTypeUint64Value() {
		return 0, &httpErr{code: http.StatusInternalServerError, logField: log.Stringable("output", arg), message: "contract output is not uint64"}
	}
	return arg.Uint64Value(), nil
}

func stringResult(outputArgs *protocol.ArgumentArray) (string, *httpErr) {
	arg, e := firstResult(outputArgs)
	if e != nil {
		return "", e
	}
	if !arg.IsTypeStringValue() {
		return "", &httpErr{code: http.StatusInternalServerError, logField: log.Stringable("output", arg), message: "contract output is not a string"}
	}
	return arg.StringValue(), nil
}

func bytesResult(outputArgs *protocol.ArgumentArray) ([]byte, *httpErr) {
	arg, e := firstResult(outputArgs)
	if e != nil {
		return nil, e
	}
	if !arg.IsTypeBytesValue() {
		return nil, &httpErr{code: http.StatusInternalServerError, logField: log.Stringable("output", arg), message: "contract output is not bytes"}
	}
	return arg.BytesValue(), nil
}
