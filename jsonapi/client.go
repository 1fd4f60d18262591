// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package jsonapi

import (
	"bytes"
	"fmt"
	json "github.com/goccy/go-json"
	"github.com/orbs-network/contribchain-go/crypto/encoding"
	"github.com/orbs-network/contribchain-go/crypto/keys"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/pkg/errors"
	"io"
	"io/ioutil"
	"net/http"
	"strings"
	"time"
)

type HttpError struct {
	StatusCode      int
	Message         string
	ExecutionResult string
}

func (e *HttpError) Error() string {
	return fmt.Sprintf("http status %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint:   strings.TrimSuffix(endpoint, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) SendTransaction(tx *Transaction) (*SendTransactionResponse, error) {
	res := &SendTransactionResponse{}
	return res, c.post("/api/v1/send-transaction", tx, res)
}

func (c *Client) RunQuery(query *Query) (*RunQueryResponse, error) {
	res := &RunQueryResponse{}
	return res, c.post("/api/v1/run-query", query, res)
}

func (c *Client) RecordContribution(request *RecordContributionRequest) (*RecordContributionResponse, error) {
	res := &RecordContributionResponse{}
	return res, c.post("/api/v1/contributions", request, res)
}

func (c *Client) GetContribution(id uint64) (*ContributionResponse, error) {
	res := &ContributionResponse{}
	return res, c.get(fmt.Sprintf("/api/v1/contributions/%d", id), res)
}

func (c *Client) CountContributions() (*CountResponse, error) {
	res := &CountResponse{}
	return res, c.get("/api/v1/contributions/count", res)
}

func (c *Client) Status() (*StatusResponse, error) {
	res := &StatusResponse{}
	return res, c.get("/status", res)
}

func (c *Client) post(path string, request interface{}, response interface{}) error {
	body, err := json.Marshal(request)
	if err != nil {
		return errors.Wrap(err, "failed to encode request")
	}
	httpResponse, err := c.httpClient.Post(c.endpoint+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return errors.Wrapf(err, "failed to post %s", path)
	}
	return readResponse(httpResponse, response)
}

func (c *Client) get(path string, response interface{}) error {
	httpResponse, err := c.httpClient.Get(c.endpoint + path)
	if err != nil {
		return errors.Wrapf(err, "failed to get %s", path)
	}
	return readResponse(httpResponse, response)
}

func readResponse(httpResponse *http.Response, response interface{}) error {
	defer httpResponse.Body.Close()
	body, err := ioutil.ReadAll(io.LimitReader(httpResponse.Body, 1<<20))
	if err != nil {
		return errors.Wrap(err, "failed to read response")
	}

	if httpResponse.StatusCode != http.StatusOK {
		errorResponse := &ErrorResponse{}
		if err := json.Unmarshal(body, errorResponse); err != nil || errorResponse.Error == "" {
			errorResponse.Error = strings.TrimSpace(string(body))
		}
		return &HttpError{StatusCode: httpResponse.StatusCode, Message: errorResponse.Error, ExecutionResult: errorResponse.ExecutionResult}
	}

	if err := json.Unmarshal(body, response); err != nil {
		return errors.Wrap(err, "failed to decode response")
	}
	return nil
}

// SignTransaction signs tx in place with the key pair and stamps the signer public key
func SignTransaction(tx *Transaction, keyPair *keys.Ed25519KeyPair) error {
	tx.SignerPublicKey = encoding.EncodeHex(keyPair.PublicKey())
	tx.Signature = ""
	serviceTx, err := ToTransaction(tx)
	if err != nil {
		return err
	}
	if err := serviceTx.Sign(keyPair.PrivateKey()); err != nil {
		return err
	}
	tx.Signature = encoding.EncodeHex(serviceTx.Signature)
	return nil
}

func NewSignedTransaction(contractName primitives.ContractName, methodName primitives.MethodName, args []Argument, keyPair *keys.Ed25519KeyPair) (*Transaction, error) {
	tx := &Transaction{
		ContractName: string(contractName),
		MethodName:   string(methodName),
		Arguments:    args,
		Timestamp:    uint64(time.Now().UnixNano()),
	}
	return tx, SignTransaction(tx, keyPair)
}

func NewSignedRecordContributionRequest(description string, hours uint64, keyPair *keys.Ed25519KeyPair) (*RecordContributionRequest, error) {
	request := &RecordContributionRequest{
		Description: description,
		Hours:       hours,
		Timestamp:   uint64(time.Now().UnixNano()),
	}
	tx := RecordContributionTransaction(request)
	if err := SignTransaction(tx, keyPair); err != nil {
		return nil, err
	}
	request.SignerPublicKey = tx.SignerPublicKey
	request.Signature = tx.Signature
	return request, nil
}

