// Copyright 2019 the contribchain-go authors
// This file is part of the contribchain-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package httpserver

import (
	"context"
	"fmt"
	json "github.com/goccy/go-json"
	"github.com/orbs-network/contribchain-go/config"
	"github.com/orbs-network/contribchain-go/instrumentation/metric"
	"github.com/orbs-network/contribchain-go/jsonapi"
	"github.com/orbs-network/contribchain-go/services"
	"github.com/orbs-network/scribe/log"
	"io/ioutil"
	"net"
	"net/http"
	"time"
)

var LogTag = log.String("adapter", "http-server")

const maxRequestBodyBytes = 1 << 20

type httpErr struct {
	code            int
	logField        *log.Field
	message         string
	executionResult string
}

type HttpServer interface {
	GracefulShutdown(shutdownContext context.Context)
	Port() int
}

type server struct {
	httpServer     *http.Server
	logger         log.Logger
	publicApi      services.PublicApi
	metricRegistry metric.Registry
	config         config.NodeConfig

	port int
}

type tcpKeepAliveListener struct {
	*net.TCPListener
}

func (ln tcpKeepAliveListener) Accept() (net.Conn, error) {
	tc, err := ln.AcceptTCP()
	if err != nil {
		return nil, err
	}
	err = tc.SetKeepAlive(true)
	if err != nil {
		return nil, err
	}
	err = tc.SetKeepAlivePeriod(35 * time.Second)
	if err != nil {
		return nil, err
	}
	return tc, nil
}

func NewHttpServer(cfg config.NodeConfig, logger log.Logger, publicApi services.PublicApi, metricRegistry metric.Registry) HttpServer {
	server := &server{
		logger:         logger.WithTags(LogTag),
		publicApi:      publicApi,
		metricRegistry: metricRegistry,
		config:         cfg,
	}

	if listener, err := server.listen(server.config.HttpAddress()); err != nil {
		panic(fmt.Sprintf("failed to start http server: %s", err.Error()))
	} else {
		server.port = listener.Addr().(*net.TCPAddr).Port
		server.httpServer = &http.Server{
			Handler: server.createRouter(),
		}

		// block until the socket is listening or fail immediately
		go server.httpServer.Serve(tcpKeepAliveListener{listener.(*net.TCPListener)})
	}

	server.logger.Info("started http server", log.String("address", server.config.HttpAddress()), log.Int64("port", int64(server.port)))

	return server
}

func (s *server) Port() int {
	return s.port
}

func (s *server) listen(addr string) (net.Listener, error) {
	return net.Listen("tcp", addr)
}

func (s *server) GracefulShutdown(shutdownContext context.Context) {
	if err := s.httpServer.Shutdown(shutdownContext); err != nil {
		s.logger.Error("failed to stop http server gracefully", log.Error(err))
	}
}

func (s *server) createRouter() http.Handler {
	router := http.NewServeMux()
	router.Handle("/api/v1/send-transaction", http.HandlerFunc(wrapHandlerWithCORS(s.sendTransactionHandler)))
	router.Handle("/api/v1/run-query", http.HandlerFunc(wrapHandlerWithCORS(s.runQueryHandler)))
	router.Handle("/api/v1/contributions", http.HandlerFunc(wrapHandlerWithCORS(s.recordContributionHandler)))
	router.Handle("/api/v1/contributions/", http.HandlerFunc(wrapHandlerWithCORS(s.readContributionsHandler)))
	router.Handle("/status", http.HandlerFunc(wrapHandlerWithCORS(s.getStatus)))
	router.Handle("/metrics", http.HandlerFunc(wrapHandlerWithCORS(s.dumpMetrics)))
	router.Handle("/robots.txt", http.HandlerFunc(s.robots))
	return router
}

func requireMethod(r *http.Request, method string) *httpErr {
	if r.Method != method {
		return &httpErr{code: http.StatusMethodNotAllowed, logField: log.String("method", r.Method), message: fmt.Sprintf("http method must be %s", method)}
	}
	return nil
}

func readInput(w http.ResponseWriter, r *http.Request) ([]byte, *httpErr) {
	if r.Body == nil {
		return nil, &httpErr{code: http.StatusBadRequest, message: "http request body is empty"}
	}

	bytes, err := ioutil.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if _, tooLarge := err.(*http.MaxBytesError); tooLarge {
		return nil, &httpErr{code: http.StatusRequestEntityTooLarge, logField: log.Error(err), message: "http request body is too large"}
	}
	if err != nil {
		return nil, &httpErr{code: http.StatusBadRequest, logField: log.Error(err), message: "http request body could not be read"}
	}
	if len(bytes) == 0 {
		return nil, &httpErr{code: http.StatusBadRequest, message: "http request body is empty"}
	}
	return bytes, nil
}

func readJsonInput(w http.ResponseWriter, r *http.Request, request interface{}) *httpErr {
	bytes, e := readInput(w, r)
	if e != nil {
		return e
	}
	if err := json.Unmarshal(bytes, request); err != nil {
		return &httpErr{code: http.StatusBadRequest, logField: log.Error(err), message: "http request is not valid json"}
	}
	return nil
}

func (s *server) writeJsonResponse(w http.ResponseWriter, httpCode int, response interface{}) {
	bytes, err := json.Marshal(response)
	if err != nil {
		s.writeErrorResponseAndLog(w, &httpErr{code: http.StatusInternalServerError, logField: log.Error(err), message: "failed to encode response"})
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(httpCode)
	if _, err := w.Write(bytes); err != nil {
		s.logger.Info("error writing response", log.Error(err))
	}
}

func (s *server) writeErrorResponseAndLog(w http.ResponseWriter, m *httpErr) {
	if m.logField == nil {
		s.logger.Info(m.message, log.Int64("code", int64(m.code)))
	} else {
		s.logger.Info(m.message, log.Int64("code", int64(m.code)), m.logField)
	}
	bytes, _ := json.Marshal(&jsonapi.ErrorResponse{Error: m.message, ExecutionResult: m.executionResult})
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(m.code)
	if _, err := w.Write(bytes); err != nil {
		s.logger.Info("error writing response", log.Error(err))
	}
}

// Allows handler to be called via XHR requests from any host
func wrapHandlerWithCORS(f func(w http.ResponseWriter, r *http.Request)) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Methods", "*")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
		} else {
			f(w, r)
		}
	}
}
