package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"boscoin.io/voteweigher/lib/api/resource"
	"boscoin.io/voteweigher/lib/httputils"
	"boscoin.io/voteweigher/lib/metrics"
	"boscoin.io/voteweigher/lib/quorum"
	"boscoin.io/voteweigher/lib/storage"
	"boscoin.io/voteweigher/lib/weigher"
)

const maxNumberOfExistingData = 10

// CallerHeader carries the address the mutating endpoints are authorized
// against.
const CallerHeader = "X-Caller-Address"

// API Endpoint patterns
const (
	GetQuorumsHandlerPattern       = "/quorums"
	PostQuorumHandlerPattern       = "/quorums"
	GetQuorumHandlerPattern        = "/quorums/{id}"
	GetStrategyHandlerPattern      = "/quorums/{id}/strategies/{index}"
	PostStrategiesHandlerPattern   = "/quorums/{id}/strategies"
	RemoveStrategiesHandlerPattern = "/quorums/{id}/strategies/remove"
	PostMultipliersHandlerPattern  = "/quorums/{id}/multipliers"
	GetWeightHandlerPattern        = "/quorums/{id}/weight/{operator}"
)

type NetworkHandlerAPI struct {
	registry *quorum.Registry
	weigher  *weigher.Weigher
	storage  *storage.LevelDBBackend
}

func NewNetworkHandlerAPI(registry *quorum.Registry, weigher *weigher.Weigher, storage *storage.LevelDBBackend) *NetworkHandlerAPI {
	return &NetworkHandlerAPI{
		registry: registry,
		weigher:  weigher,
		storage:  storage,
	}
}

// AddAPIHandlers registers every endpoint on `router`, wrapped with the
// request metrics.
func (api NetworkHandlerAPI) AddAPIHandlers(router *mux.Router) {
	router.HandleFunc(GetQuorumsHandlerPattern, api.instrument("quorums", api.GetQuorumsHandler)).Methods("GET")
	router.HandleFunc(PostQuorumHandlerPattern, api.instrument("quorums", api.PostQuorumHandler)).Methods("POST")
	router.HandleFunc(GetQuorumHandlerPattern, api.instrument("quorum", api.GetQuorumHandler)).Methods("GET")
	router.HandleFunc(GetStrategyHandlerPattern, api.instrument("strategy", api.GetStrategyHandler)).Methods("GET")
	router.HandleFunc(PostStrategiesHandlerPattern, api.instrument("strategies", api.PostStrategiesHandler)).Methods("POST")
	router.HandleFunc(RemoveStrategiesHandlerPattern, api.instrument("strategies-remove", api.RemoveStrategiesHandler)).Methods("POST")
	router.HandleFunc(PostMultipliersHandlerPattern, api.instrument("multipliers", api.PostMultipliersHandler)).Methods("POST")
	router.HandleFunc(GetWeightHandlerPattern, api.instrument("weight", api.GetWeightHandler)).Methods("GET")
}

func (api NetworkHandlerAPI) instrument(endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		begin := time.Now()
		labels := []string{"endpoint", endpoint, "method", r.Method}

		metrics.API.RequestsTotal.With(labels...).Add(1)
		defer metrics.API.RequestDurationSeconds.With(labels...).Observe(time.Since(begin).Seconds())

		handler(newStatusWriter(w, labels), r)
	}
}

// statusWriter counts error responses without changing what the handlers
// write.
type statusWriter struct {
	http.ResponseWriter
	labels []string
}

func newStatusWriter(w http.ResponseWriter, labels []string) *statusWriter {
	return &statusWriter{ResponseWriter: w, labels: labels}
}

func (w *statusWriter) WriteHeader(code int) {
	if code >= 400 {
		metrics.API.RequestErrorsTotal.With(w.labels...).Add(1)
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func renderEventStream(args ...interface{}) ([]byte, error) {
	if len(args) <= 1 {
		return nil, fmt.Errorf("render: value is empty")
	}
	i := args[1]

	switch v := i.(type) {
	case *quorum.Quorum:
		r := resource.NewQuorum(v)
		return json.Marshal(r.Resource())
	case httputils.HALResource:
		return json.Marshal(v.Resource())
	}

	return json.Marshal(i)
}
