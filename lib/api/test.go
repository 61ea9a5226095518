package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gorilla/mux"

	"boscoin.io/voteweigher/lib/bindings"
	"boscoin.io/voteweigher/lib/quorum"
	"boscoin.io/voteweigher/lib/storage"
	"boscoin.io/voteweigher/lib/weigher"
)

func prepareAPIServer() (*httptest.Server, *storage.LevelDBBackend, *bindings.DelegationLedger, error) {
	st, err := storage.NewTestMemoryLevelDBBackend()
	if err != nil {
		return nil, nil, nil, err
	}

	ledger := bindings.NewDelegationLedger()
	registry := quorum.NewRegistry(st, quorum.TestAuthorizer{})
	apiHandler := NewNetworkHandlerAPI(registry, weigher.New(registry, ledger), st)

	router := mux.NewRouter()
	apiHandler.AddAPIHandlers(router)
	ts := httptest.NewServer(router)
	return ts, st, ledger, nil
}

func request(ts *httptest.Server, method, url string, body string, streaming bool) (*http.Response, error) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, ts.URL+url, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set(CallerHeader, "0x00000000000000000000000000000000000000aa")
	if streaming {
		req.Header.Set("Accept", "text/event-stream")
	}

	return ts.Client().Do(req)
}
