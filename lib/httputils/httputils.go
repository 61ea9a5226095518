package httputils

import (
	"net/http"

	"boscoin.io/voteweigher/lib/errors"
)

// IsEventStream checks request header accept is text/event-stream
func IsEventStream(r *http.Request) bool {
	if r.Header.Get("Accept") == "text/event-stream" {
		return true

	}
	return false
}

var (
	ErrorsToStatus = map[uint]int{
		100: http.StatusNotFound,            // quorum not found
		101: http.StatusNotFound,            // index out of range
		102: http.StatusBadRequest,          // length mismatch
		103: http.StatusBadRequest,          // invalid index order
		104: http.StatusInternalServerError, // weight overflow
		105: http.StatusForbidden,           // unauthorized
		106: http.StatusBadRequest,          // invalid operation
		107: http.StatusBadRequest,          // invalid multiplier
		108: http.StatusBadRequest,          // invalid shares
		150: http.StatusInternalServerError, // storage core error
		151: http.StatusInternalServerError, // storage record does not exist
		152: http.StatusInternalServerError, // storage record already exists
	}
)

func StatusCode(err error) int {
	if e, ok := err.(*errors.Error); ok {
		if status, ok := ErrorsToStatus[e.Code]; ok {
			return status
		}
	}
	return http.StatusInternalServerError
}
