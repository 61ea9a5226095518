package httputils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"boscoin.io/voteweigher/lib/errors"
)

// Problem is an RFC 7807 response body.
type Problem struct {
	// "type" (string) - A URI reference [RFC3986] that identifies the
	// problem type. When this member is not present, its value is assumed
	// to be "about:blank".
	Type string `json:"type"`

	// "title" (string) - A short, human-readable summary of the problem
	// type. It SHOULD NOT change from occurrence to occurrence of the
	// problem.
	Title string `json:"title"`

	// "status" (number) - The HTTP status code generated by the origin
	// server for this occurrence of the problem.
	Status int `json:"status,omitempty"`

	// "detail" (string) - A human-readable explanation specific to this
	// occurrence of the problem.
	Detail string `json:"detail,omitempty"`

	// "instance" (string) - A URI reference that identifies the specific
	// occurrence of the problem.
	Instance string `json:"instance,omitempty"`
}

func NewStatusProblem(status int) Problem {
	return Problem{Type: "about:blank", Title: http.StatusText(status), Status: status}
}

func NewDetailedStatusProblem(status int, detail string) Problem {
	p := NewStatusProblem(status)
	p.Detail = detail
	return p
}

// NewErrorProblem exposes a coded error as a problem; the error code becomes
// part of the problem type so clients can match on it.
func NewErrorProblem(err error, status int) Problem {
	p := Problem{Type: "about:blank", Status: status}
	if e, ok := err.(*errors.Error); ok {
		p.Type = fmt.Sprintf("https://boscoin.io/voteweigher/errors/%d", e.Code)
		p.Title = e.Message
	} else {
		p.Title = err.Error()
	}
	return p
}

func (p Problem) SetInstance(instance string) Problem {
	p.Instance = instance
	return p
}

func (p Problem) SetDetail(detail string) Problem {
	p.Detail = detail
	return p
}

func (p Problem) Serialize() ([]byte, error) {
	return json.Marshal(p)
}
