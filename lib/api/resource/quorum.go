package resource

import (
	"strconv"
	"strings"

	"github.com/nvellon/hal"

	"boscoin.io/voteweigher/lib/quorum"
)

type Quorum struct {
	q *quorum.Quorum
}

func NewQuorum(q *quorum.Quorum) *Quorum {
	return &Quorum{
		q: q,
	}
}

func (q Quorum) GetMap() hal.Entry {
	entries := make([]hal.Entry, 0, len(q.q.Entries))
	for i, entry := range q.q.Entries {
		entries = append(entries, hal.Entry{
			"index":      uint64(i),
			"strategy":   entry.Strategy.Hex(),
			"multiplier": entry.Multiplier.String(),
		})
	}

	return hal.Entry{
		"id":      q.q.Number,
		"number":  q.q.Number,
		"entries": entries,
	}
}

func (q Quorum) Resource() *hal.Resource {
	r := hal.NewResource(q, q.LinkSelf())
	number := strconv.FormatUint(q.q.Number, 10)
	r.AddLink("strategies", hal.NewLink(strings.Replace(URLQuorumStrategies, "{id}", number, -1)))
	r.AddLink("weight", hal.NewLink(strings.Replace(URLQuorumWeight, "{id}", number, -1)+"{?operator}", hal.LinkAttr{"templated": true}))
	return r
}

func (q Quorum) LinkSelf() string {
	return strings.Replace(URLQuorum, "{id}", strconv.FormatUint(q.q.Number, 10), -1)
}
