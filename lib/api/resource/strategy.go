package resource

import (
	"strconv"
	"strings"

	"github.com/nvellon/hal"

	"boscoin.io/voteweigher/lib/quorum"
)

type Strategy struct {
	number uint64
	index  uint64
	entry  quorum.StrategyEntry
}

func NewStrategy(number uint64, index uint64, entry quorum.StrategyEntry) *Strategy {
	return &Strategy{
		number: number,
		index:  index,
		entry:  entry,
	}
}

func (s Strategy) GetMap() hal.Entry {
	return hal.Entry{
		"quorum":     s.number,
		"index":      s.index,
		"strategy":   s.entry.Strategy.Hex(),
		"multiplier": s.entry.Multiplier.String(),
	}
}

func (s Strategy) Resource() *hal.Resource {
	r := hal.NewResource(s, s.LinkSelf())
	r.AddLink("quorum", hal.NewLink(strings.Replace(URLQuorum, "{id}", strconv.FormatUint(s.number, 10), -1)))
	return r
}

func (s Strategy) LinkSelf() string {
	link := strings.Replace(URLQuorumStrategy, "{id}", strconv.FormatUint(s.number, 10), -1)
	return strings.Replace(link, "{index}", strconv.FormatUint(s.index, 10), -1)
}
