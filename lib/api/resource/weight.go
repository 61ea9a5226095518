package resource

import (
	"strconv"
	"strings"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/nvellon/hal"

	"boscoin.io/voteweigher/lib/common"
)

type Weight struct {
	number   uint64
	operator ethcommon.Address
	weight   common.Weight
}

func NewWeight(number uint64, operator ethcommon.Address, weight common.Weight) *Weight {
	return &Weight{
		number:   number,
		operator: operator,
		weight:   weight,
	}
}

func (w Weight) GetMap() hal.Entry {
	return hal.Entry{
		"quorum":   w.number,
		"operator": w.operator.Hex(),
		"weight":   w.weight.String(),
	}
}

func (w Weight) Resource() *hal.Resource {
	r := hal.NewResource(w, w.LinkSelf())
	r.AddLink("quorum", hal.NewLink(strings.Replace(URLQuorum, "{id}", strconv.FormatUint(w.number, 10), -1)))
	return r
}

func (w Weight) LinkSelf() string {
	link := strings.Replace(URLQuorumWeight, "{id}", strconv.FormatUint(w.number, 10), -1)
	return strings.Replace(link, "{operator}", w.operator.Hex(), -1)
}
