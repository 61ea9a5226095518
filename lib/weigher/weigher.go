package weigher

import (
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"

	"boscoin.io/voteweigher/lib/bindings"
	"boscoin.io/voteweigher/lib/common"
	"boscoin.io/voteweigher/lib/metrics"
	"boscoin.io/voteweigher/lib/quorum"
)

// Weigher computes operator voting power against the current quorum
// configuration. It holds no state of its own; for a fixed registry state
// and share source the result is a pure function of (quorum, operator).
type Weigher struct {
	registry *quorum.Registry
	shares   bindings.ShareSource
}

func New(registry *quorum.Registry, shares bindings.ShareSource) *Weigher {
	return &Weigher{
		registry: registry,
		shares:   shares,
	}
}

// WeightOf sums, over every entry of the quorum, the operator's share
// balance in the entry's strategy scaled by the entry's multiplier. A
// strategy listed twice contributes twice. An operator with no shares
// anywhere weighs zero.
func (w *Weigher) WeightOf(number uint64, operator ethcommon.Address) (weight common.Weight, err error) {
	defer func() {
		if err != nil {
			weight = common.Weight{}
			metrics.Weigher.ErrorsTotal.Add(1)
		}
	}()

	var q *quorum.Quorum
	if q, err = w.registry.Quorum(number); err != nil {
		return
	}

	weight = common.ZeroWeight()
	for _, entry := range q.Entries {
		var shares *big.Int
		if shares, err = w.shares.SharesOf(operator, entry.Strategy); err != nil {
			return
		}

		var scaled common.Weight
		if scaled, err = entry.Multiplier.Apply(shares); err != nil {
			return
		}

		if weight, err = weight.Add(scaled); err != nil {
			return
		}
	}

	metrics.Weigher.ComputationsTotal.Add(1)

	log.Debug("weight computed", "quorum", number, "operator", operator.Hex(), "weight", weight.String())

	return
}
