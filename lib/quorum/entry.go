package quorum

import (
	ethcommon "github.com/ethereum/go-ethereum/common"

	"boscoin.io/voteweigher/lib/common"
)

// StrategyEntry pairs a strategy handle with the multiplier scaling its
// share balance. The strategy itself lives in the external asset accounting;
// only the reference is stored here. One quorum may list the same strategy
// more than once, each entry contributes independently.
type StrategyEntry struct {
	Strategy   ethcommon.Address `json:"strategy"`
	Multiplier common.Multiplier `json:"multiplier"`
}

func NewStrategyEntry(strategy ethcommon.Address, multiplier common.Multiplier) StrategyEntry {
	return StrategyEntry{
		Strategy:   strategy,
		Multiplier: multiplier,
	}
}

func (e StrategyEntry) String() string {
	return string(common.MustMarshalJSON(e))
}
