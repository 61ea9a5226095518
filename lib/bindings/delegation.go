package bindings

import (
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"boscoin.io/voteweigher/lib/errors"
)

// DelegationLedger is an in-process `ShareSource`: it keeps per-staker share
// balances and a staker to operator delegation map, and answers `SharesOf`
// by summing the balances of every staker delegated to the operator. A
// staker delegates all of its strategies to exactly one operator at a time.
type DelegationLedger struct {
	sync.RWMutex

	shares    map[common.Address]map[common.Address]*big.Int // staker -> strategy -> shares
	delegates map[common.Address]common.Address              // staker -> operator
}

func NewDelegationLedger() *DelegationLedger {
	return &DelegationLedger{
		shares:    map[common.Address]map[common.Address]*big.Int{},
		delegates: map[common.Address]common.Address{},
	}
}

// SetShares records the share balance of `staker` in `strategy`, replacing
// any previous balance. Negative balances are rejected.
func (dl *DelegationLedger) SetShares(staker, strategy common.Address, shares *big.Int) error {
	if shares == nil || shares.Sign() < 0 {
		return errors.ErrorInvalidShares
	}

	dl.Lock()
	defer dl.Unlock()

	byStrategy, ok := dl.shares[staker]
	if !ok {
		byStrategy = map[common.Address]*big.Int{}
		dl.shares[staker] = byStrategy
	}
	byStrategy[strategy] = new(big.Int).Set(shares)

	return nil
}

// Delegate points all of `staker`'s balances at `operator`, replacing any
// previous delegation.
func (dl *DelegationLedger) Delegate(staker, operator common.Address) {
	dl.Lock()
	defer dl.Unlock()

	dl.delegates[staker] = operator
}

func (dl *DelegationLedger) Undelegate(staker common.Address) {
	dl.Lock()
	defer dl.Unlock()

	delete(dl.delegates, staker)
}

func (dl *DelegationLedger) SharesOf(operator, strategy common.Address) (*big.Int, error) {
	dl.RLock()
	defer dl.RUnlock()

	total := new(big.Int)
	for staker, delegatedTo := range dl.delegates {
		if delegatedTo != operator {
			continue
		}
		if shares, ok := dl.shares[staker][strategy]; ok {
			total.Add(total, shares)
		}
	}

	return total, nil
}
