package bindings

import (
	"io/ioutil"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	vcommon "boscoin.io/voteweigher/lib/common"
	"boscoin.io/voteweigher/lib/errors"
)

// DelegationSnapshot is the JSON form of a `DelegationLedger`, used to seed
// the server with an export of the external stake accounting.
type DelegationSnapshot struct {
	Stakers []StakerSnapshot `json:"stakers"`
}

type StakerSnapshot struct {
	Address  string            `json:"address"`
	Operator string            `json:"operator"`
	Shares   map[string]string `json:"shares"` // strategy address -> decimal share balance
}

func NewDelegationLedgerFromSnapshot(snapshot *DelegationSnapshot) (dl *DelegationLedger, err error) {
	dl = NewDelegationLedger()

	for _, staker := range snapshot.Stakers {
		if !common.IsHexAddress(staker.Address) {
			return nil, errors.ErrorInvalidOperation.Clone().SetData("address", staker.Address)
		}
		stakerAddr := common.HexToAddress(staker.Address)

		for strategy, balance := range staker.Shares {
			if !common.IsHexAddress(strategy) {
				return nil, errors.ErrorInvalidOperation.Clone().SetData("strategy", strategy)
			}
			shares, ok := new(big.Int).SetString(balance, 10)
			if !ok {
				return nil, errors.ErrorInvalidShares.Clone().SetData("shares", balance)
			}
			if err = dl.SetShares(stakerAddr, common.HexToAddress(strategy), shares); err != nil {
				return nil, err
			}
		}

		if len(staker.Operator) > 0 {
			if !common.IsHexAddress(staker.Operator) {
				return nil, errors.ErrorInvalidOperation.Clone().SetData("operator", staker.Operator)
			}
			dl.Delegate(stakerAddr, common.HexToAddress(staker.Operator))
		}
	}

	return
}

func LoadDelegationSnapshot(path string) (*DelegationLedger, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var snapshot DelegationSnapshot
	if err := vcommon.DecodeJSONValue(b, &snapshot); err != nil {
		return nil, err
	}

	return NewDelegationLedgerFromSnapshot(&snapshot)
}
