package quorum

import (
	"math/rand"

	ethcommon "github.com/ethereum/go-ethereum/common"

	"boscoin.io/voteweigher/lib/common"
	"boscoin.io/voteweigher/lib/storage"
)

type TestAuthorizer struct{}

func (TestAuthorizer) IsAuthorized(ethcommon.Address, string) bool {
	return true
}

type TestDenyAuthorizer struct{}

func (TestDenyAuthorizer) IsAuthorized(ethcommon.Address, string) bool {
	return false
}

func TestMakeAddress() ethcommon.Address {
	b := make([]byte, ethcommon.AddressLength)
	rand.Read(b)
	return ethcommon.BytesToAddress(b)
}

func TestMakeStrategyEntry() StrategyEntry {
	return NewStrategyEntry(TestMakeAddress(), common.OneMultiplier())
}

func TestMakeRegistry() *Registry {
	st, err := storage.NewTestMemoryLevelDBBackend()
	if err != nil {
		panic(err)
	}
	return NewRegistry(st, TestAuthorizer{})
}
