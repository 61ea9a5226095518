package weigher

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/voteweigher/lib/bindings"
	"boscoin.io/voteweigher/lib/common"
	"boscoin.io/voteweigher/lib/errors"
	"boscoin.io/voteweigher/lib/quorum"
)

func testMakeWeigher(t *testing.T, entries []quorum.StrategyEntry) (*Weigher, *quorum.Registry, *bindings.DelegationLedger, uint64) {
	registry := quorum.TestMakeRegistry()
	ledger := bindings.NewDelegationLedger()

	number, err := registry.CreateQuorum(quorum.TestMakeAddress(), entries)
	require.Nil(t, err)

	return New(registry, ledger), registry, ledger, number
}

func TestWeigherWeightOf(t *testing.T) {
	strategy1 := quorum.TestMakeAddress()
	strategy2 := quorum.TestMakeAddress()
	entries := []quorum.StrategyEntry{
		quorum.NewStrategyEntry(strategy1, common.MustMultiplierFromString("2000000000000000000")),
		quorum.NewStrategyEntry(strategy2, common.OneMultiplier()),
	}
	w, _, ledger, number := testMakeWeigher(t, entries)

	operator := quorum.TestMakeAddress()
	staker := quorum.TestMakeAddress()
	require.Nil(t, ledger.SetShares(staker, strategy1, big.NewInt(100)))
	require.Nil(t, ledger.SetShares(staker, strategy2, big.NewInt(50)))
	ledger.Delegate(staker, operator)

	// 100 * 2 + 50 * 1
	weight, err := w.WeightOf(number, operator)
	require.Nil(t, err)
	require.True(t, weight.Equal(common.NewWeightFromUint64(250)))
}

func TestWeigherWeightOfNoShares(t *testing.T) {
	entries := []quorum.StrategyEntry{quorum.TestMakeStrategyEntry()}
	w, _, _, number := testMakeWeigher(t, entries)

	weight, err := w.WeightOf(number, quorum.TestMakeAddress())
	require.Nil(t, err)
	require.True(t, weight.IsZero())
}

func TestWeigherWeightOfUnknownQuorum(t *testing.T) {
	w, registry, _, _ := testMakeWeigher(t, nil)

	_, err := registry.CreateQuorum(quorum.TestMakeAddress(), nil)
	require.Nil(t, err)

	count, err := registry.Count()
	require.Nil(t, err)
	require.Equal(t, uint64(2), count)

	_, err = w.WeightOf(5, quorum.TestMakeAddress())
	require.Equal(t, errors.ErrorQuorumNotFound, err)
}

func TestWeigherDuplicateStrategyCountsTwice(t *testing.T) {
	strategy := quorum.TestMakeAddress()
	entry := quorum.NewStrategyEntry(strategy, common.OneMultiplier())
	w, _, ledger, number := testMakeWeigher(t, []quorum.StrategyEntry{entry, entry})

	operator := quorum.TestMakeAddress()
	staker := quorum.TestMakeAddress()
	require.Nil(t, ledger.SetShares(staker, strategy, big.NewInt(7)))
	ledger.Delegate(staker, operator)

	weight, err := w.WeightOf(number, operator)
	require.Nil(t, err)
	require.True(t, weight.Equal(common.NewWeightFromUint64(14)))
}

func TestWeigherTruncation(t *testing.T) {
	strategy := quorum.TestMakeAddress()
	half := common.MustMultiplierFromString("500000000000000000")
	w, _, ledger, number := testMakeWeigher(t, []quorum.StrategyEntry{
		quorum.NewStrategyEntry(strategy, half),
	})

	operator := quorum.TestMakeAddress()
	staker := quorum.TestMakeAddress()
	require.Nil(t, ledger.SetShares(staker, strategy, big.NewInt(3)))
	ledger.Delegate(staker, operator)

	// 3 * 0.5 truncates toward zero
	weight, err := w.WeightOf(number, operator)
	require.Nil(t, err)
	require.True(t, weight.Equal(common.NewWeightFromUint64(1)))
}

func TestWeigherOverflow(t *testing.T) {
	strategy := quorum.TestMakeAddress()
	maxMultiplier, err := common.NewMultiplierFromBig(common.MaxUint96)
	require.Nil(t, err)
	w, _, ledger, number := testMakeWeigher(t, []quorum.StrategyEntry{
		quorum.NewStrategyEntry(strategy, maxMultiplier),
	})

	operator := quorum.TestMakeAddress()
	staker := quorum.TestMakeAddress()
	require.Nil(t, ledger.SetShares(staker, strategy, new(big.Int).Set(common.MaxUint96)))
	ledger.Delegate(staker, operator)

	_, err = w.WeightOf(number, operator)
	require.Equal(t, errors.ErrorWeightOverflow, err)
}

func TestWeigherMonotonic(t *testing.T) {
	strategy := quorum.TestMakeAddress()
	w, _, ledger, number := testMakeWeigher(t, []quorum.StrategyEntry{
		quorum.NewStrategyEntry(strategy, common.OneMultiplier()),
	})

	operator := quorum.TestMakeAddress()
	staker := quorum.TestMakeAddress()
	require.Nil(t, ledger.SetShares(staker, strategy, big.NewInt(10)))
	ledger.Delegate(staker, operator)

	before, err := w.WeightOf(number, operator)
	require.Nil(t, err)

	require.Nil(t, ledger.SetShares(staker, strategy, big.NewInt(20)))

	after, err := w.WeightOf(number, operator)
	require.Nil(t, err)
	require.Equal(t, 1, after.Cmp(before))
}
