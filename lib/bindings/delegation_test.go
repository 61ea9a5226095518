package bindings

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"boscoin.io/voteweigher/lib/errors"
)

var (
	testOperator = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	testStrategy = common.HexToAddress("0x0000000000000000000000000000000000000001")
)

func TestDelegationLedgerAggregatesStakers(t *testing.T) {
	dl := NewDelegationLedger()

	staker0 := common.HexToAddress("0x0000000000000000000000000000000000000100")
	staker1 := common.HexToAddress("0x0000000000000000000000000000000000000101")

	require.NoError(t, dl.SetShares(staker0, testStrategy, big.NewInt(70)))
	require.NoError(t, dl.SetShares(staker1, testStrategy, big.NewInt(30)))
	dl.Delegate(staker0, testOperator)
	dl.Delegate(staker1, testOperator)

	total, err := dl.SharesOf(testOperator, testStrategy)
	require.NoError(t, err)
	require.Equal(t, int64(100), total.Int64())
}

func TestDelegationLedgerUndelegate(t *testing.T) {
	dl := NewDelegationLedger()

	staker := common.HexToAddress("0x0000000000000000000000000000000000000100")
	require.NoError(t, dl.SetShares(staker, testStrategy, big.NewInt(70)))
	dl.Delegate(staker, testOperator)
	dl.Undelegate(staker)

	total, err := dl.SharesOf(testOperator, testStrategy)
	require.NoError(t, err)
	require.Equal(t, int64(0), total.Int64())
}

func TestDelegationLedgerRejectsNegativeShares(t *testing.T) {
	dl := NewDelegationLedger()

	staker := common.HexToAddress("0x0000000000000000000000000000000000000100")
	require.Equal(t, errors.ErrorInvalidShares, dl.SetShares(staker, testStrategy, big.NewInt(-1)))
	require.Equal(t, errors.ErrorInvalidShares, dl.SetShares(staker, testStrategy, nil))
}

func TestAdminSet(t *testing.T) {
	admin := common.HexToAddress("0x00000000000000000000000000000000000000ad")
	other := common.HexToAddress("0x00000000000000000000000000000000000000bd")

	auth := NewAdminSet(admin)
	require.True(t, auth.IsAuthorized(admin, ActionCreateQuorum))
	require.False(t, auth.IsAuthorized(other, ActionCreateQuorum))
}
