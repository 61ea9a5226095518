package common

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/voteweigher/lib/errors"
)

func TestWeightAddChecksBounds(t *testing.T) {
	max, err := NewWeightFromBig(MaxUint96)
	require.NoError(t, err)

	_, err = max.Add(NewWeightFromUint64(1))
	require.Equal(t, errors.ErrorWeightOverflow, err)

	sum, err := max.Add(ZeroWeight())
	require.NoError(t, err)
	require.True(t, max.Equal(sum))
}

func TestWeightRejectsOutOfRange(t *testing.T) {
	over := new(big.Int).Add(MaxUint96, big.NewInt(1))
	_, err := NewWeightFromBig(over)
	require.Equal(t, errors.ErrorWeightOverflow, err)

	_, err = NewWeightFromBig(big.NewInt(-1))
	require.Equal(t, errors.ErrorWeightOverflow, err)
}

func TestMultiplierApply(t *testing.T) {
	// multiplier of 2e18 with the 1e18 divisor doubles the share balance
	m := MustMultiplierFromString("2000000000000000000")
	w, err := m.Apply(big.NewInt(100))
	require.NoError(t, err)
	require.True(t, NewWeightFromUint64(200).Equal(w))

	// truncation toward zero
	m = MustMultiplierFromString("500000000000000000")
	w, err = m.Apply(big.NewInt(3))
	require.NoError(t, err)
	require.True(t, NewWeightFromUint64(1).Equal(w))

	// zero multiplier contributes zero weight
	w, err = NewMultiplierFromUint64(0).Apply(big.NewInt(1000))
	require.NoError(t, err)
	require.True(t, w.IsZero())
}

func TestMultiplierApplyOverflow(t *testing.T) {
	m, err := NewMultiplierFromBig(MaxUint96)
	require.NoError(t, err)

	shares := new(big.Int).Mul(WeightingDivisor, big.NewInt(2))
	_, err = m.Apply(shares)
	require.Equal(t, errors.ErrorWeightOverflow, err)

	_, err = m.Apply(big.NewInt(-1))
	require.Equal(t, errors.ErrorInvalidShares, err)
}

func TestWeightJSON(t *testing.T) {
	w := MustWeightFromString("79228162514264337593543950335") // 2^96 - 1

	encoded, err := json.Marshal(w)
	require.NoError(t, err)
	require.Equal(t, `"79228162514264337593543950335"`, string(encoded))

	var decoded Weight
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	require.True(t, w.Equal(decoded))

	var invalid Weight
	err = json.Unmarshal([]byte(`"79228162514264337593543950336"`), &invalid)
	require.Equal(t, errors.ErrorWeightOverflow, err)
}

func TestMultiplierJSON(t *testing.T) {
	m := MustMultiplierFromString("1000000000000000000")

	encoded, err := json.Marshal(m)
	require.NoError(t, err)
	require.Equal(t, `"1000000000000000000"`, string(encoded))

	var decoded Multiplier
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	require.True(t, m.Equal(decoded))
}
