//
// Define the `Weight` and `Multiplier` types used for voting power arithmetic.
//
// Both are unsigned 96bit integers backed by `math/big.Int`. In addition to
// the types, some member functions are defined:
// - `Add` does a checked addition and returns an error object
// - `MustAdd` calls `Add` and turns any `error` into a `panic`.
//   Provided for testing / quick prototyping, should not be in production code.
// - `Invariant` panics if the instance it's called on violates its invariant
//   (see Contract programming)
//
package common

import (
	"fmt"
	"math/big"

	"boscoin.io/voteweigher/lib/errors"
)

// WeightingDivisor is the denominator of all multiplier arithmetic. A
// multiplier equal to WeightingDivisor scales a share balance by exactly 1.
// It is fixed at process initialization and never changes.
var WeightingDivisor = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// MaxUint96 is the upper bound of `Weight` and `Multiplier`, 2^96 - 1.
var MaxUint96 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 96), big.NewInt(1))

// Main voting power type used across voteweigher
type Weight struct {
	v *big.Int
}

func ZeroWeight() Weight {
	return Weight{v: new(big.Int)}
}

func NewWeightFromUint64(v uint64) Weight {
	return Weight{v: new(big.Int).SetUint64(v)}
}

// NewWeightFromBig copies `b` into a `Weight`. If `b` is negative or does not
// fit in 96 bits, `errors.ErrorWeightOverflow` is returned.
func NewWeightFromBig(b *big.Int) (Weight, error) {
	if b == nil || b.Sign() < 0 || b.Cmp(MaxUint96) > 0 {
		return Weight{}, errors.ErrorWeightOverflow
	}
	return Weight{v: new(big.Int).Set(b)}, nil
}

func WeightFromString(str string) (Weight, error) {
	b, ok := new(big.Int).SetString(str, 10)
	if !ok {
		return Weight{}, errors.ErrorWeightOverflow
	}
	return NewWeightFromBig(b)
}

// Same as WeightFromString, except it `panic`s if an error happens
func MustWeightFromString(str string) Weight {
	if w, err := WeightFromString(str); err != nil {
		panic(err)
	} else {
		return w
	}
}

func (a Weight) big() *big.Int {
	if a.v == nil {
		return new(big.Int)
	}
	return a.v
}

// Check this type's invariant, that is, its value fits in 96 bits
func (a Weight) Invariant() {
	if a.big().Sign() < 0 || a.big().Cmp(MaxUint96) > 0 {
		panic(fmt.Errorf("Weight '%s' is out of the 96bit range", a.big().String()))
	}
}

// Big returns a copy of the underlying integer.
func (a Weight) Big() *big.Int {
	return new(big.Int).Set(a.big())
}

//
// Add a `Weight` to this `Weight`
//
// If the resulting value would not fit in 96 bits, an error is returned.
//
func (a Weight) Add(added Weight) (Weight, error) {
	a.Invariant()
	added.Invariant()
	n := new(big.Int).Add(a.big(), added.big())
	if n.Cmp(MaxUint96) > 0 {
		return Weight{}, errors.ErrorWeightOverflow
	}
	return Weight{v: n}, nil
}

// Counterpart of `Add` which panics instead of returning an error
// Useful for debugging and testing, should be avoided in regular code
func (a Weight) MustAdd(added Weight) Weight {
	if v, err := a.Add(added); err != nil {
		panic(err)
	} else {
		return v
	}
}

func (a Weight) Equal(o Weight) bool {
	return a.big().Cmp(o.big()) == 0
}

func (a Weight) Cmp(o Weight) int {
	return a.big().Cmp(o.big())
}

func (a Weight) IsZero() bool {
	return a.big().Sign() == 0
}

// Stringer interface implementation
func (a Weight) String() string {
	a.Invariant()
	return a.big().String()
}

// Implement JSON's Marshaler interface
func (a Weight) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("\"%s\"", a.String())), nil
}

// Implement JSON's Unmarshaler interface
func (a *Weight) UnmarshalJSON(b []byte) (err error) {
	if len(b) < 2 {
		return errors.ErrorWeightOverflow
	}
	*a, err = WeightFromString(string(b[1 : len(b)-1]))
	return
}

// Multiplier is the fixedpoint scale factor applied to a strategy's share
// balance, normalized by `WeightingDivisor`. Zero is a valid multiplier and
// contributes zero weight.
type Multiplier struct {
	v *big.Int
}

func NewMultiplierFromUint64(v uint64) Multiplier {
	return Multiplier{v: new(big.Int).SetUint64(v)}
}

// OneMultiplier scales a share balance by exactly 1.
func OneMultiplier() Multiplier {
	return Multiplier{v: new(big.Int).Set(WeightingDivisor)}
}

// NewMultiplierFromBig copies `b` into a `Multiplier`. If `b` is negative or
// does not fit in 96 bits, `errors.ErrorInvalidMultiplier` is returned.
func NewMultiplierFromBig(b *big.Int) (Multiplier, error) {
	if b == nil || b.Sign() < 0 || b.Cmp(MaxUint96) > 0 {
		return Multiplier{}, errors.ErrorInvalidMultiplier
	}
	return Multiplier{v: new(big.Int).Set(b)}, nil
}

func MultiplierFromString(str string) (Multiplier, error) {
	b, ok := new(big.Int).SetString(str, 10)
	if !ok {
		return Multiplier{}, errors.ErrorInvalidMultiplier
	}
	return NewMultiplierFromBig(b)
}

// Same as MultiplierFromString, except it `panic`s if an error happens
func MustMultiplierFromString(str string) Multiplier {
	if m, err := MultiplierFromString(str); err != nil {
		panic(err)
	} else {
		return m
	}
}

func (m Multiplier) big() *big.Int {
	if m.v == nil {
		return new(big.Int)
	}
	return m.v
}

// Check this type's invariant, that is, its value fits in 96 bits
func (m Multiplier) Invariant() {
	if m.big().Sign() < 0 || m.big().Cmp(MaxUint96) > 0 {
		panic(fmt.Errorf("Multiplier '%s' is out of the 96bit range", m.big().String()))
	}
}

// Big returns a copy of the underlying integer.
func (m Multiplier) Big() *big.Int {
	return new(big.Int).Set(m.big())
}

//
// Apply this `Multiplier` to a share balance
//
// The product is computed on the widened `big.Int` representation before the
// division by `WeightingDivisor`, truncating toward zero, so the intermediate
// product cannot wrap. If the scaled result does not fit in 96 bits,
// `errors.ErrorWeightOverflow` is returned. A nil or negative share balance
// is rejected with `errors.ErrorInvalidShares`.
//
func (m Multiplier) Apply(shares *big.Int) (Weight, error) {
	m.Invariant()
	if shares == nil || shares.Sign() < 0 {
		return Weight{}, errors.ErrorInvalidShares
	}

	weighted := new(big.Int).Mul(shares, m.big())
	weighted.Div(weighted, WeightingDivisor)

	return NewWeightFromBig(weighted)
}

func (m Multiplier) Equal(o Multiplier) bool {
	return m.big().Cmp(o.big()) == 0
}

func (m Multiplier) IsZero() bool {
	return m.big().Sign() == 0
}

// Stringer interface implementation
func (m Multiplier) String() string {
	m.Invariant()
	return m.big().String()
}

// Implement JSON's Marshaler interface
func (m Multiplier) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("\"%s\"", m.String())), nil
}

// Implement JSON's Unmarshaler interface
func (m *Multiplier) UnmarshalJSON(b []byte) (err error) {
	if len(b) < 2 {
		return errors.ErrorInvalidMultiplier
	}
	*m, err = MultiplierFromString(string(b[1 : len(b)-1]))
	return
}
