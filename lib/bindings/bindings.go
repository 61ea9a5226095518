// Package bindings holds the boundary contracts between the registry core
// and the systems it queries but does not own: the stake accounting that
// tracks share balances and the authority deciding who may mutate quorum
// configuration. The core only ever calls through these interfaces.
package bindings

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Action names gating the mutating registry operations.
const (
	ActionCreateQuorum      = "create-quorum"
	ActionAddStrategies     = "add-strategies"
	ActionRemoveStrategies  = "remove-strategies"
	ActionModifyMultipliers = "modify-multipliers"
)

// ShareSource answers the effective delegated share balance an operator
// holds in a strategy, with delegation already aggregated across the
// operator's stakers. Implementations must be safe for concurrent use.
type ShareSource interface {
	SharesOf(operator, strategy common.Address) (*big.Int, error)
}

// Authorizer gates every mutating registry operation.
type Authorizer interface {
	IsAuthorized(caller common.Address, action string) bool
}
