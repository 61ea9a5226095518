package observer

import (
	"fmt"

	"github.com/GianlucaGuarini/go-observable"
)

// QuorumObserver carries every registry state change. Each logical change
// triggers both its kind event (`quorum-created`, `strategy-added`, ...) and
// the per-quorum event (`quorum-<number>`), so a subscriber can follow one
// quorum or one kind of change.
var QuorumObserver = observable.New()

const (
	EventQuorumCreated     = "quorum-created"
	EventStrategyAdded     = "strategy-added"
	EventStrategyRemoved   = "strategy-removed"
	EventMultiplierUpdated = "multiplier-updated"
)

// QuorumEvent is the per-quorum event name.
func QuorumEvent(number uint64) string {
	return fmt.Sprintf("quorum-%d", number)
}

// Notification is the payload attached to every trigger.
type Notification struct {
	ID         string `json:"id"`
	Kind       string `json:"kind"`
	Quorum     uint64 `json:"quorum"`
	Index      uint64 `json:"index"`
	Strategy   string `json:"strategy,omitempty"`
	Multiplier string `json:"multiplier,omitempty"`
}
