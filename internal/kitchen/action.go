package kitchen

import "time"

// ActionType classifies ledger entries.
type ActionType string

const (
	ActionPlace   ActionType = "place"
	ActionMove    ActionType = "move"
	ActionPickup  ActionType = "pickup"
	ActionDiscard ActionType = "discard"
)

// Action is one immutable entry in the append-only ledger.
type Action struct {
	Timestamp time.Time  `json:"timestamp"`
	OrderID   string     `json:"order_id"`
	Type      ActionType `json:"action"`
	Target    Location   `json:"target"`
	Details   string     `json:"details"`
}
