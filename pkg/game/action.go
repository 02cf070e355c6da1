package game

// ActionType is a closed set of actions a player can take
type ActionType string

// the valid action types
const (
	ActionCheck ActionType = "check"
	ActionBet   ActionType = "bet"
	ActionFold  ActionType = "fold"
)

var validActions = map[ActionType]bool{
	ActionCheck: true,
	ActionBet:   true,
	ActionFold:  true,
}

// Action is an action a player can take
type Action struct {
	Type   ActionType `json:"type"`
	Amount int        `json:"amount"`
}

// NewAction builds an Action from a loosely-typed tag and amount.
// Unknown tags fail with ErrUnknownAction at the boundary so the state machine
// only ever sees the closed set
func NewAction(name string, amount int) (Action, error) {
	t := ActionType(name)
	if !validActions[t] {
		return Action{}, ErrUnknownAction
	}

	return Action{
		Type:   t,
		Amount: amount,
	}, nil
}

// Check returns a check action
func Check() Action {
	return Action{Type: ActionCheck}
}

// Bet returns a bet action for the given amount
func Bet(amount int) Action {
	return Action{Type: ActionBet, Amount: amount}
}

// Fold returns a fold action
func Fold() Action {
	return Action{Type: ActionFold}
}
