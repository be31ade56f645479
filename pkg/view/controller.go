package view

import (
	"sync"

	"p2pswap/pkg/offer"
	"p2pswap/pkg/types"
)

// Action names a user-triggered action that owns an outcome
type Action string

const (
	ActionShowOffer   Action = "show_offer"
	ActionCancelOffer Action = "cancel_offer"
)

// Token identifies one invocation of an action. Only the most recent token of an action may
// publish results.
type Token struct {
	action     Action
	generation uint64
}

// Action returns the action the token was issued for
func (t Token) Action() Action {
	return t.action
}

// Controller holds what is currently displayed: the last offer view and one outcome per
// action. It never calls out; results are pushed into it.
type Controller struct {
	mu          sync.Mutex
	offer       *offer.View
	outcomes    map[Action]types.Outcome
	generations map[Action]uint64
}

// Snapshot is a copy of the controller state
type Snapshot struct {
	Offer    *offer.View              `json:"offer,omitempty"`
	Outcomes map[Action]types.Outcome `json:"outcomes"`
}

// NewController creates an empty controller: no offer, no outcomes
func NewController() *Controller {
	return &Controller{
		outcomes:    make(map[Action]types.Outcome),
		generations: make(map[Action]uint64),
	}
}

// Begin starts a new invocation of action. The action's previous outcome is cleared and
// any earlier token for it becomes stale.
func (c *Controller) Begin(action Action) Token {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generations[action]++
	delete(c.outcomes, action)

	return Token{action: action, generation: c.generations[action]}
}

// Current reports whether token is still the latest invocation of its action
func (c *Controller) Current(token Token) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current(token)
}

func (c *Controller) current(token Token) bool {
	return c.generations[token.Action()] == token.generation
}

// SetOffer replaces the displayed offer if token is current. It reports whether the view
// was applied.
func (c *Controller) SetOffer(token Token, v offer.View) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.current(token) {
		return false
	}
	c.offer = &v
	return true
}

// SetOutcome records the outcome for token's action if token is current
func (c *Controller) SetOutcome(token Token, outcome types.Outcome) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.current(token) {
		return false
	}
	c.outcomes[token.Action()] = outcome
	return true
}

// Sink returns an OutcomeSink bound to token
func (c *Controller) Sink(token Token) types.OutcomeSink {
	return func(outcome types.Outcome) {
		c.SetOutcome(token, outcome)
	}
}

// Offer returns the displayed offer, if any
func (c *Controller) Offer() (offer.View, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.offer == nil {
		return offer.View{}, false
	}
	return *c.offer, true
}

// Outcome returns the latest outcome of action; the zero Outcome when none
func (c *Controller) Outcome(action Action) types.Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outcomes[action]
}

// Snapshot copies the current state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{Outcomes: make(map[Action]types.Outcome, len(c.outcomes))}
	if c.offer != nil {
		v := *c.offer
		snap.Offer = &v
	}
	for action, outcome := range c.outcomes {
		snap.Outcomes[action] = outcome
	}
	return snap
}
