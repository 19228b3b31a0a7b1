package trader

import (
	"fmt"
	"log"
)

// Strategy is a configurable approach to trading. A strategy observes
// quotes and fills and places orders against the positions of its
// portfolio; it never mutates the ledger directly.
type Strategy interface {
	Name() string
	// OnFill is invoked for every fill executed against one of the
	// strategy's orders.
	OnFill(fill *Fill)
}

// Collaborators bundles the references a strategy is built with. There is
// no framework injection: a strategy instance receives the full bundle at
// construction.
type Collaborators struct {
	Portfolio *Portfolio
	Orders    OrderService
	Quotes    QuoteService
	Log       *log.Logger
}

// BaseStrategy helps implement strategies by carrying the collaborator
// bundle and a ready-to-use order builder:
//
//	s.Order.Create(listing, volume).WithLimitPrice(price).Place()
type BaseStrategy struct {
	collab Collaborators

	// Order is the factory for placing orders against the strategy's
	// portfolio.
	Order *OrderBuilder
}

// NewBaseStrategy validates the bundle and prepares the order builder. The
// portfolio is mandatory; the other collaborators may be nil when unused.
func NewBaseStrategy(collab Collaborators) (*BaseStrategy, error) {
	if collab.Portfolio == nil {
		return nil, fmt.Errorf("%w: a strategy requires a portfolio", ErrIllegalState)
	}
	if collab.Log == nil {
		collab.Log = log.Default()
	}
	return &BaseStrategy{
		collab: collab,
		Order:  NewOrderBuilder(collab.Portfolio, collab.Orders),
	}, nil
}

// Portfolio tracks the assets the strategy has for trading.
func (s *BaseStrategy) Portfolio() *Portfolio { return s.collab.Portfolio }

// Quotes serves the most recent trade prices for markets.
func (s *BaseStrategy) Quotes() QuoteService { return s.collab.Quotes }

// Log returns the strategy's logger.
func (s *BaseStrategy) Log() *log.Logger { return s.collab.Log }
