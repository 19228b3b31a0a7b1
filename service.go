package trader

// Publisher announces domain events (Transactions, Fills, Balances) to
// interested collaborators: the replay engine, persistence, display. It is
// fire-and-forget; the core requires no acknowledgment and no delivery
// guarantee.
type Publisher interface {
	Publish(event any)
}

// PublisherFunc adapts a function to the Publisher interface.
type PublisherFunc func(event any)

func (f PublisherFunc) Publish(event any) { f(event) }

// OrderService is the external order-placement collaborator. Orders built
// by an OrderBuilder constructed with a service are forwarded here by
// Place.
type OrderService interface {
	PlaceOrder(order Order) error
}

// QuoteService serves the most recent trade prices for markets. It is a
// read-only collaborator used by strategies, never by the ledger itself.
type QuoteService interface {
	// LastTradePrice returns the latest trade price on market, or ok=false
	// when no trade has been observed.
	LastTradePrice(market Market) (price DecimalAmount, ok bool)
}
