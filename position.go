package trader

// Position is a quantity of an asset held at an exchange, owned by a
// Portfolio. The volume is an integer count of the asset's basis unit.
//
// A position with a non-empty reserving order is earmarked as payment for
// that open order: it is excluded from the tradeable views and from
// reservation matching until Portfolio.Release returns it to the unreserved
// pool. Positions are never deleted, only merged away.
type Position struct {
	id             ID
	exchange       Exchange
	market         Market
	asset          Asset
	volumeCount    int64
	price          DecimalAmount
	reservingOrder ID // empty when the position is free for trading
}

// NewPosition creates an unreserved position. The market may be the zero
// value for positions created from settlement events, where only the
// exchange and asset are known.
func NewPosition(exchange Exchange, market Market, asset Asset, volumeCount int64, price DecimalAmount) *Position {
	return &Position{
		id:          NewID(),
		exchange:    exchange,
		market:      market,
		asset:       asset,
		volumeCount: volumeCount,
		price:       price,
	}
}

func (p *Position) ID() ID              { return p.id }
func (p *Position) Exchange() Exchange  { return p.exchange }
func (p *Position) Market() Market      { return p.market }
func (p *Position) Asset() Asset        { return p.asset }
func (p *Position) VolumeCount() int64  { return p.volumeCount }
func (p *Position) Price() DecimalAmount { return p.price }

// IsReserved reports whether the position is earmarked for an open order.
func (p *Position) IsReserved() bool { return p.reservingOrder != "" }

// ReservingOrder returns the identity of the order holding the reservation,
// or "" when the position is unreserved.
func (p *Position) ReservingOrder() ID { return p.reservingOrder }

// Volume returns the position volume as a discrete amount of the market's
// volume basis. Positions without a market use a basis of 1, so the value
// is the raw count.
func (p *Position) Volume() DiscreteAmount {
	if p.market.IsZero() {
		return NewDiscreteAmount(p.volumeCount, newDecimal(1))
	}
	return p.market.Volume(p.volumeCount)
}

// merge folds other into p when both positions share the same
// (exchange, asset) pair, summing the volume counts. Reservation state is
// deliberately ignored: this is the broad merge used by ModifyPosition.
// It reports whether the merge happened.
func (p *Position) merge(other *Position) bool {
	if p.exchange != other.exchange || p.asset != other.asset {
		return false
	}
	p.volumeCount += other.volumeCount
	return true
}

// snapshot returns a copy for the read-only portfolio views.
func (p *Position) snapshot() *Position {
	c := *p
	return &c
}

func (p *Position) String() string {
	var w jsonObjectWriter
	w.Append("exchange", p.exchange)
	w.Append("asset", p.asset)
	w.Append("volume", p.Volume())
	w.Optional("reservingOrder", p.reservingOrder)
	b, err := w.MarshalJSON()
	if err != nil {
		return string(p.exchange) + ":" + string(p.asset)
	}
	return string(b)
}
