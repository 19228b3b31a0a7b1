package trader

import (
	"fmt"
	"time"
)

// Fill records some completion of a SpecificOrder. The volume of a fill
// may be less than the requested volume of the order. Fills are immutable
// once created; an order's fill list grows in execution order and its
// elements never change.
type Fill struct {
	id          ID
	order       *SpecificOrder
	market      Market
	time        time.Time
	priceCount  int64
	volumeCount int64
}

// NewFill records an execution of volumeCount at priceCount against order
// on market, at the given time. Counts are in the market's bases.
func NewFill(order *SpecificOrder, at time.Time, market Market, priceCount, volumeCount int64) *Fill {
	return &Fill{
		id:          NewID(),
		order:       order,
		market:      market,
		time:        at,
		priceCount:  priceCount,
		volumeCount: volumeCount,
	}
}

func (f *Fill) ID() ID                { return f.id }
func (f *Fill) Order() *SpecificOrder { return f.order }
func (f *Fill) Market() Market        { return f.market }
func (f *Fill) Time() time.Time       { return f.time }
func (f *Fill) PriceCount() int64     { return f.priceCount }
func (f *Fill) VolumeCount() int64    { return f.volumeCount }

// Price returns the execution price in the market's price basis.
func (f *Fill) Price() DiscreteAmount { return f.market.Price(f.priceCount) }

// Volume returns the executed volume in the market's volume basis.
func (f *Fill) Volume() DiscreteAmount { return f.market.Volume(f.volumeCount) }

// MarshalJSON implements the json.Marshaler interface for Fill, producing
// the stable form published on the event bus.
func (f *Fill) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", f.id)
	w.Append("order", f.order.ID())
	w.Append("market", f.market.String())
	w.Append("price", f.Price())
	w.Append("volume", f.Volume())
	w.Append("time", f.time.Format(time.RFC3339Nano))
	return w.MarshalJSON()
}

func (f *Fill) String() string {
	return fmt.Sprintf("fill{order=%s, market=%s, price=%s, volume=%s}", f.order.ID(), f.market, f.Price(), f.Volume())
}
