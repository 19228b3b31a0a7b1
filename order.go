package trader

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// FillType declares how the execution subsystem should treat the unfilled
// remainder of an order. The core stores and exposes the tag; it is
// interpreted by the matching collaborator, not here.
type FillType string

const (
	// GoodTilCancelled keeps the order open until explicitly cancelled or
	// expired.
	GoodTilCancelled FillType = "good-til-cancelled"
	// GTCOrMarginCap keeps the order open until cancelled, expired, or
	// filled to the capacity of the currently available positions.
	GTCOrMarginCap FillType = "gtc-or-margin-cap"
	// CancelRemainder cancels any remaining volume after a partial fill.
	CancelRemainder FillType = "cancel-remainder"
)

// ParseFillType parses a string into a FillType.
func ParseFillType(s string) (FillType, error) {
	switch FillType(s) {
	case GoodTilCancelled, GTCOrMarginCap, CancelRemainder:
		return FillType(s), nil
	default:
		return "", fmt.Errorf("unknown fill type: %q", s)
	}
}

// MarginType declares whether an order may trade on credit. Like FillType
// it is a declarative tag for the execution subsystem.
type MarginType string

const (
	// UseMargin trades up to the limit of credit in the quote asset.
	UseMargin MarginType = "use-margin"
	// CashOnly never trades more than the available cash on hand.
	CashOnly MarginType = "cash-only"
)

// ParseMarginType parses a string into a MarginType.
func ParseMarginType(s string) (MarginType, error) {
	switch MarginType(s) {
	case UseMargin, CashOnly:
		return MarginType(s), nil
	default:
		return "", fmt.Errorf("unknown margin type: %q", s)
	}
}

// OrderState is the accounting view of an order's lifecycle.
type OrderState int

const (
	// Unplaced orders have been built but not handed to an order service.
	Unplaced OrderState = iota
	// Placed orders are live with the execution collaborator.
	Placed
	// PartiallyFilled orders have fills but have not reached their
	// concrete type's filled threshold.
	PartiallyFilled
	// Filled orders have reached the filled threshold.
	Filled
	// Cancelled orders were revoked by the execution collaborator.
	Cancelled
	// Expired orders passed their expiration before filling.
	Expired
)

func (s OrderState) String() string {
	switch s {
	case Unplaced:
		return "unplaced"
	case Placed:
		return "placed"
	case PartiallyFilled:
		return "partially-filled"
	case Filled:
		return "filled"
	case Cancelled:
		return "cancelled"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

// Order is the interface shared by the two order variants: GeneralOrder
// (symbolic, against a Listing) and SpecificOrder (routed, against a
// Market). To create orders, see OrderBuilder.
type Order interface {
	Entity
	// Portfolio returns the portfolio the order trades for.
	Portfolio() *Portfolio
	// Parent returns the general order this order was derived from, or nil.
	Parent() *GeneralOrder
	FillType() FillType
	MarginType() MarginType
	// Expiration returns the zero time when the order does not expire.
	Expiration() time.Time
	// PanicForce allows the order to override various types of panic.
	PanicForce() bool
	// Emulation reports whether order-type emulation is allowed, as opposed
	// to using only the exchange's native functionality.
	Emulation() bool
	// IsBid reports whether the order buys the base asset.
	IsBid() bool
	IsAsk() bool
	// Fills returns the fills in execution order.
	Fills() []*Fill
	HasFills() bool
	// IsFilled reports whether the concrete type's filled threshold is
	// reached.
	IsFilled() bool
	// AverageFillPrice returns the volume-weighted mean price over all
	// fills, or Undefined when there are none.
	AverageFillPrice() DecimalAmount
	// State derives the lifecycle state from the accounting view.
	State() OrderState
}

// orderBase carries the field set shared by both order variants.
type orderBase struct {
	id         ID
	portfolio  *Portfolio
	parent     *GeneralOrder
	fillType   FillType
	marginType MarginType
	expiration time.Time
	panicForce bool
	emulation  bool

	placed    bool
	cancelled bool
	expired   bool
	fills     []*Fill
}

func newOrderBase(portfolio *Portfolio) orderBase {
	return orderBase{
		id:         NewID(),
		portfolio:  portfolio,
		fillType:   GoodTilCancelled,
		marginType: CashOnly,
		emulation:  true,
	}
}

func (o *orderBase) ID() ID                 { return o.id }
func (o *orderBase) Portfolio() *Portfolio  { return o.portfolio }
func (o *orderBase) Parent() *GeneralOrder  { return o.parent }
func (o *orderBase) FillType() FillType     { return o.fillType }
func (o *orderBase) MarginType() MarginType { return o.marginType }
func (o *orderBase) Expiration() time.Time  { return o.expiration }
func (o *orderBase) PanicForce() bool       { return o.panicForce }
func (o *orderBase) Emulation() bool        { return o.emulation }

// Fills returns the order's fills in execution order. The returned slice
// is a copy; the elements are immutable.
func (o *orderBase) Fills() []*Fill {
	fills := make([]*Fill, len(o.fills))
	copy(fills, o.fills)
	return fills
}

func (o *orderBase) HasFills() bool { return len(o.fills) > 0 }

// AddFill appends fill to the order's fill list, preserving execution
// order.
func (o *orderBase) AddFill(fill *Fill) { o.fills = append(o.fills, fill) }

// MarkPlaced records that the order was handed to an order service.
func (o *orderBase) MarkPlaced() { o.placed = true }

// Cancel records a cancellation reported by the execution collaborator.
func (o *orderBase) Cancel() { o.cancelled = true }

// Expire records an expiration reported by the execution collaborator.
func (o *orderBase) Expire() { o.expired = true }

// AverageFillPrice returns the volume-weighted mean price over all fills,
// computed in exact decimal arithmetic: Σ(price×volume) / Σ(volume). With
// no fills there is no mean, and the result is Undefined, never zero.
func (o *orderBase) AverageFillPrice() DecimalAmount {
	if len(o.fills) == 0 {
		return Undefined
	}
	sumProduct := decimal.Zero
	volume := decimal.Zero
	for _, fill := range o.fills {
		price := fill.Price().Decimal()
		v := fill.Volume().Decimal()
		sumProduct = sumProduct.Add(price.Mul(v))
		volume = volume.Add(v)
	}
	return D(sumProduct).Div(D(volume))
}

// state derives the common part of the lifecycle; isFilled is supplied by
// the concrete type.
func (o *orderBase) state(isFilled bool) OrderState {
	switch {
	case o.cancelled:
		return Cancelled
	case o.expired:
		return Expired
	case isFilled:
		return Filled
	case len(o.fills) > 0:
		return PartiallyFilled
	case o.placed:
		return Placed
	default:
		return Unplaced
	}
}

// GeneralOrder trades a symbolic Listing: it is not yet routed to an
// exchange. Volume and prices are exact decimals. A negative volume sells
// the base asset.
type GeneralOrder struct {
	orderBase
	listing    Listing
	volume     DecimalAmount
	limitPrice DecimalAmount
	stopPrice  DecimalAmount
}

// NewGeneralOrder creates an order for volume of listing on behalf of
// portfolio. Use a negative volume to sell.
func NewGeneralOrder(portfolio *Portfolio, listing Listing, volume DecimalAmount) *GeneralOrder {
	return &GeneralOrder{orderBase: newOrderBase(portfolio), listing: listing, volume: volume}
}

func (o *GeneralOrder) Listing() Listing          { return o.listing }
func (o *GeneralOrder) Volume() DecimalAmount     { return o.volume }
func (o *GeneralOrder) LimitPrice() DecimalAmount { return o.limitPrice }
func (o *GeneralOrder) StopPrice() DecimalAmount  { return o.stopPrice }

func (o *GeneralOrder) IsBid() bool { return !o.volume.IsNegative() }
func (o *GeneralOrder) IsAsk() bool { return !o.IsBid() }

// IsFilled reports whether the cumulative fill volume has reached the
// order volume.
func (o *GeneralOrder) IsFilled() bool {
	filled := decimal.Zero
	for _, fill := range o.fills {
		filled = filled.Add(fill.Volume().Decimal().Abs())
	}
	return filled.GreaterThanOrEqual(o.volume.Decimal().Abs()) && len(o.fills) > 0
}

func (o *GeneralOrder) State() OrderState { return o.state(o.IsFilled()) }

func (o *GeneralOrder) String() string {
	return fmt.Sprintf("general order %s %s %s", o.id, o.volume, o.listing)
}

// SpecificOrder trades a Market on a concrete exchange. Volume and prices
// are integer counts of the market's bases. A negative volume count sells
// the base asset.
type SpecificOrder struct {
	orderBase
	market          Market
	volumeCount     int64
	limitPriceCount int64
	stopPriceCount  int64
}

// NewSpecificOrder creates an order for volumeCount volume-basis units of
// market on behalf of portfolio. Use a negative count to sell.
func NewSpecificOrder(portfolio *Portfolio, market Market, volumeCount int64) *SpecificOrder {
	return &SpecificOrder{orderBase: newOrderBase(portfolio), market: market, volumeCount: volumeCount}
}

func (o *SpecificOrder) Market() Market         { return o.market }
func (o *SpecificOrder) VolumeCount() int64     { return o.volumeCount }
func (o *SpecificOrder) LimitPriceCount() int64 { return o.limitPriceCount }
func (o *SpecificOrder) StopPriceCount() int64  { return o.stopPriceCount }

// Volume returns the order volume in the market's volume basis.
func (o *SpecificOrder) Volume() DiscreteAmount { return o.market.Volume(o.volumeCount) }

// LimitPrice returns the limit price in the market's price basis.
func (o *SpecificOrder) LimitPrice() DiscreteAmount { return o.market.Price(o.limitPriceCount) }

// StopPrice returns the stop price in the market's price basis.
func (o *SpecificOrder) StopPrice() DiscreteAmount { return o.market.Price(o.stopPriceCount) }

func (o *SpecificOrder) IsBid() bool { return o.volumeCount >= 0 }
func (o *SpecificOrder) IsAsk() bool { return !o.IsBid() }

// IsFilled reports whether the cumulative fill volume count has reached
// the order volume count.
func (o *SpecificOrder) IsFilled() bool {
	var filled int64
	for _, fill := range o.fills {
		count := fill.VolumeCount()
		if count < 0 {
			count = -count
		}
		filled += count
	}
	target := o.volumeCount
	if target < 0 {
		target = -target
	}
	return len(o.fills) > 0 && filled >= target
}

func (o *SpecificOrder) State() OrderState { return o.state(o.IsFilled()) }

func (o *SpecificOrder) String() string {
	return fmt.Sprintf("specific order %s %s %s", o.id, o.Volume(), o.market)
}
