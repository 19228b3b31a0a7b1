package trader

import (
	"errors"
	"fmt"
	"time"
)

// ErrIllegalState is returned when an operation is attempted on an object
// missing a required collaborator or capability, e.g. Place on a builder
// constructed without an OrderService, or a ledger mutation without the
// accounting authorization.
var ErrIllegalState = errors.New("illegal state")

// OrderBuilder is the factory strategies use to create orders against
// their portfolio:
//
//	order, err := builder.Create(listing, volume).WithLimitPrice(price).Place()
//
// A builder constructed with a nil OrderService can Build orders but not
// Place them.
type OrderBuilder struct {
	portfolio *Portfolio
	service   OrderService
}

// NewOrderBuilder creates an order factory for portfolio. The service may
// be nil, in which case Place is unavailable.
func NewOrderBuilder(portfolio *Portfolio, service OrderService) *OrderBuilder {
	return &OrderBuilder{portfolio: portfolio, service: service}
}

// Create starts a general order for volume of listing. Use a negative
// volume to create a sell order.
func (b *OrderBuilder) Create(listing Listing, volume DecimalAmount) *GeneralOrderBuilder {
	return &GeneralOrderBuilder{
		service: b.service,
		order:   NewGeneralOrder(b.portfolio, listing, volume),
	}
}

// CreateForMarket starts a specific order for volumeCount volume-basis
// units of market. Use a negative count to create a sell order.
func (b *OrderBuilder) CreateForMarket(market Market, volumeCount int64) *SpecificOrderBuilder {
	return &SpecificOrderBuilder{
		service: b.service,
		order:   NewSpecificOrder(b.portfolio, market, volumeCount),
	}
}

// CreateForMarketOf starts a specific order for a discrete volume, which
// must be expressed in market's volume basis.
func (b *OrderBuilder) CreateForMarketOf(market Market, volume DiscreteAmount) *SpecificOrderBuilder {
	sb := b.CreateForMarket(market, volume.Count())
	if err := volume.AssertBasis(market.VolumeBasis()); err != nil {
		sb.err = fmt.Errorf("order volume: %w", err)
	}
	return sb
}

// place hands order to service, marking it placed. Shared by both concrete
// builders.
func place(service OrderService, order Order, markPlaced func()) error {
	if service == nil {
		return fmt.Errorf("%w: construct the OrderBuilder with an OrderService to use Place", ErrIllegalState)
	}
	if err := service.PlaceOrder(order); err != nil {
		return fmt.Errorf("place order %s: %w", order.ID(), err)
	}
	markPlaced()
	return nil
}

// GeneralOrderBuilder configures and finalizes a GeneralOrder. All With
// methods return the builder for chaining.
type GeneralOrderBuilder struct {
	service OrderService
	order   *GeneralOrder
	err     error
}

func (b *GeneralOrderBuilder) WithFillType(fillType FillType) *GeneralOrderBuilder {
	b.order.fillType = fillType
	return b
}

func (b *GeneralOrderBuilder) WithMarginType(marginType MarginType) *GeneralOrderBuilder {
	b.order.marginType = marginType
	return b
}

func (b *GeneralOrderBuilder) WithExpiration(expiration time.Time) *GeneralOrderBuilder {
	b.order.expiration = expiration
	return b
}

func (b *GeneralOrderBuilder) WithPanicForce(force bool) *GeneralOrderBuilder {
	b.order.panicForce = force
	return b
}

func (b *GeneralOrderBuilder) WithEmulation(emulation bool) *GeneralOrderBuilder {
	b.order.emulation = emulation
	return b
}

func (b *GeneralOrderBuilder) WithLimitPrice(price DecimalAmount) *GeneralOrderBuilder {
	b.order.limitPrice = price
	return b
}

func (b *GeneralOrderBuilder) WithStopPrice(price DecimalAmount) *GeneralOrderBuilder {
	b.order.stopPrice = price
	return b
}

// Build finalizes the order without placing it with any OrderService.
func (b *GeneralOrderBuilder) Build() (*GeneralOrder, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.order, nil
}

// Place finalizes the order and hands it to the OrderService the builder
// was constructed with. It fails with ErrIllegalState when there is none.
func (b *GeneralOrderBuilder) Place() (*GeneralOrder, error) {
	order, err := b.Build()
	if err != nil {
		return nil, err
	}
	if err := place(b.service, order, order.MarkPlaced); err != nil {
		return nil, err
	}
	return order, nil
}

// SpecificOrderBuilder configures and finalizes a SpecificOrder. All With
// methods return the builder for chaining; basis mismatches on the
// discrete price setters are carried by the builder and surface at Build.
type SpecificOrderBuilder struct {
	service OrderService
	order   *SpecificOrder
	err     error
}

func (b *SpecificOrderBuilder) WithFillType(fillType FillType) *SpecificOrderBuilder {
	b.order.fillType = fillType
	return b
}

func (b *SpecificOrderBuilder) WithMarginType(marginType MarginType) *SpecificOrderBuilder {
	b.order.marginType = marginType
	return b
}

func (b *SpecificOrderBuilder) WithExpiration(expiration time.Time) *SpecificOrderBuilder {
	b.order.expiration = expiration
	return b
}

func (b *SpecificOrderBuilder) WithPanicForce(force bool) *SpecificOrderBuilder {
	b.order.panicForce = force
	return b
}

func (b *SpecificOrderBuilder) WithEmulation(emulation bool) *SpecificOrderBuilder {
	b.order.emulation = emulation
	return b
}

// WithLimitPriceCount sets the limit price in units of the market's price
// basis.
func (b *SpecificOrderBuilder) WithLimitPriceCount(count int64) *SpecificOrderBuilder {
	b.order.limitPriceCount = count
	return b
}

// WithStopPriceCount sets the stop price in units of the market's price
// basis.
func (b *SpecificOrderBuilder) WithStopPriceCount(count int64) *SpecificOrderBuilder {
	b.order.stopPriceCount = count
	return b
}

// WithLimitPrice sets the limit price from a discrete amount, which must
// be expressed in the market's price basis.
func (b *SpecificOrderBuilder) WithLimitPrice(price DiscreteAmount) *SpecificOrderBuilder {
	if err := price.AssertBasis(b.order.market.PriceBasis()); err != nil {
		b.err = fmt.Errorf("limit price: %w", err)
		return b
	}
	return b.WithLimitPriceCount(price.Count())
}

// WithStopPrice sets the stop price from a discrete amount, which must be
// expressed in the market's price basis.
func (b *SpecificOrderBuilder) WithStopPrice(price DiscreteAmount) *SpecificOrderBuilder {
	if err := price.AssertBasis(b.order.market.PriceBasis()); err != nil {
		b.err = fmt.Errorf("stop price: %w", err)
		return b
	}
	return b.WithStopPriceCount(price.Count())
}

// Build finalizes the order without placing it with any OrderService.
func (b *SpecificOrderBuilder) Build() (*SpecificOrder, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.order, nil
}

// Place finalizes the order and hands it to the OrderService the builder
// was constructed with. It fails with ErrIllegalState when there is none.
func (b *SpecificOrderBuilder) Place() (*SpecificOrder, error) {
	order, err := b.Build()
	if err != nil {
		return nil, err
	}
	if err := place(b.service, order, order.MarkPlaced); err != nil {
		return nil, err
	}
	return order, nil
}
