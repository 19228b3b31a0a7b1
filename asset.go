package trader

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Asset identifies a tradeable fungible (a currency or a coin) by its
// symbol, e.g. "BTC" or "USD". Two assets are equal iff their symbols are.
type Asset string

func (a Asset) Symbol() string { return string(a) }

// Exchange identifies a trading venue by its symbol, e.g. "BITFINEX".
type Exchange string

func (e Exchange) Symbol() string { return string(e) }

// Listing is a symbolic base/quote pair, independent of any exchange.
// An order against a Listing is a GeneralOrder; once routed to an exchange
// it becomes a SpecificOrder against a Market.
type Listing struct {
	Base  Asset
	Quote Asset
}

func (l Listing) String() string { return l.Base.Symbol() + "/" + l.Quote.Symbol() }

// Market is a Listing traded on a specific Exchange, together with the
// smallest price and volume increments the exchange supports. Markets are
// immutable value objects; all price and volume counts of orders, fills and
// positions on a market are expressed in these bases.
type Market struct {
	exchange    Exchange
	listing     Listing
	priceBasis  decimal.Decimal
	volumeBasis decimal.Decimal
}

// NewMarket creates a market for listing on exchange with the given price
// and volume bases.
func NewMarket(exchange Exchange, listing Listing, priceBasis, volumeBasis decimal.Decimal) Market {
	return Market{exchange: exchange, listing: listing, priceBasis: priceBasis, volumeBasis: volumeBasis}
}

func (m Market) Exchange() Exchange           { return m.exchange }
func (m Market) Listing() Listing             { return m.listing }
func (m Market) Base() Asset                  { return m.listing.Base }
func (m Market) Quote() Asset                 { return m.listing.Quote }
func (m Market) PriceBasis() decimal.Decimal  { return m.priceBasis }
func (m Market) VolumeBasis() decimal.Decimal { return m.volumeBasis }

// IsZero reports whether the market is the zero value. Positions created
// from settlement events carry no market.
func (m Market) IsZero() bool { return m == (Market{}) }

// Price returns the discrete amount of count price-basis units.
func (m Market) Price(count int64) DiscreteAmount { return NewDiscreteAmount(count, m.priceBasis) }

// Volume returns the discrete amount of count volume-basis units.
func (m Market) Volume(count int64) DiscreteAmount { return NewDiscreteAmount(count, m.volumeBasis) }

func (m Market) String() string { return m.exchange.Symbol() + ":" + m.listing.String() }

// Holding names an asset held at an exchange, e.g. "BITFINEX:BTC". It is
// the textual form used to seed initial positions on the command line.
type Holding struct {
	Exchange Exchange
	Asset    Asset
}

// ParseHolding parses the "EXCHANGE:ASSET" form.
func ParseHolding(s string) (Holding, error) {
	exchange, asset, ok := strings.Cut(s, ":")
	if !ok || exchange == "" || asset == "" {
		return Holding{}, fmt.Errorf("invalid holding %q: want EXCHANGE:ASSET", s)
	}
	return Holding{Exchange: Exchange(exchange), Asset: Asset(asset)}, nil
}

func (h Holding) String() string { return h.Exchange.Symbol() + ":" + h.Asset.Symbol() }
