package trader

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestOrder_AverageFillPrice(t *testing.T) {
	// Price basis 1, volume basis 1: counts are the values themselves.
	market := NewMarket(exchangeA, Listing{Base: btc, Quote: usd}, newDecimal(1), newDecimal(1))
	pf := NewPortfolio("test", "tester")

	testCases := []struct {
		name  string
		fills [][2]int64 // price, volume
		want  string
	}{
		{
			name:  "volume weighted mean",
			fills: [][2]int64{{100, 2}, {110, 1}},
			want:  "103.3333333333333333", // (100×2 + 110×1) / 3
		},
		{
			name:  "single fill",
			fills: [][2]int64{{250, 7}},
			want:  "250",
		},
		{
			name:  "equal weights",
			fills: [][2]int64{{100, 5}, {200, 5}},
			want:  "150",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			order := NewSpecificOrder(pf, market, 100)
			for _, f := range tc.fills {
				order.AddFill(NewFill(order, time.Now(), market, f[0], f[1]))
			}
			got := order.AverageFillPrice()
			if got.IsUndefined() {
				t.Fatal("AverageFillPrice() is undefined with fills present")
			}
			want := decimal.RequireFromString(tc.want)
			if !got.Decimal().Equal(want) {
				t.Errorf("AverageFillPrice() = %s, want %s", got, want)
			}
		})
	}
}

func TestOrder_AverageFillPrice_NoFills(t *testing.T) {
	pf := NewPortfolio("test", "tester")
	order := NewSpecificOrder(pf, testMarket(), 100)

	got := order.AverageFillPrice()
	if !got.IsUndefined() {
		t.Fatalf("AverageFillPrice() with no fills = %s, want undefined", got)
	}
	if got.IsZero() {
		t.Error("AverageFillPrice() with no fills reports zero")
	}
}

func TestOrder_AverageFillPrice_DiscreteBases(t *testing.T) {
	// Cent price basis and satoshi volume basis: the mean is computed over
	// the exact decimal values, not the raw counts.
	market := testMarket()
	pf := NewPortfolio("test", "tester")
	order := NewSpecificOrder(pf, market, 300000000)
	// 650.00 USD for 2 BTC, 655.00 USD for 1 BTC.
	order.AddFill(NewFill(order, time.Now(), market, 65000, 200000000))
	order.AddFill(NewFill(order, time.Now(), market, 65500, 100000000))

	got := order.AverageFillPrice()
	want := decimal.RequireFromString("651.6666666666666667")
	if !got.Decimal().Equal(want) {
		t.Errorf("AverageFillPrice() = %s, want %s", got, want)
	}
}

func TestOrder_FillsInsertionOrder(t *testing.T) {
	market := testMarket()
	pf := NewPortfolio("test", "tester")
	order := NewSpecificOrder(pf, market, 100)

	var ids []ID
	for i := int64(1); i <= 5; i++ {
		fill := NewFill(order, time.Now(), market, 100*i, 10)
		ids = append(ids, fill.ID())
		order.AddFill(fill)
	}

	fills := order.Fills()
	if len(fills) != 5 {
		t.Fatalf("got %d fills, want 5", len(fills))
	}
	for i, fill := range fills {
		if fill.ID() != ids[i] {
			t.Fatalf("fill %d out of insertion order", i)
		}
	}

	// The returned slice is a copy: truncating it must not affect the order.
	fills[0] = nil
	if order.Fills()[0] == nil {
		t.Error("Fills() exposes the internal slice")
	}
}

func TestSpecificOrder_State(t *testing.T) {
	market := testMarket()
	pf := NewPortfolio("test", "tester")

	order := NewSpecificOrder(pf, market, 100)
	if got := order.State(); got != Unplaced {
		t.Errorf("new order state = %s, want unplaced", got)
	}

	order.MarkPlaced()
	if got := order.State(); got != Placed {
		t.Errorf("placed order state = %s, want placed", got)
	}

	order.AddFill(NewFill(order, time.Now(), market, 65000, 40))
	if got := order.State(); got != PartiallyFilled {
		t.Errorf("partially filled order state = %s, want partially-filled", got)
	}

	order.AddFill(NewFill(order, time.Now(), market, 65000, 60))
	if !order.IsFilled() {
		t.Error("order with full volume filled reports IsFilled() == false")
	}
	if got := order.State(); got != Filled {
		t.Errorf("filled order state = %s, want filled", got)
	}
}

func TestSpecificOrder_State_CancelledAndExpired(t *testing.T) {
	market := testMarket()
	pf := NewPortfolio("test", "tester")

	order := NewSpecificOrder(pf, market, 100)
	order.MarkPlaced()
	order.Cancel()
	if got := order.State(); got != Cancelled {
		t.Errorf("cancelled order state = %s, want cancelled", got)
	}

	other := NewSpecificOrder(pf, market, 100)
	other.MarkPlaced()
	other.Expire()
	if got := other.State(); got != Expired {
		t.Errorf("expired order state = %s, want expired", got)
	}
}

func TestOrder_Sides(t *testing.T) {
	market := testMarket()
	pf := NewPortfolio("test", "tester")

	if order := NewSpecificOrder(pf, market, 100); !order.IsBid() || order.IsAsk() {
		t.Error("positive volume count must be a bid")
	}
	if order := NewSpecificOrder(pf, market, -100); order.IsBid() || !order.IsAsk() {
		t.Error("negative volume count must be an ask")
	}

	listing := Listing{Base: btc, Quote: usd}
	if order := NewGeneralOrder(pf, listing, D(1)); !order.IsBid() {
		t.Error("positive volume must be a bid")
	}
	if order := NewGeneralOrder(pf, listing, D(-1)); !order.IsAsk() {
		t.Error("negative volume must be an ask")
	}
}

func TestGeneralOrder_IsFilled(t *testing.T) {
	market := testMarket()
	pf := NewPortfolio("test", "tester")

	// Sell 2 BTC symbolically; fills arrive against the routed market.
	order := NewGeneralOrder(pf, Listing{Base: btc, Quote: usd}, D(-2))
	specific := NewSpecificOrder(pf, market, -200000000)
	if order.IsFilled() {
		t.Error("order with no fills reports IsFilled() == true")
	}
	order.AddFill(NewFill(specific, time.Now(), market, 65000, -100000000))
	if order.IsFilled() {
		t.Error("half-filled order reports IsFilled() == true")
	}
	order.AddFill(NewFill(specific, time.Now(), market, 65000, -100000000))
	if !order.IsFilled() {
		t.Error("fully filled order reports IsFilled() == false")
	}
}

func TestParseFillType(t *testing.T) {
	for _, valid := range []string{"good-til-cancelled", "gtc-or-margin-cap", "cancel-remainder"} {
		if _, err := ParseFillType(valid); err != nil {
			t.Errorf("ParseFillType(%q) unexpected error: %v", valid, err)
		}
	}
	if _, err := ParseFillType("fill-or-kill"); err == nil {
		t.Error("ParseFillType(fill-or-kill) expected an error")
	}
}

func TestParseMarginType(t *testing.T) {
	for _, valid := range []string{"use-margin", "cash-only"} {
		if _, err := ParseMarginType(valid); err != nil {
			t.Errorf("ParseMarginType(%q) unexpected error: %v", valid, err)
		}
	}
	if _, err := ParseMarginType("2x"); err == nil {
		t.Error("ParseMarginType(2x) expected an error")
	}
}
