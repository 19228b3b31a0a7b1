package trader

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// recordingOrderService captures placed orders.
type recordingOrderService struct {
	placed []Order
	err    error
}

func (s *recordingOrderService) PlaceOrder(order Order) error {
	if s.err != nil {
		return s.err
	}
	s.placed = append(s.placed, order)
	return nil
}

func TestOrderBuilder_PlaceWithoutService(t *testing.T) {
	pf := NewPortfolio("test", "tester")
	builder := NewOrderBuilder(pf, nil)

	_, err := builder.Create(Listing{Base: btc, Quote: usd}, D(1)).Place()
	if !errors.Is(err, ErrIllegalState) {
		t.Errorf("Place() without service error = %v, want ErrIllegalState", err)
	}

	_, err = builder.CreateForMarket(testMarket(), 100).Place()
	if !errors.Is(err, ErrIllegalState) {
		t.Errorf("Place() without service error = %v, want ErrIllegalState", err)
	}
}

func TestOrderBuilder_PlaceForwardsOrder(t *testing.T) {
	pf := NewPortfolio("test", "tester")
	service := &recordingOrderService{}
	builder := NewOrderBuilder(pf, service)

	order, err := builder.CreateForMarket(testMarket(), 100).Place()
	if err != nil {
		t.Fatalf("Place() unexpected error: %v", err)
	}
	if len(service.placed) != 1 || service.placed[0].ID() != order.ID() {
		t.Fatalf("service received %v, want the built order", service.placed)
	}
	if got := order.State(); got != Placed {
		t.Errorf("placed order state = %s, want placed", got)
	}
}

func TestOrderBuilder_PlaceServiceFailure(t *testing.T) {
	pf := NewPortfolio("test", "tester")
	service := &recordingOrderService{err: errors.New("exchange down")}
	builder := NewOrderBuilder(pf, service)

	order, err := builder.CreateForMarket(testMarket(), 100).Build()
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}
	if _, err := builder.CreateForMarket(testMarket(), 100).Place(); err == nil {
		t.Error("Place() expected the service error to surface")
	}
	if got := order.State(); got != Unplaced {
		t.Errorf("failed placement left state = %s, want unplaced", got)
	}
}

func TestOrderBuilder_BuildDoesNotPlace(t *testing.T) {
	pf := NewPortfolio("test", "tester")
	service := &recordingOrderService{}
	builder := NewOrderBuilder(pf, service)

	order, err := builder.Create(Listing{Base: btc, Quote: usd}, D(-1.5)).Build()
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}
	if len(service.placed) != 0 {
		t.Error("Build() placed the order with the service")
	}
	if got := order.State(); got != Unplaced {
		t.Errorf("built order state = %s, want unplaced", got)
	}
	if !order.IsAsk() {
		t.Error("negative volume must build a sell order")
	}
}

func TestSpecificOrderBuilder_Setters(t *testing.T) {
	pf := NewPortfolio("test", "tester")
	builder := NewOrderBuilder(pf, nil)
	expiration := time.Date(2015, time.March, 1, 12, 0, 0, 0, time.UTC)

	order, err := builder.CreateForMarket(testMarket(), -100).
		WithFillType(CancelRemainder).
		WithMarginType(UseMargin).
		WithExpiration(expiration).
		WithPanicForce(true).
		WithEmulation(false).
		WithLimitPriceCount(65000).
		WithStopPriceCount(60000).
		Build()
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}

	if order.FillType() != CancelRemainder {
		t.Errorf("fill type = %s, want cancel-remainder", order.FillType())
	}
	if order.MarginType() != UseMargin {
		t.Errorf("margin type = %s, want use-margin", order.MarginType())
	}
	if !order.Expiration().Equal(expiration) {
		t.Errorf("expiration = %s, want %s", order.Expiration(), expiration)
	}
	if !order.PanicForce() {
		t.Error("panic force not set")
	}
	if order.Emulation() {
		t.Error("emulation not cleared")
	}
	if order.LimitPriceCount() != 65000 || order.StopPriceCount() != 60000 {
		t.Errorf("price counts = %d/%d, want 65000/60000", order.LimitPriceCount(), order.StopPriceCount())
	}
}

func TestSpecificOrderBuilder_DiscretePriceBasis(t *testing.T) {
	pf := NewPortfolio("test", "tester")
	builder := NewOrderBuilder(pf, nil)
	market := testMarket()

	// A price in the market's cent basis is accepted.
	price := NewDiscreteAmount(65000, market.PriceBasis())
	order, err := builder.CreateForMarket(market, 100).WithLimitPrice(price).Build()
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}
	if order.LimitPriceCount() != 65000 {
		t.Errorf("limit price count = %d, want 65000", order.LimitPriceCount())
	}

	// A price in any other basis is a basis mismatch, surfaced at Build.
	wrong := NewDiscreteAmount(650, decimal.New(1, 0))
	_, err = builder.CreateForMarket(market, 100).WithLimitPrice(wrong).Build()
	if !errors.Is(err, ErrBasisMismatch) {
		t.Errorf("Build() error = %v, want ErrBasisMismatch", err)
	}
}

func TestGeneralOrderBuilder_Prices(t *testing.T) {
	pf := NewPortfolio("test", "tester")
	builder := NewOrderBuilder(pf, nil)

	order, err := builder.Create(Listing{Base: btc, Quote: usd}, D(1)).
		WithLimitPrice(D(651.538)).
		WithStopPrice(D(600)).
		Build()
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}
	if !order.LimitPrice().Equal(D(651.538)) {
		t.Errorf("limit price = %s, want 651.538", order.LimitPrice())
	}
	if !order.StopPrice().Equal(D(600)) {
		t.Errorf("stop price = %s, want 600", order.StopPrice())
	}
}
