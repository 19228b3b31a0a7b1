package trader

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewWallet_ValidatesCurrency(t *testing.T) {
	if _, err := NewWallet("USD", decimal.New(100, 0), "exchange"); err != nil {
		t.Errorf("NewWallet(USD) unexpected error: %v", err)
	}
	if _, err := NewWallet("NOPE", decimal.New(100, 0), "exchange"); err == nil {
		t.Error("NewWallet(NOPE) expected an unknown currency error")
	}
}

func TestWallet_String(t *testing.T) {
	w, err := NewWallet("USD", decimal.RequireFromString("1234.5"), "exchange")
	if err != nil {
		t.Fatalf("NewWallet: %v", err)
	}
	if got, want := w.String(), "$1,234.50"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestBalance_MergeKey(t *testing.T) {
	wallet := func(currency, amount, description string) Wallet {
		w, err := NewWallet(currency, decimal.RequireFromString(amount), description)
		if err != nil {
			t.Fatalf("NewWallet: %v", err)
		}
		return w
	}

	testCases := []struct {
		name      string
		a, b      *Balance
		wantMerge bool
		wantTotal string
	}{
		{
			name:      "same key",
			a:         NewBalance(exchangeA, wallet("USD", "100", "exchange")),
			b:         NewBalance(exchangeA, wallet("USD", "50.5", "exchange")),
			wantMerge: true,
			wantTotal: "150.5",
		},
		{
			name: "different exchange",
			a:    NewBalance(exchangeA, wallet("USD", "100", "exchange")),
			b:    NewBalance(Exchange("EXCHANGE_B"), wallet("USD", "50", "exchange")),
		},
		{
			name: "different currency",
			a:    NewBalance(exchangeA, wallet("USD", "100", "exchange")),
			b:    NewBalance(exchangeA, wallet("EUR", "50", "exchange")),
		},
		{
			name: "different description",
			a:    NewBalance(exchangeA, wallet("USD", "100", "exchange")),
			b:    NewBalance(exchangeA, wallet("USD", "50", "margin")),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.merge(tc.b); got != tc.wantMerge {
				t.Fatalf("merge() = %v, want %v", got, tc.wantMerge)
			}
			if !tc.wantMerge {
				return
			}
			want := decimal.RequireFromString(tc.wantTotal)
			if !tc.a.Wallet().Amount().Equal(want) {
				t.Errorf("merged amount = %s, want %s", tc.a.Wallet().Amount(), want)
			}
		})
	}
}
