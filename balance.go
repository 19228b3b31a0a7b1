package trader

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// ValidateCurrency checks that code is a known ISO 4217 currency code.
func ValidateCurrency(code string) error {
	if money.GetCurrency(code) == nil {
		return fmt.Errorf("unknown currency code %q", code)
	}
	return nil
}

// Wallet is a named amount of a currency, as reported by an exchange
// account service. The amount is an exact decimal in major units.
type Wallet struct {
	currency    string
	amount      decimal.Decimal
	description string
}

// NewWallet creates a wallet after validating the currency code.
func NewWallet(currency string, amount decimal.Decimal, description string) (Wallet, error) {
	if err := ValidateCurrency(currency); err != nil {
		return Wallet{}, err
	}
	return Wallet{currency: currency, amount: amount, description: description}, nil
}

func (w Wallet) Currency() string        { return w.currency }
func (w Wallet) Amount() decimal.Decimal { return w.amount }
func (w Wallet) Description() string     { return w.description }

// String formats the amount with the currency's conventional symbol and
// fraction digits.
func (w Wallet) String() string {
	cur := *money.New(0, w.currency).Currency()
	return cur.Formatter().Format(w.amount.Shift(int32(cur.Fraction)).IntPart())
}

// Balance is a wallet held at an exchange, owned by a Portfolio. Balances
// are sourced externally and merged by (exchange, description, currency).
type Balance struct {
	id       ID
	exchange Exchange
	wallet   Wallet
}

// NewBalance creates a balance for wallet at exchange.
func NewBalance(exchange Exchange, wallet Wallet) *Balance {
	return &Balance{id: NewID(), exchange: exchange, wallet: wallet}
}

func (b *Balance) ID() ID             { return b.id }
func (b *Balance) Exchange() Exchange { return b.exchange }
func (b *Balance) Wallet() Wallet     { return b.wallet }

// merge folds other into b when both balances share the merge key
// (exchange, wallet description, wallet currency), summing the decimal
// amounts into a fresh wallet. It reports whether the merge happened.
func (b *Balance) merge(other *Balance) bool {
	if b.exchange != other.exchange ||
		b.wallet.description != other.wallet.description ||
		b.wallet.currency != other.wallet.currency {
		return false
	}
	b.wallet = Wallet{
		currency:    b.wallet.currency,
		amount:      b.wallet.amount.Add(other.wallet.amount),
		description: b.wallet.description,
	}
	return true
}

// snapshot returns a copy for the read-only portfolio views.
func (b *Balance) snapshot() *Balance {
	c := *b
	return &c
}

func (b *Balance) String() string {
	return fmt.Sprintf("%s %s (%s)", b.exchange.Symbol(), b.wallet.String(), b.wallet.description)
}
