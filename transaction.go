package trader

import (
	"fmt"
	"time"
)

// TransactionType classifies a movement of funds.
type TransactionType string

const (
	// Credit adds funds to the portfolio, e.g. an initial deposit or a
	// settlement in the portfolio's favor.
	Credit TransactionType = "credit"
	// Debit removes funds from the portfolio.
	Debit TransactionType = "debit"
	// Fee is a charge taken by an exchange.
	Fee TransactionType = "fee"
	// Interest is interest earned or paid on a margin position.
	Interest TransactionType = "interest"
)

// ParseTransactionType parses a string into a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(s) {
	case Credit, Debit, Fee, Interest:
		return TransactionType(s), nil
	default:
		return "", fmt.Errorf("unknown transaction type: %q", s)
	}
}

// Transaction records a single movement of an asset at an exchange on
// behalf of a portfolio. Transactions are immutable; once appended to a
// portfolio's log they are never modified or removed.
type Transaction struct {
	id        ID
	portfolio string
	exchange  Exchange
	asset     Asset
	typ       TransactionType
	amount    DecimalAmount
	price     DecimalAmount
	time      time.Time
}

// NewTransaction records a movement of amount of asset at exchange, for the
// named portfolio, at the given price.
func NewTransaction(portfolio string, exchange Exchange, asset Asset, typ TransactionType, amount, price DecimalAmount) *Transaction {
	return &Transaction{
		id:        NewID(),
		portfolio: portfolio,
		exchange:  exchange,
		asset:     asset,
		typ:       typ,
		amount:    amount,
		price:     price,
		time:      time.Now().UTC(),
	}
}

func (t *Transaction) ID() ID                { return t.id }
func (t *Transaction) Portfolio() string     { return t.portfolio }
func (t *Transaction) Exchange() Exchange    { return t.exchange }
func (t *Transaction) Asset() Asset          { return t.asset }
func (t *Transaction) Type() TransactionType { return t.typ }
func (t *Transaction) Amount() DecimalAmount { return t.amount }
func (t *Transaction) Price() DecimalAmount  { return t.price }
func (t *Transaction) Time() time.Time       { return t.time }

// MarshalJSON implements the json.Marshaler interface for Transaction,
// producing the stable form published on the event bus.
func (t *Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.id)
	w.Append("portfolio", t.portfolio)
	w.Append("exchange", t.exchange)
	w.Append("asset", t.asset)
	w.Append("type", t.typ)
	w.Append("amount", t.amount)
	w.Optional("price", t.price)
	w.Append("time", t.time.Format(time.RFC3339Nano))
	return w.MarshalJSON()
}

func (t *Transaction) String() string {
	return fmt.Sprintf("%s %s %s %s @ %s", t.typ, t.amount, t.asset.Symbol(), t.exchange.Symbol(), t.price)
}
