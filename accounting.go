package trader

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Authorization is the capability proving that a caller is the trusted
// accounting subsystem. The interface has an unexported method so that no
// other package can implement it: the only way to obtain one is to be
// handed it by NewAccountant. Strategies and external collaborators never
// mutate the ledger directly; they submit domain events instead.
type Authorization interface {
	authorized() bool
}

type authorization struct{}

func (authorization) authorized() bool { return true }

// authorize rejects missing capabilities. The mutation entrypoints call it
// first, before taking the portfolio lock.
func authorize(auth Authorization) error {
	if auth == nil {
		return fmt.Errorf("%w: mutation requires the accounting authorization", ErrIllegalState)
	}
	return nil
}

// defaultBasis is the asset basis assumed when none has been declared: one
// satoshi, the smallest increment of the reference crypto assets.
var defaultBasis = decimal.New(1, -8)

// Accountant is the accounting subsystem of a portfolio. It is the sole
// holder of the portfolio's mutation authorization: settlement and fill
// events submitted to it are converted into Transactions and Positions,
// applied to the portfolio, and republished on the event bus for the other
// collaborators (replay, persistence, display).
type Accountant struct {
	portfolio *Portfolio
	publisher Publisher
	auth      Authorization
	bases     map[Asset]decimal.Decimal
}

// NewAccountant creates the accounting subsystem for portfolio. Events
// applied through it are republished on publisher, which may be nil if no
// other collaborator listens.
func NewAccountant(portfolio *Portfolio, publisher Publisher) *Accountant {
	return &Accountant{
		portfolio: portfolio,
		publisher: publisher,
		auth:      authorization{},
		bases:     make(map[Asset]decimal.Decimal),
	}
}

// Portfolio returns the portfolio this accountant mutates.
func (a *Accountant) Portfolio() *Portfolio { return a.portfolio }

// DeclareBasis registers the smallest tradeable increment for asset, used
// to convert decimal transaction amounts into position volume counts.
// Undeclared assets use the one-satoshi default.
func (a *Accountant) DeclareBasis(asset Asset, basis decimal.Decimal) error {
	if !basis.IsPositive() {
		return fmt.Errorf("%w: basis for %s must be positive, got %s", ErrIllegalState, asset.Symbol(), basis)
	}
	a.bases[asset] = basis
	return nil
}

// BasisOf returns the declared basis for asset, or the default.
func (a *Accountant) BasisOf(asset Asset) decimal.Decimal {
	if basis, ok := a.bases[asset]; ok {
		return basis
	}
	return defaultBasis
}

// Apply records tx in the portfolio log, converts it into a position
// adjustment (credits add volume, debits remove it), merges that into the
// portfolio, and republishes tx. Fee and interest movements are recorded
// and republished but do not touch positions.
func (a *Accountant) Apply(tx *Transaction) error {
	if tx == nil {
		return fmt.Errorf("apply: %w: nil transaction", ErrIllegalState)
	}
	if tx.Amount().IsUndefined() {
		return fmt.Errorf("apply %s: %w: undefined amount", tx.Type(), ErrIllegalState)
	}
	if err := a.portfolio.Record(tx, a.auth); err != nil {
		return err
	}

	switch tx.Type() {
	case Credit, Debit:
		count := a.volumeCount(tx.Asset(), tx.Amount())
		if tx.Type() == Debit {
			count = -count
		}
		position := NewPosition(tx.Exchange(), Market{}, tx.Asset(), count, tx.Price())
		if err := a.portfolio.ModifyPosition(position, a.auth); err != nil {
			return err
		}
	}

	if a.publisher != nil {
		a.publisher.Publish(tx)
	}
	return nil
}

// ApplyBalance merges a balance reported by an exchange account service.
func (a *Accountant) ApplyBalance(balance *Balance) error {
	if balance == nil {
		return fmt.Errorf("apply balance: %w: nil balance", ErrIllegalState)
	}
	if err := a.portfolio.ModifyBalance(balance, a.auth); err != nil {
		return err
	}
	if a.publisher != nil {
		a.publisher.Publish(balance)
	}
	return nil
}

// volumeCount converts a decimal amount into a count of the asset's basis,
// truncating any sub-basis residue.
func (a *Accountant) volumeCount(asset Asset, amount DecimalAmount) int64 {
	return amount.Decimal().DivRound(a.BasisOf(asset), amountPrecision).IntPart()
}
