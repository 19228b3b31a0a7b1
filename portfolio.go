package trader

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrInsufficientFunds is returned by Reserve when the matching
	// unreserved position holds less volume than the reservation requires.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrNoMatchingPosition is returned by Reserve when no unreserved
	// position exists for the order's (exchange, quote asset) pair.
	ErrNoMatchingPosition = errors.New("no matching position")
)

// Portfolio owns the positions, balances, transactions and stakes of one
// trading strategy, and enforces the reservation rule: funds earmarked for
// an open order cannot be spent by another order.
//
// The whole mutation surface (ModifyPosition, ModifyBalance, Record,
// Reserve, Release) runs under a single portfolio-wide lock, because
// reservation and merge scan the entire positions collection and need a
// consistent snapshot across the scan. Mutations require the Authorization
// capability held by the accounting subsystem; everything else observes the
// portfolio through the read-only views, which return snapshots and may be
// stale by the time the caller looks at them.
type Portfolio struct {
	id      ID
	name    string
	manager string

	mu           sync.Mutex
	positions    []*Position
	balances     []*Balance
	transactions []*Transaction
	stakes       []*Stake
}

// NewPortfolio creates an empty portfolio with the given name and manager.
func NewPortfolio(name, manager string) *Portfolio {
	return &Portfolio{
		id:      NewID(),
		name:    name,
		manager: manager,
	}
}

func (pf *Portfolio) ID() ID          { return pf.id }
func (pf *Portfolio) Name() string    { return pf.name }
func (pf *Portfolio) Manager() string { return pf.manager }

func (pf *Portfolio) String() string { return pf.name }

// ModifyPosition merges position into the existing position with the same
// (exchange, asset) pair, reserved or not, or appends it when no such
// position exists. This is one of the only mutation entrypoints; it
// requires the accounting subsystem's authorization.
func (pf *Portfolio) ModifyPosition(position *Position, auth Authorization) error {
	if err := authorize(auth); err != nil {
		return fmt.Errorf("modify position: %w", err)
	}
	if position == nil {
		return fmt.Errorf("modify position: %w: nil position", ErrIllegalState)
	}
	pf.mu.Lock()
	defer pf.mu.Unlock()
	for _, cur := range pf.positions {
		if cur.merge(position) {
			return nil
		}
	}
	pf.positions = append(pf.positions, position)
	return nil
}

// ModifyBalance merges balance into the existing balance with the same
// (exchange, description, currency) key, or appends it. Requires the
// accounting subsystem's authorization.
func (pf *Portfolio) ModifyBalance(balance *Balance, auth Authorization) error {
	if err := authorize(auth); err != nil {
		return fmt.Errorf("modify balance: %w", err)
	}
	if balance == nil {
		return fmt.Errorf("modify balance: %w: nil balance", ErrIllegalState)
	}
	pf.mu.Lock()
	defer pf.mu.Unlock()
	for _, cur := range pf.balances {
		if cur.merge(balance) {
			return nil
		}
	}
	pf.balances = append(pf.balances, balance)
	return nil
}

// Record appends tx to the portfolio's transaction log. The log is
// append-only: transactions are never modified or removed. Requires the
// accounting subsystem's authorization.
func (pf *Portfolio) Record(tx *Transaction, auth Authorization) error {
	if err := authorize(auth); err != nil {
		return fmt.Errorf("record transaction: %w", err)
	}
	if tx == nil {
		return fmt.Errorf("record transaction: %w: nil transaction", ErrIllegalState)
	}
	pf.mu.Lock()
	defer pf.mu.Unlock()
	pf.transactions = append(pf.transactions, tx)
	return nil
}

// AddStake records a new stake in the portfolio.
func (pf *Portfolio) AddStake(stake *Stake, auth Authorization) error {
	if err := authorize(auth); err != nil {
		return fmt.Errorf("add stake: %w", err)
	}
	if stake == nil {
		return fmt.Errorf("add stake: %w: nil stake", ErrIllegalState)
	}
	pf.mu.Lock()
	defer pf.mu.Unlock()
	pf.stakes = append(pf.stakes, stake)
	return nil
}

// Reserve breaks the unreserved position matching order's market into the
// volume required plus an unreserved remainder. The reserved part is
// associated with order and excluded from the tradeable views until
// Release(order) is called. Requires the accounting subsystem's
// authorization.
//
// Matching is deterministic: the scan stops at the earliest-created
// unreserved position for (order.Market().Exchange(), order.Market().Quote()).
// The split is all-or-nothing against that one candidate. On failure the
// positions collection is left untouched: ErrNoMatchingPosition when no
// candidate exists, ErrInsufficientFunds when the candidate's volume is
// smaller than required.
func (pf *Portfolio) Reserve(order *SpecificOrder, required *Position, auth Authorization) error {
	if err := authorize(auth); err != nil {
		return fmt.Errorf("reserve: %w", err)
	}
	pf.mu.Lock()
	defer pf.mu.Unlock()
	market := order.Market()
	for _, position := range pf.positions {
		if position.IsReserved() || position.asset != market.Quote() || position.exchange != market.Exchange() {
			continue
		}
		if position.volumeCount < required.volumeCount {
			return fmt.Errorf("reserve %s %s for order %s: %w: have %d, need %d",
				market.Exchange().Symbol(), market.Quote().Symbol(), order.ID(),
				ErrInsufficientFunds, position.volumeCount, required.volumeCount)
		}
		// Split: subtract the reserve from the matched position and add a
		// new position carrying the reserved volume.
		position.volumeCount -= required.volumeCount
		reserve := NewPosition(required.exchange, required.market, required.asset, required.volumeCount, required.price)
		reserve.reservingOrder = order.ID()
		pf.positions = append(pf.positions, reserve)
		return nil
	}
	return fmt.Errorf("reserve %s %s for order %s: %w",
		market.Exchange().Symbol(), market.Quote().Symbol(), order.ID(), ErrNoMatchingPosition)
}

// Release clears every reservation held by order. Each released position is
// merged back into the unreserved position sharing its (exchange, asset)
// pair when one exists, preserving the rule of at most one unreserved
// position per pair; otherwise it simply becomes the unreserved position
// for that pair. Requires the accounting subsystem's authorization.
func (pf *Portfolio) Release(order *SpecificOrder, auth Authorization) error {
	if err := authorize(auth); err != nil {
		return fmt.Errorf("release: %w", err)
	}
	pf.mu.Lock()
	defer pf.mu.Unlock()
	for i := 0; i < len(pf.positions); i++ {
		position := pf.positions[i]
		if position.reservingOrder != order.ID() {
			continue
		}
		position.reservingOrder = ""
		if pf.mergeUnreserved(position) {
			pf.positions = append(pf.positions[:i], pf.positions[i+1:]...)
			i--
		}
	}
	return nil
}

// mergeUnreserved folds position into another unreserved position with the
// same (exchange, asset) pair, if any. Unlike Position.merge it never
// targets reserved positions: releasing must not disturb reservations held
// by other orders. Caller holds the lock.
func (pf *Portfolio) mergeUnreserved(position *Position) bool {
	for _, p := range pf.positions {
		if p == position || p.IsReserved() {
			continue
		}
		if p.exchange == position.exchange && p.asset == position.asset {
			p.volumeCount += position.volumeCount
			return true
		}
	}
	return false
}

// Positions returns a snapshot of all positions, reserved or not. Use
// TradeablePositions for the funds actually available to place orders.
func (pf *Portfolio) Positions() []*Position {
	pf.mu.Lock()
	defer pf.mu.Unlock()
	result := make([]*Position, 0, len(pf.positions))
	for _, position := range pf.positions {
		result = append(result, position.snapshot())
	}
	return result
}

// TradeablePositions returns a snapshot of the positions not reserved as
// payment for an open order. This is the main way for a strategy to
// determine what assets it has available for trading.
func (pf *Portfolio) TradeablePositions() []*Position {
	pf.mu.Lock()
	defer pf.mu.Unlock()
	var result []*Position
	for _, position := range pf.positions {
		if !position.IsReserved() {
			result = append(result, position.snapshot())
		}
	}
	return result
}

// ReservePositions returns a snapshot of the positions currently earmarked
// for open orders.
func (pf *Portfolio) ReservePositions() []*Position {
	pf.mu.Lock()
	defer pf.mu.Unlock()
	var result []*Position
	for _, position := range pf.positions {
		if position.IsReserved() {
			result = append(result, position.snapshot())
		}
	}
	return result
}

// TradeablePositionsOf returns a snapshot of the unreserved positions of
// asset, across all exchanges.
func (pf *Portfolio) TradeablePositionsOf(asset Asset) []*Position {
	pf.mu.Lock()
	defer pf.mu.Unlock()
	var result []*Position
	for _, position := range pf.positions {
		if position.asset == asset && !position.IsReserved() {
			result = append(result, position.snapshot())
		}
	}
	return result
}

// Balances returns a snapshot of the portfolio balances.
func (pf *Portfolio) Balances() []*Balance {
	pf.mu.Lock()
	defer pf.mu.Unlock()
	result := make([]*Balance, 0, len(pf.balances))
	for _, balance := range pf.balances {
		result = append(result, balance.snapshot())
	}
	return result
}

// Transactions returns the transaction log. The log entries are immutable
// and shared; the slice is a copy.
func (pf *Portfolio) Transactions() []*Transaction {
	pf.mu.Lock()
	defer pf.mu.Unlock()
	result := make([]*Transaction, len(pf.transactions))
	copy(result, pf.transactions)
	return result
}

// Stakes returns a snapshot of the stakes held in the portfolio.
func (pf *Portfolio) Stakes() []*Stake {
	pf.mu.Lock()
	defer pf.mu.Unlock()
	result := make([]*Stake, len(pf.stakes))
	copy(result, pf.stakes)
	return result
}
