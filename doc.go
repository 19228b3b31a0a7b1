// Package trader provides the ledger and order-accounting core of an
// algorithmic trading platform. It tracks what a trading strategy owns
// (positions, balances), records every movement (transactions, fills), and
// enforces the rule that funds earmarked for an open order cannot be spent
// by another order.
//
// The core functionalities include:
//   - Amount Arithmetic: exact fixed-point quantities as integer counts of
//     a basis unit, with arbitrary-precision decimals reserved for
//     cross-basis aggregation such as average fill prices.
//   - Portfolio Engine: a mutex-guarded ledger of positions, balances,
//     transactions and stakes, with atomic reservation and release of
//     funds against open orders.
//   - Order Accounting: general (symbolic) and specific (exchange-routed)
//     orders, their fills, and the accounting view of the order lifecycle.
//   - Capability-Gated Mutation: only the accounting subsystem holds the
//     authorization to mutate the ledger; strategies and external
//     collaborators submit domain events instead.
//
// Order matching, persistence formats and strategy scheduling live in
// external collaborators; this package defines only the interfaces it
// consumes from them. It serves as the foundational logic for the `coin`
// command-line tool.
package trader
