package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/coinpartners/trader"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type backtestCmd struct {
	portfolio string
	manager   string
}

func (*backtestCmd) Name() string     { return "backtest" }
func (*backtestCmd) Synopsis() string { return "seed a simulated portfolio with initial positions" }
func (*backtestCmd) Usage() string {
	return `backtest [-portfolio <name>] [<EXCHANGE:ASSET> <amount>]...

  Creates a simulated portfolio seeded with the given initial positions,
  then prints the resulting holdings:
  - EXCHANGE:ASSET: where the seed position is held (e.g., "BITFINEX:BTC").
  - amount: the decimal amount of the asset (e.g., "2.5").

  Arguments come in pairs; a trailing unpaired argument is ignored with a warning.
`
}

func (c *backtestCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "portfolio", "backtest", "Name of the simulated portfolio")
	f.StringVar(&c.manager, "manager", "backtest", "Name of the portfolio manager")
}

func (c *backtestCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	seeds, err := parseSeeds(f.Args())
	if err != nil {
		// Seeding is best effort: bad pairs are reported, good ones are kept.
		log.Printf("warning, skipping malformed seed positions: %v", err)
	}

	p := trader.NewPortfolio(c.portfolio, c.manager)
	accountant := trader.NewAccountant(p, nil)

	for _, s := range seeds {
		tx := trader.NewTransaction(c.portfolio, s.holding.Exchange, s.holding.Asset, trader.Credit, s.amount, trader.Undefined)
		if err := accountant.Apply(tx); err != nil {
			fmt.Fprintf(os.Stderr, "Error seeding %s: %v\n", s.holding, err)
			return subcommands.ExitFailure
		}
	}

	printMarkdown(renderPositions(accountant))
	return subcommands.ExitSuccess
}

// seed is one initial position requested on the command line.
type seed struct {
	holding trader.Holding
	amount  trader.DecimalAmount
}

// parseSeeds pairs up the positional arguments, best effort: malformed
// pairs are skipped and accumulated into the returned error, and a trailing
// unpaired argument is dropped with a warning, so a truncated or partially
// wrong command line still seeds everything it can.
func parseSeeds(args []string) ([]seed, error) {
	if len(args)%2 != 0 {
		log.Printf("warning, ignoring unpaired trailing argument %q", args[len(args)-1])
		args = args[:len(args)-1]
	}
	var errs []error
	seeds := make([]seed, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		holding, err := trader.ParseHolding(args[i])
		if err != nil {
			errs = append(errs, err)
			continue
		}
		amount, err := trader.ParseDecimalAmount(args[i+1])
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid amount for %s: %w", holding, err))
			continue
		}
		seeds = append(seeds, seed{holding: holding, amount: amount})
	}
	return seeds, errors.Join(errs...)
}

// renderPositions formats the portfolio holdings as a markdown table.
func renderPositions(a *trader.Accountant) string {
	p := a.Portfolio()

	var b strings.Builder
	fmt.Fprintf(&b, "# Portfolio %s\n\n", p.Name())
	positions := p.Positions()
	if len(positions) == 0 {
		b.WriteString("No positions.\n")
		return b.String()
	}
	b.WriteString("| Exchange | Asset | Volume |\n")
	b.WriteString("|---|---|--:|\n")
	for _, pos := range positions {
		// Position counts are in the asset's basis unit; scale them back to
		// the decimal amount the user typed.
		volume := a.BasisOf(pos.Asset()).Mul(decimal.NewFromInt(pos.VolumeCount()))
		fmt.Fprintf(&b, "| %s | %s | %s |\n", pos.Exchange().Symbol(), pos.Asset().Symbol(), volume)
	}
	return b.String()
}
