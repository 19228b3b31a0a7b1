package trader

import "github.com/shopspring/decimal"

// Stake is an owner's proportional claim on a Portfolio. Many owners may
// hold stakes; the portfolio manager is not necessarily one of them. Stakes
// are structural records only: no accounting flows through them.
type Stake struct {
	id        ID
	owner     string
	portfolio string
	share     decimal.Decimal
}

// NewStake creates a stake of share (a ratio, e.g. 0.25) of the named
// portfolio for owner.
func NewStake(owner, portfolio string, share decimal.Decimal) *Stake {
	return &Stake{id: NewID(), owner: owner, portfolio: portfolio, share: share}
}

func (s *Stake) ID() ID                 { return s.id }
func (s *Stake) Owner() string          { return s.owner }
func (s *Stake) Portfolio() string      { return s.portfolio }
func (s *Stake) Share() decimal.Decimal { return s.share }
