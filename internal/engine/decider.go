package engine

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrZeroBaseline flags a previous price of zero. A change percentage
// against it is undefined, so the decider stays silent and the caller logs
// the anomaly.
var ErrZeroBaseline = errors.New("previous selling price is zero")

// Action is the outcome of a decision.
type Action int

const (
	// ActionNone leaves the user alone.
	ActionNone Action = iota
	// ActionNotify sends an alert and spends one unit of budget.
	ActionNotify
)

func (a Action) String() string {
	if a == ActionNotify {
		return "notify"
	}
	return "none"
}

// DecisionInput carries everything Decide looks at.
type DecisionInput struct {
	MaxPrice  float64
	MaxOffer  float64
	Remaining int

	PreviousPrice   float64
	CurrentPrice    float64
	DiscountPercent float64

	// RefillBudget resets Remaining when the price falls below both the
	// previous price and MaxPrice. Zero disables refills.
	RefillBudget int
}

// Decision is the result of comparing a fresh snapshot to a selection.
type Decision struct {
	Action        Action
	ChangePercent int
	PriceDropped  bool
	OfferImproved bool
	// Remaining is the selection's budget after the decision.
	Remaining int
	Refilled  bool
}

// Decide applies the alert rule to one selection. It is pure and never
// returns a negative budget.
func Decide(in DecisionInput) (Decision, error) {
	d := Decision{
		PriceDropped:  in.CurrentPrice < in.MaxPrice,
		OfferImproved: in.DiscountPercent > in.MaxOffer,
		Remaining:     max(in.Remaining, 0),
	}

	if in.RefillBudget > 0 && d.PriceDropped && in.CurrentPrice < in.PreviousPrice {
		d.Refilled = d.Remaining != in.RefillBudget
		d.Remaining = in.RefillBudget
	}

	if !d.PriceDropped && !d.OfferImproved {
		return d, nil
	}
	if d.Remaining == 0 {
		return d, nil
	}
	if in.PreviousPrice == 0 {
		return d, ErrZeroBaseline
	}

	d.Action = ActionNotify
	d.ChangePercent = changePercent(in.MaxPrice, in.CurrentPrice, in.PreviousPrice)
	d.Remaining--

	return d, nil
}

// changePercent is round(((target - current) / previous) * 100), half to even.
func changePercent(target, current, previous float64) int {
	diff := decimal.NewFromFloat(target).Sub(decimal.NewFromFloat(current))
	pct := diff.Div(decimal.NewFromFloat(previous)).Mul(decimal.NewFromInt(100))
	return int(pct.RoundBank(0).IntPart())
}
