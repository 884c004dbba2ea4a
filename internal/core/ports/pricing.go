// Package ports declares the contracts between the application core and its
// adapters: persistence repositories, the unit of work, the notification
// transport, and external collaborators treated as black boxes.
package ports

import (
	"github.com/shopspring/decimal"
)

// QuoteLine is one labeled amount in a cost breakdown.
type QuoteLine struct {
	Label  string
	Amount decimal.Decimal
}

// Quote is the cost breakdown returned by the external pricing calculator.
type Quote struct {
	Lines []QuoteLine
	Total decimal.Decimal
}

// PriceQuoter is the external pricing-quote collaborator: a pure function
// from selected options to a cost breakdown. The engine treats it as a black
// box and never second-guesses its output.
type PriceQuoter interface {
	Quote(options []string, express bool) (Quote, error)
}
