// Package pricing provides the in-process stand-in for the external
// pricing-quote calculator. Quotes are informational; the engine never
// recomputes a confirmed order total from them.
package pricing

import (
	"restring/internal/core/ports"
	"restring/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// StaticQuoter implements the PriceQuoter port from a fixed price table.
type StaticQuoter struct {
	base             decimal.Decimal
	optionPrices     map[string]decimal.Decimal
	expressSurcharge decimal.Decimal
}

// NewStaticQuoter creates a quoter with the current service price table.
func NewStaticQuoter() *StaticQuoter {
	return &StaticQuoter{
		base: decimal.NewFromInt(35),
		optionPrices: map[string]decimal.Decimal{
			"premium_string":   decimal.NewFromInt(15),
			"logo_stencil":     decimal.NewFromInt(5),
			"grip_replacement": decimal.NewFromInt(8),
			"grommet_check":    decimal.NewFromInt(6),
		},
		expressSurcharge: decimal.NewFromInt(12),
	}
}

// Quote builds the cost breakdown for the selected options. Unknown options
// are rejected rather than silently priced at zero.
func (q *StaticQuoter) Quote(options []string, express bool) (ports.Quote, error) {
	lines := []ports.QuoteLine{
		{Label: "restring", Amount: q.base},
	}
	total := q.base

	for _, option := range options {
		price, ok := q.optionPrices[option]
		if !ok {
			return ports.Quote{}, errs.NewObjectNotFoundError("price option", option)
		}
		lines = append(lines, ports.QuoteLine{Label: option, Amount: price})
		total = total.Add(price)
	}

	if express {
		lines = append(lines, ports.QuoteLine{Label: "express", Amount: q.expressSurcharge})
		total = total.Add(q.expressSurcharge)
	}

	return ports.Quote{Lines: lines, Total: total}, nil
}
