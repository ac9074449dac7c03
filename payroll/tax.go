/*
tax.go - Progressive withholding tax

PURPOSE:
  Monthly withholding tax via annualization: annualize the month's taxable
  income, walk the progressive bracket table, divide back by twelve. The
  bracket table is injected from the tax_config row for the pay period's
  year; a missing table fails the computation with ErrMissingTaxConfig.

TABLE FORMAT (JSON stored in tax_config.brackets):
  [{"min": 0, "max": 250000, "rate": 0, "base_tax": 0},
   {"min": 250001, "max": 400000, "rate": 0.15, "base_tax": 0}, ...]
  Max < 0 marks the open-ended top bracket.
*/
package payroll

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

var twelve = decimal.NewFromInt(12)

// TaxBracket is one row of the annual withholding schedule. The tax owed in
// a bracket is base_tax plus rate times the income over the bracket minimum.
type TaxBracket struct {
	Min     decimal.Decimal `json:"min"`
	Max     decimal.Decimal `json:"max"`
	Rate    decimal.Decimal `json:"rate"`
	BaseTax decimal.Decimal `json:"base_tax"`
}

// TaxTable is the ordered bracket schedule for one config year.
type TaxTable struct {
	Brackets []TaxBracket
}

// ParseTaxTable decodes the stored JSON document of a tax_config row.
func ParseTaxTable(doc string) (TaxTable, error) {
	var brackets []TaxBracket
	if err := json.Unmarshal([]byte(doc), &brackets); err != nil {
		return TaxTable{}, fmt.Errorf("parse tax table: %w", err)
	}
	if len(brackets) == 0 {
		return TaxTable{}, fmt.Errorf("parse tax table: empty schedule")
	}
	return TaxTable{Brackets: brackets}, nil
}

// AnnualTax walks the schedule for an annual taxable income.
// Negative income owes nothing.
func (t TaxTable) AnnualTax(annualIncome decimal.Decimal) decimal.Decimal {
	if annualIncome.Sign() <= 0 {
		return decimal.Zero
	}
	for _, b := range t.Brackets {
		if annualIncome.LessThan(b.Min) {
			continue
		}
		if b.Max.Sign() >= 0 && annualIncome.GreaterThan(b.Max) {
			continue
		}
		excess := annualIncome.Sub(b.Min)
		return Round2(b.BaseTax.Add(b.Rate.Mul(excess)))
	}
	return decimal.Zero
}

// MonthlyTax annualizes one month's gross less tax-exempt contributions,
// applies the schedule, and returns one twelfth.
func (t TaxTable) MonthlyTax(monthlyGross, monthlyContributions decimal.Decimal) decimal.Decimal {
	annualTaxable := monthlyGross.Sub(monthlyContributions).Mul(twelve)
	return Round2(t.AnnualTax(annualTaxable).Div(twelve))
}
